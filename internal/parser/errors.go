package parser

import "hl2/internal/token"

// RawError is a parse failure with no specific token, typically because the
// token stream ran out.
type RawError struct {
	Msg string
}

func (e *RawError) Error() string {
	return e.Msg
}

// PointError is a parse failure at a specific token. The token is kept
// as-is so the caller can resolve it to a line against the source.
type PointError struct {
	Msg   string
	Token token.Token
}

func (e *PointError) Error() string {
	return e.Msg
}
