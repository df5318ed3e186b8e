// Package token defines the token types produced by the lexer.
package token

import (
	"fmt"
	"hl2/internal/span"
)

// Kind represents the type of a token.
type Kind int

const (
	Ident Kind = iota
	Punctuation
	Keyword
	Operator
	CoreType
	NumberLiteral
	StringLiteral
	BooleanLiteral
)

var kindNames = map[Kind]string{
	Ident:          "Ident",
	Punctuation:    "Punc",
	Keyword:        "Keyword",
	Operator:       "Op",
	CoreType:       "CoreType",
	NumberLiteral:  "Num",
	StringLiteral:  "Str",
	BooleanLiteral: "Bool",
}

// String returns the short name for a token kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsLiteral reports whether the kind is a number, string or boolean literal.
func (k Kind) IsLiteral() bool {
	return k == NumberLiteral || k == StringLiteral || k == BooleanLiteral
}

// Token is a lexical unit pointing back into the source. It owns no text;
// the lexeme is recovered with Lexeme against the buffer it was lexed from.
type Token struct {
	Start span.Pos `json:"start"`
	End   span.Pos `json:"end"`
	Kind  Kind     `json:"kind"`
}

// New returns a token of the given kind covering [start, end).
func New(kind Kind, start, end int) Token {
	return Token{Start: span.Pos(start), End: span.Pos(end), Kind: kind}
}

// Span returns the byte range the token covers.
func (t Token) Span() span.Span {
	return span.Span{Start: t.Start, End: t.End}
}

// Lexeme slices the token's text out of source.
func (t Token) Lexeme(source string) string {
	return t.Span().Text(source)
}

// Is reports whether the token has the given kind and lexeme.
func (t Token) Is(kind Kind, lexeme, source string) bool {
	return t.Kind == kind && t.Lexeme(source) == lexeme
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s %s", t.Kind, t.Span())
}

// Describe renders the token with its lexeme, e.g. Ident(x).
func (t Token) Describe(source string) string {
	return fmt.Sprintf("%s(%s)", t.Kind, t.Lexeme(source))
}
