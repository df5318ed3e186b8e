// Package diag turns lexer and parser errors into displayable diagnostics.
// The front end only returns structured errors; resolving token offsets to
// lines and formatting the result happens here, on the caller's side.
package diag

import (
	"errors"
	"fmt"
	"hl2/internal/lexer"
	"hl2/internal/parser"
	"hl2/internal/span"
)

// Stable diagnostic codes.
const (
	CodeEmptySource = "E1001"
	CodeLex         = "E1002"
	CodeParse       = "E2001"
	CodeParseEOF    = "E2002"
	CodeInternal    = "E9999"
)

// Diagnostic is a resolved, display-ready error.
type Diagnostic struct {
	Code    string     `json:"code" yaml:"code"`
	File    string     `json:"file" yaml:"file"`
	Line    int        `json:"line,omitempty" yaml:"line,omitempty"` // 1-based, 0 when unlocated
	Message string     `json:"message" yaml:"message"`
	Span    *span.Span `json:"span,omitempty" yaml:"span,omitempty"`
}

// Located reports whether the diagnostic carries a line.
func (d Diagnostic) Located() bool {
	return d.Line > 0
}

// String returns "{file}:{line} - {message}", or just the message when the
// diagnostic has no location.
func (d Diagnostic) String() string {
	if !d.Located() {
		return d.Message
	}
	return fmt.Sprintf("%s:%d - %s", d.File, d.Line, d.Message)
}

// FromError resolves an error returned by lexer.Lex or parser.Parse. source
// must be the buffer the tokens were produced from.
func FromError(err error, file, source string) Diagnostic {
	var (
		lexPoint   *lexer.PointError
		lexRaw     *lexer.RawError
		parsePoint *parser.PointError
		parseRaw   *parser.RawError
	)

	switch {
	case errors.Is(err, lexer.ErrEmptySource):
		return Diagnostic{Code: CodeEmptySource, File: file, Message: fmt.Sprintf("%s: %s", file, err.Error())}
	case errors.As(err, &lexPoint):
		// lexer lines are counted from zero
		return Diagnostic{Code: CodeLex, File: lexPoint.File, Line: lexPoint.Line + 1, Message: lexPoint.Msg}
	case errors.As(err, &lexRaw):
		return Diagnostic{Code: CodeLex, File: file, Message: lexRaw.Msg}
	case errors.As(err, &parsePoint):
		s := parsePoint.Token.Span()
		return Diagnostic{
			Code:    CodeParse,
			File:    file,
			Line:    span.Line(source, parsePoint.Token.Start),
			Message: parsePoint.Msg,
			Span:    &s,
		}
	case errors.As(err, &parseRaw):
		return Diagnostic{Code: CodeParseEOF, File: file, Message: fmt.Sprintf("%s: %s", file, parseRaw.Msg)}
	default:
		return Diagnostic{Code: CodeInternal, File: file, Message: err.Error()}
	}
}
