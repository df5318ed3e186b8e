// Package lexer implements the lexical analysis (tokenization) for hl2.
package lexer

import (
	"fmt"
	"hl2/internal/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	booleanLiterals = []string{"true", "false"}
	coreTypes       = []string{"string", "float", "bool", "int"}
	keywords        = []string{"if", "else", "while"}
)

// Lexer tokenizes source code into a sequence of tokens.
type Lexer struct {
	source   string
	filename string

	pos  int // current read position in source
	line int // newlines consumed as whitespace so far (0-based)
}

// New creates a new Lexer for the given source text.
func New(source, filename string) *Lexer {
	return &Lexer{
		source:   source,
		filename: filename,
	}
}

// Lex tokenizes source in one call.
func Lex(source, filename string) ([]token.Token, error) {
	return New(source, filename).Tokenize()
}

// Tokenize scans the entire source and returns all tokens. It stops at the
// first error; every error except the empty-source one is a *PointError.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	if l.source == "" {
		return nil, errEmptySource()
	}

	var tokens []token.Token
	for !l.atEnd() {
		ch := l.peek()
		if ch == '\n' {
			l.advance()
			l.line++
			continue
		}
		if unicode.IsSpace(ch) {
			l.advance()
			continue
		}

		tok, err := l.nextToken()
		if err != nil {
			return nil, err.at(l.filename, l.line)
		}
		tokens = append(tokens, tok)
	}

	if len(tokens) == 0 {
		return nil, errEmptySource()
	}
	return tokens, nil
}

// ---- internal helpers ----

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.source)
}

// peek returns the current character without advancing, or 0 if at end.
func (l *Lexer) peek() rune {
	if l.atEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos:])
	return r
}

// peekNext returns the character after current, or 0 if at end.
func (l *Lexer) peekNext() rune {
	if l.atEnd() {
		return 0
	}
	_, size := utf8.DecodeRuneInString(l.source[l.pos:])
	if l.pos+size >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.pos+size:])
	return r
}

// advance consumes the current character and returns it.
func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.source[l.pos:])
	l.pos += size
	return r
}

// ---- token reading ----

// nextToken offers the cursor to each recognizer in priority order. Several
// recognizers share prefixes (a leading '-', "int" vs identifiers), so the
// order is part of the language definition.
func (l *Lexer) nextToken() (token.Token, *RawError) {
	if tok, ok := l.readPunctuation(); ok {
		return tok, nil
	}
	if tok, ok, err := l.readNumber(); err != nil || ok {
		return tok, err
	}
	if tok, ok, err := l.readOperator(); err != nil || ok {
		return tok, err
	}
	if tok, ok := l.readWord(token.BooleanLiteral, booleanLiterals); ok {
		return tok, nil
	}
	if tok, ok := l.readWord(token.CoreType, coreTypes); ok {
		return tok, nil
	}
	if tok, ok := l.readKeyword(); ok {
		return tok, nil
	}
	if tok, ok, err := l.readString(); err != nil || ok {
		return tok, err
	}
	if tok, ok := l.readIdentifier(); ok {
		return tok, nil
	}
	return token.Token{}, &RawError{Msg: fmt.Sprintf("unknown token starting with `%c`", l.peek())}
}

// readPunctuation reads one of ; ( ) { } ,
func (l *Lexer) readPunctuation() (token.Token, bool) {
	switch l.peek() {
	case ';', '(', ')', '{', '}', ',':
		start := l.pos
		l.advance()
		return token.New(token.Punctuation, start, l.pos), true
	}
	return token.Token{}, false
}

// readNumber reads a decimal literal with an optional leading '-' and at
// most one '.'.
func (l *Lexer) readNumber() (token.Token, bool, *RawError) {
	start := l.pos
	switch ch := l.peek(); {
	case ch == '-' && isDigit(l.peekNext()):
		l.advance()
	case !isDigit(ch):
		return token.Token{}, false, nil
	}

	seenDot := false
	for !l.atEnd() {
		ch := l.peek()
		switch {
		case isDigit(ch):
			l.advance()
		case ch == '.':
			if seenDot {
				return token.Token{}, false, &RawError{Msg: "numeric literal has more than one decimal point"}
			}
			seenDot = true
			l.advance()
		case unicode.IsLetter(ch):
			return token.Token{}, false, &RawError{Msg: "identifier cannot start with a digit"}
		default:
			return token.New(token.NumberLiteral, start, l.pos), true, nil
		}
	}
	return token.New(token.NumberLiteral, start, l.pos), true, nil
}

// readOperator reads an arithmetic, comparison or logical operator.
func (l *Lexer) readOperator() (token.Token, bool, *RawError) {
	start := l.pos
	ch := l.peek()

	switch ch {
	case '*', '/', '+', '-', '%':
		l.advance()
		return token.New(token.Operator, start, l.pos), true, nil
	case '=', '>', '<':
		l.advance()
		if l.atEnd() {
			return token.Token{}, false, &RawError{Msg: fmt.Sprintf("unexpected end of input after operator `%c`", ch)}
		}
		if l.peek() == '=' {
			l.advance()
		}
		return token.New(token.Operator, start, l.pos), true, nil
	case '&', '|':
		l.advance()
		if l.atEnd() {
			return token.Token{}, false, &RawError{
				Msg: fmt.Sprintf("unexpected end of input after operator `%c`: bitwise operators are not supported", ch),
			}
		}
		if l.peek() != ch {
			return token.Token{}, false, &RawError{Msg: fmt.Sprintf("bitwise operator `%c` is not supported, did you mean `%c%c`?", ch, ch, ch)}
		}
		l.advance()
		return token.New(token.Operator, start, l.pos), true, nil
	}
	return token.Token{}, false, nil
}

// readWord matches the first of words that prefixes the remaining input.
// There is no word-boundary check: "intx" reads as CoreType(int) and leaves
// "x" for the next token.
func (l *Lexer) readWord(kind token.Kind, words []string) (token.Token, bool) {
	rest := l.source[l.pos:]
	for _, w := range words {
		if strings.HasPrefix(rest, w) {
			start := l.pos
			l.pos += len(w)
			return token.New(kind, start, l.pos), true
		}
	}
	return token.Token{}, false
}

// readKeyword reads if/else/while when followed by whitespace or '('.
func (l *Lexer) readKeyword() (token.Token, bool) {
	rest := l.source[l.pos:]
	for _, kw := range keywords {
		if !strings.HasPrefix(rest, kw) || len(rest) == len(kw) {
			continue
		}
		next, _ := utf8.DecodeRuneInString(rest[len(kw):])
		if unicode.IsSpace(next) || next == '(' {
			start := l.pos
			l.pos += len(kw)
			return token.New(token.Keyword, start, l.pos), true
		}
	}
	return token.Token{}, false
}

// readString reads a double-quoted literal. A backslash escapes whatever
// character follows it; escapes are not decoded.
func (l *Lexer) readString() (token.Token, bool, *RawError) {
	if l.peek() != '"' {
		return token.Token{}, false, nil
	}
	start := l.pos
	l.advance() // skip opening "

	escaped := false
	for !l.atEnd() {
		ch := l.advance()
		switch {
		case escaped:
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '"':
			return token.New(token.StringLiteral, start, l.pos), true, nil
		}
	}
	return token.Token{}, false, &RawError{Msg: "unexpected end of input in string literal"}
}

// readIdentifier reads a letter followed by letters and digits.
func (l *Lexer) readIdentifier() (token.Token, bool) {
	if !unicode.IsLetter(l.peek()) {
		return token.Token{}, false
	}
	start := l.pos
	for !l.atEnd() && isIdentPart(l.peek()) {
		l.advance()
	}
	return token.New(token.Ident, start, l.pos), true
}

// ---- character classification ----

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsNumber(ch)
}
