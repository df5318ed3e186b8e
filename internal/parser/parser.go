// Package parser implements the syntax analysis for hl2.
// It is a recursive descent parser with one method per grammar rule. Binary
// operator rules are right-recursive, so chains such as 1 - 2 - 3 produce
// right-leaning trees.
package parser

import (
	"fmt"
	"hl2/internal/cst"
	"hl2/internal/token"
)

// DefaultMaxDepth bounds rule recursion so adversarial nesting fails with a
// parse error instead of growing the stack without limit. Every binary
// operator and call costs a level, so the bound sits far above what
// hand-written programs reach.
const DefaultMaxDepth = 10000

// Operator precedence classes, tightest first.
var (
	op0 = []string{"*", "/", "%"}
	op1 = []string{"+", "-"}
	op2 = []string{"==", ">", "<", ">=", "<="}
	op3 = []string{"&&", "||"}
)

// ============================================================
// Parser
// ============================================================

// Parser performs syntax analysis on a stream of tokens.
type Parser struct {
	tokens []token.Token
	source string
	pos    int

	depth    int
	maxDepth int
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth sets the recursion limit. Zero or a negative value disables it.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		p.maxDepth = n
	}
}

// New creates a new parser from a token slice and the source it was lexed
// from.
func New(tokens []token.Token, source string, opts ...Option) *Parser {
	p := &Parser{tokens: tokens, source: source, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses tokens into a tree rooted at a Program node.
func Parse(tokens []token.Token, source string, opts ...Option) (*cst.Node, error) {
	return New(tokens, source, opts...).ParseProgram()
}

// ParseProgram parses the whole token stream. The first error aborts the
// parse; it is either a *RawError or a *PointError.
func (p *Parser) ParseProgram() (*cst.Node, error) {
	if len(p.tokens) == 0 {
		return nil, &RawError{Msg: "no tokens to parse"}
	}

	prog, err := p.parseProgram()
	if err != nil {
		return nil, err
	}

	// parseProgram only stops early on a '}' that nothing opened.
	if tok, ok := p.peek(); ok {
		return nil, p.errorAt(tok, "unexpected `%s` at top level", p.lexeme(tok))
	}
	return prog, nil
}

// ---- navigation helpers ----

func (p *Parser) peek() (token.Token, bool) {
	return p.peekAt(0)
}

func (p *Parser) peekAt(n int) (token.Token, bool) {
	if p.pos+n >= len(p.tokens) {
		return token.Token{}, false
	}
	return p.tokens[p.pos+n], true
}

func (p *Parser) advance() token.Token {
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

func (p *Parser) lexeme(tok token.Token) string {
	return tok.Lexeme(p.source)
}

// check reports whether the current token has the given kind and lexeme.
func (p *Parser) check(kind token.Kind, lexeme string) bool {
	tok, ok := p.peek()
	return ok && tok.Is(kind, lexeme, p.source)
}

// checkNext is check for the token after the current one.
func (p *Parser) checkNext(kind token.Kind, lexeme string) bool {
	tok, ok := p.peekAt(1)
	return ok && tok.Is(kind, lexeme, p.source)
}

// expect consumes one token with the given kind and lexeme.
func (p *Parser) expect(kind token.Kind, lexeme string) (*cst.Node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.eof("`%s`", lexeme)
	}
	if !tok.Is(kind, lexeme, p.source) {
		return nil, p.errorAt(tok, "expected `%s`, found `%s`", lexeme, p.lexeme(tok))
	}
	return cst.NewTerminal(p.advance()), nil
}

// expectKind consumes one token of the given kind; what names it in errors.
func (p *Parser) expectKind(kind token.Kind, what string) (*cst.Node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.eof("%s", what)
	}
	if tok.Kind != kind {
		return nil, p.errorAt(tok, "expected %s, found `%s`", what, p.lexeme(tok))
	}
	return cst.NewTerminal(p.advance()), nil
}

func (p *Parser) errorAt(tok token.Token, format string, args ...interface{}) *PointError {
	return &PointError{Msg: fmt.Sprintf(format, args...), Token: tok}
}

// eof reports that the stream ended where something was expected.
func (p *Parser) eof(format string, args ...interface{}) *RawError {
	return &RawError{Msg: "unexpected end of input, expected " + fmt.Sprintf(format, args...)}
}

// enter guards against unbounded recursion; every call must be paired with
// leave.
func (p *Parser) enter() error {
	p.depth++
	if p.maxDepth <= 0 || p.depth <= p.maxDepth {
		return nil
	}
	if tok, ok := p.peek(); ok {
		return p.errorAt(tok, "nesting too deep (limit %d)", p.maxDepth)
	}
	return &RawError{Msg: fmt.Sprintf("nesting too deep (limit %d)", p.maxDepth)}
}

func (p *Parser) leave() {
	p.depth--
}

// ============================================================
// Statements
// ============================================================

// parseProgram parses: (Stmt ';' | If | While)*
// It stops at '}' or end of input without consuming the '}'.
func (p *Parser) parseProgram() (*cst.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	prog := cst.NewNonTerminal(cst.Program)
	for {
		if _, ok := p.peek(); !ok || p.check(token.Punctuation, "}") {
			return prog, nil
		}

		switch {
		case p.check(token.Keyword, "if"):
			n, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			prog.Add(n)
		case p.check(token.Keyword, "while"):
			n, err := p.parseWhile()
			if err != nil {
				return nil, err
			}
			prog.Add(n)
		default:
			stmt, err := p.parseStmt()
			if err != nil {
				return nil, err
			}
			semi, err := p.expect(token.Punctuation, ";")
			if err != nil {
				return nil, err
			}
			prog.Add(stmt, semi)
		}
	}
}

// parseStmt parses: Declaration | Assignment | FunctionCall
func (p *Parser) parseStmt() (*cst.Node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.eof("a statement")
	}

	var (
		child *cst.Node
		err   error
	)
	switch tok.Kind {
	case token.CoreType:
		child, err = p.parseDeclaration()
	case token.Ident:
		next, ok := p.peekAt(1)
		switch {
		case !ok:
			return nil, p.eof("`(` or `=` after `%s`", p.lexeme(tok))
		case next.Is(token.Punctuation, "(", p.source):
			child, err = p.parseFunctionCall()
		case next.Is(token.Operator, "=", p.source):
			child, err = p.parseAssignment()
		default:
			return nil, p.errorAt(next, "expected `(` or `=` after `%s`, found `%s`", p.lexeme(tok), p.lexeme(next))
		}
	default:
		return nil, p.errorAt(tok, "expected a declaration, assignment or function call, found `%s`", p.lexeme(tok))
	}
	if err != nil {
		return nil, err
	}
	return cst.NewNonTerminal(cst.Stmt, child), nil
}

// parseDeclaration parses: CoreType Ident '=' Expression
func (p *Parser) parseDeclaration() (*cst.Node, error) {
	typ, err := p.expectKind(token.CoreType, "a type name")
	if err != nil {
		return nil, err
	}
	name, err := p.expectKind(token.Ident, "an identifier")
	if err != nil {
		return nil, err
	}
	assign, err := p.expect(token.Operator, "=")
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return cst.NewNonTerminal(cst.Declaration, typ, name, assign, value), nil
}

// parseAssignment parses: Ident '=' Expression
func (p *Parser) parseAssignment() (*cst.Node, error) {
	name, err := p.expectKind(token.Ident, "an identifier")
	if err != nil {
		return nil, err
	}
	assign, err := p.expect(token.Operator, "=")
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return cst.NewNonTerminal(cst.Assignment, name, assign, value), nil
}

// parseFunctionCall parses: Ident '(' ParameterList ')'
func (p *Parser) parseFunctionCall() (*cst.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	name, err := p.expectKind(token.Ident, "a function name")
	if err != nil {
		return nil, err
	}
	lparen, err := p.expect(token.Punctuation, "(")
	if err != nil {
		return nil, err
	}
	params, err := p.parseParameterList()
	if err != nil {
		return nil, err
	}
	rparen, err := p.expect(token.Punctuation, ")")
	if err != nil {
		return nil, err
	}
	return cst.NewNonTerminal(cst.FunctionCall, name, lparen, params, rparen), nil
}

// parseParameterList parses: (Expression | ',')*
// It stops at ')' without consuming it.
func (p *Parser) parseParameterList() (*cst.Node, error) {
	list := cst.NewNonTerminal(cst.ParameterList)
	for {
		if _, ok := p.peek(); !ok {
			return nil, p.eof("`)`")
		}
		if p.check(token.Punctuation, ")") {
			return list, nil
		}
		if p.check(token.Punctuation, ",") {
			list.Add(cst.NewTerminal(p.advance()))
			continue
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		list.Add(expr)
	}
}

// parseIf parses: 'if' '(' Expression ')' Block ['else' Block]
func (p *Parser) parseIf() (*cst.Node, error) {
	kw, err := p.expect(token.Keyword, "if")
	if err != nil {
		return nil, err
	}
	node := cst.NewNonTerminal(cst.If, kw)
	if err := p.parseCondition(node); err != nil {
		return nil, err
	}
	if err := p.parseBlock(node); err != nil {
		return nil, err
	}

	if p.check(token.Keyword, "else") {
		node.Add(cst.NewTerminal(p.advance()))
		if err := p.parseBlock(node); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// parseWhile parses: 'while' '(' Expression ')' Block
func (p *Parser) parseWhile() (*cst.Node, error) {
	kw, err := p.expect(token.Keyword, "while")
	if err != nil {
		return nil, err
	}
	node := cst.NewNonTerminal(cst.While, kw)
	if err := p.parseCondition(node); err != nil {
		return nil, err
	}
	if err := p.parseBlock(node); err != nil {
		return nil, err
	}
	return node, nil
}

// parseCondition appends '(' Expression ')' to parent.
func (p *Parser) parseCondition(parent *cst.Node) error {
	lparen, err := p.expect(token.Punctuation, "(")
	if err != nil {
		return err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return err
	}
	rparen, err := p.expect(token.Punctuation, ")")
	if err != nil {
		return err
	}
	parent.Add(lparen, cond, rparen)
	return nil
}

// parseBlock appends '{' Program '}' to parent.
func (p *Parser) parseBlock(parent *cst.Node) error {
	lbrace, err := p.expect(token.Punctuation, "{")
	if err != nil {
		return err
	}
	body, err := p.parseProgram()
	if err != nil {
		return err
	}
	rbrace, err := p.expect(token.Punctuation, "}")
	if err != nil {
		return err
	}
	parent.Add(lbrace, body, rbrace)
	return nil
}

// ============================================================
// Expressions
// ============================================================

// parseExpression parses: Term2 (('&&' | '||') Expression)?
func (p *Parser) parseExpression() (*cst.Node, error) {
	return p.parseBinary(cst.Expression, op3, p.parseTerm2)
}

// parseTerm2 parses: Term1 (('==' | '>' | '<' | '>=' | '<=') Term2)?
func (p *Parser) parseTerm2() (*cst.Node, error) {
	return p.parseBinary(cst.Term2, op2, p.parseTerm1)
}

// parseTerm1 parses: Term0 (('+' | '-') Term1)?
func (p *Parser) parseTerm1() (*cst.Node, error) {
	return p.parseBinary(cst.Term1, op1, p.parseTerm0)
}

// parseTerm0 parses: Atom (('*' | '/' | '%') Term0)?
func (p *Parser) parseTerm0() (*cst.Node, error) {
	return p.parseBinary(cst.Term0, op0, p.parseAtom)
}

// parseBinary parses operand (op self)? where self is the rule being built.
// The right-hand side recurses into the same rule rather than the operand
// rule, which makes every precedence class right-associative.
func (p *Parser) parseBinary(kind cst.Kind, ops []string, operand func() (*cst.Node, error)) (*cst.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := operand()
	if err != nil {
		return nil, err
	}
	node := cst.NewNonTerminal(kind, left)

	tok, ok := p.peek()
	if !ok || tok.Kind != token.Operator || !contains(ops, p.lexeme(tok)) {
		return node, nil
	}
	p.advance()
	right, err := p.parseBinary(kind, ops, operand)
	if err != nil {
		return nil, err
	}
	node.Add(cst.NewTerminal(tok), right)
	return node, nil
}

// parseAtom parses: FunctionCall | Ident | NumberLiteral | StringLiteral | BooleanLiteral
func (p *Parser) parseAtom() (*cst.Node, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, p.eof("an expression")
	}

	switch {
	case tok.Kind == token.Ident && p.checkNext(token.Punctuation, "("):
		call, err := p.parseFunctionCall()
		if err != nil {
			return nil, err
		}
		return cst.NewNonTerminal(cst.Atom, call), nil
	case tok.Kind == token.Ident, tok.Kind.IsLiteral():
		return cst.NewNonTerminal(cst.Atom, cst.NewTerminal(p.advance())), nil
	default:
		return nil, p.errorAt(tok, "expected an identifier, literal or function call, found `%s`", p.lexeme(tok))
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
