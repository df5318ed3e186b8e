package cst

import (
	"hl2/internal/token"
	"strings"
)

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the node just visited.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// Terminals returns the tokens of all terminal nodes in tree order.
func Terminals(n *Node) []token.Token {
	var toks []token.Token
	Walk(n, func(c *Node) bool {
		if c.IsTerminal() {
			toks = append(toks, c.Token)
		}
		return true
	})
	return toks
}

// Text concatenates the lexemes of all terminals under n.
func Text(n *Node, source string) string {
	var sb strings.Builder
	for _, tok := range Terminals(n) {
		sb.WriteString(tok.Lexeme(source))
	}
	return sb.String()
}

// Find returns every node of the given kind under n, in pre-order.
func Find(n *Node, kind Kind) []*Node {
	var found []*Node
	Walk(n, func(c *Node) bool {
		if c.Kind == kind {
			found = append(found, c)
		}
		return true
	})
	return found
}
