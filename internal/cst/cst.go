// Package cst defines the concrete parse tree for hl2.
//
// Every grammar rule produces a NonTerminal node that keeps all of its
// tokens, including punctuation and operators, so the tree is lossless: the
// terminals read in order reproduce the source minus whitespace.
package cst

import (
	"fmt"
	"hl2/internal/span"
	"hl2/internal/token"
)

// Kind tags a node with the grammar rule that produced it.
type Kind int

const (
	Terminal Kind = iota
	Program
	Stmt
	Declaration
	Assignment
	FunctionCall
	ParameterList
	If
	While
	Expression
	Term2
	Term1
	Term0
	Atom
)

var kindNames = map[Kind]string{
	Terminal:      "Terminal",
	Program:       "Program",
	Stmt:          "Stmt",
	Declaration:   "Declaration",
	Assignment:    "Assignment",
	FunctionCall:  "FunctionCall",
	ParameterList: "ParameterList",
	If:            "If",
	While:         "While",
	Expression:    "Expression",
	Term2:         "Term2",
	Term1:         "Term1",
	Term0:         "Term0",
	Atom:          "Atom",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is a parse tree node. Terminal nodes carry Token and have no
// children; every other kind owns its children in source order.
type Node struct {
	Kind     Kind
	Token    token.Token
	Children []*Node
}

// NewTerminal wraps a token in a leaf node.
func NewTerminal(tok token.Token) *Node {
	return &Node{Kind: Terminal, Token: tok}
}

// NewNonTerminal creates an interior node of the given rule kind.
func NewNonTerminal(kind Kind, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

// IsTerminal reports whether n is a leaf.
func (n *Node) IsTerminal() bool {
	return n.Kind == Terminal
}

// Add appends children to n.
func (n *Node) Add(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// Span returns the byte range covered by n's terminals. An empty
// nonterminal (for example an empty Program body) has a zero span.
func (n *Node) Span() span.Span {
	first := n.edgeTerminal(false)
	if first == nil {
		return span.Span{}
	}
	last := n.edgeTerminal(true)
	return span.Span{Start: first.Token.Start, End: last.Token.End}
}

// edgeTerminal returns the first terminal under n, or the last one when
// fromEnd is set. Empty subtrees are skipped.
func (n *Node) edgeTerminal(fromEnd bool) *Node {
	if n.IsTerminal() {
		return n
	}
	for i := range n.Children {
		c := n.Children[i]
		if fromEnd {
			c = n.Children[len(n.Children)-1-i]
		}
		if t := c.edgeTerminal(fromEnd); t != nil {
			return t
		}
	}
	return nil
}
