package cst

import (
	"fmt"
	"io"
	"strings"
)

// Format writes an indented dump of the tree, one node per line. Terminals
// are written as Kind(lexeme).
func Format(w io.Writer, n *Node, source string) error {
	return format(w, n, source, 0)
}

func format(w io.Writer, n *Node, source string, depth int) error {
	indent := strings.Repeat("  ", depth)
	if n.IsTerminal() {
		_, err := fmt.Fprintf(w, "%s%s\n", indent, n.Token.Describe(source))
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%s\n", indent, n.Kind); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := format(w, c, source, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Sexpr renders the tree on one line, e.g. Term1(Term0(Atom(Num(1))) Op(+) ...).
func Sexpr(n *Node, source string) string {
	var sb strings.Builder
	sexpr(&sb, n, source)
	return sb.String()
}

func sexpr(sb *strings.Builder, n *Node, source string) {
	if n.IsTerminal() {
		sb.WriteString(n.Token.Describe(source))
		return
	}
	sb.WriteString(n.Kind.String())
	sb.WriteByte('(')
	for i, c := range n.Children {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sexpr(sb, c, source)
	}
	sb.WriteByte(')')
}
