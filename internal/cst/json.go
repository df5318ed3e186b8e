package cst

import "hl2/internal/span"

// NodeToMap converts a parse tree to a map suitable for JSON or YAML
// serialization. This produces a tagged-union structure: every node has a
// "kind" field, terminals add "token" and "lexeme", nonterminals add
// "children".
func NodeToMap(n *Node, source string) map[string]interface{} {
	if n == nil {
		return nil
	}
	result, _, _ := nodeToMap(n, source)
	return result
}

// nodeToMap also returns n's span and whether n covers any token, so each
// parent derives its span from its children instead of walking its subtree.
func nodeToMap(n *Node, source string) (map[string]interface{}, span.Span, bool) {
	if n.IsTerminal() {
		s := n.Token.Span()
		return m(n.Kind.String(), s,
			"token", n.Token.Kind.String(),
			"lexeme", n.Token.Lexeme(source)), s, true
	}

	var (
		s     span.Span
		found bool
	)
	children := make([]interface{}, len(n.Children))
	for i, c := range n.Children {
		child, cs, ok := nodeToMap(c, source)
		children[i] = child
		if !ok {
			continue
		}
		if !found {
			s.Start, found = cs.Start, true
		}
		s.End = cs.End
	}
	return m(n.Kind.String(), s, "children", children), s, found
}

// ---- helpers ----

// m builds a map with kind, span, and extra key-value pairs.
func m(kind string, s span.Span, kvs ...interface{}) map[string]interface{} {
	result := map[string]interface{}{
		"kind": kind,
		"span": spanToMap(s),
	}
	for i := 0; i+1 < len(kvs); i += 2 {
		key := kvs[i].(string)
		result[key] = kvs[i+1]
	}
	return result
}

func spanToMap(s span.Span) map[string]interface{} {
	return map[string]interface{}{
		"start": int(s.Start),
		"end":   int(s.End),
	}
}
