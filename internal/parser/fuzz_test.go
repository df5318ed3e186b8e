package parser

import (
	"errors"
	"hl2/internal/cst"
	"hl2/internal/lexer"
	"reflect"
	"testing"
)

func FuzzLexParse(f *testing.F) {
	for _, src := range validPrograms {
		f.Add(src)
	}
	f.Add("if (a) { while (b) { f(1,,2); } } else { }")
	f.Add("x = \"unterminated")
	f.Add("a & b")
	f.Add("}}}")

	f.Fuzz(func(t *testing.T, source string) {
		tokens, err := lexer.Lex(source, "fuzz.hl2")
		if err != nil {
			var pe *lexer.PointError
			if !errors.Is(err, lexer.ErrEmptySource) && !errors.As(err, &pe) {
				t.Fatalf("unexpected lex error type %T", err)
			}
			return
		}

		again, _ := lexer.Lex(source, "fuzz.hl2")
		if !reflect.DeepEqual(tokens, again) {
			t.Fatal("lexing is not deterministic")
		}
		for i, tok := range tokens {
			if tok.Start >= tok.End || int(tok.End) > len(source) {
				t.Fatalf("token %d has bad span %s", i, tok.Span())
			}
			if i > 0 && tok.Start < tokens[i-1].End {
				t.Fatalf("token %d overlaps its predecessor", i)
			}
		}

		tree, err := Parse(tokens, source)
		if err != nil {
			var raw *RawError
			var pe *PointError
			if !errors.As(err, &raw) && !errors.As(err, &pe) {
				t.Fatalf("unexpected parse error type %T", err)
			}
			return
		}
		if !reflect.DeepEqual(cst.Terminals(tree), tokens) {
			t.Fatal("tree terminals do not reproduce the token stream")
		}
	})
}
