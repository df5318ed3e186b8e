package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"hl2/internal/diag"
	"hl2/internal/span"
	"hl2/internal/token"
)

// ---- styles ----

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	locStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	kindStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func paint(style lipgloss.Style, color bool, text string) string {
	if !color {
		return text
	}
	return style.Render(text)
}

// ---- output helpers ----

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("JSON encoding failed: %w", err)
	}
	return nil
}

func printYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("YAML encoding failed: %w", err)
	}
	return enc.Close()
}

// renderDiag prefixes the diagnostic's own text with "error:" and, for
// located diagnostics, appends its code.
func renderDiag(d diag.Diagnostic, color bool) string {
	prefix := paint(errorStyle, color, "error:")
	if !d.Located() {
		return fmt.Sprintf("%s %s", prefix, d)
	}
	return fmt.Sprintf("%s %s %s", prefix, paint(locStyle, color, d.String()), paint(dimStyle, color, "["+d.Code+"]"))
}

func printDiag(w io.Writer, d diag.Diagnostic, color bool) {
	fmt.Fprintln(w, renderDiag(d, color))
}

// renderError formats a failure that is not a front-end diagnostic.
func renderError(err error, color bool) string {
	return fmt.Sprintf("%s %s", paint(errorStyle, color, "error:"), err)
}

func diagsToSlice(diags []diag.Diagnostic) []map[string]interface{} {
	result := make([]map[string]interface{}, len(diags))
	for i, d := range diags {
		result[i] = map[string]interface{}{
			"code":    d.Code,
			"file":    d.File,
			"message": d.Message,
		}
		if d.Located() {
			result[i]["line"] = d.Line
		}
		if d.Span != nil {
			result[i]["offset"] = int(d.Span.Start)
		}
	}
	return result
}

// ---- token output helpers ----

func printTokensText(w io.Writer, tokens []token.Token, source string, color bool) {
	for _, tok := range tokens {
		kind := paint(kindStyle, color, fmt.Sprintf("%-10s", tok.Kind))
		fmt.Fprintf(w, "%s %-20s %d:%d\n", kind, tok.Lexeme(source),
			span.Line(source, tok.Start), span.Column(source, tok.Start))
	}
}

type tokenJSON struct {
	Kind   string `json:"kind"`
	Lexeme string `json:"lexeme"`
	Line   int    `json:"line"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

func tokensToSlice(tokens []token.Token, source string) []tokenJSON {
	toks := make([]tokenJSON, 0, len(tokens))
	for _, tok := range tokens {
		toks = append(toks, tokenJSON{
			Kind:   tok.Kind.String(),
			Lexeme: tok.Lexeme(source),
			Line:   span.Line(source, tok.Start),
			Start:  int(tok.Start),
			End:    int(tok.End),
		})
	}
	return toks
}
