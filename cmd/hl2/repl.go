package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"hl2/internal/diag"
)

const replFile = "<repl>"

var (
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func (a *app) newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive shell that prints parse trees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRepl()
		},
	}
}

// replSession accumulates input lines until braces balance.
type replSession struct {
	accumulated strings.Builder
	braceDepth  int
	showTokens  bool
}

// feed adds a line and reports whether a complete chunk is ready.
func (s *replSession) feed(line string) (string, bool) {
	s.braceDepth += strings.Count(line, "{") - strings.Count(line, "}")
	s.accumulated.WriteString(line)
	s.accumulated.WriteString("\n")

	if s.braceDepth > 0 {
		return "", false
	}
	s.braceDepth = 0
	source := s.accumulated.String()
	s.accumulated.Reset()
	return source, true
}

func (s *replSession) reset() {
	s.accumulated.Reset()
	s.braceDepth = 0
}

// eval lexes and parses one chunk, writing the tree or tokens to out and
// diagnostics to errOut.
func (a *app) eval(s *replSession, source string, out, errOut io.Writer) {
	color := a.cfg.Output.Color
	if s.showTokens {
		tokens, err := a.lex(source, replFile)
		if err != nil {
			printDiag(errOut, diag.FromError(err, replFile, source), color)
			return
		}
		printTokensText(out, tokens, source, color)
		return
	}

	tree, err := a.analyze(source, replFile)
	if err != nil {
		printDiag(errOut, diag.FromError(err, replFile, source), color)
		return
	}
	if err := writeTree(out, tree, source, a.cfg.Output.Format); err != nil {
		fmt.Fprintln(errOut, renderError(err, color))
	}
}

func (a *app) runRepl() error {
	color := a.cfg.Output.Color
	prompt := paint(promptStyle, color, a.cfg.REPL.Prompt)
	cont := paint(dimStyle, color, "...   ")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       a.cfg.REPL.HistoryFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("readline init failed: %w", err)
	}
	defer rl.Close()

	fmt.Fprintf(rl.Stdout(), "%s %s\n\n",
		paint(bannerStyle, color, "hl2 REPL"),
		paint(dimStyle, color, "(type 'exit' or Ctrl+D to quit, ':tokens' / ':tree' to switch output)"))

	s := &replSession{}
	for {
		if s.braceDepth > 0 {
			rl.SetPrompt(cont)
		} else {
			rl.SetPrompt(prompt)
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if s.braceDepth > 0 {
					// cancel multi-line input
					s.reset()
					continue
				}
				fmt.Fprintf(rl.Stdout(), "%s\n", paint(dimStyle, color, "(use 'exit' or Ctrl+D to quit)"))
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(rl.Stdout())
			}
			return nil
		}

		if s.braceDepth == 0 {
			switch strings.TrimSpace(line) {
			case "exit":
				return nil
			case ":tokens":
				s.showTokens = true
				continue
			case ":tree":
				s.showTokens = false
				continue
			}
		}

		source, ready := s.feed(line)
		if !ready || strings.TrimSpace(source) == "" {
			continue
		}
		a.eval(s, source, rl.Stdout(), rl.Stderr())
	}
}
