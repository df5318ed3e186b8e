package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hl2/internal/diag"
)

func (a *app) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Lex and parse files, reporting diagnostics only",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			color := a.cfg.Output.Color
			failed := 0
			for _, filename := range args {
				source, err := readSource(filename)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), renderError(err, color))
					failed++
					continue
				}
				if _, err := a.analyze(source, filename); err != nil {
					printDiag(cmd.ErrOrStderr(), diag.FromError(err, filename, source), color)
					failed++
					continue
				}
				if a.verbose {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", paint(okStyle, color, "ok"), filename)
				}
			}

			a.log.Info("check finished", "files", len(args), "failed", failed)
			if failed > 0 {
				return errDiagnostics
			}
			return nil
		},
	}
}
