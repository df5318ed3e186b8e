package main

import (
	"github.com/spf13/cobra"

	"hl2/internal/diag"
)

func (a *app) newTokensCmd() *cobra.Command {
	var jsonMode bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Tokenize a file and print its tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			source, err := readSource(filename)
			if err != nil {
				return err
			}

			tokens, err := a.lex(source, filename)
			if err != nil {
				d := diag.FromError(err, filename, source)
				if jsonMode {
					if jerr := printJSON(cmd.OutOrStdout(), map[string]interface{}{
						"tokens":      []tokenJSON{},
						"diagnostics": diagsToSlice([]diag.Diagnostic{d}),
					}); jerr != nil {
						return jerr
					}
				} else {
					printDiag(cmd.ErrOrStderr(), d, a.cfg.Output.Color)
				}
				return errDiagnostics
			}

			if jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"tokens":      tokensToSlice(tokens, source),
					"diagnostics": diagsToSlice(nil),
				})
			}
			printTokensText(cmd.OutOrStdout(), tokens, source, a.cfg.Output.Color)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonMode, "json", false, "print tokens as JSON")
	return cmd
}
