package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"hl2/internal/config"
	"hl2/internal/cst"
	"hl2/internal/diag"
)

func (a *app) newParseCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a file and print its parse tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = a.cfg.Output.Format
			}
			if !validFormat(format) {
				return fmt.Errorf("unknown format %q, want one of %s", format, strings.Join(config.Formats, ", "))
			}

			filename := args[0]
			source, err := readSource(filename)
			if err != nil {
				return err
			}

			tree, err := a.analyze(source, filename)
			if err != nil {
				d := diag.FromError(err, filename, source)
				printDiag(cmd.ErrOrStderr(), d, a.cfg.Output.Color)
				return errDiagnostics
			}
			return writeTree(cmd.OutOrStdout(), tree, source, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "tree", "output format: tree, json or yaml")
	return cmd
}

// writeTree prints tree in the requested format.
func writeTree(w io.Writer, tree *cst.Node, source, format string) error {
	switch format {
	case "json":
		return printJSON(w, cst.NodeToMap(tree, source))
	case "yaml":
		return printYAML(w, cst.NodeToMap(tree, source))
	default:
		return cst.Format(w, tree, source)
	}
}

func validFormat(format string) bool {
	for _, f := range config.Formats {
		if f == format {
			return true
		}
	}
	return false
}
