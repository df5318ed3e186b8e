// Command hl2 is the CLI entry point for the hl2 front end.
//
// Usage:
//
//	hl2 tokens <file> [--json]               Print tokens
//	hl2 parse  <file> [--format tree|json|yaml]  Print the parse tree
//	hl2 check  <file>...                     Report diagnostics only
//	hl2 repl                                 Start interactive REPL
//	hl2 version                              Print version information
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"hl2/internal/config"
)

// errDiagnostics signals that diagnostics were already printed and the
// process should exit non-zero without further output.
var errDiagnostics = errors.New("diagnostics reported")

// app holds state shared by all subcommands.
type app struct {
	cfgFile string
	verbose bool
	noColor bool

	cfg *config.Config
	log *slog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errDiagnostics) {
			fmt.Fprintln(os.Stderr, renderError(err, !noColorEnv()))
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "hl2",
		Short: "hl2 lexer and parser",
		Long: `hl2 turns source files of the hl2 language into a token stream and a
concrete parse tree, and reports located diagnostics on malformed input.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $HL2_CONFIG, ./hl2.toml, ~/.config/hl2/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		a.newTokensCmd(),
		a.newParseCmd(),
		a.newCheckCmd(),
		a.newReplCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// setup loads the config and builds the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command) error {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if a.cfgFile != "" {
		cfg, err = config.Load(a.cfgFile)
		path = a.cfgFile
	} else {
		cfg, path, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	if a.verbose {
		level = slog.LevelDebug
	}
	if a.noColor || noColorEnv() {
		cfg.Output.Color = false
	}

	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if path != "" {
		a.log.Debug("config loaded", "path", path)
	}
	return nil
}

func noColorEnv() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}
