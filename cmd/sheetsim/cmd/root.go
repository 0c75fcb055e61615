// Package cmd implements the sheetsim CLI commands.
//
// The root command dispatches to subcommands (resolve, replay) registered
// from their own files.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-drift/modalsheet/pkg/errors"
	"github.com/go-drift/modalsheet/pkg/logging"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "sheetsim",
	Short: "sheetsim - modal sheet layout and gesture simulator",
	Long: `sheetsim resolves snap point layouts and replays scripted sheet
scenarios (open, drag, scroll, keyboard) against a fake frame clock.

Use "sheetsim <command> --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		errors.SetHandler(&errors.LogHandler{Logger: newLogger(cmd.ErrOrStderr()), Verbose: verbose})
	},
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (built %s)", Version, BuildTime)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log sheet debug records")
}

// RegisterCommand adds a subcommand to the CLI.
func RegisterCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// Execute runs the CLI with os.Args.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

func newLogger(w io.Writer) *slog.Logger {
	if verbose {
		return logging.NewWriter(w, slog.LevelDebug)
	}
	return logging.NewWriter(w, slog.LevelWarn)
}
