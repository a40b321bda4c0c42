package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/rigup/internal/adapters/logging"
	"github.com/felixgeelhaar/rigup/internal/domain/config"
	"github.com/felixgeelhaar/rigup/internal/ports"
)

var (
	// Global flags
	manifestPath string
	verbose      bool
	noColor      bool

	// settings are operator defaults, loaded before any command runs.
	settings = config.DefaultSettings()
)

var rootCmd = &cobra.Command{
	Use:   "rigup",
	Short: "An idempotent workstation provisioner",
	Long: `Rigup converges a workstation onto a declarative manifest.

Every run probes the machine first and applies only what is missing or
outdated, so re-running is always safe:
  Manifest → Registry → Probe → Apply → Report`,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		loaded, err := config.LoadSettings()
		if err != nil {
			// A broken settings file downgrades to defaults; the run itself
			// should not be blocked by it.
			printError(err)
		}
		settings = loaded
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "", "manifest file (default: rigup.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable styled output")

	registerFlagCompletions()

	rootCmd.AddCommand(versionCmd)
}

// resolveManifestPath applies the flag, then settings, then the default.
func resolveManifestPath() string {
	if manifestPath != "" {
		return manifestPath
	}
	return settings.Manifest
}

// resolveColor reports whether styled output is enabled.
func resolveColor() bool {
	return settings.Color && !noColor
}

// newLogger builds the run logger from flags and settings.
func newLogger() ports.Logger {
	level := ports.ParseLevel(settings.LogLevel)
	if verbose {
		level = ports.LevelDebug
	}
	return logging.NewZerologLogger(
		logging.WithLevel(level),
		logging.WithConsoleFormat(true),
	)
}

// formatError returns a user-friendly error message.
// With verbose=false: shows only the user message and suggestion.
// With verbose=true: also shows the underlying technical error.
func formatError(err error) string {
	var userErr *config.UserError
	if errors.As(err, &userErr) {
		msg := userErr.Message
		if userErr.Context != "" {
			msg += fmt.Sprintf(" (at %s)", userErr.Context)
		}
		if userErr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", userErr.Suggestion)
		}
		if verbose && userErr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", userErr.Underlying)
		}
		return msg
	}
	return err.Error()
}

// printError prints an error message to stderr with proper formatting.
func printError(err error) {
	printErrorTo(os.Stderr, err)
}

// printErrorTo prints an error message to the given writer.
func printErrorTo(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "Error: %s\n", formatError(err))
}

// registerFlagCompletions sets up custom completions for global flags.
func registerFlagCompletions() {
	// Complete --manifest with YAML files
	_ = rootCmd.RegisterFlagCompletionFunc("manifest", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
	})
}
