// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"pyembed/internal/config"
	"pyembed/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "pyembed",
		Short: "Bundle a Python script's dependencies into the script itself",
		Long: TitleStyle.Render("pyembed") + SubtitleStyle.Render(" - Bundle a Python script's dependencies into the script itself") + `

pyembed rewrites a standalone Python script so that the packages it
imports travel inside the file as compressed blobs. The rewritten
script carries a small bootstrap that unpacks the packages into a
scratch directory at runtime and splices it into sys.path, so the
result runs on machines where nothing is pip-installed.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Make sure the packages to bundle are importable (PYTHONPATH)
  2. Run pyembed on your script
  3. Ship the single output file

` + SubtitleStyle.Render("Examples:") + `
  pyembed scan tool.py                   List embeddable imports
  pyembed embed tool.py                  Embed every scanned import
  pyembed embed tool.py -p mylib         Embed a specific package
  pyembed pick tool.py                   Choose packages interactively
  pyembed config show                    Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/pyembed/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(embedCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	// Set custom config file path if provided via --config flag
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}

	if verbose {
		log.SetLevel(log.DebugLevel)
	}
	log.SetReportTimestamp(false)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
