// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"corekit/internal/config"
	"corekit/internal/issue"

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
		Use:   "corekit",
		Short: "A dependency and build-manifest tool for hardware cores",
		Long: TitleStyle.Render("corekit") + SubtitleStyle.Render(" - A dependency and build-manifest tool for hardware cores") + `

corekit discovers hardware cores described in '*.core.cue' files,
resolves their dependency graphs, and composes ordered file manifests
for downstream tools: file-list generation, lint runs, and manifest
export.

Cores declare filesets and targets in CUE format. Targets can extend
other targets, depend on other cores, and guard filesets or
dependencies with conditions on the active tool, flow, or target.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Create a <name>.core.cue file next to your RTL
  2. Declare filesets and at least a "default" target
  3. Resolve it with: corekit resolve <core>

` + SubtitleStyle.Render("Examples:") + `
  corekit list                      List all discovered cores
  corekit validate                  Check every corefile for errors
  corekit resolve fifo              Print the resolved manifest for 'fifo'
  corekit run fifo --flow lint      Lint 'fifo' with the configured tool
  corekit config show               Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/corekit/config.cue)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(runCmd)
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

// initRootConfig reads in the config file and applies global flags.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	cfg, err := config.Load()
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.Verbose
	}
	if verbose {
		log.Default().SetLevel(log.DebugLevel)
	}
}

// loadConfig returns the effective configuration, falling back to defaults
// when loading fails (the warning was already printed by initRootConfig).
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil || cfg == nil {
		return config.DefaultConfig()
	}
	return cfg
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
