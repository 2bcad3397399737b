// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nativebuild/nativebuild/internal/config"
	"github.com/nativebuild/nativebuild/internal/issue"
	"github.com/nativebuild/nativebuild/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootOptions holds the global flags.
type rootOptions struct {
	configPath string
	root       string
	verbose    bool
}

// appRoot returns the absolute application root.
func (o *rootOptions) appRoot() (string, error) {
	root := o.root
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve application root %q: %w", root, err)
	}
	return abs, nil
}

// loadOptions returns the config load inputs for the application root.
func (o *rootOptions) loadOptions() (config.LoadOptions, error) {
	root, err := o.appRoot()
	if err != nil {
		return config.LoadOptions{}, err
	}
	return config.LoadOptions{Root: root, ConfigFilePath: o.configPath}, nil
}

// NewRootCommand creates the nativebuild command tree.
func NewRootCommand(app *App) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "nativebuild",
		Short: "Package a NativePHP desktop application",
		Long: TitleStyle.Render("nativebuild") + SubtitleStyle.Render(" - package a NativePHP desktop application") + `

nativebuild updates the Electron frontend, installs the production PHP
dependencies and runs the packaging script for the selected operating
system and processor architecture.

` + SubtitleStyle.Render("Examples:") + `
  nativebuild build                 Prompt for the target and build it
  nativebuild build mac -arm64 yes  Build and publish the Apple Silicon app
  nativebuild build all             Build every target
  nativebuild targets               List the available architectures
  nativebuild config show           Show the effective configuration`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := log.InfoLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			logger := log.NewWithOptions(app.stderr, log.Options{
				Prefix: "nativebuild",
				Level:  level,
			})
			cmd.SetContext(log.WithContext(cmd.Context(), logger))
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is <root>/nativebuild.cue)")
	rootCmd.PersistentFlags().StringVar(&opts.root, "root", "", "application root (default is the current directory)")

	rootCmd.AddCommand(newBuildCommand(app, opts))
	rootCmd.AddCommand(newTargetsCommand(app, opts))
	rootCmd.AddCommand(newConfigCommand(app, opts))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits the process with the resulting code.
// This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(types.ExitFailure))
	}

	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler(app.stderr)),
	); err != nil {
		os.Exit(int(exitCodeOf(err)))
	}
}

// errorHandler renders ServiceErrors with their catalog entry and leaves
// everything else, such as usage errors, to fang.
func errorHandler(stderr io.Writer) fang.ErrorHandler {
	return func(w io.Writer, styles fang.Styles, err error) {
		var svcErr *ServiceError
		if errors.As(err, &svcErr) {
			renderServiceError(stderr, svcErr)
			return
		}
		fang.DefaultErrorHandler(w, styles, err)
	}
}

// exitCodeOf returns the process exit code for an error returned by the
// command tree.
func exitCodeOf(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code.Normalize()
	}
	return types.ExitFailure
}

// formatErrorForDisplay formats an error for user display.
// ActionableErrors use their Format method; verbose adds the error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// styledError renders the one-line error header printed before catalog help.
func styledError(err error, verbose bool) string {
	return fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
}
