// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nativebuild/nativebuild/internal/config"
)

// Output formats of `config show`.
const (
	formatCUE  = "cue"
	formatTOML = "toml"
)

// newConfigCommand creates the `nativebuild config` command tree.
func newConfigCommand(app *App, root *rootOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage build configuration",
		Long: `Manage build configuration.

Configuration is read from nativebuild.cue in the application root. Every
key can be overridden with a NATIVEBUILD_* variable, in the environment or in
the project .env file (e.g. NATIVEBUILD_UPDATER_ENABLED=true).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration with secrets masked",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showConfig(cmd.Context(), app, root, format)
		},
	}
	showCmd.Flags().StringVar(&format, "format", formatCUE, "output format (cue, toml)")
	cfgCmd.AddCommand(showCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create a starter configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd.Context(), app, root)
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, root *rootOptions, format string) error {
	if format != formatCUE && format != formatTOML {
		return &ExitError{Code: ExitUsage, Err: fmt.Errorf("unknown format %q (valid: cue, toml)", format)}
	}

	cfg, _, err := loadConfig(ctx, app, root)
	if err != nil {
		return err
	}
	if cfg.Source == "" {
		log.FromContext(ctx).Info("no configuration file found, showing defaults")
	}

	redacted := cfg.Redacted()
	switch format {
	case formatTOML:
		out, err := config.RenderTOML(&redacted)
		if err != nil {
			return err
		}
		_, err = app.stdout.Write(out)
		return err
	default:
		_, err := fmt.Fprint(app.stdout, config.GenerateCUE(&redacted))
		return err
	}
}

func initConfig(ctx context.Context, app *App, root *rootOptions) error {
	appRoot, err := root.appRoot()
	if err != nil {
		return err
	}
	path := root.configPath
	if path == "" {
		path = config.DefaultConfigPath(appRoot)
	}

	if err := config.CreateDefaultConfig(path, config.AppConfig{Name: filepath.Base(appRoot)}); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return &ExitError{Code: ExitConfig, Err: fmt.Errorf("%s already exists", path)}
		}
		return err
	}

	log.FromContext(ctx).Debug("created configuration", "file", path)
	fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("✓ Created"), CmdStyle.Render(path))
	return nil
}
