// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nativebuild/nativebuild/internal/app/build"
	"github.com/nativebuild/nativebuild/internal/buildenv"
	"github.com/nativebuild/nativebuild/internal/config"
	"github.com/nativebuild/nativebuild/internal/issue"
	"github.com/nativebuild/nativebuild/internal/phpbin"
	"github.com/nativebuild/nativebuild/internal/target"
	"github.com/nativebuild/nativebuild/internal/updater"
	"github.com/nativebuild/nativebuild/pkg/platform"
)

type buildOptions struct {
	noInteraction bool
	dryRun        bool
}

func newBuildCommand(app *App, root *rootOptions) *cobra.Command {
	opts := &buildOptions{}

	buildCmd := &cobra.Command{
		Use:   "build [os] [arch] [publish]",
		Short: "Build the application installers",
		Long: `Build the application installers.

The frontend dependencies are updated and the production PHP dependencies
installed before the packaging script "<build|publish>:<os><arch>" runs.

Arguments that are not given are prompted for:
  os        all, linux, mac or win (defaults to the current host)
  arch      architecture suffix such as -x64 or -arm64, or all
  publish   true/false, yes/no, 1/0 or publish/build

Building for "all" ignores arch and publish.`,
		Example: `  nativebuild build
  nativebuild build linux -x64 false
  nativebuild build win all publish --no-interaction
  nativebuild build all --dry-run`,
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), app, root, opts, args)
		},
	}

	buildCmd.Flags().BoolVarP(&opts.noInteraction, "no-interaction", "n", false, "never prompt; every selection must be passed as an argument")
	buildCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the commands without running them")

	return buildCmd
}

// parseBuildArgs converts the positional arguments. Empty strings count as
// not supplied.
func parseBuildArgs(args []string) (target.Args, error) {
	var parsed target.Args
	if len(args) > 0 {
		parsed.OS = args[0]
	}
	if len(args) > 1 {
		parsed.Arch = args[1]
	}
	if len(args) > 2 && args[2] != "" {
		publish, err := target.ParsePublish(args[2])
		if err != nil {
			return target.Args{}, err
		}
		parsed.Publish = &publish
	}
	return parsed, nil
}

func runBuild(ctx context.Context, app *App, root *rootOptions, opts *buildOptions, args []string) error {
	logger := log.FromContext(ctx)

	targetArgs, err := parseBuildArgs(args)
	if err != nil {
		return buildFailure(err, root.verbose)
	}

	loadOpts, err := root.loadOptions()
	if err != nil {
		return err
	}
	cfg, err := app.Config.Load(ctx, loadOpts)
	if err != nil {
		return buildFailure(err, root.verbose)
	}
	if cfg.Source != "" {
		logger.Debug("loaded configuration", "file", cfg.Source)
	}

	locator, err := phpbin.NewLocator(loadOpts.Root, cfg.PHP.PackageDir, cfg.PHP.Version)
	if err != nil {
		return buildFailure(err, root.verbose)
	}
	facade, err := updater.New(cfg.UpdaterSettings())
	if err != nil {
		return buildFailure(err, root.verbose)
	}
	if facade.Enabled() {
		logger.Debug("updater enabled", "provider", facade.Provider())
	}

	if sandbox := platform.DetectSandbox(); sandbox != platform.SandboxNone {
		logger.Debug("spawning commands on the host", "sandbox", sandbox)
	}

	timeout, err := cfg.Process.ProcessTimeout()
	if err != nil {
		return buildFailure(err, root.verbose)
	}

	selector := target.NewSelector(app.newPrompter(cfg.UI, opts.noInteraction), locator, target.SelectorOptions{
		HostOS:        app.hostOS,
		NoInteraction: opts.noInteraction,
	})
	orchestrator := build.NewOrchestrator(
		app.newRunner(timeout),
		selector,
		buildenv.NewComposer(loadOpts.Root, cfg.BuildApp(), locator, facade),
		build.Options{
			Root:        loadOpts.Root,
			FrontendDir: resolveDir(loadOpts.Root, cfg.Build.FrontendDir),
			Commands: build.Commands{
				FrontendUpdate: cfg.Build.FrontendUpdate,
				BackendInstall: cfg.Build.BackendInstall,
				Package:        cfg.Build.PackageCommand,
			},
			Args:          targetArgs,
			NoInteraction: opts.noInteraction,
			HostOS:        app.hostOS,
			DryRun:        opts.dryRun,
			Output:        app.stdout,
		},
	)

	fmt.Fprintln(app.stdout, TitleStyle.Render(build.Banner))

	result, err := orchestrator.Run(ctx)
	if err != nil {
		return buildFailure(err, root.verbose)
	}

	if opts.dryRun {
		fmt.Fprintln(app.stdout, SubtitleStyle.Render("Planned commands:"))
		for _, inv := range result.Invocations {
			fmt.Fprintf(app.stdout, "  %s %s\n", SubtitleStyle.Render("("+inv.Dir+")"), CmdStyle.Render(inv.CommandLine))
		}
		return nil
	}

	fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("✓ Finished"), CmdStyle.Render(result.Target.PackagingScript()))
	return nil
}

// resolveDir joins a config-relative directory with the application root.
func resolveDir(root, dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(root, dir)
}

// buildFailure wraps err with its exit code and catalog entry.
func buildFailure(err error, verbose bool) error {
	code, issueID := classifyBuildError(err)
	return &ExitError{Code: code, Err: newServiceError(err, issueID, styledError(err, verbose))}
}

// configFailure wraps a configuration load error for the config commands.
func configFailure(err error, verbose bool) error {
	return &ExitError{
		Code: ExitConfig,
		Err:  newServiceError(err, issue.ConfigLoadFailedId, styledError(err, verbose)),
	}
}

// loadConfig loads the configuration for the non-build commands.
func loadConfig(ctx context.Context, app *App, root *rootOptions) (*config.Config, config.LoadOptions, error) {
	loadOpts, err := root.loadOptions()
	if err != nil {
		return nil, loadOpts, err
	}
	cfg, err := app.Config.Load(ctx, loadOpts)
	if err != nil {
		return nil, loadOpts, configFailure(err, root.verbose)
	}
	return cfg, loadOpts, nil
}
