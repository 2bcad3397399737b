// SPDX-License-Identifier: MPL-2.0

package build

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/syntax"

	"github.com/nativebuild/nativebuild/internal/buildenv"
	"github.com/nativebuild/nativebuild/internal/runtime"
	"github.com/nativebuild/nativebuild/internal/target"
	"github.com/nativebuild/nativebuild/pkg/platform"
)

// Banner is printed before the pipeline starts.
const Banner = "Build NativePHP app…"

// Default command lines.
const (
	DefaultFrontendUpdate = "npm update"
	DefaultBackendInstall = "composer install --no-dev"
	DefaultPackageCommand = "npm run"
)

type (
	// TargetResolver resolves the build target, prompting when needed.
	// Check must report argument problems without prompting.
	TargetResolver interface {
		Check(args target.Args) error
		Resolve(args target.Args) (target.BuildTarget, error)
	}

	// EnvironmentComposer produces the packaging environment.
	EnvironmentComposer interface {
		Compose() (*buildenv.Config, error)
	}

	// Commands holds the command lines the pipeline runs.
	Commands struct {
		FrontendUpdate string
		BackendInstall string
		// Package is followed by the packaging script name.
		Package string
	}

	// Options configures an Orchestrator.
	Options struct {
		// Root is the application root, where the backend install runs.
		Root string
		// FrontendDir holds the Electron project (npm update, npm run).
		FrontendDir string
		Commands    Commands
		Args        target.Args
		// NoInteraction disables the packaging terminal. Prompts are
		// disabled through the TargetResolver.
		NoInteraction bool
		// HostOS is a runtime.GOOS value; empty means the current host.
		HostOS string
		// DryRun records invocations instead of starting them.
		DryRun bool
		// Output receives subprocess output. Nil discards it.
		Output io.Writer
	}

	// Result describes a finished pipeline.
	Result struct {
		Target target.BuildTarget
		// Invocations lists every subprocess started, or planned in a dry run.
		Invocations []runtime.Invocation
	}

	// Orchestrator runs the packaging pipeline.
	Orchestrator struct {
		runner   runtime.Runner
		resolver TargetResolver
		composer EnvironmentComposer
		opts     Options
		console  consoleWriter
	}
)

// NewOrchestrator creates an Orchestrator. Empty command lines fall back to
// the defaults.
func NewOrchestrator(runner runtime.Runner, resolver TargetResolver, composer EnvironmentComposer, opts Options) *Orchestrator {
	if opts.Commands.FrontendUpdate == "" {
		opts.Commands.FrontendUpdate = DefaultFrontendUpdate
	}
	if opts.Commands.BackendInstall == "" {
		opts.Commands.BackendInstall = DefaultBackendInstall
	}
	if opts.Commands.Package == "" {
		opts.Commands.Package = DefaultPackageCommand
	}
	if opts.HostOS == "" {
		opts.HostOS = platform.HostOS()
	}
	return &Orchestrator{
		runner:   runner,
		resolver: resolver,
		composer: composer,
		opts:     opts,
		console:  consoleWriter{w: opts.Output},
	}
}

// Run executes every step in order and stops at the first failure, which is
// returned as a *StepFailedError.
func (o *Orchestrator) Run(ctx context.Context) (Result, error) {
	logger := log.FromContext(ctx)
	var result Result

	if err := o.resolver.Check(o.opts.Args); err != nil {
		return result, &StepFailedError{Step: StepPreflight, Err: err}
	}

	env, err := o.compose()
	if err != nil {
		return result, err
	}
	if err := o.run(ctx, &result, StepFrontendUpdate, runtime.Invocation{
		Dir:         o.opts.FrontendDir,
		Env:         env.Environ(),
		CommandLine: o.opts.Commands.FrontendUpdate,
		Forever:     true,
	}); err != nil {
		return result, err
	}

	if err := o.run(ctx, &result, StepBackendInstall, runtime.Invocation{
		Dir:         o.opts.Root,
		CommandLine: o.opts.Commands.BackendInstall,
	}); err != nil {
		return result, err
	}

	tgt, err := o.resolver.Resolve(o.opts.Args)
	if err != nil {
		return result, &StepFailedError{Step: StepResolveTarget, Err: err}
	}
	result.Target = tgt
	logger.Info("resolved build target", "target", tgt.String(), "script", tgt.PackagingScript())

	env, err = o.compose()
	if err != nil {
		return result, err
	}
	// os and arch are not validated, so the script name is quoted to reach
	// the packaging tool as a single argument.
	script, err := syntax.Quote(tgt.PackagingScript(), syntax.LangBash)
	if err != nil {
		return result, &StepFailedError{Step: StepPackage, Err: fmt.Errorf("packaging script %q: %w", tgt.PackagingScript(), err)}
	}
	err = o.run(ctx, &result, StepPackage, runtime.Invocation{
		Dir:         o.opts.FrontendDir,
		Env:         env.Environ(),
		CommandLine: o.opts.Commands.Package + " " + script,
		Interactive: o.packagingInteractive(),
		Forever:     true,
	})
	return result, err
}

// packagingInteractive reports whether the packaging run gets a terminal.
func (o *Orchestrator) packagingInteractive() bool {
	return !platform.IsWindows(o.opts.HostOS) && !o.opts.NoInteraction
}

func (o *Orchestrator) compose() (*buildenv.Config, error) {
	env, err := o.composer.Compose()
	if err != nil {
		return nil, &StepFailedError{Step: StepComposeEnvironment, Err: err}
	}
	return env, nil
}

func (o *Orchestrator) run(ctx context.Context, result *Result, step Step, inv runtime.Invocation) error {
	logger := log.FromContext(ctx).With("step", step.String())
	result.Invocations = append(result.Invocations, inv)

	if o.opts.DryRun {
		logger.Info("dry run", "dir", inv.Dir, "command", inv.CommandLine, "interactive", inv.Interactive)
		return nil
	}

	logger.Debug("starting", "dir", inv.Dir, "command", inv.CommandLine, "interactive", inv.Interactive, "forever", inv.Forever)
	if err := runtime.Run(ctx, o.runner, inv, o.console.writeLine); err != nil {
		return &StepFailedError{Step: step, Err: err}
	}
	logger.Debug("finished")
	return nil
}
