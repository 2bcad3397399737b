// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"os"
	"time"

	"github.com/nativebuild/nativebuild/internal/config"
	"github.com/nativebuild/nativebuild/internal/runtime"
	"github.com/nativebuild/nativebuild/internal/target"
	"github.com/nativebuild/nativebuild/internal/tui"
	"github.com/nativebuild/nativebuild/pkg/platform"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer; every Cobra handler receives an App reference.
	App struct {
		Config   config.Provider
		runner   runtime.Runner
		prompter target.Prompter
		hostOS   string
		stdin    io.Reader
		stdout   io.Writer
		stderr   io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		// Runner replaces the native subprocess runner.
		Runner runtime.Runner
		// Prompter replaces the terminal prompts.
		Prompter target.Prompter
		// HostOS overrides the runtime.GOOS value used for target defaults.
		HostOS string
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewApp creates an App from deps.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.HostOS == "" {
		deps.HostOS = platform.HostOS()
	}

	return &App{
		Config:   deps.Config,
		runner:   deps.Runner,
		prompter: deps.Prompter,
		hostOS:   deps.HostOS,
		stdin:    deps.Stdin,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}, nil
}

// newRunner returns the injected runner or a native one limited to timeout.
func (a *App) newRunner(timeout time.Duration) runtime.Runner {
	if a.runner != nil {
		return a.runner
	}
	return runtime.NewNativeRunner(
		runtime.WithTimeout(timeout),
		runtime.WithHostOS(a.hostOS),
		runtime.WithStdin(a.stdin),
	)
}

// newPrompter returns the prompter for a build. Disabled interaction always
// wins over an injected prompter.
func (a *App) newPrompter(ui config.UIConfig, noInteraction bool) target.Prompter {
	switch {
	case noInteraction:
		return tui.NonInteractivePrompter{}
	case a.prompter != nil:
		return a.prompter
	}
	return tui.NewPrompter(tui.Config{
		Theme:      tui.Theme(ui.Theme),
		Accessible: ui.Accessible,
	})
}
