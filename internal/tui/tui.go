// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// Theme represents the visual theme for prompts.
type Theme string

const (
	// ThemeDefault uses the default huh theme.
	ThemeDefault Theme = "default"
	// ThemeCharm uses the Charm theme.
	ThemeCharm Theme = "charm"
	// ThemeDracula uses the Dracula theme.
	ThemeDracula Theme = "dracula"
	// ThemeCatppuccin uses the Catppuccin theme.
	ThemeCatppuccin Theme = "catppuccin"
	// ThemeBase16 uses the Base16 theme.
	ThemeBase16 Theme = "base16"
)

var (
	// ErrCancelled is returned when the user aborts a prompt.
	ErrCancelled = errors.New("prompt cancelled by user")

	// ErrNoOptions is returned when a selection prompt has nothing to offer.
	ErrNoOptions = errors.New("no options to choose from")
)

// Config holds common configuration for prompts.
type Config struct {
	// Theme specifies the visual theme to use.
	Theme Theme
	// Accessible enables accessible mode for screen readers.
	Accessible bool
	// Input is where answers are read from (nil for stdin).
	Input io.Reader
	// Output specifies where to write the prompt (nil for auto).
	Output io.Writer
}

// DefaultConfig returns the default prompt configuration. Accessible mode is
// enabled when stdin is not a terminal or ACCESSIBLE is set, and prompts
// then go to stderr so they stay visible when stdout is redirected.
func DefaultConfig() Config {
	accessible := shouldUseAccessible(Config{})

	var output io.Writer = os.Stdout
	if accessible {
		output = os.Stderr
	}

	return Config{
		Theme:      ThemeDefault,
		Accessible: accessible,
		Output:     output,
	}
}

// isInputTerminal returns true if stdin is connected to a terminal.
func isInputTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func shouldUseAccessible(cfg Config) bool {
	return cfg.Accessible || os.Getenv("ACCESSIBLE") != "" || !isInputTerminal()
}

func getOutputWriter(cfg Config) io.Writer {
	if cfg.Output != nil {
		return cfg.Output
	}
	if shouldUseAccessible(cfg) {
		return os.Stderr
	}
	return os.Stdout
}

// getHuhTheme converts a Theme to a huh.Theme.
func getHuhTheme(t Theme) *huh.Theme {
	switch t {
	case ThemeCharm:
		return huh.ThemeCharm()
	case ThemeDracula:
		return huh.ThemeDracula()
	case ThemeCatppuccin:
		return huh.ThemeCatppuccin()
	case ThemeBase16:
		return huh.ThemeBase16()
	default:
		return huh.ThemeBase()
	}
}

func newForm(cfg Config, fields ...huh.Field) *huh.Form {
	form := huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(getHuhTheme(cfg.Theme)).
		WithAccessible(shouldUseAccessible(cfg)).
		WithOutput(getOutputWriter(cfg)).
		WithShowHelp(true)
	if cfg.Input != nil {
		form = form.WithInput(cfg.Input)
	}
	return form
}

// normalizeErr maps huh's abort error to ErrCancelled.
func normalizeErr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrCancelled
	}
	return err
}
