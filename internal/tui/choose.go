// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"slices"

	"github.com/charmbracelet/huh"
)

// ChooseOptions configures the Choose prompt.
type ChooseOptions struct {
	// Title is the question displayed above the options.
	Title string
	// Description provides additional context below the title.
	Description string
	// Options is the list of options to choose from.
	Options []string
	// Default is preselected when it is one of Options.
	Default string
	// Height limits the number of visible options (0 for auto).
	Height int
	// Config holds common prompt configuration.
	Config Config
}

// Choose lets the user pick exactly one option.
func Choose(opts ChooseOptions) (string, error) {
	if len(opts.Options) == 0 {
		return "", ErrNoOptions
	}

	result := opts.Options[0]
	if slices.Contains(opts.Options, opts.Default) {
		result = opts.Default
	}

	sel := huh.NewSelect[string]().
		Title(opts.Title).
		Options(huh.NewOptions(opts.Options...)...).
		Value(&result)
	if opts.Description != "" {
		sel = sel.Description(opts.Description)
	}
	if opts.Height > 0 {
		sel = sel.Height(opts.Height)
	}

	if err := newForm(opts.Config, sel).Run(); err != nil {
		return "", normalizeErr(err)
	}
	return result, nil
}
