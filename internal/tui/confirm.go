// SPDX-License-Identifier: MPL-2.0

package tui

import "github.com/charmbracelet/huh"

// ConfirmOptions configures the Confirm prompt.
type ConfirmOptions struct {
	// Title is the question to display.
	Title string
	// Description provides additional context below the title.
	Description string
	// Affirmative is the text for the affirmative option (default: "Yes").
	Affirmative string
	// Negative is the text for the negative option (default: "No").
	Negative string
	// Default is the preselected answer.
	Default bool
	// Config holds common prompt configuration.
	Config Config
}

// Confirm asks a yes/no question.
func Confirm(opts ConfirmOptions) (bool, error) {
	affirmative, negative := opts.Affirmative, opts.Negative
	if affirmative == "" {
		affirmative = "Yes"
	}
	if negative == "" {
		negative = "No"
	}

	result := opts.Default
	field := huh.NewConfirm().
		Title(opts.Title).
		Affirmative(affirmative).
		Negative(negative).
		Value(&result)
	if opts.Description != "" {
		field = field.Description(opts.Description)
	}

	if err := newForm(opts.Config, field).Run(); err != nil {
		return false, normalizeErr(err)
	}
	return result, nil
}
