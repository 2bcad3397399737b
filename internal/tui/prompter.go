// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"fmt"

	"github.com/nativebuild/nativebuild/internal/target"
)

// Prompter asks for build target selections with huh prompts.
type Prompter struct {
	cfg     Config
	choose  func(ChooseOptions) (string, error)
	confirm func(ConfirmOptions) (bool, error)
}

var _ target.Prompter = (*Prompter)(nil)

// NewPrompter creates a Prompter rendering with cfg.
func NewPrompter(cfg Config) *Prompter {
	return &Prompter{cfg: cfg, choose: Choose, confirm: Confirm}
}

// SelectOne implements target.Prompter.
func (p *Prompter) SelectOne(pr target.Prompt, options []string, def string) (string, error) {
	return p.choose(ChooseOptions{
		Title:       pr.Title,
		Description: argumentHint(pr),
		Options:     options,
		Default:     def,
		Config:      p.cfg,
	})
}

// Confirm implements target.Prompter.
func (p *Prompter) Confirm(pr target.Prompt, def bool) (bool, error) {
	return p.confirm(ConfirmOptions{
		Title:       pr.Title,
		Description: argumentHint(pr),
		Default:     def,
		Config:      p.cfg,
	})
}

func argumentHint(pr target.Prompt) string {
	if pr.Argument == "" {
		return ""
	}
	return fmt.Sprintf("Pass the %s argument to skip this question.", pr.Argument)
}

// NonInteractivePrompter fails every question with a
// target.MissingArgumentError naming the argument that was needed.
type NonInteractivePrompter struct{}

var _ target.Prompter = NonInteractivePrompter{}

// SelectOne implements target.Prompter.
func (NonInteractivePrompter) SelectOne(pr target.Prompt, _ []string, _ string) (string, error) {
	return "", &target.MissingArgumentError{Arguments: []string{pr.Argument}}
}

// Confirm implements target.Prompter.
func (NonInteractivePrompter) Confirm(pr target.Prompt, _ bool) (bool, error) {
	return false, &target.MissingArgumentError{Arguments: []string{pr.Argument}}
}
