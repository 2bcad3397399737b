// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/nativebuild/nativebuild/internal/target"
)

func TestPrompter_SelectOne(t *testing.T) {
	t.Parallel()

	cfg := Config{Theme: ThemeDracula, Accessible: true}
	p := NewPrompter(cfg)

	var got ChooseOptions
	p.choose = func(opts ChooseOptions) (string, error) {
		got = opts
		return "linux", nil
	}

	answer, err := p.SelectOne(
		target.Prompt{Argument: target.ArgOS, Title: "Please select the operating system to build for"},
		[]string{"win", "linux", "mac", "all"},
		"mac",
	)
	if err != nil {
		t.Fatalf("SelectOne() error = %v", err)
	}
	if answer != "linux" {
		t.Errorf("SelectOne() = %q, want linux", answer)
	}
	if got.Title != "Please select the operating system to build for" {
		t.Errorf("Title = %q", got.Title)
	}
	if !slices.Equal(got.Options, []string{"win", "linux", "mac", "all"}) {
		t.Errorf("Options = %v", got.Options)
	}
	if got.Default != "mac" {
		t.Errorf("Default = %q, want mac", got.Default)
	}
	if got.Config != cfg {
		t.Errorf("Config = %+v, want %+v", got.Config, cfg)
	}
	if !strings.Contains(got.Description, "os argument") {
		t.Errorf("Description = %q, want argument hint", got.Description)
	}
}

func TestPrompter_Confirm(t *testing.T) {
	t.Parallel()

	p := NewPrompter(Config{})

	var got ConfirmOptions
	p.confirm = func(opts ConfirmOptions) (bool, error) {
		got = opts
		return true, nil
	}

	answer, err := p.Confirm(target.Prompt{Argument: target.ArgPublish, Title: "Should the App be published?"}, false)
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if !answer {
		t.Error("Confirm() = false, want true")
	}
	if got.Title != "Should the App be published?" || got.Default {
		t.Errorf("ConfirmOptions = %+v", got)
	}
}

func TestPrompter_PropagatesCancel(t *testing.T) {
	t.Parallel()

	p := NewPrompter(Config{})
	p.confirm = func(ConfirmOptions) (bool, error) { return false, ErrCancelled }

	if _, err := p.Confirm(target.Prompt{Title: "?"}, true); !errors.Is(err, ErrCancelled) {
		t.Errorf("Confirm() error = %v, want ErrCancelled", err)
	}
}

func TestArgumentHint(t *testing.T) {
	t.Parallel()

	if h := argumentHint(target.Prompt{}); h != "" {
		t.Errorf("argumentHint(empty) = %q", h)
	}
	if h := argumentHint(target.Prompt{Argument: "arch"}); h != "Pass the arch argument to skip this question." {
		t.Errorf("argumentHint(arch) = %q", h)
	}
}

func TestNonInteractivePrompter(t *testing.T) {
	t.Parallel()

	var p NonInteractivePrompter

	_, err := p.SelectOne(target.Prompt{Argument: target.ArgArch}, []string{"-x64"}, "-x64")
	var missing *target.MissingArgumentError
	if !errors.As(err, &missing) || !slices.Equal(missing.Arguments, []string{target.ArgArch}) {
		t.Errorf("SelectOne() error = %v, want MissingArgumentError{arch}", err)
	}

	_, err = p.Confirm(target.Prompt{Argument: target.ArgPublish}, false)
	if !errors.Is(err, target.ErrMissingArgument) {
		t.Errorf("Confirm() error = %v, want ErrMissingArgument", err)
	}
}
