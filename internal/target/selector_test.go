// SPDX-License-Identifier: MPL-2.0

package target

import (
	"errors"
	"slices"
	"testing"
)

type (
	promptCall struct {
		Prompt  Prompt
		Options []string
		Default string
	}

	// scriptedPrompter answers prompts from fixed values and records every call.
	scriptedPrompter struct {
		selections map[string]string
		confirm    bool
		err        error
		selects    []promptCall
		confirms   []Prompt
		confirmDef []bool
	}

	staticArchs map[OS][]string
)

func (p *scriptedPrompter) SelectOne(prompt Prompt, options []string, def string) (string, error) {
	p.selects = append(p.selects, promptCall{Prompt: prompt, Options: options, Default: def})
	if p.err != nil {
		return "", p.err
	}
	if v, ok := p.selections[prompt.Argument]; ok {
		return v, nil
	}
	return def, nil
}

func (p *scriptedPrompter) Confirm(prompt Prompt, def bool) (bool, error) {
	p.confirms = append(p.confirms, prompt)
	p.confirmDef = append(p.confirmDef, def)
	if p.err != nil {
		return false, p.err
	}
	return p.confirm, nil
}

func (a staticArchs) ArchitecturesFor(os OS) []string {
	return a[os]
}

var testArchs = staticArchs{
	OSWindows: {"-x64"},
	OSMac:     {"-x86", "-arm64"},
	OSLinux:   {"-x64", "-arm64"},
}

func boolPtr(b bool) *bool { return &b }

func TestSelector_ExplicitArgumentsSkipPrompts(t *testing.T) {
	t.Parallel()

	p := &scriptedPrompter{}
	s := NewSelector(p, testArchs, SelectorOptions{HostOS: "linux"})

	got, err := s.Resolve(Args{OS: "mac", Arch: "-arm64", Publish: boolPtr(true)})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.PackagingScript() != "publish:mac-arm64" {
		t.Errorf("PackagingScript() = %q, want %q", got.PackagingScript(), "publish:mac-arm64")
	}
	if len(p.selects) != 0 || len(p.confirms) != 0 {
		t.Errorf("expected no prompts, got %d selects and %d confirms", len(p.selects), len(p.confirms))
	}
}

func TestSelector_OSPromptDefaultsToHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host string
		want string
	}{
		{host: "windows", want: "win"},
		{host: "darwin", want: "mac"},
		{host: "linux", want: "linux"},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			t.Parallel()

			p := &scriptedPrompter{}
			s := NewSelector(p, testArchs, SelectorOptions{HostOS: tt.host})

			got, err := s.Resolve(Args{})
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if len(p.selects) == 0 {
				t.Fatal("expected an OS prompt")
			}
			osPrompt := p.selects[0]
			if osPrompt.Prompt.Argument != ArgOS {
				t.Errorf("first prompt argument = %q, want %q", osPrompt.Prompt.Argument, ArgOS)
			}
			if osPrompt.Default != tt.want {
				t.Errorf("OS prompt default = %q, want %q", osPrompt.Default, tt.want)
			}
			if !slices.Equal(osPrompt.Options, []string{"win", "linux", "mac", "all"}) {
				t.Errorf("OS prompt options = %v", osPrompt.Options)
			}
			if got.OS().String() != tt.want {
				t.Errorf("resolved OS = %q, want %q", got.OS(), tt.want)
			}
		})
	}
}

func TestSelector_UnsupportedHost(t *testing.T) {
	t.Parallel()

	p := &scriptedPrompter{}
	s := NewSelector(p, testArchs, SelectorOptions{HostOS: "aix"})

	if err := s.Check(Args{}); !errors.Is(err, ErrUnsupportedHost) {
		t.Errorf("Check() error = %v, want ErrUnsupportedHost", err)
	}
	if _, err := s.Resolve(Args{}); !errors.Is(err, ErrUnsupportedHost) {
		t.Errorf("Resolve() error = %v, want ErrUnsupportedHost", err)
	}
	if len(p.selects) != 0 {
		t.Error("no prompt may be shown when the host is unsupported")
	}

	// An explicit OS does not need the host default.
	if _, err := s.Resolve(Args{OS: "linux", Arch: "-x64", Publish: boolPtr(false)}); err != nil {
		t.Errorf("Resolve() with explicit OS error = %v", err)
	}
}

func TestSelector_AllSkipsArchAndPublish(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args Args
	}{
		{name: "prompted all", args: Args{}},
		{name: "explicit all", args: Args{OS: "all"}},
		{name: "explicit all with arch and publish", args: Args{OS: "all", Arch: "-arm64", Publish: boolPtr(true)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := &scriptedPrompter{selections: map[string]string{ArgOS: "all"}, confirm: true}
			s := NewSelector(p, testArchs, SelectorOptions{HostOS: "linux"})

			got, err := s.Resolve(tt.args)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got.OS() != OSAll || got.Arch() != "" || got.Publish() {
				t.Errorf("Resolve() = {%q %q %v}, want {all \"\" false}", got.OS(), got.Arch(), got.Publish())
			}
			for _, call := range p.selects {
				if call.Prompt.Argument == ArgArch {
					t.Error("architecture must not be prompted for OS all")
				}
			}
			if len(p.confirms) != 0 {
				t.Error("publish must not be prompted for OS all")
			}
		})
	}
}

func TestSelector_ArchPrompt(t *testing.T) {
	t.Parallel()

	for _, os := range []OS{OSWindows, OSMac, OSLinux} {
		listed := testArchs.ArchitecturesFor(os)
		options := append(slices.Clone(listed), AllArchitectures)

		for _, choice := range options {
			t.Run(os.String()+"/"+choice, func(t *testing.T) {
				t.Parallel()

				p := &scriptedPrompter{selections: map[string]string{ArgArch: choice}}
				s := NewSelector(p, testArchs, SelectorOptions{HostOS: "linux"})

				got, err := s.Resolve(Args{OS: os.String(), Publish: boolPtr(false)})
				if err != nil {
					t.Fatalf("Resolve() error = %v", err)
				}
				if len(p.selects) != 1 {
					t.Fatalf("expected exactly one architecture prompt, got %d", len(p.selects))
				}
				call := p.selects[0]
				if !slices.Equal(call.Options, options) {
					t.Errorf("arch options = %v, want %v", call.Options, options)
				}
				if call.Default != listed[0] {
					t.Errorf("arch default = %q, want %q", call.Default, listed[0])
				}
				if got.Arch() != "" && !slices.Contains(listed, got.Arch()) {
					t.Errorf("resolved arch %q is neither empty nor listed in %v", got.Arch(), listed)
				}
				if choice == AllArchitectures && got.Arch() != "" {
					t.Errorf("sentinel choice resolved to %q, want empty", got.Arch())
				}
			})
		}
	}
}

func TestSelector_PublishPromptDefaultsToNo(t *testing.T) {
	t.Parallel()

	p := &scriptedPrompter{confirm: true}
	s := NewSelector(p, testArchs, SelectorOptions{HostOS: "linux"})

	got, err := s.Resolve(Args{OS: "win", Arch: "-x64"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(p.confirmDef) != 1 || p.confirmDef[0] {
		t.Errorf("confirm defaults = %v, want [false]", p.confirmDef)
	}
	if !got.Publish() {
		t.Error("Publish() = false, want answer from prompt (true)")
	}
	if got.PackagingScript() != "publish:win-x64" {
		t.Errorf("PackagingScript() = %q", got.PackagingScript())
	}
}

func TestSelector_ExplicitArchIsNotValidated(t *testing.T) {
	t.Parallel()

	s := NewSelector(&scriptedPrompter{}, testArchs, SelectorOptions{HostOS: "linux"})

	got, err := s.Resolve(Args{OS: "solaris", Arch: "-sparc", Publish: boolPtr(false)})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.PackagingScript() != "build:solaris-sparc" {
		t.Errorf("PackagingScript() = %q, want %q", got.PackagingScript(), "build:solaris-sparc")
	}
}

func TestSelector_ExplicitAllArchitectures(t *testing.T) {
	t.Parallel()

	p := &scriptedPrompter{}
	s := NewSelector(p, testArchs, SelectorOptions{HostOS: "linux", NoInteraction: true})

	got, err := s.Resolve(Args{OS: "mac", Arch: AllArchitectures, Publish: boolPtr(true)})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.Arch() != "" || got.PackagingScript() != "publish:mac" {
		t.Errorf("Resolve() = %q, want publish:mac", got.PackagingScript())
	}
}

func TestSelector_NoInteraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		args        Args
		wantMissing []string
	}{
		{name: "nothing supplied", args: Args{}, wantMissing: []string{ArgOS}},
		{name: "os only", args: Args{OS: "linux"}, wantMissing: []string{ArgArch, ArgPublish}},
		{name: "publish missing", args: Args{OS: "linux", Arch: "-x64"}, wantMissing: []string{ArgPublish}},
		{name: "arch missing", args: Args{OS: "mac", Publish: boolPtr(true)}, wantMissing: []string{ArgArch}},
		{name: "all needs nothing else", args: Args{OS: "all"}},
		{name: "complete", args: Args{OS: "win", Arch: "-x64", Publish: boolPtr(false)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := &scriptedPrompter{}
			s := NewSelector(p, testArchs, SelectorOptions{HostOS: "linux", NoInteraction: true})

			_, err := s.Resolve(tt.args)
			if len(tt.wantMissing) == 0 {
				if err != nil {
					t.Fatalf("Resolve() error = %v", err)
				}
				return
			}

			var missingErr *MissingArgumentError
			if !errors.As(err, &missingErr) {
				t.Fatalf("Resolve() error = %v, want MissingArgumentError", err)
			}
			if !slices.Equal(missingErr.Arguments, tt.wantMissing) {
				t.Errorf("missing = %v, want %v", missingErr.Arguments, tt.wantMissing)
			}
			if !errors.Is(err, ErrMissingArgument) {
				t.Error("error does not wrap ErrMissingArgument")
			}
			if len(p.selects) != 0 || len(p.confirms) != 0 {
				t.Error("no prompt may be shown in non-interactive mode")
			}
		})
	}
}

func TestSelector_PromptErrorIsWrapped(t *testing.T) {
	t.Parallel()

	aborted := errors.New("user aborted")
	p := &scriptedPrompter{err: aborted}
	s := NewSelector(p, testArchs, SelectorOptions{HostOS: "linux"})

	if _, err := s.Resolve(Args{}); !errors.Is(err, aborted) {
		t.Errorf("Resolve() error = %v, want wrapped %v", err, aborted)
	}
}

func TestSelector_NilArchListerStillOffersSentinel(t *testing.T) {
	t.Parallel()

	p := &scriptedPrompter{}
	s := NewSelector(p, nil, SelectorOptions{HostOS: "linux"})

	got, err := s.Resolve(Args{OS: "linux", Publish: boolPtr(false)})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.Arch() != "" {
		t.Errorf("Arch() = %q, want empty", got.Arch())
	}
	if !slices.Equal(p.selects[0].Options, []string{AllArchitectures}) {
		t.Errorf("options = %v, want [all]", p.selects[0].Options)
	}
}
