// SPDX-License-Identifier: MPL-2.0

package target

import (
	"fmt"
	"slices"
)

// Argument names as they appear on the command line. Prompters and
// MissingArgumentError refer to arguments by these names.
const (
	ArgOS      = "os"
	ArgArch    = "arch"
	ArgPublish = "publish"
)

type (
	// Args holds the optional pre-supplied selections. An empty OS or Arch
	// and a nil Publish mean "not supplied".
	Args struct {
		OS      string
		Arch    string
		Publish *bool
	}

	// Prompt describes one question asked to the user.
	Prompt struct {
		// Argument is the CLI argument the answer stands in for.
		Argument string
		// Title is the question shown to the user.
		Title string
	}

	// Prompter asks the user for values that were not supplied as arguments.
	Prompter interface {
		// SelectOne lets the user pick one of options, preselecting def.
		SelectOne(p Prompt, options []string, def string) (string, error)
		// Confirm asks a yes/no question, preselecting def.
		Confirm(p Prompt, def bool) (bool, error)
	}

	// ArchLister reports the architecture suffixes that can be built for an
	// OS. The first entry is the recommended default.
	ArchLister interface {
		ArchitecturesFor(os OS) []string
	}

	// SelectorOptions configures a Selector.
	SelectorOptions struct {
		// HostOS is the runtime.GOOS value used to pick the default OS.
		HostOS string
		// NoInteraction turns every missing selection into a MissingArgumentError.
		NoInteraction bool
	}

	// Selector resolves a BuildTarget from arguments and prompts.
	Selector struct {
		prompter Prompter
		archs    ArchLister
		opts     SelectorOptions
	}
)

// NewSelector creates a Selector.
func NewSelector(prompter Prompter, archs ArchLister, opts SelectorOptions) *Selector {
	return &Selector{prompter: prompter, archs: archs, opts: opts}
}

// Check reports the errors Resolve would fail with before any prompt is
// shown: an UnsupportedHostError when the OS default is needed but the host
// cannot be mapped, and a MissingArgumentError in non-interactive mode.
// It never prompts, so callers can run it before starting any subprocess.
func (s *Selector) Check(args Args) error {
	if args.OS == "" {
		if s.opts.NoInteraction {
			return &MissingArgumentError{Arguments: []string{ArgOS}}
		}
		if _, err := DefaultOS(s.opts.HostOS); err != nil {
			return err
		}
		return nil
	}

	if !s.opts.NoInteraction || OS(args.OS) == OSAll {
		return nil
	}

	var missing []string
	if args.Arch == "" {
		missing = append(missing, ArgArch)
	}
	if args.Publish == nil {
		missing = append(missing, ArgPublish)
	}
	if len(missing) > 0 {
		return &MissingArgumentError{Arguments: missing}
	}
	return nil
}

// Resolve produces the BuildTarget, prompting for every value not supplied.
func (s *Selector) Resolve(args Args) (BuildTarget, error) {
	if err := s.Check(args); err != nil {
		return BuildTarget{}, err
	}

	os, err := s.resolveOS(args.OS)
	if err != nil {
		return BuildTarget{}, err
	}

	if os == OSAll {
		return NewBuildTarget(OSAll, "", false), nil
	}

	arch, err := s.resolveArch(os, args.Arch)
	if err != nil {
		return BuildTarget{}, err
	}

	publish, err := s.resolvePublish(args.Publish)
	if err != nil {
		return BuildTarget{}, err
	}

	return NewBuildTarget(os, arch, publish), nil
}

func (s *Selector) resolveOS(value string) (OS, error) {
	if value != "" {
		return OS(value), nil
	}

	def, err := DefaultOS(s.opts.HostOS)
	if err != nil {
		return "", err
	}

	options := make([]string, 0, len(SelectableOS()))
	for _, o := range SelectableOS() {
		options = append(options, o.String())
	}

	choice, err := s.prompter.SelectOne(Prompt{
		Argument: ArgOS,
		Title:    "Please select the operating system to build for",
	}, options, def.String())
	if err != nil {
		return "", fmt.Errorf("select operating system: %w", err)
	}
	return OS(choice), nil
}

func (s *Selector) resolveArch(os OS, value string) (string, error) {
	if value == AllArchitectures {
		return "", nil
	}
	if value != "" {
		return value, nil
	}

	options := s.archOptions(os)
	choice, err := s.prompter.SelectOne(Prompt{
		Argument: ArgArch,
		Title:    "Please select Processor Architecture",
	}, options, options[0])
	if err != nil {
		return "", fmt.Errorf("select architecture: %w", err)
	}
	if choice == AllArchitectures {
		return "", nil
	}
	return choice, nil
}

func (s *Selector) resolvePublish(value *bool) (bool, error) {
	if value != nil {
		return *value, nil
	}

	publish, err := s.prompter.Confirm(Prompt{
		Argument: ArgPublish,
		Title:    "Should the App be published?",
	}, false)
	if err != nil {
		return false, fmt.Errorf("confirm publishing: %w", err)
	}
	return publish, nil
}

// archOptions returns the architecture prompt options for os: the lister's
// entries followed by the AllArchitectures sentinel.
func (s *Selector) archOptions(os OS) []string {
	var options []string
	if s.archs != nil {
		options = slices.Clone(s.archs.ArchitecturesFor(os))
	}
	if !slices.Contains(options, AllArchitectures) {
		options = append(options, AllArchitectures)
	}
	return options
}
