// SPDX-License-Identifier: MPL-2.0

package target

import (
	"strings"

	"github.com/nativebuild/nativebuild/pkg/platform"
)

// Operating systems accepted by the packaging scripts.
const (
	OSWindows OS = "win"
	OSLinux   OS = "linux"
	OSMac     OS = "mac"
	OSAll     OS = "all"
)

// Packaging modes.
const (
	ModeBuild   Mode = "build"
	ModePublish Mode = "publish"
)

// AllArchitectures is the sentinel architecture option meaning "every
// architecture of the selected OS". It resolves to the empty suffix.
const AllArchitectures = "all"

type (
	// OS is the operating system part of a packaging script name.
	OS string

	// Mode selects between a local build and a build that is published
	// through the configured updater provider.
	Mode string

	// BuildTarget is the resolved (OS, architecture, publish) triple.
	// Fields are unexported so a target cannot change after resolution;
	// use NewBuildTarget and the accessors.
	BuildTarget struct {
		os      OS
		arch    string
		publish bool
	}
)

// SelectableOS returns the operating systems offered by the OS prompt,
// in prompt order.
func SelectableOS() []OS {
	return []OS{OSWindows, OSLinux, OSMac, OSAll}
}

// String returns the string representation of the OS.
func (o OS) String() string { return string(o) }

// String returns the string representation of the Mode.
func (m Mode) String() string { return string(m) }

// DefaultOS maps a runtime.GOOS value to the closest selectable OS.
func DefaultOS(goos string) (OS, error) {
	switch goos {
	case platform.Windows:
		return OSWindows, nil
	case platform.Darwin:
		return OSMac, nil
	case platform.Linux:
		return OSLinux, nil
	default:
		return "", &UnsupportedHostError{GOOS: goos}
	}
}

// NewBuildTarget creates a BuildTarget. A cross-OS build cannot be scoped to
// one architecture or published, so for OSAll arch and publish are dropped.
// The AllArchitectures sentinel is normalized to the empty suffix.
func NewBuildTarget(os OS, arch string, publish bool) BuildTarget {
	if os == OSAll {
		return BuildTarget{os: OSAll}
	}
	if arch == AllArchitectures {
		arch = ""
	}
	return BuildTarget{os: os, arch: arch, publish: publish}
}

// OS returns the target operating system.
func (t BuildTarget) OS() OS { return t.os }

// Arch returns the architecture suffix; empty means every architecture.
func (t BuildTarget) Arch() string { return t.arch }

// Publish reports whether the build is published after packaging.
func (t BuildTarget) Publish() bool { return t.publish }

// Mode returns ModePublish for published builds and ModeBuild otherwise.
func (t BuildTarget) Mode() Mode {
	if t.publish {
		return ModePublish
	}
	return ModeBuild
}

// PackagingScript returns the packaging script name "<mode>:<os><arch>",
// e.g. "build:win" or "publish:mac-arm64".
func (t BuildTarget) PackagingScript() string {
	var b strings.Builder
	b.WriteString(t.Mode().String())
	b.WriteByte(':')
	b.WriteString(t.os.String())
	b.WriteString(t.arch)
	return b.String()
}

// String implements fmt.Stringer.
func (t BuildTarget) String() string {
	return t.PackagingScript()
}

// ParsePublish converts a boolean-like CLI value into a publish flag.
func ParsePublish(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "y", "1", "publish":
		return true, nil
	case "false", "no", "n", "0", "build":
		return false, nil
	default:
		return false, &InvalidPublishValueError{Value: value}
	}
}
