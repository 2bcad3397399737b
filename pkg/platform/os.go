// SPDX-License-Identifier: MPL-2.0

package platform

import "runtime"

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// HostOS returns the GOOS value of the running binary.
func HostOS() string {
	return runtime.GOOS
}

// IsWindows reports whether goos belongs to the Windows family.
func IsWindows(goos string) bool {
	return goos == Windows
}

// SupportsPTY reports whether pseudo-terminals can be allocated on goos.
// Windows consoles have no PTY device the subprocess can be attached to.
func SupportsPTY(goos string) bool {
	return !IsWindows(goos)
}
