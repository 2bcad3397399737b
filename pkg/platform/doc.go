// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It centralizes runtime.GOOS names, reports whether the host supports
// pseudo-terminals, and detects application sandboxes (Flatpak, Snap) whose
// processes must be spawned on the host through a helper command.
package platform
