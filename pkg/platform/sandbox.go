// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"os"
	"sync"
)

// Sandbox type constants.
const (
	// SandboxNone indicates no sandbox environment detected.
	SandboxNone SandboxType = ""
	// SandboxFlatpak indicates a Flatpak sandbox environment.
	SandboxFlatpak SandboxType = "flatpak"
	// SandboxSnap indicates a Snap sandbox environment.
	SandboxSnap SandboxType = "snap"
)

// detectOnce caches the sandbox detection result for the lifetime of the process.
//
// INVARIANT: detectSandboxFrom MUST NOT panic. sync.OnceValue propagates a
// panic on every call, creating a persistent crash condition.
var detectOnce = sync.OnceValue(func() SandboxType {
	return detectSandboxFrom(os.Getenv, statFile)
})

// SandboxType identifies the type of application sandbox, if any.
type SandboxType string

// DetectSandbox returns the type of application sandbox the current process is running in.
// The result is cached after the first call.
//
// Detection methods:
//   - Flatpak: Checks for existence of /.flatpak-info
//   - Snap: Checks for SNAP_NAME environment variable
func DetectSandbox() SandboxType {
	return detectOnce()
}

// SpawnCommandFor returns the spawn command for a given sandbox type.
// This is a pure function that does not depend on cached detection state.
func SpawnCommandFor(st SandboxType) string {
	switch st {
	case SandboxNone:
		return ""
	case SandboxFlatpak:
		return "flatpak-spawn"
	case SandboxSnap:
		return "snap"
	default:
		return ""
	}
}

// SpawnArgsFor returns the spawn arguments for a given sandbox type.
//
// For Flatpak, returns ["--host"].
// For Snap, returns ["run", "--shell"].
// For no sandbox, returns nil.
func SpawnArgsFor(st SandboxType) []string {
	switch st {
	case SandboxNone:
		return nil
	case SandboxFlatpak:
		return []string{"--host"}
	case SandboxSnap:
		return []string{"run", "--shell"}
	default:
		return nil
	}
}

// WrapArgv prefixes argv with the sandbox spawn command so the program runs
// on the host instead of inside the sandbox. flatpak-spawn does not pass the
// caller's environment through, so env entries ("KEY=value") are forwarded
// with --env. argv is returned unchanged when st is SandboxNone. The input
// slices are never modified.
func WrapArgv(st SandboxType, argv, env []string) []string {
	spawn := SpawnCommandFor(st)
	if spawn == "" {
		return argv
	}

	wrapped := make([]string, 0, len(argv)+len(env)+3)
	wrapped = append(wrapped, spawn)
	wrapped = append(wrapped, SpawnArgsFor(st)...)
	if st == SandboxFlatpak {
		for _, kv := range env {
			wrapped = append(wrapped, "--env="+kv)
		}
	}
	return append(wrapped, argv...)
}

// detectSandboxFrom performs sandbox detection using the provided lookup functions.
// Accepting lookupEnv and statFile as parameters allows tests to inject custom
// behavior without mutating process-wide state.
func detectSandboxFrom(lookupEnv func(string) string, statFile func(string) error) SandboxType {
	// The /.flatpak-info file is always present inside Flatpak sandboxes.
	if err := statFile("/.flatpak-info"); err == nil {
		return SandboxFlatpak
	}

	// The SNAP_NAME environment variable is set for all snaps.
	if lookupEnv("SNAP_NAME") != "" {
		return SandboxSnap
	}

	return SandboxNone
}

// statFile wraps os.Stat to match the func(string) error signature.
func statFile(path string) error {
	_, err := os.Stat(path)
	return err
}
