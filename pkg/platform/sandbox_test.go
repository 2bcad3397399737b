// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"io/fs"
	"slices"
	"testing"
)

func TestDetectSandboxFrom(t *testing.T) {
	t.Parallel()

	missing := func(string) error { return fs.ErrNotExist }
	present := func(string) error { return nil }
	noEnv := func(string) string { return "" }
	snapEnv := func(key string) string {
		if key == "SNAP_NAME" {
			return "nativebuild"
		}
		return ""
	}

	tests := []struct {
		name      string
		lookupEnv func(string) string
		stat      func(string) error
		want      SandboxType
	}{
		{name: "no sandbox", lookupEnv: noEnv, stat: missing, want: SandboxNone},
		{name: "flatpak", lookupEnv: noEnv, stat: present, want: SandboxFlatpak},
		{name: "snap", lookupEnv: snapEnv, stat: missing, want: SandboxSnap},
		{name: "flatpak takes precedence", lookupEnv: snapEnv, stat: present, want: SandboxFlatpak},
		{name: "stat error other than not-exist", lookupEnv: noEnv, stat: func(string) error { return errors.New("denied") }, want: SandboxNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := detectSandboxFrom(tt.lookupEnv, tt.stat); got != tt.want {
				t.Errorf("detectSandboxFrom() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapArgv(t *testing.T) {
	t.Parallel()

	argv := []string{"npm", "run", "build:linux"}
	env := []string{"APP_PATH=/srv/app"}

	tests := []struct {
		name string
		st   SandboxType
		want []string
	}{
		{name: "none", st: SandboxNone, want: []string{"npm", "run", "build:linux"}},
		{name: "flatpak", st: SandboxFlatpak, want: []string{"flatpak-spawn", "--host", "--env=APP_PATH=/srv/app", "npm", "run", "build:linux"}},
		{name: "snap", st: SandboxSnap, want: []string{"snap", "run", "--shell", "npm", "run", "build:linux"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := WrapArgv(tt.st, argv, env)
			if !slices.Equal(got, tt.want) {
				t.Errorf("WrapArgv(%q) = %v, want %v", tt.st, got, tt.want)
			}
		})
	}

	if !slices.Equal(argv, []string{"npm", "run", "build:linux"}) {
		t.Errorf("WrapArgv modified its input: %v", argv)
	}
}

func TestSupportsPTY(t *testing.T) {
	t.Parallel()

	if SupportsPTY(Windows) {
		t.Error("SupportsPTY(windows) = true, want false")
	}
	if !SupportsPTY(Linux) || !SupportsPTY(Darwin) {
		t.Error("SupportsPTY should be true for linux and darwin")
	}
}
