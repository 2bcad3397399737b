// SPDX-License-Identifier: MPL-2.0

package target

import (
	"errors"
	"testing"
)

func TestNewBuildTarget_AllForcesDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		arch    string
		publish bool
	}{
		{name: "empty arch, no publish", arch: "", publish: false},
		{name: "arch supplied", arch: "-arm64", publish: false},
		{name: "publish supplied", arch: "", publish: true},
		{name: "both supplied", arch: "-x64", publish: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NewBuildTarget(OSAll, tt.arch, tt.publish)
			if got.Arch() != "" {
				t.Errorf("Arch() = %q, want empty", got.Arch())
			}
			if got.Publish() {
				t.Error("Publish() = true, want false")
			}
			if got.PackagingScript() != "build:all" {
				t.Errorf("PackagingScript() = %q, want %q", got.PackagingScript(), "build:all")
			}
		})
	}
}

func TestBuildTarget_PackagingScript(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target BuildTarget
		want   string
	}{
		{target: NewBuildTarget(OSWindows, "", true), want: "publish:win"},
		{target: NewBuildTarget(OSMac, "arm64", false), want: "build:macarm64"},
		{target: NewBuildTarget(OSMac, "-arm64", false), want: "build:mac-arm64"},
		{target: NewBuildTarget(OSLinux, "-x64", true), want: "publish:linux-x64"},
		{target: NewBuildTarget(OSLinux, AllArchitectures, false), want: "build:linux"},
		{target: NewBuildTarget(OSAll, "", false), want: "build:all"},
	}

	for _, tt := range tests {
		if got := tt.target.PackagingScript(); got != tt.want {
			t.Errorf("PackagingScript() = %q, want %q", got, tt.want)
		}
		if got := tt.target.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestBuildTarget_Mode(t *testing.T) {
	t.Parallel()

	if got := NewBuildTarget(OSWindows, "", true).Mode(); got != ModePublish {
		t.Errorf("Mode() = %q, want %q", got, ModePublish)
	}
	if got := NewBuildTarget(OSWindows, "", false).Mode(); got != ModeBuild {
		t.Errorf("Mode() = %q, want %q", got, ModeBuild)
	}
}

func TestDefaultOS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		goos    string
		want    OS
		wantErr bool
	}{
		{goos: "windows", want: OSWindows},
		{goos: "darwin", want: OSMac},
		{goos: "linux", want: OSLinux},
		{goos: "freebsd", wantErr: true},
		{goos: "plan9", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			t.Parallel()

			got, err := DefaultOS(tt.goos)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedHost) {
					t.Fatalf("DefaultOS(%q) error = %v, want ErrUnsupportedHost", tt.goos, err)
				}
				var hostErr *UnsupportedHostError
				if !errors.As(err, &hostErr) || hostErr.GOOS != tt.goos {
					t.Errorf("DefaultOS(%q) error = %#v, want UnsupportedHostError{GOOS: %q}", tt.goos, err, tt.goos)
				}
				return
			}
			if err != nil {
				t.Fatalf("DefaultOS(%q) unexpected error: %v", tt.goos, err)
			}
			if got != tt.want {
				t.Errorf("DefaultOS(%q) = %q, want %q", tt.goos, got, tt.want)
			}
		})
	}
}

func TestParsePublish(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"true", "TRUE", "yes", "1", "publish", " y "} {
		got, err := ParsePublish(v)
		if err != nil || !got {
			t.Errorf("ParsePublish(%q) = %v, %v; want true, nil", v, got, err)
		}
	}

	for _, v := range []string{"false", "no", "0", "build", "N"} {
		got, err := ParsePublish(v)
		if err != nil || got {
			t.Errorf("ParsePublish(%q) = %v, %v; want false, nil", v, got, err)
		}
	}

	if _, err := ParsePublish("maybe"); !errors.Is(err, ErrInvalidPublishValue) {
		t.Errorf("ParsePublish(maybe) error = %v, want ErrInvalidPublishValue", err)
	}
}
