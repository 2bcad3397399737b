// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/nativebuild/nativebuild/internal/updater"
)

func TestTheme_IsValid(t *testing.T) {
	t.Parallel()

	for _, theme := range []Theme{ThemeDefault, ThemeCharm, ThemeDracula, ThemeCatppuccin, ThemeBase16} {
		if valid, errs := theme.IsValid(); !valid {
			t.Errorf("Theme(%q).IsValid() = false, %v", theme, errs)
		}
	}

	valid, errs := Theme("neon").IsValid()
	if valid || len(errs) != 1 || !errors.Is(errs[0], ErrInvalidTheme) {
		t.Errorf("Theme(neon).IsValid() = %v, %v", valid, errs)
	}
}

func TestProcessConfig_ProcessTimeout(t *testing.T) {
	t.Parallel()

	for _, bad := range []string{"", "soon", "-5s"} {
		if _, err := (ProcessConfig{Timeout: bad}).ProcessTimeout(); !errors.Is(err, ErrInvalidTimeout) {
			t.Errorf("ProcessTimeout(%q) error = %v, want ErrInvalidTimeout", bad, err)
		}
	}
	if d, err := (ProcessConfig{Timeout: "0s"}).ProcessTimeout(); err != nil || d != 0 {
		t.Errorf("ProcessTimeout(0s) = %v, %v", d, err)
	}
}

func TestConfig_IsValid_UpdaterProviderOnlyCheckedWhenEnabled(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Updater.Default = "ftp"
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("disabled updater with unknown provider rejected: %v", errs)
	}

	cfg.Updater.Enabled = true
	valid, errs := cfg.IsValid()
	if valid {
		t.Fatal("enabled updater with unknown provider accepted")
	}
	if !errors.Is(errs[0], updater.ErrUnknownProvider) {
		t.Errorf("errors = %v, want ErrUnknownProvider", errs)
	}
}

func TestConfig_Redacted(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Updater.S3.Key = "ak"
	cfg.Updater.S3.Secret = "sk"
	cfg.Updater.Spaces.Secret = "ds"

	r := cfg.Redacted()
	if r.Updater.S3.Key != redacted || r.Updater.S3.Secret != redacted || r.Updater.Spaces.Secret != redacted {
		t.Errorf("Redacted() = %+v", r.Updater)
	}
	if r.Updater.GitHub.Token != "" || r.Updater.Spaces.Key != "" {
		t.Error("Redacted() masked empty credentials")
	}
	if cfg.Updater.S3.Key != "ak" {
		t.Error("Redacted() modified the original")
	}
}
