// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMustWriteFile_CreatesParents(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a", "b", "c.txt")
	MustWriteFile(t, path, "hello")

	if got := MustReadFile(t, path); got != "hello" {
		t.Errorf("content = %q, want %q", got, "hello")
	}
}

func TestAppRoot(t *testing.T) {
	t.Parallel()

	app := NewAppRoot(t)

	cfg := app.WriteConfig(`app: name: "Acme"`)
	if cfg != filepath.Join(app.Dir, "nativebuild.cue") {
		t.Errorf("WriteConfig() = %q", cfg)
	}
	env := app.WriteDotEnv("A=1\n")
	if got := MustReadFile(t, env); got != "A=1\n" {
		t.Errorf(".env content = %q", got)
	}

	frontend := app.MkFrontend()
	if info, err := os.Stat(frontend); err != nil || !info.IsDir() {
		t.Errorf("frontend dir missing: %v", err)
	}

	for arch, dir := range map[string]string{"-arm64": "arm64", "x64": "x64"} {
		bin := app.AddPHPBinary("mac", arch, "8.3")
		if want := app.Path(PHPBinDir + "/bin/mac/" + dir + "/php-8.3.zip"); bin != want {
			t.Errorf("AddPHPBinary(%q) = %q, want %q", arch, bin, want)
		}
		if _, err := os.Stat(bin); err != nil {
			t.Errorf("archive not created: %v", err)
		}
	}
}
