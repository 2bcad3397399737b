// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"testing"
)

const (
	// FrontendDir is the default location of the Electron frontend.
	FrontendDir = "vendor/nativephp/electron/resources/js"
	// PHPBinDir is the default location of the bundled PHP archives.
	PHPBinDir = "vendor/nativephp/php-bin"
)

// AppRoot is a NativePHP application directory created for one test.
type AppRoot struct {
	t   testing.TB
	Dir string
}

// NewAppRoot creates an empty application root under t.TempDir().
func NewAppRoot(t testing.TB) *AppRoot {
	t.Helper()
	return &AppRoot{t: t, Dir: t.TempDir()}
}

// Path joins a slash-separated relative path with the root.
func (a *AppRoot) Path(rel string) string {
	return filepath.Join(a.Dir, filepath.FromSlash(rel))
}

// WriteFile writes a file relative to the root and returns its path.
func (a *AppRoot) WriteFile(rel, content string) string {
	a.t.Helper()
	path := a.Path(rel)
	MustWriteFile(a.t, path, content)
	return path
}

// WriteConfig writes nativebuild.cue.
func (a *AppRoot) WriteConfig(content string) string {
	a.t.Helper()
	return a.WriteFile("nativebuild.cue", content)
}

// WriteDotEnv writes the .env file.
func (a *AppRoot) WriteDotEnv(content string) string {
	a.t.Helper()
	return a.WriteFile(".env", content)
}

// MkFrontend creates the default frontend directory and returns its path.
func (a *AppRoot) MkFrontend() string {
	a.t.Helper()
	path := a.Path(FrontendDir)
	MustMkdirAll(a.t, path)
	return path
}

// AddPHPBinary places an empty PHP archive for goos and an arch such as
// "-arm64" or "x64", and returns the archive path.
func (a *AppRoot) AddPHPBinary(goos, arch, version string) string {
	a.t.Helper()
	if len(arch) > 0 && arch[0] == '-' {
		arch = arch[1:]
	}
	return a.WriteFile(PHPBinDir+"/bin/"+goos+"/"+arch+"/php-"+version+".zip", "")
}
