// SPDX-License-Identifier: MPL-2.0

package phpbin

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/nativebuild/nativebuild/internal/target"
)

// DefaultPackageDirectory is where the PHP binary package is installed,
// relative to the application root.
const DefaultPackageDirectory = "vendor/nativephp/php-bin"

// architectures lists the supported architecture suffixes per OS. The first
// entry is the recommended default.
var architectures = map[target.OS][]string{
	target.OSWindows: {"-x64"},
	target.OSMac:     {"-x86", "-arm64"},
	target.OSLinux:   {"-x64", "-arm64"},
}

// Locator resolves PHP binary paths for an application. Paths it returns are
// relative to the application root.
type Locator struct {
	fsys       fs.FS
	packageDir string
	version    string
}

// NewLocator creates a Locator for the application at root. packageDir is the
// slash-separated binary package directory relative to root and phpVersion
// the PHP version to bundle; both fall back to defaults when empty.
func NewLocator(root, packageDir, phpVersion string) (*Locator, error) {
	return newLocator(os.DirFS(root), packageDir, phpVersion)
}

func newLocator(fsys fs.FS, packageDir, phpVersion string) (*Locator, error) {
	if packageDir == "" {
		packageDir = DefaultPackageDirectory
	}
	version, err := NormalizeVersion(phpVersion)
	if err != nil {
		return nil, err
	}
	return &Locator{
		fsys:       fsys,
		packageDir: path.Clean(filepath.ToSlash(packageDir)),
		version:    version,
	}, nil
}

// PackageDirectory returns the binary package directory.
func (l *Locator) PackageDirectory() string {
	return filepath.FromSlash(l.packageDir)
}

// BinaryPath returns the directory holding the per-platform binaries. The
// packaging tool picks the OS and architecture subdirectory itself.
func (l *Locator) BinaryPath() string {
	return filepath.FromSlash(path.Join(l.packageDir, "bin"))
}

// PHPVersion returns the "<major>.<minor>" PHP version.
func (l *Locator) PHPVersion() string {
	return l.version
}

// ArchitecturesFor returns the architecture suffixes that can be built for
// os, limited to those with a binary directory in the package. When the
// package holds none of them (not installed yet), the full list is returned
// and the packaging tool reports what is missing.
func (l *Locator) ArchitecturesFor(os target.OS) []string {
	known := architectures[os]

	var available []string
	for _, arch := range known {
		if l.hasBinaries(os, arch) {
			available = append(available, arch)
		}
	}
	if len(available) == 0 {
		return append([]string(nil), known...)
	}
	return available
}

// SupportedOS returns the operating systems with a known architecture list.
func SupportedOS() []target.OS {
	return []target.OS{target.OSWindows, target.OSLinux, target.OSMac}
}

func (l *Locator) hasBinaries(os target.OS, arch string) bool {
	dir := path.Join(l.packageDir, "bin", os.String(), strings.TrimPrefix(arch, "-"))
	info, err := fs.Stat(l.fsys, dir)
	return err == nil && info.IsDir()
}
