// SPDX-License-Identifier: MPL-2.0

package buildenv

import (
	"encoding/json"
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/gosimple/slug"
)

// Variable names written by Compose, in output order.
const (
	KeyAppPath         = "APP_PATH"
	KeyAppURL          = "APP_URL"
	KeyBuilding        = "NATIVEPHP_BUILDING"
	KeyPHPVersion      = "NATIVEPHP_PHP_BINARY_VERSION"
	KeyPHPBinaryPath   = "NATIVEPHP_PHP_BINARY_PATH"
	KeyCertificatePath = "NATIVEPHP_CERTIFICATE_FILE_PATH"
	KeyAppName         = "NATIVEPHP_APP_NAME"
	KeyAppID           = "NATIVEPHP_APP_ID"
	KeyAppVersion      = "NATIVEPHP_APP_VERSION"
	KeyAppFilename     = "NATIVEPHP_APP_FILENAME"
	KeyAppAuthor       = "NATIVEPHP_APP_AUTHOR"
	KeyUpdaterConfig   = "NATIVEPHP_UPDATER_CONFIG"
)

// CertificateFile is the CA bundle shipped next to the PHP binaries.
const CertificateFile = "cacert.pem"

type (
	// App is the application metadata read from the project configuration.
	App struct {
		Name    string
		URL     string
		ID      string
		Version string
		Author  string
	}

	// BinaryLocator reports where the bundled PHP binaries live, relative
	// to the application root.
	BinaryLocator interface {
		BinaryPath() string
		PackageDirectory() string
		PHPVersion() string
	}

	// Updater supplies the auto-updater settings for the packaging tool.
	Updater interface {
		// BuilderOptions is serialized to JSON as the updater config.
		BuilderOptions() any
		// EnvironmentVariables are appended after the core variables.
		EnvironmentVariables() map[string]string
	}

	// Composer builds the packaging environment. It has no side effects:
	// identical inputs always produce an identical Config.
	Composer struct {
		root     string
		app      App
		binaries BinaryLocator
		updater  Updater
	}
)

// NewComposer creates a Composer for the application rooted at root.
func NewComposer(root string, app App, binaries BinaryLocator, updater Updater) *Composer {
	return &Composer{root: root, app: app, binaries: binaries, updater: updater}
}

// CoreKeys returns the variable names Compose always sets, in output order.
func CoreKeys() []string {
	return []string{
		KeyAppPath,
		KeyAppURL,
		KeyBuilding,
		KeyPHPVersion,
		KeyPHPBinaryPath,
		KeyCertificatePath,
		KeyAppName,
		KeyAppID,
		KeyAppVersion,
		KeyAppFilename,
		KeyAppAuthor,
		KeyUpdaterConfig,
	}
}

// Compose returns the packaging environment. Updater variables follow the
// core variables in key order; if any of them reuses a core name, Compose
// fails with an EnvironmentCollisionError naming all of them.
func (c *Composer) Compose() (*Config, error) {
	updaterConfig, err := c.updaterConfig()
	if err != nil {
		return nil, err
	}

	cfg := NewConfig()
	cfg.Set(KeyAppPath, c.root)
	cfg.Set(KeyAppURL, c.app.URL)
	cfg.Set(KeyBuilding, "true")
	cfg.Set(KeyPHPVersion, c.binaries.PHPVersion())
	cfg.Set(KeyPHPBinaryPath, filepath.Join(c.root, c.binaries.BinaryPath()))
	cfg.Set(KeyCertificatePath, filepath.Join(c.root, c.binaries.PackageDirectory(), CertificateFile))
	cfg.Set(KeyAppName, c.app.Name)
	cfg.Set(KeyAppID, c.app.ID)
	cfg.Set(KeyAppVersion, c.app.Version)
	cfg.Set(KeyAppFilename, Filename(c.app.Name))
	cfg.Set(KeyAppAuthor, c.app.Author)
	cfg.Set(KeyUpdaterConfig, updaterConfig)

	if c.updater == nil {
		return cfg, nil
	}

	extra := c.updater.EnvironmentVariables()
	var collisions []string
	for _, k := range slices.Sorted(maps.Keys(extra)) {
		if cfg.Has(k) {
			collisions = append(collisions, k)
			continue
		}
		cfg.Set(k, extra[k])
	}
	if len(collisions) > 0 {
		return nil, &EnvironmentCollisionError{Keys: collisions}
	}

	return cfg, nil
}

func (c *Composer) updaterConfig() (string, error) {
	var opts any
	if c.updater != nil {
		opts = c.updater.BuilderOptions()
	}
	data, err := json.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("encode updater builder options: %w", err)
	}
	return string(data), nil
}

// Filename returns the URL slug of an application name, used for the
// installer file names.
func Filename(name string) string {
	return slug.Make(name)
}
