// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nativebuild/nativebuild/internal/buildenv"
	"github.com/nativebuild/nativebuild/internal/updater"
)

// UI themes accepted by ui.theme.
const (
	ThemeDefault    Theme = "default"
	ThemeCharm      Theme = "charm"
	ThemeDracula    Theme = "dracula"
	ThemeCatppuccin Theme = "catppuccin"
	ThemeBase16     Theme = "base16"
)

const redacted = "********"

var (
	// ErrInvalidTheme is the sentinel error wrapped by InvalidThemeError.
	ErrInvalidTheme = errors.New("invalid theme")
	// ErrInvalidTimeout is the sentinel error wrapped by InvalidTimeoutError.
	ErrInvalidTimeout = errors.New("invalid process timeout")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Theme names a prompt color theme.
	Theme string

	// InvalidThemeError is returned when a Theme value is not recognized.
	InvalidThemeError struct {
		Value Theme
	}

	// InvalidTimeoutError is returned when process.timeout is not a duration.
	InvalidTimeoutError struct {
		Value string
		Err   error
	}

	// InvalidConfigError collects the field errors of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config is the root configuration structure.
	Config struct {
		App     AppConfig     `json:"app" mapstructure:"app" toml:"app"`
		PHP     PHPConfig     `json:"php" mapstructure:"php" toml:"php"`
		Build   BuildConfig   `json:"build" mapstructure:"build" toml:"build"`
		Process ProcessConfig `json:"process" mapstructure:"process" toml:"process"`
		Updater UpdaterConfig `json:"updater" mapstructure:"updater" toml:"updater"`
		UI      UIConfig      `json:"ui" mapstructure:"ui" toml:"ui"`

		// Source is the file the configuration was read from; empty when
		// only defaults and the environment apply.
		Source string `json:"-" mapstructure:"-" toml:"-"`
	}

	// AppConfig is the application metadata baked into the installers.
	AppConfig struct {
		Name    string `json:"name" mapstructure:"name" toml:"name"`
		URL     string `json:"url" mapstructure:"url" toml:"url"`
		ID      string `json:"id" mapstructure:"id" toml:"id"`
		Version string `json:"version" mapstructure:"version" toml:"version"`
		Author  string `json:"author" mapstructure:"author" toml:"author"`
	}

	// PHPConfig selects the bundled PHP runtime.
	PHPConfig struct {
		// Version is the PHP version to bundle; only major and minor are used.
		Version string `json:"version" mapstructure:"version" toml:"version"`
		// PackageDir is the PHP binary package, relative to the application root.
		PackageDir string `json:"package_dir" mapstructure:"package_dir" toml:"package_dir"`
	}

	// BuildConfig holds the commands run by the build.
	BuildConfig struct {
		// FrontendDir is the packaging project, relative to the application root.
		FrontendDir    string `json:"frontend_dir" mapstructure:"frontend_dir" toml:"frontend_dir"`
		FrontendUpdate string `json:"frontend_update" mapstructure:"frontend_update" toml:"frontend_update"`
		BackendInstall string `json:"backend_install" mapstructure:"backend_install" toml:"backend_install"`
		// PackageCommand is followed by the packaging script name.
		PackageCommand string `json:"package_command" mapstructure:"package_command" toml:"package_command"`
	}

	// ProcessConfig controls subprocess execution.
	ProcessConfig struct {
		// Timeout limits commands that are not expected to run long.
		Timeout string `json:"timeout" mapstructure:"timeout" toml:"timeout"`
	}

	// UpdaterConfig configures the auto-updater of packaged applications.
	UpdaterConfig struct {
		Enabled bool         `json:"enabled" mapstructure:"enabled" toml:"enabled"`
		Default string       `json:"default" mapstructure:"default" toml:"default"`
		GitHub  GitHubConfig `json:"github" mapstructure:"github" toml:"github"`
		S3      S3Config     `json:"s3" mapstructure:"s3" toml:"s3"`
		Spaces  SpacesConfig `json:"spaces" mapstructure:"spaces" toml:"spaces"`
	}

	// GitHubConfig configures the github provider.
	GitHubConfig struct {
		Repo             string `json:"repo" mapstructure:"repo" toml:"repo"`
		Owner            string `json:"owner" mapstructure:"owner" toml:"owner"`
		Host             string `json:"host" mapstructure:"host" toml:"host"`
		Channel          string `json:"channel" mapstructure:"channel" toml:"channel"`
		ReleaseType      string `json:"release_type" mapstructure:"release_type" toml:"release_type"`
		VPrefixedTagName bool   `json:"v_prefixed_tag_name" mapstructure:"v_prefixed_tag_name" toml:"v_prefixed_tag_name"`
		Private          bool   `json:"private" mapstructure:"private" toml:"private"`
		Token            string `json:"token" mapstructure:"token" toml:"token"`
	}

	// S3Config configures the s3 provider.
	S3Config struct {
		Key      string `json:"key" mapstructure:"key" toml:"key"`
		Secret   string `json:"secret" mapstructure:"secret" toml:"secret"`
		Region   string `json:"region" mapstructure:"region" toml:"region"`
		Bucket   string `json:"bucket" mapstructure:"bucket" toml:"bucket"`
		Endpoint string `json:"endpoint" mapstructure:"endpoint" toml:"endpoint"`
		Path     string `json:"path" mapstructure:"path" toml:"path"`
	}

	// SpacesConfig configures the spaces provider.
	SpacesConfig struct {
		Key    string `json:"key" mapstructure:"key" toml:"key"`
		Secret string `json:"secret" mapstructure:"secret" toml:"secret"`
		Name   string `json:"name" mapstructure:"name" toml:"name"`
		Region string `json:"region" mapstructure:"region" toml:"region"`
		Path   string `json:"path" mapstructure:"path" toml:"path"`
	}

	// UIConfig controls the interactive prompts.
	UIConfig struct {
		// Accessible replaces the prompts with plain line-based input.
		Accessible bool  `json:"accessible" mapstructure:"accessible" toml:"accessible"`
		Theme      Theme `json:"theme" mapstructure:"theme" toml:"theme"`
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		PHP: PHPConfig{
			Version:    "8.3",
			PackageDir: "vendor/nativephp/php-bin",
		},
		Build: BuildConfig{
			FrontendDir:    "vendor/nativephp/electron/resources/js",
			FrontendUpdate: "npm update",
			BackendInstall: "composer install --no-dev",
			PackageCommand: "npm run",
		},
		Process: ProcessConfig{
			Timeout: "60s",
		},
		Updater: UpdaterConfig{
			Enabled: false,
			Default: string(updater.ProviderGitHub),
		},
		UI: UIConfig{
			Theme: ThemeDefault,
		},
	}
}

// String returns the theme name.
func (t Theme) String() string { return string(t) }

// IsValid returns whether the Theme is one of the defined themes.
func (t Theme) IsValid() (bool, []error) {
	switch t {
	case ThemeDefault, ThemeCharm, ThemeDracula, ThemeCatppuccin, ThemeBase16:
		return true, nil
	default:
		return false, []error{&InvalidThemeError{Value: t}}
	}
}

// Error implements the error interface.
func (e *InvalidThemeError) Error() string {
	return fmt.Sprintf("invalid theme %q (valid: default, charm, dracula, catppuccin, base16)", e.Value)
}

// Unwrap returns ErrInvalidTheme for errors.Is() compatibility.
func (e *InvalidThemeError) Unwrap() error { return ErrInvalidTheme }

// Error implements the error interface.
func (e *InvalidTimeoutError) Error() string {
	return fmt.Sprintf("invalid process timeout %q: %v", e.Value, e.Err)
}

// Unwrap returns ErrInvalidTimeout for errors.Is() compatibility.
func (e *InvalidTimeoutError) Unwrap() error { return ErrInvalidTimeout }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig and every field error.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// ProcessTimeout parses process.timeout.
func (c ProcessConfig) ProcessTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, &InvalidTimeoutError{Value: c.Timeout, Err: err}
	}
	if d < 0 {
		return 0, &InvalidTimeoutError{Value: c.Timeout, Err: errors.New("must not be negative")}
	}
	return d, nil
}

// IsValid returns whether the Config has valid fields. Checks that the
// schema cannot express (values coming from the environment) live here.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.UI.Theme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if _, err := c.Process.ProcessTimeout(); err != nil {
		errs = append(errs, err)
	}
	if c.Updater.Enabled {
		if err := updater.Provider(c.Updater.Default).Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// BuildApp returns the application metadata in the form the environment
// composer consumes.
func (c *Config) BuildApp() buildenv.App {
	return buildenv.App{
		Name:    c.App.Name,
		URL:     c.App.URL,
		ID:      c.App.ID,
		Version: c.App.Version,
		Author:  c.App.Author,
	}
}

// UpdaterSettings converts the updater section for the updater package.
func (c *Config) UpdaterSettings() updater.Settings {
	u := c.Updater
	return updater.Settings{
		Enabled: u.Enabled,
		Default: updater.Provider(u.Default),
		GitHub: updater.GitHubSettings{
			Repo:             u.GitHub.Repo,
			Owner:            u.GitHub.Owner,
			Host:             u.GitHub.Host,
			Channel:          u.GitHub.Channel,
			ReleaseType:      u.GitHub.ReleaseType,
			VPrefixedTagName: u.GitHub.VPrefixedTagName,
			Private:          u.GitHub.Private,
			Token:            u.GitHub.Token,
		},
		S3: updater.S3Settings{
			Key:      u.S3.Key,
			Secret:   u.S3.Secret,
			Region:   u.S3.Region,
			Bucket:   u.S3.Bucket,
			Endpoint: u.S3.Endpoint,
			Path:     u.S3.Path,
		},
		Spaces: updater.SpacesSettings{
			Key:    u.Spaces.Key,
			Secret: u.Spaces.Secret,
			Name:   u.Spaces.Name,
			Region: u.Spaces.Region,
			Path:   u.Spaces.Path,
		},
	}
}

// Redacted returns a copy with credentials masked, for display.
func (c Config) Redacted() Config {
	mask := func(s *string) {
		if *s != "" {
			*s = redacted
		}
	}
	mask(&c.Updater.GitHub.Token)
	mask(&c.Updater.S3.Key)
	mask(&c.Updater.S3.Secret)
	mask(&c.Updater.Spaces.Key)
	mask(&c.Updater.Spaces.Secret)
	return c
}
