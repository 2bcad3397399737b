// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nativebuild/nativebuild/internal/issue"
	"github.com/nativebuild/nativebuild/pkg/cueutil"

	"github.com/spf13/viper"
	"mvdan.cc/sh/v3/shell"
)

const (
	// AppName is the application name.
	AppName = "nativebuild"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "nativebuild"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes the environment variables that override config keys.
	EnvPrefix = "NATIVEBUILD"

	// maxConfigFileSize guards against loading something that is not a config.
	maxConfigFileSize = 1 << 20
)

//go:embed config_schema.cue
var configSchema string

// appEnvFallbacks fill empty app fields from the Laravel-style project
// environment.
var appEnvFallbacks = []struct {
	env   string
	field func(*AppConfig) *string
}{
	{env: "APP_NAME", field: func(a *AppConfig) *string { return &a.Name }},
	{env: "APP_URL", field: func(a *AppConfig) *string { return &a.URL }},
	{env: "NATIVEPHP_APP_ID", field: func(a *AppConfig) *string { return &a.ID }},
	{env: "NATIVEPHP_APP_VERSION", field: func(a *AppConfig) *string { return &a.Version }},
	{env: "NATIVEPHP_APP_AUTHOR", field: func(a *AppConfig) *string { return &a.Author }},
}

// DefaultConfigPath returns the config file path of the application at root.
func DefaultConfigPath(root string) string {
	return filepath.Join(root, ConfigFileName+"."+ConfigFileExt)
}

// EnvName returns the environment variable overriding a config key,
// e.g. "updater.github.token" -> "NATIVEBUILD_UPDATER_GITHUB_TOKEN".
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// loadWithOptions performs option-driven config loading.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())

	dotenv, err := LoadDotEnv(filepath.Join(opts.Root, DotEnvFileName))
	if err != nil {
		return nil, issue.NewErrorContext().
			WithIssue(issue.ConfigLoadFailedId).
			WithOperation("load project environment").
			WithResource(filepath.Join(opts.Root, DotEnvFileName)).
			WithSuggestion("Check the reported line; values containing spaces need quotes").
			Wrap(err).
			BuildError()
	}
	lookup := opts.lookup(dotenv)

	source, err := resolveConfigFile(opts)
	if err != nil {
		return nil, err
	}
	if source != "" {
		if err := loadCUEIntoViper(v, source); err != nil {
			return nil, issue.NewErrorContext().
				WithIssue(issue.ConfigLoadFailedId).
				WithOperation("load configuration").
				WithResource(source).
				WithSuggestions(
					"Check that the file contains valid CUE syntax",
					"Verify the configuration values match the expected schema",
					"Run 'nativebuild config init' in a scratch directory to see a valid file",
				).
				Wrap(err).
				BuildError()
		}
	}

	applyEnvOverrides(v, lookup)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		ae := issue.WrapWithOperation(err, "decode configuration")
		ae.IssueId = issue.ConfigLoadFailedId
		return nil, ae
	}
	cfg.Source = source

	if err := cfg.expand(lookup); err != nil {
		return nil, issue.NewErrorContext().
			WithIssue(issue.ConfigLoadFailedId).
			WithOperation("expand configuration variables").
			WithResource(source).
			WithSuggestion("Use ${NAME} to reference a variable from the environment or .env").
			Wrap(err).
			BuildError()
	}
	for _, fb := range appEnvFallbacks {
		if field := fb.field(&cfg.App); *field == "" {
			*field, _ = lookup(fb.env)
		}
	}

	if valid, errs := cfg.IsValid(); !valid {
		return nil, issue.NewErrorContext().
			WithIssue(issue.ConfigLoadFailedId).
			WithOperation("validate configuration").
			WithResource(source).
			WithSuggestion("Check NATIVEBUILD_* variables in the environment and in .env").
			Wrap(errors.Join(errs...)).
			BuildError()
	}

	return &cfg, nil
}

// resolveConfigFile returns the config file to load, or "" to run on
// defaults. An explicitly requested file must exist.
func resolveConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithIssue(issue.ConfigLoadFailedId).
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestions(
					"Verify the file path is correct",
					"Check that the file exists and is readable",
					"Use 'nativebuild config show' to see the default configuration",
				).
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	if path := DefaultConfigPath(opts.Root); fileExists(path) {
		return path, nil
	}
	return "", nil
}

func setDefaults(v *viper.Viper, defaults *Config) {
	v.SetDefault("app.name", defaults.App.Name)
	v.SetDefault("app.url", defaults.App.URL)
	v.SetDefault("app.id", defaults.App.ID)
	v.SetDefault("app.version", defaults.App.Version)
	v.SetDefault("app.author", defaults.App.Author)
	v.SetDefault("php.version", defaults.PHP.Version)
	v.SetDefault("php.package_dir", defaults.PHP.PackageDir)
	v.SetDefault("build.frontend_dir", defaults.Build.FrontendDir)
	v.SetDefault("build.frontend_update", defaults.Build.FrontendUpdate)
	v.SetDefault("build.backend_install", defaults.Build.BackendInstall)
	v.SetDefault("build.package_command", defaults.Build.PackageCommand)
	v.SetDefault("process.timeout", defaults.Process.Timeout)
	v.SetDefault("updater.enabled", defaults.Updater.Enabled)
	v.SetDefault("updater.default", defaults.Updater.Default)
	for _, key := range []string{"repo", "owner", "host", "channel", "release_type", "token"} {
		v.SetDefault("updater.github."+key, "")
	}
	v.SetDefault("updater.github.v_prefixed_tag_name", defaults.Updater.GitHub.VPrefixedTagName)
	v.SetDefault("updater.github.private", defaults.Updater.GitHub.Private)
	for _, key := range []string{"key", "secret", "region", "bucket", "endpoint", "path"} {
		v.SetDefault("updater.s3."+key, "")
	}
	for _, key := range []string{"key", "secret", "name", "region", "path"} {
		v.SetDefault("updater.spaces."+key, "")
	}
	v.SetDefault("ui.accessible", defaults.UI.Accessible)
	v.SetDefault("ui.theme", defaults.UI.Theme.String())
}

// applyEnvOverrides sets every known key that has a NATIVEBUILD_* variable.
// Viper's AutomaticEnv only sees the process environment; going through
// lookup lets .env provide overrides too.
func applyEnvOverrides(v *viper.Viper, lookup func(string) (string, bool)) {
	for _, key := range v.AllKeys() {
		if value, ok := lookup(EnvName(key)); ok {
			v.Set(key, value)
		}
	}
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	result, err := cueutil.ParseAndDecodeString[map[string]any](configSchema, data, "#Config",
		cueutil.WithFilename(path),
		cueutil.WithMaxFileSize(maxConfigFileSize),
	)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(*result.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// expand resolves ${VAR} references in the fields that commonly carry
// secrets or per-machine values.
func (c *Config) expand(lookup func(string) (string, bool)) error {
	env := func(name string) string {
		v, _ := lookup(name)
		return v
	}

	fields := map[string]*string{
		"app.name":              &c.App.Name,
		"app.url":               &c.App.URL,
		"app.id":                &c.App.ID,
		"app.version":           &c.App.Version,
		"app.author":            &c.App.Author,
		"updater.github.repo":   &c.Updater.GitHub.Repo,
		"updater.github.owner":  &c.Updater.GitHub.Owner,
		"updater.github.token":  &c.Updater.GitHub.Token,
		"updater.s3.key":        &c.Updater.S3.Key,
		"updater.s3.secret":     &c.Updater.S3.Secret,
		"updater.s3.bucket":     &c.Updater.S3.Bucket,
		"updater.s3.endpoint":   &c.Updater.S3.Endpoint,
		"updater.spaces.key":    &c.Updater.Spaces.Key,
		"updater.spaces.secret": &c.Updater.Spaces.Secret,
		"updater.spaces.name":   &c.Updater.Spaces.Name,
	}
	for key, field := range fields {
		if !strings.Contains(*field, "$") {
			continue
		}
		expanded, err := shell.Expand(*field, env)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*field = expanded
	}
	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes a starter config file to path. It refuses to
// overwrite an existing file.
func CreateDefaultConfig(path string, app AppConfig) error {
	cfg := DefaultConfig()
	cfg.App = app

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return issue.WrapWithContext(err, "create config file", path)
	}
	if _, err := f.WriteString(GenerateCUE(cfg)); err != nil {
		_ = f.Close()
		return issue.WrapWithContext(err, "write config file", path)
	}
	return f.Close()
}
