// SPDX-License-Identifier: MPL-2.0

package updater

import (
	"errors"
	"fmt"
	"slices"
)

// Supported update providers.
const (
	ProviderGitHub Provider = "github"
	ProviderS3     Provider = "s3"
	ProviderSpaces Provider = "spaces"
)

// Credential variables read by the packaging tool when publishing.
const (
	EnvGitHubToken     = "GH_TOKEN"
	EnvAWSAccessKeyID  = "AWS_ACCESS_KEY_ID"
	EnvAWSSecretKey    = "AWS_SECRET_ACCESS_KEY"
	EnvSpacesKeyID     = "DO_KEY_ID"
	EnvSpacesSecretKey = "DO_SECRET_KEY"
)

// ErrUnknownProvider is the sentinel error wrapped by UnknownProviderError.
var ErrUnknownProvider = errors.New("unknown updater provider")

type (
	// Provider names an update provider.
	Provider string

	// UnknownProviderError is returned when the configured default provider
	// is not one of the supported providers.
	UnknownProviderError struct {
		Value Provider
	}

	// GitHubSettings configures releases published to GitHub.
	GitHubSettings struct {
		Repo             string
		Owner            string
		Host             string
		Channel          string
		ReleaseType      string
		VPrefixedTagName bool
		Private          bool
		Token            string
	}

	// S3Settings configures releases uploaded to an S3 bucket.
	S3Settings struct {
		Key      string
		Secret   string
		Region   string
		Bucket   string
		Endpoint string
		Path     string
	}

	// SpacesSettings configures releases uploaded to DigitalOcean Spaces.
	SpacesSettings struct {
		Key    string
		Secret string
		Name   string
		Region string
		Path   string
	}

	// Settings is the updater section of the project configuration.
	Settings struct {
		Enabled bool
		Default Provider
		GitHub  GitHubSettings
		S3      S3Settings
		Spaces  SpacesSettings
	}

	// Facade exposes the selected provider to the build.
	Facade struct {
		settings Settings
	}

	githubOptions struct {
		Provider         Provider `json:"provider"`
		Repo             string   `json:"repo"`
		Owner            string   `json:"owner"`
		VPrefixedTagName bool     `json:"vPrefixedTagName"`
		Host             string   `json:"host,omitempty"`
		Channel          string   `json:"channel,omitempty"`
		ReleaseType      string   `json:"releaseType,omitempty"`
		Private          bool     `json:"private"`
	}

	s3Options struct {
		Provider Provider `json:"provider"`
		Endpoint string   `json:"endpoint,omitempty"`
		Region   string   `json:"region"`
		Bucket   string   `json:"bucket"`
		Path     string   `json:"path,omitempty"`
	}

	spacesOptions struct {
		Provider Provider `json:"provider"`
		Name     string   `json:"name"`
		Region   string   `json:"region"`
		Path     string   `json:"path,omitempty"`
	}
)

// Providers returns the supported providers.
func Providers() []Provider {
	return []Provider{ProviderGitHub, ProviderS3, ProviderSpaces}
}

// Validate returns an UnknownProviderError for unsupported providers.
func (p Provider) Validate() error {
	if !slices.Contains(Providers(), p) {
		return &UnknownProviderError{Value: p}
	}
	return nil
}

// String returns the provider name.
func (p Provider) String() string { return string(p) }

// Error implements the error interface.
func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown updater provider %q (supported: github, s3, spaces)", e.Value)
}

// Unwrap returns ErrUnknownProvider for errors.Is() compatibility.
func (e *UnknownProviderError) Unwrap() error { return ErrUnknownProvider }

// New creates a Facade. The default provider is only checked when the
// updater is enabled.
func New(settings Settings) (*Facade, error) {
	if settings.Enabled {
		if err := settings.Default.Validate(); err != nil {
			return nil, err
		}
	}
	return &Facade{settings: settings}, nil
}

// Enabled reports whether packaged applications check for updates.
func (f *Facade) Enabled() bool { return f.settings.Enabled }

// Provider returns the selected provider, or "" when disabled.
func (f *Facade) Provider() Provider {
	if !f.settings.Enabled {
		return ""
	}
	return f.settings.Default
}

// BuilderOptions returns the publish options of the selected provider in
// the shape the packaging tool expects. It is nil when the updater is
// disabled.
func (f *Facade) BuilderOptions() any {
	s := f.settings
	switch f.Provider() {
	case ProviderGitHub:
		return githubOptions{
			Provider:         ProviderGitHub,
			Repo:             s.GitHub.Repo,
			Owner:            s.GitHub.Owner,
			VPrefixedTagName: s.GitHub.VPrefixedTagName,
			Host:             s.GitHub.Host,
			Channel:          s.GitHub.Channel,
			ReleaseType:      s.GitHub.ReleaseType,
			Private:          s.GitHub.Private,
		}
	case ProviderS3:
		return s3Options{
			Provider: ProviderS3,
			Endpoint: s.S3.Endpoint,
			Region:   s.S3.Region,
			Bucket:   s.S3.Bucket,
			Path:     s.S3.Path,
		}
	case ProviderSpaces:
		return spacesOptions{
			Provider: ProviderSpaces,
			Name:     s.Spaces.Name,
			Region:   s.Spaces.Region,
			Path:     s.Spaces.Path,
		}
	default:
		return nil
	}
}

// EnvironmentVariables returns the credentials of the selected provider.
// Unset credentials are left out so values already present in the
// environment stay in effect.
func (f *Facade) EnvironmentVariables() map[string]string {
	s := f.settings
	env := make(map[string]string)
	switch f.Provider() {
	case ProviderGitHub:
		setIfPresent(env, EnvGitHubToken, s.GitHub.Token)
	case ProviderS3:
		setIfPresent(env, EnvAWSAccessKeyID, s.S3.Key)
		setIfPresent(env, EnvAWSSecretKey, s.S3.Secret)
	case ProviderSpaces:
		setIfPresent(env, EnvSpacesKeyID, s.Spaces.Key)
		setIfPresent(env, EnvSpacesSecretKey, s.Spaces.Secret)
	}
	return env
}

func setIfPresent(env map[string]string, key, value string) {
	if value != "" {
		env[key] = value
	}
}
