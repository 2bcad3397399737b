// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"os"
)

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// Root is the application root holding nativebuild.cue and .env.
	Root string
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
	// LookupEnv reads the process environment. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Provider loads configuration from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

type fileProvider struct{}

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	return loadWithOptions(ctx, opts)
}

// lookup returns a variable lookup where the process environment takes
// precedence over the project .env file.
func (o LoadOptions) lookup(dotenv DotEnv) func(string) (string, bool) {
	processEnv := o.LookupEnv
	if processEnv == nil {
		processEnv = os.LookupEnv
	}
	return func(name string) (string, bool) {
		if v, ok := processEnv(name); ok {
			return v, true
		}
		return dotenv.Lookup(name)
	}
}
