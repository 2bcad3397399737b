// SPDX-License-Identifier: MPL-2.0

package updater

import (
	"encoding/json"
	"errors"
	"maps"
	"testing"
)

func TestNew_UnknownProvider(t *testing.T) {
	t.Parallel()

	if _, err := New(Settings{Enabled: true, Default: "ftp"}); !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("New() error = %v, want ErrUnknownProvider", err)
	}
	if _, err := New(Settings{Enabled: false, Default: "ftp"}); err != nil {
		t.Errorf("New() with disabled updater error = %v", err)
	}
}

func TestFacade_Disabled(t *testing.T) {
	t.Parallel()

	f, err := New(Settings{Default: ProviderGitHub, GitHub: GitHubSettings{Token: "t"}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if f.BuilderOptions() != nil {
		t.Errorf("BuilderOptions() = %v, want nil", f.BuilderOptions())
	}
	if env := f.EnvironmentVariables(); len(env) != 0 {
		t.Errorf("EnvironmentVariables() = %v, want empty", env)
	}
	if f.Provider() != "" {
		t.Errorf("Provider() = %q, want empty", f.Provider())
	}
}

func TestFacade_Providers(t *testing.T) {
	t.Parallel()

	settings := Settings{
		Enabled: true,
		GitHub: GitHubSettings{
			Repo: "app", Owner: "example", VPrefixedTagName: true,
			Channel: "latest", ReleaseType: "draft", Token: "gh-secret",
		},
		S3: S3Settings{
			Key: "ak", Secret: "sk", Region: "eu-west-1", Bucket: "releases", Path: "/app",
		},
		Spaces: SpacesSettings{
			Key: "dk", Secret: "ds", Name: "space", Region: "ams3",
		},
	}

	tests := []struct {
		provider Provider
		wantJSON string
		wantEnv  map[string]string
	}{
		{
			provider: ProviderGitHub,
			wantJSON: `{"provider":"github","repo":"app","owner":"example","vPrefixedTagName":true,"channel":"latest","releaseType":"draft","private":false}`,
			wantEnv:  map[string]string{EnvGitHubToken: "gh-secret"},
		},
		{
			provider: ProviderS3,
			wantJSON: `{"provider":"s3","region":"eu-west-1","bucket":"releases","path":"/app"}`,
			wantEnv:  map[string]string{EnvAWSAccessKeyID: "ak", EnvAWSSecretKey: "sk"},
		},
		{
			provider: ProviderSpaces,
			wantJSON: `{"provider":"spaces","name":"space","region":"ams3"}`,
			wantEnv:  map[string]string{EnvSpacesKeyID: "dk", EnvSpacesSecretKey: "ds"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.provider.String(), func(t *testing.T) {
			t.Parallel()

			s := settings
			s.Default = tt.provider
			f, err := New(s)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			data, err := json.Marshal(f.BuilderOptions())
			if err != nil {
				t.Fatalf("json.Marshal() error = %v", err)
			}
			if string(data) != tt.wantJSON {
				t.Errorf("BuilderOptions() JSON = %s, want %s", data, tt.wantJSON)
			}
			if env := f.EnvironmentVariables(); !maps.Equal(env, tt.wantEnv) {
				t.Errorf("EnvironmentVariables() = %v, want %v", env, tt.wantEnv)
			}
		})
	}
}

func TestFacade_EmptyCredentialsOmitted(t *testing.T) {
	t.Parallel()

	f, err := New(Settings{Enabled: true, Default: ProviderS3, S3: S3Settings{Key: "ak"}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	want := map[string]string{EnvAWSAccessKeyID: "ak"}
	if env := f.EnvironmentVariables(); !maps.Equal(env, want) {
		t.Errorf("EnvironmentVariables() = %v, want %v", env, want)
	}
}
