// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// GenerateCUE generates a CUE representation of the configuration.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// nativebuild configuration\n")
	sb.WriteString("// Values may reference the environment or .env with ${NAME}.\n\n")

	sb.WriteString("app: {\n")
	fmt.Fprintf(&sb, "\tname:    %q\n", cfg.App.Name)
	fmt.Fprintf(&sb, "\turl:     %q\n", cfg.App.URL)
	fmt.Fprintf(&sb, "\tid:      %q\n", cfg.App.ID)
	fmt.Fprintf(&sb, "\tversion: %q\n", cfg.App.Version)
	fmt.Fprintf(&sb, "\tauthor:  %q\n", cfg.App.Author)
	sb.WriteString("}\n")

	sb.WriteString("\nphp: {\n")
	fmt.Fprintf(&sb, "\tversion:     %q\n", cfg.PHP.Version)
	fmt.Fprintf(&sb, "\tpackage_dir: %q\n", cfg.PHP.PackageDir)
	sb.WriteString("}\n")

	sb.WriteString("\nbuild: {\n")
	fmt.Fprintf(&sb, "\tfrontend_dir:    %q\n", cfg.Build.FrontendDir)
	fmt.Fprintf(&sb, "\tfrontend_update: %q\n", cfg.Build.FrontendUpdate)
	fmt.Fprintf(&sb, "\tbackend_install: %q\n", cfg.Build.BackendInstall)
	fmt.Fprintf(&sb, "\tpackage_command: %q\n", cfg.Build.PackageCommand)
	sb.WriteString("}\n")

	sb.WriteString("\nprocess: {\n")
	fmt.Fprintf(&sb, "\ttimeout: %q\n", cfg.Process.Timeout)
	sb.WriteString("}\n")

	u := cfg.Updater
	sb.WriteString("\nupdater: {\n")
	fmt.Fprintf(&sb, "\tenabled: %v\n", u.Enabled)
	fmt.Fprintf(&sb, "\tdefault: %q\n", u.Default)
	if u.GitHub != (GitHubConfig{}) {
		sb.WriteString("\tgithub: {\n")
		writeString(&sb, "repo", u.GitHub.Repo)
		writeString(&sb, "owner", u.GitHub.Owner)
		writeString(&sb, "host", u.GitHub.Host)
		writeString(&sb, "channel", u.GitHub.Channel)
		writeString(&sb, "release_type", u.GitHub.ReleaseType)
		fmt.Fprintf(&sb, "\t\tv_prefixed_tag_name: %v\n", u.GitHub.VPrefixedTagName)
		fmt.Fprintf(&sb, "\t\tprivate: %v\n", u.GitHub.Private)
		writeString(&sb, "token", u.GitHub.Token)
		sb.WriteString("\t}\n")
	}
	if u.S3 != (S3Config{}) {
		sb.WriteString("\ts3: {\n")
		writeString(&sb, "key", u.S3.Key)
		writeString(&sb, "secret", u.S3.Secret)
		writeString(&sb, "region", u.S3.Region)
		writeString(&sb, "bucket", u.S3.Bucket)
		writeString(&sb, "endpoint", u.S3.Endpoint)
		writeString(&sb, "path", u.S3.Path)
		sb.WriteString("\t}\n")
	}
	if u.Spaces != (SpacesConfig{}) {
		sb.WriteString("\tspaces: {\n")
		writeString(&sb, "key", u.Spaces.Key)
		writeString(&sb, "secret", u.Spaces.Secret)
		writeString(&sb, "name", u.Spaces.Name)
		writeString(&sb, "region", u.Spaces.Region)
		writeString(&sb, "path", u.Spaces.Path)
		sb.WriteString("\t}\n")
	}
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\taccessible: %v\n", cfg.UI.Accessible)
	fmt.Fprintf(&sb, "\ttheme:      %q\n", cfg.UI.Theme)
	sb.WriteString("}\n")

	return sb.String()
}

func writeString(sb *strings.Builder, key, value string) {
	if value != "" {
		fmt.Fprintf(sb, "\t\t%s: %q\n", key, value)
	}
}

// RenderTOML renders the configuration as TOML.
func RenderTOML(cfg *Config) ([]byte, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to render config as TOML: %w", err)
	}
	return data, nil
}
