// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/nativebuild/nativebuild/internal/phpbin"
	"github.com/nativebuild/nativebuild/internal/target"
)

func newTargetsCommand(app *App, root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "targets [os]",
		Short: "List the architectures that can be built",
		Long: `List the architectures that can be built for each operating system.

Only architectures with PHP binaries installed in the binary package are
listed; when none are installed yet, every known architecture is shown.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"linux", "mac", "win"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, loadOpts, err := loadConfig(cmd.Context(), app, root)
			if err != nil {
				return err
			}

			systems := phpbin.SupportedOS()
			if len(args) == 1 {
				os := target.OS(args[0])
				if !slices.Contains(systems, os) {
					return &ExitError{Code: ExitUsage, Err: fmt.Errorf("unknown operating system %q (valid: linux, mac, win)", args[0])}
				}
				systems = []target.OS{os}
			}

			locator, err := phpbin.NewLocator(loadOpts.Root, cfg.PHP.PackageDir, cfg.PHP.Version)
			if err != nil {
				return configFailure(err, root.verbose)
			}

			fmt.Fprintln(app.stdout, renderTargets(locator, systems))
			return nil
		},
	}
}

// renderTargets renders one row per OS with its architectures and the
// packaging scripts they map to.
func renderTargets(archs target.ArchLister, systems []target.OS) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtitleStyle).
		Headers("OS", "ARCHITECTURES", "BUILD SCRIPTS").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})

	for _, os := range systems {
		available := archs.ArchitecturesFor(os)
		scripts := make([]string, 0, len(available)+1)
		scripts = append(scripts, target.NewBuildTarget(os, "", false).PackagingScript())
		for _, arch := range available {
			scripts = append(scripts, target.NewBuildTarget(os, arch, false).PackagingScript())
		}
		t.Row(os.String(), strings.Join(available, " "), strings.Join(scripts, " "))
	}
	t.Row(target.OSAll.String(), "", target.NewBuildTarget(target.OSAll, "", false).PackagingScript())

	return t.Render()
}
