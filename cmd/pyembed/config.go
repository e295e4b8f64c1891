// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pyembed/internal/config"
	"pyembed/internal/issue"

	"github.com/spf13/cobra"
)

// configCmd is the `pyembed config` command tree.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage pyembed configuration",
	Long: `Manage pyembed configuration.

Configuration is stored in:
  - Linux: ~/.config/pyembed/config.cue
  - macOS: ~/Library/Application Support/pyembed/config.cue
  - Windows: %APPDATA%\pyembed\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile(cmd)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
			return nil
		},
	})
}

func showConfig(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		renderIssue(issue.ConfigLoadFailedId)
		return err
	}

	out := cmd.OutOrStdout()
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(out, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(out)

	if path := config.Path(); path != "" {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(out)

	siteDirs := make([]string, 0, len(cfg.SiteDirs))
	for _, d := range cfg.SiteDirs {
		siteDirs = append(siteDirs, string(d))
	}
	excludes := make([]string, 0, len(cfg.ExcludePackages))
	for _, n := range cfg.ExcludePackages {
		excludes = append(excludes, string(n))
	}

	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("site_dirs"), renderList(siteDirs))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("exclude_packages"), renderList(excludes))
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("output_suffix"), valueStyle.Render(string(cfg.OutputSuffix)))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s: %s\n", keyStyle.Render("ui.color_scheme"), valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Fprintf(out, "%s: %v\n", keyStyle.Render("ui.verbose"), cfg.UI.Verbose)

	return nil
}

// renderList formats a string list for display, with a muted placeholder for
// the empty case.
func renderList(values []string) string {
	if len(values) == 0 {
		return SubtitleStyle.Render("(none)")
	}
	return SuccessStyle.Render(strings.Join(values, ", "))
}

func initConfigFile(cmd *cobra.Command) error {
	if err := config.CreateDefaultConfig(); err != nil {
		renderIssue(issue.ConfigLoadFailedId)
		return err
	}

	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	cfgPath := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", SuccessStyle.Render("Configuration ready at"), cfgPath)
	return nil
}

func showConfigPath(cmd *cobra.Command) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	cfgPath := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
	fmt.Fprintln(cmd.OutOrStdout(), cfgPath)

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		fmt.Fprintln(cmd.ErrOrStderr(), SubtitleStyle.Render("(file does not exist yet; run 'pyembed config init')"))
	}
	return nil
}
