// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"corekit/internal/config"
	"corekit/internal/issue"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage corekit configuration",
	Long: `Manage corekit configuration.

Configuration is stored in:
  - Linux: ~/.config/corekit/config.cue
  - macOS: ~/Library/Application Support/corekit/config.cue
  - Windows: %APPDATA%\corekit\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})
}

func showConfig() error {
	cfg, err := config.Load()
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	keyStyle := CoreStyle
	valueStyle := SuccessStyle

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	if cfgDir, dirErr := config.ConfigDir(); dirErr == nil {
		cfgPath := filepath.Join(cfgDir, "config.cue")
		if _, statErr := os.Stat(cfgPath); statErr == nil {
			fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), cfgPath)
		} else {
			fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
		}
	}
	fmt.Println()

	fmt.Printf("%s: %s\n", keyStyle.Render("build_root"), valueStyle.Render(cfg.BuildRoot))
	fmt.Printf("%s: %s\n", keyStyle.Render("default_tool"), valueStyle.Render(cfg.DefaultTool))
	fmt.Printf("%s: %s\n", keyStyle.Render("default_flow"), valueStyle.Render(cfg.DefaultFlow))
	if len(cfg.SearchPaths) > 0 {
		fmt.Printf("%s: %s\n", keyStyle.Render("search_paths"), valueStyle.Render(strings.Join(cfg.SearchPaths, ", ")))
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("search_paths"), SubtitleStyle.Render("(none)"))
	}

	fmt.Println()
	fmt.Println(TitleStyle.Render("Flows"))
	for _, name := range sortedFlowNames(cfg) {
		flow := cfg.Flows[name]
		types := "(all types)"
		if len(flow.AcceptedTypes) > 0 {
			types = strings.Join(flow.AcceptedTypes, ", ")
		}
		tool := flow.Tool
		if tool == "" {
			tool = cfg.DefaultTool
		}
		fmt.Printf("  %s: tool=%s types=%s\n", keyStyle.Render(name), valueStyle.Render(tool), types)
	}
	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Println(filepath.Join(cfgDir, "config.cue"))
	return nil
}

func sortedFlowNames(cfg *config.Config) []string {
	names := make([]string, 0, len(cfg.Flows))
	for name := range cfg.Flows {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
