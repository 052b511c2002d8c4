// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"strings"

	"corekit/internal/discovery"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all discovered cores",
	Long: `List all cores found in the current directory and the configured
search paths, with their versions and targets.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listCores()
	},
}

func listCores() error {
	cfg := loadConfig()
	result, err := discovery.New(cfg).DiscoverAll()
	if err != nil {
		return err
	}

	for _, diag := range result.Diagnostics() {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+
			fmt.Sprintf("%s: %s", diag.Path, formatErrorForDisplay(diag.Error, verbose)))
	}

	names := result.Registry.Names()
	if len(names) == 0 {
		fmt.Println(SubtitleStyle.Render("No cores found."))
		return nil
	}

	fmt.Println(TitleStyle.Render("Available cores"))
	fmt.Println()
	for _, name := range names {
		cf, err := result.Registry.Lookup(name)
		if err != nil {
			continue
		}
		fmt.Printf("  %s", CoreStyle.Render(cf.DisplayID()))
		if cf.Description != "" {
			fmt.Printf("  %s", SubtitleStyle.Render(cf.Description))
		}
		fmt.Println()
		fmt.Printf("    targets: %s\n", strings.Join(cf.TargetNames(), ", "))
	}
	return nil
}
