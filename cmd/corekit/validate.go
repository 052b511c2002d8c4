// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"corekit/internal/discovery"
	"corekit/pkg/corefile"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [corefile...]",
	Short: "Validate corefiles",
	Long: `Validate the given corefiles, or every discovered corefile when no
arguments are given. Exits non-zero when any file fails validation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return validateCorefiles(args)
	},
}

func validateCorefiles(paths []string) error {
	if len(paths) > 0 {
		return validatePaths(paths)
	}

	cfg := loadConfig()
	result, err := discovery.New(cfg).DiscoverAll()
	if err != nil {
		return err
	}
	failed := 0
	for _, f := range result.Files {
		if f.Error != nil {
			failed++
			fmt.Printf("%s %s\n", ErrorStyle.Render("✗"), f.Path)
			fmt.Fprintln(os.Stderr, "  "+formatErrorForDisplay(f.Error, verbose))
			continue
		}
		fmt.Printf("%s %s (%s)\n", SuccessStyle.Render("✓"), f.Path, CoreStyle.Render(f.Corefile.DisplayID()))
	}
	if len(result.Files) == 0 {
		fmt.Println(SubtitleStyle.Render("No corefiles found."))
		return nil
	}
	return validationSummary(len(result.Files), failed)
}

func validatePaths(paths []string) error {
	failed := 0
	for _, path := range paths {
		cf, err := corefile.Parse(path)
		if err != nil {
			failed++
			fmt.Printf("%s %s\n", ErrorStyle.Render("✗"), path)
			fmt.Fprintln(os.Stderr, "  "+formatErrorForDisplay(err, verbose))
			continue
		}
		fmt.Printf("%s %s (%s)\n", SuccessStyle.Render("✓"), path, CoreStyle.Render(cf.DisplayID()))
	}
	return validationSummary(len(paths), failed)
}

func validationSummary(total, failed int) error {
	fmt.Println()
	if failed > 0 {
		fmt.Printf("%s %d of %d corefiles failed validation\n",
			ErrorStyle.Render("Error:"), failed, total)
		return &ExitError{Code: 1}
	}
	fmt.Printf("%s all %d corefiles are valid\n", SuccessStyle.Render("OK:"), total)
	return nil
}
