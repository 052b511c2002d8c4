// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"corekit/internal/issue"
	"corekit/internal/runner"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <core>",
	Short: "Resolve a core and run the selected tool flow",
	Long: `Resolve a core target and hand the manifest to the tool selected by
the flow: write a file list, run a lint pass, or both. Generated outputs
land under the configured build root.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(cmd, args[0])
	},
}

func runTool(cmd *cobra.Command, core string) error {
	m, err := resolveManifest(core)
	if err != nil {
		return err
	}

	tool, err := runner.ForTool(m.Tool)
	if err != nil {
		renderIssue(issue.ToolNotFoundId)
		return issue.NewErrorContext().
			WithOperation("selecting tool").
			WithResource(m.Tool).
			WithSuggestion("supported tools: " + fmt.Sprint(runner.ToolNames())).
			WithSuggestion("set a tool with --tool or in your configuration").
			Wrap(err).
			BuildError()
	}

	cfg := loadConfig()
	req := runner.Request{
		Manifest: m,
		WorkRoot: filepath.Join(cfg.BuildRoot, m.Core),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
	if err := tool.Run(cmd.Context(), req); err != nil {
		var exit *runner.ExitError
		if errors.As(err, &exit) {
			fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
			return &ExitError{Code: exit.Code, Err: err}
		}
		return err
	}
	fmt.Println(SuccessStyle.Render("OK: ") + fmt.Sprintf("%s completed for %s:%s", m.Tool, m.Core, m.Target))
	return nil
}
