// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"corekit/internal/config"
	"corekit/internal/discovery"
	"corekit/internal/issue"
	"corekit/internal/registry"
	"corekit/internal/resolve"
	"corekit/internal/runner"
	"corekit/pkg/corefile"

	"github.com/spf13/cobra"
)

var (
	resolveTarget string
	resolveTool   string
	resolveFlow   string
	resolveFormat string
	resolveOutput string

	resolveCmd = &cobra.Command{
		Use:   "resolve <core>",
		Short: "Resolve a core's dependency graph into a manifest",
		Long: `Resolve the dependency graph of a core target and print the resulting
manifest: the ordered, deduplicated file list together with the target's
tool metadata. Dependencies come before dependents.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := resolveManifest(args[0])
			if err != nil {
				return err
			}
			return writeManifest(m)
		},
	}
)

func init() {
	for _, c := range []*cobra.Command{resolveCmd, runCmd} {
		c.Flags().StringVarP(&resolveTarget, "target", "t", corefile.DefaultTargetName, "target to resolve")
		c.Flags().StringVar(&resolveTool, "tool", "", "tool to resolve for (default from config)")
		c.Flags().StringVar(&resolveFlow, "flow", "", "flow to resolve for (default from config)")
	}
	resolveCmd.Flags().StringVarP(&resolveFormat, "format", "f", "yaml",
		"output format: f (file list), "+strings.Join(runner.ExportFormats(), ", "))
	resolveCmd.Flags().StringVarP(&resolveOutput, "output", "o", "", "write manifest to file instead of stdout")
}

// resolveManifest runs the full discover-resolve-compose pipeline for one
// core and returns its manifest.
func resolveManifest(core string) (*resolve.Manifest, error) {
	cfg := loadConfig()
	result, err := discovery.New(cfg).DiscoverAll()
	if err != nil {
		return nil, err
	}
	for _, diag := range result.Diagnostics() {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+
			fmt.Sprintf("%s: %s", diag.Path, formatErrorForDisplay(diag.Error, verbose)))
	}

	ctx, acceptedTypes := resolutionContext(cfg, result.Registry, core)
	m, err := resolve.Run(result.Registry, ctx, acceptedTypes)
	if err != nil {
		return nil, classifyResolveError(err, ctx)
	}
	return m, nil
}

// resolutionContext derives the evaluation context and accepted file types.
// Flags win, then the root target's declared flow/tool defaults, then the
// configuration. Lookup failures are left for resolve.Run to report.
func resolutionContext(cfg *config.Config, reg *registry.Registry, core string) (corefile.Context, []string) {
	ctx := corefile.Context{
		Core:   core,
		Target: resolveTarget,
		Tool:   resolveTool,
		Flow:   resolveFlow,
	}
	if eff, err := resolve.EffectiveContext(reg, ctx); err == nil {
		ctx = eff
	}
	if ctx.Flow == "" {
		ctx.Flow = cfg.DefaultFlow
	}
	if ctx.Tool == "" {
		ctx.Tool = cfg.ToolFor(ctx.Flow, "")
	}
	return ctx, cfg.FlowByName(ctx.Flow).AcceptedTypes
}

// classifyResolveError attaches suggestions and the matching issue page to
// the errors users hit most often.
func classifyResolveError(err error, ctx corefile.Context) error {
	var (
		unknownCore   *registry.UnknownCoreError
		unknownTarget *resolve.UnknownTargetError
		cycle         *resolve.CycleError
	)
	switch {
	case errors.As(err, &unknownCore):
		renderIssue(issue.CoreNotFoundId)
		return issue.NewErrorContext().
			WithOperation("resolving core").
			WithResource(ctx.Core).
			WithSuggestion("run 'corekit list' to see available cores").
			WithSuggestion("check the search paths in your configuration").
			Wrap(err).
			BuildError()
	case errors.As(err, &unknownTarget):
		renderIssue(issue.TargetNotFoundId)
		return issue.NewErrorContext().
			WithOperation("resolving target").
			WithResource(unknownTarget.Core + ":" + unknownTarget.Target).
			WithSuggestion("run 'corekit list' to see each core's targets").
			Wrap(err).
			BuildError()
	case errors.As(err, &cycle):
		renderIssue(issue.DependencyCycleId)
		return issue.NewErrorContext().
			WithOperation("resolving dependencies").
			WithResource(ctx.Core).
			WithSuggestion("break the cycle by removing one of the dependencies on the reported path").
			Wrap(err).
			BuildError()
	default:
		return err
	}
}

// renderIssue prints the catalog page for an issue in verbose mode.
func renderIssue(id issue.Id) {
	if !verbose {
		return
	}
	if rendered, err := issue.Get(id).Render("dark"); err == nil {
		fmt.Fprint(os.Stderr, rendered)
	}
}

func writeManifest(m *resolve.Manifest) error {
	var w io.Writer = os.Stdout
	if resolveOutput != "" {
		f, err := os.Create(resolveOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	if resolveFormat == "f" {
		lines, err := runner.FileListLines(m)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, strings.Join(lines, "\n"))
		return err
	}
	return runner.Export(m, resolveFormat, w)
}
