// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"corekit/internal/resolve"
)

type (
	// Lint runs a static lint pass over the manifest's sources. It first
	// writes the file list, then hands it to the selected tool via -f.
	Lint struct {
		tool string
	}

	// ExitError reports a lint tool that finished with a non-zero status.
	ExitError struct {
		Tool string
		Code int
	}
)

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Tool, e.Code)
}

func (l *Lint) Name() string { return l.tool }

func (l *Lint) Run(ctx context.Context, req Request) error {
	flist := &Flist{}
	if err := flist.Run(ctx, Request{Manifest: req.Manifest, WorkRoot: req.WorkRoot}); err != nil {
		return err
	}
	flistPath := filepath.Join(req.WorkRoot, req.Manifest.Core+".f")
	cmd, err := LintCommand(l.tool, req.Manifest, flistPath)
	if err != nil {
		return err
	}
	log.Default().WithPrefix("lint").Info("running lint", "tool", l.tool, "cmd", cmd)
	return runShell(ctx, l.tool, cmd, req)
}

// LintCommand builds the shell command line for a lint invocation.
func LintCommand(tool string, m *resolve.Manifest, flistPath string) (string, error) {
	switch tool {
	case "verilator":
		args := []string{"verilator", "--lint-only", "-Wall"}
		if m.Toplevel != "" {
			args = append(args, "--top-module", m.Toplevel)
		}
		args = append(args, "-f", flistPath)
		if extra := m.ToolOptions["verilator_options"]; extra != "" {
			args = append(args, extra)
		}
		return strings.Join(args, " "), nil
	case "xcelium":
		args := []string{"xrun", "-elaborate"}
		if m.Toplevel != "" {
			args = append(args, "-top", m.Toplevel)
		}
		args = append(args, "-f", flistPath)
		if extra := m.ToolOptions["xrun_options"]; extra != "" {
			args = append(args, extra)
		}
		return strings.Join(args, " "), nil
	default:
		return "", &ToolNotFoundError{Tool: tool}
	}
}

// runShell executes the command line through a POSIX shell interpreter
// so tool options with shell quoting behave as users expect.
func runShell(ctx context.Context, tool, cmd string, req Request) error {
	parser := syntax.NewParser()
	prog, err := parser.Parse(strings.NewReader(cmd), tool)
	if err != nil {
		return fmt.Errorf("parsing %s command: %w", tool, err)
	}
	sh, err := interp.New(
		interp.Dir(req.WorkRoot),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(nil, req.Stdout, req.Stderr),
	)
	if err != nil {
		return fmt.Errorf("creating shell interpreter: %w", err)
	}
	if err := sh.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return &ExitError{Tool: tool, Code: int(status)}
		}
		return fmt.Errorf("running %s: %w", tool, err)
	}
	return nil
}
