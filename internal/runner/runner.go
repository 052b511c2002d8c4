// SPDX-License-Identifier: MPL-2.0

// Package runner contains the downstream tool runners that consume a
// resolved manifest: the flat file-list writer and the lint invocations.
// Runners only read the manifest; all resolution decisions (ordering,
// deduplication, type filtering) were already made upstream.
package runner

import (
	"context"
	"fmt"
	"io"

	"corekit/internal/resolve"
)

type (
	// ToolNotFoundError is returned when no runner exists for a tool name.
	ToolNotFoundError struct {
		Tool string
	}

	// Request carries everything a runner needs for one invocation.
	Request struct {
		// Manifest is the resolved file list with its target metadata.
		Manifest *resolve.Manifest
		// WorkRoot is the directory for generated outputs (flist files).
		WorkRoot string
		// Stdout and Stderr receive the tool's output.
		Stdout io.Writer
		Stderr io.Writer
	}

	// Tool is one downstream consumer of a manifest.
	Tool interface {
		// Name returns the tool name as selected by --tool.
		Name() string
		// Run performs the invocation. The context cancels long-running
		// child processes.
		Run(ctx context.Context, req Request) error
	}
)

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.Tool)
}

// ForTool returns the runner registered under the given name.
func ForTool(name string) (Tool, error) {
	switch name {
	case "flist":
		return &Flist{}, nil
	case "verilator", "xcelium":
		return &Lint{tool: name}, nil
	default:
		return nil, &ToolNotFoundError{Tool: name}
	}
}

// ToolNames lists the built-in runners for help output.
func ToolNames() []string {
	return []string{"flist", "verilator", "xcelium"}
}
