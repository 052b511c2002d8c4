// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			"operation only",
			&ActionableError{Operation: "load corefile"},
			"failed to load corefile",
		},
		{
			"operation with resource",
			&ActionableError{Operation: "load corefile", Resource: "fifo.core.cue"},
			"failed to load corefile: fifo.core.cue",
		},
		{
			"operation with cause",
			&ActionableError{Operation: "resolve core", Cause: errors.New("unknown core \"ghost\"")},
			"failed to resolve core: unknown core \"ghost\"",
		},
		{
			"everything",
			&ActionableError{Operation: "resolve core", Resource: "fifo", Cause: errors.New("boom")},
			"failed to resolve core: fifo: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()
	err := NewErrorContext().
		WithOperation("resolve core").
		WithResource("fifo").
		WithSuggestion("Run 'corekit list' to see registered cores").
		WithSuggestion("Check for typos").
		Wrap(errors.New("unknown core")).
		Build()

	out := err.Format(false)
	if !strings.Contains(out, "• Run 'corekit list'") || !strings.Contains(out, "• Check for typos") {
		t.Errorf("suggestions missing from:\n%s", out)
	}
	if strings.Contains(out, "Error chain") {
		t.Error("non-verbose format should not include the error chain")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:") || !strings.Contains(verbose, "1. unknown core") {
		t.Errorf("verbose format should include the chain:\n%s", verbose)
	}
}

func TestActionableError_Unwrap(t *testing.T) {
	t.Parallel()
	cause := errors.New("root cause")
	err := NewErrorContext().WithOperation("x").Wrap(cause).BuildError()
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestErrorContext_RequiresOperation(t *testing.T) {
	t.Parallel()
	if got := NewErrorContext().WithResource("x").Build(); got != nil {
		t.Errorf("Build without operation should return nil, got %+v", got)
	}
	if got := NewErrorContext().WithResource("x").BuildError(); got != nil {
		t.Errorf("BuildError without operation should return nil, got %v", got)
	}
}

func TestWrapWithOperation(t *testing.T) {
	t.Parallel()
	if got := WrapWithOperation(nil, "x"); got != nil {
		t.Errorf("wrapping nil should return nil, got %+v", got)
	}
	err := WrapWithOperation(errors.New("boom"), "load corefile")
	if err.Error() != "failed to load corefile: boom" {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestCatalog(t *testing.T) {
	t.Parallel()
	if Get(DependencyCycleId) == nil {
		t.Fatal("dependency cycle issue missing from catalog")
	}
	if Get(Id(999)) != nil {
		t.Error("unknown id should return nil")
	}
	if len(Values()) != len(Ids()) {
		t.Error("Values and Ids disagree on catalog size")
	}
	ids := Ids()
	if !slices.IsSorted(ids) {
		t.Errorf("Ids() not sorted: %v", ids)
	}
	for _, id := range ids {
		if Get(id).MarkdownMsg() == "" {
			t.Errorf("issue %d has empty message", id)
		}
	}
}
