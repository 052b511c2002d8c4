// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"fmt"
	"strings"
)

type (
	// CycleError indicates that the dependency graph reachable from the root
	// contains a cycle. Path holds the nodes that close the loop, in walk
	// order, with the repeated node at both ends.
	CycleError struct {
		Path []Node
	}

	// UnknownTargetError is returned when a core does not define the
	// requested target.
	UnknownTargetError struct {
		Core   string
		Target string
	}

	// UnknownFilesetError is returned when a target or fileset references a
	// fileset that does not exist, or a core outside the resolved dependency
	// set.
	UnknownFilesetError struct {
		Core    string
		Fileset string
		Reason  string
	}

	// InheritanceCycleError indicates that a target's extends chain loops.
	InheritanceCycleError struct {
		Core string
		Path []string
	}

	// FilesetCycleError indicates that nested fileset references loop.
	FilesetCycleError struct {
		Core string
		Path []string
	}
)

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Path))
	for i, n := range e.Path {
		parts[i] = n.String()
	}
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(parts, " -> "))
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("core %q has no target %q", e.Core, e.Target)
}

func (e *UnknownFilesetError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("core %q: unknown fileset %q: %s", e.Core, e.Fileset, e.Reason)
	}
	return fmt.Sprintf("core %q: unknown fileset %q", e.Core, e.Fileset)
}

func (e *InheritanceCycleError) Error() string {
	return fmt.Sprintf("core %q: target inheritance cycle: %s", e.Core, strings.Join(e.Path, " -> "))
}

func (e *FilesetCycleError) Error() string {
	return fmt.Sprintf("core %q: fileset reference cycle: %s", e.Core, strings.Join(e.Path, " -> "))
}
