// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"slices"

	"corekit/internal/registry"
	"corekit/pkg/corefile"
)

type (
	// Node identifies one (core, target) pair in the dependency graph.
	Node struct {
		Core   string
		Target string
	}

	// nodeState tags a node during traversal. Separate visiting and visited
	// states make cycle detection explicit instead of relying on recursion
	// depth.
	nodeState int

	// Resolver walks the dependency graph of a frozen registry.
	Resolver struct {
		reg *registry.Registry
	}
)

const (
	stateUnvisited nodeState = iota
	stateVisiting
	stateVisited
)

// String renders the node as "core:target".
func (n Node) String() string {
	return n.Core + ":" + n.Target
}

// NewResolver creates a Resolver over the given registry.
func NewResolver(reg *registry.Registry) *Resolver {
	return &Resolver{reg: reg}
}

// Resolve walks the graph depth-first from root and returns every reachable
// (core, target) pair exactly once, dependencies before dependents.
//
// Dependency references are followed in declaration order, skipping those
// whose guard does not match ctx. A node reached a second time via another
// path keeps its first-discovery position. The order is fully determined by
// the corefiles and the context, never by map iteration.
//
// Resolve fails with registry.UnknownCoreError, UnknownTargetError,
// InheritanceCycleError, or CycleError (naming the closing path).
func (r *Resolver) Resolve(root Node, ctx corefile.Context) ([]Node, error) {
	states := make(map[Node]nodeState)
	var path []Node
	var order []Node

	var visit func(n Node) error
	visit = func(n Node) error {
		switch states[n] {
		case stateVisiting:
			// The tail of the current path from n back to n closes the loop.
			i := slices.Index(path, n)
			cycle := append(slices.Clone(path[i:]), n)
			return &CycleError{Path: cycle}
		case stateVisited:
			return nil
		}

		states[n] = stateVisiting
		path = append(path, n)

		cf, err := r.reg.Lookup(n.Core)
		if err != nil {
			return err
		}
		target, err := materializeTarget(cf, n.Target)
		if err != nil {
			return err
		}

		for _, dep := range target.DependsOn {
			if !dep.Cond.Eval(ctx) {
				continue
			}
			next := Node{Core: dep.Core, Target: dep.DependencyTarget()}
			if next.Core == n.Core {
				// A core depending on itself is a cycle even across targets;
				// close the path back at the current node.
				cycle := []Node{n, next}
				if next != n {
					cycle = append(cycle, n)
				}
				return &CycleError{Path: cycle}
			}
			if err := visit(next); err != nil {
				return err
			}
		}

		path = path[:len(path)-1]
		states[n] = stateVisited
		order = append(order, n)
		return nil
	}

	if err := visit(root); err != nil {
		return nil, err
	}
	return order, nil
}
