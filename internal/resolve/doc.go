// SPDX-License-Identifier: MPL-2.0

// Package resolve turns a frozen core registry plus a resolution context
// into a build manifest. It walks the dependency graph from a chosen
// (core, target) pair, composes each resolved core's conditional filesets
// into a typed file list, and aggregates everything into one deterministic,
// deduplicated, type-filtered manifest for a downstream tool.
//
// All inputs are immutable; a resolution run allocates its own bookkeeping,
// so independent runs over the same registry may execute in parallel.
package resolve
