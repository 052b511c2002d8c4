// SPDX-License-Identifier: MPL-2.0

// Package corefile provides types and parsing for core description files.
//
// A corefile describes one core: a named, optionally versioned unit bundling
// filesets (ordered groups of typed source files) and targets (build
// configurations that select filesets and dependencies, optionally behind
// conditions keyed on the active tool or flow). This package handles CUE
// schema validation, parsing to Go structs, and the structural checks that
// do not need a registry (unknown local fileset names, missing inheritance
// bases).
//
// Cross-core checks — dependency resolution, qualified fileset references,
// cycle detection — live in internal/resolve.
package corefile
