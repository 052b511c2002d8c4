// SPDX-License-Identifier: MPL-2.0

// Package cueutil wraps the CUE evaluator with the schema-unify-decode flow
// used for every CUE document corekit reads (corefiles and the workspace
// config). A caller embeds a schema, hands over the user's bytes, and gets
// back a decoded Go struct or an error that points at the offending field.
//
// The CUE evaluation details are deliberately kept out of the callers; only
// Load, Option and the error types are part of the contract.
package cueutil
