// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error presentation: ActionableError
// wraps a failure with the operation, the resource involved, and concrete
// suggestions, while the issue catalog maps well-known failure classes to
// rendered markdown help pages.
package issue
