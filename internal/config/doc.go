// SPDX-License-Identifier: MPL-2.0

// Package config handles workspace configuration using Viper with CUE as the
// file format.
//
// Configuration is loaded from ~/.config/corekit/config.cue (or the XDG /
// platform equivalent), with a config.cue in the current directory taking
// precedence and a --config flag overriding both. The file is validated
// against an embedded CUE schema before being merged over the built-in
// defaults, so a typo in a flow name or a wrong type is reported with its
// CUE path instead of silently ignored.
package config
