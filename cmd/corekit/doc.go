// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for corekit.
//
// This package implements the Cobra command hierarchy for the corekit CLI:
// the root command plus subcommands for listing cores, validating corefiles,
// resolving targets into manifests, running tool flows, and inspecting
// configuration.
package cmd
