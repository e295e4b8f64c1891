// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for pyembed.
//
// This package implements the Cobra command hierarchy for the pyembed CLI:
// the root command, the embed/scan/pick workflow commands, and configuration
// management.
package cmd
