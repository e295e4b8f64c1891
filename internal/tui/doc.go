// SPDX-License-Identifier: MPL-2.0

// Package tui provides terminal UI components built on Charm libraries.
//
// This package wraps charmbracelet/huh to provide the interactive prompts
// used by the picker flow: a multi-select for packages and yes/no
// confirmations for per-package options.
package tui
