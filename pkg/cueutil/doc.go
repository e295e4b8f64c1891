// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities: error formatting
// with JSON-path context and input size guards for user-supplied CUE files.
package cueutil
