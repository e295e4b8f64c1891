// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error reporting: a registry of known
// failure conditions rendered as markdown, and ActionableError for carrying
// operation context and fix suggestions through the error chain.
package issue
