// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

// DefaultMaxFileSize caps user-supplied CUE input at 1 MiB. Configuration
// files are tiny; anything larger is a mistake or an attack.
const DefaultMaxFileSize int64 = 1 << 20

// FormatError formats a CUE error with JSON-path prefixes for clear error
// messages.
//
// Error format: <file-path>: <json-path>: <message>
//
// Examples:
//   - config.cue: ui.color_scheme: 2 errors in empty disjunction
//   - config.cue: site_dirs[1]: conflicting values 42 and string
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrors := errors.Errors(err)
	if len(cueErrors) == 0 {
		// Not a CUE error, return as-is.
		return fmt.Errorf("%s: %w", filePath, err)
	}

	var lines []string
	for _, e := range cueErrors {
		pathStr := formatPath(errors.Path(e))
		msg := e.Error()

		// CUE sometimes includes the path in the message itself; strip the
		// redundant prefix.
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimPrefix(msg, pathStr)
			msg = strings.TrimPrefix(msg, ":")
			msg = strings.TrimSpace(msg)
		}

		if pathStr != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", pathStr, msg))
		} else {
			lines = append(lines, msg)
		}
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filePath, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filePath, strings.Join(lines, "\n  "))
}

// formatPath converts a CUE error path to JSON-path notation: CUE provides
// flat string slices like ["site_dirs", "0"], rendered as "site_dirs[0]".
func formatPath(path []string) string {
	if len(path) == 0 {
		return ""
	}

	var result strings.Builder
	for i, part := range path {
		isIndex := part != ""
		for _, c := range part {
			if c < '0' || c > '9' {
				isIndex = false
				break
			}
		}

		if isIndex && i > 0 {
			result.WriteString("[")
			result.WriteString(part)
			result.WriteString("]")
		} else {
			if i > 0 {
				result.WriteString(".")
			}
			result.WriteString(part)
		}
	}

	return result.String()
}

// CheckFileSize verifies that data does not exceed the specified maximum
// size. Returns an error if the size limit is exceeded.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes",
			filename, len(data), maxSize)
	}
	return nil
}
