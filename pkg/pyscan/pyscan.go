// SPDX-License-Identifier: MPL-2.0

// Package pyscan extracts embeddable top-level module names from Python
// source files.
//
// Detection is a positional line heuristic, not a grammar parse: a line is an
// import statement when its first whitespace-delimited token is "import", or
// its first token is "from" and its third is "import". Imports spread across
// multiple physical lines or written with unusual spacing are missed. That is
// an accepted limitation of the tool, matched by its callers, and not
// something to quietly "fix" here.
package pyscan

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"pyembed/pkg/pypath"
)

// Options configures a scan.
type Options struct {
	// Exclude adds module names to the built-in exclusion set.
	Exclude []string
}

// Scan reads a Python source file and returns the top-level module names it
// imports that are embeddable: not excluded, and resolvable to a local
// location by the resolver. The result is deduplicated and sorted
// case-insensitively. A file with no embeddable imports yields an empty
// slice, not an error.
func Scan(path string, resolver pypath.Resolver, opts Options) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	excluded := make(map[string]bool, len(defaultExcluded)+len(opts.Exclude))
	for name := range defaultExcluded {
		excluded[name] = true
	}
	for _, name := range opts.Exclude {
		excluded[name] = true
	}

	seen := make(map[string]bool)
	result := []string{}
	for _, line := range strings.Split(string(data), "\n") {
		name, ok := importedName(line)
		if !ok || seen[name] || excluded[name] {
			continue
		}
		seen[name] = true
		if _, found := resolver.Locate(name); !found {
			continue
		}
		result = append(result, name)
	}

	sortNames(result)
	return result, nil
}

// importedName extracts the top-level module name from a single line, when
// that line is an import statement per the positional heuristic.
func importedName(line string) (string, bool) {
	if !strings.Contains(line, "import") {
		return "", false
	}

	parts := strings.Fields(line)
	switch {
	case len(parts) >= 2 && parts[0] == "import":
	case len(parts) >= 3 && parts[0] == "from" && parts[2] == "import":
	default:
		return "", false
	}

	// "import alpha.util" and "from alpha.util import x" both reference the
	// top-level package "alpha".
	name, _, _ := strings.Cut(parts[1], ".")
	if name == "" {
		return "", false
	}
	return name, true
}

// sortNames sorts module names case-insensitively, with a byte-wise tie
// breaker so equal-fold names order deterministically.
func sortNames(names []string) {
	sort.Slice(names, func(i, j int) bool {
		li, lj := strings.ToLower(names[i]), strings.ToLower(names[j])
		if li != lj {
			return li < lj
		}
		return names[i] < names[j]
	})
}
