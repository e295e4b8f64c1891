// SPDX-License-Identifier: MPL-2.0

package pyscan

// defaultExcluded lists top-level module names that are never sensible to
// embed: large numeric and imaging libraries that ship native extension
// modules, which a source-only bundle cannot reproduce.
//
// Callers can extend (but not shrink) this set via Options.Exclude.
var defaultExcluded = map[string]bool{
	"numpy":  true,
	"PIL":    true,
	"scipy":  true,
	"pandas": true,
	"cv2":    true,
}

// DefaultExcluded returns the names of the built-in exclusion set, mainly for
// display in help text and configuration dumps.
func DefaultExcluded() []string {
	names := make([]string, 0, len(defaultExcluded))
	for name := range defaultExcluded {
		names = append(names, name)
	}
	sortNames(names)
	return names
}
