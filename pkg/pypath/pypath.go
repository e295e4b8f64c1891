// SPDX-License-Identifier: MPL-2.0

// Package pypath models the Python module search path and resolves top-level
// module names to their on-disk locations.
//
// Only "local" search path entries participate in resolution: the working
// directory itself and third-party library directories (conventionally named
// "site-packages"). Interpreter-internal entries (the standard library, zip
// archives, etc.) are deliberately ignored — packages found there are either
// not embeddable or not worth embedding.
//
// The search path is an explicit value passed around by callers rather than
// ambient process state, so resolution stays deterministic and testable.
package pypath

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// SiteDirName is the conventional directory name for installed
	// third-party libraries on the search path.
	SiteDirName = "site-packages"

	// InitFileName is the marker file whose presence makes a directory an
	// importable package.
	InitFileName = "__init__.py"

	// SourceExt is the Python source file extension.
	SourceExt = ".py"
)

type (
	// Location is the resolved on-disk location of a module: either a package
	// directory (containing __init__.py) or a single source file.
	Location struct {
		// Path is the absolute or search-path-relative filesystem path.
		Path string
		// IsPackage is true for a package directory, false for a single
		// module file.
		IsPackage bool
	}

	// Resolver resolves a top-level module name to a Location. Implemented by
	// SearchPath; callers that only need resolution (the scanner, the
	// embedder) accept this interface so tests can supply fakes.
	Resolver interface {
		Locate(name string) (Location, bool)
	}

	// SearchPath is an ordered list of directories consulted to resolve an
	// import by name, plus the working directory used to decide which entries
	// count as local.
	SearchPath struct {
		// Entries are the search path directories in priority order.
		Entries []string
		// WorkDir is the directory treated as the project's own working
		// directory. An entry resolving to WorkDir qualifies as local.
		WorkDir string
	}
)

// EnvVar is the environment variable holding extra search path entries,
// separated by the OS path list separator.
const EnvVar = "PYTHONPATH"

// FromEnv builds a SearchPath for the given working directory: the working
// directory first, then every non-empty PYTHONPATH entry in order.
func FromEnv(workDir string) SearchPath {
	entries := []string{workDir}
	for _, e := range filepath.SplitList(os.Getenv(EnvVar)) {
		if e != "" {
			entries = append(entries, e)
		}
	}
	return SearchPath{Entries: entries, WorkDir: workDir}
}

// WithSites returns a copy of the search path with additional library
// directories appended at the lowest priority. Empty entries are dropped.
func (sp SearchPath) WithSites(dirs ...string) SearchPath {
	entries := make([]string, len(sp.Entries), len(sp.Entries)+len(dirs))
	copy(entries, sp.Entries)
	for _, d := range dirs {
		if d != "" {
			entries = append(entries, d)
		}
	}
	return SearchPath{Entries: entries, WorkDir: sp.WorkDir}
}

// Locate resolves a top-level module name against the search path.
//
// Entries are visited in priority order; an entry qualifies only if it is
// local (see IsLocalEntry). Within a qualifying entry, a package directory
// named after the module (with __init__.py) wins over a single <name>.py
// file. The first qualifying entry that yields any match ends the search.
//
// Resolution is read-only filesystem probing; calling Locate twice against an
// unchanged filesystem returns the same result.
func (sp SearchPath) Locate(name string) (Location, bool) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return Location{}, false
	}

	for _, entry := range sp.Entries {
		if !sp.IsLocalEntry(entry) {
			continue
		}

		pkgDir := filepath.Join(entry, name)
		if isDir(pkgDir) && isFile(filepath.Join(pkgDir, InitFileName)) {
			return Location{Path: pkgDir, IsPackage: true}, true
		}
		modFile := filepath.Join(entry, name+SourceExt)
		if isFile(modFile) {
			return Location{Path: modFile, IsPackage: false}, true
		}
	}

	return Location{}, false
}

// IsLocalEntry reports whether a search path entry participates in
// resolution: its final path segment is the third-party library directory
// name, or it resolves to the working directory.
func (sp SearchPath) IsLocalEntry(entry string) bool {
	if filepath.Base(filepath.Clean(entry)) == SiteDirName {
		return true
	}
	return resolvePath(entry) == resolvePath(sp.WorkDir)
}

// resolvePath normalizes a path for identity comparison: absolute form with
// symlinks evaluated where possible.
func resolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
