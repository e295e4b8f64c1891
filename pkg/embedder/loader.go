// SPDX-License-Identifier: MPL-2.0

package embedder

import (
	"fmt"
	"os"
	"path/filepath"

	"pyembed/pkg/pypath"
)

// ExtractContext carries the process-wide state the runtime loader touches,
// made explicit so the extraction protocol can be exercised against fakes.
// The generated bootstrap.py implements the same protocol against the real
// interpreter state (sys.modules, sys.path, tempfile.gettempdir()); Extract
// is the reference model the emitted Python must agree with.
type ExtractContext struct {
	// TempRoot is the temporary-directory root under which per-package
	// scratch directories are created.
	TempRoot string

	// Path is the module search path, highest priority first. Extract
	// mutates it when a scratch directory is spliced in.
	Path []string

	// Loaded reports whether a module of the given name is already loaded in
	// the running process. Nil means "nothing is loaded".
	Loaded func(name string) bool

	// Locate probes for an installed copy of a package on the current search
	// path, consulted only when extraction prefers installed copies. Nil
	// means "no installed copy ever found".
	Locate func(name string) (pypath.Location, bool)
}

// ScratchDir returns the deterministic scratch extraction directory for a
// package name. At most one such directory exists per package per machine.
func (c *ExtractContext) ScratchDir(pkg string) string {
	return filepath.Join(c.TempRoot, ScratchPrefix+pkg)
}

// Extract materializes a package's embedded files following the bootstrap
// protocol:
//
//  1. Already-loaded package: no-op.
//  2. preferInstalled with an installed copy present: no-op, installed copy
//     keeps priority.
//  3. Remove the stale scratch directory if present (removal errors are
//     suppressed; extraction then overwrites what it can) and write every
//     decoded entry under a fresh scratch directory.
//  4. Splice the scratch directory into the search path: appended (lowest
//     priority) when preferInstalled, prepended (highest priority) otherwise.
//
// The returned bool reports whether files were written.
func (c *ExtractContext) Extract(pkg string, preferInstalled bool, entries []FileEntry) (bool, error) {
	if c.Loaded != nil && c.Loaded(pkg) {
		return false, nil
	}
	if preferInstalled && c.Locate != nil {
		if _, found := c.Locate(pkg); found {
			return false, nil
		}
	}

	target := c.ScratchDir(pkg)
	os.RemoveAll(target) // stale state must not block extraction

	for _, entry := range entries {
		data, err := DecodeBlob(entry.Blob)
		if err != nil {
			return false, fmt.Errorf("failed to extract %s: %w", entry.Path, err)
		}
		dest := filepath.Join(target, filepath.FromSlash(entry.Path))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return false, fmt.Errorf("failed to extract %s: %w", entry.Path, err)
		}
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return false, fmt.Errorf("failed to extract %s: %w", entry.Path, err)
		}
	}

	if preferInstalled {
		c.Path = append(c.Path, target)
	} else {
		c.Path = append([]string{target}, c.Path...)
	}
	return true, nil
}
