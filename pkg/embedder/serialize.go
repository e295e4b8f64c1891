// SPDX-License-Identifier: MPL-2.0

package embedder

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"pyembed/pkg/pypath"
)

// CacheDirName is the bytecode cache directory convention; files under any
// path segment with this name are never embedded.
const CacheDirName = "__pycache__"

// FileEntry is one embedded file: a slash-separated path relative to the
// parent of the package root, and its encoded blob. Keeping the package
// directory name as the first path segment preserves package identity when
// the bootstrap extracts the files.
type FileEntry struct {
	// Path is POSIX-style (slash-separated), relative to the package root's
	// parent directory.
	Path string
	// Blob is the text-safe encoded file content (see EncodeBlob).
	Blob string
}

// Serialize enumerates and encodes the files of a resolved module location.
//
// A single-file module yields one entry named by the file's own base name. A
// package directory is walked recursively: bytecode cache directories are
// skipped, and with textOnly set only .py files are kept. Entries appear in
// directory enumeration order; callers must not rely on a sorted order.
//
// Any unreadable file aborts the whole serialization — a partially embedded
// package is not representable, so the caller must treat the package as
// unembeddable instead.
func Serialize(loc pypath.Location, textOnly bool) ([]FileEntry, error) {
	if !loc.IsPackage {
		entry, err := serializeFile(loc.Path, filepath.Base(loc.Path))
		if err != nil {
			return nil, err
		}
		return []FileEntry{entry}, nil
	}

	parent := filepath.Dir(loc.Path)
	var entries []FileEntry
	err := filepath.WalkDir(loc.Path, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if d.Name() == CacheDirName {
				return filepath.SkipDir
			}
			return nil
		}
		if textOnly && filepath.Ext(path) != pypath.SourceExt {
			return nil
		}

		rel, err := filepath.Rel(parent, path)
		if err != nil {
			return fmt.Errorf("failed to compute relative path for %s: %w", path, err)
		}
		relSlash := filepath.ToSlash(rel)
		if hasCacheSegment(relSlash) {
			return nil
		}

		entry, err := serializeFile(path, relSlash)
		if err != nil {
			return err
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to serialize package at %s: %w", loc.Path, err)
	}

	return entries, nil
}

// serializeFile reads one file and encodes it under the given relative path.
func serializeFile(path, relPath string) (FileEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileEntry{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	blob, err := EncodeBlob(data)
	if err != nil {
		return FileEntry{}, err
	}
	return FileEntry{Path: relPath, Blob: blob}, nil
}

// hasCacheSegment reports whether any segment of a slash-separated relative
// path is the bytecode cache directory.
func hasCacheSegment(relSlash string) bool {
	for _, seg := range strings.Split(relSlash, "/") {
		if seg == CacheDirName {
			return true
		}
	}
	return false
}
