// SPDX-License-Identifier: MPL-2.0

package embedder

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"pyembed/pkg/pypath"
)

// makePackage lays out a small package tree and returns its Location.
func makePackage(t *testing.T, files map[string][]byte) pypath.Location {
	t.Helper()
	root := filepath.Join(t.TempDir(), "mylib")
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, content, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return pypath.Location{Path: root, IsPackage: true}
}

// entryPaths collects the relative paths of a serialized file table.
func entryPaths(entries []FileEntry) map[string]bool {
	paths := make(map[string]bool, len(entries))
	for _, e := range entries {
		paths[e.Path] = true
	}
	return paths
}

func TestSerializeSingleFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("VALUE = 1\n")
	path := filepath.Join(dir, "single.py")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := Serialize(pypath.Location{Path: path, IsPackage: false}, true)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Serialize() returned %d entries, want 1", len(entries))
	}
	if entries[0].Path != "single.py" {
		t.Errorf("entry path = %q, want %q", entries[0].Path, "single.py")
	}
	got, err := DecodeBlob(entries[0].Blob)
	if err != nil {
		t.Fatalf("DecodeBlob() error = %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("decoded blob = %q, want %q", got, content)
	}
}

func TestSerializePackageDir(t *testing.T) {
	loc := makePackage(t, map[string][]byte{
		"__init__.py":             []byte("from .core import main\n"),
		"core.py":                 []byte("def main(): pass\n"),
		"sub/__init__.py":         []byte(""),
		"sub/util.py":             []byte("X = 3\n"),
		"data.txt":                []byte("not python"),
		"__pycache__/core.pyc":    {0xca, 0xfe},
		"sub/__pycache__/u.pyc":   {0xba, 0xbe},
		"sub/fonts/default.woff2": {0x77, 0x4f, 0x46, 0x32},
	})

	t.Run("text files only", func(t *testing.T) {
		entries, err := Serialize(loc, true)
		if err != nil {
			t.Fatalf("Serialize() error = %v", err)
		}
		paths := entryPaths(entries)
		want := []string{"mylib/__init__.py", "mylib/core.py", "mylib/sub/__init__.py", "mylib/sub/util.py"}
		if len(paths) != len(want) {
			t.Fatalf("Serialize() paths = %v, want %v", paths, want)
		}
		for _, p := range want {
			if !paths[p] {
				t.Errorf("Serialize() missing entry %q", p)
			}
		}
	})

	t.Run("all files", func(t *testing.T) {
		entries, err := Serialize(loc, false)
		if err != nil {
			t.Fatalf("Serialize() error = %v", err)
		}
		paths := entryPaths(entries)
		if !paths["mylib/data.txt"] || !paths["mylib/sub/fonts/default.woff2"] {
			t.Errorf("Serialize() with all files missing data entries: %v", paths)
		}
		for p := range paths {
			if hasCacheSegment(p) {
				t.Errorf("Serialize() embedded bytecode cache entry %q", p)
			}
		}
	})
}

func TestSerializePathsAreSlashSeparatedAndRootedAtPackage(t *testing.T) {
	loc := makePackage(t, map[string][]byte{"sub/mod.py": []byte("pass\n"), "__init__.py": []byte("")})

	entries, err := Serialize(loc, true)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	for _, e := range entries {
		if filepath.IsAbs(e.Path) {
			t.Errorf("entry path %q is absolute", e.Path)
		}
		if e.Path[:6] != "mylib/" {
			t.Errorf("entry path %q does not start with the package directory name", e.Path)
		}
	}
}

func TestSerializeUnreadableFileAbortsPackage(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}
	loc := makePackage(t, map[string][]byte{
		"__init__.py": []byte(""),
		"secret.py":   []byte("hidden"),
	})
	if err := os.Chmod(filepath.Join(loc.Path, "secret.py"), 0o000); err != nil {
		t.Fatal(err)
	}

	if _, err := Serialize(loc, true); err == nil {
		t.Error("Serialize() with an unreadable file succeeded, want error")
	}
}
