// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pyembed/internal/config"
	"pyembed/pkg/embedder"
)

func TestBuildRequests(t *testing.T) {
	t.Run("defaults broadcast to all packages", func(t *testing.T) {
		reqs, err := buildRequests([]string{"alpha", "beta"}, nil, nil)
		if err != nil {
			t.Fatalf("buildRequests() returned error: %v", err)
		}
		if len(reqs) != 2 {
			t.Fatalf("got %d requests, want 2", len(reqs))
		}
		for _, req := range reqs {
			if req.PreferInstalled {
				t.Errorf("%s: PreferInstalled = true, want false by default", req.Package)
			}
			if !req.TextFilesOnly {
				t.Errorf("%s: TextFilesOnly = false, want true by default", req.Package)
			}
		}
	})

	t.Run("single value applies to all", func(t *testing.T) {
		reqs, err := buildRequests([]string{"alpha", "beta"}, []bool{true}, []bool{true})
		if err != nil {
			t.Fatalf("buildRequests() returned error: %v", err)
		}
		for _, req := range reqs {
			if !req.PreferInstalled {
				t.Errorf("%s: PreferInstalled = false, want broadcast true", req.Package)
			}
			if req.TextFilesOnly {
				t.Errorf("%s: TextFilesOnly = true, want all files", req.Package)
			}
		}
	})

	t.Run("positional values", func(t *testing.T) {
		reqs, err := buildRequests([]string{"alpha", "beta"}, []bool{true, false}, nil)
		if err != nil {
			t.Fatalf("buildRequests() returned error: %v", err)
		}
		if !reqs[0].PreferInstalled || reqs[1].PreferInstalled {
			t.Errorf("positional prefer-installed not applied: %+v", reqs)
		}
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := buildRequests([]string{"a", "b", "c"}, []bool{true, false}, nil)
		if !errors.Is(err, embedder.ErrFlagLength) {
			t.Errorf("buildRequests() error = %v, want ErrFlagLength", err)
		}
	})
}

func TestBuildSearchPath(t *testing.T) {
	t.Setenv("PYTHONPATH", "/env/site-packages")

	cfg := config.DefaultConfig()
	cfg.SiteDirs = []config.SiteDirPath{"/extra/site-packages"}

	sp := buildSearchPath(cfg)

	hasEnv, hasExtra := false, false
	for _, entry := range sp.Entries {
		switch entry {
		case "/env/site-packages":
			hasEnv = true
		case "/extra/site-packages":
			hasExtra = true
		}
	}
	if !hasEnv {
		t.Error("search path missing PYTHONPATH entry")
	}
	if !hasExtra {
		t.Error("search path missing configured site dir")
	}
}

func TestExtraExcludes(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ExcludePackages = []config.PackageName{"torch", "tensorflow"}

	got := extraExcludes(cfg)
	if len(got) != 2 || got[0] != "torch" || got[1] != "tensorflow" {
		t.Errorf("extraExcludes() = %v", got)
	}
}

func TestGlamourStyle(t *testing.T) {
	tests := []struct {
		scheme config.ColorScheme
		want   string
	}{
		{config.ColorSchemeDark, "dark"},
		{config.ColorSchemeLight, "light"},
		{config.ColorSchemeAuto, "auto"},
		{config.ColorScheme(""), "auto"},
	}

	for _, tt := range tests {
		if got := glamourStyle(tt.scheme); got != tt.want {
			t.Errorf("glamourStyle(%q) = %q, want %q", tt.scheme, got, tt.want)
		}
	}
}

func TestFileExistsCheck(t *testing.T) {
	tmpDir := t.TempDir()

	file := filepath.Join(tmpDir, "script.py")
	if err := os.WriteFile(file, []byte("print('hi')\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !fileExistsCheck(file) {
		t.Error("fileExistsCheck() = false for a regular file")
	}
	if fileExistsCheck(tmpDir) {
		t.Error("fileExistsCheck() = true for a directory")
	}
	if fileExistsCheck(filepath.Join(tmpDir, "missing.py")) {
		t.Error("fileExistsCheck() = true for a missing file")
	}
}
