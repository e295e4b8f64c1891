// SPDX-License-Identifier: MPL-2.0

package embedder

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"pyembed/pkg/pypath"
)

// diskResolver resolves names against locations created on disk by the test.
type diskResolver map[string]pypath.Location

func (d diskResolver) Locate(name string) (pypath.Location, bool) {
	loc, ok := d[name]
	return loc, ok
}

// newScript writes an input script and returns its path.
func newScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tool.py")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// newModuleFile creates a single-file module and returns its Location.
func newModuleFile(t *testing.T, name, content string) pypath.Location {
	t.Helper()
	path := filepath.Join(t.TempDir(), name+".py")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return pypath.Location{Path: path, IsPackage: false}
}

func TestBroadcastBools(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		count    int
		values   []bool
		fallback bool
		want     []bool
		wantErr  bool
	}{
		{name: "no values uses fallback", count: 3, fallback: true, want: []bool{true, true, true}},
		{name: "scalar broadcasts", count: 2, values: []bool{true}, want: []bool{true, true}},
		{name: "positional match", count: 2, values: []bool{true, false}, want: []bool{true, false}},
		{name: "length mismatch", count: 2, values: []bool{true, false, true}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := BroadcastBools("prefer-installed", tt.count, tt.values, tt.fallback)
			if tt.wantErr {
				if !errors.Is(err, ErrFlagLength) {
					t.Fatalf("BroadcastBools() error = %v, want ErrFlagLength", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("BroadcastBools() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BroadcastBools() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		suffix string
		want   string
	}{
		{in: "tool.py", want: "tool.embedded.py"},
		{in: "/a/b/tool.py", want: "/a/b/tool.embedded.py"},
		{in: "noext", want: "noext.embedded"},
		{in: "tool.py", suffix: "bundled", want: "tool.bundled.py"},
	}
	for _, tt := range tests {
		if got := DefaultOutputPath(tt.in, tt.suffix); got != tt.want {
			t.Errorf("DefaultOutputPath(%q, %q) = %q, want %q", tt.in, tt.suffix, got, tt.want)
		}
	}
}

func TestEmbedBasicLayout(t *testing.T) {
	input := newScript(t, "#!/usr/bin/env python3\nimport mylib\n\nmylib.main()\n")
	resolver := diskResolver{"mylib": newModuleFile(t, "mylib", "def main(): pass\n")}
	output := filepath.Join(t.TempDir(), "out.py")

	result, err := Embed(Options{
		InputPath:  input,
		OutputPath: output,
		Requests:   []Request{{Package: "mylib", TextFilesOnly: true}},
		Resolver:   resolver,
	})
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if !reflect.DeepEqual(result.Packages, []string{"mylib"}) {
		t.Errorf("Embed() packages = %v, want [mylib]", result.Packages)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(string(data), "\n")

	if lines[0] != "#!/usr/bin/env python3" {
		t.Errorf("line 1 = %q, want the interpreter directive", lines[0])
	}
	if !strings.HasPrefix(lines[1], "#  file generated by pyembed") {
		t.Errorf("line 2 = %q, want the generated-by header", lines[1])
	}
	text := string(data)
	checkOrder(t, text,
		"def copy_contents(",
		"copy_contents(package='mylib', prefer_installed=False, filecontents=(",
		"del copy_contents",
		"import mylib",
		"mylib.main()",
	)
	if !strings.Contains(text, "packages embedded: mylib") {
		t.Error("header does not list the embedded package")
	}
}

func TestEmbedHoistsFutureDeclarations(t *testing.T) {
	input := newScript(t, strings.Join([]string{
		"#!/usr/bin/env python3",
		"import mylib",
		"x = 1",
		"from __future__ import annotations",
		"print(x)",
		"",
	}, "\n"))
	resolver := diskResolver{"mylib": newModuleFile(t, "mylib", "pass\n")}
	output := filepath.Join(t.TempDir(), "out.py")

	if _, err := Embed(Options{
		InputPath:  input,
		OutputPath: output,
		Requests:   []Request{{Package: "mylib", TextFilesOnly: true}},
		Resolver:   resolver,
	}); err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)

	if strings.Count(text, "from __future__ import annotations") != 1 {
		t.Fatal("future declaration not hoisted exactly once")
	}
	checkOrder(t, text,
		"del copy_contents",
		"from __future__ import annotations",
		"x = 1",
		"print(x)",
	)
	if lines := strings.Split(text, "\n"); lines[0] != "#!/usr/bin/env python3" {
		t.Errorf("line 1 = %q, want the interpreter directive", lines[0])
	}
}

func TestEmbedUnresolvablePackagesCollapseToIdentity(t *testing.T) {
	body := "import ghost\nprint('still works')\n"
	input := newScript(t, body)
	output := filepath.Join(t.TempDir(), "out.py")

	result, err := Embed(Options{
		InputPath:  input,
		OutputPath: output,
		Requests:   []Request{{Package: "ghost", TextFilesOnly: true}},
		Resolver:   diskResolver{},
	})
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if len(result.Packages) != 0 {
		t.Errorf("Embed() packages = %v, want none", result.Packages)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, "import ghost\nprint('still works')\n") {
		t.Errorf("original body not preserved verbatim:\n%s", text)
	}
	// Scaffolding is emitted but defines and immediately deletes the
	// bootstrap without calling it.
	if !strings.Contains(text, "def copy_contents(") || !strings.Contains(text, "del copy_contents") {
		t.Error("bootstrap scaffolding missing")
	}
	if strings.Contains(text, "copy_contents(package=") {
		t.Error("package block emitted for an unresolvable package")
	}
}

func TestEmbedRejectsDuplicateRequests(t *testing.T) {
	input := newScript(t, "import mylib\n")
	output := filepath.Join(t.TempDir(), "out.py")

	_, err := Embed(Options{
		InputPath:  input,
		OutputPath: output,
		Requests:   []Request{{Package: "mylib"}, {Package: "mylib"}},
		Resolver:   diskResolver{},
	})
	if !errors.Is(err, ErrDuplicatePackage) {
		t.Fatalf("Embed() error = %v, want ErrDuplicatePackage", err)
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Error("output file created despite validation failure")
	}
}

func TestEmbedValidationHappensBeforeOutputExists(t *testing.T) {
	input := newScript(t, "import mylib\n")
	output := filepath.Join(t.TempDir(), "out.py")

	_, err := Embed(Options{
		InputPath:  input,
		OutputPath: output,
		Requests:   []Request{{Package: ""}},
		Resolver:   diskResolver{},
	})
	if err == nil {
		t.Fatal("Embed() accepted an empty package name")
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Error("output file created despite validation failure")
	}
}

func TestEmbedDerivesDefaultOutputPath(t *testing.T) {
	input := newScript(t, "print('hi')\n")

	result, err := Embed(Options{
		InputPath: input,
		Resolver:  diskResolver{},
	})
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	want := strings.TrimSuffix(input, ".py") + ".embedded.py"
	if result.OutputPath != want {
		t.Errorf("Embed() output path = %q, want %q", result.OutputPath, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("derived output file missing: %v", err)
	}
}

func TestEmbedPerPackagePreferInstalled(t *testing.T) {
	input := newScript(t, "import alpha\nimport beta\n")
	resolver := diskResolver{
		"alpha": newModuleFile(t, "alpha", "A = 1\n"),
		"beta":  newModuleFile(t, "beta", "B = 2\n"),
	}
	output := filepath.Join(t.TempDir(), "out.py")

	_, err := Embed(Options{
		InputPath:  input,
		OutputPath: output,
		Requests: []Request{
			{Package: "alpha", PreferInstalled: true, TextFilesOnly: true},
			{Package: "beta", PreferInstalled: false, TextFilesOnly: true},
		},
		Resolver: resolver,
	})
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, "copy_contents(package='alpha', prefer_installed=True,") {
		t.Error("alpha block does not prefer the installed copy")
	}
	if !strings.Contains(text, "copy_contents(package='beta', prefer_installed=False,") {
		t.Error("beta block does not force the embedded copy")
	}
}

func TestEmbedRoundTripsPackageContentThroughOutput(t *testing.T) {
	content := "def main():\n    return 'payload'\n"
	input := newScript(t, "import mylib\n")
	resolver := diskResolver{"mylib": newModuleFile(t, "mylib", content)}
	output := filepath.Join(t.TempDir(), "out.py")

	if _, err := Embed(Options{
		InputPath:  input,
		OutputPath: output,
		Requests:   []Request{{Package: "mylib", TextFilesOnly: true}},
		Resolver:   resolver,
	}); err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	// Pull the blob back out of the generated literal and decode it.
	_, rest, ok := strings.Cut(string(data), "('mylib.py', '")
	if !ok {
		t.Fatalf("file entry literal not found in output:\n%s", data)
	}
	blob, _, ok := strings.Cut(rest, "'")
	if !ok {
		t.Fatal("blob literal not terminated")
	}
	decoded, err := DecodeBlob(blob)
	if err != nil {
		t.Fatalf("DecodeBlob() error = %v", err)
	}
	if string(decoded) != content {
		t.Errorf("embedded content = %q, want %q", decoded, content)
	}
}

// checkOrder asserts the fragments appear in text in the given order.
func checkOrder(t *testing.T, text string, fragments ...string) {
	t.Helper()
	pos := 0
	for _, fragment := range fragments {
		idx := strings.Index(text[pos:], fragment)
		if idx < 0 {
			t.Fatalf("fragment %q missing or out of order", fragment)
		}
		pos += idx + len(fragment)
	}
}
