// SPDX-License-Identifier: MPL-2.0

package embedder

import (
	"strings"
	"testing"
)

func TestWriteBootstrap(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	if err := writeBootstrap(&sb); err != nil {
		t.Fatalf("writeBootstrap() error = %v", err)
	}
	out := sb.String()

	if !strings.HasPrefix(out, "def "+BootstrapName+"(package, prefer_installed, filecontents):") {
		t.Errorf("bootstrap does not define %s: %q", BootstrapName, firstLine(out))
	}
	for _, fragment := range []string{
		"if package in sys.modules:",
		"'" + ScratchPrefix + "' + package",
		"shutil.rmtree(target_dir, ignore_errors=True)",
		"zlib.decompress(base64.b64decode(contents))",
		"sys.path.append(str(target_dir))",
		"sys.path.insert(0, str(target_dir))",
	} {
		if !strings.Contains(out, fragment) {
			t.Errorf("bootstrap missing %q", fragment)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("bootstrap does not end with a newline")
	}
}

func TestWritePackageBlock(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	entries := []FileEntry{
		{Path: "mylib/__init__.py", Blob: "QUJD"},
		{Path: "mylib/core.py", Blob: "REVG"},
	}
	if err := writePackageBlock(&sb, "mylib", true, entries); err != nil {
		t.Fatalf("writePackageBlock() error = %v", err)
	}
	out := sb.String()

	if !strings.HasPrefix(out, "copy_contents(package='mylib', prefer_installed=True, filecontents=(") {
		t.Errorf("block header = %q", firstLine(out))
	}
	if !strings.Contains(out, "    ('mylib/__init__.py', 'QUJD'),\n") {
		t.Errorf("block missing first entry:\n%s", out)
	}
	if !strings.HasSuffix(out, "))\n") {
		t.Errorf("block not closed: %q", out)
	}
}

func TestPyString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "'plain'"},
		{in: "", want: "''"},
		{in: `with'quote`, want: `'with\'quote'`},
		{in: `back\slash`, want: `'back\\slash'`},
		{in: "new\nline", want: `'new\nline'`},
	}
	for _, tt := range tests {
		if got := pyString(tt.in); got != tt.want {
			t.Errorf("pyString(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestPyBool(t *testing.T) {
	t.Parallel()

	if pyBool(true) != "True" || pyBool(false) != "False" {
		t.Errorf("pyBool() = %s/%s, want True/False", pyBool(true), pyBool(false))
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
