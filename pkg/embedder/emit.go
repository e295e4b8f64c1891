// SPDX-License-Identifier: MPL-2.0

package embedder

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
)

const (
	// BootstrapName is the name of the generated runtime loader routine. It
	// is defined once per output file and deleted from the script's namespace
	// right after the package blocks, so the embedded program never sees it.
	BootstrapName = "copy_contents"

	// ScratchPrefix prefixes the per-package scratch extraction directory
	// name under the temp directory. Must match the prefix hardcoded in
	// bootstrap.py.
	ScratchPrefix = "embedded_"
)

// bootstrapSource is the Python runtime loader emitted verbatim into every
// generated script. It has no imports or names outside its own body, so it is
// safe to splice into arbitrary scripts.
//
//go:embed bootstrap.py
var bootstrapSource string

// writeBootstrap emits the runtime loader routine, exactly once per output.
func writeBootstrap(w io.Writer) error {
	src := bootstrapSource
	if !strings.HasSuffix(src, "\n") {
		src += "\n"
	}
	_, err := io.WriteString(w, src)
	return err
}

// writePackageBlock emits one call to the bootstrap routine carrying a
// package's serialized file table as a Python tuple literal.
func writePackageBlock(w io.Writer, pkg string, preferInstalled bool, entries []FileEntry) error {
	if _, err := fmt.Fprintf(w, "%s(package=%s, prefer_installed=%s, filecontents=(\n",
		BootstrapName, pyString(pkg), pyBool(preferInstalled)); err != nil {
		return err
	}
	for _, entry := range entries {
		if _, err := fmt.Fprintf(w, "    (%s, %s),\n", pyString(entry.Path), pyString(entry.Blob)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "))\n")
	return err
}

// pyBool renders a Go bool as a Python boolean literal.
func pyBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// pyString renders a single-quoted Python string literal. Paths and blobs are
// ASCII-safe by construction; backslashes and quotes are escaped anyway so
// the literal can never break out of its quoting.
func pyString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
