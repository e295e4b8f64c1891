// SPDX-License-Identifier: MPL-2.0

package embedder

import (
	"bytes"
	"strings"
	"testing"
)

func TestBlobRoundTrip(t *testing.T) {
	t.Parallel()

	binary := make([]byte, 4096)
	for i := range binary {
		binary[i] = byte(i * 31)
	}

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: []byte{}},
		{name: "small text", data: []byte("import alpha\nprint('hi')\n")},
		{name: "binary", data: binary},
		{name: "large repetitive text", data: []byte(strings.Repeat("def f():\n    return 42\n", 5000))},
		{name: "all byte values", data: func() []byte {
			b := make([]byte, 256)
			for i := range b {
				b[i] = byte(i)
			}
			return b
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			blob, err := EncodeBlob(tt.data)
			if err != nil {
				t.Fatalf("EncodeBlob() error = %v", err)
			}
			got, err := DecodeBlob(blob)
			if err != nil {
				t.Fatalf("DecodeBlob() error = %v", err)
			}
			if !bytes.Equal(got, tt.data) {
				t.Errorf("round trip mismatch: got %d bytes, want %d bytes", len(got), len(tt.data))
			}
		})
	}
}

func TestEncodeBlobIsTextSafe(t *testing.T) {
	t.Parallel()

	data := []byte{0, 1, 2, '\n', '\'', '\\', 0xff}
	blob, err := EncodeBlob(data)
	if err != nil {
		t.Fatalf("EncodeBlob() error = %v", err)
	}
	for _, r := range blob {
		if r < 0x20 || r > 0x7e {
			t.Fatalf("EncodeBlob() produced non-printable byte %q", r)
		}
		if r == '\'' || r == '"' || r == '\\' {
			t.Fatalf("EncodeBlob() produced quoting-hostile byte %q", r)
		}
	}
}

func TestDecodeBlobRejectsGarbage(t *testing.T) {
	t.Parallel()

	if _, err := DecodeBlob("not!base64!!"); err == nil {
		t.Error("DecodeBlob() accepted invalid base64")
	}
	// Valid base64, but not zlib data.
	if _, err := DecodeBlob("aGVsbG8="); err == nil {
		t.Error("DecodeBlob() accepted non-zlib payload")
	}
}
