// SPDX-License-Identifier: MPL-2.0

package embedder

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"fmt"
	"io"
)

// Blob wire format: zlib-compressed bytes, base64 (standard alphabet)
// encoded. The generated bootstrap reverses it at the consumer's runtime with
// zlib.decompress(base64.b64decode(blob)), so both sides must stay in sync.

// EncodeBlob compresses raw file bytes and encodes them into a text-safe
// string suitable for embedding as a literal in generated Python source.
func EncodeBlob(data []byte) (string, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return "", fmt.Errorf("failed to compress blob: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to compress blob: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeBlob reverses EncodeBlob, reproducing the original bytes exactly.
func DecodeBlob(blob string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("failed to decode blob: %w", err)
	}
	zr, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress blob: %w", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress blob: %w", err)
	}
	return data, nil
}
