// Package fileio reads and writes whole files, transparently handling zstd-compressed paths.
package fileio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ZstdExt marks paths whose contents are zstd-compressed.
const ZstdExt = ".zst"

func isZstd(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ZstdExt)
}

// ReadFile returns the contents of path, decompressed if the path ends in .zst.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if !isZstd(path) {
		return data, nil
	}

	plain, err := DecodeZstd(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", path, err)
	}
	return plain, nil
}

// WriteFile creates or truncates path and writes data, compressing it if the path ends in .zst.
func WriteFile(path string, data []byte) error {
	if isZstd(path) {
		var buf bytes.Buffer
		if err := EncodeZstd(&buf, data); err != nil {
			return fmt.Errorf("compress %s: %w", path, err)
		}
		data = buf.Bytes()
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// EncodeZstd compresses raw into w.
func EncodeZstd(w io.Writer, raw []byte) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderConcurrency(runtime.NumCPU()))
	if err != nil {
		return err
	}
	if _, err := enc.Write(raw); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// DecodeZstd decompresses everything readable from r.
func DecodeZstd(r io.Reader) ([]byte, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return io.ReadAll(dec)
}
