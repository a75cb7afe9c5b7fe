// Package fileio acquires the input and output streams of a conversion.
//
// Paths ending in .gz, .zst or .lz4 are transparently (de)compressed. The
// path "-" selects standard input or standard output. Outputs are written to
// a temporary file next to the destination and only renamed into place by
// Commit, so a failed run never leaves a partial file behind.
package fileio

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// StdioPath selects standard input or output.
const StdioPath = "-"

// OpenInput opens path for reading, undoing any compression implied by its
// extension. The caller must Close the result.
func OpenInput(path string) (io.ReadCloser, error) {
	if path == "" || path == StdioPath {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input %q: %w", path, err)
	}
	rc, err := decompress(DetectCompression(path), f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("open input %q: %w", path, err)
	}
	return rc, nil
}

// TextReader strips a UTF-8 byte order mark and transcodes UTF-16 text that
// starts with a BOM into UTF-8. Input without a BOM passes through unchanged.
func TextReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(transform.Nop))
}
