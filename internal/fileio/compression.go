package fileio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies a stream compression wrapper.
type Compression uint8

const (
	// CompressionNone leaves the stream as is.
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
	CompressionLZ4
)

var compressionExts = map[string]Compression{
	".gz":   CompressionGzip,
	".gzip": CompressionGzip,
	".zst":  CompressionZstd,
	".zstd": CompressionZstd,
	".lz4":  CompressionLZ4,
}

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// DetectCompression picks the compression from the file extension.
func DetectCompression(path string) Compression {
	return compressionExts[strings.ToLower(filepath.Ext(path))]
}

// TrimCompressionExt removes a recognised compression extension from path.
func TrimCompressionExt(path string) string {
	ext := filepath.Ext(path)
	if _, ok := compressionExts[strings.ToLower(ext)]; ok {
		return strings.TrimSuffix(path, ext)
	}
	return path
}

type readCloser struct {
	io.Reader
	closers []func() error
}

func (r *readCloser) Close() error {
	var firstErr error
	for _, c := range r.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// decompress wraps src; the returned closer closes the decompressor and then src.
func decompress(c Compression, src io.ReadCloser) (io.ReadCloser, error) {
	switch c {
	case CompressionNone:
		return src, nil
	case CompressionGzip:
		zr, err := gzip.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return &readCloser{Reader: zr, closers: []func() error{zr.Close, src.Close}}, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(src)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		return &readCloser{Reader: dec, closers: []func() error{
			func() error { dec.Close(); return nil },
			src.Close,
		}}, nil
	case CompressionLZ4:
		return &readCloser{Reader: lz4.NewReader(src), closers: []func() error{src.Close}}, nil
	default:
		return nil, fmt.Errorf("unsupported compression %v", c)
	}
}

// compress wraps dst; the returned closer finishes the compressed stream
// but leaves dst open.
func compress(c Compression, dst io.Writer) (io.Writer, func() error, error) {
	switch c {
	case CompressionNone:
		return dst, func() error { return nil }, nil
	case CompressionGzip:
		zw := gzip.NewWriter(dst)
		return zw, zw.Close, nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, nil, fmt.Errorf("zstd: %w", err)
		}
		return enc, enc.Close, nil
	case CompressionLZ4:
		lw := lz4.NewWriter(dst)
		return lw, lw.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported compression %v", c)
	}
}
