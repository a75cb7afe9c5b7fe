// Package codec reads and writes streams of signed 64-bit values.
package codec

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Format names a value stream encoding.
type Format string

const (
	// FormatText is one decimal value per line.
	FormatText Format = "text"
	// FormatMsgpack is a concatenation of msgpack integers.
	FormatMsgpack Format = "msgpack"
)

// ErrUnknownFormat is returned for format names no codec implements.
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat converts a flag or config value into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("%w %q (expected text|msgpack)", ErrUnknownFormat, s)
	}
}

// Writer consumes values one at a time.
type Writer interface {
	WriteLong(v int64) error
	// Flush pushes buffered output to the underlying writer.
	Flush() error
}

// Reader produces values until it returns io.EOF.
type Reader interface {
	ReadLong() (int64, error)
}

// NewWriter returns a Writer encoding values in format f.
func NewWriter(f Format, w io.Writer) (Writer, error) {
	switch f {
	case FormatText, "":
		return newTextWriter(w), nil
	case FormatMsgpack:
		return newMsgpackWriter(w), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, string(f))
	}
}

// NewReader returns a Reader decoding values in format f.
func NewReader(f Format, r io.Reader) (Reader, error) {
	switch f {
	case FormatText, "":
		return newTextReader(r), nil
	case FormatMsgpack:
		return newMsgpackReader(r), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, string(f))
	}
}

// ValueError reports an undecodable value. Index is the 1-based line for
// text streams and the 1-based item for msgpack streams.
type ValueError struct {
	Index int
	Text  string
	Err   error
}

func (e *ValueError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("value %d %q: %v", e.Index, e.Text, e.Err)
	}
	return fmt.Sprintf("value %d: %v", e.Index, e.Err)
}

func (e *ValueError) Unwrap() error { return e.Err }
