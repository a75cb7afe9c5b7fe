package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

type msgpackWriter struct {
	bw  *bufio.Writer
	enc *msgpack.Encoder
}

func newMsgpackWriter(w io.Writer) *msgpackWriter {
	bw := bufio.NewWriter(w)
	return &msgpackWriter{bw: bw, enc: msgpack.NewEncoder(bw)}
}

func (m *msgpackWriter) WriteLong(v int64) error {
	return m.enc.EncodeInt(v)
}

func (m *msgpackWriter) Flush() error { return m.bw.Flush() }

type msgpackReader struct {
	dec   *msgpack.Decoder
	items int
}

func newMsgpackReader(r io.Reader) *msgpackReader {
	return &msgpackReader{dec: msgpack.NewDecoder(bufio.NewReader(r))}
}

// ReadLong decodes the next item. A non-integer item is skipped whole and
// reported as a ValueError; a truncated stream is a plain read error.
func (m *msgpackReader) ReadLong() (int64, error) {
	c, err := m.dec.PeekCode()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		return 0, err
	}
	m.items++

	if !isIntCode(c) {
		if err := m.dec.Skip(); err != nil {
			return 0, fmt.Errorf("item %d: %w", m.items, truncated(err))
		}
		return 0, &ValueError{Index: m.items, Err: fmt.Errorf("%w: msgpack code %#x", errNotInteger, c)}
	}
	if c == msgpcode.Uint64 {
		u, err := m.dec.DecodeUint64()
		if err != nil {
			return 0, fmt.Errorf("item %d: %w", m.items, truncated(err))
		}
		if u > math.MaxInt64 {
			return 0, &ValueError{Index: m.items, Text: strconv.FormatUint(u, 10), Err: strconv.ErrRange}
		}
		return int64(u), nil
	}
	v, err := m.dec.DecodeInt64()
	if err != nil {
		return 0, fmt.Errorf("item %d: %w", m.items, truncated(err))
	}
	return v, nil
}

var errNotInteger = errors.New("not an integer")

func isIntCode(c byte) bool {
	if msgpcode.IsFixedNum(c) {
		return true
	}
	switch c {
	case msgpcode.Int8, msgpcode.Int16, msgpcode.Int32, msgpcode.Int64,
		msgpcode.Uint8, msgpcode.Uint16, msgpcode.Uint32, msgpcode.Uint64:
		return true
	}
	return false
}

// truncated maps io.EOF inside an item to io.ErrUnexpectedEOF.
func truncated(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
