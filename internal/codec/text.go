package codec

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"
)

type textWriter struct {
	w   *bufio.Writer
	buf []byte
}

func newTextWriter(w io.Writer) *textWriter {
	return &textWriter{w: bufio.NewWriter(w), buf: make([]byte, 0, 24)}
}

func (t *textWriter) WriteLong(v int64) error {
	t.buf = strconv.AppendInt(t.buf[:0], v, 10)
	t.buf = append(t.buf, '\n')
	_, err := t.w.Write(t.buf)
	return err
}

func (t *textWriter) Flush() error { return t.w.Flush() }

type textReader struct {
	r    *bufio.Reader
	line int
}

func newTextReader(r io.Reader) *textReader {
	return &textReader{r: bufio.NewReader(r)}
}

// ReadLong skips blank lines and parses the next value.
func (t *textReader) ReadLong() (int64, error) {
	for {
		line, err := t.r.ReadString('\n')
		if line == "" && err != nil {
			return 0, err
		}
		t.line++
		text := strings.TrimSpace(line)
		if text == "" {
			if err != nil {
				return 0, err
			}
			continue
		}
		v, perr := strconv.ParseInt(text, 10, 64)
		if perr != nil {
			var numErr *strconv.NumError
			if errors.As(perr, &numErr) {
				perr = numErr.Err
			}
			return 0, &ValueError{Index: t.line, Text: text, Err: perr}
		}
		return v, nil
	}
}
