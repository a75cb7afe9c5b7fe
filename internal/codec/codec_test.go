package codec

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vmihailenco/msgpack/v5"
)

var sampleValues = []int64{0, 1, -1, math.MaxInt64, math.MinInt64, -72057594037927936, 256}

func readAll(t *testing.T, r Reader) []int64 {
	t.Helper()
	var out []int64
	for {
		v, err := r.ReadLong()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadLong: %v", err)
		}
		out = append(out, v)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatText, FormatMsgpack} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(f, &buf)
			if err != nil {
				t.Fatal(err)
			}
			for _, v := range sampleValues {
				if err := w.WriteLong(v); err != nil {
					t.Fatal(err)
				}
			}
			if err := w.Flush(); err != nil {
				t.Fatal(err)
			}

			r, err := NewReader(f, &buf)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(sampleValues, readAll(t, r)); diff != "" {
				t.Errorf("round trip diff -want +got\n%s", diff)
			}
		})
	}
}

func TestTextWriterOutput(t *testing.T) {
	var buf bytes.Buffer
	w := newTextWriter(&buf)
	for _, v := range []int64{0, math.MaxInt64, math.MinInt64} {
		if err := w.WriteLong(v); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "0\n9223372036854775807\n-9223372036854775808\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestTextReaderSkipsBlankLinesAndReadsLastLine(t *testing.T) {
	r := newTextReader(strings.NewReader("1\n\n  \n-2\r\n3"))
	if diff := cmp.Diff([]int64{1, -2, 3}, readAll(t, r)); diff != "" {
		t.Errorf("diff -want +got\n%s", diff)
	}
}

func TestTextReaderBadValue(t *testing.T) {
	r := newTextReader(strings.NewReader("1\n\nnope\n"))
	if _, err := r.ReadLong(); err != nil {
		t.Fatal(err)
	}
	_, err := r.ReadLong()
	var valErr *ValueError
	if !errors.As(err, &valErr) {
		t.Fatalf("error = %v, want *ValueError", err)
	}
	if valErr.Index != 3 || valErr.Text != "nope" {
		t.Errorf("ValueError = %+v, want line 3 text nope", valErr)
	}
	if !errors.Is(err, strconv.ErrSyntax) {
		t.Errorf("error %v does not wrap strconv.ErrSyntax", err)
	}
}

func TestMsgpackReaderTruncated(t *testing.T) {
	var buf bytes.Buffer
	w := newMsgpackWriter(&buf)
	if err := w.WriteLong(math.MaxInt64); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()[:buf.Len()-2]

	r := newMsgpackReader(bytes.NewReader(data))
	_, err := r.ReadLong()
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("ReadLong on truncated data = %v, want io.ErrUnexpectedEOF", err)
	}
	var valErr *ValueError
	if errors.As(err, &valErr) {
		t.Errorf("truncation reported as a value error: %v", err)
	}
}

func TestMsgpackReaderSkipsNonIntegerItems(t *testing.T) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	for _, item := range []any{int64(1), "abc", []int{7, 8}, uint64(math.MaxUint64), int64(-2)} {
		if err := enc.Encode(item); err != nil {
			t.Fatal(err)
		}
	}

	r := newMsgpackReader(&buf)
	var got []int64
	var badItems []int
	for {
		v, err := r.ReadLong()
		if err == io.EOF {
			break
		}
		var valErr *ValueError
		if errors.As(err, &valErr) {
			badItems = append(badItems, valErr.Index)
			continue
		}
		if err != nil {
			t.Fatalf("ReadLong: %v", err)
		}
		got = append(got, v)
	}
	if diff := cmp.Diff([]int64{1, -2}, got); diff != "" {
		t.Errorf("values diff -want +got\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 3, 4}, badItems); diff != "" {
		t.Errorf("bad item indexes diff -want +got\n%s", diff)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"TEXT", FormatText, false},
		{"msgpack", FormatMsgpack, false},
		{"mp", FormatMsgpack, false},
		{"csv", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
