package convert

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vmihailenco/msgpack/v5"

	"longconv/internal/codec"
	"longconv/internal/diag"
	"longconv/internal/record"
)

func convertString(t *testing.T, in string, opts Options) (string, Stats, error) {
	t.Helper()
	var out bytes.Buffer
	w, err := codec.NewWriter(codec.FormatText, &out)
	if err != nil {
		t.Fatal(err)
	}
	stats, err := Run(context.Background(), strings.NewReader(in), w, opts)
	return out.String(), stats, err
}

func TestRunBoundaryRecords(t *testing.T) {
	in := "0 0 0 0 0 0 0 0\n" +
		"255 255 255 255 255 255 255 127\n" +
		"0 0 0 0 0 0 0 128\n" +
		"1 0 0 0 0 0 0 0\n" +
		"0 0 0 0 0 0 0 255\n"
	want := "0\n" +
		"9223372036854775807\n" +
		"-9223372036854775808\n" +
		"1\n" +
		"-72057594037927936\n"

	for _, mode := range []record.Mode{record.ModeLenient, record.ModeStrict} {
		t.Run(mode.String(), func(t *testing.T) {
			got, stats, err := convertString(t, in, Options{Mode: mode, File: "random-bytes"})
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("output diff -want +got\n%s", diff)
			}
			if diff := cmp.Diff(Stats{Lines: 5, Records: 5}, stats); diff != "" {
				t.Errorf("stats diff -want +got\n%s", diff)
			}
		})
	}
}

func TestRunLastLineWithoutNewlineAndBlankLines(t *testing.T) {
	in := "1 0 0 0 0 0 0 0\n\n   \n2 0 0 0 0 0 0 0"
	got, stats, err := convertString(t, in, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got != "1\n2\n" {
		t.Errorf("output = %q", got)
	}
	if diff := cmp.Diff(Stats{Lines: 4, Records: 2, Blank: 2}, stats); diff != "" {
		t.Errorf("stats diff -want +got\n%s", diff)
	}
}

func TestRunEmptyInput(t *testing.T) {
	got, stats, err := convertString(t, "", Options{})
	if err != nil || got != "" || stats != (Stats{}) {
		t.Errorf("Run(\"\") = %q, %+v, %v", got, stats, err)
	}
}

func TestRunPreservesLineCount(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var in strings.Builder
	const n = 500
	for i := 0; i < n; i++ {
		var r record.Record
		rng.Read(r[:])
		in.WriteString(record.FormatRecord(r))
		in.WriteByte('\n')
	}

	got, stats, err := convertString(t, in.String(), Options{Mode: record.ModeStrict})
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(got, "\n"); lines != n {
		t.Errorf("output has %d lines, want %d", lines, n)
	}
	if stats.Records != n {
		t.Errorf("Records = %d, want %d", stats.Records, n)
	}

	// and back again
	var back bytes.Buffer
	reader, _ := codec.NewReader(codec.FormatText, strings.NewReader(got))
	if _, err := Reverse(context.Background(), reader, &back, Options{}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in.String(), back.String()); diff != "" {
		t.Errorf("round trip diff -want +got\n%s", diff)
	}
}

func TestRunMalformedFailFast(t *testing.T) {
	in := "1 0 0 0 0 0 0 0\n1 2 3 4 5\n2 0 0 0 0 0 0 0\n"

	var first string
	for i := 0; i < 3; i++ {
		bag := diag.NewBag(10)
		_, stats, err := convertString(t, in, Options{File: "random-bytes", Reporter: diag.BagReporter{Bag: bag}})

		var lineErr *LineError
		if !errors.As(err, &lineErr) {
			t.Fatalf("error = %v, want *LineError", err)
		}
		if lineErr.Line != 2 || lineErr.File != "random-bytes" {
			t.Errorf("LineError = %+v", lineErr)
		}
		if !errors.Is(err, record.ErrTooFewTokens) {
			t.Errorf("error %v does not wrap ErrTooFewTokens", err)
		}
		if stats.Records != 1 {
			t.Errorf("Records = %d, want 1", stats.Records)
		}
		if bag.Len() != 1 || bag.Items()[0].Code != diag.RecTooFewTokens || bag.Items()[0].Severity != diag.SevError {
			t.Errorf("unexpected diagnostics: %+v", bag.Items())
		}

		if i == 0 {
			first = err.Error()
		} else if err.Error() != first {
			t.Errorf("run %d error %q differs from %q", i, err, first)
		}
	}
	if first != "random-bytes:2: too few tokens: got 5, want 8" {
		t.Errorf("error text = %q", first)
	}
}

func TestRunMalformedSkip(t *testing.T) {
	in := "1 0 0 0 0 0 0 0\n1 2 3\n5 x 0 0 0 0 0 0\n2 0 0 0 0 0 0 0\n"
	bag := diag.NewBag(10)
	got, stats, err := convertString(t, in, Options{
		OnError:  PolicySkip,
		File:     "in",
		Reporter: diag.BagReporter{Bag: bag},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "1\n2\n" {
		t.Errorf("output = %q", got)
	}
	if diff := cmp.Diff(Stats{Lines: 4, Records: 2, Skipped: 2}, stats); diff != "" {
		t.Errorf("stats diff -want +got\n%s", diff)
	}

	var positions []diag.Position
	for _, d := range bag.Items() {
		if d.Severity != diag.SevWarning {
			t.Errorf("severity = %v, want warning", d.Severity)
		}
		positions = append(positions, d.Pos)
	}
	want := []diag.Position{{File: "in", Line: 2}, {File: "in", Line: 3, Column: 2}}
	if diff := cmp.Diff(want, positions); diff != "" {
		t.Errorf("positions diff -want +got\n%s", diff)
	}
}

func TestRunStrictRejectsOutOfRange(t *testing.T) {
	in := "0 0 0 0 0 0 0 256\n"
	if _, _, err := convertString(t, in, Options{Mode: record.ModeLenient}); err != nil {
		t.Errorf("lenient mode rejected %q: %v", in, err)
	}
	_, _, err := convertString(t, in, Options{Mode: record.ModeStrict})
	if !errors.Is(err, record.ErrByteRange) {
		t.Errorf("strict error = %v, want ErrByteRange", err)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w, _ := codec.NewWriter(codec.FormatText, &bytes.Buffer{})
	_, err := Run(ctx, strings.NewReader("1 0 0 0 0 0 0 0\n"), w, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestReverseBadValues(t *testing.T) {
	in := "1\nabc\n-1\n"

	reader, _ := codec.NewReader(codec.FormatText, strings.NewReader(in))
	_, err := Reverse(context.Background(), reader, &bytes.Buffer{}, Options{File: "longs"})
	var lineErr *LineError
	if !errors.As(err, &lineErr) || lineErr.Line != 2 {
		t.Fatalf("fail policy error = %v, want LineError on line 2", err)
	}

	var out bytes.Buffer
	reader, _ = codec.NewReader(codec.FormatText, strings.NewReader(in))
	stats, err := Reverse(context.Background(), reader, &out, Options{OnError: PolicySkip})
	if err != nil {
		t.Fatal(err)
	}
	want := "1 0 0 0 0 0 0 0\n255 255 255 255 255 255 255 255\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
	if diff := cmp.Diff(Stats{Lines: 3, Records: 2, Skipped: 1}, stats); diff != "" {
		t.Errorf("stats diff -want +got\n%s", diff)
	}
}

func TestReverseSkipsNonIntegerMsgpackItem(t *testing.T) {
	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	if err := enc.EncodeInt(1); err != nil {
		t.Fatal(err)
	}
	if err := enc.EncodeString("abc"); err != nil {
		t.Fatal(err)
	}
	if err := enc.EncodeInt(2); err != nil {
		t.Fatal(err)
	}

	reader, err := codec.NewReader(codec.FormatMsgpack, &in)
	if err != nil {
		t.Fatal(err)
	}
	bag := diag.NewBag(10)
	var out bytes.Buffer
	stats, err := Reverse(context.Background(), reader, &out, Options{
		File:     "longs.mp",
		OnError:  PolicySkip,
		Reporter: diag.BagReporter{Bag: bag},
	})
	if err != nil {
		t.Fatal(err)
	}
	if want := "1 0 0 0 0 0 0 0\n2 0 0 0 0 0 0 0\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
	if diff := cmp.Diff(Stats{Lines: 3, Records: 2, Skipped: 1}, stats); diff != "" {
		t.Errorf("stats diff -want +got\n%s", diff)
	}
	if bag.Len() != 1 || bag.Items()[0].Pos.Line != 2 || bag.Items()[0].Code != diag.RecBadValue {
		t.Errorf("diagnostics = %+v", bag.Items())
	}
}

func TestParsePolicy(t *testing.T) {
	if p, err := ParsePolicy("SKIP"); err != nil || p != PolicySkip {
		t.Errorf("ParsePolicy(SKIP) = %v, %v", p, err)
	}
	if p, err := ParsePolicy(""); err != nil || p != PolicyFail {
		t.Errorf("ParsePolicy(\"\") = %v, %v", p, err)
	}
	if _, err := ParsePolicy("ignore"); err == nil {
		t.Error("ParsePolicy(ignore) succeeded")
	}
}
