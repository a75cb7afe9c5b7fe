package convert

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"longconv/internal/codec"
	"longconv/internal/diag"
	"longconv/internal/record"
	"longconv/internal/trace"
)

// Reverse reads values from r and writes each as its 8 byte tokens
// ("b0 b1 ... b7"), one record per line. Undecodable values follow
// opts.OnError; opts.Mode is ignored.
func Reverse(ctx context.Context, r codec.Reader, w io.Writer, opts Options) (Stats, error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopePhase, "encode", trace.ParentSpan(ctx))

	var stats Stats
	rep := opts.reporter()
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, record.Size*4+1)

	fail := func(err error) (Stats, error) {
		trace.Error(tr, trace.ScopePhase, "encode", err, span.ID())
		span.End("failed")
		return stats, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}
		v, err := r.ReadLong()
		if err == io.EOF {
			break
		}
		if err != nil {
			var valErr *codec.ValueError
			if !errors.As(err, &valErr) {
				rep.Report(diag.IOReadError, diag.SevError, diag.Position{File: opts.File}, err.Error())
				return fail(fmt.Errorf("read %s: %w", displayName(opts.File), err))
			}
			stats.Lines++
			pos := diag.Position{File: opts.File, Line: valErr.Index}
			if opts.OnError == PolicyFail {
				rep.Report(diag.RecBadValue, diag.SevError, pos, err.Error())
				return fail(&LineError{File: opts.File, Line: valErr.Index, Err: err})
			}
			rep.Report(diag.RecBadValue, diag.SevWarning, pos, err.Error()+" (value skipped)")
			trace.Point(tr, trace.ScopeRecord, "skip", pos.String()+": "+err.Error(), span.ID())
			stats.Skipped++
			continue
		}
		stats.Lines++

		buf = record.AppendRecord(buf[:0], record.Encode(v))
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fail(fmt.Errorf("write: %w", err))
		}
		stats.Records++
	}

	if err := bw.Flush(); err != nil {
		return fail(fmt.Errorf("write: %w", err))
	}
	span.WithExtra("records", strconv.Itoa(stats.Records)).
		WithExtra("skipped", strconv.Itoa(stats.Skipped)).
		End("")
	return stats, nil
}
