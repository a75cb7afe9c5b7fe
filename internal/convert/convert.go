package convert

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"longconv/internal/codec"
	"longconv/internal/diag"
	"longconv/internal/record"
	"longconv/internal/trace"
)

// Run reads byte records from r line by line and writes one value per
// non-blank line to w, until r is exhausted. A last line without a
// terminator is still converted.
func Run(ctx context.Context, r io.Reader, w codec.Writer, opts Options) (Stats, error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopePhase, "convert", trace.ParentSpan(ctx))
	span.WithExtra("mode", opts.Mode.String()).WithExtra("on_error", opts.OnError.String())

	stats, err := run(ctx, tr, span.ID(), r, w, opts)

	span.WithExtra("lines", strconv.Itoa(stats.Lines)).
		WithExtra("records", strconv.Itoa(stats.Records)).
		WithExtra("skipped", strconv.Itoa(stats.Skipped))
	if err != nil {
		trace.Error(tr, trace.ScopePhase, "convert", err, span.ID())
		span.End("failed")
		return stats, err
	}
	span.End("")
	return stats, nil
}

func run(ctx context.Context, tr trace.Tracer, spanID uint64, r io.Reader, w codec.Writer, opts Options) (Stats, error) {
	var stats Stats
	rep := opts.reporter()
	br := bufio.NewReader(r)

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		line, readErr := br.ReadString('\n')
		if line == "" && readErr != nil {
			if readErr == io.EOF {
				break
			}
			rep.Report(diag.IOReadError, diag.SevError, diag.Position{File: opts.File, Line: stats.Lines + 1}, readErr.Error())
			return stats, fmt.Errorf("read %s: %w", displayName(opts.File), readErr)
		}
		stats.Lines++

		if strings.TrimSpace(line) == "" {
			stats.Blank++
		} else {
			v, err := record.ParseLine(line, opts.Mode)
			if err != nil {
				pos := diag.Position{File: opts.File, Line: stats.Lines, Column: tokenColumn(err)}
				if opts.OnError == PolicyFail {
					rep.Report(codeFor(err), diag.SevError, pos, err.Error())
					return stats, &LineError{File: opts.File, Line: stats.Lines, Err: err}
				}
				rep.Report(codeFor(err), diag.SevWarning, pos, err.Error()+" (line skipped)")
				trace.Point(tr, trace.ScopeRecord, "skip", pos.String()+": "+err.Error(), spanID)
				stats.Skipped++
			} else {
				if err := w.WriteLong(v); err != nil {
					rep.Report(diag.IOWriteError, diag.SevError, diag.Position{File: opts.File, Line: stats.Lines}, err.Error())
					return stats, fmt.Errorf("write: %w", err)
				}
				stats.Records++
			}
		}

		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			return stats, fmt.Errorf("read %s: %w", displayName(opts.File), readErr)
		}
	}

	if err := w.Flush(); err != nil {
		rep.Report(diag.IOWriteError, diag.SevError, diag.Position{File: opts.File}, err.Error())
		return stats, fmt.Errorf("write: %w", err)
	}
	return stats, nil
}

func codeFor(err error) diag.Code {
	switch {
	case errors.Is(err, record.ErrTooFewTokens):
		return diag.RecTooFewTokens
	case errors.Is(err, record.ErrExtraTokens):
		return diag.RecExtraTokens
	case errors.Is(err, record.ErrBadToken):
		return diag.RecBadToken
	case errors.Is(err, record.ErrByteRange):
		return diag.RecByteOutOfRange
	case errors.Is(err, record.ErrOverflow):
		return diag.RecOverflow
	default:
		return diag.UnknownCode
	}
}

func tokenColumn(err error) int {
	var tokErr *record.TokenError
	if errors.As(err, &tokErr) {
		return tokErr.Column
	}
	return 0
}

func displayName(file string) string {
	if file == "" {
		return "<stdin>"
	}
	return file
}
