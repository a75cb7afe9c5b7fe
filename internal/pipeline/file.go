// Package pipeline wires stream acquisition, codecs and the conversion loop
// together for one file or for a batch of files.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"longconv/internal/codec"
	"longconv/internal/convert"
	"longconv/internal/diag"
	"longconv/internal/fileio"
	"longconv/internal/observ"
	"longconv/internal/trace"
)

// FileRequest describes the conversion of one input into one output.
type FileRequest struct {
	Input     string
	Output    string
	Direction Direction
	// Format is the value format written by Forward and read by Reverse.
	Format   codec.Format
	Convert  convert.Options
	Progress ProgressSink
	Timer    *observ.Timer
}

// ConvertFile opens both streams, runs the conversion and commits the output.
// Streams are released on every path; the output only appears on success.
func ConvertFile(ctx context.Context, req *FileRequest) (stats convert.Stats, err error) {
	if req == nil {
		return convert.Stats{}, fmt.Errorf("missing file request")
	}
	started := time.Now()
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeFile, req.Input, trace.ParentSpan(ctx))
	span.WithExtra("output", req.Output).WithExtra("direction", req.Direction.String())
	ctx = trace.WithSpan(ctx, span)

	opts := req.Convert
	if opts.File == "" {
		opts.File = req.Input
	}
	rep := opts.Reporter
	if rep == nil {
		rep = diag.NopReporter{}
	}

	stage := StageOpen
	defer func() {
		status := StatusDone
		if err != nil {
			status = StatusError
			span.End("failed")
		} else {
			span.WithExtra("records", strconv.Itoa(stats.Records)).End("")
		}
		emit(req.Progress, Event{File: req.Input, Stage: stage, Status: status, Err: err, Elapsed: time.Since(started)})
	}()

	emit(req.Progress, Event{File: req.Input, Stage: StageOpen, Status: StatusWorking})
	endOpen := req.Timer.Track("open")
	in, err := fileio.OpenInput(req.Input)
	if err != nil {
		endOpen("failed")
		rep.Report(diag.IOOpenInput, diag.SevError, diag.Position{File: req.Input}, err.Error())
		return stats, err
	}
	defer in.Close()

	out, err := fileio.CreateOutput(req.Output)
	if err != nil {
		endOpen("failed")
		rep.Report(diag.IOCreateOutput, diag.SevError, diag.Position{File: req.Output}, err.Error())
		return stats, err
	}
	defer out.Close()
	endOpen(req.Input)

	stage = StageConvert
	emit(req.Progress, Event{File: req.Input, Stage: StageConvert, Status: StatusWorking})
	endConvert := req.Timer.Track(req.Direction.String())
	stats, err = run(ctx, req, in, out, opts)
	if errors.Is(err, codec.ErrUnknownFormat) {
		rep.Report(diag.IOUnknownFormat, diag.SevError, diag.Position{File: req.Input}, err.Error())
	}
	if err != nil {
		endConvert("failed")
		return stats, err
	}
	endConvert(fmt.Sprintf("%d records", stats.Records))

	stage = StageCommit
	emit(req.Progress, Event{File: req.Input, Stage: StageCommit, Status: StatusWorking})
	endCommit := req.Timer.Track("commit")
	if err = out.Commit(); err != nil {
		endCommit("failed")
		rep.Report(diag.IOCommitOutput, diag.SevError, diag.Position{File: req.Output}, err.Error())
		return stats, err
	}
	endCommit(out.Path())
	return stats, nil
}

func run(ctx context.Context, req *FileRequest, in io.Reader, out io.Writer, opts convert.Options) (convert.Stats, error) {
	switch req.Direction {
	case Forward:
		w, err := codec.NewWriter(req.Format, out)
		if err != nil {
			return convert.Stats{}, err
		}
		return convert.Run(ctx, fileio.TextReader(in), w, opts)
	case Reverse:
		src := in
		if req.Format == codec.FormatText || req.Format == "" {
			src = fileio.TextReader(in)
		}
		r, err := codec.NewReader(req.Format, src)
		if err != nil {
			return convert.Stats{}, err
		}
		return convert.Reverse(ctx, r, out, opts)
	default:
		return convert.Stats{}, fmt.Errorf("unknown direction %d", req.Direction)
	}
}
