package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"longconv/internal/codec"
	"longconv/internal/convert"
	"longconv/internal/diag"
	"longconv/internal/fileio"
	"longconv/internal/observ"
	"longconv/internal/trace"
)

// DefaultSuffix is appended to batch outputs when no suffix is configured.
const DefaultSuffix = ".longs"

// Job pairs one input with its output.
type Job struct {
	Input  string
	Output string
}

// Plan derives an output path for every input: the input's base name without
// a compression extension, plus suffix, in outDir (or next to the input when
// outDir is empty).
func Plan(inputs []string, outDir, suffix string) ([]Job, error) {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	jobs := make([]Job, 0, len(inputs))
	seen := make(map[string]string, len(inputs))
	for _, in := range inputs {
		if in == "" || in == fileio.StdioPath {
			return nil, fmt.Errorf("batch inputs must be files, got %q", in)
		}
		dir := outDir
		if dir == "" {
			dir = filepath.Dir(in)
		}
		out := filepath.Join(dir, fileio.TrimCompressionExt(filepath.Base(in))+suffix)
		if filepath.Clean(out) == filepath.Clean(in) {
			return nil, fmt.Errorf("output for %q would overwrite the input", in)
		}
		if prev, ok := seen[out]; ok {
			return nil, fmt.Errorf("inputs %q and %q both map to %q", prev, in, out)
		}
		seen[out] = in
		jobs = append(jobs, Job{Input: in, Output: out})
	}
	return jobs, nil
}

// BatchOptions configures Batch.
type BatchOptions struct {
	Jobs           int // <= 0 uses GOMAXPROCS
	Direction      Direction
	Format         codec.Format
	Convert        convert.Options // File and Reporter are set per job
	MaxDiagnostics int
	Progress       ProgressSink
	Timer          *observ.Timer
}

// Result is the outcome of one job.
type Result struct {
	Job
	Stats       convert.Stats
	Diagnostics *diag.Bag
	Err         error
	Elapsed     time.Duration
}

// Batch converts every job with bounded concurrency. Results keep the order
// of jobs. A failing job does not stop the others; the returned error joins
// all job failures.
func Batch(ctx context.Context, jobs []Job, opts BatchOptions) ([]Result, error) {
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results, nil
	}

	workers := opts.Jobs
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopePhase, "batch", trace.ParentSpan(ctx))
	span.WithExtra("jobs", strconv.Itoa(len(jobs))).WithExtra("workers", strconv.Itoa(workers))
	ctx = trace.WithSpan(ctx, span)

	for _, job := range jobs {
		emit(opts.Progress, Event{File: job.Input, Status: StatusQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(workers, len(jobs)))

	for i, job := range jobs {
		g.Go(func() error {
			bag := diag.NewBag(opts.MaxDiagnostics)
			res := Result{Job: job, Diagnostics: bag}
			started := time.Now()

			defer func() { results[i] = res }()

			if err := gctx.Err(); err != nil {
				res.Err = err
				return nil
			}

			convOpts := opts.Convert
			convOpts.File = job.Input
			convOpts.Reporter = diag.BagReporter{Bag: bag}
			res.Stats, res.Err = ConvertFile(gctx, &FileRequest{
				Input:     job.Input,
				Output:    job.Output,
				Direction: opts.Direction,
				Format:    opts.Format,
				Convert:   convOpts,
				Progress:  opts.Progress,
				Timer:     opts.Timer,
			})
			res.Elapsed = time.Since(started)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	var errs []error
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			errs = append(errs, fmt.Errorf("%s: %w", res.Input, res.Err))
		}
	}
	span.WithExtra("failed", strconv.Itoa(failed)).End("")

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, errors.Join(errs...)
}
