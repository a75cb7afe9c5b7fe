package main

import (
	"fmt"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"

	"longconv/internal/config"
	"longconv/internal/observ"
	"longconv/internal/trace"
)

// runEnv carries what every converting command needs: the effective config,
// the run id, the run span and the optional phase timer.
type runEnv struct {
	cfg            config.Config
	runID          string
	maxDiagnostics int
	quiet          bool
	timings        bool
	timer          *observ.Timer
	span           *trace.Span
	cleanup        func()
}

func prepareRun(cmd *cobra.Command, name string) (*runEnv, error) {
	flags := cmd.Root().PersistentFlags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	cfg, err := config.Load(configPath, ".")
	if err != nil {
		return nil, err
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return nil, err
	}
	stopTracing, err := setupTracing(cmd, cfg.Trace)
	if err != nil {
		stopProfiling()
		return nil, err
	}
	cleanup := func() {
		stopTracing()
		stopProfiling()
	}

	env := &runEnv{
		cfg:            cfg,
		runID:          ulid.Make().String(),
		maxDiagnostics: maxDiagnostics,
		quiet:          quiet,
		timings:        timings,
		cleanup:        cleanup,
	}
	if timings {
		env.timer = observ.NewTimer()
	}

	ctx := cmd.Context()
	env.span = trace.Begin(trace.FromContext(ctx), trace.ScopeRun, name, 0)
	env.span.WithExtra("run_id", env.runID)
	if cfg.Path != "" {
		env.span.WithExtra("config", cfg.Path)
	}
	cmd.SetContext(trace.WithSpan(ctx, env.span))
	return env, nil
}

// finish closes the run span, prints timings and releases the tracer.
func (e *runEnv) finish(cmd *cobra.Command, err error) {
	if err != nil {
		trace.Error(trace.FromContext(cmd.Context()), trace.ScopeRun, "run", err, e.span.ID())
		e.span.End("failed")
	} else {
		e.span.End("")
	}
	if e.timings {
		fmt.Fprint(cmd.ErrOrStderr(), e.timer.Summary())
	}
	e.cleanup()
}
