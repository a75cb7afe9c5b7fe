package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"longconv/internal/convert"
	"longconv/internal/diag"
	"longconv/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch [flags] inputs...",
	Short: "Convert many files concurrently",
	Long: `Convert every input into <name><suffix>, next to the input or in --out-dir.
Compression extensions are dropped from the derived name. Files are processed
concurrently; one failing file does not stop the others.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	addConvertFlags(batchCmd)
	addStrictFlag(batchCmd)
	batchCmd.Flags().String("out-dir", "", "directory for outputs (default: next to each input)")
	batchCmd.Flags().String("suffix", pipeline.DefaultSuffix, "suffix appended to output names")
	batchCmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
	batchCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	batchCmd.Flags().Bool("encode", false, "encode values back into byte records (--strict does not apply)")
}

func runBatch(cmd *cobra.Command, args []string) (err error) {
	env, err := prepareRun(cmd, "batch")
	if err != nil {
		return err
	}
	defer func() { env.finish(cmd, err) }()

	settings, err := readConvertSettings(cmd, env.cfg)
	if err != nil {
		return err
	}
	useColor, err := colorEnabled(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	outDir, err := flags.GetString("out-dir")
	if err != nil {
		return fmt.Errorf("failed to get out-dir flag: %w", err)
	}
	suffix, err := flags.GetString("suffix")
	if err != nil {
		return fmt.Errorf("failed to get suffix flag: %w", err)
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	encode, err := flags.GetBool("encode")
	if err != nil {
		return fmt.Errorf("failed to get encode flag: %w", err)
	}
	if !flags.Changed("out-dir") {
		outDir = env.cfg.Batch.OutDir
	}
	if !flags.Changed("suffix") {
		suffix = env.cfg.Batch.Suffix
	}
	if !flags.Changed("jobs") {
		jobs = env.cfg.Batch.Jobs
	}
	if jobs < 0 {
		return fmt.Errorf("--jobs must be >= 0, got %d", jobs)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	planned, err := pipeline.Plan(args, outDir, suffix)
	if err != nil {
		return err
	}
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create out dir: %w", err)
		}
	}

	direction := pipeline.Forward
	if encode {
		direction = pipeline.Reverse
	}
	opts := pipeline.BatchOptions{
		Jobs:           jobs,
		Direction:      direction,
		Format:         settings.format,
		Convert:        settings.options,
		MaxDiagnostics: env.maxDiagnostics,
		Timer:          env.timer,
	}

	var results []pipeline.Result
	var runErr error
	if shouldUseTUI(mode, env.quiet) {
		results, runErr = runBatchWithUI(cmd.Context(), "longconv batch", planned, opts)
	} else {
		results, runErr = pipeline.Batch(cmd.Context(), planned, opts)
	}

	all := diag.NewBag(env.maxDiagnostics)
	var total convert.Stats
	failed := 0
	for _, res := range results {
		all.Merge(res.Diagnostics)
		total.Add(res.Stats)
		if res.Err != nil {
			failed++
		}
	}
	if repErr := reportDiagnostics(cmd.ErrOrStderr(), all, settings.diagFormat, useColor); repErr != nil && runErr == nil {
		runErr = repErr
	}
	if !env.quiet {
		printSummary(cmd.ErrOrStderr(), env.runID, fmt.Sprintf("%s %d files", direction, len(planned)), total, failed)
	}
	return runErr
}
