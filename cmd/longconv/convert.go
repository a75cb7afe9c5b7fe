package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"longconv/internal/codec"
	"longconv/internal/config"
	"longconv/internal/convert"
	"longconv/internal/diag"
	"longconv/internal/fileio"
	"longconv/internal/pipeline"
	"longconv/internal/record"
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] [input [output]]",
	Short: "Convert byte records into signed 64-bit integers",
	Long: `Read lines of eight byte values from input and write one little-endian
signed 64-bit integer per line to output. Paths default to the config values
(random-bytes and random-longs); "-" selects stdin or stdout.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSingle(cmd, args, pipeline.Forward)
	},
}

func init() {
	addConvertFlags(convertCmd)
	addStrictFlag(convertCmd)
}

// addConvertFlags registers the flags shared by every converting command.
func addConvertFlags(cmd *cobra.Command) {
	cmd.Flags().String("on-error", "fail", "malformed line policy (fail|skip)")
	cmd.Flags().String("format", "text", "value stream format (text|msgpack)")
	cmd.Flags().String("diag-format", "pretty", "diagnostics output format (pretty|json)")
}

// addStrictFlag registers --strict on commands that parse byte records.
func addStrictFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("strict", false, "require exactly eight tokens, each in 0..255")
}

// convertSettings is the flag-over-config view of the conversion options.
type convertSettings struct {
	options    convert.Options
	format     codec.Format
	diagFormat string
}

func readConvertSettings(cmd *cobra.Command, cfg config.Config) (convertSettings, error) {
	flags := cmd.Flags()

	strict := cfg.Convert.Strict
	if flags.Lookup("strict") != nil && flags.Changed("strict") {
		v, err := flags.GetBool("strict")
		if err != nil {
			return convertSettings{}, fmt.Errorf("failed to get strict flag: %w", err)
		}
		strict = v
	}
	onError, err := flags.GetString("on-error")
	if err != nil {
		return convertSettings{}, fmt.Errorf("failed to get on-error flag: %w", err)
	}
	formatStr, err := flags.GetString("format")
	if err != nil {
		return convertSettings{}, fmt.Errorf("failed to get format flag: %w", err)
	}
	diagFormat, err := flags.GetString("diag-format")
	if err != nil {
		return convertSettings{}, fmt.Errorf("failed to get diag-format flag: %w", err)
	}

	if !flags.Changed("on-error") {
		onError = cfg.Convert.OnError
	}
	if !flags.Changed("format") {
		formatStr = cfg.Convert.Format
	}

	policy, err := convert.ParsePolicy(onError)
	if err != nil {
		return convertSettings{}, err
	}
	format, err := codec.ParseFormat(formatStr)
	if err != nil {
		return convertSettings{}, err
	}
	diagFormat = strings.ToLower(strings.TrimSpace(diagFormat))
	switch diagFormat {
	case "pretty", "json":
	default:
		return convertSettings{}, fmt.Errorf("unsupported diag format %q (must be pretty or json)", diagFormat)
	}

	mode := record.ModeLenient
	if strict {
		mode = record.ModeStrict
	}
	return convertSettings{
		options:    convert.Options{Mode: mode, OnError: policy},
		format:     format,
		diagFormat: diagFormat,
	}, nil
}

// resolvePaths fills missing positional arguments from the config. Encoding
// reads the configured output and writes the configured input.
func resolvePaths(args []string, cfg config.Config, dir pipeline.Direction) (string, string) {
	input, output := cfg.Convert.Input, cfg.Convert.Output
	if dir == pipeline.Reverse {
		input, output = output, input
	}
	if len(args) > 0 {
		input = args[0]
	}
	if len(args) > 1 {
		output = args[1]
	}
	return input, output
}

func samePath(a, b string) bool {
	if a == fileio.StdioPath || b == fileio.StdioPath {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// runSingle converts one input into one output in the given direction.
func runSingle(cmd *cobra.Command, args []string, dir pipeline.Direction) (err error) {
	env, err := prepareRun(cmd, dir.String())
	if err != nil {
		return err
	}
	defer func() { env.finish(cmd, err) }()

	settings, err := readConvertSettings(cmd, env.cfg)
	if err != nil {
		return err
	}
	color, err := colorEnabled(cmd)
	if err != nil {
		return err
	}

	input, output := resolvePaths(args, env.cfg, dir)
	if samePath(input, output) {
		return fmt.Errorf("input and output are the same file: %s", input)
	}

	bag := diag.NewBag(env.maxDiagnostics)
	opts := settings.options
	opts.Reporter = diag.BagReporter{Bag: bag}

	stats, err := pipeline.ConvertFile(cmd.Context(), &pipeline.FileRequest{
		Input:     input,
		Output:    output,
		Direction: dir,
		Format:    settings.format,
		Convert:   opts,
		Timer:     env.timer,
	})
	if repErr := reportDiagnostics(cmd.ErrOrStderr(), bag, settings.diagFormat, color); repErr != nil && err == nil {
		err = repErr
	}
	if err != nil {
		return err
	}
	if !env.quiet {
		printSummary(cmd.ErrOrStderr(), env.runID, fmt.Sprintf("%s -> %s", displayPath(input), displayPath(output)), stats, 0)
	}
	return nil
}
