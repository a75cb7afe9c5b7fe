package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"longconv/internal/pipeline"
	"longconv/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "longconv",
	Short: "Convert 8-byte little-endian records into signed 64-bit integers",
	Long: `longconv reads lines of eight whitespace-separated byte values and writes
the little-endian signed 64-bit integer each line encodes, one per line.
Without a subcommand it converts random-bytes into random-longs.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSingle(cmd, args, pipeline.Forward)
	},
}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("config", "", "path to longconv.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to keep")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr, .ndjson for NDJSON)")
	rootCmd.PersistentFlags().String("trace-level", "", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	addConvertFlags(rootCmd)
	addStrictFlag(rootCmd)
}

// main executes the root command and exits with status 1 on any error.
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
