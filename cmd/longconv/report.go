package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"longconv/internal/convert"
	"longconv/internal/diag"
	"longconv/internal/diagfmt"
	"longconv/internal/fileio"
)

var (
	summaryOK   = color.New(color.FgGreen, color.Bold)
	summaryWarn = color.New(color.FgYellow, color.Bold)
)

// colorEnabled resolves --color against stderr, where all human output goes.
func colorEnabled(cmd *cobra.Command) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	var enabled bool
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		enabled = isTerminal(os.Stderr)
	case "on":
		enabled = true
	case "off":
		enabled = false
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
	color.NoColor = !enabled
	return enabled, nil
}

func reportDiagnostics(w io.Writer, bag *diag.Bag, format string, useColor bool) error {
	if bag == nil || (bag.Len() == 0 && bag.Dropped() == 0) {
		return nil
	}
	bag.Sort()
	if format == "json" {
		return diagfmt.JSON(w, bag, diagfmt.JSONOpts{Indent: true})
	}
	return diagfmt.Pretty(w, bag, diagfmt.PrettyOpts{Color: useColor})
}

func printSummary(w io.Writer, runID, label string, stats convert.Stats, failed int) {
	head := summaryOK
	if stats.Skipped > 0 || failed > 0 {
		head = summaryWarn
	}
	fmt.Fprintf(w, "%s %s: %d records", head.Sprint("done"), label, stats.Records)
	if stats.Skipped > 0 {
		fmt.Fprintf(w, ", %d skipped", stats.Skipped)
	}
	if stats.Blank > 0 {
		fmt.Fprintf(w, ", %d blank", stats.Blank)
	}
	if failed > 0 {
		fmt.Fprintf(w, ", %d files failed", failed)
	}
	fmt.Fprintf(w, " (run %s)\n", runID)
}

func displayPath(path string) string {
	if path == "" || path == fileio.StdioPath {
		return "<stdio>"
	}
	return path
}
