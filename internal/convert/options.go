// Package convert runs the line-by-line conversion between byte records and
// signed 64-bit values.
package convert

import (
	"fmt"
	"strings"

	"longconv/internal/diag"
	"longconv/internal/record"
)

// Policy decides what happens to a malformed line.
type Policy uint8

const (
	// PolicyFail stops the run at the first malformed line.
	PolicyFail Policy = iota
	// PolicySkip drops the line, reports a warning and keeps going.
	// The output then has fewer lines than the input.
	PolicySkip
)

func (p Policy) String() string {
	switch p {
	case PolicyFail:
		return "fail"
	case PolicySkip:
		return "skip"
	default:
		return "unknown"
	}
}

// ParsePolicy converts a flag or config value into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail":
		return PolicyFail, nil
	case "skip":
		return PolicySkip, nil
	default:
		return PolicyFail, fmt.Errorf("invalid on-error policy %q (expected fail|skip)", s)
	}
}

// Options configures a conversion run.
type Options struct {
	Mode    record.Mode
	OnError Policy
	// File names the input in diagnostics and errors.
	File string
	// Reporter receives diagnostics; nil discards them.
	Reporter diag.Reporter
}

func (o Options) reporter() diag.Reporter {
	if o.Reporter == nil {
		return diag.NopReporter{}
	}
	return o.Reporter
}

// Stats summarises a run.
type Stats struct {
	Lines   int // lines (or values) read
	Records int // values written
	Blank   int // whitespace-only lines
	Skipped int // malformed lines dropped under PolicySkip
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Lines += other.Lines
	s.Records += other.Records
	s.Blank += other.Blank
	s.Skipped += other.Skipped
}

// LineError is returned when a malformed line stops the run.
type LineError struct {
	File string
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s: %v", diag.Position{File: e.File, Line: e.Line}, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
