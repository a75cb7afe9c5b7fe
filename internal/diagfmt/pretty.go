package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"longconv/internal/diag"
)

type palette struct {
	pos     *color.Color
	err     *color.Color
	warning *color.Color
	info    *color.Color
	faint   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		pos:     color.New(color.Bold),
		err:     color.New(color.FgRed, color.Bold),
		warning: color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan),
		faint:   color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.pos, p.err, p.warning, p.info, p.faint} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warning
	default:
		return p.info
	}
}

// Pretty renders diagnostics one per line:
//
//	<file>:<line>:<col>: <severity>[<CODE>]: <message>
//
// Items are printed in bag order; call bag.Sort() first for a stable listing.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) error {
	if bag == nil {
		return nil
	}
	p := newPalette(opts.Color)
	items := bag.Items()
	hidden := bag.Dropped()
	if opts.Max > 0 && len(items) > opts.Max {
		hidden += len(items) - opts.Max
		items = items[:opts.Max]
	}

	for _, d := range items {
		sev := strings.ToLower(d.Severity.String())
		_, err := fmt.Fprintf(w, "%s: %s: %s\n",
			p.pos.Sprint(d.Pos.String()),
			p.severity(d.Severity).Sprintf("%s[%s]", sev, d.Code.ID()),
			d.Message,
		)
		if err != nil {
			return err
		}
	}
	if hidden > 0 {
		if _, err := fmt.Fprintln(w, p.faint.Sprintf("... %d more diagnostics not shown", hidden)); err != nil {
			return err
		}
	}
	return nil
}
