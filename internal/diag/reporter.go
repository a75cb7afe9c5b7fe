package diag

// Reporter is the minimal sink for diagnostics produced during conversion.
type Reporter interface {
	Report(code Code, sev Severity, pos Position, msg string)
}

// BagReporter writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, pos Position, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(New(sev, code, pos, msg))
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, Position, string) {}
