package diag

// Severity ranks a diagnostic. Errors stop a conversion under the fail
// policy; warnings mark lines that were skipped.
type Severity uint8

const (
	SevInfo Severity = iota
	// SevWarning marks a malformed line or value that was dropped.
	SevWarning
	// SevError marks the problem that ended the run for a file.
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
