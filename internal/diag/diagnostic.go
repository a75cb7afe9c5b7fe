package diag

import "fmt"

// Position locates a diagnostic inside a text stream.
type Position struct {
	File   string
	Line   int // 1-based, 0 when the diagnostic is not tied to a line
	Column int // 1-based token index, 0 when not token-specific
}

func (p Position) String() string {
	file := p.File
	if file == "" {
		file = "<stdin>"
	}
	switch {
	case p.Line == 0:
		return file
	case p.Column == 0:
		return fmt.Sprintf("%s:%d", file, p.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", file, p.Line, p.Column)
	}
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Pos      Position
}

func New(sev Severity, code Code, pos Position, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Pos:      pos,
		Message:  msg,
	}
}

func NewError(code Code, pos Position, msg string) Diagnostic {
	return New(SevError, code, pos, msg)
}

func NewWarning(code Code, pos Position, msg string) Diagnostic {
	return New(SevWarning, code, pos, msg)
}
