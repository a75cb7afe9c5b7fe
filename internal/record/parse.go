package record

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// Mode selects how strictly a line is validated.
type Mode uint8

const (
	// ModeLenient takes the first Size tokens, ignores the rest and does not
	// range-check values.
	ModeLenient Mode = iota
	// ModeStrict requires exactly Size tokens, each in 0..255.
	ModeStrict
)

func (m Mode) String() string {
	switch m {
	case ModeLenient:
		return "lenient"
	case ModeStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseLine converts one text line into its signed 64-bit value.
func ParseLine(line string, mode Mode) (int64, error) {
	if mode == ModeStrict {
		r, err := ParseRecord(line)
		if err != nil {
			return 0, err
		}
		return Decode(r), nil
	}

	fields := strings.Fields(line)
	if len(fields) < Size {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrTooFewTokens, len(fields), Size)
	}
	var vals [Size]int64
	for i := 0; i < Size; i++ {
		v, err := parseToken(fields[i])
		if err != nil {
			return 0, &TokenError{Column: i + 1, Token: fields[i], Err: err}
		}
		vals[i] = v
	}
	return Combine(vals)
}

// ParseRecord parses a line of exactly Size byte tokens.
func ParseRecord(line string) (Record, error) {
	fields := strings.Fields(line)
	switch {
	case len(fields) < Size:
		return Record{}, fmt.Errorf("%w: got %d, want %d", ErrTooFewTokens, len(fields), Size)
	case len(fields) > Size:
		return Record{}, fmt.Errorf("%w: got %d, want %d", ErrExtraTokens, len(fields), Size)
	}

	var r Record
	for i, tok := range fields {
		v, err := parseToken(tok)
		if err != nil {
			return Record{}, &TokenError{Column: i + 1, Token: tok, Err: err}
		}
		b, err := safecast.Conv[uint8](v)
		if err != nil {
			return Record{}, &TokenError{Column: i + 1, Token: tok, Err: ErrByteRange}
		}
		r[i] = b
	}
	return r, nil
}

func parseToken(tok string) (int64, error) {
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, ErrBadToken
	}
	return v, nil
}
