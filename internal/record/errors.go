package record

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewTokens means a line holds fewer than Size tokens.
	ErrTooFewTokens = errors.New("too few tokens")
	// ErrExtraTokens means a line holds more than Size tokens (strict mode only).
	ErrExtraTokens = errors.New("unexpected extra tokens")
	// ErrBadToken means a token is not a base-10 integer.
	ErrBadToken = errors.New("not an integer")
	// ErrByteRange means a token does not fit a byte (strict mode only).
	ErrByteRange = errors.New("value out of byte range 0..255")
	// ErrOverflow means the combined value does not fit a signed 64-bit integer.
	ErrOverflow = errors.New("combined value overflows int64")
)

// TokenError reports a problem with a single token of a line.
type TokenError struct {
	Column int // 1-based token index
	Token  string
	Err    error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("token %d %q: %v", e.Column, e.Token, e.Err)
}

func (e *TokenError) Unwrap() error { return e.Err }
