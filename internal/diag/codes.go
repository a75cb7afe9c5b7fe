package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Record-level problems
	RecInfo           Code = 1000
	RecTooFewTokens   Code = 1001
	RecExtraTokens    Code = 1002
	RecBadToken       Code = 1003
	RecByteOutOfRange Code = 1004
	RecOverflow       Code = 1005
	RecBadValue       Code = 1006

	// I/O
	IOInfo          Code = 4000
	IOOpenInput     Code = 4001
	IOCreateOutput  Code = 4002
	IOReadError     Code = 4003
	IOWriteError    Code = 4004
	IOCommitOutput  Code = 4005
	IOUnknownFormat Code = 4006
)

var codeDescription = map[Code]string{
	UnknownCode:       "Unknown error",
	RecInfo:           "Record information",
	RecTooFewTokens:   "Record has fewer than 8 tokens",
	RecExtraTokens:    "Record has more than 8 tokens",
	RecBadToken:       "Token is not an integer",
	RecByteOutOfRange: "Token does not fit a byte",
	RecOverflow:       "Record value overflows int64",
	RecBadValue:       "Value is not a signed 64-bit integer",
	IOInfo:            "I/O information",
	IOOpenInput:       "Cannot open input",
	IOCreateOutput:    "Cannot create output",
	IOReadError:       "Read failed",
	IOWriteError:      "Write failed",
	IOCommitOutput:    "Cannot commit output",
	IOUnknownFormat:   "Unknown stream format",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("REC%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
