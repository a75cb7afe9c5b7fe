// Package record converts 8-byte records between their whitespace-separated
// text form and signed 64-bit integers.
//
// A record is little-endian: byte 0 is the least significant and byte 7
// carries the sign in two's complement.
package record

import (
	"encoding/binary"
	"math/big"
)

// Size is the number of bytes in a record.
const Size = 8

var byteOrder = binary.LittleEndian

// Record is one 8-byte little-endian value.
type Record [Size]byte

// Decode interprets r as a little-endian signed 64-bit integer.
func Decode(r Record) int64 {
	return int64(byteOrder.Uint64(r[:]))
}

// DecodeSignExtended computes the same value as Decode by accumulating the
// low seven bytes and adding the sign-extended top byte.
func DecodeSignExtended(r Record) int64 {
	var total int64
	for i := 0; i < Size-1; i++ {
		total |= int64(r[i]) << (8 * i)
	}
	return total + int64(int8(r[Size-1]))<<(8*(Size-1))
}

// Encode is the inverse of Decode.
func Encode(v int64) Record {
	var r Record
	byteOrder.PutUint64(r[:], uint64(v))
	return r
}

// Combine applies the record arithmetic to unvalidated token values:
// the first seven values are weighted by successive powers of 256 and the
// last one is split into its low seven bits and its sign bit.
//
// The sum is computed exactly. For values in 0..255 the result equals
// Decode of the corresponding record; out-of-range values may produce sums
// that do not fit an int64, which is reported as ErrOverflow.
func Combine(vals [Size]int64) (int64, error) {
	if r, ok := asRecord(vals); ok {
		return Decode(r), nil
	}

	total := new(big.Int)
	mult := big.NewInt(1)
	term := new(big.Int)
	for i := 0; i < Size-1; i++ {
		term.Mul(big.NewInt(vals[i]), mult)
		total.Add(total, term)
		mult.Lsh(mult, 8)
	}
	last := vals[Size-1]
	term.Mul(big.NewInt(last&0x7F), mult)
	total.Add(total, term)
	term.Mul(big.NewInt(last&0x80), mult)
	total.Sub(total, term)

	if !total.IsInt64() {
		return 0, ErrOverflow
	}
	return total.Int64(), nil
}

func asRecord(vals [Size]int64) (Record, bool) {
	var r Record
	for i, v := range vals {
		if v < 0 || v > 0xFF {
			return Record{}, false
		}
		r[i] = byte(v)
	}
	return r, true
}
