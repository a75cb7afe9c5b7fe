package record

import "strconv"

// AppendRecord appends the text form of r ("b0 b1 ... b7") to dst.
func AppendRecord(dst []byte, r Record) []byte {
	for i, b := range r {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst = strconv.AppendUint(dst, uint64(b), 10)
	}
	return dst
}

// FormatRecord returns the text form of r.
func FormatRecord(r Record) string {
	return string(AppendRecord(make([]byte, 0, Size*4), r))
}
