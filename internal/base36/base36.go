// Package base36 encodes unsigned integers with the digits 0-9 and a-z.
package base36

import "strconv"

// Encode returns the base-36 representation of v.
// Zero encodes to "0"; no other value has a leading zero.
func Encode(v uint64) string {
	return strconv.FormatUint(v, 36)
}

// AppendEncode appends the base-36 representation of v to dst.
func AppendEncode(dst []byte, v uint64) []byte {
	return strconv.AppendUint(dst, v, 36)
}
