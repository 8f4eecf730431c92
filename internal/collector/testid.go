// Package collector implements the server that hands out test IDs and
// stores the result records posted by clients.
package collector

import "strconv"

// idChars is the alphabet of test IDs (no O or U)
const idChars = "0123456789ABCDEFGHIJKLMNPQRSTVWXYZ"

// FirstCounter is the counter value before the first session
const FirstCounter = 100

// SetCount is the number of skin sets sessions are spread over
const SetCount = 5

// Alnum4 renders a counter value as a test ID "T-XXXX", most significant
// digit first. Values beyond four digits wrap.
func Alnum4(n int64) string {
	m := int64(len(idChars))
	var digits [4]byte
	for i := len(digits) - 1; i >= 0; i-- {
		digits[i] = idChars[((n%m)+m)%m]
		n /= m
	}
	return "T-" + string(digits[:])
}

// DefaultSet is the skin set of a counter value
func DefaultSet(n int64) string {
	return strconv.FormatInt(n%SetCount, 10)
}
