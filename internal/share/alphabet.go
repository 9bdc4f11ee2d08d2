// Package share converts 5x4 boards to short URL-safe sharing codes and back.
//
// A board is read as 20 base-13 digits (0 for an empty square, 1-12 for the
// pieces) and folded into a single BoardIndex, which is then written in base
// 64 using a URL-safe alphabet. Codes are at most 12 characters long; boards
// whose index does not fit are rejected with CodeOverflow.
//
// Every function in this package is pure and safe for concurrent use.
package share

// Alphabet is the 64-symbol digit set, lowest value first.
// Its ordering is part of the code format and must never change.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// Base is the radix of a sharing code.
const Base = len(Alphabet)

const invalidValue = 0xff

// alphabetValues maps a byte to its digit value, or invalidValue.
var alphabetValues = func() [256]uint8 {
	var t [256]uint8
	for i := range t {
		t[i] = invalidValue
	}
	for i := 0; i < len(Alphabet); i++ {
		t[Alphabet[i]] = uint8(i)
	}
	return t
}()

// CharAt returns the symbol for a digit value in 0..63.
// It panics if v is out of range.
func CharAt(v int) byte {
	return Alphabet[v]
}

// ValueOf returns the digit value of c and whether c is in the alphabet.
func ValueOf(c byte) (int, bool) {
	v := alphabetValues[c]
	if v == invalidValue {
		return 0, false
	}
	return int(v), true
}
