package basen

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strings"
	"unicode/utf8"
)

var (
	// ErrOverflow is returned when a value does not fit in 64 bits.
	ErrOverflow = errors.New("value overflows uint64")
	// ErrBase is returned for alphabets with fewer than two digits.
	ErrBase = errors.New("base must be at least 2")
	// ErrEmpty is returned when decoding an empty string.
	ErrEmpty = errors.New("empty string")
	// ErrInvalidChar is returned when decoding a rune outside the alphabet.
	ErrInvalidChar = errors.New("invalid character")
)

// MaxValue returns size^length - 1, the largest value representable with
// length digits in base size.
func MaxValue(length, size int) (uint64, error) {
	if size < 2 {
		return 0, ErrBase
	}
	if length < 0 {
		return 0, fmt.Errorf("negative length %d", length)
	}

	base := uint64(size)
	p := uint64(1)
	for i := 0; i < length; i++ {
		hi, lo := bits.Mul64(p, base)
		if hi != 0 {
			// Exactly 2^64 on the last digit still has a representable maximum.
			if hi == 1 && lo == 0 && i == length-1 {
				return math.MaxUint64, nil
			}
			return 0, fmt.Errorf("%w: %d^%d", ErrOverflow, size, length)
		}
		p = lo
	}
	return p - 1, nil
}

// Encode renders n in the base given by alphabet.
// The alphabet must hold at least two runes.
func Encode(n uint64, alphabet string) string {
	if isASCII(alphabet) {
		return encodeASCII(n, alphabet)
	}

	digits := []rune(alphabet)
	if n == 0 {
		return string(digits[0])
	}

	base := uint64(len(digits))
	var buf [64]rune
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = digits[n%base]
		n /= base
	}
	return string(buf[i:])
}

func encodeASCII(n uint64, alphabet string) string {
	if n == 0 {
		return alphabet[:1]
	}

	base := uint64(len(alphabet))
	var buf [64]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = alphabet[n%base]
		n /= base
	}
	return string(buf[i:])
}

// Decode parses s as a number written in alphabet. Leading zero digits are
// accepted.
func Decode(s, alphabet string) (uint64, error) {
	if s == "" {
		return 0, ErrEmpty
	}

	digits := []rune(alphabet)
	if len(digits) < 2 {
		return 0, ErrBase
	}
	index := make(map[rune]uint64, len(digits))
	for i, r := range digits {
		index[r] = uint64(i)
	}

	base := uint64(len(digits))
	var n uint64
	pos := 0
	for _, r := range s {
		d, ok := index[r]
		if !ok {
			return 0, fmt.Errorf("%w %q at position %d", ErrInvalidChar, r, pos)
		}
		hi, lo := bits.Mul64(n, base)
		if hi != 0 {
			return 0, fmt.Errorf("%w: %q", ErrOverflow, s)
		}
		sum, carry := bits.Add64(lo, d, 0)
		if carry != 0 {
			return 0, fmt.Errorf("%w: %q", ErrOverflow, s)
		}
		n = sum
		pos++
	}
	return n, nil
}

// Pad left-pads s with the zero digit of alphabet until it is width runes long.
// Strings already at or beyond width are returned unchanged.
func Pad(s string, width int, alphabet string) string {
	missing := width - utf8.RuneCountInString(s)
	if missing <= 0 {
		return s
	}
	zero, _ := utf8.DecodeRuneInString(alphabet)
	return strings.Repeat(string(zero), missing) + s
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
