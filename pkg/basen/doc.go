// Package basen converts unsigned integers to and from positional strings
// over an arbitrary alphabet.
//
// Digits are the runes of the alphabet: the first rune is zero, the second is
// one, and so on. Encoding is most-significant digit first and never returns
// an empty string, so zero encodes to the single zero rune.
//
// # Fixed Width
//
// MaxValue reports the largest value that fits in a given number of digits.
// Callers rendering fixed-width fields reduce their input modulo
// MaxValue(width, size)+1 and left-pad the encoding with the zero rune:
//
//	max, err := basen.MaxValue(8, alphabet.Size(a))
//	if err != nil {
//	    return err
//	}
//	s := basen.Encode(ms%(max+1), a)
//
// Widths whose range exceeds 64 bits are rejected with ErrOverflow.
package basen
