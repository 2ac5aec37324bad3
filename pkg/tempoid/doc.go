// Package tempoid generates compact identifiers that sort by creation time.
//
// An identifier is a time segment followed by a random segment, both written
// in the same alphabet and joined with no separator:
//
//	0Lr5bW2c  k9QmZ3xA7pTnE
//	└ time ┘  └── random ──┘
//
// The time segment is the millisecond timestamp (optionally relative to a
// custom epoch) reduced modulo the range of TimeLength digits, encoded in base
// len(alphabet) and left-padded with the alphabet's first character. Padded
// identifiers therefore sort by time in the alphabet's digit order until the
// segment wraps around. For alphabets whose characters ascend in code point
// order (see alphabet.Ascending) that is plain string order; the mixed-case
// catalog sets such as alphabet.Alphanumeric interleave cases and need
// ID.Time to recover the ordering.
//
// The random segment draws bytes from an entropy pool and maps them to
// alphabet positions by masking and rejection, so every character is uniform
// over the alphabet whatever its size.
//
// # Usage
//
//	id, err := tempoid.Generate()                      // 8 + 13 chars, alphanumeric
//	id, err = tempoid.GenerateWithAlphabet(alphabet.URL)
//	id, err = tempoid.GenerateCustom(tempoid.Config{
//	    TimeLength:   10,
//	    RandomLength: 16,
//	    StartTime:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
//	    PadLeft:      true,
//	    Alphabet:     alphabet.Numbers,
//	})
//
// Generators are safe for concurrent use. Uniqueness across machines is not
// guaranteed beyond what the random segment's entropy provides, and the time
// segment does not stay monotonic if the clock moves backwards.
package tempoid
