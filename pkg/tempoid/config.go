package tempoid

import (
	"errors"
	"fmt"
	"time"

	"github.com/getmockd/tempoid/pkg/alphabet"
	"github.com/getmockd/tempoid/pkg/basen"
)

// Default segment lengths.
const (
	DefaultTimeLength   = 8
	DefaultRandomLength = 13
)

// MaxAlphabetSize is the largest alphabet the random segment can sample
// without bias, using two bytes per draw.
const MaxAlphabetSize = 1 << 16

var (
	// ErrNegativeLength is returned when a segment length is below zero.
	ErrNegativeLength = errors.New("segment length must not be negative")
	// ErrTimeLengthOverflow is returned when the time segment's range does
	// not fit in 64 bits.
	ErrTimeLengthOverflow = errors.New("time length overflows 64-bit timestamp range")
	// ErrAlphabetTooLarge is returned for alphabets above MaxAlphabetSize.
	ErrAlphabetTooLarge = errors.New("alphabet too large")
)

// Config describes the shape of generated identifiers. It is a value type;
// generators never retain it.
type Config struct {
	// TimeLength is the number of characters in the time segment. Zero
	// produces identifiers with a random segment only.
	TimeLength int

	// RandomLength is the number of characters in the random segment.
	RandomLength int

	// Time fixes the timestamp. The zero value means the generator's clock.
	Time time.Time

	// StartTime is subtracted from the timestamp when set. Timestamps before
	// StartTime wrap around in unsigned arithmetic.
	StartTime time.Time

	// PadLeft left-pads the time segment to exactly TimeLength characters
	// with the alphabet's first character.
	PadLeft bool

	// Alphabet is used for both segments.
	Alphabet string
}

// DefaultConfig returns the configuration used by Generate.
func DefaultConfig() Config {
	return Config{
		TimeLength:   DefaultTimeLength,
		RandomLength: DefaultRandomLength,
		PadLeft:      true,
		Alphabet:     alphabet.Default,
	}
}

// Validate checks that c can produce identifiers.
func (c Config) Validate() error {
	if err := alphabet.Validate(c.Alphabet); err != nil {
		return err
	}
	size := alphabet.Size(c.Alphabet)
	if size > MaxAlphabetSize {
		return fmt.Errorf("%w: %d characters, limit %d", ErrAlphabetTooLarge, size, MaxAlphabetSize)
	}
	if c.TimeLength < 0 {
		return fmt.Errorf("%w: time length %d", ErrNegativeLength, c.TimeLength)
	}
	if c.RandomLength < 0 {
		return fmt.Errorf("%w: random length %d", ErrNegativeLength, c.RandomLength)
	}
	if _, err := basen.MaxValue(c.TimeLength, size); err != nil {
		return fmt.Errorf("%w: %d characters of base %d", ErrTimeLengthOverflow, c.TimeLength, size)
	}
	return nil
}

// Len returns the length in characters of identifiers produced with c when
// PadLeft is set. Unpadded identifiers may be shorter.
func (c Config) Len() int {
	return c.TimeLength + c.RandomLength
}

// MaxTimeLength returns the widest time segment that fits in 64 bits for an
// alphabet of the given size.
func MaxTimeLength(size int) int {
	n := 0
	for {
		if _, err := basen.MaxValue(n+1, size); err != nil {
			return n
		}
		n++
	}
}
