package tempoid

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/getmockd/tempoid/pkg/basen"
)

// ErrNoTimeSegment is returned by ID.Time for configs without a time segment.
var ErrNoTimeSegment = errors.New("config has no time segment")

// ID is a generated identifier. The zero value is the empty identifier.
type ID struct {
	s string
}

// Parse wraps s as an ID. It performs no validation and never fails; check
// length and alphabet separately if round-tripping matters.
func Parse(s string) ID {
	return ID{s: s}
}

// String returns the identifier text.
func (id ID) String() string {
	return id.s
}

// IsZero reports whether id is empty.
func (id ID) IsZero() bool {
	return id.s == ""
}

// Compare orders identifiers lexicographically. For padded identifiers sharing
// a config with an ascending alphabet this is creation order.
func (id ID) Compare(other ID) int {
	return strings.Compare(id.s, other.s)
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Like Parse, it accepts
// any input.
func (id *ID) UnmarshalText(b []byte) error {
	id.s = string(b)
	return nil
}

// Segments splits id into its time and random parts assuming it was produced
// with cfg and PadLeft. Short identifiers yield a short time part and an empty
// random part.
func (id ID) Segments(cfg Config) (timePart, randomPart string) {
	if cfg.TimeLength <= 0 {
		return "", id.s
	}
	i, n := 0, 0
	for i < len(id.s) && n < cfg.TimeLength {
		_, size := utf8.DecodeRuneInString(id.s[i:])
		i += size
		n++
	}
	return id.s[:i], id.s[i:]
}

// Time decodes the time segment back to a timestamp, adding cfg.StartTime when
// set. Segments that wrapped around decode to their reduced value.
func (id ID) Time(cfg Config) (time.Time, error) {
	if cfg.TimeLength <= 0 {
		return time.Time{}, ErrNoTimeSegment
	}
	timePart, _ := id.Segments(cfg)
	ms, err := basen.Decode(timePart, cfg.Alphabet)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode time segment %q: %w", timePart, err)
	}
	if !cfg.StartTime.IsZero() {
		ms += uint64(cfg.StartTime.UnixMilli())
	}
	return time.UnixMilli(int64(ms)).UTC(), nil
}
