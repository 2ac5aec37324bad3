// Package alphabet defines the character sets identifiers are rendered in.
//
// An alphabet is an ordered string of distinct characters. Its first
// character is the zero digit and the padding character. Sizes are counted
// in runes, so non-ASCII alphabets work the same way as ASCII ones.
package alphabet

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Catalog alphabets.
const (
	Numbers        = "0123456789"
	HexLower       = "0123456789abcdef"
	HexUpper       = "0123456789ABCDEF"
	Lowercase      = "abcdefghijklmnopqrstuvwxyz"
	Uppercase      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	NoDoppelganger = "346789AaBbCcDdEeFfGgHhiJjKkLMmNnPpQqRrTtUVWwXxYyz"
	Alphanumeric   = "0123456789AaBbCcDdEeFfGgHhIiJjKkLlMmNnOoPpQqRrSsTtUuVvWwXxYyZz"
	URL            = Alphanumeric + "-_"
	Base64         = Alphanumeric + "+/"

	// Default is the alphabet used when none is configured.
	Default = Alphanumeric
)

// ErrInvalid is wrapped by every validation error in this package.
var ErrInvalid = errors.New("invalid alphabet")

var (
	// ErrTooShort is returned for alphabets with fewer than two characters.
	ErrTooShort = fmt.Errorf("%w: need at least 2 characters", ErrInvalid)
	// ErrDuplicate is returned when a character appears more than once.
	ErrDuplicate = fmt.Errorf("%w: duplicate character", ErrInvalid)
	// ErrInvalidUTF8 is returned when the alphabet is not valid UTF-8.
	ErrInvalidUTF8 = fmt.Errorf("%w: not valid UTF-8", ErrInvalid)
)

var catalog = map[string]string{
	"numbers":         Numbers,
	"hex":             HexLower,
	"hex-upper":       HexUpper,
	"lowercase":       Lowercase,
	"uppercase":       Uppercase,
	"no-doppelganger": NoDoppelganger,
	"alphanumeric":    Alphanumeric,
	"url":             URL,
	"base64":          Base64,
}

// Validate reports whether a can be used as a digit set.
func Validate(a string) error {
	if !utf8.ValidString(a) {
		return ErrInvalidUTF8
	}
	if utf8.RuneCountInString(a) < 2 {
		return ErrTooShort
	}
	if isASCII(a) {
		var seen [utf8.RuneSelf]bool
		for i := 0; i < len(a); i++ {
			if seen[a[i]] {
				return fmt.Errorf("%w %q at positions %d and %d", ErrDuplicate, a[i], strings.IndexByte(a, a[i]), i)
			}
			seen[a[i]] = true
		}
		return nil
	}
	seen := make(map[rune]int, len(a))
	pos := 0
	for _, r := range a {
		if first, ok := seen[r]; ok {
			return fmt.Errorf("%w %q at positions %d and %d", ErrDuplicate, r, first, pos)
		}
		seen[r] = pos
		pos++
	}
	return nil
}

// Size returns the number of characters in a.
func Size(a string) int {
	return utf8.RuneCountInString(a)
}

// Lookup returns the catalog alphabet registered under name.
// Names are matched case-insensitively.
func Lookup(name string) (string, bool) {
	a, ok := catalog[strings.ToLower(strings.TrimSpace(name))]
	return a, ok
}

// Resolve returns the catalog alphabet for s if s names one, otherwise s itself.
func Resolve(s string) string {
	if a, ok := Lookup(s); ok {
		return a
	}
	return s
}

// Names returns the catalog names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Ascending reports whether the characters of a are in strictly increasing
// code point order. Encodings in such alphabets sort as plain strings.
func Ascending(a string) bool {
	prev := rune(-1)
	for _, r := range a {
		if r <= prev {
			return false
		}
		prev = r
	}
	return true
}
