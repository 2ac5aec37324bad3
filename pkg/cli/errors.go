package cli

import "errors"

// Common CLI errors
var (
	ErrInvalidIDs = errors.New("one or more identifiers do not match the configured shape")
	ErrDuplicates = errors.New("duplicate identifiers generated")
)
