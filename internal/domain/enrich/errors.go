package enrich

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from
// callers.
var (
	// ErrTimestampParse marks a play whose timestamp is not a valid
	// RFC 3339 instant.
	ErrTimestampParse = errors.New("timestamp parse failed")
)
