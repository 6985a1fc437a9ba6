package stats

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from
// callers.
var (
	// ErrNoEvents rejects an empty event table: the date range of zero
	// events is undefined, so callers must validate input first.
	ErrNoEvents = errors.New("no events to analyze")
)
