package spotify

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from
// callers.
var (
	ErrAPIRequest = errors.New("spotify api request failed")
	ErrAPIStatus  = errors.New("spotify api returned non-200 status")
	ErrAPIDecode  = errors.New("spotify api response decode failed")
)
