package exporter

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from
// callers.
var (
	ErrEncode = errors.New("encode export failed")
	ErrWrite  = errors.New("write export failed")
)
