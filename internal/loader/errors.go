package loader

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from
// callers.
var (
	ErrDirNotFound = errors.New("history directory not found")
	ErrNoFiles     = errors.New("no history files found")
	ErrReadFile    = errors.New("read history file failed")
	ErrDecodeFile  = errors.New("decode history file failed")
)
