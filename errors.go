package chainmap

import "errors"

var (
	ErrInvalidCapacity   = errors.New("chainmap: capacity must be positive")
	ErrInvalidLoadFactor = errors.New("chainmap: load factor must be a finite positive number")
	ErrNilHashFunc       = errors.New("chainmap: hash function is nil")
	ErrNilCompareFunc    = errors.New("chainmap: compare function is nil")

	// Raised as a panic value when a destroyed table is used.
	ErrDestroyed = errors.New("chainmap: table used after Destroy")
)
