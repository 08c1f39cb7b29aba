package chainmap

import (
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// HashFunc maps a key to its hash. Keys that compare equal must hash equally.
type HashFunc[K any] func(K) uint64

// CompareFunc returns zero iff a and b are equal, following the cmp.Compare
// convention. Only the zero result is interpreted by the table, so any sign is
// fine for unequal keys.
type CompareFunc[K any] func(a, b K) int

// MakeComparableHash returns a hash function for comparable keys seeded with seed.
func MakeComparableHash[K comparable](seed maphash.Seed) HashFunc[K] {
	return func(k K) uint64 {
		return maphash.Comparable(seed, k)
	}
}

// HashString is an xxhash64 based HashFunc for string keys.
func HashString(s string) uint64 {
	return xxhash.Sum64String(s)
}

// HashBytes is an xxhash64 based HashFunc for byte slice keys.
func HashBytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}
