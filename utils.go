package chainmap

import "unsafe"

// Returns the smallest capacity that holds n entries at the given load factor
// without triggering a resize.
func CapacityFor(n int, loadFactor float64) int {
	if n < 0 || !validLoadFactor(loadFactor) {
		return 1
	}

	estimate := float64(n+1) / loadFactor
	if estimate >= MaxCapacity {
		return MaxCapacity
	}

	capacity := max(int(estimate), 1)
	for thresholdOf(capacity, loadFactor) <= n && capacity < MaxCapacity {
		capacity++
	}

	return min(capacity, MaxCapacity)
}

// Reports whether a and b are the same block of memory, not just equal bytes.
//
//go:nocheckptr
func sameSlice[T any](a, b []T) bool {
	return len(a) == len(b) && cap(a) == cap(b) &&
		unsafe.Pointer(unsafe.SliceData(a)) == unsafe.Pointer(unsafe.SliceData(b))
}
