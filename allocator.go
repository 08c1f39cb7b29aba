package chainmap

import "bytes"

// Allocator owns the lifecycle of the blocks a table stores.
//
// Clone makes a copy the table will own, Free releases a block the table owns
// and Same reports whether two references denote the same block (not merely
// equal contents). Same is what keeps an update that re-stores a block from
// freeing it.
type Allocator[T any] interface {
	Clone(T) T
	Free(T)
	Same(a, b T) bool
}

type nopAllocator[T any] struct{}

func (nopAllocator[T]) Clone(v T) T { return v }

func (nopAllocator[T]) Free(T) {}

func (nopAllocator[T]) Same(_, _ T) bool { return false }

// Bytes is an Allocator for byte slices. Frees are left to the garbage
// collector; block identity is the backing array plus length and capacity.
type Bytes struct{}

func (Bytes) Clone(b []byte) []byte {
	if b == nil {
		return nil
	}

	return bytes.Clone(b)
}

func (Bytes) Free([]byte) {}

func (Bytes) Same(a, b []byte) bool {
	return sameSlice(a, b)
}
