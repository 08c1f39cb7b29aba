package chainmap

// Ownership describes who releases the key and value of an entry.
type Ownership uint8

const (
	// Owned entries have their key and value released independently by the table.
	Owned Ownership = iota
	// Borrowed entries are never released by the table, the caller keeps them.
	Borrowed
	// Identity entries share a single block between key and value.
	// The block is released once, through the key allocator.
	Identity
)

func (o Ownership) String() string {
	switch o {
	case Owned:
		return "owned"
	case Borrowed:
		return "borrowed"
	case Identity:
		return "identity"
	}

	return "unknown"
}

type entry[K, V any] struct {
	key   K
	value V

	// Hash of the key under the hash function the entry was last placed with.
	// Compared before the compare function to skip most mismatches cheaply.
	hash uint64
	mode Ownership

	// Owned exclusively by this entry: chains never share a tail.
	next *entry[K, V]
}

// release frees whatever the entry owns and drops its references.
func (e *entry[K, V]) release(keys Allocator[K], values Allocator[V]) {
	switch e.mode {
	case Owned:
		keys.Free(e.key)
		values.Free(e.value)
	case Identity:
		keys.Free(e.key)
	}

	var (
		zk K
		zv V
	)
	e.key, e.value, e.next = zk, zv, nil
}
