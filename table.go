package chainmap

import (
	"fmt"
	"math"
)

// DefaultLoadFactor is the load factor a table starts with.
const DefaultLoadFactor = 0.75

// Table is a hash table with separate chaining and pluggable hash and compare
// functions. Every entry tracks who owns its key and value, so the table frees
// exactly what it owns, once.
//
// A Table is not safe for concurrent use. A resize replaces the bucket slice,
// so even concurrent readers must be serialized against writers.
type Table[K, V any] struct {
	buckets []*entry[K, V]

	capacity   int
	size       int
	threshold  int
	loadFactor float64
	growth     Growth
	resizes    int

	hashFunc    HashFunc[K]
	compareFunc CompareFunc[K]

	keys   Allocator[K]
	values Allocator[V]
}

type Option[K, V any] func(t *Table[K, V])

// Override the default load factor. New fails if the factor is invalid.
func WithLoadFactor[K, V any](f float64) Option[K, V] {
	return func(t *Table[K, V]) {
		t.loadFactor = f
	}
}

// Set the allocator that clones and frees keys.
func WithKeyAllocator[K, V any](a Allocator[K]) Option[K, V] {
	return func(t *Table[K, V]) {
		t.keys = a
	}
}

// Set the allocator that clones and frees values.
func WithValueAllocator[K, V any](a Allocator[V]) Option[K, V] {
	return func(t *Table[K, V]) {
		t.values = a
	}
}

// New returns a table with capacity buckets.
// The growth policy decides how capacity changes once the load factor is
// crossed, hash places keys into buckets and compare decides key equality.
func New[K, V any](
	capacity int,
	growth Growth,
	hash HashFunc[K],
	compare CompareFunc[K],
	opts ...Option[K, V],
) (*Table[K, V], error) {
	var t Table[K, V]
	if err := t.init(capacity, growth, hash, compare, opts...); err != nil {
		return nil, err
	}

	return &t, nil
}

func (t *Table[K, V]) init(
	capacity int,
	growth Growth,
	hash HashFunc[K],
	compare CompareFunc[K],
	opts ...Option[K, V],
) error {
	switch {
	case capacity <= 0 || capacity > MaxCapacity:
		return fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	case hash == nil:
		return ErrNilHashFunc
	case compare == nil:
		return ErrNilCompareFunc
	}

	t.growth = growth
	t.hashFunc = hash
	t.compareFunc = compare
	t.loadFactor = DefaultLoadFactor
	t.keys = nopAllocator[K]{}
	t.values = nopAllocator[V]{}

	for _, opt := range opts {
		opt(t)
	}

	if !validLoadFactor(t.loadFactor) {
		return fmt.Errorf("%w: got %v", ErrInvalidLoadFactor, t.loadFactor)
	}

	if t.keys == nil {
		t.keys = nopAllocator[K]{}
	}

	if t.values == nil {
		t.values = nopAllocator[V]{}
	}

	t.buckets = make([]*entry[K, V], capacity)
	t.capacity = capacity
	t.threshold = thresholdOf(capacity, t.loadFactor)

	return nil
}

// Size returns the number of live entries.
func (t *Table[K, V]) Size() int {
	return t.size
}

// Capacity returns the number of buckets.
func (t *Table[K, V]) Capacity() int {
	return t.capacity
}

func (t *Table[K, V]) LoadFactor() float64 {
	return t.loadFactor
}

func (t *Table[K, V]) Growth() Growth {
	return t.growth
}

// SetHashFunc replaces the hash function and rehashes every entry at the
// current capacity. This costs O(n): every placement depends on the hash.
func (t *Table[K, V]) SetHashFunc(hash HashFunc[K]) error {
	t.mustLive()

	if hash == nil {
		return ErrNilHashFunc
	}

	t.hashFunc = hash
	t.rehash(t.capacity)

	return nil
}

// SetCompareFunc replaces the compare function. Placement is unaffected.
func (t *Table[K, V]) SetCompareFunc(compare CompareFunc[K]) error {
	t.mustLive()

	if compare == nil {
		return ErrNilCompareFunc
	}

	t.compareFunc = compare

	return nil
}

// SetLoadFactor updates the threshold. The table is not resized here,
// the next insertion applies the new threshold.
// Factors of 1 or more are accepted and let chains grow past one entry per
// bucket on average before the table grows.
func (t *Table[K, V]) SetLoadFactor(f float64) error {
	t.mustLive()

	if !validLoadFactor(f) {
		return fmt.Errorf("%w: got %v", ErrInvalidLoadFactor, f)
	}

	t.loadFactor = f
	t.threshold = thresholdOf(t.capacity, f)

	return nil
}

// rehash moves every entry into a fresh bucket slice of newCapacity buckets.
// Entries are re-hashed with the current hash function, never with the cached
// value, because SetHashFunc relies on this to re-place them.
func (t *Table[K, V]) rehash(newCapacity int) {
	buckets := make([]*entry[K, V], newCapacity)

	if t.size > 0 {
		remaining := t.size
		for i := 0; i < len(t.buckets) && remaining > 0; i++ {
			for e := t.buckets[i]; e != nil; {
				next := e.next

				e.hash = t.hashFunc(e.key)
				pos := e.hash % uint64(newCapacity)
				e.next = buckets[pos]
				buckets[pos] = e

				remaining--
				e = next
			}
		}
	}

	t.buckets = buckets
	t.capacity = newCapacity
	t.threshold = thresholdOf(newCapacity, t.loadFactor)
	t.resizes++
}

// grow is called after an insertion pushed size to the threshold.
func (t *Table[K, V]) grow() {
	if next := t.growth.Next(t.capacity); next > t.capacity {
		t.rehash(next)
	}
}

func (t *Table[K, V]) mustLive() {
	if t.buckets == nil {
		panic(ErrDestroyed)
	}
}

func thresholdOf(capacity int, loadFactor float64) int {
	th := math.Floor(float64(capacity) * loadFactor)
	if th >= math.MaxInt {
		return math.MaxInt
	}

	return int(th)
}

func validLoadFactor(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}
