package chainmap

import "iter"

// Put stores value under key and hands ownership of both to the table.
// Returns true if an existing key was updated, false if the key is new.
//
// On update only references that actually change are freed, so re-storing a
// block the table already holds is safe. A key that is also its own value is
// stored as an identity entry and freed once.
func (t *Table[K, V]) Put(key K, value V) bool {
	return t.put(key, value, Owned)
}

// PutCopy stores copies of key and value made by the table's allocators.
// The caller keeps its originals.
func (t *Table[K, V]) PutCopy(key K, value V) bool {
	return t.put(t.keys.Clone(key), t.values.Clone(value), Owned)
}

// PutBorrowed stores key and value without taking ownership.
// The table never frees them, not even on Remove or Clear.
func (t *Table[K, V]) PutBorrowed(key K, value V) bool {
	return t.put(key, value, Borrowed)
}

// PutIdentity stores key as its own value and takes ownership of it.
// The block is freed once when the entry goes away.
func PutIdentity[K any](t *Table[K, K], key K) bool {
	return t.put(key, key, Identity)
}

// PutIdentityCopy clones key once and stores the clone as its own value.
func PutIdentityCopy[K any](t *Table[K, K], key K) bool {
	c := t.keys.Clone(key)

	return t.put(c, c, Identity)
}

func (t *Table[K, V]) put(key K, value V, mode Ownership) bool {
	t.mustLive()

	if mode == Owned && t.aliased(key, value) {
		mode = Identity
	}

	hash := t.hashFunc(key)
	pos := hash % uint64(t.capacity)

	if e := t.find(key, hash, pos); e != nil {
		t.replace(e, key, value, mode)
		return true
	}

	t.buckets[pos] = &entry[K, V]{
		key:   key,
		value: value,
		hash:  hash,
		mode:  mode,
		next:  t.buckets[pos],
	}
	t.size++

	if t.size >= t.threshold {
		t.grow()
	}

	return false
}

// aliased reports whether key and value are the same block.
func (t *Table[K, V]) aliased(key K, value V) bool {
	v, ok := any(value).(K)
	return ok && t.keys.Same(key, v)
}

// replace frees whatever e owns that the new references do not reuse.
// A new key may reuse the old value and the other way around.
func (t *Table[K, V]) replace(e *entry[K, V], key K, value V, mode Ownership) {
	switch e.mode {
	case Identity:
		// One block, seen through both the key and the value.
		if !t.keepsKey(e.key, key, value) {
			t.keys.Free(e.key)
		}
	case Owned:
		if !t.keepsKey(e.key, key, value) {
			t.keys.Free(e.key)
		}

		if !t.keepsValue(e.value, key, value) {
			t.values.Free(e.value)
		}
	}

	e.key, e.value, e.mode = key, value, mode
}

func (t *Table[K, V]) keepsKey(old, key K, value V) bool {
	return t.keys.Same(old, key) || t.aliased(old, value)
}

func (t *Table[K, V]) keepsValue(old V, key K, value V) bool {
	if t.values.Same(old, value) {
		return true
	}

	k, ok := any(key).(V)
	return ok && t.values.Same(old, k)
}

func (t *Table[K, V]) find(key K, hash uint64, pos uint64) *entry[K, V] {
	for e := t.buckets[pos]; e != nil; e = e.next {
		if e.hash == hash && t.equal(key, e.key) {
			return e
		}
	}

	return nil
}

func (t *Table[K, V]) equal(a, b K) bool {
	return t.keys.Same(a, b) || t.compareFunc(a, b) == 0
}

// Get returns the value stored under key.
func (t *Table[K, V]) Get(key K) (V, bool) {
	t.mustLive()

	hash := t.hashFunc(key)
	if e := t.find(key, hash, hash%uint64(t.capacity)); e != nil {
		return e.value, true
	}

	var zero V
	return zero, false
}

// Contains reports whether key is present.
func (t *Table[K, V]) Contains(key K) bool {
	_, ok := t.Get(key)
	return ok
}

// Remove deletes key and frees whatever the entry owned.
// Returns false if the key was absent. The table never shrinks.
func (t *Table[K, V]) Remove(key K) bool {
	e := t.unlink(key)
	if e == nil {
		return false
	}

	e.release(t.keys, t.values)

	return true
}

// Detach deletes key without freeing anything and returns the stored key and
// value, whose ownership passes back to the caller.
func (t *Table[K, V]) Detach(key K) (K, V, bool) {
	e := t.unlink(key)
	if e == nil {
		var (
			zk K
			zv V
		)
		return zk, zv, false
	}

	return e.key, e.value, true
}

func (t *Table[K, V]) unlink(key K) *entry[K, V] {
	t.mustLive()

	hash := t.hashFunc(key)
	pos := hash % uint64(t.capacity)

	var prev *entry[K, V]
	for e := t.buckets[pos]; e != nil; prev, e = e, e.next {
		if e.hash != hash || !t.equal(key, e.key) {
			continue
		}

		if prev == nil {
			t.buckets[pos] = e.next
		} else {
			prev.next = e.next
		}

		e.next = nil
		t.size--

		return e
	}

	return nil
}

// Clear frees every entry and keeps the buckets for reuse.
func (t *Table[K, V]) Clear() {
	t.mustLive()
	t.clear()
}

func (t *Table[K, V]) clear() {
	remaining := t.size

	for i := 0; i < len(t.buckets) && remaining > 0; i++ {
		for e := t.buckets[i]; e != nil; {
			next := e.next
			e.release(t.keys, t.values)
			e = next
			remaining--
		}

		t.buckets[i] = nil
	}

	t.size = 0
}

// Destroy clears the table and drops its buckets.
// Destroying twice is a no-op. Later puts, lookups, removals, Clear, Browse
// and the setters panic with ErrDestroyed; Size, Capacity and Stats report an
// empty table.
func (t *Table[K, V]) Destroy() {
	if t.buckets == nil {
		return
	}

	t.clear()
	t.buckets = nil
	t.capacity = 0
	t.threshold = 0
}

// Browse calls fn for every entry, in bucket order and most recent first
// within a bucket. It stops at the first nonzero result and returns it,
// or returns 0 once every entry was visited.
// fn must not modify the table.
func (t *Table[K, V]) Browse(fn func(key K, value V) int) int {
	t.mustLive()

	remaining := t.size

	for i := 0; i < len(t.buckets) && remaining > 0; i++ {
		for e := t.buckets[i]; e != nil; e = e.next {
			if ret := fn(e.key, e.value); ret != 0 {
				return ret
			}

			remaining--
		}
	}

	return 0
}

// All returns an iterator over the entries in Browse order.
// The table must not be modified while iterating.
func (t *Table[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		t.Browse(func(k K, v V) int {
			if !yield(k, v) {
				return 1
			}

			return 0
		})
	}
}
