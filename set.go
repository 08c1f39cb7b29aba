package chainmap

// Set is a set built on identity entries: every key is stored as its own
// value, so the table holds exactly one block per member.
// Unlike a plain map of struct{} values, Lookup hands back the stored member,
// which makes a Set usable for interning. Add replaces the stored member, so
// interning callers check Lookup before adding.
type Set[K any] struct {
	t Table[K, K]
}

// NewSet returns a set with capacity buckets. See New for the arguments.
func NewSet[K any](
	capacity int,
	growth Growth,
	hash HashFunc[K],
	compare CompareFunc[K],
	opts ...Option[K, K],
) (*Set[K], error) {
	var s Set[K]
	if err := s.t.init(capacity, growth, hash, compare, opts...); err != nil {
		return nil, err
	}

	return &s, nil
}

// Adds key to the set, taking ownership of it.
// Returns true if the key was already a member. An equal member stored
// earlier is then freed and key takes its place.
func (s *Set[K]) Add(key K) bool {
	return PutIdentity(&s.t, key)
}

// Adds a copy of key made by the key allocator.
// Returns true if the key was already a member.
func (s *Set[K]) AddCopy(key K) bool {
	return PutIdentityCopy(&s.t, key)
}

// Checks whether a key is in the set.
func (s *Set[K]) Has(key K) bool {
	return s.t.Contains(key)
}

// Returns the stored member equal to key.
func (s *Set[K]) Lookup(key K) (K, bool) {
	return s.t.Get(key)
}

// Removes key and frees the stored member.
func (s *Set[K]) Delete(key K) bool {
	return s.t.Remove(key)
}

func (s *Set[K]) Len() int {
	return s.t.Size()
}

// Browse calls fn for every member. See Table.Browse.
func (s *Set[K]) Browse(fn func(key K) int) int {
	return s.t.Browse(func(k, _ K) int {
		return fn(k)
	})
}

// Removes every member, keeping the capacity.
func (s *Set[K]) Reset() {
	s.t.Clear()
}

func (s *Set[K]) Stats() Stats {
	return s.t.Stats()
}
