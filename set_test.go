package chainmap

import (
	"bytes"
	"cmp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStringSet(t *testing.T, capacity int) *Set[string] {
	t.Helper()

	s, err := NewSet(capacity, Geometric(2), HashString, cmp.Compare[string])
	require.NoError(t, err)

	return s
}

func Test_NewSet(t *testing.T) {
	s := newStringSet(t, 64)

	require.Len(t, s.t.buckets, 64)
	require.Zero(t, s.Len())

	_, err := NewSet[string](0, Fixed, HashString, cmp.Compare[string])
	require.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestSet_Add(t *testing.T) {
	s := newStringSet(t, 8)

	require.False(t, s.Add("charset"))
	require.True(t, s.Add("charset"))
	require.Equal(t, 1, s.Len())

	require.True(t, s.Has("charset"))
	require.False(t, s.Has("boundary"))

	for e := s.t.buckets[HashString("charset")%8]; e != nil; e = e.next {
		require.Equal(t, Identity, e.mode)
	}
}

func TestSet_Lookup(t *testing.T) {
	s, err := NewSet(8, Geometric(2), HashBytes, bytes.Compare,
		WithKeyAllocator[[]byte, []byte](Bytes{}),
	)
	require.NoError(t, err)

	name := []byte("filename")
	require.False(t, s.AddCopy(name))

	got, ok := s.Lookup([]byte("filename"))
	require.True(t, ok)
	assert.Equal(t, name, got)
	assert.False(t, sameSlice(name, got), "AddCopy must store its own copy")

	// Lookup returns the canonical member every time.
	again, ok := s.Lookup([]byte("filename"))
	require.True(t, ok)
	assert.True(t, sameSlice(got, again))

	_, ok = s.Lookup([]byte("name"))
	assert.False(t, ok)
}

func TestSet_AddReplacesMember(t *testing.T) {
	alloc := newTrackingAllocator(t)
	s, err := NewSet(8, Geometric(2),
		func(b *block) uint64 { return uint64(b.id) },
		func(x, y *block) int { return cmp.Compare(x.id, y.id) },
		WithKeyAllocator[*block, *block](alloc),
		WithValueAllocator[*block, *block](alloc),
	)
	require.NoError(t, err)

	first, second := alloc.alloc(3), alloc.alloc(3)
	require.False(t, s.Add(first))
	require.True(t, s.Add(second))

	got, ok := s.Lookup(&block{id: 3})
	require.True(t, ok)
	require.Same(t, second, got)
	require.True(t, first.freed)
	require.False(t, second.freed)
}

func TestSet_Delete(t *testing.T) {
	alloc := newTrackingAllocator(t)
	s, err := NewSet(4, Geometric(2),
		func(b *block) uint64 { return uint64(b.id) },
		func(x, y *block) int { return cmp.Compare(x.id, y.id) },
		WithKeyAllocator[*block, *block](alloc),
		WithValueAllocator[*block, *block](alloc),
	)
	require.NoError(t, err)

	blocks := make([]*block, 0, 10)
	for i := range 10 {
		b := alloc.alloc(i)
		blocks = append(blocks, b)
		require.False(t, s.Add(b))
	}

	for i := 0; i < 10; i += 2 {
		require.True(t, s.Delete(&block{id: i}))
		require.True(t, blocks[i].freed)
	}
	require.False(t, s.Delete(&block{id: 0}))
	require.Equal(t, 5, s.Len())
	require.Equal(t, 5, alloc.frees)

	s.Reset()
	require.Zero(t, s.Len())
	require.Equal(t, alloc.allocs, alloc.frees)
}

func TestSet_Browse(t *testing.T) {
	s := newStringSet(t, 4)

	names := []string{"q", "level", "charset", "boundary", "filename"}
	for _, n := range names {
		s.Add(n)
	}

	var seen []string
	require.Zero(t, s.Browse(func(k string) int {
		seen = append(seen, k)
		return 0
	}))
	require.ElementsMatch(t, names, seen)

	require.Equal(t, 1, s.Browse(func(string) int { return 1 }))
	require.Equal(t, len(names), s.Stats().Size)
}
