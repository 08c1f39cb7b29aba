package chainmap

import (
	"hash/maphash"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"
)

func TestMakeComparableHash(t *testing.T) {
	v := "foo"
	s := maphash.MakeSeed()

	h1 := MakeComparableHash[string](s)(v)
	h2 := maphash.Comparable(s, v)

	require.Equal(t, h2, h1)
}

func TestHashString(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "Empty", input: ""},
		{name: "Short", input: "foo"},
		{name: "Cookie key", input: "example.com\x00/\x00sid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, xxhash.Sum64String(tt.input), HashString(tt.input))
			require.Equal(t, HashString(tt.input), HashBytes([]byte(tt.input)))
		})
	}
}
