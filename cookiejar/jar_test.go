package cookiejar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homier/chainmap"
)

func newJar(t *testing.T, opts ...Option) *Jar {
	t.Helper()

	j, err := New(opts...)
	require.NoError(t, err)

	return j
}

func TestNew_InvalidCapacity(t *testing.T) {
	_, err := New(WithCapacity(0))
	require.ErrorIs(t, err, chainmap.ErrInvalidCapacity)
}

func TestJar_SetGet(t *testing.T) {
	j := newJar(t)

	expires := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	replaced, err := j.Set(Cookie{
		Name:     "sid",
		Value:    "abc",
		Domain:   ".Example.COM",
		Path:     "/app",
		Expires:  expires,
		Secure:   true,
		HTTPOnly: true,
		SameSite: SameSiteLax,
	})
	require.NoError(t, err)
	require.False(t, replaced)

	c, ok, err := j.Get("example.com", "/app", "sid")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Cookie{
		Name:     "sid",
		Value:    "abc",
		Domain:   "example.com",
		Path:     "/app",
		Expires:  expires,
		Secure:   true,
		HTTPOnly: true,
		SameSite: SameSiteLax,
	}, c)

	// Same triple, normalized differently.
	replaced, err = j.Set(Cookie{Name: "sid", Value: "def", Domain: "EXAMPLE.com.", Path: "/app"})
	require.NoError(t, err)
	require.True(t, replaced)
	require.Equal(t, 1, j.Len())

	c, ok, err = j.Get(".example.com", "/app", "sid")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "def", c.Value)
	assert.True(t, c.Expires.IsZero())

	_, ok, err = j.Get("example.com", "/", "sid")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestJar_SetErrors(t *testing.T) {
	j := newJar(t)

	_, err := j.Set(Cookie{Domain: "example.com"})
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = j.Set(Cookie{Name: "a", Domain: "..."})
	require.ErrorIs(t, err, ErrEmptyDomain)

	require.Zero(t, j.Len())
}

func TestJar_DefaultPath(t *testing.T) {
	j := newJar(t)

	_, err := j.Set(Cookie{Name: "a", Value: "1", Domain: "example.com"})
	require.NoError(t, err)

	c, ok, err := j.Get("example.com", "relative", "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "/", c.Path)
}

func TestJar_Delete(t *testing.T) {
	j := newJar(t)

	_, err := j.Set(Cookie{Name: "a", Domain: "example.com", Path: "/"})
	require.NoError(t, err)

	require.True(t, j.Delete("Example.com", "/", "a"))
	require.False(t, j.Delete("example.com", "/", "a"))
	require.Zero(t, j.Len())
}

func TestJar_Cookies(t *testing.T) {
	j := newJar(t, WithCapacity(2), WithGrowth(chainmap.Linear(4)))

	for _, c := range []Cookie{
		{Name: "root", Domain: "example.com", Path: "/"},
		{Name: "deep", Domain: "example.com", Path: "/a/b"},
		{Name: "host", Domain: "example.com", Path: "/", HostOnly: true},
		{Name: "sub", Domain: "www.example.com", Path: "/a"},
		{Name: "other", Domain: "example.org", Path: "/"},
		{Name: "tricky", Domain: "ample.com", Path: "/"},
	} {
		_, err := j.Set(c)
		require.NoError(t, err)
	}

	names := func(cs []Cookie) []string {
		out := make([]string, 0, len(cs))
		for _, c := range cs {
			out = append(out, c.Name)
		}
		return out
	}

	cs, err := j.Cookies("www.example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"deep", "sub", "root"}, names(cs))

	cs, err = j.Cookies("example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"deep", "host", "root"}, names(cs))

	cs, err = j.Cookies("nowhere.net")
	require.NoError(t, err)
	assert.Empty(t, cs)

	require.Greater(t, j.Stats().Capacity, 2)
}

func TestJar_Expire(t *testing.T) {
	j := newJar(t)
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	for _, c := range []Cookie{
		{Name: "session", Domain: "example.com"},
		{Name: "past", Domain: "example.com", Expires: now.Add(-time.Hour)},
		{Name: "now", Domain: "example.com", Expires: now},
		{Name: "future", Domain: "example.com", Expires: now.Add(time.Hour)},
	} {
		_, err := j.Set(c)
		require.NoError(t, err)
	}

	require.Equal(t, 2, j.Expire(now))
	require.Equal(t, 2, j.Len())

	for name, want := range map[string]bool{"session": true, "past": false, "now": false, "future": true} {
		_, ok, err := j.Get("example.com", "/", name)
		require.NoError(t, err)
		require.Equalf(t, want, ok, "cookie %q", name)
	}

	require.Zero(t, j.Expire(now))
}

func TestJar_Clear(t *testing.T) {
	j := newJar(t)

	for _, name := range []string{"a", "b", "c"} {
		_, err := j.Set(Cookie{Name: name, Domain: "example.com"})
		require.NoError(t, err)
	}

	capacity := j.Stats().Capacity
	j.Clear()

	require.Zero(t, j.Len())
	require.Equal(t, capacity, j.Stats().Capacity)

	_, ok, err := j.Get("example.com", "/", "a")
	require.NoError(t, err)
	require.False(t, ok)
}
