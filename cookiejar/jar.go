// Package cookiejar stores cookies in a chainmap table, keyed by their
// normalized (domain, path, name) triple. Each cookie is kept as an opaque
// attribute blob owned by the table.
package cookiejar

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/valyala/bytebufferpool"

	"github.com/homier/chainmap"
)

var (
	ErrEmptyName   = errors.New("cookiejar: cookie name is empty")
	ErrEmptyDomain = errors.New("cookiejar: cookie domain is empty")
	ErrCorruptBlob = errors.New("cookiejar: corrupt cookie blob")
)

const defaultCapacity = 64

// Jar is a cookie store. It is not safe for concurrent use.
type Jar struct {
	table *chainmap.Table[[]byte, []byte]

	capacity int
	growth   chainmap.Growth
}

type Option func(j *Jar)

// Initial number of buckets.
func WithCapacity(n int) Option {
	return func(j *Jar) {
		j.capacity = n
	}
}

// Growth policy of the underlying table.
func WithGrowth(g chainmap.Growth) Option {
	return func(j *Jar) {
		j.growth = g
	}
}

func New(opts ...Option) (*Jar, error) {
	j := &Jar{
		capacity: defaultCapacity,
		growth:   chainmap.Geometric(2),
	}

	for _, opt := range opts {
		opt(j)
	}

	t, err := chainmap.New(j.capacity, j.growth, chainmap.HashBytes, bytes.Compare,
		chainmap.WithKeyAllocator[[]byte, []byte](chainmap.Bytes{}),
		chainmap.WithValueAllocator[[]byte, []byte](chainmap.Bytes{}),
	)
	if err != nil {
		return nil, fmt.Errorf("cookiejar: %w", err)
	}

	j.table = t

	return j, nil
}

// Set stores c, replacing a cookie with the same domain, path and name.
// Domain and path are normalized before storing.
func (j *Jar) Set(c Cookie) (bool, error) {
	if c.Name == "" {
		return false, ErrEmptyName
	}

	c.Domain = normalizeDomain(c.Domain)
	if c.Domain == "" {
		return false, ErrEmptyDomain
	}
	c.Path = normalizePath(c.Path)

	key := bytebufferpool.Get()
	defer bytebufferpool.Put(key)
	blob := bytebufferpool.Get()
	defer bytebufferpool.Put(blob)

	key.B = appendKey(key.B, c.Domain, c.Path, c.Name)
	blob.B = appendBlob(blob.B, &c)

	// Both buffers go back to the pool, the table keeps its own copies.
	return j.table.PutCopy(key.B, blob.B), nil
}

// Get returns the cookie stored under the given domain, path and name.
func (j *Jar) Get(domain, path, name string) (Cookie, bool, error) {
	key := bytebufferpool.Get()
	defer bytebufferpool.Put(key)

	key.B = appendKey(key.B, normalizeDomain(domain), normalizePath(path), name)

	blob, ok := j.table.Get(key.B)
	if !ok {
		return Cookie{}, false, nil
	}

	c, err := decodeBlob(blob)
	if err != nil {
		return Cookie{}, false, err
	}

	return c, true, nil
}

// Delete removes a cookie. Returns false if there was none.
func (j *Jar) Delete(domain, path, name string) bool {
	key := bytebufferpool.Get()
	defer bytebufferpool.Put(key)

	key.B = appendKey(key.B, normalizeDomain(domain), normalizePath(path), name)

	return j.table.Remove(key.B)
}

func (j *Jar) Len() int {
	return j.table.Size()
}

// Cookies returns the cookies that domain-match host, longest path first.
func (j *Jar) Cookies(host string) ([]Cookie, error) {
	host = normalizeDomain(host)

	var (
		out []Cookie
		err error
	)

	j.table.Browse(func(_, blob []byte) int {
		var c Cookie
		if c, err = decodeBlob(blob); err != nil {
			return 1
		}

		if c.domainMatch(host) {
			out = append(out, c)
		}

		return 0
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(out, func(a, b Cookie) int {
		if n := len(b.Path) - len(a.Path); n != 0 {
			return n
		}

		return strings.Compare(a.Name, b.Name)
	})

	return out, nil
}

// Expire removes every cookie expired at now and returns how many went away.
// Blobs that fail to decode are removed as well.
func (j *Jar) Expire(now time.Time) int {
	var stale [][]byte

	// Collect first: the table must not change while it is browsed.
	j.table.Browse(func(key, blob []byte) int {
		c, err := decodeBlob(blob)
		if err != nil || c.Expired(now) {
			stale = append(stale, key)
		}

		return 0
	})

	for _, key := range stale {
		j.table.Remove(key)
	}

	return len(stale)
}

// Clear drops every cookie and keeps the allocated buckets.
func (j *Jar) Clear() {
	j.table.Clear()
}

func (j *Jar) Stats() chainmap.Stats {
	return j.table.Stats()
}

func appendKey(b []byte, domain, path, name string) []byte {
	b = append(b, domain...)
	b = append(b, 0)
	b = append(b, path...)
	b = append(b, 0)

	return append(b, name...)
}
