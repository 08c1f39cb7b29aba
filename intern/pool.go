// Package intern keeps one canonical copy of each HTTP header parameter name.
// Names compare case-insensitively, as header parameter names do.
package intern

import (
	"slices"
	"strings"

	"github.com/homier/chainmap"
)

// Pool is a set of interned names. It is not safe for concurrent use.
type Pool struct {
	names *chainmap.Set[string]
}

// New returns a pool sized to hold hint names before it grows.
func New(hint int) *Pool {
	return &Pool{names: newNameSet(hint)}
}

func newNameSet(hint int) *chainmap.Set[string] {
	capacity := chainmap.CapacityFor(hint, chainmap.DefaultLoadFactor)

	s, err := chainmap.NewSet(capacity, chainmap.Geometric(2), foldHash, foldCompare)
	if err != nil {
		// Capacity and functions above are always valid.
		panic(err)
	}

	return s
}

// Intern returns the canonical spelling of name, the first one seen.
// fresh is true if name was not in the pool yet.
func (p *Pool) Intern(name string) (canonical string, fresh bool) {
	if c, ok := p.names.Lookup(name); ok {
		return c, false
	}

	// Detach from whatever buffer the caller parsed name out of.
	c := strings.Clone(name)
	p.names.Add(c)

	return c, true
}

// Seen reports whether name was interned.
func (p *Pool) Seen(name string) bool {
	return p.names.Has(name)
}

func (p *Pool) Forget(name string) bool {
	return p.names.Delete(name)
}

func (p *Pool) Len() int {
	return p.names.Len()
}

// Names returns the canonical names, sorted.
func (p *Pool) Names() []string {
	out := make([]string, 0, p.names.Len())
	p.names.Browse(func(name string) int {
		out = append(out, name)
		return 0
	})

	slices.Sort(out)

	return out
}

func (p *Pool) Reset() {
	p.names.Reset()
}

// Unique checks a header's parameter names for repeats. It returns every name
// that occurs more than once, in the order the first repeat was seen.
func Unique(names []string) []string {
	seen := newNameSet(len(names))

	var (
		dups     []string
		reported *chainmap.Set[string]
	)

	for _, name := range names {
		if !seen.Add(name) {
			continue
		}

		if reported == nil {
			reported = newNameSet(1)
		}

		if !reported.Add(name) {
			dups = append(dups, name)
		}
	}

	return dups
}
