package chainmap

import (
	"fmt"
	"math"
)

// MaxCapacity is the largest number of buckets a table grows to.
// Growth saturates here instead of overflowing.
const MaxCapacity = 1 << 30

type growthKind uint8

const (
	growthFixed growthKind = iota
	growthLinear
	growthGeometric
)

// Growth computes the next capacity once a table crosses its threshold.
// The zero value is Fixed.
type Growth struct {
	kind growthKind
	n    int
}

// Fixed never grows the table. Chains get longer instead.
var Fixed = Growth{}

// Linear adds n buckets on each resize.
// A non-positive n yields no net increase and behaves exactly like Fixed.
func Linear(n int) Growth {
	return Growth{kind: growthLinear, n: n}
}

// Geometric multiplies the number of buckets by k on each resize.
// A factor of 1 or less yields no net increase and behaves exactly like Fixed.
func Geometric(k int) Growth {
	return Growth{kind: growthGeometric, n: k}
}

// Grows reports whether the policy can ever increase capacity.
func (g Growth) Grows() bool {
	switch g.kind {
	case growthLinear:
		return g.n > 0
	case growthGeometric:
		return g.n > 1
	}

	return false
}

// Next returns the capacity following the given one.
// The result is never smaller than capacity and never above MaxCapacity,
// unless capacity itself already is.
func (g Growth) Next(capacity int) int {
	if !g.Grows() || capacity >= MaxCapacity {
		return capacity
	}

	var next int
	switch g.kind {
	case growthLinear:
		next = capacity + g.n
		if next < capacity {
			next = math.MaxInt
		}
	case growthGeometric:
		if capacity > math.MaxInt/g.n {
			next = math.MaxInt
		} else {
			next = capacity * g.n
		}
	}

	return min(next, MaxCapacity)
}

func (g Growth) String() string {
	switch g.kind {
	case growthLinear:
		return fmt.Sprintf("linear(%d)", g.n)
	case growthGeometric:
		return fmt.Sprintf("geometric(%d)", g.n)
	}

	return "fixed"
}
