package intern

import "github.com/cespare/xxhash/v2"

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}

	return c
}

func hasUpper(s string) bool {
	for i := 0; i < len(s); i++ {
		if 'A' <= s[i] && s[i] <= 'Z' {
			return true
		}
	}

	return false
}

// foldHash hashes s as if it was ASCII lower case, without allocating a
// lowered copy.
func foldHash(s string) uint64 {
	if !hasUpper(s) {
		return xxhash.Sum64String(s)
	}

	var buf [64]byte
	d := xxhash.New()

	for len(s) > 0 {
		n := copy(buf[:], s)
		for i := range n {
			buf[i] = lower(buf[i])
		}

		_, _ = d.Write(buf[:n])
		s = s[n:]
	}

	return d.Sum64()
}

// foldCompare compares a and b ignoring ASCII case.
func foldCompare(a, b string) int {
	n := min(len(a), len(b))

	for i := range n {
		ca, cb := lower(a[i]), lower(b[i])
		if ca != cb {
			return int(ca) - int(cb)
		}
	}

	return len(a) - len(b)
}
