package chainmap

// Stats is a snapshot of a table's shape.
type Stats struct {
	Size         int
	Capacity     int
	Threshold    int
	LoadFactor   float64
	EmptyBuckets int
	LongestChain int
	// Number of rehashes so far, growth and hash function swaps alike.
	Resizes      int
}

// Stats walks every bucket, so it costs O(capacity + size).
func (t *Table[K, V]) Stats() Stats {
	s := Stats{
		Size:       t.size,
		Capacity:   t.capacity,
		Threshold:  t.threshold,
		LoadFactor: t.loadFactor,
		Resizes:    t.resizes,
	}

	for _, head := range t.buckets {
		if head == nil {
			s.EmptyBuckets++
			continue
		}

		n := 0
		for e := head; e != nil; e = e.next {
			n++
		}

		s.LongestChain = max(s.LongestChain, n)
	}

	return s
}
