package filter

// ring keeps the most recent lines up to its capacity.
type ring struct {
	lines []string
	idx   int
	count int
}

func newRing(size int) *ring {
	if size <= 0 {
		return &ring{}
	}
	return &ring{lines: make([]string, size)}
}

func (r *ring) push(line string) {
	size := len(r.lines)
	if size == 0 {
		return
	}
	r.lines[r.idx] = line
	r.idx = (r.idx + 1) % size
	if r.count < size {
		r.count++
	}
}

// drain returns the held lines oldest first and empties the ring.
func (r *ring) drain() []string {
	if r.count == 0 {
		return nil
	}
	size := len(r.lines)
	out := make([]string, r.count)
	start := (r.idx - r.count + size) % size
	for i := 0; i < r.count; i++ {
		out[i] = r.lines[(start+i)%size]
		r.lines[(start+i)%size] = ""
	}
	r.idx = 0
	r.count = 0
	return out
}
