package app

// RSSIRing keeps the last strengths seen for the tracked access point. It is
// discarded when tracking stops.
type RSSIRing struct {
	buf   []float64
	pos   int
	count int
}

func NewRSSIRing(capacity int) *RSSIRing {
	if capacity < 1 {
		capacity = 1
	}
	return &RSSIRing{buf: make([]float64, capacity)}
}

// Push records a strength in dBm, overwriting the oldest when full.
func (r *RSSIRing) Push(strength int) {
	r.buf[r.pos] = float64(strength)
	r.pos = (r.pos + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// Values returns the stored strengths oldest first.
func (r *RSSIRing) Values() []float64 {
	if r.count == 0 {
		return nil
	}
	out := make([]float64, r.count)
	if r.count < len(r.buf) {
		copy(out, r.buf[:r.count])
		return out
	}
	n := copy(out, r.buf[r.pos:])
	copy(out[n:], r.buf[:r.pos])
	return out
}

// Last returns the newest strength and false when empty.
func (r *RSSIRing) Last() (int, bool) {
	if r.count == 0 {
		return 0, false
	}
	return int(r.buf[(r.pos-1+len(r.buf))%len(r.buf)]), true
}

func (r *RSSIRing) Len() int {
	return r.count
}

func (r *RSSIRing) Reset() {
	r.pos, r.count = 0, 0
}
