package geometry

// Slice is a half-open index range [Start, Stop) along one axis. An undefined
// Start means the beginning of the axis and an undefined Stop its end, so
// the zero Slice selects the whole axis.
type Slice struct {
	Start Value[int]
	Stop  Value[int]
}

// Bounds resolves s against an axis of length n. Negative indices count from
// the end of the axis; the result is clamped to [0, n] and hi is never less
// than lo.
func (s Slice) Bounds(n int) (lo, hi int) {
	lo, hi = 0, n
	if v, ok := s.Start.Get(); ok {
		lo = clampIndex(v, n)
	}
	if v, ok := s.Stop.Get(); ok {
		hi = clampIndex(v, n)
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// Len returns the number of indices s selects on an axis of length n.
func (s Slice) Len(n int) int {
	lo, hi := s.Bounds(n)
	return hi - lo
}

func clampIndex(i, n int) int {
	if i < 0 {
		i += n
	}
	return min(max(i, 0), n)
}

func (s Slice) String() string {
	var start, stop string
	if s.Start.Defined() {
		start = s.Start.String()
	}
	if s.Stop.Defined() {
		stop = s.Stop.String()
	}
	return start + ":" + stop
}
