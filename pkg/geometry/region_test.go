package geometry

import (
	"errors"
	"testing"
)

// u is shorthand for an undefined integer component in the tests below.
var u = Undef[int]()

func roi(offset, shape Coordinate) Roi { return NewRegion(offset, shape) }

func assertRoi[T Scalar](t *testing.T, name string, got, want Region[T]) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s: expected %v (offset %v, shape %v), got %v (offset %v, shape %v)",
			name, want, want.Offset(), want.Shape(), got, got.Offset(), got.Shape())
	}
}

// TestRoiSqueeze verifies removing a dimension from a region
func TestRoiSqueeze(t *testing.T) {
	r := roi(C(1, 2, 3), C(4, 5, 6))
	if r.Dims() != 3 {
		t.Errorf("Expected 3 dims, got %d", r.Dims())
	}
	r = r.Squeeze(1)
	if r.Dims() != 2 {
		t.Errorf("Expected 2 dims, got %d", r.Dims())
	}
	assertRoi(t, "squeeze", r, roi(C(1, 3), C(4, 6)))
}

// TestRoiShape walks a region through bounded, unbounded and empty states
func TestRoiShape(t *testing.T) {
	r := roi(C(0), C(1))
	if size, ok := r.Size().Get(); !ok || size != 1 {
		t.Errorf("Expected size 1, got %v", r.Size())
	}
	if r.Empty() || r.Unbounded() {
		t.Errorf("Expected bounded non-empty region, got %v", r)
	}

	r = roi(C(0), C(0))
	if size, ok := r.Size().Get(); !ok || size != 0 {
		t.Errorf("Expected size 0, got %v", r.Size())
	}
	if !r.Empty() || r.Unbounded() {
		t.Errorf("Expected bounded empty region, got %v", r)
	}

	// unbounded ROI
	r = roi(C(0), NewCoord(u))
	if r.Size().Defined() {
		t.Errorf("Expected undefined size, got %v", r.Size())
	}
	if r.Empty() || !r.Unbounded() {
		t.Errorf("Expected unbounded non-empty region, got %v", r)
	}
	assertCoord(t, "unbounded offset", r.Offset(), NewCoord(u))
	assertCoord(t, "unbounded end", r.End(), NewCoord(u))
	r = r.WithOffset(C(1))
	assertCoord(t, "offset ignored", r.Offset(), NewCoord(u))
	assertCoord(t, "shape kept", r.Shape(), NewCoord(u))

	// bounded ROI without offset
	r = r.WithShape(C(3))
	assertCoord(t, "no offset", r.Offset(), NewCoord(u))
	assertCoord(t, "no end", r.End(), NewCoord(u))
	assertCoord(t, "shape", r.Shape(), C(3))

	// regular ROI
	r = r.WithOffset(C(1))
	assertCoord(t, "offset", r.Offset(), C(1))
	assertCoord(t, "end", r.End(), C(4))
	if size, _ := r.Size().Get(); size != 3 {
		t.Errorf("Expected size 3, got %v", r.Size())
	}

	// back to unbounded
	r = r.WithShape(Unbounded[int](1))
	if r.Dims() != 1 {
		t.Errorf("Expected 1 dim, got %d", r.Dims())
	}
	assertCoord(t, "offset dropped", r.Offset(), NewCoord(u))
	if r.Size().Defined() {
		t.Errorf("Expected undefined size, got %v", r.Size())
	}

	expectPanic(t, "offset dimension 2 != shape dimension 1", func() { roi(C(1, 2), C(1)) })
}

// TestRoiEmptyWithOffset verifies that an empty region keeps its offset
// unless the shape is undefined
func TestRoiEmptyWithOffset(t *testing.T) {
	r := roi(C(1, 2, 3), NewCoord(Def(0), Def(5), u))
	assertCoord(t, "consolidated offset", r.Offset(), NewCoord(Def(1), Def(2), u))
	if !r.Empty() || !r.Unbounded() {
		t.Errorf("Expected empty and unbounded region, got %v", r)
	}

	assertCoord(t, "empty begin", roi(C(1, 2, 3), C(0, 0, 0)).Begin(), C(1, 2, 3))

	outer := roi(C(0, 0, 0), C(10, 10, 10))
	if !outer.ContainsRegion(roi(C(5, 5, 5), C(0, 0, 0))) {
		t.Error("Expected region to contain empty region at (5, 5, 5)")
	}
	if outer.ContainsRegion(roi(C(-1, 5, 5), C(0, 0, 0))) {
		t.Error("Expected region not to contain empty region at (-1, 5, 5)")
	}
	if !EmptyRegion[int](3).ContainsRegion(EmptyRegion[int](3)) {
		t.Error("Expected empty region to contain empty region")
	}
}

// TestRoiOperators checks containment, intersection and union
func TestRoiOperators(t *testing.T) {
	a := roi(C(0, 0, 0), C(100, 100, 100))
	b := roi(C(50, 50, 50), C(100, 100, 100))

	if a.Equal(b) {
		t.Error("Expected a != b")
	}
	if !a.Intersects(b) || !b.Intersects(a) {
		t.Error("Expected a and b to intersect")
	}
	if !a.Intersects(UnboundedRegion[int](3)) {
		t.Error("Expected a to intersect the unbounded region")
	}
	if !a.Intersects(roi(C(0, 0, 0), C(1, 1, 1))) {
		t.Error("Expected a to intersect a unit region")
	}
	if a.Intersects(roi(C(0, 0, 0), C(0, 0, 0))) {
		t.Error("Expected a not to intersect an empty region")
	}
	if !a.Intersect(roi(C(100, 100, 100), C(1, 1, 1))).Empty() {
		t.Error("Expected touching regions to have an empty intersection")
	}
	assertRoi(t, "disjoint", a.Intersect(roi(C(200, 0, 0), C(1, 1, 1))), EmptyRegion[int](3))

	assertCoord(t, "center a", a.Center(), C(50, 50, 50))
	assertCoord(t, "center b", b.Center(), C(100, 100, 100))

	assertRoi(t, "a&b", a.Intersect(b), roi(C(50, 50, 50), C(50, 50, 50)))
	assertRoi(t, "b&a", b.Intersect(a), roi(C(50, 50, 50), C(50, 50, 50)))
	assertRoi(t, "a|b", a.Union(b), roi(C(0, 0, 0), C(150, 150, 150)))
	assertRoi(t, "b|a", b.Union(a), roi(C(0, 0, 0), C(150, 150, 150)))

	c := roi(C(25, 25, 25), C(50, 50, 50))
	if !a.ContainsRegion(c) {
		t.Error("Expected a to contain c")
	}
	if !a.Contains(c.Center()) {
		t.Error("Expected a to contain the center of c")
	}
	if b.ContainsRegion(c) {
		t.Error("Expected b not to contain c")
	}

	a = roi(NewCoord(Def(0), u, Def(0)), NewCoord(Def(100), u, Def(100)))
	b = roi(C(50, 50, 50), C(100, 100, 100))

	assertRoi(t, "a&b unbounded", a.Intersect(b), roi(C(50, 50, 50), C(50, 100, 50)))
	assertRoi(t, "b&a unbounded", b.Intersect(a), roi(C(50, 50, 50), C(50, 100, 50)))
	union := roi(NewCoord(Def(0), u, Def(0)), NewCoord(Def(150), u, Def(150)))
	assertRoi(t, "a|b unbounded", a.Union(b), union)
	assertRoi(t, "b|a unbounded", b.Union(a), union)

	if !a.ContainsRegion(c) {
		t.Error("Expected unbounded a to contain c")
	}
	if b.ContainsRegion(c) {
		t.Error("Expected b not to contain c")
	}
	if !a.ContainsRegion(roi(C(0, 0, 0), C(0, 0, 0))) {
		t.Error("Expected a to contain the empty region at the origin")
	}
	if a.ContainsRegion(UnboundedRegion[int](3)) {
		t.Error("Expected a not to contain the unbounded region")
	}

	expectPanic(t, "cannot intersect", func() { a.Intersects(roi(C(0), C(1))) })
	expectPanic(t, "cannot unite", func() { a.Union(roi(C(0), C(1))) })
	expectPanic(t, "cannot unite", func() { a.Union(EmptyRegion[int](2)) })
	expectPanic(t, "cannot unite", func() { EmptyRegion[int](2).Union(a) })
}

// TestRoiContains checks coordinate containment on bounded and unbounded
// axes
func TestRoiContains(t *testing.T) {
	r := roi(NewCoord(Def(0), u), NewCoord(Def(10), u))
	tests := []struct {
		c    Coordinate
		want bool
	}{
		{C(0, -1000), true},
		{C(9, 1000), true},
		{C(10, 0), false},
		{C(-1, 0), false},
		{NewCoord(Def(5), u), true},
		{NewCoord(u, Def(5)), false},
		{C(5), false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.c); got != tt.want {
			t.Errorf("Expected Contains(%v) = %v, got %v", tt.c, tt.want, got)
		}
	}
}

// TestRoiGrow checks growing and shrinking a partially unbounded region
func TestRoiGrow(t *testing.T) {
	a := roi(NewCoord(Def(0), u, Def(0)), NewCoord(Def(100), u, Def(100)))

	assertRoi(t, "grow 1", a.Grow(C(1, 1, 1), C(1, 1, 1)),
		roi(NewCoord(Def(-1), u, Def(-1)), NewCoord(Def(102), u, Def(102))))
	assertRoi(t, "grow -1,-1", a.GrowScalar(-1, -1),
		roi(NewCoord(Def(1), u, Def(1)), NewCoord(Def(98), u, Def(98))))
	assertRoi(t, "grow -1,0", a.GrowScalar(-1, 0),
		roi(NewCoord(Def(1), u, Def(1)), NewCoord(Def(99), u, Def(99))))
	assertRoi(t, "grow pos -1", a.Grow(C(0, 0, 0), C(-1, -1, -1)),
		roi(NewCoord(Def(0), u, Def(0)), NewCoord(Def(99), u, Def(99))))
}

// TestRoiSnap checks the three snapping modes
func TestRoiSnap(t *testing.T) {
	a := roi(C(1), C(7))

	tests := []struct {
		voxel int
		mode  SnapMode
		want  Roi
	}{
		{2, SnapGrow, roi(C(0), C(8))},
		{2, SnapShrink, roi(C(2), C(6))},
		{2, SnapClosest, roi(C(0), C(8))},
		{3, SnapGrow, roi(C(0), C(9))},
		{3, SnapShrink, roi(C(3), C(3))},
		{3, SnapClosest, roi(C(0), C(9))},
	}

	for _, tt := range tests {
		got, err := a.SnapToGrid(C(tt.voxel), tt.mode)
		if err != nil {
			t.Fatalf("Failed to snap %v to %d (%s): %v", a, tt.voxel, tt.mode, err)
		}
		assertRoi(t, string(tt.mode), got, tt.want)
	}

	a = roi(NewCoord(Def(1), u), NewCoord(Def(7), u))
	got, err := a.SnapToGrid(C(2, 1), SnapGrow)
	if err != nil {
		t.Fatalf("Failed to snap unbounded region: %v", err)
	}
	assertRoi(t, "unbounded", got, roi(NewCoord(Def(0), u), NewCoord(Def(8), u)))

	if _, err := a.SnapToGrid(C(3, 1), SnapMode("doesntexist")); !errors.Is(err, ErrUnknownSnapMode) {
		t.Errorf("Expected ErrUnknownSnapMode, got %v", err)
	}
	if _, err := a.SnapToGrid(C(0, 1), SnapGrow); !errors.Is(err, ErrZeroVoxelSize) {
		t.Errorf("Expected ErrZeroVoxelSize, got %v", err)
	}

	r := roi(C(-20), C(2))
	shrunk, err := r.SnapToGrid(C(2), SnapShrink)
	if err != nil {
		t.Fatalf("Failed to shrink %v: %v", r, err)
	}
	if shrunk.Empty() {
		t.Errorf("Expected non-empty region, got %v (begin %v, end %v)", shrunk,
			r.Begin().CeilDivision(C(2)), r.End().FloorDivision(C(2)))
	}
}

// TestParseSnapMode verifies snap mode names
func TestParseSnapMode(t *testing.T) {
	for _, name := range []string{"grow", "shrink", "closest"} {
		m, err := ParseSnapMode(name)
		if err != nil || string(m) != name {
			t.Errorf("Expected mode %s, got %q (%v)", name, m, err)
		}
	}
	if _, err := ParseSnapMode("nearest"); !errors.Is(err, ErrUnknownSnapMode) {
		t.Errorf("Expected ErrUnknownSnapMode, got %v", err)
	}
}

// TestRoiArithmetic checks shifting and scaling
func TestRoiArithmetic(t *testing.T) {
	a := roi(NewCoord(Def(1), u), NewCoord(Def(7), u))

	assertRoi(t, "a+1", a.AddScalar(1), roi(NewCoord(Def(2), u), NewCoord(Def(7), u)))
	assertRoi(t, "a-1", a.SubScalar(1), roi(NewCoord(Def(0), u), NewCoord(Def(7), u)))
	assertRoi(t, "a*2", a.MulScalar(2), roi(NewCoord(Def(2), u), NewCoord(Def(14), u)))
	assertRoi(t, "a/2", a.DivScalar(2), roi(NewCoord(Def(0), u), NewCoord(Def(3), u)))
	assertRoi(t, "a//2", a.FloorDivScalar(2), roi(NewCoord(Def(0), u), NewCoord(Def(3), u)))
	assertRoi(t, "a%2", a.ModScalar(2), roi(NewCoord(Def(1), u), NewCoord(Def(1), u)))

	b := roi(C(1, 1, 1), C(10, 10, 10))
	assertRoi(t, "b*voxel", b.Mul(C(10, 5, 1)), roi(C(10, 5, 1), C(100, 50, 10)))
	assertRoi(t, "b+c", b.Add(C(1, 2, 3)), roi(C(2, 3, 4), C(10, 10, 10)))
	assertRoi(t, "b-c", b.Sub(C(1, 2, 3)), roi(C(0, -1, -2), C(10, 10, 10)))
	assertRoi(t, "shift", b.Shift(C(-1, -1, -1)), roi(C(0, 0, 0), C(10, 10, 10)))
}

// TestRoiAlgebra checks commutativity and associativity of the set
// operations
func TestRoiAlgebra(t *testing.T) {
	rois := []Roi{
		roi(C(0, 0, 0), C(100, 100, 100)),
		roi(C(50, 50, 50), C(100, 100, 100)),
		roi(C(25, -10, 30), C(60, 200, 40)),
		roi(NewCoord(Def(0), u, Def(0)), NewCoord(Def(100), u, Def(100))),
		UnboundedRegion[int](3),
		roi(C(500, 500, 500), C(1, 1, 1)),
		roi(C(5, 5, 5), C(0, 3, 3)),
	}

	for i, a := range rois {
		for j, b := range rois {
			if i == j {
				continue
			}
			assertRoi(t, "intersect commutes", a.Intersect(b), b.Intersect(a))
			if !(a.Empty() && b.Empty()) {
				assertRoi(t, "union commutes", a.Union(b), b.Union(a))
			}
		}
	}

	bounded := rois[:3]
	x, y, z := bounded[0], bounded[1], bounded[2]
	assertRoi(t, "intersect associates", x.Intersect(y).Intersect(z), x.Intersect(y.Intersect(z)))
	assertRoi(t, "union associates", x.Union(y).Union(z), x.Union(y.Union(z)))
}

// TestRoiCopy verifies copies are independent and equal
func TestRoiCopy(t *testing.T) {
	a := roi(C(1, 2), C(3, 4))
	b := a.Copy()
	assertRoi(t, "copy", b, a)
	b = b.Shift(C(1, 1))
	assertRoi(t, "original untouched", a, roi(C(1, 2), C(3, 4)))
}

// TestRoiToSlices verifies index ranges of a region
func TestRoiToSlices(t *testing.T) {
	r := roi(NewCoord(Def(1), u, Def(4)), NewCoord(Def(3), u, Def(0)))
	got := r.ToSlices()
	want := []string{"1:4", ":", ":0"}
	for d, s := range got {
		if s.String() != want[d] {
			t.Errorf("Expected slice %s on axis %d, got %s", want[d], d, s)
		}
	}
}

// TestRoiString verifies the text form of regions
func TestRoiString(t *testing.T) {
	tests := []struct {
		r    Roi
		want string
	}{
		{roi(C(1), C(7)), "[1:8] (7)"},
		{roi(NewCoord(Def(1), u), NewCoord(Def(7), u)), "[1:8, :] (7, inf)"},
		{roi(C(1, 2), C(0, 3)), "[empty ROI]"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("Expected %s, got %s", tt.want, got)
		}
	}
}

// TestFloatRoi checks float regions and the floor division center
func TestFloatRoi(t *testing.T) {
	a := NewRegion(FC(0.5, 0), FC(2.5, 3))
	b := NewRegion(FC(1, 1), FC(4, 4))

	assertRoi(t, "intersect", a.Intersect(b), NewRegion(FC(1, 1), FC(2, 2)))
	assertRoi(t, "union", a.Union(b), NewRegion(FC(0.5, 0), FC(4.5, 5)))
	assertCoord(t, "end", a.End(), FC(3, 3))

	// float regions floor the half shape, integer regions truncate it
	assertCoord(t, "float center", NewRegion(FC(0), FC(3)).Center(), FC(1))
	assertCoord(t, "int center", roi(C(0), C(3)).Center(), C(1))
	assertCoord(t, "float center negative", NewRegion(FC(0), FC(-3)).Center(), FC(-2))
	assertCoord(t, "int center negative", roi(C(0), C(-3)).Center(), C(-1))

	if size, _ := a.Size().Get(); size != 7.5 {
		t.Errorf("Expected size 7.5, got %v", a.Size())
	}

	snapped, err := a.SnapToGrid(FC(1, 1), SnapGrow)
	if err != nil {
		t.Fatalf("Failed to snap: %v", err)
	}
	assertRoi(t, "snap", snapped, NewRegion(FC(0, 0), FC(3, 3)))

	assertRoi(t, "convert", ConvertRegion[int](a), roi(C(0, 0), C(2, 3)))
}
