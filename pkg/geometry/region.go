package geometry

import (
	"fmt"
	"log/slog"
	"strings"
)

// Region is a rectangular region of interest, defined by an offset and a
// shape of equal dimensions. Begin is the smallest coordinate inside the
// region and End the smallest coordinate beyond it on every axis.
//
// Special cases:
//
//   - An axis with an undefined shape is unbounded. Its offset is always
//     undefined, whatever offset was passed in.
//   - A region with a defined shape of zero or less on any axis is empty.
//     Empty regions keep their offset; the result of intersecting two
//     disjoint regions has an all undefined offset and an all zero shape.
//
// Arithmetic follows Coord: Add and Sub shift the offset, Mul, Div, FloorDiv
// and Mod scale offset and shape independently.
//
//	roi := geometry.NewRegion(geometry.C(1, 1, 1), geometry.C(10, 10, 10))
//	roi.Mul(geometry.C(10, 5, 1))                 // [10:110, 5:55, 1:11] (100, 50, 10)
//	roi.Mul(geometry.C(10, 5, 1)).AddScalar(1)    // [11:111, 6:56, 2:12] (100, 50, 10)
type Region[T Scalar] struct {
	offset Coord[T]
	shape  Coord[T]
}

// Roi is a region over integer coordinates.
type Roi = Region[int]

// FloatRoi is a region over float coordinates.
type FloatRoi = Region[float64]

// NewRegion returns the region with the given offset and shape. It panics if
// their dimensions differ.
func NewRegion[T Scalar](offset, shape Coord[T]) Region[T] {
	if offset.Dims() != shape.Dims() {
		panic(fmt.Sprintf("geometry: offset dimension %d != shape dimension %d", offset.Dims(), shape.Dims()))
	}
	o := make([]Value[T], len(offset.c))
	for i, s := range shape.c {
		if s.ok {
			o[i] = offset.c[i]
		}
	}
	return Region[T]{offset: Coord[T]{c: o}, shape: shape.clone()}
}

// EmptyRegion returns the canonical empty region: undefined offset and zero
// shape on every axis.
func EmptyRegion[T Scalar](dims int) Region[T] {
	return Region[T]{offset: Unbounded[T](dims), shape: Filled[T](dims, 0)}
}

// UnboundedRegion returns the region that is unbounded on every axis.
func UnboundedRegion[T Scalar](dims int) Region[T] {
	return Region[T]{offset: Unbounded[T](dims), shape: Unbounded[T](dims)}
}

// ConvertRegion changes the component type of r. Conversion to an integer
// type truncates offset and shape toward zero.
func ConvertRegion[U, T Scalar](r Region[T]) Region[U] {
	return NewRegion(Convert[U](r.offset), Convert[U](r.shape))
}

func (c Coord[T]) clone() Coord[T] {
	return Coord[T]{c: c.Values()}
}

// WithOffset returns a copy of r with a new offset.
func (r Region[T]) WithOffset(offset Coord[T]) Region[T] {
	return NewRegion(offset, r.shape)
}

// WithShape returns a copy of r with a new shape. The offset is kept on
// every axis the new shape bounds.
func (r Region[T]) WithShape(shape Coord[T]) Region[T] {
	return NewRegion(r.offset, shape)
}

// Offset returns the offset of r.
func (r Region[T]) Offset() Coord[T] { return r.offset }

// Shape returns the shape of r.
func (r Region[T]) Shape() Coord[T] { return r.shape }

// Begin returns the smallest coordinate inside r.
func (r Region[T]) Begin() Coord[T] { return r.offset }

// End returns the smallest coordinate that is larger than any coordinate
// inside r on every axis.
func (r Region[T]) End() Coord[T] { return r.offset.Add(r.shape) }

// Center returns the center of r. Integer regions truncate shape / 2; float
// regions use floor division by two.
func (r Region[T]) Center() Coord[T] {
	if isFloat[T]() {
		return r.offset.Add(r.shape.FloorDivScalar(2))
	}
	return r.offset.Add(r.shape.DivScalar(2))
}

// Dims returns the number of dimensions of r.
func (r Region[T]) Dims() int { return r.shape.Dims() }

// Size returns the volume of r. It is undefined if r is unbounded.
func (r Region[T]) Size() Value[T] {
	if r.Unbounded() {
		return Undef[T]()
	}
	var size T = 1
	for _, s := range r.shape.c {
		size *= s.v
	}
	return Def(size)
}

// Empty reports whether r has a defined shape of zero or less on any axis.
func (r Region[T]) Empty() bool {
	for _, s := range r.shape.c {
		if s.ok && s.v <= 0 {
			return true
		}
	}
	return false
}

// Unbounded reports whether r has an undefined shape on any axis.
func (r Region[T]) Unbounded() bool {
	return !r.shape.AllDefined()
}

// Equal reports whether r and o have equal offsets and shapes.
func (r Region[T]) Equal(o Region[T]) bool {
	return r.offset.Equal(o.offset) && r.shape.Equal(o.shape)
}

// Copy returns an independent copy of r.
func (r Region[T]) Copy() Region[T] {
	return Region[T]{offset: r.offset.clone(), shape: r.shape.clone()}
}

// Contains reports whether the coordinate c lies inside r. An undefined
// begin or end does not bound its axis. A coordinate of different
// dimensions is never contained.
func (r Region[T]) Contains(c Coord[T]) bool {
	if c.Dims() != r.Dims() {
		return false
	}
	end := r.End()
	for i, p := range c.c {
		if b := r.offset.c[i]; b.ok && (!p.ok || p.v < b.v) {
			return false
		}
		if e := end.c[i]; e.ok && (!p.ok || p.v >= e.v) {
			return false
		}
	}
	return true
}

// ContainsRegion reports whether o lies inside r. An empty o is contained if
// r is empty as well or if r contains the begin of o.
func (r Region[T]) ContainsRegion(o Region[T]) bool {
	if o.Empty() {
		return r.Empty() || r.Contains(o.Begin())
	}
	return r.Contains(o.Begin()) && r.Contains(o.End().SubScalar(1))
}

// Intersects reports whether r and o overlap. Empty regions intersect
// nothing. An axis only separates the regions if all four of its bounds are
// defined.
func (r Region[T]) Intersects(o Region[T]) bool {
	if r.Dims() != o.Dims() {
		panic(fmt.Sprintf("geometry: cannot intersect %d-dimensional Roi with %d-dimensional Roi", r.Dims(), o.Dims()))
	}
	if r.Empty() || o.Empty() {
		return false
	}
	e1, e2 := r.End(), o.End()
	for i := range r.offset.c {
		b1, b2 := r.offset.c[i], o.offset.c[i]
		if !b1.ok || !b2.ok || !e1.c[i].ok || !e2.c[i].ok {
			continue
		}
		if b1.v >= e2.c[i].v || b2.v >= e1.c[i].v {
			return false
		}
	}
	return true
}

// Intersect returns the overlap of r and o, or the canonical empty region if
// they do not intersect.
func (r Region[T]) Intersect(o Region[T]) Region[T] {
	if !r.Intersects(o) {
		return EmptyRegion[T](r.Dims())
	}
	return r.combine(o, leftMax[T], rightMin[T])
}

// Union returns the smallest region containing r and o. If either is empty
// the other is returned unchanged.
func (r Region[T]) Union(o Region[T]) Region[T] {
	if r.Dims() != o.Dims() {
		panic(fmt.Sprintf("geometry: cannot unite %d-dimensional Roi with %d-dimensional Roi", r.Dims(), o.Dims()))
	}
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return r.combine(o, leftMin[T], rightMax[T])
}

// combine builds the region spanning the per axis choice of begins and ends.
func (r Region[T]) combine(o Region[T], pickBegin, pickEnd func(x, y Value[T]) Value[T]) Region[T] {
	e1, e2 := r.End(), o.End()
	begin := make([]Value[T], r.Dims())
	end := make([]Value[T], r.Dims())
	for i := range begin {
		begin[i] = pickBegin(r.offset.c[i], o.offset.c[i])
		end[i] = pickEnd(e1.c[i], e2.c[i])
	}
	b := Coord[T]{c: begin}
	return NewRegion(b, Coord[T]{c: end}.Sub(b))
}

// Undefined begins count as negative infinity and undefined ends as positive
// infinity.

func leftMax[T Scalar](x, y Value[T]) Value[T] {
	if !x.ok {
		return y
	}
	if !y.ok {
		return x
	}
	return Def(max(x.v, y.v))
}

func rightMin[T Scalar](x, y Value[T]) Value[T] {
	if !x.ok {
		return y
	}
	if !y.ok {
		return x
	}
	return Def(min(x.v, y.v))
}

func leftMin[T Scalar](x, y Value[T]) Value[T] {
	if !x.ok || !y.ok {
		return Undef[T]()
	}
	return Def(min(x.v, y.v))
}

func rightMax[T Scalar](x, y Value[T]) Value[T] {
	if !x.ok || !y.ok {
		return Undef[T]()
	}
	return Def(max(x.v, y.v))
}

// Shift returns r moved by the given amount.
func (r Region[T]) Shift(by Coord[T]) Region[T] {
	return NewRegion(r.offset.Add(by), r.shape)
}

// Grow extends r by neg toward negative infinity and by pos toward positive
// infinity on every axis. Negative amounts shrink the region.
func (r Region[T]) Grow(neg, pos Coord[T]) Region[T] {
	return NewRegion(r.offset.Sub(neg), r.shape.Add(neg).Add(pos))
}

// GrowScalar is Grow with the same amounts on every axis.
func (r Region[T]) GrowScalar(neg, pos T) Region[T] {
	return r.Grow(Filled(r.Dims(), neg), Filled(r.Dims(), pos))
}

// SnapToGrid aligns r with a grid of the given voxel size. See SnapMode for
// how begin and end are rounded. The voxel size must have the dimensions of
// r and no zero component.
func (r Region[T]) SnapToGrid(voxelSize Coord[T], mode SnapMode) (Region[T], error) {
	if voxelSize.Dims() != r.Dims() {
		panic(fmt.Sprintf("geometry: voxel size dimension %d does not match Roi dimension %d", voxelSize.Dims(), r.Dims()))
	}
	for _, v := range voxelSize.c {
		if v.ok && v.v == 0 {
			return Region[T]{}, fmt.Errorf("%w: %v", ErrZeroVoxelSize, voxelSize)
		}
	}

	var begin, end Coord[T]
	switch mode {
	case SnapClosest:
		begin = r.Begin().RoundDivision(voxelSize)
		end = r.End().RoundDivision(voxelSize)
	case SnapGrow:
		begin = r.Begin().FloorDivision(voxelSize)
		end = r.End().CeilDivision(voxelSize)
	case SnapShrink:
		begin = r.Begin().CeilDivision(voxelSize)
		end = r.End().FloorDivision(voxelSize)
	default:
		return Region[T]{}, fmt.Errorf("%w %q for snap_to_grid", ErrUnknownSnapMode, string(mode))
	}

	snapped := NewRegion(begin.Mul(voxelSize), end.Sub(begin).Mul(voxelSize))
	Logger().Debug("snapped region to grid",
		slog.String("roi", r.String()),
		slog.String("voxel_size", voxelSize.String()),
		slog.String("mode", string(mode)),
		slog.String("result", snapped.String()))
	return snapped, nil
}

// Add shifts r by c.
func (r Region[T]) Add(c Coord[T]) Region[T] { return r.Shift(c) }

// Sub shifts r by -c.
func (r Region[T]) Sub(c Coord[T]) Region[T] { return r.Shift(c.Neg()) }

// AddScalar shifts r by s on every axis.
func (r Region[T]) AddScalar(s T) Region[T] { return r.Shift(Filled(r.Dims(), s)) }

// SubScalar shifts r by -s on every axis.
func (r Region[T]) SubScalar(s T) Region[T] { return r.Shift(Filled(r.Dims(), -s)) }

// Mul multiplies offset and shape by c.
func (r Region[T]) Mul(c Coord[T]) Region[T] {
	return NewRegion(r.offset.Mul(c), r.shape.Mul(c))
}

// Div divides offset and shape by c, rounding like Coord.Div.
func (r Region[T]) Div(c Coord[T]) Region[T] {
	return NewRegion(r.offset.Div(c), r.shape.Div(c))
}

// FloorDiv divides offset and shape by c, rounding toward negative infinity.
func (r Region[T]) FloorDiv(c Coord[T]) Region[T] {
	return NewRegion(r.offset.FloorDiv(c), r.shape.FloorDiv(c))
}

// Mod takes offset and shape modulo c.
func (r Region[T]) Mod(c Coord[T]) Region[T] {
	return NewRegion(r.offset.Mod(c), r.shape.Mod(c))
}

// MulScalar multiplies offset and shape by s.
func (r Region[T]) MulScalar(s T) Region[T] {
	return NewRegion(r.offset.MulScalar(s), r.shape.MulScalar(s))
}

// DivScalar divides offset and shape by s.
func (r Region[T]) DivScalar(s T) Region[T] {
	return NewRegion(r.offset.DivScalar(s), r.shape.DivScalar(s))
}

// FloorDivScalar floor divides offset and shape by s.
func (r Region[T]) FloorDivScalar(s T) Region[T] {
	return NewRegion(r.offset.FloorDivScalar(s), r.shape.FloorDivScalar(s))
}

// ModScalar takes offset and shape modulo s.
func (r Region[T]) ModScalar(s T) Region[T] {
	return NewRegion(r.offset.ModScalar(s), r.shape.ModScalar(s))
}

// Squeeze returns r without dimension dim.
func (r Region[T]) Squeeze(dim int) Region[T] {
	return NewRegion(r.offset.Squeeze(dim), r.shape.Squeeze(dim))
}

// ToSlices returns one index range per axis covering r. Unbounded axes give
// the full range and axes with a zero shape give an empty range. Components
// are truncated to integers.
func (r Region[T]) ToSlices() []Slice {
	slices := make([]Slice, r.Dims())
	for d, s := range r.shape.c {
		switch {
		case !s.ok:
			slices[d] = Slice{}
		case s.v == 0:
			slices[d] = Slice{Stop: Def(0)}
		default:
			o := r.offset.c[d]
			if !o.ok {
				slices[d] = Slice{Stop: Def(int(s.v))}
				continue
			}
			slices[d] = Slice{Start: Def(int(o.v)), Stop: Def(int(o.v + s.v))}
		}
	}
	return slices
}

func (r Region[T]) String() string {
	if r.Empty() {
		return "[empty ROI]"
	}
	end := r.End()
	bounds := make([]string, r.Dims())
	shape := make([]string, r.Dims())
	for d := range bounds {
		var b strings.Builder
		if o := r.offset.c[d]; o.ok {
			b.WriteString(formatScalar(o.v))
		}
		b.WriteByte(':')
		if e := end.c[d]; e.ok {
			b.WriteString(formatScalar(e.v))
		}
		bounds[d] = b.String()
		if s := r.shape.c[d]; s.ok {
			shape[d] = formatScalar(s.v)
		} else {
			shape[d] = "inf"
		}
	}
	return "[" + strings.Join(bounds, ", ") + "] (" + strings.Join(shape, ", ") + ")"
}
