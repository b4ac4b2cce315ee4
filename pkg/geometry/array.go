package geometry

import (
	"fmt"
	"log/slog"
)

// Array is a set of voxels that discretize a world space region at a given
// voxel size. It converts coordinates and regions between world space and
// pixel space, where one unit is one voxel and the origin is the first voxel
// of the array.
type Array[T Scalar] struct {
	roi       Region[T]
	voxelSize Coord[T]
	shape     Coord[T]
}

// FloatArray is an array over float world coordinates.
type FloatArray = Array[float64]

// NewArray returns the array covering roi with the given voxel size. The
// shape of roi must be an exact multiple of voxelSize on every axis, which
// also rules out unbounded regions and zero voxel sizes. It panics if the
// dimensions of roi and voxelSize differ.
func NewArray[T Scalar](roi Region[T], voxelSize Coord[T]) (Array[T], error) {
	if roi.Dims() != voxelSize.Dims() {
		panic(fmt.Sprintf("geometry: voxel size dimension %d does not match Roi dimension %d", voxelSize.Dims(), roi.Dims()))
	}
	for d := 0; d < roi.Dims(); d++ {
		s, v := roi.shape.c[d], voxelSize.c[d]
		if v.ok && v.v == 0 {
			return Array[T]{}, fmt.Errorf("%w: %v", ErrZeroVoxelSize, voxelSize)
		}
		if !s.ok || !v.ok || !isIntegral(float64(s.v)/float64(v.v)) {
			return Array[T]{}, fmt.Errorf("%w: roi shape %v, voxel size %v", ErrNotDivisible, roi.shape, voxelSize)
		}
	}
	a := Array[T]{
		roi:       roi,
		voxelSize: voxelSize.clone(),
		shape:     roi.shape.Div(voxelSize),
	}
	Logger().Debug("created array",
		slog.String("roi", roi.String()),
		slog.String("voxel_size", voxelSize.String()),
		slog.String("shape", a.shape.String()))
	return a, nil
}

// FromWorld returns the array covering the world region with the given
// offset and shape.
func FromWorld[T Scalar](offset, shape, voxelSize Coord[T]) (Array[T], error) {
	return NewArray(NewRegion(offset, shape), voxelSize)
}

type pixelOptions[T Scalar] struct {
	worldOffset *Coord[T]
	pixelOffset *Coord[T]
}

// PixelOption configures FromPixels.
type PixelOption[T Scalar] func(*pixelOptions[T])

// WithWorldOffset places the first voxel at the given world coordinate.
func WithWorldOffset[T Scalar](offset Coord[T]) PixelOption[T] {
	return func(o *pixelOptions[T]) { o.worldOffset = &offset }
}

// WithPixelOffset places the first voxel at offset * voxelSize. It is
// ignored if a world offset is given as well.
func WithPixelOffset[T Scalar](offset Coord[T]) PixelOption[T] {
	return func(o *pixelOptions[T]) { o.pixelOffset = &offset }
}

// FromPixels returns the array of the given pixel shape and voxel size. The
// world offset defaults to zero.
func FromPixels[T Scalar](pixelShape, voxelSize Coord[T], opts ...PixelOption[T]) (Array[T], error) {
	var o pixelOptions[T]
	for _, opt := range opts {
		opt(&o)
	}
	worldOffset := Filled[T](voxelSize.Dims(), 0)
	switch {
	case o.worldOffset != nil:
		worldOffset = *o.worldOffset
	case o.pixelOffset != nil:
		worldOffset = o.pixelOffset.Mul(voxelSize)
	}
	return NewArray(NewRegion(worldOffset, pixelShape.Mul(voxelSize)), voxelSize)
}

// Roi returns the world space region covered by a.
func (a Array[T]) Roi() Region[T] { return a.roi }

// VoxelSize returns the world space size of one voxel.
func (a Array[T]) VoxelSize() Coord[T] { return a.voxelSize }

// Shape returns the number of voxels along each axis.
func (a Array[T]) Shape() Coord[T] { return a.shape }

// PixelShape returns Shape as integers.
func (a Array[T]) PixelShape() Coordinate { return Convert[int](a.shape) }

// Dims returns the number of dimensions of a.
func (a Array[T]) Dims() int { return a.roi.Dims() }

// ToPixelSpace converts a world coordinate into pixel space. The coordinate
// must lie inside the array. Integer arrays have no fractional pixels, so
// they also require the coordinate to fall on a voxel boundary.
func (a Array[T]) ToPixelSpace(world Coord[T]) (Coord[T], error) {
	if !a.roi.Contains(world) {
		return Coord[T]{}, fmt.Errorf("%w: world location %v is not included in array with world roi %v", ErrOutOfBounds, world, a.roi)
	}
	rel := world.Sub(a.roi.offset)
	if !isFloat[T]() && !rel.IsMultipleOf(a.voxelSize) {
		return Coord[T]{}, fmt.Errorf("%w: world location %v is not on the grid of voxel size %v", ErrNotAligned, world, a.voxelSize)
	}
	return rel.Div(a.voxelSize), nil
}

// RegionToPixelSpace converts a world region into pixel space. The region
// must lie inside the array. On integer arrays its offset and shape must
// also be multiples of the voxel size.
func (a Array[T]) RegionToPixelSpace(world Region[T]) (Region[T], error) {
	if !a.roi.ContainsRegion(world) {
		return Region[T]{}, fmt.Errorf("%w: world roi %v is not included in array with world roi %v", ErrOutOfBounds, world, a.roi)
	}
	rel := world.Sub(a.roi.offset)
	if !isFloat[T]() && (!rel.offset.IsMultipleOf(a.voxelSize) || !rel.shape.IsMultipleOf(a.voxelSize)) {
		return Region[T]{}, fmt.Errorf("%w: world roi %v is not on the grid of voxel size %v", ErrNotAligned, world, a.voxelSize)
	}
	return rel.Div(a.voxelSize), nil
}

// ToWorldSpace converts a pixel coordinate into world space. Coordinates
// outside the array convert as well.
func (a Array[T]) ToWorldSpace(pixel Coord[T]) Coord[T] {
	return pixel.Mul(a.voxelSize).Add(a.roi.offset)
}

// RegionToWorldSpace converts a pixel region into world space.
func (a Array[T]) RegionToWorldSpace(pixel Region[T]) Region[T] {
	return pixel.Mul(a.voxelSize).Add(a.roi.offset)
}

// ToIndex returns the index of the voxel containing the world coordinate.
func (a Array[T]) ToIndex(world Coord[T]) (Coordinate, error) {
	if !a.roi.Contains(world) {
		return Coordinate{}, fmt.Errorf("%w: world location %v is not included in array with world roi %v", ErrOutOfBounds, world, a.roi)
	}
	return Convert[int](world.Sub(a.roi.offset).FloorDiv(a.voxelSize)), nil
}

// ToSlices returns the index ranges selecting the world region. The region
// must lie inside the array and its bounds must fall on voxel boundaries.
func (a Array[T]) ToSlices(world Region[T]) ([]Slice, error) {
	pixel, err := a.RegionToPixelSpace(world)
	if err != nil {
		return nil, err
	}
	slices := make([]Slice, pixel.Dims())
	for d := range slices {
		s, o := pixel.shape.c[d], pixel.offset.c[d]
		switch {
		case !s.ok:
			slices[d] = Slice{}
			continue
		case !o.ok && s.v == 0:
			slices[d] = Slice{Stop: Def(0)}
			continue
		case !o.ok || !isIntegral(float64(o.v)):
			return nil, fmt.Errorf("%w: pixel roi %v cannot be converted to slices", ErrNotAligned, pixel)
		case s.v == 0:
			slices[d] = Slice{Stop: Def(0)}
			continue
		case !isIntegral(float64(s.v)):
			return nil, fmt.Errorf("%w: pixel roi %v cannot be converted to slices", ErrNotAligned, pixel)
		}
		start := int(o.v)
		slices[d] = Slice{Start: Def(start), Stop: Def(start + int(s.v))}
	}
	return slices, nil
}

// Snap aligns a world region with the voxel grid of a and clips it to the
// array. The grid is anchored at the array offset.
func (a Array[T]) Snap(world Region[T], mode SnapMode) (Region[T], error) {
	rel := world.Sub(a.roi.offset)
	snapped, err := rel.SnapToGrid(a.voxelSize, mode)
	if err != nil {
		return Region[T]{}, err
	}
	return snapped.Add(a.roi.offset).Intersect(a.roi), nil
}

func (a Array[T]) String() string {
	return fmt.Sprintf("Array(roi=%v, voxel_size=%v)", a.roi, a.voxelSize)
}
