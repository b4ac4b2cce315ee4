// Package volume stores dense voxel data addressed in world coordinates
// through a geometry.Array.
package volume

import (
	"errors"
	"fmt"

	"github.com/funkelab/funlib.geometry/pkg/geometry"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrDataSize is returned when a buffer does not hold exactly one value
	// per voxel of the array.
	ErrDataSize = errors.New("volume: data length does not match array shape")

	// ErrEmptyRegion is returned when reading from an empty region.
	ErrEmptyRegion = errors.New("volume: empty region")
)

// Volume is a dense buffer of float64 voxel values in row-major order: the
// last axis varies fastest. For a 3D volume the axes are (z, y, x) and the
// voxel (z, y, x) is stored at z*h*w + y*w + x.
type Volume struct {
	// array maps world coordinates to voxels
	array geometry.FloatArray

	// shape is the number of voxels along each axis
	shape []int

	// strides is the distance in data between neighbours along each axis
	strides []int

	data []float64
}

// NewVolume creates a volume over arr. If data is nil a zero filled buffer
// is allocated, otherwise data is used without copying.
func NewVolume(arr geometry.FloatArray, data []float64) (*Volume, error) {
	shape := make([]int, arr.Dims())
	pixelShape := arr.PixelShape()
	n := 1
	for d := range shape {
		shape[d] = pixelShape.At(d).Or(0)
		n *= shape[d]
	}
	if data == nil {
		data = make([]float64, n)
	}
	if len(data) != n {
		return nil, fmt.Errorf("%w: %d values for shape %v (%d voxels)", ErrDataSize, len(data), pixelShape, n)
	}

	strides := make([]int, len(shape))
	stride := 1
	for d := len(shape) - 1; d >= 0; d-- {
		strides[d] = stride
		stride *= shape[d]
	}

	return &Volume{
		array:   arr,
		shape:   shape,
		strides: strides,
		data:    data,
	}, nil
}

// Array returns the array the volume is addressed through.
func (v *Volume) Array() geometry.FloatArray { return v.array }

// Shape returns the number of voxels along each axis.
func (v *Volume) Shape() []int {
	out := make([]int, len(v.shape))
	copy(out, v.shape)
	return out
}

// Len returns the number of voxels.
func (v *Volume) Len() int { return len(v.data) }

// Data returns the underlying buffer.
func (v *Volume) Data() []float64 { return v.data }

func (v *Volume) offset(idx geometry.Coordinate) int {
	off := 0
	for d, s := range v.strides {
		off += idx.At(d).Or(0) * s
	}
	return off
}

// Index returns the value of the voxel at the given pixel index. It panics
// if idx lies outside the volume.
func (v *Volume) Index(idx ...int) float64 {
	if len(idx) != len(v.shape) {
		panic(fmt.Sprintf("volume: %d indices for %d-dimensional volume", len(idx), len(v.shape)))
	}
	off := 0
	for d, i := range idx {
		if i < 0 || i >= v.shape[d] {
			panic(fmt.Sprintf("volume: index %d out of range [0, %d) on axis %d", i, v.shape[d], d))
		}
		off += i * v.strides[d]
	}
	return v.data[off]
}

// At returns the value of the voxel containing the world coordinate.
func (v *Volume) At(world geometry.FloatCoordinate) (float64, error) {
	idx, err := v.array.ToIndex(world)
	if err != nil {
		return 0, err
	}
	return v.data[v.offset(idx)], nil
}

// Set stores value in the voxel containing the world coordinate.
func (v *Volume) Set(world geometry.FloatCoordinate, value float64) error {
	idx, err := v.array.ToIndex(world)
	if err != nil {
		return err
	}
	v.data[v.offset(idx)] = value
	return nil
}

// Region copies the voxels inside the world region into a new volume. The
// region must lie inside the array and align with its voxel grid.
func (v *Volume) Region(world geometry.FloatRoi) (*Volume, error) {
	if world.Empty() {
		return nil, fmt.Errorf("%w: %v", ErrEmptyRegion, world)
	}
	slices, err := v.array.ToSlices(world)
	if err != nil {
		return nil, err
	}
	arr, err := geometry.NewArray(world, v.array.VoxelSize())
	if err != nil {
		return nil, err
	}
	sub, err := NewVolume(arr, nil)
	if err != nil {
		return nil, err
	}

	lo := make([]int, len(v.shape))
	for d, s := range slices {
		lo[d], _ = s.Bounds(v.shape[d])
	}
	forEachIndex(sub.shape, func(idx []int, i int) {
		off := 0
		for d, x := range idx {
			off += (lo[d] + x) * v.strides[d]
		}
		sub.data[i] = v.data[off]
	})
	return sub, nil
}

// Section returns the 2D section of a 3D volume orthogonal to axis through
// the world position pos. Rows follow the lower and columns the higher of the
// two remaining axes.
func (v *Volume) Section(axis int, pos float64) (*mat.Dense, error) {
	if len(v.shape) != 3 {
		return nil, fmt.Errorf("volume: sections require a 3D volume, got %d dimensions", len(v.shape))
	}
	if axis < 0 || axis > 2 {
		return nil, fmt.Errorf("volume: invalid axis %d (must be 0, 1 or 2)", axis)
	}

	probe := v.array.Roi().Begin().Values()
	probe[axis] = geometry.Def(pos)
	idx, err := v.array.ToIndex(geometry.NewCoord(probe...))
	if err != nil {
		return nil, err
	}
	fixed := idx.At(axis).Or(0)

	var rowAxis, colAxis int
	switch axis {
	case 0:
		rowAxis, colAxis = 1, 2
	case 1:
		rowAxis, colAxis = 0, 2
	case 2:
		rowAxis, colAxis = 0, 1
	}
	rows, cols := v.shape[rowAxis], v.shape[colAxis]
	section := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			off := fixed*v.strides[axis] + r*v.strides[rowAxis] + c*v.strides[colAxis]
			section.Set(r, c, v.data[off])
		}
	}
	return section, nil
}

// forEachIndex calls f for every index of an array of the given shape in
// row-major order, along with the position of that index in a flat buffer.
func forEachIndex(shape []int, f func(idx []int, i int)) {
	n := 1
	for _, s := range shape {
		n *= s
	}
	if n == 0 {
		return
	}
	idx := make([]int, len(shape))
	for i := 0; i < n; i++ {
		f(idx, i)
		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < shape[d] {
				break
			}
			idx[d] = 0
		}
	}
}
