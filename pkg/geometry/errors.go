package geometry

import "errors"

var (
	// ErrNotDivisible is returned when a region shape is not an exact
	// multiple of a voxel size.
	ErrNotDivisible = errors.New("geometry: shape not evenly divisible by voxel size")

	// ErrOutOfBounds is returned when a location lies outside an array.
	ErrOutOfBounds = errors.New("geometry: location outside array")

	// ErrNotAligned is returned when a region does not fall on voxel
	// boundaries.
	ErrNotAligned = errors.New("geometry: region not aligned to voxel grid")

	// ErrUnknownSnapMode is returned for snap modes other than grow, shrink
	// and closest.
	ErrUnknownSnapMode = errors.New("geometry: unknown snap mode")

	// ErrZeroVoxelSize is returned when a voxel size has a zero component.
	ErrZeroVoxelSize = errors.New("geometry: voxel size cannot contain zero")
)
