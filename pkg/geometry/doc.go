// Package geometry provides coordinate vectors and axis-aligned regions of
// interest over integer and floating point components, and an Array type
// that maps regions between world space and the pixel space of a voxel grid.
//
// Every component of a coordinate is either defined or undefined. An
// undefined component stands for "no bound" on that axis: it is not zero and
// not infinity, and arithmetic simply carries it through.
//
//	shape := geometry.C(2, 3, 4)
//	voxelSize := geometry.C(10, 5, 1)
//	size := shape.Mul(voxelSize)          // (20, 15, 4)
//	size.MulScalar(2).AddScalar(1)        // (41, 31, 9)
//
// Coordinates, regions and arrays are values. Methods never modify their
// receiver, so sharing them between goroutines is safe.
package geometry
