package models

import (
	"github.com/funkelab/funlib.geometry/pkg/geometry"
)

// Block is one cell of a regular tiling of an array
type Block struct {
	// Index is the position of this block in the block grid
	Index geometry.Coordinate `json:"index" yaml:"index"`

	// Pixel is the voxel index range covered by the block
	Pixel geometry.Roi `json:"pixel" yaml:"pixel"`

	// World is the physical region covered by the block
	World geometry.FloatRoi `json:"world" yaml:"world"`
}

// BlockStats holds summary statistics of the voxel values inside a block
type BlockStats struct {
	// Block is the block the statistics were computed for
	Block Block `json:"block" yaml:"block"`

	// Count is the number of voxels in the block
	Count int `json:"count" yaml:"count"`

	// Sum, Min and Max of the voxel values
	Sum float64 `json:"sum" yaml:"sum"`
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`

	// Mean and Variance of the voxel values. Variance is the unbiased
	// estimate and zero for a single voxel.
	Mean     float64 `json:"mean" yaml:"mean"`
	Variance float64 `json:"variance" yaml:"variance"`

	// StdDev is the square root of Variance
	StdDev float64 `json:"stdDev" yaml:"stdDev"`
}

// Report is the result of resolving a region of interest against an array,
// as printed by roitool
type Report struct {
	// Array is the world region covered by the array
	Array geometry.FloatRoi `json:"array" yaml:"array"`

	// VoxelSize is the physical size of each voxel
	VoxelSize geometry.FloatCoordinate `json:"voxelSize" yaml:"voxelSize"`

	// Requested is the region as given by the user
	Requested geometry.FloatRoi `json:"requested" yaml:"requested"`

	// Snapped is Requested aligned to the voxel grid and clipped to the array
	Snapped geometry.FloatRoi `json:"snapped" yaml:"snapped"`

	// Pixel is Snapped in pixel space
	Pixel geometry.FloatRoi `json:"pixel" yaml:"pixel"`

	// Slices are the index ranges selecting Snapped, one per axis
	Slices []string `json:"slices" yaml:"slices"`

	// Blocks are the blocks of the array tiling that overlap Snapped
	Blocks []BlockStats `json:"blocks" yaml:"blocks"`

	// Stats reports whether the block statistics were computed from voxel
	// data; otherwise only the voxel counts are set
	Stats bool `json:"stats" yaml:"stats"`

	// Nearest is the block whose center is closest to the center of Snapped
	Nearest *Block `json:"nearest,omitempty" yaml:"nearest,omitempty"`
}
