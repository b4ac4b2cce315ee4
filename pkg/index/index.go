// Package index provides spatial lookup of the blocks of a tiled array.
package index

import (
	"fmt"
	"math"
	"sort"

	"github.com/funkelab/funlib.geometry/internal/models"
	"github.com/funkelab/funlib.geometry/pkg/geometry"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// point is the world space center of a block
type point struct {
	c     []float64
	block int
}

// Compare implements the kdtree.Comparable interface
func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(point)
	return p.c[d] - q.c[d]
}

// Dims returns the number of dimensions for the KD-tree
func (p point) Dims() int { return len(p.c) }

// Distance returns the squared Euclidean distance between two points
func (p point) Distance(c kdtree.Comparable) float64 {
	q := c.(point)
	var sum float64
	for d := range p.c {
		diff := p.c[d] - q.c[d]
		sum += diff * diff
	}
	return sum
}

// points is a collection of point that satisfies kdtree.Interface
type points []point

func (p points) Index(i int) kdtree.Comparable         { return p[i] }
func (p points) Len() int                              { return len(p) }
func (p points) Slice(start, end int) kdtree.Interface { return p[start:end] }

// Pivot implements the kdtree.Interface method
func (p points) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(plane{points: p, Dim: d}, kdtree.MedianOfRandoms(plane{points: p, Dim: d}, 100))
}

// plane implements sort.Interface and kdtree.SortSlicer for points
type plane struct {
	points
	kdtree.Dim
}

func (p plane) Less(i, j int) bool {
	return p.points[i].c[p.Dim] < p.points[j].c[p.Dim]
}

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{points: p.points[start:end], Dim: p.Dim}
}

func (p plane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}

// BlockIndex answers nearest block and overlap queries over a set of blocks.
type BlockIndex struct {
	blocks []models.Block
	tree   *kdtree.Tree
	dims   int

	// halfExtent is the largest half shape of any block along each axis
	halfExtent []float64
}

// NewBlockIndex indexes the world regions of blocks. All blocks must be
// bounded and of equal dimensions.
func NewBlockIndex(blocks []models.Block) (*BlockIndex, error) {
	idx := &BlockIndex{blocks: blocks}
	if len(blocks) == 0 {
		return idx, nil
	}

	idx.dims = blocks[0].World.Dims()
	idx.halfExtent = make([]float64, idx.dims)
	pts := make(points, len(blocks))
	for i, b := range blocks {
		if b.World.Dims() != idx.dims {
			return nil, fmt.Errorf("index: block %v has %d dimensions, expected %d", b.Index, b.World.Dims(), idx.dims)
		}
		if b.World.Unbounded() {
			return nil, fmt.Errorf("index: block %v is unbounded: %v", b.Index, b.World)
		}
		center := midpoint(b.World)
		pts[i] = point{c: center, block: i}
		for d := range center {
			s, _ := b.World.Shape().At(d).Get()
			idx.halfExtent[d] = math.Max(idx.halfExtent[d], s/2)
		}
	}
	idx.tree = kdtree.New(pts, false)
	return idx, nil
}

// midpoint returns (begin + end) / 2 of a bounded region.
func midpoint(r geometry.FloatRoi) []float64 {
	mid := r.Begin().Add(r.End()).DivScalar(2)
	out := make([]float64, mid.Dims())
	for d := range out {
		out[d] = mid.At(d).Or(0)
	}
	return out
}

// Len returns the number of indexed blocks.
func (idx *BlockIndex) Len() int { return len(idx.blocks) }

func (idx *BlockIndex) query(p geometry.FloatCoordinate) point {
	if p.Dims() != idx.dims {
		panic(fmt.Sprintf("index: query of dimension %d on %d-dimensional index", p.Dims(), idx.dims))
	}
	if !p.AllDefined() {
		panic(fmt.Sprintf("index: query point %v has undefined components", p))
	}
	c := make([]float64, p.Dims())
	for d := range c {
		c[d] = p.At(d).Or(0)
	}
	return point{c: c, block: -1}
}

// Nearest returns the block whose center is closest to p, and the Euclidean
// distance between them. It reports false if the index is empty.
func (idx *BlockIndex) Nearest(p geometry.FloatCoordinate) (models.Block, float64, bool) {
	if idx.tree == nil {
		return models.Block{}, 0, false
	}
	got, dist := idx.tree.Nearest(idx.query(p))
	if got == nil {
		return models.Block{}, 0, false
	}
	return idx.blocks[got.(point).block], math.Sqrt(dist), true
}

// NearestN returns up to n blocks ordered by the distance of their centers
// to p.
func (idx *BlockIndex) NearestN(p geometry.FloatCoordinate, n int) []models.Block {
	if idx.tree == nil || n < 1 {
		return nil
	}
	keeper := kdtree.NewNKeeper(n)
	idx.tree.NearestSet(keeper, idx.query(p))

	found := make([]kdtree.ComparableDist, 0, keeper.Len())
	for _, item := range keeper.Heap {
		// skip the sentinel
		if item.Comparable == nil {
			continue
		}
		found = append(found, item)
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].Dist != found[j].Dist {
			return found[i].Dist < found[j].Dist
		}
		return found[i].Comparable.(point).block < found[j].Comparable.(point).block
	})

	out := make([]models.Block, len(found))
	for i, item := range found {
		out[i] = idx.blocks[item.Comparable.(point).block]
	}
	return out
}

// Overlapping returns the blocks whose world region intersects roi, in the
// order they were indexed. Unbounded axes of roi match every block.
func (idx *BlockIndex) Overlapping(roi geometry.FloatRoi) []models.Block {
	if idx.tree == nil || roi.Empty() {
		return nil
	}
	if roi.Dims() != idx.dims {
		panic(fmt.Sprintf("index: query of dimension %d on %d-dimensional index", roi.Dims(), idx.dims))
	}

	// a block can only intersect roi if its center lies within roi grown
	// by the largest half extent
	lo := make([]float64, idx.dims)
	hi := make([]float64, idx.dims)
	begin, end := roi.Begin(), roi.End()
	for d := range lo {
		lo[d], hi[d] = math.Inf(-1), math.Inf(1)
		if b, ok := begin.At(d).Get(); ok {
			lo[d] = b - idx.halfExtent[d]
		}
		if e, ok := end.At(d).Get(); ok {
			hi[d] = e + idx.halfExtent[d]
		}
	}

	var hits []int
	bound := &kdtree.Bounding{Min: point{c: lo}, Max: point{c: hi}}
	idx.tree.DoBounded(bound, func(c kdtree.Comparable, _ *kdtree.Bounding, _ int) bool {
		i := c.(point).block
		if idx.blocks[i].World.Intersects(roi) {
			hits = append(hits, i)
		}
		return false
	})
	sort.Ints(hits)

	out := make([]models.Block, len(hits))
	for i, h := range hits {
		out[i] = idx.blocks[h]
	}
	return out
}
