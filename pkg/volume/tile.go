package volume

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/funkelab/funlib.geometry/internal/models"
	"github.com/funkelab/funlib.geometry/pkg/geometry"
)

// Tile divides arr into a regular grid of blocks of the given world shape,
// starting at the array offset. Blocks on the upper border are clipped to the
// array, so every voxel belongs to exactly one block. The block shape must be
// a positive multiple of the voxel size.
func Tile(arr geometry.FloatArray, blockShape geometry.FloatCoordinate) ([]models.Block, error) {
	voxel := arr.VoxelSize()
	for d := 0; d < blockShape.Dims(); d++ {
		if b, ok := blockShape.At(d).Get(); !ok || b <= 0 {
			return nil, fmt.Errorf("volume: block shape %v must be positive and bounded", blockShape)
		}
	}
	if !blockShape.IsMultipleOf(voxel) {
		return nil, fmt.Errorf("%w: block shape %v is not a multiple of voxel size %v", geometry.ErrNotAligned, blockShape, voxel)
	}

	pixelBlock := geometry.Convert[int](blockShape.Div(voxel))
	pixelShape := arr.PixelShape()
	bounds := geometry.NewRegion(geometry.Filled(pixelShape.Dims(), 0), pixelShape)
	grid := pixelShape.CeilDivision(pixelBlock)

	gridShape := make([]int, grid.Dims())
	for d := range gridShape {
		gridShape[d] = grid.At(d).Or(0)
	}

	var blocks []models.Block
	forEachIndex(gridShape, func(idx []int, _ int) {
		index := geometry.C(idx...)
		pixel := geometry.NewRegion(index.Mul(pixelBlock), pixelBlock).Intersect(bounds)
		blocks = append(blocks, models.Block{
			Index: index,
			Pixel: pixel,
			World: arr.RegionToWorldSpace(geometry.ConvertRegion[float64](pixel)),
		})
	})

	geometry.Logger().Debug("tiled array",
		slog.String("array", arr.String()),
		slog.String("block_shape", blockShape.String()),
		slog.String("grid", grid.String()),
		slog.Int("blocks", len(blocks)))
	return blocks, nil
}

// ProcessBlocks computes the statistics of every block using a pool of
// workers. Results are returned in the order of blocks. A non-positive
// number of workers uses one per CPU. The first error stops all workers.
func (v *Volume) ProcessBlocks(ctx context.Context, blocks []models.Block, workers int) ([]models.BlockStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type blockResult struct {
		idx   int
		stats models.BlockStats
		err   error
	}
	jobs := make(chan int)
	results := make(chan blockResult)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				stats, err := v.Stats(blocks[i].World)
				stats.Block = blocks[i]
				select {
				case results <- blockResult{idx: i, stats: stats, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range blocks {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	out := make([]models.BlockStats, len(blocks))
	completed := 0
	for res := range results {
		if res.err != nil {
			return nil, fmt.Errorf("block %v: %w", res.stats.Block.Index, res.err)
		}
		out[res.idx] = res.stats
		completed++
	}
	if completed < len(blocks) {
		return nil, ctx.Err()
	}
	return out, nil
}
