package volume

import (
	"math"

	"github.com/funkelab/funlib.geometry/internal/models"
	"github.com/funkelab/funlib.geometry/pkg/geometry"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats computes summary statistics of the voxels inside the world region.
// The region follows the same rules as for Region.
func (v *Volume) Stats(world geometry.FloatRoi) (models.BlockStats, error) {
	sub, err := v.Region(world)
	if err != nil {
		return models.BlockStats{}, err
	}
	return summarize(sub.data), nil
}

func summarize(values []float64) models.BlockStats {
	s := models.BlockStats{Count: len(values)}
	if len(values) == 0 {
		return s
	}
	s.Sum = floats.Sum(values)
	s.Min = floats.Min(values)
	s.Max = floats.Max(values)
	if len(values) == 1 {
		s.Mean = values[0]
		return s
	}
	s.Mean, s.Variance = stat.MeanVariance(values, nil)
	s.StdDev = math.Sqrt(s.Variance)
	return s
}
