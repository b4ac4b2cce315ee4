package geometry

import (
	"math"
	"strconv"

	"golang.org/x/exp/constraints"
)

// Scalar is the constraint for the component type of coordinates and regions.
type Scalar interface {
	constraints.Signed | constraints.Float
}

// isFloat reports whether T is a floating point type.
func isFloat[T Scalar]() bool {
	var two T = 2
	return 1/two != 0
}

// floorDiv divides rounding toward negative infinity.
func floorDiv[T Scalar](a, b T) T {
	if isFloat[T]() {
		return T(math.Floor(float64(a) / float64(b)))
	}
	x, y := int64(a), int64(b)
	q := x / y
	if x%y != 0 && (x < 0) != (y < 0) {
		q--
	}
	return T(q)
}

// mod returns the remainder of floorDiv, which takes the sign of b.
func mod[T Scalar](a, b T) T {
	if isFloat[T]() {
		x, y := float64(a), float64(b)
		r := math.Mod(x, y)
		if r != 0 && (r < 0) != (y < 0) {
			r += y
		}
		return T(r)
	}
	x, y := int64(a), int64(b)
	r := x % y
	if r != 0 && (r < 0) != (y < 0) {
		r += y
	}
	return T(r)
}

func pow[T Scalar](a, b T) T {
	return T(math.Pow(float64(a), float64(b)))
}

func abs[T Scalar](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

// isIntegral reports whether x has no fractional part.
func isIntegral(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x) && x == math.Trunc(x)
}

func formatScalar[T Scalar](v T) string {
	if isFloat[T]() {
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	}
	return strconv.FormatInt(int64(v), 10)
}
