package geometry

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// ParseCoord parses a comma separated list of components such as "1, 2, 3"
// or "(0.5, _, 2)". The words "_", "none", "null" and "~" stand for an
// undefined component. Numbers parsed into an integer coordinate are
// truncated toward zero. Values that do not fit T fail with strconv.ErrRange.
func ParseCoord[T Scalar](s string) (Coord[T], error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, ")")
	s = strings.TrimSuffix(s, "]")
	if strings.TrimSpace(s) == "" {
		return Coord[T]{}, fmt.Errorf("geometry: empty coordinate")
	}
	fields := strings.Split(s, ",")
	c := make([]Value[T], len(fields))
	for i, f := range fields {
		v, err := parseValue[T](f)
		if err != nil {
			return Coord[T]{}, fmt.Errorf("geometry: component %d of %q: %w", i, s, err)
		}
		c[i] = v
	}
	return Coord[T]{c: c}, nil
}

// ParseCoordinate parses an integer coordinate. See ParseCoord.
func ParseCoordinate(s string) (Coordinate, error) { return ParseCoord[int](s) }

// ParseFloatCoordinate parses a float coordinate. See ParseCoord.
func ParseFloatCoordinate(s string) (FloatCoordinate, error) { return ParseCoord[float64](s) }

func parseValue[T Scalar](s string) (Value[T], error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "_", "none", "null", "~":
		return Undef[T](), nil
	}
	var zero T
	bits := reflect.TypeOf(zero).Bits()
	if isFloat[T]() {
		f, err := strconv.ParseFloat(s, bits)
		if err != nil {
			return Value[T]{}, err
		}
		return Def(T(f)), nil
	}

	i, err := strconv.ParseInt(s, 10, bits)
	if err == nil {
		return Def(T(i)), nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return Value[T]{}, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value[T]{}, err
	}
	// the truncated value must fit in [-2^(bits-1), 2^(bits-1))
	limit := math.Ldexp(1, bits-1)
	if t := math.Trunc(f); math.IsNaN(t) || t < -limit || t >= limit {
		return Value[T]{}, &strconv.NumError{Func: "ParseInt", Num: s, Err: strconv.ErrRange}
	}
	return Def(T(f)), nil
}
