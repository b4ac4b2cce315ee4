package geometry

import (
	"fmt"
	"strings"
)

// Coord is an immutable, fixed length tuple of components. Arithmetic between
// two coordinates is applied element wise and requires equal dimensions; a
// component that is undefined on either side is undefined in the result.
//
// Coordinates are created with [C], [FC], [NewCoord] or the conversion
// helpers, e.g.:
//
//	geometry.C(1, 2, 3)
//	geometry.NewCoord(geometry.Undef[int](), geometry.Def(1), geometry.Def(2))
type Coord[T Scalar] struct {
	c []Value[T]
}

// Coordinate is a coordinate of integers. Values converted into it are
// truncated toward zero and its Div truncates the quotient.
type Coordinate = Coord[int]

// FloatCoordinate is a coordinate that keeps float precision.
type FloatCoordinate = Coord[float64]

// NewCoord returns a coordinate with the given components.
func NewCoord[T Scalar](vals ...Value[T]) Coord[T] {
	c := make([]Value[T], len(vals))
	copy(c, vals)
	return Coord[T]{c: c}
}

// C returns a Coordinate with all components defined.
func C(vals ...int) Coordinate {
	return Of(vals...)
}

// FC returns a FloatCoordinate with all components defined.
func FC(vals ...float64) FloatCoordinate {
	return Of(vals...)
}

// Of returns a coordinate with all components defined.
func Of[T Scalar](vals ...T) Coord[T] {
	c := make([]Value[T], len(vals))
	for i, v := range vals {
		c[i] = Def(v)
	}
	return Coord[T]{c: c}
}

// CoordinateOf converts numbers of any scalar type into a Coordinate,
// truncating each toward zero.
func CoordinateOf[N Scalar](vals ...N) Coordinate {
	return Convert[int](Of(vals...))
}

// FloatCoordinateOf converts numbers of any scalar type into a
// FloatCoordinate.
func FloatCoordinateOf[N Scalar](vals ...N) FloatCoordinate {
	return Convert[float64](Of(vals...))
}

// Convert changes the component type of c. Undefined components stay
// undefined; conversion to an integer type truncates toward zero.
func Convert[U, T Scalar](c Coord[T]) Coord[U] {
	out := make([]Value[U], len(c.c))
	for i, x := range c.c {
		out[i] = convertValue[U](x)
	}
	return Coord[U]{c: out}
}

// Unbounded returns a coordinate of dims undefined components.
func Unbounded[T Scalar](dims int) Coord[T] {
	return Coord[T]{c: make([]Value[T], dims)}
}

// Filled returns a coordinate of dims components all equal to v.
func Filled[T Scalar](dims int, v T) Coord[T] {
	c := make([]Value[T], dims)
	for i := range c {
		c[i] = Def(v)
	}
	return Coord[T]{c: c}
}

// Dims returns the number of components.
func (c Coord[T]) Dims() int { return len(c.c) }

// At returns component i. It panics if i is out of range.
func (c Coord[T]) At(i int) Value[T] { return c.c[i] }

// Values returns a copy of the components.
func (c Coord[T]) Values() []Value[T] {
	out := make([]Value[T], len(c.c))
	copy(out, c.c)
	return out
}

// AllDefined reports whether no component is undefined.
func (c Coord[T]) AllDefined() bool {
	for _, x := range c.c {
		if !x.ok {
			return false
		}
	}
	return true
}

// Equal reports whether both coordinates have the same dimensions and equal
// components. Undefined equals undefined.
func (c Coord[T]) Equal(o Coord[T]) bool {
	if len(c.c) != len(o.c) {
		return false
	}
	for i := range c.c {
		if !c.c[i].equal(o.c[i]) {
			return false
		}
	}
	return true
}

// Key returns a string that identifies the coordinate, for use as a map key.
func (c Coord[T]) Key() string { return c.String() }

func (c Coord[T]) String() string {
	parts := make([]string, len(c.c))
	for i, x := range c.c {
		parts[i] = x.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (c Coord[T]) zip(o Coord[T], verb string, f func(a, b T) T) Coord[T] {
	if len(c.c) != len(o.c) {
		panic(fmt.Sprintf("geometry: can only %s Coordinate of equal dimensions (%d != %d)", verb, len(c.c), len(o.c)))
	}
	out := make([]Value[T], len(c.c))
	for i, a := range c.c {
		if b := o.c[i]; a.ok && b.ok {
			out[i] = Def(f(a.v, b.v))
		}
	}
	return Coord[T]{c: out}
}

func (c Coord[T]) each(f func(a T) T) Coord[T] {
	out := make([]Value[T], len(c.c))
	for i, a := range c.c {
		if a.ok {
			out[i] = Def(f(a.v))
		}
	}
	return Coord[T]{c: out}
}

// Add returns c + o.
func (c Coord[T]) Add(o Coord[T]) Coord[T] {
	return c.zip(o, "add", func(a, b T) T { return a + b })
}

// Sub returns c - o.
func (c Coord[T]) Sub(o Coord[T]) Coord[T] {
	return c.zip(o, "subtract", func(a, b T) T { return a - b })
}

// Mul returns c * o.
func (c Coord[T]) Mul(o Coord[T]) Coord[T] {
	return c.zip(o, "multiply", func(a, b T) T { return a * b })
}

// Div returns c / o. For integer components the quotient is truncated toward
// zero; for float components it is exact.
func (c Coord[T]) Div(o Coord[T]) Coord[T] {
	return c.zip(o, "divide", func(a, b T) T { return a / b })
}

// FloorDiv returns c / o rounded toward negative infinity.
func (c Coord[T]) FloorDiv(o Coord[T]) Coord[T] {
	return c.zip(o, "divide", floorDiv[T])
}

// Mod returns the remainder of FloorDiv. It has the sign of o.
func (c Coord[T]) Mod(o Coord[T]) Coord[T] {
	return c.zip(o, "mod", mod[T])
}

// Pow raises each component of c to the power of the matching component of o.
func (c Coord[T]) Pow(o Coord[T]) Coord[T] {
	return c.zip(o, "exponentiate", pow[T])
}

// AddScalar adds s to every defined component.
func (c Coord[T]) AddScalar(s T) Coord[T] {
	return c.each(func(a T) T { return a + s })
}

// SubScalar subtracts s from every defined component.
func (c Coord[T]) SubScalar(s T) Coord[T] {
	return c.each(func(a T) T { return a - s })
}

// MulScalar multiplies every defined component by s.
func (c Coord[T]) MulScalar(s T) Coord[T] {
	return c.each(func(a T) T { return a * s })
}

// DivScalar divides every defined component by s, with the same rounding as
// Div.
func (c Coord[T]) DivScalar(s T) Coord[T] {
	return c.each(func(a T) T { return a / s })
}

// FloorDivScalar divides every defined component by s, rounding toward
// negative infinity.
func (c Coord[T]) FloorDivScalar(s T) Coord[T] {
	return c.each(func(a T) T { return floorDiv(a, s) })
}

// ModScalar returns every defined component modulo s.
func (c Coord[T]) ModScalar(s T) Coord[T] {
	return c.each(func(a T) T { return mod(a, s) })
}

// PowScalar raises every defined component to the power s.
func (c Coord[T]) PowScalar(s T) Coord[T] {
	return c.each(func(a T) T { return pow(a, s) })
}

// Neg returns -c.
func (c Coord[T]) Neg() Coord[T] {
	return c.each(func(a T) T { return -a })
}

// Abs returns the absolute value of every defined component.
func (c Coord[T]) Abs() Coord[T] {
	return c.each(abs[T])
}

// IsMultipleOf reports whether every component of c is a multiple of the
// matching component of o. Pairs with an undefined side are ignored.
func (c Coord[T]) IsMultipleOf(o Coord[T]) bool {
	m := c.Mod(o)
	for _, x := range m.c {
		if x.ok && x.v != 0 {
			return false
		}
	}
	return true
}

// RoundDivision divides by o and rounds to the closest integer. Exact halves
// round down: (10).RoundDivision(4) is 2.
func (c Coord[T]) RoundDivision(o Coord[T]) Coord[T] {
	return c.Add(o.SubScalar(1).FloorDivScalar(2)).FloorDiv(o)
}

// FloorDivision divides by o rounding toward negative infinity.
func (c Coord[T]) FloorDivision(o Coord[T]) Coord[T] {
	return c.FloorDiv(o)
}

// CeilDivision divides by o rounding toward positive infinity, computed as
// (c + o - 1) // o.
func (c Coord[T]) CeilDivision(o Coord[T]) Coord[T] {
	return c.Add(o).SubScalar(1).FloorDiv(o)
}

// Squeeze returns c without component dim.
func (c Coord[T]) Squeeze(dim int) Coord[T] {
	if dim < 0 || dim >= len(c.c) {
		panic(fmt.Sprintf("geometry: cannot squeeze dimension %d of %d-dimensional Coordinate", dim, len(c.c)))
	}
	out := make([]Value[T], 0, len(c.c)-1)
	out = append(out, c.c[:dim]...)
	out = append(out, c.c[dim+1:]...)
	return Coord[T]{c: out}
}
