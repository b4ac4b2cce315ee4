package geometry

// Value is a single coordinate component. The zero Value is undefined.
type Value[T Scalar] struct {
	v  T
	ok bool
}

// Def returns a defined component holding v.
func Def[T Scalar](v T) Value[T] { return Value[T]{v: v, ok: true} }

// Undef returns an undefined component.
func Undef[T Scalar]() Value[T] { return Value[T]{} }

// Get returns the component and whether it is defined.
func (x Value[T]) Get() (T, bool) { return x.v, x.ok }

// Defined reports whether the component holds a value.
func (x Value[T]) Defined() bool { return x.ok }

// Or returns the component, or d if it is undefined.
func (x Value[T]) Or(d T) T {
	if !x.ok {
		return d
	}
	return x.v
}

func (x Value[T]) String() string {
	if !x.ok {
		return "_"
	}
	return formatScalar(x.v)
}

func (x Value[T]) equal(y Value[T]) bool {
	return x.ok == y.ok && (!x.ok || x.v == y.v)
}

// convertValue converts between component types. Conversion to an integer
// type truncates toward zero.
func convertValue[U, T Scalar](x Value[T]) Value[U] {
	if !x.ok {
		return Value[U]{}
	}
	return Def(U(x.v))
}
