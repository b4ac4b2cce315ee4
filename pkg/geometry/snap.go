package geometry

import "fmt"

// SnapMode selects how Region.SnapToGrid rounds a region onto a grid.
type SnapMode string

const (
	// SnapGrow rounds begin down and end up, so the result contains the
	// original region.
	SnapGrow SnapMode = "grow"

	// SnapShrink rounds begin up and end down, so the result is contained
	// in the original region.
	SnapShrink SnapMode = "shrink"

	// SnapClosest rounds begin and end to the closest grid line. Exact halves
	// round down.
	SnapClosest SnapMode = "closest"
)

// ParseSnapMode returns the SnapMode named by s.
func ParseSnapMode(s string) (SnapMode, error) {
	switch m := SnapMode(s); m {
	case SnapGrow, SnapShrink, SnapClosest:
		return m, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownSnapMode, s)
}
