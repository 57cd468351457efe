package gleicon

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// TransformKind identifies the block which pushed a transform.
type TransformKind uint8

const (
	Rotate TransformKind = iota
	Translate
	Scale
)

func (k TransformKind) String() string {
	switch k {
	case Rotate:
		return "rotate"
	case Translate:
		return "translate"
	case Scale:
		return "scale"
	default:
		return "<unknown TransformKind>"
	}
}

// Transform is one entry of the transform stack. Rotations and
// scalings are centered on the cursor position at push time, or on
// the target of the first amove or rmove of the block when it comes
// before any primitive or nested block.
type Transform struct {
	Kind   TransformKind
	Pivot  vec.Vec2
	Angle  float64  // degrees, counter-clockwise, for Rotate
	Offset vec.Vec2 // for Translate
	Factor vec.Vec2 // for Scale
}

func rotation(degrees float64) matrix.Matrix {
	s, c := math.Sincos(degrees * math.Pi / 180)
	return matrix.Matrix{c, s, -s, c, 0, 0}
}

// about conjugates `m` by a translation to `pivot`
func about(m matrix.Matrix, pivot vec.Vec2) matrix.Matrix {
	return matrix.Translate(-pivot.X, -pivot.Y).Mul(m).Mul(matrix.Translate(pivot.X, pivot.Y))
}

// Matrix returns the affine map from the block coordinates to the
// enclosing ones.
func (t Transform) Matrix() matrix.Matrix {
	switch t.Kind {
	case Rotate:
		return about(rotation(t.Angle), t.Pivot)
	case Translate:
		return matrix.Translate(t.Offset.X, t.Offset.Y)
	case Scale:
		return about(matrix.Matrix{t.Factor.X, 0, 0, t.Factor.Y, 0, 0}, t.Pivot)
	default:
		return matrix.Identity
	}
}

// composite returns the map from the innermost block coordinates to the
// page, for a stack ordered outermost first
func composite(stack []Transform) matrix.Matrix {
	m := matrix.Identity
	for _, t := range stack {
		m = t.Matrix().Mul(m)
	}
	return m
}
