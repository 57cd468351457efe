package gleicon

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// This file defines the basic path structure, in page units

// Operation groups the different path commands
type Operation interface {
	// add itself on the driver `d`, after aplying the transform `M`
	drawTo(d Drawer, M matrix.Matrix)
	// points returns the end and control points
	points() []vec.Vec2
}

type MoveTo vec.Vec2

type LineTo vec.Vec2

type QuadTo [2]vec.Vec2

type CubicTo [3]vec.Vec2

type Close struct{}

// apply maps `p` through `m`
func apply(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

func toFixed(p vec.Vec2) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(math.Round(p.X * 64)), Y: fixed.Int26_6(math.Round(p.Y * 64))}
}

func fToFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(f * 64))
}

// starts a new path at the given point.
func (op MoveTo) drawTo(d Drawer, M matrix.Matrix) {
	d.Stop(false) // implicit close if currently in path.
	d.Start(toFixed(apply(M, vec.Vec2(op))))
}

// draw a line
func (op LineTo) drawTo(d Drawer, M matrix.Matrix) {
	d.Line(toFixed(apply(M, vec.Vec2(op))))
}

// draw a quadratic bezier curve
func (op QuadTo) drawTo(d Drawer, M matrix.Matrix) {
	d.QuadBezier(toFixed(apply(M, op[0])), toFixed(apply(M, op[1])))
}

// draw a cubic bezier curve
func (op CubicTo) drawTo(d Drawer, M matrix.Matrix) {
	d.CubeBezier(toFixed(apply(M, op[0])), toFixed(apply(M, op[1])), toFixed(apply(M, op[2])))
}

func (op Close) drawTo(d Drawer, _ matrix.Matrix) {
	d.Stop(true)
}

func (op MoveTo) points() []vec.Vec2  { return []vec.Vec2{vec.Vec2(op)} }
func (op LineTo) points() []vec.Vec2  { return []vec.Vec2{vec.Vec2(op)} }
func (op QuadTo) points() []vec.Vec2  { return op[:] }
func (op CubicTo) points() []vec.Vec2 { return op[:] }
func (op Close) points() []vec.Vec2   { return nil }

// Path describes a sequence of basic path operations.
// Higher-level shapes are reduced to a path.
type Path []Operation

// String returns a readable representation of a Path,
// using the SVG path syntax.
func (p Path) String() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%.4g,%.4g", op.X, op.Y)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%.4g,%.4g", op.X, op.Y)
		case QuadTo:
			chunks[i] = fmt.Sprintf("Q%.4g,%.4g,%.4g,%.4g", op[0].X, op[0].Y, op[1].X, op[1].Y)
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%.4g,%.4g,%.4g,%.4g,%.4g,%.4g", op[0].X, op[0].Y,
				op[1].X, op[1].Y, op[2].X, op[2].Y)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// Start starts a new curve at the given point.
func (p *Path) Start(a vec.Vec2) {
	*p = append(*p, MoveTo(a))
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b vec.Vec2) {
	*p = append(*p, LineTo(b))
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c vec.Vec2) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d vec.Vec2) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// Transform returns a copy of the path mapped through `m`.
func (p Path) Transform(m matrix.Matrix) Path {
	out := make(Path, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			out[i] = MoveTo(apply(m, vec.Vec2(op)))
		case LineTo:
			out[i] = LineTo(apply(m, vec.Vec2(op)))
		case QuadTo:
			out[i] = QuadTo{apply(m, op[0]), apply(m, op[1])}
		case CubicTo:
			out[i] = CubicTo{apply(m, op[0]), apply(m, op[1]), apply(m, op[2])}
		case Close:
			out[i] = op
		}
	}
	return out
}
