package gleicon

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// compute the bouding box of paths, needed to size a scene
// without an explicit `size`

// Bounds defines a bounding box, such as a page
// or a path extent.
type Bounds struct{ X, Y, W, H float64 }

// rect is a bounding box under construction
type rect struct{ minX, minY, maxX, maxY float64 }

func emptyRect() rect {
	return rect{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
}

func (r rect) isEmpty() bool { return r.minX > r.maxX || r.minY > r.maxY }

func (r *rect) add(x, y float64) {
	r.minX = math.Min(r.minX, x)
	r.minY = math.Min(r.minY, y)
	r.maxX = math.Max(r.maxX, x)
	r.maxY = math.Max(r.maxY, y)
}

func (r *rect) union(o rect) {
	if o.isEmpty() {
		return
	}
	r.add(o.minX, o.minY)
	r.add(o.maxX, o.maxY)
}

func (r rect) grow(d float64) rect {
	if r.isEmpty() {
		return r
	}
	return rect{r.minX - d, r.minY - d, r.maxX + d, r.maxY + d}
}

func (r rect) bounds() Bounds {
	if r.isEmpty() {
		return Bounds{}
	}
	b := Bounds{X: r.minX, Y: r.minY, W: r.maxX - r.minX, H: r.maxY - r.minY}
	if !b.IsFinite() {
		return Bounds{}
	}
	return b
}

// IsFinite is false if any field is infinite or NaN.
func (b Bounds) IsFinite() bool {
	for _, v := range [4]float64{b.X, b.Y, b.W, b.H} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type bezier interface {
	// compute the t zeroing the derivative
	criticalPoints() (tX, tY []float64)
	// compute the point a time t
	evaluateCurve(t float64) (x, y float64)
}

type line [2]vec.Vec2

func (l line) criticalPoints() (tX, tY []float64) {
	return nil, nil
}

func (l line) evaluateCurve(t float64) (x, y float64) {
	return bezierLine(l[0].X, l[1].X, t), bezierLine(l[0].Y, l[1].Y, t)
}

func bezierLine(p0, p1, t float64) float64 {
	return (p1-p0)*t + p0
}

type quadBezier [3]vec.Vec2

// quadratic polinomial
// x = At^2 + Bt + C
// where
// A = p0 + p2 - 2p1
// B = 2(p1 - p0)
// C = p0
func bezierQuad(p0, p1, p2, t float64) float64 {
	return (p0+p2-2*p1)*t*t + 2*(p1-p0)*t + p0
}

// derivative as at + b where a,b :
func quadraticDerivative(p0, p1, p2 float64) (a, b float64) {
	return 2 * (p2 - p1 - (p1 - p0)), 2 * (p1 - p0)
}

// handle the case where a = 0
func linearRoots(a, b float64) []float64 {
	if a == 0 {
		return nil
	}
	return []float64{-b / a}
}

func (cu quadBezier) criticalPoints() (tX, tY []float64) {
	aX, bX := quadraticDerivative(cu[0].X, cu[1].X, cu[2].X)
	aY, bY := quadraticDerivative(cu[0].Y, cu[1].Y, cu[2].Y)
	return linearRoots(aX, bX), linearRoots(aY, bY)
}

func (cu quadBezier) evaluateCurve(t float64) (x, y float64) {
	return bezierQuad(cu[0].X, cu[1].X, cu[2].X, t), bezierQuad(cu[0].Y, cu[1].Y, cu[2].Y, t)
}

type cubicBezier [4]vec.Vec2

func (cu cubicBezier) criticalPoints() (tX, tY []float64) {
	aX, bX, cX := cubicDerivative(cu[0].X, cu[1].X, cu[2].X, cu[3].X)
	aY, bY, cY := cubicDerivative(cu[0].Y, cu[1].Y, cu[2].Y, cu[3].Y)
	return quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)
}

func (cu cubicBezier) evaluateCurve(t float64) (x, y float64) {
	return bezierSpline(cu[0].X, cu[1].X, cu[2].X, cu[3].X, t),
		bezierSpline(cu[0].Y, cu[1].Y, cu[2].Y, cu[3].Y, t)
}

// cubic polinomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		(p0)
}

// derivative of bezierSpline, as at^2 + bt + c
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		return linearRoots(b, c)
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	if d == 0 {
		return []float64{-b / (2 * a)}
	}
	sd := math.Sqrt(d)
	return []float64{(-b + sd) / (2 * a), (-b - sd) / (2 * a)}
}

func curveBoundingBox(curve bezier) rect {
	resX, resY := curve.criticalPoints()
	out := emptyRect()
	// add begin and end point
	for _, t := range append(append(resX, 0, 1), resY...) {
		// filter invalid value
		if !(0 <= t && t <= 1) {
			continue
		}
		out.add(curve.evaluateCurve(t))
	}
	return out
}

// boundingBox returns the extent of the path, control points excluded
func (p Path) boundingBox() rect {
	out := emptyRect()
	var current, start vec.Vec2
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			current, start = vec.Vec2(op), vec.Vec2(op)
			out.add(current.X, current.Y)
		case LineTo:
			out.union(curveBoundingBox(line{current, vec.Vec2(op)}))
			current = vec.Vec2(op)
		case QuadTo:
			out.union(curveBoundingBox(quadBezier{current, op[0], op[1]}))
			current = op[1]
		case CubicTo:
			out.union(curveBoundingBox(cubicBezier{current, op[0], op[1], op[2]}))
			current = op[2]
		case Close:
			current = start
		}
	}
	return out
}

// pageBox returns the extent of the painting on the page,
// including half of the line width
func (p Painting) pageBox() rect {
	box := p.Path.Transform(p.Matrix).boundingBox()
	if p.Stroke.A != 0 {
		box = box.grow(p.LineWidth * scaleFactor(p.Matrix) / 2)
	}
	return box
}

// Bounds returns the page rectangle: the one set by `size`, or the extent
// of the primitives. Extents which are not finite give an empty rectangle.
func (s *Scene) Bounds() Bounds {
	if s.Width > 0 && s.Height > 0 {
		return Bounds{W: s.Width, H: s.Height}
	}
	box := emptyRect()
	for _, prim := range s.Primitives {
		for _, p := range prim.Paintings() {
			box.union(p.pageBox())
		}
	}
	return box.bounds()
}
