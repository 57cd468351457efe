package gleicon

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// maximum angle covered by one cubic of an arc approximation
const maxArcSegment = math.Pi / 2

func polar(center vec.Vec2, rx, ry, theta float64) vec.Vec2 {
	return vec.Vec2{X: center.X + rx*math.Cos(theta), Y: center.Y + ry*math.Sin(theta)}
}

// addArc appends an elliptical arc from `theta1` to `theta2` (radians,
// counter-clockwise when theta2 > theta1) to `p`. The starting point is
// expected to be the current point, unless `start` is true.
func (p *Path) addArc(center vec.Vec2, rx, ry, theta1, theta2 float64, start bool) {
	// Approximate the arc using a set of cubic bezier curves by the method of
	// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
	// or cubic Bezier curves", 2003
	// https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf
	deltaTheta := theta2 - theta1
	segs := int(math.Ceil(math.Abs(deltaTheta) / maxArcSegment))
	if segs == 0 {
		segs = 1
	}
	dTheta := deltaTheta / float64(segs)
	tde := math.Tan(dTheta / 2)
	alpha := math.Sin(dTheta) * (math.Sqrt(4+3*tde*tde) - 1) / 3

	derivative := func(eta float64) vec.Vec2 {
		return vec.Vec2{X: -rx * math.Sin(eta), Y: ry * math.Cos(eta)}
	}

	s1 := polar(center, rx, ry, theta1)
	if start {
		p.Start(s1)
	}
	ds1 := derivative(theta1)
	for i := 1; i <= segs; i++ {
		eta := theta1 + dTheta*float64(i)
		s2 := polar(center, rx, ry, eta)
		ds2 := derivative(eta)
		p.CubeBezier(s1.Add(ds1.Mul(alpha)), s2.Sub(ds2.Mul(alpha)), s2)
		s1, ds1 = s2, ds2
	}
}

func ellipsePath(center vec.Vec2, rx, ry float64) Path {
	var p Path
	p.addArc(center, rx, ry, 0, 2*math.Pi, true)
	p.Stop(true)
	return p
}

func rectPath(x, y, w, h float64) Path {
	var p Path
	p.Start(vec.Vec2{X: x, Y: y})
	p.Line(vec.Vec2{X: x + w, Y: y})
	p.Line(vec.Vec2{X: x + w, Y: y + h})
	p.Line(vec.Vec2{X: x, Y: y + h})
	p.Stop(true)
	return p
}

func polylinePath(points []vec.Vec2, closed bool) Path {
	var p Path
	for i, pt := range points {
		if i == 0 {
			p.Start(pt)
		} else {
			p.Line(pt)
		}
	}
	if len(points) > 0 {
		p.Stop(closed)
	}
	return p
}

func unit(v vec.Vec2) vec.Vec2 {
	l := math.Hypot(v.X, v.Y)
	if l == 0 {
		return vec.Vec2{X: 1}
	}
	return v.Mul(1 / l)
}

func rotate(v vec.Vec2, theta float64) vec.Vec2 {
	s, c := math.Sincos(theta)
	return vec.Vec2{X: c*v.X - s*v.Y, Y: s*v.X + c*v.Y}
}

// arrowHead returns the outline of an arrow head whose tip is at `tip`,
// pointing along `dir`. Simple heads are open.
func arrowHead(tip, dir vec.Vec2, st Style) Path {
	back := unit(dir).Mul(-st.ArrowSize)
	half := st.ArrowAngle * math.Pi / 180
	w1 := tip.Add(rotate(back, half))
	w2 := tip.Add(rotate(back, -half))
	var p Path
	p.Start(w1)
	p.Line(tip)
	p.Line(w2)
	p.Stop(st.ArrowStyle != SimpleArrow)
	return p
}
