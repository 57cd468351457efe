package gleicon

import (
	"image/color"
	"math"

	"github.com/benoitkugler/okgle/gletext"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Base is the state snapshot shared by every primitive: the style and
// transform stack active when the primitive was emitted.
// Geometry is stored in the block coordinates; Matrix maps it to the page.
type Base struct {
	Style      Style
	Transforms []Transform // outermost first
	Matrix     matrix.Matrix
	Line       int // emitting directive
}

// Attrs returns the snapshot.
func (b Base) Attrs() Base { return b }

// Primitive is one drawable element of a Scene.
type Primitive interface {
	Attrs() Base
	// Paintings reduces the primitive to paths.
	Paintings() []Painting
}

var (
	_ Primitive = Circle{}
	_ Primitive = Ellipse{}
	_ Primitive = Box{}
	_ Primitive = Line{}
	_ Primitive = Arc{}
	_ Primitive = Text{}
	_ Primitive = Polyline{}
	_ Primitive = Group{}
)

type Circle struct {
	Base
	Center vec.Vec2
	Radius float64
}

func (c Circle) Paintings() []Painting {
	p := stroked(ellipsePath(c.Center, c.Radius, c.Radius), c.Style, c.Matrix)
	p.Fill = c.Style.Fill
	return []Painting{p}
}

type Ellipse struct {
	Base
	Center vec.Vec2
	RX, RY float64
}

func (e Ellipse) Paintings() []Painting {
	p := stroked(ellipsePath(e.Center, e.RX, e.RY), e.Style, e.Matrix)
	p.Fill = e.Style.Fill
	return []Painting{p}
}

// Box is a rectangle located by its anchor and justification.
type Box struct {
	Base
	Anchor        vec.Vec2
	Width, Height float64
	Just          Justify
	NoBox         bool // only fill, no outline
}

// Origin returns the lower left corner of the box.
func (b Box) Origin() vec.Vec2 {
	o := b.Anchor
	switch b.Just.H {
	case HCenter:
		o.X -= b.Width / 2
	case Right:
		o.X -= b.Width
	}
	switch b.Just.V {
	case VCenter:
		o.Y -= b.Height / 2
	case Top:
		o.Y -= b.Height
	}
	return o
}

func (b Box) Paintings() []Painting {
	o := b.Origin()
	p := stroked(rectPath(o.X, o.Y, b.Width, b.Height), b.Style, b.Matrix)
	p.Fill = b.Style.Fill
	if b.NoBox {
		p.Stroke = color.NRGBA{}
	}
	return []Painting{p}
}

type Line struct {
	Base
	From, To vec.Vec2
	Arrows   Arrows
}

func (l Line) Paintings() []Painting {
	var path Path
	path.Start(l.From)
	path.Line(l.To)
	out := []Painting{stroked(path, l.Style, l.Matrix)}
	dir := l.To.Sub(l.From)
	if l.Arrows&ArrowStart != 0 {
		out = append(out, arrowPainting(l.From, dir.Mul(-1), l.Style, l.Matrix))
	}
	if l.Arrows&ArrowEnd != 0 {
		out = append(out, arrowPainting(l.To, dir, l.Style, l.Matrix))
	}
	return out
}

// Arc is a circular arc, swept counter-clockwise from Start to End
// (in degrees).
type Arc struct {
	Base
	Center     vec.Vec2
	Radius     float64
	Start, End float64
	Arrows     Arrows
}

// Sweep returns the swept angle in degrees, which is never negative.
func (a Arc) Sweep() float64 {
	d := a.End - a.Start
	for d < 0 {
		d += 360
	}
	return d
}

func (a Arc) Paintings() []Painting {
	t1 := a.Start * math.Pi / 180
	t2 := t1 + a.Sweep()*math.Pi/180
	var path Path
	path.addArc(a.Center, a.Radius, a.Radius, t1, t2, true)
	out := []Painting{stroked(path, a.Style, a.Matrix)}
	if a.Arrows&ArrowStart != 0 {
		tip := polar(a.Center, a.Radius, a.Radius, t1)
		dir := vec.Vec2{X: math.Sin(t1), Y: -math.Cos(t1)}
		out = append(out, arrowPainting(tip, dir, a.Style, a.Matrix))
	}
	if a.Arrows&ArrowEnd != 0 {
		tip := polar(a.Center, a.Radius, a.Radius, t2)
		dir := vec.Vec2{X: -math.Sin(t2), Y: math.Cos(t2)}
		out = append(out, arrowPainting(tip, dir, a.Style, a.Matrix))
	}
	return out
}

var white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

func arrowPainting(tip, dir vec.Vec2, st Style, m matrix.Matrix) Painting {
	st.LineStyle = "1" // heads are never dashed
	p := stroked(arrowHead(tip, dir, st), st, m)
	switch st.ArrowStyle {
	case FilledArrow:
		p.Fill = st.Color
	case EmptyArrow:
		p.Fill = white
	}
	return p
}

// Text is a shaped string, located by its anchor and justification.
type Text struct {
	Base
	Anchor vec.Vec2
	Text   string
	Just   Justify
	Layout gletext.Layout
}

// Origin returns the start of the baseline.
func (t Text) Origin() vec.Vec2 {
	o := t.Anchor
	switch t.Just.H {
	case HCenter:
		o.X -= t.Layout.Width / 2
	case Right:
		o.X -= t.Layout.Width
	}
	switch t.Just.V {
	case Bottom:
		o.Y += t.Layout.Descent
	case VCenter:
		o.Y += (t.Layout.Descent - t.Layout.Ascent) / 2
	case Top:
		o.Y -= t.Layout.Ascent
	}
	return o
}

func (t Text) Paintings() []Painting {
	o := t.Origin()
	var path Path
	for _, seg := range t.Layout.Outline {
		switch seg.Op {
		case gletext.MoveTo:
			path.Start(seg.Args[0].Add(o))
		case gletext.LineTo:
			path.Line(seg.Args[0].Add(o))
		case gletext.QuadTo:
			path.QuadBezier(seg.Args[0].Add(o), seg.Args[1].Add(o))
		case gletext.CubeTo:
			path.CubeBezier(seg.Args[0].Add(o), seg.Args[1].Add(o), seg.Args[2].Add(o))
		}
	}
	if len(path) == 0 {
		return nil
	}
	return []Painting{{Path: path, Matrix: t.Matrix, Fill: t.Style.Color}}
}

// Polyline is used for graph series, axes and markers.
// Closed polylines are filled with the style fill.
type Polyline struct {
	Base
	Points []vec.Vec2
	Closed bool
}

func (p Polyline) Paintings() []Painting {
	if len(p.Points) < 2 {
		return nil
	}
	out := stroked(polylinePath(p.Points, p.Closed), p.Style, p.Matrix)
	if p.Closed {
		out.Fill = p.Style.Fill
	}
	return []Painting{out}
}

// Group is the self-contained output of a graph block.
type Group struct {
	Base
	Primitives []Primitive
}

func (g Group) Paintings() []Painting {
	var out []Painting
	for _, prim := range g.Primitives {
		out = append(out, prim.Paintings()...)
	}
	return out
}
