package gleicon

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// recorder counts the operations sent to a drawer
type recorder struct {
	ops     []string
	colors  []color.NRGBA
	options []StrokeOptions
	points  []fixed.Point26_6
}

func (r *recorder) Clear() { r.ops = append(r.ops, "clear") }

func (r *recorder) Start(a fixed.Point26_6) { r.ops, r.points = append(r.ops, "M"), append(r.points, a) }

func (r *recorder) Line(b fixed.Point26_6) { r.ops, r.points = append(r.ops, "L"), append(r.points, b) }

func (r *recorder) QuadBezier(_, c fixed.Point26_6) { r.ops, r.points = append(r.ops, "Q"), append(r.points, c) }

func (r *recorder) CubeBezier(_, _, d fixed.Point26_6) {
	r.ops, r.points = append(r.ops, "C"), append(r.points, d)
}

func (r *recorder) Stop(closeLoop bool) {
	if closeLoop {
		r.ops = append(r.ops, "Z")
	}
}

func (r *recorder) SetColor(c color.NRGBA) { r.colors = append(r.colors, c) }

func (r *recorder) Draw() { r.ops = append(r.ops, "draw") }

func (r *recorder) SetWinding(bool) {}

func (r *recorder) SetStrokeOptions(o StrokeOptions) { r.options = append(r.options, o) }

type recordingDriver struct {
	fill, stroke recorder
}

func (d *recordingDriver) SetupDrawers(willFill, willStroke bool) (f Filler, s Stroker) {
	if willFill {
		f = &d.fill
	}
	if willStroke {
		s = &d.stroke
	}
	return f, s
}

func TestDrawFillAndStroke(t *testing.T) {
	scene := readString(t, `
size 4 4
amove 1 1
box 2 1 fill red
set lwidth 0
circle 0.5
`)
	var d recordingDriver
	scene.Draw(&d, scene.DeviceMatrix(10))

	// the box is filled and stroked, the circle has no width and no fill
	require.Equal(t, []color.NRGBA{{R: 0xff, A: 0xff}}, d.fill.colors)
	require.Len(t, d.stroke.colors, 1)
	require.Len(t, d.stroke.options, 1)
	require.Equal(t, fToFixed(0.2), d.stroke.options[0].LineWidth)

	// page (1, 1) is 10 units from the left, 30 from the top
	require.Equal(t, fixed.Point26_6{X: fixed.I(10), Y: fixed.I(30)}, d.fill.points[0])
	require.Equal(t, []string{"clear", "M", "L", "L", "L", "Z", "draw"}, d.fill.ops)
}

func TestDrawDashScaling(t *testing.T) {
	scene := readString(t, "set lstyle 2\namove 0 0\nrline 1 0\n")
	var d recordingDriver
	scene.Draw(&d, matrix.Matrix{10, 0, 0, 10, 0, 0})

	require.Len(t, d.stroke.options, 1)
	require.InDeltaSlice(t, []float64{0.4, 0.8}, d.stroke.options[0].Dash, 1e-9)
}

func TestDeviceMatrix(t *testing.T) {
	scene := readString(t, "size 5 3\n")
	m := scene.DeviceMatrix(2)
	require.Equal(t, vec.Vec2{X: 0, Y: 6}, apply(m, vec.Vec2{}))
	require.Equal(t, vec.Vec2{X: 10, Y: 0}, apply(m, vec.Vec2{X: 5, Y: 3}))
}

func TestBounds(t *testing.T) {
	scene := readString(t, `
set lwidth 0
amove 1 1
circle 1
begin rotate 90
	box 2 1
end rotate
`)
	b := scene.Bounds()
	require.InDelta(t, 0, b.X, 1e-9)
	require.InDelta(t, 0, b.Y, 1e-9)
	require.InDelta(t, 2, b.W, 1e-9)
	require.InDelta(t, 3, b.H, 1e-9)
}

func TestBoundsNotFinite(t *testing.T) {
	base := Base{Style: DefaultStyle, Matrix: matrix.Identity}
	for _, center := range []vec.Vec2{{X: math.NaN(), Y: 1}, {X: math.Inf(1)}} {
		scene := Scene{Primitives: []Primitive{Circle{Base: base, Center: center, Radius: 1}}}
		b := scene.Bounds()
		require.True(t, b.IsFinite())
		require.Equal(t, Bounds{}, b)
	}

	scene := Scene{Primitives: []Primitive{Circle{Base: base, Center: vec.Vec2{X: 1, Y: 1}, Radius: 1}}}
	require.True(t, scene.Bounds().IsFinite())
	require.False(t, Bounds{W: math.Inf(1)}.IsFinite())
}

func TestCurveBoundingBox(t *testing.T) {
	// a symmetric arch: the top is at 3/4 of the control height
	box := curveBoundingBox(cubicBezier{{X: 0}, {X: 0, Y: 4}, {X: 4, Y: 4}, {X: 4}})
	require.InDelta(t, 0, box.minX, 1e-9)
	require.InDelta(t, 4, box.maxX, 1e-9)
	require.InDelta(t, 3, box.maxY, 1e-9)

	box = curveBoundingBox(quadBezier{{X: 0}, {X: 1, Y: 2}, {X: 2}})
	require.InDelta(t, 1, box.maxY, 1e-9)
}

func TestPathString(t *testing.T) {
	var p Path
	p.Start(vec.Vec2{X: 1, Y: 2})
	p.Line(vec.Vec2{X: 3, Y: 4})
	p.Stop(true)
	require.Equal(t, "M1,2 L3,4 Z", p.String())
}
