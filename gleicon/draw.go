package gleicon

import (
	"image/color"
	"math"

	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/matrix"
)

// Given an interpreted scene, implements how to
// draw it on a device.
// This requires a driver implementing the actual draw operations,
// such as a rasterizer to output .png images or a pdf writer.

// Drawer knows how to do the actual draw operations
// but doesn't need any scene kwowledge.
// In particular, tranformations matrix are already applied to the points
// before sending them to the Drawer.
type Drawer interface {
	// Clear must reset the internal state (used before starting a new path painting)
	Clear()

	// Start starts a new path at the given point.
	Start(a fixed.Point26_6)

	// Line Adds a line for the current point to `b`
	Line(b fixed.Point26_6)

	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)

	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)

	// Closes the path to the start point if `closeLoop` is true
	Stop(closeLoop bool)

	// SetColor set the color for the current path. It is called
	// before the path operations.
	SetColor(color color.NRGBA)

	// Draw fills or strokes the accumulated path using the current settings
	Draw()
}

type Filler interface {
	Drawer

	// Decide to use or not the NonZeroWinding rule for the current path
	SetWinding(useNonZeroWinding bool)
}

type Stroker interface {
	Drawer

	// Parametrize the stroking style for the current path
	SetStrokeOptions(options StrokeOptions)
}

type Driver interface {
	// SetupDrawers returns the backend painters, and
	// will be called at the begining of every path.
	// If the `willXXX` boolean is false, the returned drawer should be nil
	// to avoid useless operations.
	// When both booleans are true, one can assume that the exact same draw operations
	// will be performed on the Filler first and then on the Stroker.
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)
}

// StrokeOptions are expressed in device units.
type StrokeOptions struct {
	LineWidth  fixed.Int26_6
	MiterLimit fixed.Int26_6
	Join       JoinMode
	Cap        CapMode
	Dash       []float64 // nil or empty for a solid line
	DashOffset float64
}

const miterLimit = 4

// Painting is one path with its paint settings, in the coordinates
// mapped to the page by Matrix.
type Painting struct {
	Path   Path
	Matrix matrix.Matrix

	Fill   color.NRGBA // a zero alpha disables filling
	Stroke color.NRGBA // a zero alpha disables stroking

	LineWidth   float64
	Dash        []float64
	Cap         CapMode
	Join        JoinMode
	EvenOddFill bool
}

// stroked returns a painting outlining `path` with the line settings of `st`
func stroked(path Path, st Style, m matrix.Matrix) Painting {
	return Painting{
		Path:      path,
		Matrix:    m,
		Stroke:    st.Color,
		LineWidth: st.LineWidth,
		Dash:      st.DashPattern(),
		Cap:       st.Cap,
		Join:      st.Join,
	}
}

// scaleFactor is the length scaling of `m`, exact for
// similarities
func scaleFactor(m matrix.Matrix) float64 {
	return math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
}

// Draw the interpreted scene into the driver `d`,
// mapping page coordinates with `m` (see DeviceMatrix).
func (s *Scene) Draw(d Driver, m matrix.Matrix) {
	for _, prim := range s.Primitives {
		for _, p := range prim.Paintings() {
			p.drawTransformed(d, m)
		}
	}
}

// drawTransformed draws the painting into the driver while applying transform t.
func (p Painting) drawTransformed(d Driver, t matrix.Matrix) {
	m := p.Matrix.Mul(t)

	willStroke := p.Stroke.A != 0 && p.LineWidth > 0
	filler, stroker := d.SetupDrawers(p.Fill.A != 0, willStroke)
	if filler != nil {
		filler.Clear()
		filler.SetWinding(!p.EvenOddFill)
		filler.SetColor(p.Fill)

		for _, op := range p.Path {
			op.drawTo(filler, m)
		}
		filler.Stop(false)

		filler.Draw()
		filler.SetWinding(true) // default is true
	}

	if stroker != nil {
		stroker.Clear()

		k := scaleFactor(m)
		var dash []float64
		if len(p.Dash) != 0 {
			dash = make([]float64, len(p.Dash))
			for i, v := range p.Dash {
				dash[i] = v * k
			}
		}
		stroker.SetStrokeOptions(StrokeOptions{
			LineWidth:  fToFixed(p.LineWidth * k),
			MiterLimit: fToFixed(miterLimit),
			Join:       p.Join,
			Cap:        p.Cap,
			Dash:       dash,
		})

		stroker.SetColor(p.Stroke)

		for _, op := range p.Path {
			op.drawTo(stroker, m)
		}
		stroker.Stop(false)

		stroker.Draw()
	}
}

// DeviceMatrix returns the transform from page coordinates
// (y pointing up) to device coordinates (y pointing down, origin at the
// top left of the scene bounds), with `unitsPerCm` device units per page unit.
func (s *Scene) DeviceMatrix(unitsPerCm float64) matrix.Matrix {
	b := s.Bounds()
	k := unitsPerCm
	return matrix.Matrix{k, 0, 0, -k, -b.X * k, (b.Y + b.H) * k}
}
