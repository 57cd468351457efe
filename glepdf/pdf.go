// Implements a PDF backend to render interpreted scenes,
// by wrapping github.com/jung-kurt/gofpdf.
package glepdf

import (
	"image/color"
	"io"
	"strings"

	"github.com/benoitkugler/okgle/gleicon"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ gleicon.Driver  = Renderer{}
	_ gleicon.Filler  = (*filler)(nil)
	_ gleicon.Stroker = (*stroker)(nil)
)

// PointsPerCm is the scale from page units to PDF points.
const PointsPerCm = 72 / 2.54

type Renderer struct {
	pdf *gofpdf.Fpdf
}

// implements the common path commands,
// shared by the filler and the stroker
type pather struct {
	pdf *gofpdf.Fpdf
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
}

// implements the stroking operation
type stroker struct {
	pather
}

// NewRenderer return a renderer which will
// write to the given `pdf`, whose unit must be the point.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf}
}

func (r Renderer) SetupDrawers(willFill, willStroke bool) (f gleicon.Filler, s gleicon.Stroker) {
	if willFill {
		f = &filler{pather: pather{pdf: r.pdf}, useNonZeroWinding: true}
	}
	if willStroke {
		s = &stroker{pather: pather{pdf: r.pdf}}
	}
	return f, s
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (p *pather) Clear() {}

func (p *pather) Start(a fixed.Point26_6) {
	p.pdf.MoveTo(fixedTof(a))
}

func (p *pather) Line(b fixed.Point26_6) {
	p.pdf.LineTo(fixedTof(b))
}

func (p *pather) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	cx, cy := fixedTof(b)
	x, y := fixedTof(c)
	p.pdf.CurveTo(cx, cy, x, y)
}

func (p *pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

func (f *filler) SetColor(c color.NRGBA) {
	f.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	f.pdf.SetAlpha(float64(c.A)/255, "Normal")
}

func (f *filler) Draw() {
	styleStr := "f*"
	if f.useNonZeroWinding {
		styleStr = "f"
	}
	f.pdf.DrawPath(styleStr)
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (s *stroker) SetColor(c color.NRGBA) {
	s.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	s.pdf.SetAlpha(float64(c.A)/255, "Normal")
}

var (
	capStyles  = [...]string{gleicon.ButtCap: "butt", gleicon.RoundCap: "round", gleicon.SquareCap: "square"}
	joinStyles = [...]string{gleicon.Miter: "miter", gleicon.Round: "round", gleicon.Bevel: "bevel"}
)

func (s *stroker) SetStrokeOptions(options gleicon.StrokeOptions) {
	s.pdf.SetLineWidth(float64(options.LineWidth) / 64)
	s.pdf.SetLineCapStyle(capStyles[options.Cap])
	s.pdf.SetLineJoinStyle(joinStyles[options.Join])
	s.pdf.SetDashPattern(options.Dash, options.DashOffset)
}

func (s *stroker) Draw() {
	s.pdf.DrawPath("D")
}

// NewDocument returns a one page document sized to the scene.
func NewDocument(scene *gleicon.Scene) *gofpdf.Fpdf {
	b := scene.Bounds()
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P", // the size is used as is
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: b.W * PointsPerCm, Ht: b.H * PointsPerCm},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	if len(scene.Titles) != 0 {
		pdf.SetTitle(strings.Join(scene.Titles, ", "), true)
	}
	return pdf
}

// RenderScene writes the scene as a PDF document to `out`.
func RenderScene(scene *gleicon.Scene, out io.Writer) error {
	pdf := NewDocument(scene)
	scene.Draw(NewRenderer(pdf), scene.DeviceMatrix(PointsPerCm))
	return pdf.Output(out)
}
