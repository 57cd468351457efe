// Alternative implementation of PDF rendering, writing
// the content stream directly (experimental)
package alt

import (
	"image/color"

	"github.com/benoitkugler/okgle/gleicon"
	"github.com/benoitkugler/okgle/glepdf"
	"github.com/benoitkugler/pdf/contentstream"
	"github.com/benoitkugler/pdf/model"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ gleicon.Driver  = Renderer{}
	_ gleicon.Filler  = (*filler)(nil)
	_ gleicon.Stroker = (*stroker)(nil)
)

type Renderer struct {
	pdf                 *contentstream.Appearance
	fillOpacityStates   map[uint8]*model.GraphicState
	strokeOpacityStates map[uint8]*model.GraphicState
}

// implements the common path commands,
// shared by the filler and the stroker
type pather struct {
	pdf *contentstream.Appearance
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
	fillOpacityStates map[uint8]*model.GraphicState
}

// implements the stroking operation. Filling ends the
// path, so the stroker writes it again.
type stroker struct {
	pather
	strokeOpacityStates map[uint8]*model.GraphicState
}

// RenderSceneToPDF renders the scene into the given file.
func RenderSceneToPDF(scene *gleicon.Scene, pdfName string) error {
	b := scene.Bounds()
	w, h := b.W*glepdf.PointsPerCm, b.H*glepdf.PointsPerCm
	pdf := contentstream.NewAppearance(w, h)
	renderer := NewRenderer(&pdf)
	pdf.Ops(
		contentstream.OpSave{},
		contentstream.OpConcat{Matrix: model.Matrix{1, 0, 0, -1, 0, h}},
	)
	scene.Draw(renderer, scene.DeviceMatrix(glepdf.PointsPerCm))
	pdf.Ops(contentstream.OpRestore{})

	var (
		doc  model.Document
		page model.PageObject
	)
	pdf.ApplyToPageObject(&page, true)
	doc.Catalog.Pages.Kids = append(doc.Catalog.Pages.Kids, &page)
	return doc.WriteFile(pdfName, nil)
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(cs *contentstream.Appearance) Renderer {
	return Renderer{
		pdf:                 cs,
		fillOpacityStates:   make(map[uint8]*model.GraphicState),
		strokeOpacityStates: make(map[uint8]*model.GraphicState),
	}
}

func (r Renderer) SetupDrawers(willFill, willStroke bool) (f gleicon.Filler, s gleicon.Stroker) {
	if willFill {
		f = &filler{pather: pather{pdf: r.pdf}, useNonZeroWinding: true, fillOpacityStates: r.fillOpacityStates}
	}
	if willStroke {
		s = &stroker{pather: pather{pdf: r.pdf}, strokeOpacityStates: r.strokeOpacityStates}
	}
	return f, s
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (p *pather) Clear() {}

func (p *pather) Start(a fixed.Point26_6) {
	x, y := fixedTof(a)
	p.pdf.Ops(contentstream.OpMoveTo{X: x, Y: y})
}

func (p *pather) Line(b fixed.Point26_6) {
	x, y := fixedTof(b)
	p.pdf.Ops(contentstream.OpLineTo{X: x, Y: y})
}

func (p *pather) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	cx, cy := fixedTof(b)
	x, y := fixedTof(c)
	p.pdf.Ops(contentstream.OpCurveTo1{X2: cx, Y2: cy, X3: x, Y3: y})
}

func (p *pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.Ops(contentstream.OpCubicTo{X1: cx0, Y1: cy0, X2: cx1, Y2: cy1, X3: x, Y3: y})
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.Ops(contentstream.OpClosePath{})
	}
}

// opacityState selects the graphic state for `alpha`, cached in `cache`
func (p *pather) opacityState(cache map[uint8]*model.GraphicState, alpha uint8, stroke bool) {
	gs, ok := cache[alpha]
	if !ok {
		gs = &model.GraphicState{BM: []model.Name{"Normal"}}
		if stroke {
			gs.CA = model.ObjFloat(float64(alpha) / 255)
		} else {
			gs.Ca = model.ObjFloat(float64(alpha) / 255)
		}
		cache[alpha] = gs
	}
	name := p.pdf.AddExtGState(gs)
	p.pdf.Ops(contentstream.OpSetExtGState{Dict: name})
}

func (f *filler) SetColor(c color.NRGBA) {
	f.pdf.SetColorFill(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	f.opacityState(f.fillOpacityStates, c.A, false)
}

func (f *filler) Draw() {
	if f.useNonZeroWinding {
		f.pdf.Ops(contentstream.OpFill{})
	} else {
		f.pdf.Ops(contentstream.OpEOFill{})
	}
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (s *stroker) SetStrokeOptions(options gleicon.StrokeOptions) {
	var capStyle, joinStyle uint8
	switch options.Cap {
	case gleicon.ButtCap:
		capStyle = 0
	case gleicon.RoundCap:
		capStyle = 1
	case gleicon.SquareCap:
		capStyle = 2
	}
	switch options.Join {
	case gleicon.Miter:
		joinStyle = 0
	case gleicon.Round:
		joinStyle = 1
	case gleicon.Bevel:
		joinStyle = 2
	}

	s.pdf.Ops(
		contentstream.OpSetDash{Dash: model.DashPattern{
			Array: options.Dash,
			Phase: options.DashOffset,
		}},
		contentstream.OpSetLineWidth{W: float64(options.LineWidth) / 64},
		contentstream.OpSetLineCap{Style: capStyle},
		contentstream.OpSetLineJoin{Style: joinStyle},
		contentstream.OpSetMiterLimit{Limit: float64(options.MiterLimit) / 64},
	)
}

func (s *stroker) SetColor(c color.NRGBA) {
	s.pdf.SetColorStroke(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	s.opacityState(s.strokeOpacityStates, c.A, true)
}

func (s *stroker) Draw() {
	s.pdf.Ops(contentstream.OpStroke{})
}
