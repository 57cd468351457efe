// Implements an SVG backend to render interpreted scenes,
// by wrapping github.com/ajstarks/svgo.
package glesvg

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/benoitkugler/okgle/gleicon"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ gleicon.Driver  = Renderer{}
	_ gleicon.Filler  = (*filler)(nil)
	_ gleicon.Stroker = (*stroker)(nil)
)

// Renderer writes one <path> element per fill or stroke.
type Renderer struct {
	canvas *svg.SVG
}

// pather accumulates the path data
type pather struct {
	canvas *svg.SVG
	d      strings.Builder
	color  color.NRGBA
}

type filler struct {
	pather
	useNonZeroWinding bool
}

type stroker struct {
	pather
	options gleicon.StrokeOptions
}

// NewRenderer return a renderer writing to `canvas`,
// which must be started.
func NewRenderer(canvas *svg.SVG) Renderer {
	return Renderer{canvas: canvas}
}

func (r Renderer) SetupDrawers(willFill, willStroke bool) (f gleicon.Filler, s gleicon.Stroker) {
	if willFill {
		f = &filler{pather: pather{canvas: r.canvas}, useNonZeroWinding: true}
	}
	if willStroke {
		s = &stroker{pather: pather{canvas: r.canvas}}
	}
	return f, s
}

func fixedTos(v fixed.Int26_6) string {
	return strconv.FormatFloat(float64(v)/64, 'f', -1, 64)
}

func (p *pather) point(op byte, points ...fixed.Point26_6) {
	if p.d.Len() != 0 {
		p.d.WriteByte(' ')
	}
	p.d.WriteByte(op)
	for i, pt := range points {
		if i != 0 {
			p.d.WriteByte(' ')
		}
		p.d.WriteString(fixedTos(pt.X))
		p.d.WriteByte(',')
		p.d.WriteString(fixedTos(pt.Y))
	}
}

func (p *pather) Clear() { p.d.Reset() }

func (p *pather) Start(a fixed.Point26_6) { p.point('M', a) }

func (p *pather) Line(b fixed.Point26_6) { p.point('L', b) }

func (p *pather) QuadBezier(b, c fixed.Point26_6) { p.point('Q', b, c) }

func (p *pather) CubeBezier(b, c, d fixed.Point26_6) { p.point('C', b, c, d) }

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.d.WriteString(" Z")
	}
}

func (p *pather) SetColor(c color.NRGBA) { p.color = c }

func rgb(c color.NRGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func opacity(c color.NRGBA) string {
	return strconv.FormatFloat(math.Round(float64(c.A)/255*1000)/1000, 'f', -1, 64)
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (f *filler) Draw() {
	rule := "evenodd"
	if f.useNonZeroWinding {
		rule = "nonzero"
	}
	style := fmt.Sprintf("fill:%s;fill-opacity:%s;fill-rule:%s;stroke:none", rgb(f.color), opacity(f.color), rule)
	f.canvas.Path(f.d.String(), style)
}

func (s *stroker) SetStrokeOptions(options gleicon.StrokeOptions) {
	s.options = options
}

var (
	capNames  = [...]string{gleicon.ButtCap: "butt", gleicon.RoundCap: "round", gleicon.SquareCap: "square"}
	joinNames = [...]string{gleicon.Miter: "miter", gleicon.Round: "round", gleicon.Bevel: "bevel"}
)

func (s *stroker) Draw() {
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:%s;stroke-width:%s;stroke-linecap:%s;stroke-linejoin:%s;stroke-miterlimit:%s",
		rgb(s.color), opacity(s.color), fixedTos(s.options.LineWidth),
		capNames[s.options.Cap], joinNames[s.options.Join], fixedTos(s.options.MiterLimit))
	if len(s.options.Dash) != 0 {
		dashes := make([]string, len(s.options.Dash))
		for i, v := range s.options.Dash {
			dashes[i] = strconv.FormatFloat(v, 'f', 3, 64)
		}
		style += ";stroke-dasharray:" + strings.Join(dashes, ",")
	}
	s.canvas.Path(s.d.String(), style)
}

// RenderScene writes the scene as an SVG document to `out`,
// with `pxPerCm` user units per page unit.
func RenderScene(scene *gleicon.Scene, out io.Writer, pxPerCm float64) {
	b := scene.Bounds()
	canvas := svg.New(out)
	canvas.Start(int(math.Ceil(b.W*pxPerCm-1e-6)), int(math.Ceil(b.H*pxPerCm-1e-6)))
	if len(scene.Titles) != 0 {
		canvas.Title(strings.Join(scene.Titles, ", "))
	}
	scene.Draw(NewRenderer(canvas), scene.DeviceMatrix(pxPerCm))
	canvas.End()
}
