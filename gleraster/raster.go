// Implements a raster backend to render interpreted scenes,
// by wrapping rasterx.
package gleraster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/benoitkugler/okgle/gleicon"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
)

var _ gleicon.Driver = (*Renderer)(nil) // assert interface conformance

// Renderer paints into an image, with one rasterx
// filler and one dasher.
type Renderer struct {
	filler  filler
	stroker stroker
}

type filler struct{ *rasterx.Filler }

type stroker struct{ *rasterx.Dasher }

// NewRenderer returns a renderer with default values.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
// If scanner is nil, a default scanner rasterx.ScannerGV is used
// on a new image.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	if scanner == nil {
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		scanner = rasterx.NewScannerGV(width, height, img, img.Bounds())
	}
	return &Renderer{
		filler:  filler{rasterx.NewFiller(width, height, scanner)},
		stroker: stroker{rasterx.NewDasher(width, height, scanner)},
	}
}

func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (f gleicon.Filler, s gleicon.Stroker) {
	if willFill {
		f = rd.filler
	}
	if willStroke {
		s = rd.stroker
	}
	return f, s
}

func (f filler) SetColor(c color.NRGBA) { f.Scanner.SetColor(c) }

func (s stroker) SetColor(c color.NRGBA) { s.Scanner.SetColor(c) }

var (
	joinToJoin = [...]rasterx.JoinMode{
		gleicon.Miter: rasterx.Miter,
		gleicon.Round: rasterx.Round,
		gleicon.Bevel: rasterx.Bevel,
	}

	capToFunc = [...]rasterx.CapFunc{
		gleicon.ButtCap:   rasterx.ButtCap,
		gleicon.RoundCap:  rasterx.RoundCap,
		gleicon.SquareCap: rasterx.SquareCap,
	}
)

func (s stroker) SetStrokeOptions(options gleicon.StrokeOptions) {
	capF := capToFunc[options.Cap]
	s.SetStroke(
		options.LineWidth, options.MiterLimit, capF, capF, rasterx.FlatGap,
		joinToJoin[options.Join], options.Dash, options.DashOffset,
	)
}

// PixelsPerCm converts a resolution in dots per inch.
func PixelsPerCm(dpi float64) float64 { return dpi / 2.54 }

// MaxPixels bounds the area of the images built by RasterScene.
const MaxPixels = 1 << 28

// RasterScene renders the scene on a white image, at the
// given resolution.
// An error is returned if the image would be larger than MaxPixels.
func RasterScene(scene *gleicon.Scene, dpi float64) (*image.RGBA, error) {
	k := PixelsPerCm(dpi)
	b := scene.Bounds()
	fw, fh := math.Ceil(b.W*k-1e-6), math.Ceil(b.H*k-1e-6) // tolerate rounding of k
	// also catches NaN
	if !(fw >= 0 && fh >= 0 && fw <= MaxPixels && fh <= MaxPixels && fw*fh <= MaxPixels) {
		return nil, fmt.Errorf("invalid image size %gx%g at %g dpi", fw, fh, dpi)
	}
	w, h := int(fw), int(fh)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	renderer := NewRenderer(w, h, scanner)
	scene.Draw(renderer, scene.DeviceMatrix(k))
	return img, nil
}

// WritePNG renders the scene and encodes it to `out`.
func WritePNG(scene *gleicon.Scene, dpi float64, out io.Writer) error {
	img, err := RasterScene(scene, dpi)
	if err != nil {
		return err
	}
	return png.Encode(out, img)
}
