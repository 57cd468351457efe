package gleraster

import (
	"bytes"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/okgle/gleicon"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// 10 pixels per cm
const dpi = 25.4

func readScene(t *testing.T, script string) *gleicon.Scene {
	scene, err := gleicon.ReadSceneStream(strings.NewReader(script), nil)
	if err != nil {
		t.Fatal(err)
	}
	return scene
}

func TestRasterBox(t *testing.T) {
	img, err := RasterScene(readScene(t, `
size 4 4
set lwidth 0.2
amove 1 1
box 2 2 fill red
`), dpi)
	if err != nil {
		t.Fatal(err)
	}

	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 40 {
		t.Fatalf("unexpected image size %v", b)
	}
	red := color.RGBA{R: 0xff, A: 0xff}
	if got := img.RGBAAt(20, 20); got != red {
		t.Errorf("expected red in the box, got %v", got)
	}
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	if got := img.RGBAAt(3, 3); got != white {
		t.Errorf("expected white background, got %v", got)
	}
	// the outline is black, on the page line y = 1
	if got := img.RGBAAt(20, 30); got.R > 0x80 {
		t.Errorf("expected dark outline, got %v", got)
	}
}

func TestRasterRotation(t *testing.T) {
	// a thin box rotated of 90 degrees about its anchor
	img, err := RasterScene(readScene(t, `
size 4 4
amove 2 1
begin rotate 90
	box 2 0.4 fill blue nobox
end rotate
`), dpi)
	if err != nil {
		t.Fatal(err)
	}

	blue := color.RGBA{B: 0xff, A: 0xff}
	// page (1.8, 2) is inside the rotated box, page (3, 1.2) is not
	if got := img.RGBAAt(18, 20); got != blue {
		t.Errorf("expected blue, got %v", got)
	}
	if got := img.RGBAAt(30, 28); got.B != 0xff || got.R != 0xff {
		t.Errorf("expected white, got %v", got)
	}
}

func TestWritePNG(t *testing.T) {
	scene, err := gleicon.ReadScene(filepath.Join("..", "gleicon", "testdata", "feedback.gle"), nil)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err = WritePNG(scene, 72, &buf); err != nil {
		t.Fatal(err)
	}
	if err = os.MkdirAll("testdata_out", os.ModePerm); err != nil {
		t.Fatal(err)
	}
	if err = os.WriteFile("testdata_out/feedback.png", buf.Bytes(), os.ModePerm); err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	// 8 x 9 cm at 72 dpi
	if b := img.Bounds(); b.Dx() != 227 || b.Dy() != 256 {
		t.Errorf("unexpected image size %v", b)
	}
}

func TestRasterSizeLimit(t *testing.T) {
	huge := readScene(t, "amove 0 0\nrline 9e8 9e8\n")
	if _, err := RasterScene(huge, dpi); err == nil {
		t.Fatal("expected error for a huge image")
	}
	if err := WritePNG(huge, dpi, io.Discard); err == nil {
		t.Fatal("expected error for a huge image")
	}

	// non finite extents give an empty image
	nan := &gleicon.Scene{Primitives: []gleicon.Primitive{gleicon.Circle{
		Base:   gleicon.Base{Style: gleicon.DefaultStyle, Matrix: matrix.Identity},
		Center: vec.Vec2{X: math.NaN()},
		Radius: 1,
	}}}
	img, err := RasterScene(nan, dpi)
	if err != nil {
		t.Fatal(err)
	}
	if !img.Bounds().Empty() {
		t.Errorf("expected empty image, got %v", img.Bounds())
	}
}
