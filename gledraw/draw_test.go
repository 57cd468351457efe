package gledraw

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/okgle/gleicon"
)

const script = `
size 2.54 1.27
amove 0.5 0.5
box 1 0.5 fill blue
`

func readScene(t *testing.T) *gleicon.Scene {
	scene, err := gleicon.ReadSceneStream(strings.NewReader(script), nil)
	if err != nil {
		t.Fatal(err)
	}
	return scene
}

func TestFormatFromName(t *testing.T) {
	for _, test := range []struct {
		name   string
		format Format
		ok     bool
	}{
		{"a.png", PNG, true},
		{"dir/b.PDF", PDF, true},
		{"c.svg", SVG, true},
		{"d.eps", 0, false},
		{"noext", 0, false},
	} {
		f, err := FormatFromName(test.name)
		if test.ok != (err == nil) {
			t.Fatalf("%s: unexpected error %v", test.name, err)
		}
		if test.ok && f != test.format {
			t.Errorf("%s: expected %s, got %s", test.name, test.format, f)
		}
	}
	if SVG.Binary() || !PNG.Binary() || !PDF.Binary() {
		t.Error("unexpected binary formats")
	}
}

func TestRender(t *testing.T) {
	scene := readScene(t)

	var buf bytes.Buffer
	if err := Render(scene, PNG, &buf, Options{DPI: 100}); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("unexpected image size %v", b)
	}

	buf.Reset()
	if err := Render(scene, SVG, &buf, Options{DPI: 100}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `width="100" height="50"`) {
		t.Errorf("unexpected svg header in %s", buf.String())
	}

	buf.Reset()
	if err := Render(scene, PDF, &buf, Options{}); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("missing PDF header")
	}

	if err := Render(scene, PDF, &buf, Options{AltPDF: true}); err == nil {
		t.Error("expected error for alternative PDF on a stream")
	}
}

func TestRenderFile(t *testing.T) {
	scene := readScene(t)
	dir := t.TempDir()
	for _, name := range []string{"out.png", "out.pdf", "out.svg"} {
		path := filepath.Join(dir, name)
		if err := RenderFile(scene, path, Options{}); err != nil {
			t.Fatal(err)
		}
		if st, err := os.Stat(path); err != nil || st.Size() == 0 {
			t.Errorf("%s: missing output", name)
		}
	}

	path := filepath.Join(dir, "alt.pdf")
	if err := RenderFile(scene, path, Options{AltPDF: true}); err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		t.Error("missing PDF header")
	}

	if err := RenderFile(scene, filepath.Join(dir, "out.eps"), Options{}); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestRenderFileFailure(t *testing.T) {
	// too large to be rasterized
	scene, err := gleicon.ReadSceneStream(strings.NewReader("rline 9e8 9e8\n"), nil)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "huge.png")
	if err := RenderFile(scene, path, Options{}); err == nil {
		t.Fatal("expected rendering error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("partial output %s not removed", path)
	}
}
