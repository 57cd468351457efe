package glepdf

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/okgle/gleicon"
)

func TestRenderOperators(t *testing.T) {
	scene, err := gleicon.ReadSceneStream(strings.NewReader(`
size 2 2
amove 0.5 0.5
box 1 1 fill red
`), nil)
	if err != nil {
		t.Fatal(err)
	}
	pdf := NewDocument(scene)
	pdf.SetCompression(false)
	scene.Draw(NewRenderer(pdf), scene.DeviceMatrix(PointsPerCm))

	var out bytes.Buffer
	if err = pdf.Output(&out); err != nil {
		t.Fatal(err)
	}
	content := out.String()
	if !strings.HasPrefix(content, "%PDF-") {
		t.Fatal("missing PDF header")
	}
	// the box is written as a closed path, filled in red
	for _, op := range []string{"1.000 0.000 0.000 rg", " m\n", " l\n", "\nh\n"} {
		if !strings.Contains(content, op) {
			t.Errorf("missing operator %q", op)
		}
	}
}

func renderScene(t *testing.T, name string) {
	scene, err := gleicon.ReadScene(filepath.Join("..", "gleicon", "testdata", name+".gle"), nil)
	if err != nil {
		t.Fatalf("can't read scene: %s", err)
	}
	if err = os.MkdirAll("testdata_out", os.ModePerm); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(filepath.Join("testdata_out", name+".pdf"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err = RenderScene(scene, f); err != nil {
		t.Fatalf("can't render scene: %s", err)
	}
}

func TestScripts(t *testing.T) {
	for _, name := range []string{"feedback", "graphs"} {
		renderScene(t, name)
	}
}
