package alt

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/okgle/gleicon"
)

func TestRenderSceneToPDF(t *testing.T) {
	for _, name := range []string{"feedback", "graphs"} {
		scene, err := gleicon.ReadScene(filepath.Join("..", "..", "gleicon", "testdata", name+".gle"), nil)
		if err != nil {
			t.Fatalf("can't read scene: %s", err)
		}
		out := filepath.Join(t.TempDir(), name+".pdf")
		if err = RenderSceneToPDF(scene, out); err != nil {
			t.Fatalf("can't render scene: %s", err)
		}
		content, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(content, []byte("%PDF-")) {
			t.Errorf("%s: missing PDF header", name)
		}
	}
}
