package glesvg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/benoitkugler/okgle/gleicon"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, script string) string {
	scene, err := gleicon.ReadSceneStream(strings.NewReader(script), nil)
	require.NoError(t, err)
	var out bytes.Buffer
	RenderScene(scene, &out, 10)
	return out.String()
}

func TestRenderBox(t *testing.T) {
	out := render(t, `
size 4 4
amove 1 1
box 2 1 fill red
`)
	require.Contains(t, out, `width="40" height="40"`)
	require.Contains(t, out, `d="M10,30 L30,30 L30,20 L10,20 Z"`)
	require.Contains(t, out, "fill:rgb(255,0,0);fill-opacity:1;fill-rule:nonzero")
	require.Contains(t, out, "stroke:rgb(0,0,0);stroke-opacity:1;stroke-width:0.203125")
	require.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
}

func TestRenderDashes(t *testing.T) {
	out := render(t, `
size 2 2
set lstyle 2 color rgba(0, 0, 1, 0.5)
amove 0 1
rline 2 0
`)
	require.Contains(t, out, "stroke-dasharray:0.400,0.800")
	require.Contains(t, out, "stroke:rgb(0,0,255);stroke-opacity:0.502")
	require.NotContains(t, out, "fill:rgb")
}

func TestRenderTitles(t *testing.T) {
	out := render(t, `
size 6 6
begin graph
	title "calibration"
end graph
`)
	require.Contains(t, out, "<title>calibration</title>")
}
