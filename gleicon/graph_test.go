package gleicon

import (
	"errors"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/benoitkugler/okgle/gledata"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"
)

// tables is an in memory data source
type tables map[string]string

func (ts tables) Load(name string) (*gledata.Table, error) {
	content, ok := ts[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return gledata.Parse(strings.NewReader(content))
}

func readGraph(t *testing.T, script string, data tables) (*Scene, error) {
	t.Helper()
	return ReadSceneStream(strings.NewReader(script), &Options{ErrorMode: StrictErrorMode, Data: data})
}

// polylines returns the series lines of the first graph
func polylines(scene *Scene) []Polyline {
	var out []Polyline
	for _, prim := range scene.Primitives {
		g, ok := prim.(Group)
		if !ok {
			continue
		}
		for _, p := range g.Primitives {
			if pl, ok := p.(Polyline); ok && !pl.Closed {
				out = append(out, pl)
			}
		}
	}
	return out
}

func TestGraphScript(t *testing.T) {
	scene, err := ReadScene("testdata/graphs.gle", nil)
	require.NoError(t, err)
	require.Len(t, scene.Primitives, 2)
	require.Equal(t, []string{"raw series"}, scene.Titles)

	left, right := scene.Primitives[0].(Group), scene.Primitives[1].(Group)
	require.NotEmpty(t, left.Primitives)
	require.NotEmpty(t, right.Primitives)

	var markers int
	for _, p := range right.Primitives {
		if c, ok := p.(Circle); ok && c.Style.Fill.A != 0 {
			markers++
		}
	}
	require.Equal(t, 5, markers) // 0.8 and 0.6 are above the axis max
}

const series = "0 0\n1 2\n2 9\n3 1\n4 3\n"

func TestGraphClipping(t *testing.T) {
	scene, err := readGraph(t, `
size 10 10
begin graph
	scale 0.5 0.5
	xaxis min 0 max 4
	yaxis min 0 max 5
	data "s.dat"
	d1 line
end graph
`, tables{"s.dat": series})
	require.NoError(t, err)

	lines := polylines(scene)
	require.Len(t, lines, 2) // the peak at 9 splits the series

	// axes rectangle is centered: [2.5, 7.5]
	lo, hi := vec.Vec2{X: 2.5, Y: 2.5}, vec.Vec2{X: 7.5, Y: 7.5}
	for _, l := range lines {
		for _, p := range l.Points {
			require.GreaterOrEqual(t, p.Y, lo.Y-1e-9)
			require.LessOrEqual(t, p.Y, hi.Y+1e-9)
			require.GreaterOrEqual(t, p.X, lo.X-1e-9)
			require.LessOrEqual(t, p.X, hi.X+1e-9)
		}
	}
	// the first run ends on the top side
	first := lines[0].Points
	require.InDelta(t, hi.Y, first[len(first)-1].Y, 1e-9)
}

func TestGraphAxisBounds(t *testing.T) {
	for _, axis := range []string{"xaxis min 3 max 3", "yaxis min 2 max 1", "yaxis log min 0"} {
		_, err := readGraph(t, "size 10 10\nbegin graph\n\t"+axis+"\nend graph\n", nil)
		var cerr *ConfigurationError
		require.True(t, errors.As(err, &cerr), axis)
		require.Equal(t, 3, cerr.Line, axis)
	}

	// a max below the data is clipped, not an error
	_, err := readGraph(t, "size 10 10\nbegin graph\n\tyaxis max 1\n\tdata s.dat\n\td1 line\nend graph\n",
		tables{"s.dat": series})
	require.NoError(t, err)
}

func TestGraphDataErrors(t *testing.T) {
	_, err := readGraph(t, "size 10 10\nbegin graph\n\tdata missing.dat\nend graph\n", tables{})
	var derr *DataSourceError
	require.True(t, errors.As(err, &derr))
	require.Equal(t, 3, derr.Line)
	require.Equal(t, "missing.dat", derr.Source)
	require.True(t, errors.Is(err, os.ErrNotExist))

	_, err = readGraph(t, "size 10 10\nbegin graph\n\tdata s.dat d1=c1,c7\nend graph\n", tables{"s.dat": series})
	require.True(t, errors.As(err, &derr))
	require.True(t, errors.Is(err, gledata.ErrColumnRange))

	_, err = readGraph(t, "size 10 10\nbegin graph\n\tdata s.dat\nend graph\n", tables{"s.dat": "1\n2\n"})
	require.True(t, errors.As(err, &derr))

	_, err = readGraph(t, "size 10 10\nbegin graph\n\tdata s.dat\nend graph\n", tables{"s.dat": "1 2\n3 x\n"})
	require.True(t, errors.As(err, &derr))
}

func TestGraphConfigurationErrors(t *testing.T) {
	tests := []struct {
		body string
		line int
	}{
		{"data s.dat\n\td2 line", 4}, // d2 is never bound
		{"d1 marker star", 3},
		{"d1 color nocolor", 3},
		{"xaxis dticks -1", 3},
		{"xaxis format \"fix x\"", 3},
		{"scale 2 1", 3},
		{"xticks maybe", 3},
	}
	for _, tt := range tests {
		_, err := readGraph(t, "size 10 10\nbegin graph\n\t"+tt.body+"\nend graph\n", tables{"s.dat": series})
		var cerr *ConfigurationError
		require.True(t, errors.As(err, &cerr), "%s: %v", tt.body, err)
		require.Equal(t, tt.line, cerr.Line, tt.body)
	}

	// without page size, graphs need their own
	_, err := readGraph(t, "begin graph\nend graph\n", nil)
	var cerr *ConfigurationError
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, 1, cerr.Line)
}

func TestGraphParseErrors(t *testing.T) {
	for _, body := range []string{
		"circle 2",
		"data s.dat d1=x1,c2",
		"xaxis min",
		"xaxis min 0 bogus",
		"begin rotate 10\n\tend rotate",
	} {
		_, err := readGraph(t, "size 10 10\nbegin graph\n\t"+body+"\nend graph\n", tables{"s.dat": series})
		var perr *ParseError
		require.True(t, errors.As(err, &perr), "%s: %v", body, err)
	}
}

func TestGraphKeyErrorMode(t *testing.T) {
	script := "size 10 10\nbegin graph\n\tdata s.dat\n\tkey pos tr\nend graph\n"
	_, err := readGraph(t, script, tables{"s.dat": series})
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, 4, perr.Line)
	require.True(t, errors.Is(err, errUnsupported))

	for _, mode := range []ErrorMode{IgnoreErrorMode, WarnErrorMode} {
		scene, err := ReadSceneStream(strings.NewReader(script), &Options{ErrorMode: mode, Data: tables{"s.dat": series}})
		require.NoError(t, err)
		require.Len(t, scene.Primitives, 1)
	}
}

func TestGraphBindings(t *testing.T) {
	_, err := readGraph(t, `
size 10 10
begin graph
	data a.dat
	data b.dat d5=c2,c1
	data a.dat
	d1 line
	d2 line
	d3 line
	d5 line
end graph
`, tables{"a.dat": "0 1 2\n1 2 3\n", "b.dat": "5 6\n7 8\n"})
	// a.dat twice gives d1, d2 then d6, d7: d3 has no data
	var cerr *ConfigurationError
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, 9, cerr.Line)
	require.True(t, errors.Is(err, errNoSuchDataset))
}

func TestGraphAutoBindings(t *testing.T) {
	scene, err := readGraph(t, `
size 10 10
begin graph
	data a.dat
	data b.dat d5=c2,c1
	d1 line
	d2 line lstyle 2 color red
	d5 line
end graph
`, tables{"a.dat": "0 1 2\n1 2 3\n", "b.dat": "5 6\n7 8\n"})
	require.NoError(t, err)

	lines := polylines(scene)
	require.Len(t, lines, 3)
	require.Equal(t, "2", lines[1].Style.LineStyle)
	require.Equal(t, uint8(0xff), lines[1].Style.Color.R)
}

func TestGraphTitles(t *testing.T) {
	scene, err := readGraph(t, `
size 10 10
begin graph
	title "main" hei 0.5
	ytitle "\tex{$\phi$}"
	x2axis off
	y2axis off
end graph
`, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"main"}, scene.Titles)

	g := scene.Primitives[0].(Group)
	var texts []Text
	for _, p := range g.Primitives {
		if tx, ok := p.(Text); ok {
			texts = append(texts, tx)
		}
	}
	var phi, main *Text
	for i, tx := range texts {
		switch tx.Text {
		case `\tex{$\phi$}`:
			phi = &texts[i]
		case "main":
			main = &texts[i]
		}
	}
	require.NotNil(t, phi)
	require.NotNil(t, main)
	require.Len(t, phi.Transforms, 1)
	require.Equal(t, 90., phi.Transforms[0].Angle)
	require.Equal(t, 0.5, main.Style.Height)
}

func TestAxisResolve(t *testing.T) {
	a, err := axisSpec{}.resolve([]float64{0.3, 8.7})
	require.NoError(t, err)
	require.Equal(t, 0., a.min)
	require.Equal(t, 10., a.max)
	require.Equal(t, []float64{0, 2, 4, 6, 8, 10}, a.ticks)
	require.Equal(t, []string{"0", "2", "4", "6", "8", "10"}, a.labels)
	require.Len(t, a.subticks, 15)

	a, err = axisSpec{min: -1, max: 1, hasMin: true, hasMax: true, format: numberFormat{'f', 1}}.resolve(nil)
	require.NoError(t, err)
	require.Equal(t, []string{"-1.0", "-0.5", "0.0", "0.5", "1.0"}, a.labels)

	a, err = axisSpec{log: true}.resolve([]float64{3, 420})
	require.NoError(t, err)
	require.Equal(t, []float64{1, 10, 100, 1000}, a.ticks)
	require.InDelta(t, 0.5, a.fraction(math.Sqrt(1000)), 1e-12)
	require.True(t, math.IsNaN(a.fraction(-1)))

	_, err = axisSpec{min: 2, hasMin: true, max: 2, hasMax: true}.resolve(nil)
	require.True(t, errors.Is(err, errAxisBounds))
	_, err = axisSpec{dticks: 1e-9}.resolve([]float64{0, 1e6})
	require.True(t, errors.Is(err, errTooManyTicks))
}

func TestNumberFormat(t *testing.T) {
	tests := []struct {
		format string
		v      float64
		want   string
	}{
		{"fix 2", 3.14159, "3.14"},
		{"sci 1", 31415, "3.1e+04"},
		{"round 2", 0.012345, "0.012"},
		{"FIX 0", 2.4, "2"},
	}
	for _, tt := range tests {
		f, err := parseNumberFormat(tt.format)
		require.NoError(t, err)
		require.Equal(t, tt.want, f.format(tt.v), tt.format)
	}
	for _, bad := range []string{"fix", "hex 2", "round 0", "fix -1"} {
		_, err := parseNumberFormat(bad)
		require.Error(t, err, bad)
	}
}

func TestClipPolyline(t *testing.T) {
	lo, hi := vec.Vec2{}, vec.Vec2{X: 4, Y: 4}
	nan := math.NaN()
	runs := clipPolyline([]vec.Vec2{
		{X: 0, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 6}, {X: 3, Y: 2},
		{X: 3.5, Y: nan}, {X: 4, Y: 3}, {X: 5, Y: 3},
	}, lo, hi)
	want := [][]vec.Vec2{
		{{X: 0, Y: 1}, {X: 1, Y: 2}, {X: 1.5, Y: 4}},
		{{X: 2.5, Y: 4}, {X: 3, Y: 2}},
	}
	if diff := cmp.Diff(want, runs, approx); diff != "" {
		t.Fatal(diff)
	}

	_, _, ok := clipSegment(vec.Vec2{X: -1, Y: -1}, vec.Vec2{X: -1, Y: 5}, lo, hi)
	require.False(t, ok)
}
