package gledata

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cheekybits/is"
)

func TestParse(t *testing.T) {
	is := is.New(t)

	tb, err := Parse(strings.NewReader(`
! bandwidth measurements
x  y1  y2
1  2.5 3
2, 3.5, *   # missing y2
3	4.5
`))
	is.NoErr(err)
	is.Equal(tb.Names, []string{"x", "y1", "y2"})
	is.Equal(len(tb.Rows), 3)
	is.Equal(tb.Columns, 3)
	is.Equal(tb.Rows[0], []float64{1, 2.5, 3})
	is.True(math.IsNaN(tb.Rows[1][2]))

	y2, err := tb.Column(3)
	is.NoErr(err)
	is.Equal(y2[0], 3.)
	is.True(math.IsNaN(y2[1]))
	is.True(math.IsNaN(y2[2])) // short row
}

func TestParseInvalid(t *testing.T) {
	is := is.New(t)

	_, err := Parse(strings.NewReader("1 2\n3 abc\n"))
	is.Err(err)
	is.True(strings.Contains(err.Error(), "line 2"))
}

func TestPairs(t *testing.T) {
	is := is.New(t)

	tb, err := Parse(strings.NewReader("0 1 10\n1 2 20\n2 3 30\n"))
	is.NoErr(err)

	pts, err := tb.Pairs(1, 3)
	is.NoErr(err)
	is.Equal(len(pts), 3)
	is.Equal(pts[2].X, 2.)
	is.Equal(pts[2].Y, 30.)

	_, err = tb.Pairs(1, 4)
	is.True(errors.Is(err, ErrColumnRange))
	_, err = tb.Pairs(0, 2)
	is.True(errors.Is(err, ErrColumnRange))
}

func TestReader(t *testing.T) {
	is := is.New(t)

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "series.dat"), []byte("1 1\n2 4\n3 9\n"), 0o644)
	is.NoErr(err)

	tb, err := Reader{Dir: dir}.Load("series.dat")
	is.NoErr(err)
	is.Equal(len(tb.Rows), 3)

	_, err = Reader{Dir: dir}.Load("missing.dat")
	is.True(errors.Is(err, os.ErrNotExist))
}
