// Package gledata reads the numeric data files plotted by graph blocks.
//
// A data file has one row per line; fields are separated by spaces, tabs
// or commas. Text after `!` or `#` is a comment. The fields `*`, `-` and
// `?` mark a missing value. A first row which is not numeric is
// read as column names.
package gledata

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/vec"
)

// ErrColumnRange is returned when accessing a column
// not present in a table.
var ErrColumnRange = errors.New("column index out of range")

// Table stores the numeric content of a data file.
// Missing values are NaN.
type Table struct {
	Names   []string // from the header row, may be empty
	Rows    [][]float64
	Columns int // length of the longest row
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '\t' || r == ',' || r == ';'
}

func stripComment(line string) string {
	if i := strings.IndexAny(line, "!#"); i >= 0 {
		return line[:i]
	}
	return line
}

func parseField(s string) (float64, bool) {
	switch s {
	case "*", "-", "?":
		return math.NaN(), true
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

// Parse reads a table from `r`.
func Parse(r io.Reader) (*Table, error) {
	var out Table
	scanner := bufio.NewScanner(r)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		fields := strings.FieldsFunc(stripComment(scanner.Text()), isSeparator)
		if len(fields) == 0 {
			continue
		}
		row := make([]float64, len(fields))
		for i, field := range fields {
			v, ok := parseField(field)
			if !ok {
				if len(out.Rows) == 0 && out.Names == nil {
					out.Names = fields
					row = nil
					break
				}
				return nil, fmt.Errorf("line %d: invalid number %q", lineNumber, field)
			}
			row[i] = v
		}
		if row == nil {
			continue
		}
		out.Rows = append(out.Rows, row)
		if len(row) > out.Columns {
			out.Columns = len(row)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return &out, nil
}

// Column returns the values of the column `index`, starting at 1.
// Short rows yield NaN.
func (t *Table) Column(index int) ([]float64, error) {
	if index < 1 || index > t.Columns {
		return nil, fmt.Errorf("%w: c%d, for %d columns", ErrColumnRange, index, t.Columns)
	}
	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		if index <= len(row) {
			out[i] = row[index-1]
		} else {
			out[i] = math.NaN()
		}
	}
	return out, nil
}

// Pairs zips two columns into points, in file order.
// Points with a missing coordinate are kept, as NaN.
func (t *Table) Pairs(xcol, ycol int) ([]vec.Vec2, error) {
	xs, err := t.Column(xcol)
	if err != nil {
		return nil, err
	}
	ys, err := t.Column(ycol)
	if err != nil {
		return nil, err
	}
	out := make([]vec.Vec2, len(xs))
	for i := range xs {
		out[i] = vec.Vec2{X: xs[i], Y: ys[i]}
	}
	return out, nil
}

// Reader loads tables from files.
type Reader struct {
	// Dir is the directory relative file names are resolved against.
	// It defaults to the working directory.
	Dir string
}

// Load reads the named file.
func (r Reader) Load(name string) (*Table, error) {
	if !filepath.IsAbs(name) && r.Dir != "" {
		name = filepath.Join(r.Dir, name)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}
