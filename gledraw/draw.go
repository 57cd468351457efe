// Given an interpreted scene, implements how to
// draw it to a file.
// The actual draw operations are done by the drivers of
// okgle/gleraster (.png images), okgle/glepdf (.pdf documents)
// and okgle/glesvg (.svg documents).
package gledraw

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/okgle/gleicon"
	"github.com/benoitkugler/okgle/glepdf"
	"github.com/benoitkugler/okgle/glepdf/alt"
	"github.com/benoitkugler/okgle/gleraster"
	"github.com/benoitkugler/okgle/glesvg"
)

// Format is an output format.
type Format uint8

const (
	PNG Format = iota
	PDF
	SVG
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case PDF:
		return "pdf"
	case SVG:
		return "svg"
	default:
		return fmt.Sprintf("<format %d>", f)
	}
}

// Binary is true for the formats not meant to be printed.
func (f Format) Binary() bool { return f != SVG }

// FormatFromName deduces the format from the file extension.
func FormatFromName(fileName string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(fileName)); ext {
	case ".png":
		return PNG, nil
	case ".pdf":
		return PDF, nil
	case ".svg":
		return SVG, nil
	default:
		return 0, fmt.Errorf("unsupported output extension %q", ext)
	}
}

// Options tunes the rendering.
type Options struct {
	// DPI is the resolution of raster images, and the scale
	// of SVG documents. It defaults to 150.
	DPI float64
	// AltPDF selects the content stream writer of glepdf/alt
	// for PDF files.
	AltPDF bool
}

func (opts Options) dpi() float64 {
	if opts.DPI <= 0 {
		return 150
	}
	return opts.DPI
}

// Render writes the scene to `out`, with the given format.
// The alternative PDF writer needs a file and is
// not supported here.
func Render(scene *gleicon.Scene, format Format, out io.Writer, opts Options) error {
	switch format {
	case PNG:
		return gleraster.WritePNG(scene, opts.dpi(), out)
	case PDF:
		if opts.AltPDF {
			return fmt.Errorf("alternative PDF writer requires a file output")
		}
		return glepdf.RenderScene(scene, out)
	case SVG:
		w := bufio.NewWriter(out)
		glesvg.RenderScene(scene, w, gleraster.PixelsPerCm(opts.dpi()))
		return w.Flush()
	default:
		return fmt.Errorf("unsupported format %s", format)
	}
}

// RenderFile writes the scene to `fileName`, whose extension
// selects the format. The file is removed if the rendering fails.
func RenderFile(scene *gleicon.Scene, fileName string, opts Options) error {
	format, err := FormatFromName(fileName)
	if err != nil {
		return err
	}
	if format == PDF && opts.AltPDF {
		return alt.RenderSceneToPDF(scene, fileName)
	}

	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	if err = Render(scene, format, f, opts); err != nil {
		f.Close()
		os.Remove(fileName)
		return fmt.Errorf("rendering %s: %w", fileName, err)
	}
	return f.Close()
}
