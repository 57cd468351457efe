// Command glerender interprets a scene script and writes it
// as a PNG image, a PDF document or an SVG document.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/benoitkugler/okgle/gledata"
	"github.com/benoitkugler/okgle/gledraw"
	"github.com/benoitkugler/okgle/gleicon"
	"golang.org/x/term"
)

func main() {
	var (
		output   = flag.String("o", "", "output file; the extension selects the format (.png, .pdf, .svg), - for stdout")
		format   = flag.String("format", "", "output format when writing to stdout (png, pdf, svg)")
		dpi      = flag.Float64("dpi", 150, "resolution of raster output")
		errMode  = flag.String("errors", "strict", "handling of unsupported directives: strict, warn or ignore")
		encoding = flag.String("encoding", "utf-8", "charset of the script")
		dataDir  = flag.String("data", "", "directory of the data files (default: the script directory)")
		altPDF   = flag.Bool("alt-pdf", false, "use the content stream PDF writer")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s -o out.{png,pdf,svg} [flags] script.gle\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("glerender: ")

	if flag.NArg() != 1 || *output == "" {
		flag.Usage()
		os.Exit(2)
	}

	mode, err := gleicon.ParseErrorMode(*errMode)
	if err != nil {
		log.Fatal(err)
	}
	opts := gleicon.Options{ErrorMode: mode, Encoding: *encoding}
	if *dataDir != "" {
		opts.Data = gledata.Reader{Dir: *dataDir}
	}

	scene, err := gleicon.ReadScene(flag.Arg(0), &opts)
	if err != nil {
		log.Fatal(err)
	}
	drawOpts := gledraw.Options{DPI: *dpi, AltPDF: *altPDF}

	if *output != "-" {
		if err = gledraw.RenderFile(scene, *output, drawOpts); err != nil {
			log.Fatal(err)
		}
		return
	}

	f, err := gledraw.FormatFromName("out." + *format)
	if err != nil {
		log.Fatal(err)
	}
	if f.Binary() && term.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatalf("refusing to write %s output to a terminal", f)
	}
	if err = gledraw.Render(scene, f, os.Stdout, drawOpts); err != nil {
		log.Fatal(err)
	}
}
