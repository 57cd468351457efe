// Command glepreview interprets a scene script and shows
// the rasterized result in a window.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/benoitkugler/okgle/gleicon"
	"github.com/benoitkugler/okgle/gleraster"
	"github.com/hajimehoshi/ebiten/v2"
)

type preview struct {
	img *ebiten.Image
}

func (p *preview) Update() error { return nil }

func (p *preview) Draw(screen *ebiten.Image) {
	screen.DrawImage(p.img, nil)
}

func (p *preview) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := p.img.Bounds()
	return b.Dx(), b.Dy()
}

func main() {
	dpi := flag.Float64("dpi", 100, "resolution of the preview")
	errMode := flag.String("errors", "warn", "handling of unsupported directives: strict, warn or ignore")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] script.gle\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("glepreview: ")

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	mode, err := gleicon.ParseErrorMode(*errMode)
	if err != nil {
		log.Fatal(err)
	}
	scene, err := gleicon.ReadScene(flag.Arg(0), &gleicon.Options{ErrorMode: mode})
	if err != nil {
		log.Fatal(err)
	}

	img, err := gleraster.RasterScene(scene, *dpi)
	if err != nil {
		log.Fatal(err)
	}
	if img.Bounds().Empty() {
		log.Fatal("nothing to show: the scene is empty")
	}
	p := &preview{img: ebiten.NewImageFromImage(img)}

	ebiten.SetWindowTitle(filepath.Base(flag.Arg(0)))
	ebiten.SetWindowSize(img.Bounds().Dx(), img.Bounds().Dy())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err = ebiten.RunGame(p); err != nil {
		log.Fatal(err)
	}
}
