// Package gletext lays out text strings for the scene interpreter:
// given a string, a font family and a height, it returns the glyph
// outlines and the metrics needed to justify and draw the text.
//
// Outlines come from the Go fonts embedded in golang.org/x/image.
package gletext

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/vec"
)

// SegmentOp is the kind of a glyph outline segment.
type SegmentOp uint8

const (
	MoveTo SegmentOp = iota
	LineTo
	QuadTo
	CubeTo
)

// Segment is one outline command. Only the first 1, 2 or 3 points of
// Args are used, for MoveTo/LineTo, QuadTo and CubeTo.
type Segment struct {
	Op   SegmentOp
	Args [3]vec.Vec2
}

// Layout is a shaped string, in page units. The origin is the start
// of the baseline, with y pointing up.
type Layout struct {
	Width   float64
	Ascent  float64 // above the baseline, positive
	Descent float64 // below the baseline, positive
	Outline []Segment
}

// families maps the GLE font names to the embedded fonts
var families = map[string][]byte{
	"rm":       goregular.TTF,
	"texcmr":   goregular.TTF,
	"pstr":     goregular.TTF,
	"psh":      goregular.TTF,
	"ss":       gomedium.TTF,
	"texcmss":  gomedium.TTF,
	"tt":       gomono.TTF,
	"texcmtt":  gomono.TTF,
	"psc":      gomono.TTF,
	"pscb":     gomonobold.TTF,
	"rmb":      gobold.TTF,
	"texcmb":   gobold.TTF,
	"texcmbx":  gobold.TTF,
	"pshb":     gobold.TTF,
	"pstb":     gobold.TTF,
	"rmi":      goitalic.TTF,
	"texcmti":  goitalic.TTF,
	"texcmmi":  goitalic.TTF,
	"psti":     goitalic.TTF,
	"pshbi":    gobolditalic.TTF,
	"pstbi":    gobolditalic.TTF,
	"texcmcsc": gosmallcaps.TTF,
}

// the glyphs are loaded at this size (in pixels per em) and then scaled
// to the requested height
var ppem = fixed.I(1000)

// Shaper lays out strings with the embedded fonts.
// Parsed fonts are cached; a Shaper is not safe for concurrent use.
type Shaper struct {
	fonts map[string]*sfnt.Font
	buf   sfnt.Buffer
}

// NewShaper returns a shaper with an empty font cache.
func NewShaper() *Shaper {
	return &Shaper{fonts: make(map[string]*sfnt.Font)}
}

// Families returns the supported font family names, sorted.
func Families() []string {
	names := maps.Keys(families)
	slices.Sort(names)
	return names
}

// HasFamily returns true if `family` is supported.
func (s *Shaper) HasFamily(family string) bool {
	_, ok := families[strings.ToLower(family)]
	return ok
}

func (s *Shaper) loadFont(family string) (*sfnt.Font, error) {
	family = strings.ToLower(family)
	if f, ok := s.fonts[family]; ok {
		return f, nil
	}
	data, ok := families[family]
	if !ok {
		return nil, fmt.Errorf("unknown font family %q", family)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %q: %w", family, err)
	}
	s.fonts[family] = f
	return f, nil
}

// Shape lays out `text` with the given font family, at the given height
// (the em size, in page units). Embedded \tex{...} markup is
// reduced to its plain text content.
func (s *Shaper) Shape(text, family string, height float64) (Layout, error) {
	f, err := s.loadFont(family)
	if err != nil {
		return Layout{}, err
	}
	text = PlainText(text)

	k := height / float64(ppem) // from 26.6 pixels to page units
	metrics, err := f.Metrics(&s.buf, ppem, font.HintingNone)
	if err != nil {
		return Layout{}, err
	}
	out := Layout{
		Ascent:  float64(metrics.Ascent) * k,
		Descent: float64(metrics.Descent) * k,
	}

	var (
		dot  fixed.Int26_6
		prev sfnt.GlyphIndex
	)
	for i, r := range text {
		idx, err := f.GlyphIndex(&s.buf, r)
		if err != nil {
			return Layout{}, err
		}
		if idx == 0 { // missing glyph: use '?'
			idx, _ = f.GlyphIndex(&s.buf, '?')
		}
		if i > 0 {
			kern, err := f.Kern(&s.buf, prev, idx, ppem, font.HintingNone)
			if err == nil {
				dot += kern
			}
		}
		segments, err := f.LoadGlyph(&s.buf, idx, ppem, nil)
		if err != nil {
			return Layout{}, err
		}
		for _, seg := range segments {
			out.Outline = append(out.Outline, convertSegment(seg, dot, k))
		}
		adv, err := f.GlyphAdvance(&s.buf, idx, ppem, font.HintingNone)
		if err != nil {
			return Layout{}, err
		}
		dot += adv
		prev = idx
	}
	out.Width = float64(dot) * k
	return out, nil
}

// sfnt outlines have y pointing down
func convertSegment(seg sfnt.Segment, dot fixed.Int26_6, k float64) Segment {
	out := Segment{}
	n := 1
	switch seg.Op {
	case sfnt.SegmentOpMoveTo:
		out.Op = MoveTo
	case sfnt.SegmentOpLineTo:
		out.Op = LineTo
	case sfnt.SegmentOpQuadTo:
		out.Op, n = QuadTo, 2
	case sfnt.SegmentOpCubeTo:
		out.Op, n = CubeTo, 3
	}
	for i := 0; i < n; i++ {
		out.Args[i] = vec.Vec2{
			X: float64(seg.Args[i].X+dot) * k,
			Y: -float64(seg.Args[i].Y) * k,
		}
	}
	return out
}
