package gleicon

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"seehuhn.de/go/geom/vec"
)

const defaultGraphScale = 0.7

type graphTitle struct {
	text string
	hei  float64 // 0 for the default
}

// dataset is one series of a graph, `dN` in the script
type dataset struct {
	bound  bool
	source string
	points []vec.Vec2

	styled    bool // referenced by a `dN` directive
	styleLine int
	line      bool
	style     Style
	marker    string
	msize     float64
}

// graphBuilder accumulates the content of a begin graph ... end graph block.
type graphBuilder struct {
	line   int
	text   string
	origin vec.Vec2 // lower left corner of the size box

	size      vec.Vec2
	scale     vec.Vec2
	autoScale bool

	title        graphTitle
	axes         [2]axisSpec // x, y
	x2Off, y2Off bool
	nobox        bool

	base     Style // style at begin graph
	datasets map[int]*dataset
}

func newGraphBuilder(c *sceneCursor, d directive) *graphBuilder {
	return &graphBuilder{
		line:     d.line,
		text:     d.text,
		origin:   c.pos,
		size:     vec.Vec2{X: c.scene.Width, Y: c.scene.Height},
		scale:    vec.Vec2{X: defaultGraphScale, Y: defaultGraphScale},
		base:     c.style,
		datasets: make(map[int]*dataset),
	}
}

func (g *graphBuilder) dataset(index int) *dataset {
	ds, ok := g.datasets[index]
	if !ok {
		ds = &dataset{style: g.base}
		g.datasets[index] = ds
	}
	return ds
}

var datasetName = regexp.MustCompile(`^d([0-9]+)$`)

// readDirective handles one line inside the graph block
func (g *graphBuilder) readDirective(c *sceneCursor, d directive) error {
	switch kw := d.keyword; kw {
	case "size":
		if len(d.args) != 2 {
			return c.parseError(d, errParamMismatch)
		}
		v, err := c.lengths(d, d.args)
		if err != nil {
			return err
		}
		g.size = vec.Vec2{X: v[0], Y: v[1]}
	case "scale":
		return g.readScale(c, d)
	case "title":
		return g.readTitle(c, d, &g.title)
	case "xtitle", "ytitle":
		return g.readTitle(c, d, &g.axis(kw).title)
	case "xaxis", "yaxis":
		return g.readAxis(c, d, g.axis(kw))
	case "x2axis", "y2axis":
		if _, err := c.readOptions(d, d.args, map[string]int{"off": 0}); err != nil {
			return err
		}
		if kw == "x2axis" {
			g.x2Off = true
		} else {
			g.y2Off = true
		}
	case "xsubticks", "ysubticks", "xticks", "yticks":
		off, err := g.readSwitch(c, d)
		if err != nil {
			return err
		}
		if strings.HasSuffix(kw, "subticks") {
			g.axis(kw).subticksOff = off
		} else {
			g.axis(kw).ticksOff = off
		}
	case "xlabels", "ylabels":
		return g.readLabels(c, d, g.axis(kw))
	case "nobox":
		if len(d.args) != 0 {
			return c.parseError(d, errParamMismatch)
		}
		g.nobox = true
	case "data":
		return g.readData(c, d)
	case "key":
		return c.unsupported(d)
	case "begin":
		if len(d.args) == 0 || !unsupportedBlocks[c.fold(d.args[0])] {
			return c.parseError(d, fmt.Errorf("%w: nested block in graph", errUnbalanced))
		}
		return beginF(c, d)
	default:
		m := datasetName.FindStringSubmatch(kw)
		if m == nil {
			return c.parseError(d, fmt.Errorf("%w %q in graph", errUnknownCommand, kw))
		}
		index, err := strconv.Atoi(m[1])
		if err != nil || index == 0 {
			return c.parseError(d, fmt.Errorf("invalid dataset %q", kw))
		}
		return g.readDatasetStyle(c, d, g.dataset(index))
	}
	return nil
}

// axis returns the axis configured by a x... or y... keyword
func (g *graphBuilder) axis(keyword string) *axisSpec {
	if keyword[0] == 'x' {
		return &g.axes[0]
	}
	return &g.axes[1]
}

func (g *graphBuilder) readScale(c *sceneCursor, d directive) error {
	if len(d.args) == 1 && c.fold(d.args[0]) == "auto" {
		g.autoScale = true
		return nil
	}
	if len(d.args) != 2 {
		return c.parseError(d, errParamMismatch)
	}
	v, err := c.numbers(d, d.args)
	if err != nil {
		return err
	}
	for i, f := range v {
		if f <= 0 || f > 1 {
			return c.configError(d, "scale", d.args[i], fmt.Errorf("expected a fraction in ]0, 1]"))
		}
	}
	g.scale, g.autoScale = vec.Vec2{X: v[0], Y: v[1]}, false
	return nil
}

func (g *graphBuilder) readTitle(c *sceneCursor, d directive, title *graphTitle) error {
	if len(d.args) == 0 {
		return c.parseError(d, errParamMismatch)
	}
	opts, err := c.readOptions(d, d.args[1:], map[string]int{"hei": 1, "dist": 1, "font": 1, "color": 1})
	if err != nil {
		return err
	}
	title.text = d.args[0]
	if hei, ok := opts["hei"]; ok {
		v, err := c.lengths(d, []string{hei})
		if err != nil {
			return err
		}
		title.hei = v[0]
	}
	for _, ignored := range []string{"dist", "font", "color"} {
		if _, ok := opts[ignored]; ok && c.errorMode == WarnErrorMode {
			log.Printf("line %d: title option %s is not supported, ignored", d.line, ignored)
		}
	}
	return nil
}

// readSwitch reads an optional on|off argument
func (g *graphBuilder) readSwitch(c *sceneCursor, d directive) (off bool, err error) {
	if len(d.args) != 1 {
		return false, c.parseError(d, errParamMismatch)
	}
	switch value := c.fold(d.args[0]); value {
	case "off":
		return true, nil
	case "on":
		return false, nil
	default:
		return false, c.configError(d, d.keyword, value, errBadValue)
	}
}

var axisOptions = map[string]int{
	"min": 1, "max": 1, "dticks": 1, "nticks": 1, "format": 1, "hei": 1,
	"log": 0, "off": 0, "on": 0,
}

func (g *graphBuilder) readAxis(c *sceneCursor, d directive, spec *axisSpec) error {
	opts, err := c.readOptions(d, d.args, axisOptions)
	if err != nil {
		return err
	}
	spec.line = d.line
	numeric := func(name string) (float64, bool, error) {
		value, ok := opts[name]
		if !ok {
			return 0, false, nil
		}
		v, err := c.numbers(d, []string{value})
		if err != nil {
			return 0, false, err
		}
		return v[0], true, nil
	}

	var (
		v  float64
		ok bool
	)
	if v, ok, err = numeric("min"); err != nil {
		return err
	} else if ok {
		spec.min, spec.hasMin = v, true
	}
	if v, ok, err = numeric("max"); err != nil {
		return err
	} else if ok {
		spec.max, spec.hasMax = v, true
	}
	if v, ok, err = numeric("dticks"); err != nil {
		return err
	} else if ok {
		if v <= 0 {
			return c.configError(d, "dticks", opts["dticks"], fmt.Errorf("expected a positive step"))
		}
		spec.dticks = v
	}
	if v, ok, err = numeric("nticks"); err != nil {
		return err
	} else if ok {
		if v < 1 || v != math.Trunc(v) {
			return c.configError(d, "nticks", opts["nticks"], fmt.Errorf("expected a positive integer"))
		}
		spec.nticks = int(v)
	}
	if v, ok, err = numeric("hei"); err != nil {
		return err
	} else if ok {
		spec.labelHei = math.Abs(v)
	}
	if value, ok := opts["format"]; ok {
		if spec.format, err = parseNumberFormat(value); err != nil {
			return c.valueError(d, "format", value, err)
		}
	}
	if _, ok := opts["log"]; ok {
		spec.log = true
	}
	if _, ok := opts["off"]; ok {
		spec.off = true
	}
	if _, ok := opts["on"]; ok {
		spec.off = false
	}
	if spec.hasMin && spec.hasMax && spec.min >= spec.max {
		return c.configError(d, d.keyword, fmt.Sprintf("min %g max %g", spec.min, spec.max), errAxisBounds)
	}
	if spec.log && ((spec.hasMin && spec.min <= 0) || (spec.hasMax && spec.max <= 0)) {
		return c.configError(d, d.keyword, "log", errLogBounds)
	}
	return nil
}

func (g *graphBuilder) readLabels(c *sceneCursor, d directive, spec *axisSpec) error {
	opts, err := c.readOptions(d, d.args, map[string]int{"off": 0, "on": 0, "hei": 1})
	if err != nil {
		return err
	}
	if len(opts) == 0 {
		return c.parseError(d, errParamMismatch)
	}
	if _, ok := opts["off"]; ok {
		spec.labelsOff = true
	}
	if _, ok := opts["on"]; ok {
		spec.labelsOff = false
	}
	if hei, ok := opts["hei"]; ok {
		v, err := c.lengths(d, []string{hei})
		if err != nil {
			return err
		}
		spec.labelHei = v[0]
	}
	return nil
}

var (
	errBinding    = errors.New("invalid dataset binding, expected dN=cX,cY")
	errFewColumns = errors.New("at least two columns are required")
)

// parseBinding reads dN=cX,cY
func parseBinding(s string) (index, xcol, ycol int, err error) {
	name, cols, ok := strings.Cut(s, "=")
	if !ok {
		return 0, 0, 0, errBinding
	}
	m := datasetName.FindStringSubmatch(name)
	if m == nil {
		return 0, 0, 0, errBinding
	}
	cx, cy, ok := strings.Cut(cols, ",")
	if !ok || !strings.HasPrefix(cx, "c") || !strings.HasPrefix(cy, "c") {
		return 0, 0, 0, errBinding
	}
	index, err1 := strconv.Atoi(m[1])
	xcol, err2 := strconv.Atoi(cx[1:])
	ycol, err3 := strconv.Atoi(cy[1:])
	if err1 != nil || err2 != nil || err3 != nil || index == 0 {
		return 0, 0, 0, errBinding
	}
	return index, xcol, ycol, nil
}

func (g *graphBuilder) readData(c *sceneCursor, d directive) error {
	if len(d.args) == 0 {
		return c.parseError(d, errParamMismatch)
	}
	source := d.args[0]
	type binding struct{ index, x, y int }
	var bindings []binding
	for _, arg := range d.args[1:] {
		index, x, y, err := parseBinding(c.fold(arg))
		if err != nil {
			return c.parseError(d, fmt.Errorf("%w: %q", err, arg))
		}
		bindings = append(bindings, binding{index, x, y})
	}

	table, err := c.data.Load(source)
	if err != nil {
		return &DataSourceError{Line: d.line, Source: source, Err: err}
	}

	if len(bindings) == 0 { // column 1 is x, the others are new datasets
		if table.Columns < 2 {
			return &DataSourceError{Line: d.line, Source: source, Err: errFewColumns}
		}
		offset := 0
		for index, ds := range g.datasets {
			if ds.bound && index > offset {
				offset = index
			}
		}
		for k := 1; k < table.Columns; k++ {
			bindings = append(bindings, binding{offset + k, 1, k + 1})
		}
	}
	for _, b := range bindings {
		points, err := table.Pairs(b.x, b.y)
		if err != nil {
			return &DataSourceError{Line: d.line, Source: source, Err: err}
		}
		ds := g.dataset(b.index)
		ds.bound, ds.source, ds.points = true, source, points
	}
	return nil
}

var datasetOptions = map[string]int{
	"line": 0, "lstyle": 1, "lwidth": 1, "color": 1, "marker": 1, "msize": 1, "key": 1,
}

func (g *graphBuilder) readDatasetStyle(c *sceneCursor, d directive, ds *dataset) error {
	opts, err := c.readOptions(d, d.args, datasetOptions)
	if err != nil {
		return err
	}
	if !ds.styled {
		ds.styled, ds.styleLine = true, d.line
	}
	if _, ok := opts["line"]; ok {
		ds.line = true
	}
	for _, field := range []string{"lstyle", "lwidth", "color"} {
		value, ok := opts[field]
		if !ok {
			continue
		}
		if err := styleFields[field](c, &ds.style, value); err != nil {
			return c.valueError(d, field, value, err)
		}
	}
	if value, ok := opts["marker"]; ok {
		value = c.fold(value)
		if _, known := markers[value]; !known {
			names := maps.Keys(markers)
			slices.Sort(names)
			return c.configError(d, "marker", value, fmt.Errorf("%w (expected one of %s)", errBadValue,
				strings.Join(names, ", ")))
		}
		ds.marker = value
	}
	if value, ok := opts["msize"]; ok {
		v, err := c.lengths(d, []string{value})
		if err != nil {
			return err
		}
		ds.msize = v[0]
	}
	return nil
}

// graphLayout maps data values to block coordinates
type graphLayout struct {
	lo, hi vec.Vec2 // corners of the axes rectangle
	x, y   axis
}

func (l graphLayout) toPage(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: l.lo.X + (l.hi.X-l.lo.X)*l.x.fraction(p.X),
		Y: l.lo.Y + (l.hi.Y-l.lo.Y)*l.y.fraction(p.Y),
	}
}

func (g *graphBuilder) labelHei(spec axisSpec) float64 {
	if spec.labelHei > 0 {
		return spec.labelHei
	}
	return g.base.Height
}

func (g *graphBuilder) titleHei(t graphTitle, factor float64) float64 {
	if t.hei > 0 {
		return t.hei
	}
	return g.base.Height * factor
}

// axesRectangle returns the corners of the axes
func (g *graphBuilder) axesRectangle() (lo, hi vec.Vec2) {
	if !g.autoScale {
		w, h := g.size.X*g.scale.X, g.size.Y*g.scale.Y
		lo = g.origin.Add(vec.Vec2{X: (g.size.X - w) / 2, Y: (g.size.Y - h) / 2})
		return lo, lo.Add(vec.Vec2{X: w, Y: h})
	}
	xl, yl := g.labelHei(g.axes[0]), g.labelHei(g.axes[1])
	left := 4*yl + 2*g.titleHei(g.axes[1].title, 1)
	bottom := 2.5*xl + 2*g.titleHei(g.axes[0].title, 1)
	top := 2 * g.titleHei(g.title, 1.2)
	right := xl
	lo = g.origin.Add(vec.Vec2{X: left, Y: bottom})
	hi = g.origin.Add(g.size).Sub(vec.Vec2{X: right, Y: top})
	return lo, hi
}

// build checks the block and emits its content
func (g *graphBuilder) build(c *sceneCursor) (Group, error) {
	d := directive{line: g.line, text: g.text}
	if g.size.X <= 0 || g.size.Y <= 0 {
		return Group{}, c.configError(d, "size", "", fmt.Errorf("graph size is not set"))
	}

	indices := maps.Keys(g.datasets)
	slices.Sort(indices)
	var xs, ys []float64
	for _, index := range indices {
		ds := g.datasets[index]
		if ds.styled && !ds.bound {
			d := directive{line: ds.styleLine, text: fmt.Sprintf("d%d", index)}
			return Group{}, c.configError(d, fmt.Sprintf("d%d", index), "", errNoSuchDataset)
		}
		for _, p := range ds.points {
			xs, ys = append(xs, p.X), append(ys, p.Y)
		}
	}

	var (
		layout graphLayout
		err    error
	)
	if layout.x, err = g.axes[0].resolve(xs); err != nil {
		return Group{}, c.configError(directive{line: g.axisLine(0), text: d.text}, "xaxis", "", err)
	}
	if layout.y, err = g.axes[1].resolve(ys); err != nil {
		return Group{}, c.configError(directive{line: g.axisLine(1), text: d.text}, "yaxis", "", err)
	}
	layout.lo, layout.hi = g.axesRectangle()
	if !(layout.lo.X < layout.hi.X && layout.lo.Y < layout.hi.Y) {
		return Group{}, c.configError(d, "size", "", fmt.Errorf("graph too small for its labels"))
	}

	group := Group{Base: c.base(d)}
	e := graphEmitter{c: c, d: d, g: g, layout: layout}
	if err = e.axes(); err != nil {
		return Group{}, err
	}
	for _, index := range indices {
		e.series(g.datasets[index])
	}
	group.Primitives = e.out
	if g.title.text != "" {
		c.scene.Titles = append(c.scene.Titles, g.title.text)
	}
	return group, nil
}

func (g *graphBuilder) axisLine(i int) int {
	if l := g.axes[i].line; l != 0 {
		return l
	}
	return g.line
}

// graphEmitter produces the primitives of a graph
type graphEmitter struct {
	c      *sceneCursor
	d      directive
	g      *graphBuilder
	layout graphLayout
	out    []Primitive
}

func (e *graphEmitter) base(st Style) Base {
	b := e.c.base(e.d)
	b.Style = st
	return b
}

func (e *graphEmitter) segment(st Style, from, to vec.Vec2) {
	e.out = append(e.out, Line{Base: e.base(st), From: from, To: to})
}

func (e *graphEmitter) text(s string, anchor vec.Vec2, just Justify, hei, angle float64) (Text, error) {
	t, err := e.c.newText(e.d, s, anchor, just, hei)
	if err != nil {
		return t, err
	}
	if angle != 0 {
		rot := Transform{Kind: Rotate, Pivot: anchor, Angle: angle}
		t.Transforms = append(t.Transforms, rot)
		t.Matrix = rot.Matrix().Mul(t.Matrix)
	}
	e.out = append(e.out, t)
	return t, nil
}

// axes emits the frame, ticks, labels and titles
func (e *graphEmitter) axes() error {
	g, l := e.g, e.layout
	st := g.base
	st.LineStyle, st.Fill = "1", colorNone

	xs, ys := g.axes[0], g.axes[1]
	corner := func(fx, fy float64) vec.Vec2 {
		return vec.Vec2{X: l.lo.X + fx*(l.hi.X-l.lo.X), Y: l.lo.Y + fy*(l.hi.Y-l.lo.Y)}
	}
	mirrorX := !g.nobox && !g.x2Off && !xs.off
	mirrorY := !g.nobox && !g.y2Off && !ys.off
	if !xs.off {
		e.segment(st, corner(0, 0), corner(1, 0))
	}
	if !ys.off {
		e.segment(st, corner(0, 0), corner(0, 1))
	}
	if mirrorX {
		e.segment(st, corner(0, 1), corner(1, 1))
	}
	if mirrorY {
		e.segment(st, corner(1, 0), corner(1, 1))
	}

	xHei, yHei := g.labelHei(xs), g.labelHei(ys)
	gap := 0.4 * math.Max(xHei, yHei)

	// x ticks and labels
	if !xs.off {
		tick := vec.Vec2{Y: 0.6 * xHei}
		for i, v := range l.x.ticks {
			p := corner(l.x.fraction(v), 0)
			if !xs.ticksOff {
				e.segment(st, p, p.Add(tick))
				if mirrorX {
					top := corner(l.x.fraction(v), 1)
					e.segment(st, top, top.Sub(tick))
				}
			}
			if !xs.labelsOff {
				if _, err := e.text(l.x.labels[i], p.Sub(vec.Vec2{Y: gap}), justifications["tc"], xHei, 0); err != nil {
					return err
				}
			}
		}
		if !xs.ticksOff && !xs.subticksOff {
			for _, v := range l.x.subticks {
				p := corner(l.x.fraction(v), 0)
				e.segment(st, p, p.Add(tick.Mul(0.5)))
			}
		}
		if xs.title.text != "" {
			y := gap
			if !xs.labelsOff {
				y += xHei + gap
			}
			anchor := corner(0.5, 0).Sub(vec.Vec2{Y: y})
			if _, err := e.text(xs.title.text, anchor, justifications["tc"], g.titleHei(xs.title, 1), 0); err != nil {
				return err
			}
		}
	}

	// y ticks and labels
	if !ys.off {
		tick := vec.Vec2{X: 0.6 * yHei}
		labelWidth := 0.
		for i, v := range l.y.ticks {
			p := corner(0, l.y.fraction(v))
			if !ys.ticksOff {
				e.segment(st, p, p.Add(tick))
				if mirrorY {
					right := corner(1, l.y.fraction(v))
					e.segment(st, right, right.Sub(tick))
				}
			}
			if !ys.labelsOff {
				t, err := e.text(l.y.labels[i], p.Sub(vec.Vec2{X: gap}), justifications["rc"], yHei, 0)
				if err != nil {
					return err
				}
				labelWidth = math.Max(labelWidth, t.Layout.Width)
			}
		}
		if !ys.ticksOff && !ys.subticksOff {
			for _, v := range l.y.subticks {
				p := corner(0, l.y.fraction(v))
				e.segment(st, p, p.Add(tick.Mul(0.5)))
			}
		}
		if ys.title.text != "" {
			x := gap
			if !ys.labelsOff {
				x += labelWidth + gap
			}
			anchor := corner(0, 0.5).Sub(vec.Vec2{X: x})
			if _, err := e.text(ys.title.text, anchor, justifications["bc"], g.titleHei(ys.title, 1), 90); err != nil {
				return err
			}
		}
	}

	if g.title.text != "" {
		anchor := corner(0.5, 1).Add(vec.Vec2{Y: gap})
		if _, err := e.text(g.title.text, anchor, justifications["bc"], g.titleHei(g.title, 1.2), 0); err != nil {
			return err
		}
	}
	return nil
}

// series emits the line and the markers of a dataset
func (e *graphEmitter) series(ds *dataset) {
	if !ds.bound || (!ds.line && ds.marker == "") {
		return
	}
	l := e.layout
	page := make([]vec.Vec2, len(ds.points))
	for i, p := range ds.points {
		page[i] = l.toPage(p)
	}
	st := ds.style
	st.Fill = colorNone
	if ds.line {
		for _, run := range clipPolyline(page, l.lo, l.hi) {
			e.out = append(e.out, Polyline{Base: e.base(st), Points: run})
		}
	}
	if ds.marker == "" {
		return
	}
	size := ds.msize
	if size == 0 {
		size = e.g.base.Height
	}
	st.LineStyle = "1"
	for _, p := range page {
		if !isFinite(p) || p.X < l.lo.X || p.X > l.hi.X || p.Y < l.lo.Y || p.Y > l.hi.Y {
			continue // outside of the window
		}
		e.out = append(e.out, markers[ds.marker](e.base(st), p, size/2))
	}
}

var colorNone = color.NRGBA{}

type markerFunc func(b Base, center vec.Vec2, r float64) Primitive

// filled sets the fill color to the line color
func filled(b Base) Base {
	b.Style.Fill = b.Style.Color
	return b
}

func regularPolygon(center vec.Vec2, r float64, n int, phase float64) []vec.Vec2 {
	out := make([]vec.Vec2, n)
	for i := range out {
		out[i] = polar(center, r, r, phase+2*math.Pi*float64(i)/float64(n))
	}
	return out
}

func crossMarker(b Base, center vec.Vec2, r, phase float64) Primitive {
	arms := regularPolygon(center, r, 4, phase)
	return Group{Base: b, Primitives: []Primitive{
		Line{Base: b, From: arms[0], To: arms[2]},
		Line{Base: b, From: arms[1], To: arms[3]},
	}}
}

var markers = map[string]markerFunc{
	"circle": func(b Base, c vec.Vec2, r float64) Primitive {
		return Circle{Base: b, Center: c, Radius: r}
	},
	"fcircle": func(b Base, c vec.Vec2, r float64) Primitive {
		return Circle{Base: filled(b), Center: c, Radius: r}
	},
	"dot": func(b Base, c vec.Vec2, r float64) Primitive {
		return Circle{Base: filled(b), Center: c, Radius: r / 4}
	},
	"square": func(b Base, c vec.Vec2, r float64) Primitive {
		return Polyline{Base: b, Points: regularPolygon(c, r*math.Sqrt2, 4, math.Pi/4), Closed: true}
	},
	"fsquare": func(b Base, c vec.Vec2, r float64) Primitive {
		return Polyline{Base: filled(b), Points: regularPolygon(c, r*math.Sqrt2, 4, math.Pi/4), Closed: true}
	},
	"triangle": func(b Base, c vec.Vec2, r float64) Primitive {
		return Polyline{Base: b, Points: regularPolygon(c, r, 3, math.Pi/2), Closed: true}
	},
	"ftriangle": func(b Base, c vec.Vec2, r float64) Primitive {
		return Polyline{Base: filled(b), Points: regularPolygon(c, r, 3, math.Pi/2), Closed: true}
	},
	"diamond": func(b Base, c vec.Vec2, r float64) Primitive {
		return Polyline{Base: b, Points: regularPolygon(c, r, 4, 0), Closed: true}
	},
	"fdiamond": func(b Base, c vec.Vec2, r float64) Primitive {
		return Polyline{Base: filled(b), Points: regularPolygon(c, r, 4, 0), Closed: true}
	},
	"plus":  func(b Base, c vec.Vec2, r float64) Primitive { return crossMarker(b, c, r, 0) },
	"cross": func(b Base, c vec.Vec2, r float64) Primitive { return crossMarker(b, c, r, math.Pi/4) },
}
