package gleicon

import (
	"fmt"
	"strings"

	"seehuhn.de/go/geom/vec"
)

type directiveFunc func(c *sceneCursor, d directive) error

var directiveFuncs = map[string]directiveFunc{
	"set":      setF,
	"size":     sizeF,
	"amove":    amoveF,
	"rmove":    rmoveF,
	"aline":    alineF,
	"rline":    rlineF,
	"circle":   circleF,
	"ellipse":  ellipseF,
	"box":      boxF,
	"arc":      arcF,
	"text":     textF,
	"write":    textF,
	"gsave":    gsaveF,
	"grestore": grestoreF,
	"end":      endF,
}

func init() {
	// avoids cyclical static declaration
	// called on package initialization
	directiveFuncs["begin"] = beginF
}

// GLE directives which are recognized but not implemented
var unsupportedDirectives = map[string]bool{
	"include":    true,
	"bitmap":     true,
	"psbbtweak":  true,
	"postscript": true,
	"defmarker":  true,
	"margins":    true,
	"papersize":  true,
}

// GLE blocks which are recognized but not implemented
var unsupportedBlocks = map[string]bool{
	"box": true, "clip": true, "path": true, "origin": true, "text": true,
	"tex": true, "table": true, "key": true, "name": true, "object": true,
	"length": true, "fitz": true, "letz": true, "contour": true, "surface": true,
}

func (c *sceneCursor) readDirective(d directive) error {
	if n := len(c.blocks); n != 0 && c.blocks[n-1].ignored {
		switch d.keyword {
		case "begin", "end":
		default:
			return nil
		}
	}
	if c.graph != nil && d.keyword != "end" {
		return c.graph.readDirective(c, d)
	}
	if df, ok := directiveFuncs[d.keyword]; ok {
		return df(c, d)
	}
	if unsupportedDirectives[d.keyword] {
		return c.unsupported(d)
	}
	return c.parseError(d, fmt.Errorf("%w %q", errUnknownCommand, d.keyword))
}

func setF(c *sceneCursor, d directive) error {
	if len(d.args) == 0 || len(d.args)%2 != 0 {
		return c.parseError(d, fmt.Errorf("%w: expected field value pairs", errParamMismatch))
	}
	for i := 0; i < len(d.args); i += 2 {
		field, value := c.fold(d.args[i]), d.args[i+1]
		setter, ok := styleFields[field]
		if !ok {
			return c.configError(d, d.args[i], "", fmt.Errorf("%w (expected one of %s)", errUnknownField, fieldNames()))
		}
		if err := setter(c, &c.style, value); err != nil {
			return c.valueError(d, field, value, err)
		}
	}
	return nil
}

func sizeF(c *sceneCursor, d directive) error {
	if len(d.args) != 2 {
		return c.parseError(d, errParamMismatch)
	}
	if len(c.blocks) != 0 || c.scene.Width != 0 {
		return c.parseError(d, fmt.Errorf("size must be given once, at top level"))
	}
	size, err := c.lengths(d, d.args)
	if err != nil {
		return err
	}
	if size[0] == 0 || size[1] == 0 {
		return c.configError(d, "size", d.rest, fmt.Errorf("empty page"))
	}
	c.scene.Width, c.scene.Height = size[0], size[1]
	return nil
}

// point reads exactly two numbers
func (c *sceneCursor) point(d directive) (vec.Vec2, error) {
	if len(d.args) != 2 {
		return vec.Vec2{}, c.parseError(d, errParamMismatch)
	}
	v, err := c.numbers(d, d.args)
	if err != nil {
		return vec.Vec2{}, err
	}
	return vec.Vec2{X: v[0], Y: v[1]}, nil
}

func amoveF(c *sceneCursor, d directive) error {
	p, err := c.point(d)
	if err != nil {
		return err
	}
	if err = c.checkPoint(d, p); err != nil {
		return err
	}
	c.moveTo(p)
	return nil
}

func rmoveF(c *sceneCursor, d directive) error {
	p, err := c.point(d)
	if err != nil {
		return err
	}
	p = c.pos.Add(p)
	if err = c.checkPoint(d, p); err != nil {
		return err
	}
	c.moveTo(p)
	return nil
}

var arrowOptions = map[string]int{"arrow": 1}

// lineTo emits a line from the cursor, with the arguments `x y [arrow where]`
func (c *sceneCursor) lineTo(d directive, relative bool) error {
	if len(d.args) < 2 {
		return c.parseError(d, errParamMismatch)
	}
	v, err := c.numbers(d, d.args[:2])
	if err != nil {
		return err
	}
	opts, err := c.readOptions(d, d.args[2:], arrowOptions)
	if err != nil {
		return err
	}
	l := Line{Base: c.base(d), From: c.pos, To: vec.Vec2{X: v[0], Y: v[1]}}
	if relative {
		l.To = l.To.Add(c.pos)
	}
	if err = c.checkPoint(d, l.To); err != nil {
		return err
	}
	if where, ok := opts["arrow"]; ok {
		if l.Arrows, err = c.parseArrows(d, where); err != nil {
			return err
		}
	}
	c.emit(l)
	c.pos = l.To
	return nil
}

func alineF(c *sceneCursor, d directive) error { return c.lineTo(d, false) }

func rlineF(c *sceneCursor, d directive) error { return c.lineTo(d, true) }

var fillOptions = map[string]int{"fill": 1}

// withFill applies the `fill` option to `base`
func (c *sceneCursor) withFill(d directive, base *Base, opts map[string]string) error {
	value, ok := opts["fill"]
	if !ok {
		return nil
	}
	col, err := parseEnumColor(value)
	if err != nil {
		return c.valueError(d, "fill", value, err)
	}
	base.Style.Fill = col
	return nil
}

func circleF(c *sceneCursor, d directive) error {
	if len(d.args) < 1 {
		return c.parseError(d, errParamMismatch)
	}
	r, err := c.lengths(d, d.args[:1])
	if err != nil {
		return err
	}
	opts, err := c.readOptions(d, d.args[1:], fillOptions)
	if err != nil {
		return err
	}
	circle := Circle{Base: c.base(d), Center: c.pos, Radius: r[0]}
	if err = c.withFill(d, &circle.Base, opts); err != nil {
		return err
	}
	c.emit(circle)
	return nil
}

func ellipseF(c *sceneCursor, d directive) error {
	if len(d.args) < 2 {
		return c.parseError(d, errParamMismatch)
	}
	r, err := c.lengths(d, d.args[:2])
	if err != nil {
		return err
	}
	opts, err := c.readOptions(d, d.args[2:], fillOptions)
	if err != nil {
		return err
	}
	ellipse := Ellipse{Base: c.base(d), Center: c.pos, RX: r[0], RY: r[1]}
	if err = c.withFill(d, &ellipse.Base, opts); err != nil {
		return err
	}
	c.emit(ellipse)
	return nil
}

var boxOptions = map[string]int{"fill": 1, "justify": 1, "nobox": 0, "name": 1}

func boxF(c *sceneCursor, d directive) error {
	if len(d.args) < 2 {
		return c.parseError(d, errParamMismatch)
	}
	size, err := c.lengths(d, d.args[:2])
	if err != nil {
		return err
	}
	opts, err := c.readOptions(d, d.args[2:], boxOptions)
	if err != nil {
		return err
	}
	box := Box{
		Base:   c.base(d),
		Anchor: c.pos,
		Width:  size[0],
		Height: size[1],
		Just:   justifications["bl"],
	}
	if err = c.withFill(d, &box.Base, opts); err != nil {
		return err
	}
	if value, ok := opts["justify"]; ok {
		if box.Just, err = parseJustify(value); err != nil {
			return c.valueError(d, "justify", value, err)
		}
	}
	_, box.NoBox = opts["nobox"]
	c.emit(box)
	return nil
}

func arcF(c *sceneCursor, d directive) error {
	if len(d.args) < 3 {
		return c.parseError(d, errParamMismatch)
	}
	v, err := c.numbers(d, d.args[:3])
	if err != nil {
		return err
	}
	if v[0] < 0 {
		return c.configError(d, "radius", d.args[0], fmt.Errorf("negative length"))
	}
	opts, err := c.readOptions(d, d.args[3:], arrowOptions)
	if err != nil {
		return err
	}
	arc := Arc{Base: c.base(d), Center: c.pos, Radius: v[0], Start: v[1], End: v[2]}
	if where, ok := opts["arrow"]; ok {
		if arc.Arrows, err = c.parseArrows(d, where); err != nil {
			return err
		}
	}
	c.emit(arc)
	return nil
}

// text reads the rest of the line verbatim
func textF(c *sceneCursor, d directive) error {
	s := unquote(d.rest)
	if s == "" {
		return c.parseError(d, errParamMismatch)
	}
	t, err := c.newText(d, s, c.pos, c.style.Just, c.style.Height)
	if err != nil {
		return err
	}
	c.emit(t)
	return nil
}

// newText shapes `s` with the current font
func (c *sceneCursor) newText(d directive, s string, anchor vec.Vec2, just Justify, height float64) (Text, error) {
	layout, err := c.shaper.Shape(s, c.style.Font, height)
	if err != nil {
		return Text{}, c.configError(d, "font", c.style.Font, err)
	}
	t := Text{Base: c.base(d), Anchor: anchor, Text: s, Just: just, Layout: layout}
	t.Style.Height = height
	return t, nil
}

func gsaveF(c *sceneCursor, d directive) error {
	if len(d.args) != 0 {
		return c.parseError(d, errParamMismatch)
	}
	c.saved = append(c.saved, savedState{pos: c.pos, style: c.style})
	return nil
}

func grestoreF(c *sceneCursor, d directive) error {
	if len(d.args) != 0 {
		return c.parseError(d, errParamMismatch)
	}
	if len(c.saved) == 0 {
		return c.parseError(d, fmt.Errorf("%w: grestore without gsave", errUnbalanced))
	}
	s := c.saved[len(c.saved)-1]
	c.saved = c.saved[:len(c.saved)-1]
	c.pos, c.style = s.pos, s.style
	return nil
}

func beginF(c *sceneCursor, d directive) error {
	if len(d.args) == 0 {
		return c.parseError(d, errParamMismatch)
	}
	kind := c.fold(d.args[0])
	args := d.args[1:]
	b := block{kind: kind, line: d.line, text: d.text, pos: c.pos}
	c.pivotPending = false

	if n := len(c.blocks); n != 0 && c.blocks[n-1].ignored {
		b.ignored = true // nested in an unsupported block
		c.blocks = append(c.blocks, b)
		return nil
	}

	switch kind {
	case "rotate":
		if len(args) != 1 {
			return c.parseError(d, errParamMismatch)
		}
		v, err := c.numbers(d, args)
		if err != nil {
			return err
		}
		c.pushTransform(Transform{Kind: Rotate, Pivot: c.pos, Angle: v[0]})
	case "translate":
		if len(args) != 2 {
			return c.parseError(d, errParamMismatch)
		}
		v, err := c.numbers(d, args)
		if err != nil {
			return err
		}
		c.pushTransform(Transform{Kind: Translate, Offset: vec.Vec2{X: v[0], Y: v[1]}})
	case "scale":
		if len(args) != 1 && len(args) != 2 {
			return c.parseError(d, errParamMismatch)
		}
		v, err := c.numbers(d, args)
		if err != nil {
			return err
		}
		factor := vec.Vec2{X: v[0], Y: v[0]}
		if len(v) == 2 {
			factor.Y = v[1]
		}
		if factor.X == 0 || factor.Y == 0 {
			return c.configError(d, "scale", strings.Join(args, " "), fmt.Errorf("degenerate scaling"))
		}
		c.pushTransform(Transform{Kind: Scale, Pivot: c.pos, Factor: factor})
	case "graph":
		if len(args) != 0 {
			return c.parseError(d, errParamMismatch)
		}
		c.graph = newGraphBuilder(c, d)
	default:
		if !unsupportedBlocks[kind] {
			return c.parseError(d, fmt.Errorf("%w begin %q", errUnknownCommand, kind))
		}
		if err := c.unsupported(d); err != nil {
			return err
		}
		b.ignored = true
	}
	c.blocks = append(c.blocks, b)
	return nil
}

func endF(c *sceneCursor, d directive) error {
	if len(d.args) != 1 {
		return c.parseError(d, errParamMismatch)
	}
	kind := c.fold(d.args[0])
	if len(c.blocks) == 0 {
		return c.parseError(d, fmt.Errorf("%w: end %s without begin", errUnbalanced, kind))
	}
	top := c.blocks[len(c.blocks)-1]
	if top.kind != kind {
		return c.parseError(d, fmt.Errorf("%w: end %s closes begin %s (line %d)", errUnbalanced, kind, top.kind, top.line))
	}
	c.blocks = c.blocks[:len(c.blocks)-1]
	if top.ignored {
		return nil
	}

	switch kind {
	case "graph":
		group, err := c.graph.build(c)
		if err != nil {
			return err
		}
		c.graph = nil
		c.emit(group)
	default:
		c.popTransform()
	}
	c.pos = top.pos
	return nil
}
