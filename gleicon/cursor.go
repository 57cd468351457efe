package gleicon

import (
	"errors"
	"fmt"
	"log"
	"math"
	"slices"

	"golang.org/x/text/cases"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

type (
	// sceneCursor is the interpreter state, used while
	// reading a script
	sceneCursor struct {
		scene *Scene

		pos        vec.Vec2
		style      Style
		transforms []Transform   // active transforms, outermost first
		matrix     matrix.Matrix // composite of transforms
		// the pivot of the innermost rotation or scaling follows the
		// first move inside its block, if nothing was drawn or opened before
		pivotPending bool
		blocks     []block       // open begin/end blocks
		saved      []savedState  // gsave stack
		graph      *graphBuilder // non nil inside begin graph

		errorMode ErrorMode
		data      DataSource
		shaper    Shaper
		caser     cases.Caser
	}

	// block is an open begin/end pair
	block struct {
		kind    string
		line    int
		text    string
		pos     vec.Vec2 // cursor at begin, restored at end
		ignored bool     // unsupported block, whose content is skipped
	}

	savedState struct {
		pos   vec.Vec2
		style Style
	}
)

func newSceneCursor(scene *Scene, options Options) *sceneCursor {
	return &sceneCursor{
		scene:     scene,
		style:     DefaultStyle,
		matrix:    matrix.Identity,
		errorMode: options.ErrorMode,
		data:      options.Data,
		shaper:    options.Shaper,
		caser:     cases.Fold(),
	}
}

// fold normalizes keywords
func (c *sceneCursor) fold(s string) string { return c.caser.String(s) }

// base snapshots the current state for a new primitive
func (c *sceneCursor) base(d directive) Base {
	c.pivotPending = false
	return Base{
		Style:      c.style,
		Transforms: slices.Clone(c.transforms),
		Matrix:     c.matrix,
		Line:       d.line,
	}
}

func (c *sceneCursor) emit(p Primitive) {
	c.scene.Primitives = append(c.scene.Primitives, p)
}

func (c *sceneCursor) parseError(d directive, err error) error {
	return &ParseError{Line: d.line, Directive: d.text, Err: err}
}

func (c *sceneCursor) configError(d directive, field, value string, err error) error {
	return &ConfigurationError{Line: d.line, Field: field, Value: value, Err: err}
}

// valueError reports an invalid value for `field`: enumerated values
// out of range are configuration errors, the others are parse errors
func (c *sceneCursor) valueError(d directive, field, value string, err error) error {
	var enum enumError
	if errors.As(err, &enum) {
		return c.configError(d, field, value, enum.err)
	}
	return c.parseError(d, fmt.Errorf("%s %q: %w", field, value, err))
}

// unsupported handles a known directive which is not implemented
func (c *sceneCursor) unsupported(d directive) error {
	switch c.errorMode {
	case WarnErrorMode:
		log.Printf("line %d: unsupported directive %q ignored", d.line, d.keyword)
		return nil
	case StrictErrorMode:
		return c.parseError(d, errUnsupported)
	default:
		return nil
	}
}

// numbers parses all of `args`
func (c *sceneCursor) numbers(d directive, args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, arg := range args {
		v, err := parseNumber(arg)
		if err != nil {
			return nil, c.parseError(d, fmt.Errorf("%w: %q", err, arg))
		}
		out[i] = v
	}
	return out, nil
}

// lengths is numbers rejecting negative values
func (c *sceneCursor) lengths(d directive, args []string) ([]float64, error) {
	out, err := c.numbers(d, args)
	if err != nil {
		return nil, err
	}
	for i, v := range out {
		if v < 0 {
			return nil, c.configError(d, "length", args[i], fmt.Errorf("negative length"))
		}
	}
	return out, nil
}

// readOptions reads the `name [value]` pairs following the positional
// arguments. `arity` gives the number of values (0 or 1) of each option.
func (c *sceneCursor) readOptions(d directive, args []string, arity map[string]int) (map[string]string, error) {
	out := make(map[string]string)
	for i := 0; i < len(args); i++ {
		name := c.fold(args[i])
		n, ok := arity[name]
		if !ok {
			return nil, c.parseError(d, fmt.Errorf("%w %q", errUnknownOption, args[i]))
		}
		if n == 1 {
			if i+1 >= len(args) {
				return nil, c.parseError(d, fmt.Errorf("%w: missing value for %s", errParamMismatch, name))
			}
			i++
			out[name] = args[i]
		} else {
			out[name] = ""
		}
	}
	return out, nil
}

func (c *sceneCursor) parseArrows(d directive, value string) (Arrows, error) {
	switch c.fold(value) {
	case "start":
		return ArrowStart, nil
	case "end":
		return ArrowEnd, nil
	case "both":
		return ArrowBoth, nil
	}
	return 0, c.configError(d, "arrow", value, errBadValue)
}

func (c *sceneCursor) pushTransform(t Transform) {
	c.transforms = append(c.transforms, t)
	c.matrix = t.Matrix().Mul(c.matrix)
	c.pivotPending = t.Kind != Translate
}

func (c *sceneCursor) popTransform() {
	c.transforms = c.transforms[:len(c.transforms)-1]
	c.matrix = composite(c.transforms)
	c.pivotPending = false
}

// checkPoint rejects cursor positions accumulated out of range
func (c *sceneCursor) checkPoint(d directive, p vec.Vec2) error {
	if math.Abs(p.X) > maxMagnitude || math.Abs(p.Y) > maxMagnitude {
		return c.parseError(d, fmt.Errorf("%w: cursor at (%g, %g)", errOutOfRange, p.X, p.Y))
	}
	return nil
}

// moveTo sets the cursor, binding a pending pivot to it
func (c *sceneCursor) moveTo(p vec.Vec2) {
	c.pos = p
	if !c.pivotPending {
		return
	}
	c.pivotPending = false
	c.transforms[len(c.transforms)-1].Pivot = p
	c.matrix = composite(c.transforms)
}

// checkClosed is called at the end of the script
func (c *sceneCursor) checkClosed() error {
	if len(c.blocks) == 0 {
		return nil
	}
	top := c.blocks[len(c.blocks)-1]
	return &ParseError{
		Line:      top.line,
		Directive: top.text,
		Err:       fmt.Errorf("%w: missing end %s", errUnbalanced, top.kind),
	}
}
