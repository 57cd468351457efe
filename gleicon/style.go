package gleicon

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/image/colornames"
)

// JoinMode type to specify how segments join.
type JoinMode uint8

const (
	Miter JoinMode = iota // default value
	Round
	Bevel
)

func (s JoinMode) String() string {
	switch s {
	case Miter:
		return "Miter"
	case Round:
		return "Round"
	case Bevel:
		return "Bevel"
	default:
		return "<unknown JoinMode>"
	}
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	ButtCap CapMode = iota // default value
	RoundCap
	SquareCap
)

func (c CapMode) String() string {
	switch c {
	case ButtCap:
		return "ButtCap"
	case RoundCap:
		return "RoundCap"
	case SquareCap:
		return "SquareCap"
	default:
		return "<unknown CapMode>"
	}
}

// ArrowStyle selects how arrow heads are painted.
type ArrowStyle uint8

const (
	SimpleArrow ArrowStyle = iota // two stroked wings
	FilledArrow                   // closed head, filled with the line color
	EmptyArrow                    // closed head, filled with white
)

func (a ArrowStyle) String() string {
	switch a {
	case SimpleArrow:
		return "simple"
	case FilledArrow:
		return "filled"
	case EmptyArrow:
		return "empty"
	default:
		return "<unknown ArrowStyle>"
	}
}

// HAlign is the horizontal part of a justification.
type HAlign uint8

const (
	Left HAlign = iota
	HCenter
	Right
)

// VAlign is the vertical part of a justification.
// For boxes, Baseline and Bottom are the same.
type VAlign uint8

const (
	Baseline VAlign = iota
	Bottom
	VCenter
	Top
)

// Justify locates the anchor point of a text or a box.
type Justify struct {
	H HAlign
	V VAlign
}

var justifications = map[string]Justify{
	"left":   {Left, Baseline},
	"center": {HCenter, VCenter},
	"right":  {Right, Baseline},
	"tl":     {Left, Top},
	"tc":     {HCenter, Top},
	"tr":     {Right, Top},
	"lc":     {Left, VCenter},
	"cc":     {HCenter, VCenter},
	"rc":     {Right, VCenter},
	"bl":     {Left, Bottom},
	"bc":     {HCenter, Bottom},
	"br":     {Right, Bottom},
}

// Arrows tells which ends of a line or an arc carry an arrow head.
type Arrows uint8

const (
	NoArrow    Arrows = 0
	ArrowStart Arrows = 1
	ArrowEnd   Arrows = 2
	ArrowBoth         = ArrowStart | ArrowEnd
)

// Style is the graphic state applied to emitted primitives.
// Lengths are in page units.
type Style struct {
	LineWidth  float64
	LineStyle  string // dash pattern id, see DashPattern
	Color      color.NRGBA
	Fill       color.NRGBA // a zero alpha disables filling
	Font       string
	Height     float64 // font height
	Just       Justify
	Cap        CapMode
	Join       JoinMode
	ArrowSize  float64
	ArrowAngle float64 // half opening of the head, in degrees
	ArrowStyle ArrowStyle
}

// DefaultStyle is the style at the start of a script.
var DefaultStyle = Style{
	LineWidth:  0.02,
	LineStyle:  "1",
	Color:      color.NRGBA{A: 0xff},
	Font:       "rm",
	Height:     0.3633,
	Just:       justifications["left"],
	ArrowSize:  0.2,
	ArrowAngle: 15,
}

// dashUnit is the length of one digit of a line style pattern.
const dashUnit = 0.04

// predefined line styles; 0 and 1 are solid
var lineStyles = [10]string{"", "", "12", "41", "44", "54", "73", "7337", "6261", "2514"}

var errInvalidLineStyle = errors.New("invalid line style")

func checkLineStyle(id string) error {
	if id == "" {
		return errInvalidLineStyle
	}
	nonZero := false
	for _, r := range id {
		if r < '0' || r > '9' {
			return errInvalidLineStyle
		}
		nonZero = nonZero || r != '0'
	}
	if len(id) > 1 && !nonZero {
		return errInvalidLineStyle
	}
	return nil
}

// DashPattern returns the alternating dash and gap lengths of the
// line style, in page units, or nil for a solid line.
// A single digit selects a predefined pattern, longer ids are read
// as the pattern itself.
func (s Style) DashPattern() []float64 {
	pattern := s.LineStyle
	if len(pattern) == 1 {
		pattern = lineStyles[pattern[0]-'0']
	}
	if pattern == "" {
		return nil
	}
	out := make([]float64, 0, 2*len(pattern))
	for _, r := range pattern {
		out = append(out, float64(r-'0')*dashUnit)
	}
	if len(out)%2 == 1 { // repeat odd patterns so that dashes and gaps alternate
		out = append(out, out...)
	}
	return out
}

var errUnknownColor = errors.New("unknown color")

// parseColor accepts color names, clear/none, #rgb, #rrggbb, #rrggbbaa,
// rgb(r,g,b) and rgba(r,g,b,a) with components in [0,1],
// and rgb255(r,g,b).
func parseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "clear", "none", "transparent":
		return color.NRGBA{}, nil
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}
	name, args, ok := splitCall(s)
	if !ok {
		return color.NRGBA{}, errUnknownColor
	}
	var (
		scale float64
		n     int
	)
	switch name {
	case "rgb":
		scale, n = 255, 3
	case "rgba":
		scale, n = 255, 4
	case "rgb255":
		scale, n = 1, 3
	default:
		return color.NRGBA{}, errUnknownColor
	}
	if len(args) != n {
		return color.NRGBA{}, errParamMismatch
	}
	var comps [4]uint8
	comps[3] = 0xff
	for i, arg := range args {
		v, err := parseNumber(arg)
		if err != nil {
			return color.NRGBA{}, err
		}
		v *= scale
		if v < 0 || v > 255 {
			return color.NRGBA{}, enumError{fmt.Errorf("color component %s out of range", arg)}
		}
		comps[i] = uint8(v + 0.5)
	}
	return color.NRGBA{R: comps[0], G: comps[1], B: comps[2], A: comps[3]}, nil
}

func parseHexColor(s string) (color.NRGBA, error) {
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]}) + "ff"
	case 6:
		s += "ff"
	case 8:
	default:
		return color.NRGBA{}, errUnknownColor
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, errUnknownColor
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// splitCall splits "name(a,b,c)"
func splitCall(s string) (name string, args []string, ok bool) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return "", nil, false
	}
	args = strings.Split(s[open+1:len(s)-1], ",")
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	return s[:open], args, true
}

// styleFields lists the fields accepted by `set`
var styleFields = map[string]func(c *sceneCursor, st *Style, value string) error{
	"lwidth":     setLineWidth,
	"lstyle":     setLineStyle,
	"color":      setColor,
	"fill":       setFill,
	"font":       setFont,
	"hei":        setHeight,
	"just":       setJust,
	"cap":        setCap,
	"join":       setJoin,
	"arrowsize":  setArrowSize,
	"arrowangle": setArrowAngle,
	"arrowstyle": setArrowStyle,
}

func fieldNames() string {
	names := maps.Keys(styleFields)
	slices.Sort(names)
	return strings.Join(names, ", ")
}

// errBadValue is wrapped by the setters for enumerated values out of range
var errBadValue = errors.New("invalid value")

func setLineWidth(_ *sceneCursor, st *Style, value string) (err error) {
	st.LineWidth, err = parseLength(value)
	return err
}

func setLineStyle(_ *sceneCursor, st *Style, value string) error {
	if err := checkLineStyle(value); err != nil {
		return enumError{err}
	}
	st.LineStyle = value
	return nil
}

func setColor(_ *sceneCursor, st *Style, value string) (err error) {
	st.Color, err = parseEnumColor(value)
	return err
}

func setFill(_ *sceneCursor, st *Style, value string) (err error) {
	st.Fill, err = parseEnumColor(value)
	return err
}

func parseEnumColor(value string) (color.NRGBA, error) {
	c, err := parseColor(value)
	if err == errUnknownColor {
		return c, enumError{err}
	}
	return c, err
}

func setFont(c *sceneCursor, st *Style, value string) error {
	if !c.shaper.HasFamily(value) {
		return enumError{fmt.Errorf("unknown font family")}
	}
	st.Font = strings.ToLower(value)
	return nil
}

func setHeight(_ *sceneCursor, st *Style, value string) (err error) {
	st.Height, err = parseLength(value)
	return err
}

func parseJustify(value string) (Justify, error) {
	j, ok := justifications[strings.ToLower(value)]
	if !ok {
		return j, enumError{errBadValue}
	}
	return j, nil
}

func setJust(_ *sceneCursor, st *Style, value string) (err error) {
	st.Just, err = parseJustify(value)
	return err
}

func setCap(_ *sceneCursor, st *Style, value string) error {
	switch strings.ToLower(value) {
	case "butt":
		st.Cap = ButtCap
	case "round":
		st.Cap = RoundCap
	case "square":
		st.Cap = SquareCap
	default:
		return enumError{errBadValue}
	}
	return nil
}

func setJoin(_ *sceneCursor, st *Style, value string) error {
	switch strings.ToLower(value) {
	case "mitre", "miter":
		st.Join = Miter
	case "round":
		st.Join = Round
	case "bevel":
		st.Join = Bevel
	default:
		return enumError{errBadValue}
	}
	return nil
}

func setArrowSize(_ *sceneCursor, st *Style, value string) (err error) {
	st.ArrowSize, err = parseLength(value)
	return err
}

func setArrowAngle(_ *sceneCursor, st *Style, value string) (err error) {
	st.ArrowAngle, err = parseNumber(value)
	return err
}

func setArrowStyle(_ *sceneCursor, st *Style, value string) error {
	switch strings.ToLower(value) {
	case "simple":
		st.ArrowStyle = SimpleArrow
	case "filled":
		st.ArrowStyle = FilledArrow
	case "empty":
		st.ArrowStyle = EmptyArrow
	default:
		return enumError{errBadValue}
	}
	return nil
}

// enumError marks a value outside of an enumeration, reported
// as a ConfigurationError instead of a ParseError
type enumError struct{ err error }

func (e enumError) Error() string { return e.err.Error() }

func (e enumError) Unwrap() error { return e.err }

// maxMagnitude bounds the numbers of a script, so that
// page coordinates stay finite
const maxMagnitude = 1e9

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, errNotANumber
	}
	if math.Abs(v) > maxMagnitude {
		return 0, errOutOfRange
	}
	return v, nil
}

// parseLength is parseNumber rejecting negative values
func parseLength(s string) (float64, error) {
	v, err := parseNumber(s)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, enumError{fmt.Errorf("negative length %g", v)}
	}
	return v, nil
}
