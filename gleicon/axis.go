package gleicon

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/vec"
)

// numberFormat is the format of axis labels
type numberFormat struct {
	verb   byte // 'f' (fix), 'e' (sci), 'r' (round) or 0 for automatic
	digits int
}

func parseNumberFormat(s string) (numberFormat, error) {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) != 2 {
		return numberFormat{}, enumError{fmt.Errorf("expected \"fix|sci|round N\"")}
	}
	digits, err := strconv.Atoi(fields[1])
	if err != nil || digits < 0 || digits > 15 {
		return numberFormat{}, enumError{fmt.Errorf("invalid number of digits %q", fields[1])}
	}
	var verb byte
	switch fields[0] {
	case "fix":
		verb = 'f'
	case "sci":
		verb = 'e'
	case "round":
		verb = 'r'
		if digits == 0 {
			return numberFormat{}, enumError{fmt.Errorf("round needs at least one digit")}
		}
	default:
		return numberFormat{}, enumError{fmt.Errorf("unknown format %q", fields[0])}
	}
	return numberFormat{verb: verb, digits: digits}, nil
}

// roundSignificant rounds `v` to `n` significant digits
func roundSignificant(v float64, n int) float64 {
	if v == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	p := math.Pow(10, float64(n)-math.Ceil(math.Log10(math.Abs(v))))
	return math.Round(v*p) / p
}

func (f numberFormat) format(v float64) string {
	switch f.verb {
	case 'f', 'e':
		return strconv.FormatFloat(v, f.verb, f.digits, 64)
	case 'r':
		return strconv.FormatFloat(roundSignificant(v, f.digits), 'f', -1, 64)
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}

// decimals returns the number of digits after the
// decimal point needed to write `step`
func decimals(step float64) int {
	s := strconv.FormatFloat(step, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// axisSpec is the configuration of one axis, as read from the script
type axisSpec struct {
	title graphTitle

	min, max       float64
	hasMin, hasMax bool
	dticks         float64
	nticks         int
	format         numberFormat
	labelHei       float64
	log, off       bool

	subticksOff, ticksOff, labelsOff bool

	line int // last configuring directive
}

const (
	defaultTicks    = 5 // target number of intervals
	subdivisions    = 4 // minor intervals per major interval
	maxTicks        = 1000
	defaultAxisMax  = 10
	tickEpsilon     = 1e-9
	logDefaultRange = 10
)

var (
	errAxisBounds   = errors.New("axis min must be lower than max")
	errLogBounds    = errors.New("log axis bounds must be positive")
	errTooManyTicks = errors.New("too many ticks")
)

// niceNumber rounds `x` to 1, 2 or 5 times a power of ten
func niceNumber(x float64) float64 {
	exp := math.Floor(math.Log10(x))
	f := x / math.Pow(10, exp)
	var nf float64
	switch {
	case f < 1.5:
		nf = 1
	case f < 3:
		nf = 2
	case f < 7:
		nf = 5
	default:
		nf = 10
	}
	return nf * math.Pow(10, exp)
}

// axis is a resolved axis, with its window and ticks
type axis struct {
	min, max float64
	log      bool
	ticks    []float64
	subticks []float64
	labels   []string
}

// fraction returns the relative position of `v` in the window,
// NaN when `v` can't be placed on the axis
func (a axis) fraction(v float64) float64 {
	if a.log {
		if v <= 0 {
			return math.NaN()
		}
		return (math.Log10(v) - math.Log10(a.min)) / (math.Log10(a.max) - math.Log10(a.min))
	}
	return (v - a.min) / (a.max - a.min)
}

// dataRange returns the extent of the finite `values`,
// restricted to positive values for log axes
func dataRange(values []float64, positive bool) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || (positive && v <= 0) {
			continue
		}
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	return lo, hi, lo <= hi
}

// resolve computes the window and the ticks of the axis, using
// `values` for the bounds which are not configured
func (spec axisSpec) resolve(values []float64) (axis, error) {
	if spec.log {
		return spec.resolveLog(values)
	}
	lo, hi, ok := dataRange(values, false)
	if !ok {
		lo, hi = 0, defaultAxisMax
	}
	if spec.hasMin {
		lo = spec.min
	}
	if spec.hasMax {
		hi = spec.max
	}
	if !spec.hasMin && !spec.hasMax && lo == hi {
		lo, hi = lo-1, hi+1
	}
	if !(lo < hi) {
		return axis{}, errAxisBounds
	}

	var step float64
	switch {
	case spec.dticks > 0:
		step = spec.dticks
	case spec.nticks > 0:
		step = niceNumber((hi - lo) / float64(spec.nticks))
	default:
		step = niceNumber((hi - lo) / defaultTicks)
	}
	// round the unset bounds outward to the tick step
	if !spec.hasMin {
		lo = math.Floor(lo/step+tickEpsilon) * step
	}
	if !spec.hasMax {
		hi = math.Ceil(hi/step-tickEpsilon) * step
	}
	if (hi-lo)/step > maxTicks {
		return axis{}, errTooManyTicks
	}

	out := axis{min: lo, max: hi}
	eps := step * tickEpsilon
	first := math.Ceil(lo/step-tickEpsilon) * step
	for i := 0; ; i++ {
		v := first + float64(i)*step
		if v > hi+eps {
			break
		}
		if math.Abs(v) < eps {
			v = 0
		}
		out.ticks = append(out.ticks, v)
	}

	sub := step / subdivisions
	first = math.Ceil(lo/sub-tickEpsilon) * sub
	for i := 0; ; i++ {
		v := first + float64(i)*sub
		if v > hi+eps {
			break
		}
		if math.Abs(math.Remainder(v, step)) < eps {
			continue // major tick
		}
		out.subticks = append(out.subticks, v)
	}

	format := spec.format
	if format.verb == 0 {
		format = numberFormat{verb: 'f', digits: decimals(roundSignificant(step, 12))}
	}
	for _, v := range out.ticks {
		out.labels = append(out.labels, format.format(v))
	}
	return out, nil
}

func (spec axisSpec) resolveLog(values []float64) (axis, error) {
	if (spec.hasMin && spec.min <= 0) || (spec.hasMax && spec.max <= 0) {
		return axis{}, errLogBounds
	}
	lo, hi, ok := dataRange(values, true)
	if !ok {
		lo, hi = 1, logDefaultRange
	}
	if spec.hasMin {
		lo = spec.min
	} else {
		lo = math.Pow(10, math.Floor(math.Log10(lo)))
	}
	if spec.hasMax {
		hi = spec.max
	} else {
		hi = math.Pow(10, math.Ceil(math.Log10(hi)))
	}
	if !spec.hasMin && !spec.hasMax && lo == hi {
		hi = lo * logDefaultRange
	}
	if !(lo < hi) {
		return axis{}, errAxisBounds
	}

	out := axis{min: lo, max: hi, log: true}
	for k := math.Floor(math.Log10(lo)); k <= math.Ceil(math.Log10(hi)); k++ {
		decade := math.Pow(10, k)
		for m := 1.; m < 10; m++ {
			v := m * decade
			if v < lo*(1-tickEpsilon) || v > hi*(1+tickEpsilon) {
				continue
			}
			if m == 1 {
				out.ticks = append(out.ticks, v)
			} else {
				out.subticks = append(out.subticks, v)
			}
		}
	}
	for _, v := range out.ticks {
		out.labels = append(out.labels, spec.format.format(v))
	}
	return out, nil
}

// clipSegment clips the segment [a, b] to the rectangle [lo, hi], using
// the Liang-Barsky algorithm. It returns false if the segment is outside.
func clipSegment(a, b, lo, hi vec.Vec2) (vec.Vec2, vec.Vec2, bool) {
	d := b.Sub(a)
	t0, t1 := 0., 1.
	for _, edge := range [4][2]float64{
		{-d.X, a.X - lo.X},
		{d.X, hi.X - a.X},
		{-d.Y, a.Y - lo.Y},
		{d.Y, hi.Y - a.Y},
	} {
		p, q := edge[0], edge[1]
		if p == 0 {
			if q < 0 {
				return a, b, false // parallel and outside
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return a, b, false
			}
			t1 = math.Min(t1, r)
		}
	}
	ca, cb := a, b
	if t0 > 0 {
		ca = a.Add(d.Mul(t0))
	}
	if t1 < 1 {
		cb = a.Add(d.Mul(t1))
	}
	return ca, cb, true
}

func isFinite(p vec.Vec2) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// clipPolyline splits the polyline through `points` into the runs
// visible in the rectangle [lo, hi]. Non finite points break the line.
func clipPolyline(points []vec.Vec2, lo, hi vec.Vec2) [][]vec.Vec2 {
	var (
		runs    [][]vec.Vec2
		current []vec.Vec2
	)
	flush := func() {
		if len(current) >= 2 {
			runs = append(runs, current)
		}
		current = nil
	}
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if !isFinite(a) || !isFinite(b) {
			flush()
			continue
		}
		ca, cb, ok := clipSegment(a, b, lo, hi)
		if !ok || (ca == cb && a != b) { // outside, or touching a corner
			flush()
			continue
		}
		if len(current) == 0 || current[len(current)-1] != ca {
			flush()
			current = append(current, ca)
		}
		current = append(current, cb)
		if cb != b { // leaving the window
			flush()
		}
	}
	flush()
	return runs
}
