package gleicon

import (
	"errors"
	"fmt"
)

// ErrorMode is the for setting how the parser reacts to unsupported
// (but known) GLE directives.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unsupported directives
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs a warning for unsupported directives
	WarnErrorMode
	// StrictErrorMode fails on unsupported directives
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return "<unknown ErrorMode>"
	}
}

// ParseErrorMode reads one of "ignore", "warn" or "strict".
func ParseErrorMode(s string) (ErrorMode, error) {
	switch s {
	case "ignore":
		return IgnoreErrorMode, nil
	case "warn":
		return WarnErrorMode, nil
	case "strict":
		return StrictErrorMode, nil
	}
	return 0, fmt.Errorf("invalid error mode %q", s)
}

var (
	errParamMismatch  = errors.New("wrong number of arguments")
	errNotANumber     = errors.New("expected a number")
	errOutOfRange     = errors.New("number out of range")
	errUnknownCommand = errors.New("unknown command")
	errUnsupported    = errors.New("unsupported command")
	errUnbalanced     = errors.New("unbalanced begin/end")
	errNoSuchDataset  = errors.New("dataset has no data")
	errUnknownOption  = errors.New("unknown option")
	errUnknownField   = errors.New("unknown style field")
)

// ParseError is returned for malformed or unrecognized directives,
// unbalanced blocks and wrong arities.
type ParseError struct {
	Line      int    // 1-based line number in the script
	Directive string // the offending line, comments removed
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Directive, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConfigurationError is returned for unknown style fields, out of range
// enumerated values and inconsistent graph settings.
type ConfigurationError struct {
	Line  int
	Field string
	Value string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Field, e.Err)
	}
	return fmt.Sprintf("line %d: %s %q: %v", e.Line, e.Field, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// DataSourceError is returned when an external data file referenced
// by a graph can't be loaded, or when a column index is out of range.
type DataSourceError struct {
	Line   int
	Source string
	Err    error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("line %d: data %q: %v", e.Line, e.Source, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }
