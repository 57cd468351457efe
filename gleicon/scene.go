// Provides parsing of GLE-like scene descriptions.
// Scripts are interpreted into an ordered list of positioned, styled
// primitives, which can then be consumed by painting drivers.
// See for example okgle/gleraster or okgle/glepdf .
package gleicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/benoitkugler/okgle/gledata"
	"github.com/benoitkugler/okgle/gletext"
	"golang.org/x/net/html/charset"
)

// Scene holds the result of an interpretation.
// See the `Draw` methods to use it.
type Scene struct {
	// Width and Height are set by the `size` directive, and are
	// zero otherwise.
	Width, Height float64
	Primitives    []Primitive
	Titles        []string // graph titles collect here
}

// DataSource provides the tables referenced by graph `data` directives.
type DataSource interface {
	Load(name string) (*gledata.Table, error)
}

// Shaper lays out text primitives.
type Shaper interface {
	Shape(text, family string, height float64) (gletext.Layout, error)
	HasFamily(family string) bool
}

// Options tunes the interpretation. The zero value of each field
// selects its default, except for ErrorMode.
type Options struct {
	// ErrorMode determines how known but unsupported directives
	// are handled.
	ErrorMode ErrorMode
	// Data defaults to a gledata.Reader, relative to the script directory
	// when using ReadScene, or to the working directory.
	Data DataSource
	// Shaper defaults to the embedded Go fonts.
	Shaper Shaper
	// Encoding is the charset label of the script, default to utf-8
	Encoding string
}

// MaxLineLength is the maximum size of a script line, in bytes.
const MaxLineLength = 1 << 20

// ReadSceneStream interprets the script read from `stream`.
// A nil `opts` selects the strict error mode and the default collaborators.
// Any error aborts the interpretation : the returned error
// is then a *ParseError, a *ConfigurationError, a *DataSourceError
// or an IO error.
func ReadSceneStream(stream io.Reader, opts *Options) (*Scene, error) {
	var options Options
	if opts != nil {
		options = *opts
	} else {
		options.ErrorMode = StrictErrorMode
	}
	if options.Data == nil {
		options.Data = gledata.Reader{}
	}
	if options.Shaper == nil {
		options.Shaper = gletext.NewShaper()
	}
	if options.Encoding != "" && !strings.EqualFold(options.Encoding, "utf-8") {
		r, err := charset.NewReaderLabel(options.Encoding, stream)
		if err != nil {
			return nil, fmt.Errorf("script encoding: %w", err)
		}
		stream = r
	}

	scene := new(Scene)
	cursor := newSceneCursor(scene, options)
	scanner := bufio.NewScanner(stream)
	scanner.Buffer(nil, MaxLineLength)
	lineNumber := 1
	for ; scanner.Scan(); lineNumber++ {
		d, ok, err := cursor.lex(lineNumber, scanner.Text())
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if err = cursor.readDirective(d); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err == bufio.ErrTooLong {
		return nil, &ParseError{Line: lineNumber, Err: fmt.Errorf("line longer than %d bytes: %w", MaxLineLength, err)}
	} else if err != nil {
		return nil, err
	}
	if err := cursor.checkClosed(); err != nil {
		return nil, err
	}
	return scene, nil
}

// ReadScene interprets the named script file.
// Data files are looked up relatively to the script
// when `opts` has no data source.
func ReadScene(sceneFile string, opts *Options) (*Scene, error) {
	fin, errf := os.Open(sceneFile)
	if errf != nil {
		return nil, errf
	}
	defer fin.Close()

	var options Options
	if opts != nil {
		options = *opts
	} else {
		options.ErrorMode = StrictErrorMode
	}
	if options.Data == nil {
		options.Data = gledata.Reader{Dir: filepath.Dir(sceneFile)}
	}
	return ReadSceneStream(fin, &options)
}
