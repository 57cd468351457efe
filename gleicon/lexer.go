package gleicon

import (
	"strings"

	"github.com/google/shlex"
)

// directive is one non blank line of a script
type directive struct {
	line    int
	text    string   // the line, without comment
	keyword string   // case folded first word
	args    []string // remaining words, quotes removed
	rest    string   // raw text after the keyword
}

// stripComment removes a `!` comment, ignoring the ones
// inside quotes
func stripComment(line string) string {
	var quote rune
	for i, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '!':
			return line[:i]
		}
	}
	return line
}

// escapeForShlex protects the characters shlex would interpret
// differently: backslashes (kept verbatim, for \tex payloads) and
// '#' (a comment start for shlex, a color prefix for us).
// Spaces inside parentheses are removed, so that rgb(1, 0, 0)
// is one word.
func escapeForShlex(s string) string {
	var (
		out   strings.Builder
		quote rune
		depth int
	)
	for _, r := range s {
		switch {
		case quote == '\'': // shlex keeps everything verbatim
			if r == quote {
				quote = 0
			}
		case quote == '"':
			if r == quote {
				quote = 0
			} else if r == '\\' {
				out.WriteRune('\\')
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '\\' || r == '#':
			out.WriteRune('\\')
		case r == '(':
			depth++
		case r == ')':
			depth--
		case (r == ' ' || r == '\t') && depth > 0:
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

// splitWords tokenizes a directive line, honoring quotes
func splitWords(s string) ([]string, error) {
	return shlex.Split(escapeForShlex(s))
}

// lex splits the given line into a directive. It returns false
// for blank and comment lines.
func (c *sceneCursor) lex(lineNumber int, raw string) (directive, bool, error) {
	text := strings.TrimSpace(stripComment(raw))
	if text == "" {
		return directive{}, false, nil
	}
	d := directive{line: lineNumber, text: text}
	head, rest := text, ""
	if i := strings.IndexAny(text, " \t"); i >= 0 {
		head, rest = text[:i], text[i+1:]
	}
	d.keyword = c.fold(head)
	d.rest = strings.TrimSpace(rest)

	if d.keyword == "text" || d.keyword == "write" {
		return d, true, nil // the rest is kept verbatim
	}
	words, err := splitWords(d.rest)
	if err != nil {
		return d, true, c.parseError(d, err)
	}
	d.args = words
	return d, true, nil
}

// unquote removes one pair of surrounding double quotes
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
