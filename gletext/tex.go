package gletext

import "strings"

const texTag = `\tex{`

// a few TeX control words are common enough in axis titles to be
// worth rendering as their Unicode equivalent
var texSymbols = map[string]string{
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ", "epsilon": "ε",
	"theta": "θ", "lambda": "λ", "mu": "μ", "pi": "π", "rho": "ρ",
	"sigma": "σ", "tau": "τ", "phi": "φ", "omega": "ω",
	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ", "Pi": "Π",
	"Sigma": "Σ", "Phi": "Φ", "Omega": "Ω",
	"times": "×", "cdot": "·", "pm": "±", "circ": "°", "infty": "∞",
}

// PlainText replaces every \tex{...} payload of `s` by a plain text
// approximation: math shifts and grouping braces are dropped, sub- and
// superscript markers removed, and known control words mapped to Unicode.
// Text outside the payloads is returned unchanged.
func PlainText(s string) string {
	var out strings.Builder
	for {
		start := strings.Index(s, texTag)
		if start < 0 {
			out.WriteString(s)
			return out.String()
		}
		out.WriteString(s[:start])
		rest := s[start+len(texTag):]
		end := matchingBrace(rest)
		if end < 0 { // unterminated: keep it verbatim
			out.WriteString(s[start:])
			return out.String()
		}
		out.WriteString(texToPlain(rest[:end]))
		s = rest[end+1:]
	}
}

// matchingBrace returns the index of the '}' closing an already opened
// group, or -1
func matchingBrace(s string) int {
	depth := 1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++ // skip escaped character
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func texToPlain(s string) string {
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '$', '{', '}', '^', '_':
			continue
		case '\\':
			j := i + 1
			for j < len(s) && isLetter(s[j]) {
				j++
			}
			if j == i+1 { // escaped symbol, like \$ or \{
				if j < len(s) {
					out.WriteByte(s[j])
					j++
				}
				i = j - 1
				continue
			}
			word := s[i+1 : j]
			if sym, ok := texSymbols[word]; ok {
				out.WriteString(sym)
			}
			for j < len(s) && s[j] == ' ' { // spaces terminating a control word
				j++
			}
			i = j - 1
		default:
			out.WriteByte(c)
		}
	}
	return out.String()
}

func isLetter(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }
