package jsx

import "strings"

func identByte(c byte) bool {
	return c == '_' || c == '-' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isNameStartByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func skipWS(s string, p int) int {
	for p < len(s) && (s[p] == ' ' || s[p] == '\t' || s[p] == '\n' || s[p] == '\r') {
		p++
	}
	return p
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// findToken locates needle at an identifier boundary on both sides.
func findToken(s, needle string) int {
	from := 0
	for {
		i := strings.Index(s[from:], needle)
		if i < 0 {
			return -1
		}
		i += from
		before := i == 0 || !identByte(s[i-1])
		after := i+len(needle) >= len(s) || !identByte(s[i+len(needle)])
		if before && after {
			return i
		}
		from = i + 1
	}
}

// readQuoted reads a quoted JSX attribute value. JSX attribute literals have
// no escape sequences; the value runs to the next matching quote.
func readQuoted(src string, p int) (string, int, bool) {
	q := src[p]
	end := strings.IndexByte(src[p+1:], q)
	if end < 0 {
		return "", p, false
	}
	return src[p+1 : p+1+end], p + 1 + end + 1, true
}

// readJSString reads a '…' or "…" literal honoring backslash escapes. Plain
// strings do not span lines.
func readJSString(src string, p int) (string, int, bool) {
	q := src[p]
	var b strings.Builder
	for i := p + 1; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '\\' && i+1 < len(src):
			b.WriteByte(src[i+1])
			i++
		case c == q:
			return b.String(), i + 1, true
		case c == '\n':
			return "", p, false
		default:
			b.WriteByte(c)
		}
	}
	return "", p, false
}

// readTemplate reads a `…` literal, replacing each ${…} interpolation with a
// ${} marker so downstream categorization can flag the token as dynamic.
func readTemplate(src string, p int) (string, int, bool) {
	var b strings.Builder
	i := p + 1
	for i < len(src) {
		c := src[i]
		switch {
		case c == '\\' && i+1 < len(src):
			b.WriteByte(src[i+1])
			i += 2
		case c == '`':
			return b.String(), i + 1, true
		case c == '$' && i+1 < len(src) && src[i+1] == '{':
			np, ok := skipBraced(src, i+1)
			if !ok {
				return "", p, false
			}
			b.WriteString("${}")
			i = np
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", p, false
}

// skipString advances past a '…' or "…" literal without keeping its text.
func skipString(src string, p int) (int, bool) {
	q := src[p]
	for i := p + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case q:
			return i + 1, true
		case '\n':
			return p, false
		}
	}
	return p, false
}

// skipTemplate advances past a `…` literal, descending into interpolations.
func skipTemplate(src string, p int) (int, bool) {
	for i := p + 1; i < len(src); {
		switch {
		case src[i] == '\\':
			i += 2
		case src[i] == '`':
			return i + 1, true
		case src[i] == '$' && i+1 < len(src) && src[i+1] == '{':
			np, ok := skipBraced(src, i+1)
			if !ok {
				return p, false
			}
			i = np
		default:
			i++
		}
	}
	return p, false
}

// skipBraced advances past a balanced {…} starting at src[p] == '{'. String,
// template and comment contents never count toward the balance.
func skipBraced(src string, p int) (int, bool) {
	depth := 0
	for i := p; i < len(src); {
		switch src[i] {
		case '{':
			depth++
			i++
		case '}':
			depth--
			i++
			if depth == 0 {
				return i, true
			}
		case '"', '\'':
			np, ok := skipString(src, i)
			if !ok {
				return p, false
			}
			i = np
		case '`':
			np, ok := skipTemplate(src, i)
			if !ok {
				return p, false
			}
			i = np
		case '/':
			switch {
			case i+1 < len(src) && src[i+1] == '/':
				j := strings.IndexByte(src[i:], '\n')
				if j < 0 {
					return p, false
				}
				i += j + 1
			case i+1 < len(src) && src[i+1] == '*':
				j := strings.Index(src[i+2:], "*/")
				if j < 0 {
					return p, false
				}
				i += 2 + j + 2
			default:
				i++
			}
		default:
			i++
		}
	}
	return p, false
}

// matchCallName reads an identifier immediately followed by an opening paren,
// returning the name and the position just past the paren.
func matchCallName(src string, p int) (string, int) {
	start := p
	for p < len(src) && identByte(src[p]) {
		p++
	}
	if p > start && p < len(src) && src[p] == '(' {
		return src[start:p], p + 1
	}
	return "", start
}

// collectCallLiterals gathers every string/template literal inside a call's
// balanced parens, starting just past the opening paren. Conditional branches
// all contribute; the audit checks every class that could render.
func collectCallLiterals(src string, p int) (string, int, bool) {
	depth := 1
	var parts []string
	for i := p; i < len(src); {
		switch src[i] {
		case '(':
			depth++
			i++
		case ')':
			depth--
			i++
			if depth == 0 {
				return strings.Join(parts, " "), i, true
			}
		case '"', '\'':
			v, np, ok := readJSString(src, i)
			if !ok {
				return "", p, false
			}
			if strings.TrimSpace(v) != "" {
				parts = append(parts, strings.TrimSpace(v))
			}
			i = np
		case '`':
			v, np, ok := readTemplate(src, i)
			if !ok {
				return "", p, false
			}
			if strings.TrimSpace(v) != "" {
				parts = append(parts, strings.TrimSpace(v))
			}
			i = np
		case '/':
			switch {
			case i+1 < len(src) && src[i+1] == '/':
				j := strings.IndexByte(src[i:], '\n')
				if j < 0 {
					return "", p, false
				}
				i += j + 1
			case i+1 < len(src) && src[i+1] == '*':
				j := strings.Index(src[i+2:], "*/")
				if j < 0 {
					return "", p, false
				}
				i += 2 + j + 2
			default:
				i++
			}
		default:
			i++
		}
	}
	return "", p, false
}

// rawCallBody returns the verbatim argument text of a call, for the variant
// expander to parse on its own.
func rawCallBody(src string, p int) (string, int, bool) {
	depth := 1
	for i := p; i < len(src); {
		switch src[i] {
		case '(':
			depth++
			i++
		case ')':
			depth--
			i++
			if depth == 0 {
				return src[p : i-1], i, true
			}
		case '"', '\'':
			np, ok := skipString(src, i)
			if !ok {
				return "", p, false
			}
			i = np
		case '`':
			np, ok := skipTemplate(src, i)
			if !ok {
				return "", p, false
			}
			i = np
		default:
			i++
		}
	}
	return "", p, false
}
