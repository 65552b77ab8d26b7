package jsx

import (
	"strings"

	"github.com/edocico/a11y-audit/internal/model"
)

// IsCVABody reports whether a region's content looks like the argument list
// of a variant-authoring call: a leading quoted base string plus a variants:
// key in the options object. Heuristic by design, not an AST check.
func IsCVABody(content string) bool {
	t := strings.TrimSpace(content)
	if t == "" || (t[0] != '"' && t[0] != '\'' && t[0] != '`') {
		return false
	}
	return strings.Contains(t, "variants:")
}

type cvaAxis struct {
	name    string
	options []cvaOption
}

type cvaOption struct {
	name    string
	classes string
}

// ExpandCVA rewrites one cva() region into concrete class regions. Default
// mode yields exactly one region (base plus the defaultVariants selections);
// exhaustive mode adds one region per non-default option per axis. Axes are
// never cross-combined; compoundVariants and non-string option values are
// ignored.
func ExpandCVA(region model.ClassRegion, exhaustive bool) []model.ClassRegion {
	body := strings.TrimSpace(region.Content)
	if len(body) == 0 {
		return []model.ClassRegion{region}
	}
	var base string
	switch body[0] {
	case '"', '\'':
		v, _, ok := readJSString(body, 0)
		if !ok {
			return []model.ClassRegion{region}
		}
		base = v
	case '`':
		v, _, ok := readTemplate(body, 0)
		if !ok {
			return []model.ClassRegion{region}
		}
		base = v
	default:
		return []model.ClassRegion{region}
	}
	base = strings.TrimSpace(base)

	axes := parseAxes(body)
	defaults := parseDefaults(body)

	mk := func(classes string) model.ClassRegion {
		r := region
		r.Content = classes
		return r
	}

	var def strings.Builder
	def.WriteString(base)
	for _, ax := range axes {
		sel, ok := defaults[ax.name]
		if !ok {
			continue
		}
		for _, o := range ax.options {
			if o.name == sel && o.classes != "" {
				def.WriteByte(' ')
				def.WriteString(o.classes)
				break
			}
		}
	}
	out := []model.ClassRegion{mk(strings.TrimSpace(def.String()))}

	if exhaustive {
		for _, ax := range axes {
			sel := defaults[ax.name]
			for _, o := range ax.options {
				if o.name == sel {
					continue
				}
				out = append(out, mk(strings.TrimSpace(base+" "+o.classes)))
			}
		}
	}
	return out
}

// objectKeyPos finds `key:` at an identifier boundary and returns the
// position of the opening brace of its object value, or -1.
func objectKeyPos(s, key string) int {
	off := 0
	for {
		i := findToken(s[off:], key)
		if i < 0 {
			return -1
		}
		i += off
		p := skipWS(s, i+len(key))
		if p < len(s) && s[p] == ':' {
			p = skipWS(s, p+1)
			if p < len(s) && s[p] == '{' {
				return p
			}
		}
		off = i + len(key)
	}
}

// parseAxes extracts the variants: {...} object: one axis per key, each a
// name -> class-string option map. Balanced-brace scanning tracks string
// literals so braces inside class strings never confuse the walk.
func parseAxes(s string) []cvaAxis {
	start := objectKeyPos(s, "variants")
	if start < 0 {
		return nil
	}
	var axes []cvaAxis
	p := skipWS(s, start+1)
	for p < len(s) && s[p] != '}' {
		name, np, ok := readObjectKey(s, p)
		if !ok {
			return axes
		}
		p = skipWS(s, np)
		if p >= len(s) || s[p] != ':' {
			return axes
		}
		p = skipWS(s, p+1)
		if p >= len(s) {
			return axes
		}
		if s[p] == '{' {
			opts, np, ok := parseOptions(s, p)
			if !ok {
				return axes
			}
			axes = append(axes, cvaAxis{name: name, options: opts})
			p = np
		} else {
			np, ok := skipValue(s, p)
			if !ok {
				return axes
			}
			p = np
		}
		p = skipWS(s, p)
		if p < len(s) && s[p] == ',' {
			p = skipWS(s, p+1)
		}
	}
	return axes
}

// parseOptions reads one axis object. Options whose value is not a string
// literal are silently dropped.
func parseOptions(s string, p int) ([]cvaOption, int, bool) {
	var opts []cvaOption
	p = skipWS(s, p+1)
	for p < len(s) && s[p] != '}' {
		name, np, ok := readObjectKey(s, p)
		if !ok {
			return opts, p, false
		}
		p = skipWS(s, np)
		if p >= len(s) || s[p] != ':' {
			return opts, p, false
		}
		p = skipWS(s, p+1)
		if p >= len(s) {
			return opts, p, false
		}
		switch s[p] {
		case '"', '\'':
			v, np, ok := readJSString(s, p)
			if !ok {
				return opts, p, false
			}
			opts = append(opts, cvaOption{name: name, classes: strings.TrimSpace(v)})
			p = np
		case '`':
			v, np, ok := readTemplate(s, p)
			if !ok {
				return opts, p, false
			}
			opts = append(opts, cvaOption{name: name, classes: strings.TrimSpace(v)})
			p = np
		default:
			np, ok := skipValue(s, p)
			if !ok {
				return opts, p, false
			}
			p = np
		}
		p = skipWS(s, p)
		if p < len(s) && s[p] == ',' {
			p = skipWS(s, p+1)
		}
	}
	if p < len(s) && s[p] == '}' {
		return opts, p + 1, true
	}
	return opts, p, false
}

// parseDefaults reads the defaultVariants: {...} map. Values may be quoted
// strings or bare identifiers (boolean axes).
func parseDefaults(s string) map[string]string {
	defaults := map[string]string{}
	start := objectKeyPos(s, "defaultVariants")
	if start < 0 {
		return defaults
	}
	p := skipWS(s, start+1)
	for p < len(s) && s[p] != '}' {
		name, np, ok := readObjectKey(s, p)
		if !ok {
			return defaults
		}
		p = skipWS(s, np)
		if p >= len(s) || s[p] != ':' {
			return defaults
		}
		p = skipWS(s, p+1)
		if p >= len(s) {
			return defaults
		}
		switch {
		case s[p] == '"' || s[p] == '\'':
			v, np, ok := readJSString(s, p)
			if !ok {
				return defaults
			}
			defaults[name] = v
			p = np
		case identByte(s[p]):
			start := p
			for p < len(s) && identByte(s[p]) {
				p++
			}
			defaults[name] = s[start:p]
		default:
			np, ok := skipValue(s, p)
			if !ok {
				return defaults
			}
			p = np
		}
		p = skipWS(s, p)
		if p < len(s) && s[p] == ',' {
			p = skipWS(s, p+1)
		}
	}
	return defaults
}

// readObjectKey reads an identifier or quoted key.
func readObjectKey(s string, p int) (string, int, bool) {
	if p >= len(s) {
		return "", p, false
	}
	if s[p] == '"' || s[p] == '\'' {
		return readJSString(s, p)
	}
	start := p
	for p < len(s) && identByte(s[p]) {
		p++
	}
	if p == start {
		return "", p, false
	}
	return s[start:p], p, true
}

// skipValue advances past one object/array/string/scalar value.
func skipValue(s string, p int) (int, bool) {
	switch s[p] {
	case '{':
		return skipBraced(s, p)
	case '[':
		depth := 0
		for i := p; i < len(s); {
			switch s[i] {
			case '[':
				depth++
				i++
			case ']':
				depth--
				i++
				if depth == 0 {
					return i, true
				}
			case '"', '\'':
				np, ok := skipString(s, i)
				if !ok {
					return p, false
				}
				i = np
			case '`':
				np, ok := skipTemplate(s, i)
				if !ok {
					return p, false
				}
				i = np
			case '{':
				np, ok := skipBraced(s, i)
				if !ok {
					return p, false
				}
				i = np
			default:
				i++
			}
		}
		return p, false
	case '"', '\'':
		return skipString(s, p)
	case '`':
		return skipTemplate(s, p)
	}
	start := p
	for p < len(s) && (identByte(s[p]) || s[p] == '.') {
		p++
	}
	if p == start {
		p++ // always advance; the surrounding loops rely on it
	}
	return p, true
}
