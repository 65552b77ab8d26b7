package color

import (
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/edocico/a11y-audit/internal/model"
)

const memoSize = 4096

// Resolver maps utility classes, semantic token classes and raw hex values
// to concrete colors. Safe for concurrent use once built.
type Resolver struct {
	palette map[string]string
	tokens  map[model.ThemeMode]map[string]string
	memo    *lru.Cache[string, memoEntry]
}

type memoEntry struct {
	color model.Color
	ok    bool
}

// New returns a resolver over the default palette and semantic tokens.
func New() *Resolver {
	memo, _ := lru.New[string, memoEntry](memoSize)
	return &Resolver{
		palette: defaultPalette,
		tokens: map[model.ThemeMode]map[string]string{
			model.ModeLight: cloneTokens(defaultTokensLight),
			model.ModeDark:  cloneTokens(defaultTokensDark),
		},
		memo: memo,
	}
}

// Resolve maps one class (or raw #hex value) to a color for the given mode.
// The second return is false when the value cannot be resolved statically.
func (r *Resolver) Resolve(class string, mode model.ThemeMode) (model.Color, bool) {
	key := string(mode) + "|" + class
	if e, ok := r.memo.Get(key); ok {
		return e.color, e.ok
	}
	c, ok := r.resolve(class, mode)
	r.memo.Add(key, memoEntry{color: c, ok: ok})
	return c, ok
}

func (r *Resolver) resolve(class string, mode model.ThemeMode) (model.Color, bool) {
	s := strings.TrimSpace(class)
	if s == "" {
		return model.Color{}, false
	}
	if s[0] == '#' {
		return parseHex(s)
	}
	s = stripUtilityPrefix(s)
	s, alpha, ok := splitAlpha(s)
	if !ok {
		return model.Color{}, false
	}
	col, ok := r.lookup(s, mode)
	if !ok {
		return model.Color{}, false
	}
	col.Alpha *= alpha
	return col, true
}

func (r *Resolver) lookup(s string, mode model.ThemeMode) (model.Color, bool) {
	switch s {
	case "white":
		return model.Color{Hex: "#ffffff", Alpha: 1}, true
	case "black":
		return model.Color{Hex: "#000000", Alpha: 1}, true
	case "transparent":
		return model.Color{Hex: "#000000", Alpha: 0}, true
	case "current", "inherit":
		// value depends on cascade state this scan never sees
		return model.Color{}, false
	}
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		v := s[1 : len(s)-1]
		if strings.HasPrefix(v, "#") {
			return parseHex(v)
		}
		// rgb()/hsl()/var() arbitraries need a renderer to evaluate
		return model.Color{}, false
	}
	if hex, ok := r.palette[s]; ok {
		return model.Color{Hex: hex, Alpha: 1}, true
	}
	if hex, ok := r.tokens[mode][s]; ok {
		return parseHex(hex)
	}
	return model.Color{}, false
}

var utilityPrefixes = []string{
	"bg-", "text-", "border-", "ring-", "outline-",
	"decoration-", "divide-", "fill-", "stroke-",
}

func stripUtilityPrefix(s string) string {
	for _, p := range utilityPrefixes {
		if rest, ok := strings.CutPrefix(s, p); ok {
			if p == "border-" {
				rest = cutSidePrefix(rest)
			}
			return rest
		}
	}
	return s
}

// cutSidePrefix removes a directional segment so border-t-red-500 resolves
// like border-red-500.
func cutSidePrefix(rest string) string {
	for _, side := range []string{"t-", "r-", "b-", "l-", "x-", "y-", "s-", "e-"} {
		if v, ok := strings.CutPrefix(rest, side); ok && v != "" {
			return v
		}
	}
	return rest
}

// splitAlpha peels a trailing opacity modifier: black/50 is black at 0.5.
// Slashes inside arbitrary-value brackets do not count.
func splitAlpha(s string) (string, float64, bool) {
	i := -1
	depth := 0
	for j := 0; j < len(s); j++ {
		switch s[j] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case '/':
			if depth == 0 {
				i = j
			}
		}
	}
	if i < 0 {
		return s, 1, true
	}
	frac := s[i+1:]
	if strings.HasPrefix(frac, "[") && strings.HasSuffix(frac, "]") {
		if f, err := strconv.ParseFloat(frac[1:len(frac)-1], 64); err == nil {
			return s[:i], clamp01(f), true
		}
		return "", 0, false
	}
	n, err := strconv.Atoi(frac)
	if err != nil || n < 0 || n > 100 {
		return "", 0, false
	}
	return s[:i], float64(n) / 100, true
}

// parseHex handles #rgb, #rgba, #rrggbb and #rrggbbaa.
func parseHex(s string) (model.Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	alpha := 1.0
	switch len(s) {
	case 5: // #rgba
		a, err := strconv.ParseUint(s[4:5]+s[4:5], 16, 8)
		if err != nil {
			return model.Color{}, false
		}
		alpha = float64(a) / 255
		s = s[:4]
	case 9: // #rrggbbaa
		a, err := strconv.ParseUint(s[7:9], 16, 8)
		if err != nil {
			return model.Color{}, false
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return model.Color{}, false
	}
	return model.Color{Hex: c.Hex(), Alpha: alpha}, true
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
