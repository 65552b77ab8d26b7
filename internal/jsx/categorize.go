package jsx

import (
	"strconv"
	"strings"

	"github.com/edocico/a11y-audit/internal/model"
)

// WCAG large text: 24px, or 14pt (56/3 px) when bold.
const (
	largeMinPx     = 24.0
	largeBoldMinPx = 56.0 / 3.0
)

// bucketSet holds the color classes of one rendering state, split by what
// they paint.
type bucketSet struct {
	Bg      []model.TaggedClass
	Text    []model.TaggedClass
	Border  []model.TaggedClass
	Ring    []model.TaggedClass
	Outline []model.TaggedClass
}

// categorized is the bucketed view of one region's content for one theme mode.
type categorized struct {
	base    bucketSet
	states  map[model.InteractiveState]*bucketSet
	dynamic []string
	isLarge bool
}

func categorize(content string, mode model.ThemeMode) categorized {
	out := categorized{states: map[model.InteractiveState]*bucketSet{}}
	var sizePx float64
	var sizeSeen, bold bool

	for _, raw := range strings.Fields(content) {
		if strings.Contains(raw, "${") {
			out.dynamic = append(out.dynamic, raw)
			continue
		}
		tc := stripVariants(raw)
		if tc.IsInteractive && tc.InteractiveState == model.StateNone {
			continue // untracked conditional prefix: rendering state unknowable
		}
		if mode == model.ModeLight && tc.IsDark {
			continue
		}
		if !tc.IsInteractive {
			if px, ok := fontSizePx(tc.Base); ok {
				sizePx, sizeSeen = px, true
			}
			switch tc.Base {
			case "font-bold", "font-extrabold", "font-black":
				bold = true
			}
		}
		set := &out.base
		if tc.IsInteractive {
			ss := out.states[tc.InteractiveState]
			if ss == nil {
				ss = &bucketSet{}
				out.states[tc.InteractiveState] = ss
			}
			set = ss
		}
		route(set, tc)
	}

	if mode == model.ModeDark {
		applyDarkOverride(&out.base)
		for _, ss := range out.states {
			applyDarkOverride(ss)
		}
	}

	out.isLarge = sizeSeen && (sizePx >= largeMinPx || (sizePx >= largeBoldMinPx && bold))
	return out
}

// stripVariants peels sm:dark:hover:-style prefixes off one token. Colons
// inside arbitrary-value brackets do not split.
func stripVariants(raw string) model.TaggedClass {
	tc := model.TaggedClass{Raw: raw, Base: raw, InteractiveState: model.StateNone}
	rest := raw
	untracked := false
	for {
		i := variantColon(rest)
		if i < 0 {
			break
		}
		switch rest[:i] {
		case "dark":
			tc.IsDark = true
		case "hover":
			tc.IsInteractive = true
			tc.InteractiveState = model.StateHover
		case "focus-visible":
			tc.IsInteractive = true
			tc.InteractiveState = model.StateFocusVisible
		case "aria-disabled":
			tc.IsInteractive = true
			tc.InteractiveState = model.StateAriaDisabled
		default:
			untracked = true
		}
		rest = rest[i+1:]
	}
	if untracked {
		tc.IsInteractive = true
		tc.InteractiveState = model.StateNone
	}
	tc.Base = rest
	return tc
}

// variantColon returns the first colon outside square brackets, or -1.
func variantColon(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func route(b *bucketSet, tc model.TaggedClass) {
	switch {
	case isBgColor(tc.Base):
		b.Bg = append(b.Bg, tc)
	case isTextColor(tc.Base):
		b.Text = append(b.Text, tc)
	case isBorderColor(tc.Base):
		b.Border = append(b.Border, tc)
	case isRingColor(tc.Base):
		b.Ring = append(b.Ring, tc)
	case isOutlineColor(tc.Base):
		b.Outline = append(b.Outline, tc)
	}
}

// applyDarkOverride drops non-dark classes from any bucket holding at least
// one dark: class. Replacement, not union.
func applyDarkOverride(b *bucketSet) {
	b.Bg = darkFilter(b.Bg)
	b.Text = darkFilter(b.Text)
	b.Border = darkFilter(b.Border)
	b.Ring = darkFilter(b.Ring)
	b.Outline = darkFilter(b.Outline)
}

func darkFilter(in []model.TaggedClass) []model.TaggedClass {
	hasDark := false
	for _, c := range in {
		if c.IsDark {
			hasDark = true
			break
		}
	}
	if !hasDark {
		return in
	}
	out := in[:0]
	for _, c := range in {
		if c.IsDark {
			out = append(out, c)
		}
	}
	return out
}

var bgNonColor = []string{
	"gradient", "none", "auto", "cover", "contain", "fixed", "local", "scroll",
	"clip", "origin", "repeat", "no-repeat", "center", "top", "bottom", "left",
	"right", "blend", "opacity",
}

// isBgColor reports whether a bg-* utility paints a background color, as
// opposed to gradients, images, positions and attachment utilities.
func isBgColor(c string) bool {
	rest, ok := strings.CutPrefix(c, "bg-")
	if !ok || rest == "" {
		return false
	}
	for _, p := range bgNonColor {
		if rest == p || strings.HasPrefix(rest, p+"-") {
			return false
		}
	}
	if strings.HasPrefix(rest, "[url") || strings.Contains(rest, "gradient(") {
		return false
	}
	return true
}

var textNonColor = []string{
	"left", "center", "right", "justify", "start", "end",
	"wrap", "nowrap", "balance", "pretty", "ellipsis", "clip",
}

// isTextColor filters out size, alignment, wrapping and overflow text-*
// utilities. transparent/current/inherit pass through; the resolver rules on
// those.
func isTextColor(c string) bool {
	rest, ok := strings.CutPrefix(c, "text-")
	if !ok || rest == "" {
		return false
	}
	if _, sized := fontSizeScale[rest]; sized {
		return false
	}
	for _, p := range textNonColor {
		if rest == p || strings.HasPrefix(rest, p+"-") {
			return false
		}
	}
	if _, sized := parseArbitrarySize(rest); sized {
		return false
	}
	return true
}

// isBorderColor excludes widths, bare sides and style keywords. Side-specific
// colors (border-t-red-500) stay.
func isBorderColor(c string) bool {
	rest, ok := strings.CutPrefix(c, "border-")
	if !ok || rest == "" {
		return false
	}
	switch rest {
	case "solid", "dashed", "dotted", "double", "hidden", "none", "collapse", "separate":
		return false
	}
	if strings.HasPrefix(rest, "spacing") || isNumeric(rest) {
		return false
	}
	if _, sized := parseArbitrarySize(rest); sized {
		return false
	}
	if tail, side := cutBorderSide(rest); side && (tail == "" || isNumeric(tail)) {
		return false
	}
	return true
}

func cutBorderSide(rest string) (string, bool) {
	for _, s := range []string{"t", "r", "b", "l", "x", "y", "s", "e"} {
		if rest == s {
			return "", true
		}
		if strings.HasPrefix(rest, s+"-") {
			return rest[len(s)+1:], true
		}
	}
	return "", false
}

func isRingColor(c string) bool {
	rest, ok := strings.CutPrefix(c, "ring-")
	if !ok || rest == "" || rest == "inset" || isNumeric(rest) {
		return false
	}
	if strings.HasPrefix(rest, "offset") || strings.HasPrefix(rest, "opacity") {
		return false
	}
	if _, sized := parseArbitrarySize(rest); sized {
		return false
	}
	return true
}

func isOutlineColor(c string) bool {
	rest, ok := strings.CutPrefix(c, "outline-")
	if !ok {
		return false
	}
	switch rest {
	case "", "none", "solid", "dashed", "dotted", "double", "hidden":
		return false
	}
	if strings.HasPrefix(rest, "offset") || isNumeric(rest) {
		return false
	}
	if _, sized := parseArbitrarySize(rest); sized {
		return false
	}
	return true
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

var fontSizeScale = map[string]float64{
	"xs": 12, "sm": 14, "base": 16, "lg": 18, "xl": 20,
	"2xl": 24, "3xl": 30, "4xl": 36, "5xl": 48,
	"6xl": 60, "7xl": 72, "8xl": 96, "9xl": 128,
}

func fontSizePx(c string) (float64, bool) {
	rest, ok := strings.CutPrefix(c, "text-")
	if !ok {
		return 0, false
	}
	if px, ok := fontSizeScale[rest]; ok {
		return px, true
	}
	return parseArbitrarySize(rest)
}

// parseArbitrarySize reads text-[18px] / text-[1.2rem] style values. Color
// values in the same bracket syntax do not parse as sizes.
func parseArbitrarySize(rest string) (float64, bool) {
	if len(rest) < 2 || rest[0] != '[' || rest[len(rest)-1] != ']' {
		return 0, false
	}
	v := rest[1 : len(rest)-1]
	if n, ok := strings.CutSuffix(v, "px"); ok {
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f, true
		}
	}
	if n, ok := strings.CutSuffix(v, "rem"); ok {
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f * 16, true
		}
	}
	if n, ok := strings.CutSuffix(v, "em"); ok {
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f * 16, true
		}
	}
	return 0, false
}
