package jsx

import (
	"github.com/edocico/a11y-audit/internal/model"
)

// ColorResolver resolves one class token (or raw #hex value) to a concrete
// color for a theme mode.
type ColorResolver interface {
	Resolve(class string, mode model.ThemeMode) (model.Color, bool)
}

// implicitPrefix marks pair background labels that came from inherited
// context rather than a class on the element itself.
const implicitPrefix = "(implicit) "

// bgCandidate is one effective-background choice for a region.
type bgCandidate struct {
	label    string // reported bgClass, possibly "(implicit) " prefixed
	value    string // what the resolver sees
	explicit bool
	source   model.ContextSource
}

type fgGroup struct {
	kind    model.PairType
	classes []model.TaggedClass
	reason  string
}

// GeneratePairs turns one region into candidate color pairs plus the skip
// records its unresolvable classes require. Pure function; safe to call
// concurrently for different regions.
func GeneratePairs(file string, region model.ClassRegion, res ColorResolver, mode model.ThemeMode) ([]model.ColorPair, []model.SkippedClass) {
	cat := categorize(region.Content, mode)

	var pairs []model.ColorPair
	var skips []model.SkippedClass

	for _, d := range cat.dynamic {
		skips = append(skips, model.SkippedClass{
			File: file, Line: region.StartLine, ClassName: d, Reason: "Dynamic class value",
		})
	}

	bgs := effectiveBackgrounds(region, cat.base.Bg)
	baseGroups := effectiveForegrounds(region, cat.base, true)

	for _, g := range baseGroups {
		if len(g.classes) == 0 {
			continue
		}
		for _, bg := range bgs {
			bgCol, bgOK := res.Resolve(bg.value, mode)
			if !bgOK {
				if g.kind != model.PairText {
					continue // non-text pairings drop silently on a dead background
				}
				if bg.explicit {
					skips = append(skips, model.SkippedClass{
						File: file, Line: region.StartLine, ClassName: bg.label,
						Reason: "Unresolvable background: " + bg.value,
					})
					continue
				}
				// implicit text background stays as an open pair; the checker
				// decides whether to surface it
			}
			for _, fg := range g.classes {
				fgCol, fgOK := res.Resolve(fg.Base, mode)
				if !fgOK {
					skips = append(skips, model.SkippedClass{
						File: file, Line: region.StartLine, ClassName: fg.Raw, Reason: g.reason,
					})
					continue
				}
				pairs = append(pairs, buildPair(file, region, mode, bg, bgCol, bgOK, fg, fgCol, g.kind, cat.isLarge, model.StateNone))
			}
		}
	}

	// interactive states re-pair against the base side they do not change and
	// never report skips: the base state already did
	for _, st := range []model.InteractiveState{model.StateHover, model.StateFocusVisible, model.StateAriaDisabled} {
		ss := cat.states[st]
		if ss == nil {
			continue
		}
		stateBgs := bgs
		if len(ss.Bg) > 0 {
			stateBgs = make([]bgCandidate, 0, len(ss.Bg))
			for _, c := range ss.Bg {
				stateBgs = append(stateBgs, bgCandidate{label: c.Raw, value: c.Base, explicit: true, source: model.SourceInferred})
			}
		}
		stateGroups := effectiveForegrounds(region, *ss, false)
		for i, g := range stateGroups {
			classes := g.classes
			fellBack := false
			if len(classes) == 0 {
				classes = baseGroups[i].classes
				fellBack = true
			}
			if len(classes) == 0 || (fellBack && len(ss.Bg) == 0) {
				continue
			}
			for _, bg := range stateBgs {
				bgCol, bgOK := res.Resolve(bg.value, mode)
				if !bgOK && (g.kind != model.PairText || bg.explicit) {
					continue
				}
				for _, fg := range classes {
					fgCol, fgOK := res.Resolve(fg.Base, mode)
					if !fgOK {
						continue
					}
					pairs = append(pairs, buildPair(file, region, mode, bg, bgCol, bgOK, fg, fgCol, g.kind, cat.isLarge, st))
				}
			}
		}
	}

	return pairs, skips
}

// effectiveBackgrounds applies the background precedence order: annotation
// override, then inline style literal, then explicit classes, then inherited
// context.
func effectiveBackgrounds(region model.ClassRegion, explicit []model.TaggedClass) []bgCandidate {
	if ov := region.ContextOverride; ov != nil && ov.Bg != "" {
		return []bgCandidate{{label: ov.Bg, value: ov.Bg, explicit: true, source: model.SourceAnnotation}}
	}
	if st := region.InlineStyles; st != nil && st.BackgroundColor != "" {
		return []bgCandidate{{label: st.BackgroundColor, value: st.BackgroundColor, explicit: true, source: model.SourceInferred}}
	}
	if len(explicit) > 0 {
		out := make([]bgCandidate, 0, len(explicit))
		for _, c := range explicit {
			out = append(out, bgCandidate{label: c.Raw, value: c.Base, explicit: true, source: model.SourceInferred})
		}
		return out
	}
	src := model.SourceInferred
	if region.ContextAnnotated {
		src = model.SourceAnnotation
	}
	return []bgCandidate{{label: implicitPrefix + region.ContextBg, value: region.ContextBg, explicit: false, source: src}}
}

// effectiveForegrounds builds the four pairing groups. For the base state an
// annotation fg override, or failing that an inline style color literal,
// replaces the detected text classes.
func effectiveForegrounds(region model.ClassRegion, b bucketSet, base bool) []fgGroup {
	text := b.Text
	if ov := region.ContextOverride; base && ov != nil && ov.Fg != "" {
		text = []model.TaggedClass{{Raw: ov.Fg, Base: ov.Fg}}
	} else if st := region.InlineStyles; base && st != nil && st.Color != "" {
		text = []model.TaggedClass{{Raw: st.Color, Base: st.Color}}
	}
	return []fgGroup{
		{model.PairText, text, "Unresolvable text color"},
		{model.PairBorder, b.Border, "Unresolvable border color"},
		{model.PairRing, b.Ring, "Unresolvable ring color"},
		{model.PairOutline, b.Outline, "Unresolvable outline color"},
	}
}

func buildPair(file string, region model.ClassRegion, mode model.ThemeMode, bg bgCandidate, bgCol model.Color, bgOK bool, fg model.TaggedClass, fgCol model.Color, kind model.PairType, large bool, st model.InteractiveState) model.ColorPair {
	p := model.ColorPair{
		File:             file,
		Line:             region.StartLine,
		Mode:             mode,
		BgClass:          bg.label,
		TextClass:        fg.Raw,
		PairType:         kind,
		InteractiveState: st,
		Ignored:          region.Ignored,
		IgnoreReason:     region.IgnoreReason,
		ContextSource:    bg.source,
	}
	if kind == model.PairText {
		p.IsLargeText = large
	}
	if bgOK {
		p.BgHex = bgCol.Hex
		p.BgAlpha = bgCol.Alpha
	}
	p.TextHex = fgCol.Hex
	p.TextAlpha = fgCol.Alpha
	if eff := region.EffectiveOpacity; eff > 0 && eff < 1 {
		// translucent ancestors attenuate both sides of the pair
		p.EffectiveOpacity = eff
		p.BgAlpha *= eff
		p.TextAlpha *= eff
	}
	return p
}
