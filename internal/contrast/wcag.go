package contrast

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/edocico/a11y-audit/internal/model"
)

// WCAG 2.x minimums. Non-text pairs (border/ring/outline) fall under the
// non-text contrast criterion: 3:1 flat, no AAA tier.
const (
	aaNormal  = 4.5
	aaaNormal = 7.0
	aaLarge   = 3.0
	aaaLarge  = 4.5
	aaNonText = 3.0
)

type Checker struct{}

// Check evaluates one pair. pageBg is the opaque backdrop translucent colors
// composite over; a pair with no resolved background is measured against it
// directly.
func (Checker) Check(pair model.ColorPair, pageBg model.Color) model.CheckResult {
	page := hexOr(pageBg.Hex, colorful.Color{R: 1, G: 1, B: 1})

	bg := page
	if pair.BgHex != "" {
		bg = compositeOver(hexOr(pair.BgHex, page), pair.BgAlpha, page)
	}
	fg := bg
	if pair.TextHex != "" {
		fg = compositeOver(hexOr(pair.TextHex, bg), pair.TextAlpha, bg)
	}

	ratio := Ratio(fg, bg)
	res := model.CheckResult{
		Ratio:  ratio,
		APCALc: APCALc(fg, bg),
	}
	switch pair.PairType {
	case model.PairText:
		if pair.IsLargeText {
			res.PassAA = ratio >= aaLarge
			res.PassAAA = ratio >= aaaLarge
		} else {
			res.PassAA = ratio >= aaNormal
			res.PassAAA = ratio >= aaaNormal
		}
	default:
		res.PassAA = ratio >= aaNonText
		res.PassAAA = res.PassAA
	}
	return res
}

// Threshold returns the AA minimum a pair is held to.
func Threshold(pair model.ColorPair) float64 {
	if pair.PairType != model.PairText {
		return aaNonText
	}
	if pair.IsLargeText {
		return aaLarge
	}
	return aaNormal
}

// Ratio is the WCAG 2.x contrast ratio between two opaque colors.
func Ratio(a, b colorful.Color) float64 {
	la := relativeLuminance(a)
	lb := relativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// relativeLuminance uses the linearized sRGB channels.
func relativeLuminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// compositeOver flattens a translucent color onto an opaque backdrop in
// device sRGB space.
func compositeOver(c colorful.Color, alpha float64, backdrop colorful.Color) colorful.Color {
	if alpha >= 1 {
		return c
	}
	if alpha < 0 {
		alpha = 0
	}
	return colorful.Color{
		R: c.R*alpha + backdrop.R*(1-alpha),
		G: c.G*alpha + backdrop.G*(1-alpha),
		B: c.B*alpha + backdrop.B*(1-alpha),
	}
}

func hexOr(hex string, fallback colorful.Color) colorful.Color {
	if hex == "" {
		return fallback
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	return c
}
