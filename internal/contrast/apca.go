package contrast

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// APCA 0.0.98G-4g constants.
const (
	apcaNormBg   = 0.56
	apcaNormText = 0.57
	apcaRevText  = 0.62
	apcaRevBg    = 0.65
	apcaScale    = 1.14
	apcaOffset   = 0.027
	apcaClampLow = 0.1
	apcaBlkThrs  = 0.022
	apcaBlkClmp  = 1.414
	apcaExponent = 2.4
)

// APCALc computes the APCA lightness contrast between text and background.
// Positive values mean dark text on a light background. Reported alongside
// the WCAG ratio; it does not gate findings on its own.
func APCALc(text, bg colorful.Color) float64 {
	ytx := apcaY(text)
	ybg := apcaY(bg)

	var sapc float64
	if ytx <= ybg {
		sapc = (math.Pow(ybg, apcaNormBg) - math.Pow(ytx, apcaNormText)) * apcaScale
		if sapc < apcaClampLow {
			return 0
		}
		return (sapc - apcaOffset) * 100
	}
	sapc = (math.Pow(ybg, apcaRevBg) - math.Pow(ytx, apcaRevText)) * apcaScale
	if sapc > -apcaClampLow {
		return 0
	}
	return (sapc + apcaOffset) * 100
}

// apcaY is the APCA screen luminance estimate with the black-level soft
// clamp applied.
func apcaY(c colorful.Color) float64 {
	y := 0.2126729*math.Pow(clampChan(c.R), apcaExponent) +
		0.7151522*math.Pow(clampChan(c.G), apcaExponent) +
		0.0721750*math.Pow(clampChan(c.B), apcaExponent)
	if y < apcaBlkThrs {
		y += math.Pow(apcaBlkThrs-y, apcaBlkClmp)
	}
	return y
}

func clampChan(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
