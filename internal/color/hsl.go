package color

import "math"

// RGBToHSL converts RGB channels in [0, 1] to hue, saturation and
// lightness, each in [0, 1]. Achromatic input yields h = 0, s = 0.
func RGBToHSL(r, g, b float64) (h, s, l float64) {
	max := math.Max(math.Max(r, g), b)
	min := math.Min(math.Min(r, g), b)
	l = (max + min) / 2.0

	if max == min {
		return 0, 0, l
	}

	chroma := max - min
	s = clamp01(chroma / (1.0 - math.Abs(2.0*l-1.0)))

	switch max {
	case r:
		h = math.Mod((g-b)/chroma, 6.0)
	case g:
		h = 2.0 + (b-r)/chroma
	default:
		h = 4.0 + (r-g)/chroma
	}

	h *= 60.0
	if h < 0 {
		h += 360.0
	}
	return h / 360.0, s, l
}

// HSLToRGB converts hue, saturation and lightness in [0, 1] back to RGB
// channels in [0, 1].
func HSLToRGB(h, s, l float64) (r, g, b float64) {
	chroma := (1.0 - math.Abs(2.0*l-1.0)) * s
	sector := h * 6.0
	secondary := chroma * (1.0 - math.Abs(math.Mod(sector, 2.0)-1.0))
	offset := math.Max(0, l-chroma/2.0)

	switch int(sector) {
	case 1:
		r, g, b = secondary, chroma, 0
	case 2:
		r, g, b = 0, chroma, secondary
	case 3:
		r, g, b = 0, secondary, chroma
	case 4:
		r, g, b = secondary, 0, chroma
	case 5:
		r, g, b = chroma, 0, secondary
	default:
		// Sextant 0, and h == 1 which wraps around to red.
		r, g, b = chroma, secondary, 0
	}

	return r + offset, g + offset, b + offset
}

// FromHSL returns the Color for the given hue, saturation and lightness.
func FromHSL(h, s, l float64) Color {
	return New(HSLToRGB(h, s, l))
}
