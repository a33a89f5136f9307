package color

// Delta is an offset in HSL space.
type Delta struct {
	H, S, L float64
}

// Scale returns the delta multiplied by k.
func (d Delta) Scale(k float64) Delta {
	return Delta{H: d.H * k, S: d.S * k, L: d.L * k}
}

// Skew selects a preset direction for extrapolation.
type Skew int

const (
	Lighter Skew = iota
	Darker
)

// Preset deltas for each skew direction.
var (
	LighterDelta = Delta{H: 0, S: -0.15, L: 0.15}
	DarkerDelta  = Delta{H: 0, S: 0.15, L: -0.25}
)

// Delta returns the preset delta for the skew direction.
func (s Skew) Delta() Delta {
	if s == Darker {
		return DarkerDelta
	}
	return LighterDelta
}

func (s Skew) String() string {
	if s == Darker {
		return "darker"
	}
	return "lighter"
}

// Transform offsets the color's HSL components by d, clamps each
// component to [0, 1] and converts back to RGB. A zero delta returns
// the color unchanged.
func Transform(c Color, d Delta) Color {
	if d == (Delta{}) {
		return c
	}
	h, s, l := c.HSL()
	return FromHSL(clamp01(h+d.H), clamp01(s+d.S), clamp01(l+d.L))
}

// Skewed applies the preset delta for skew, scaled by modifier.
func Skewed(c Color, skew Skew, modifier float64) Color {
	return Transform(c, skew.Delta().Scale(modifier))
}

// Lighten is shorthand for Skewed(c, Lighter, modifier).
func Lighten(c Color, modifier float64) Color {
	return Skewed(c, Lighter, modifier)
}

// Darken is shorthand for Skewed(c, Darker, modifier).
func Darken(c Color, modifier float64) Color {
	return Skewed(c, Darker, modifier)
}

// Cascade returns n colors stepping from c towards the skew preset.
// The preset delta is split into n strides; element i is c offset by
// i strides, so element 0 is always c itself. Returns nil if n < 1.
func Cascade(c Color, n int, skew Skew) []Color {
	if n < 1 {
		return nil
	}
	preset := skew.Delta()
	steps := float64(n)
	stride := Delta{H: preset.H / steps, S: preset.S / steps, L: preset.L / steps}
	out := make([]Color, n)
	for i := range out {
		out[i] = Transform(c, stride.Scale(float64(i)))
	}
	return out
}
