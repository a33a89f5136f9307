package color

import (
	"fmt"
	"math"
	"strconv"
)

// Color represents an RGB color with float channels in [0, 1].
// Channels are clamped on construction and never change afterwards;
// all output formats are derived from them.
type Color struct {
	r, g, b float64
}

// New returns a Color, clamping each channel to [0, 1].
func New(r, g, b float64) Color {
	return Color{r: clamp01(r), g: clamp01(g), b: clamp01(b)}
}

// RGB8 returns a Color from 8-bit channel values.
func RGB8(r, g, b uint8) Color {
	return Color{r: float64(r) / 255.0, g: float64(g) / 255.0, b: float64(b) / 255.0}
}

// R returns the red channel.
func (c Color) R() float64 { return c.r }

// G returns the green channel.
func (c Color) G() float64 { return c.g }

// B returns the blue channel.
func (c Color) B() float64 { return c.b }

// RGB8 returns the channels scaled to 0-255 and truncated.
func (c Color) RGB8() (r, g, b uint8) {
	return uint8(c.r * 255), uint8(c.g * 255), uint8(c.b * 255)
}

// Hex returns the color as an uppercase hex string with leading #, e.g. "#2AB1AF".
func (c Color) Hex() string {
	return "#" + c.HexBare()
}

// HexBare returns the color as a hex string without leading #, e.g. "2AB1AF".
func (c Color) HexBare() string {
	r, g, b := c.RGB8()
	return fmt.Sprintf("%02X%02X%02X", r, g, b)
}

// FloatRGBA returns the color as space-separated float components with
// full opacity, e.g. "0.5 0.25 1 1". Each channel uses the shortest
// decimal representation that parses back to the same value.
func (c Color) FloatRGBA() string {
	return formatChannel(c.r) + " " + formatChannel(c.g) + " " + formatChannel(c.b) + " 1"
}

// RGB returns the color as an rgb() string, e.g. "rgb(42, 177, 175)".
func (c Color) RGB() string {
	r, g, b := c.RGB8()
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

// HSL returns hue, saturation and lightness, each in [0, 1].
func (c Color) HSL() (h, s, l float64) {
	return RGBToHSL(c.r, c.g, c.b)
}

// Brightness returns the perceived brightness of the color using a
// weighted quadratic luminance model.
func (c Color) Brightness() float64 {
	return math.Sqrt(0.299*c.r*c.r + 0.587*c.g*c.g + 0.114*c.b*c.b)
}

// IsDark reports whether the color is perceived as dark.
func (c Color) IsDark() bool {
	return c.Brightness() < 0.5
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// MarshalText encodes the color as float RGBA so no precision is lost.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.FloatRGBA()), nil
}

// UnmarshalText accepts any format understood by Parse.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func formatChannel(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// clamp01 clamps a value to the [0, 1] range. NaN maps to 0.
func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
