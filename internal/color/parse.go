package color

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrFormat is returned when a string is not a recognized color.
var ErrFormat = errors.New("unrecognized color format")

// Format identifies a textual color encoding.
type Format int

const (
	// FormatFloatRGBA is "R G B A" with each component in [0, 1].
	FormatFloatRGBA Format = iota
	// FormatHex is six hex digits with an optional leading #.
	FormatHex
)

func (f Format) String() string {
	switch f {
	case FormatFloatRGBA:
		return "floatRGBA"
	case FormatHex:
		return "hexadecimal"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// DetectFormat guesses the encoding of s from its shape. It does not
// validate the digits themselves, so malformed input may still be
// misclassified and fail later in the matching parser.
func DetectFormat(s string) (Format, bool) {
	s = strings.TrimSpace(s)
	if len(strings.Fields(s)) == 4 {
		return FormatFloatRGBA, true
	}
	if len(s) == 7 && s[0] == '#' {
		return FormatHex, true
	}
	if len(s) == 6 && isHexDigits(s) {
		return FormatHex, true
	}
	return 0, false
}

// Parse detects the format of s and decodes it.
func Parse(s string) (Color, error) {
	f, ok := DetectFormat(s)
	if !ok {
		return Color{}, fmt.Errorf("%q: %w", s, ErrFormat)
	}
	switch f {
	case FormatFloatRGBA:
		return ParseFloatRGBA(s)
	default:
		return ParseHex(strings.TrimSpace(s))
	}
}

// ParseHex parses a hex color string like "#2AB1AF" or "2ab1af" into a Color.
func ParseHex(s string) (Color, error) {
	if len(s) != 6 && len(s) != 7 {
		return Color{}, fmt.Errorf("invalid hex color %q: must be 6 hex digits: %w", s, ErrFormat)
	}
	digits := strings.TrimPrefix(s, "#")
	if len(digits) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q: must be 6 hex digits: %w", s, ErrFormat)
	}

	var channels [3]uint8
	for i := range channels {
		v, err := strconv.ParseUint(digits[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color %q: %w", s, ErrFormat)
		}
		channels[i] = uint8(v)
	}
	return RGB8(channels[0], channels[1], channels[2]), nil
}

// ParseHexAlpha is ParseHex that also accepts "#RRGGBBAA", as editor
// theme files often carry an alpha channel. Alpha is discarded.
func ParseHexAlpha(s string) (Color, error) {
	if len(s) == 9 && s[0] == '#' {
		if !isHexDigits(s[7:]) {
			return Color{}, fmt.Errorf("invalid hex color %q: %w", s, ErrFormat)
		}
		s = s[:7]
	}
	return ParseHex(s)
}

// ParseFloatRGBA parses a string like "0.29 0.29 0.96 1" into a Color.
// The alpha component must be a number but its value is ignored.
func ParseFloatRGBA(s string) (Color, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return Color{}, fmt.Errorf("invalid float RGBA color %q: want 4 components, got %d: %w", s, len(fields), ErrFormat)
	}

	var channels [3]float64
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return Color{}, fmt.Errorf("invalid float RGBA color %q: component %d: %w", s, i, ErrFormat)
		}
		if i == 3 {
			break
		}
		// NaN fails every comparison, so test for membership.
		if !(v >= 0 && v <= 1) {
			return Color{}, fmt.Errorf("invalid float RGBA color %q: component %d out of range [0, 1]: %w", s, i, ErrFormat)
		}
		channels[i] = v
	}
	return New(channels[0], channels[1], channels[2]), nil
}

func isHexDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
