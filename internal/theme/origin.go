package theme

import (
	"errors"
	"fmt"

	"github.com/jsvensson/themeswap/internal/color"
)

// ErrInsufficientData is returned when theme generation is given the
// wrong number of origin colors.
var ErrInsufficientData = errors.New("insufficient origin colors")

// Role names one of the ten origin colors. The order is part of the
// seed format and must not change.
type Role int

const (
	RoleBackground Role = iota
	RoleForeground
	RoleKeywords
	RoleReferenceTypes
	RoleValueTypes
	RoleFunctions
	RoleConstants
	RoleVariables
	RoleStrings
	RoleNumbers

	roleCount
)

// OriginCount is the number of colors a seed must provide.
const OriginCount = int(roleCount)

// roleNames are the identifiers used in seed files.
var roleNames = [roleCount]string{
	RoleBackground:     "background",
	RoleForeground:     "foreground",
	RoleKeywords:       "keywords",
	RoleReferenceTypes: "reference_types",
	RoleValueTypes:     "value_types",
	RoleFunctions:      "functions",
	RoleConstants:      "constants",
	RoleVariables:      "variables",
	RoleStrings:        "strings",
	RoleNumbers:        "numbers",
}

// Roles returns every role in seed order.
func Roles() []Role {
	out := make([]Role, roleCount)
	for i := range out {
		out[i] = Role(i)
	}
	return out
}

func (r Role) String() string {
	if r < 0 || r >= roleCount {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// ParseRole returns the role with the given seed-file name.
func ParseRole(name string) (Role, bool) {
	for i, n := range roleNames {
		if n == name {
			return Role(i), true
		}
	}
	return 0, false
}

// OriginColors is the ordered set of ten seed colors a theme is generated from.
type OriginColors struct {
	colors [roleCount]color.Color
}

// NewOriginColors binds colors to roles positionally. It fails unless
// exactly OriginCount colors are given.
func NewOriginColors(colors []color.Color) (OriginColors, error) {
	if len(colors) != OriginCount {
		return OriginColors{}, fmt.Errorf("want %d colors, got %d: %w", OriginCount, len(colors), ErrInsufficientData)
	}
	var o OriginColors
	copy(o.colors[:], colors)
	return o, nil
}

// Color returns the color bound to role.
func (o OriginColors) Color(role Role) color.Color {
	return o.colors[role]
}

// Slice returns the colors in seed order.
func (o OriginColors) Slice() []color.Color {
	out := make([]color.Color, roleCount)
	copy(out, o.colors[:])
	return out
}

func (o OriginColors) Background() color.Color     { return o.colors[RoleBackground] }
func (o OriginColors) Foreground() color.Color     { return o.colors[RoleForeground] }
func (o OriginColors) Keywords() color.Color       { return o.colors[RoleKeywords] }
func (o OriginColors) ReferenceTypes() color.Color { return o.colors[RoleReferenceTypes] }
func (o OriginColors) ValueTypes() color.Color     { return o.colors[RoleValueTypes] }
func (o OriginColors) Functions() color.Color      { return o.colors[RoleFunctions] }
func (o OriginColors) Constants() color.Color      { return o.colors[RoleConstants] }
func (o OriginColors) Variables() color.Color      { return o.colors[RoleVariables] }
func (o OriginColors) Strings() color.Color        { return o.colors[RoleStrings] }
func (o OriginColors) Numbers() color.Color        { return o.colors[RoleNumbers] }
