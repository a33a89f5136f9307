package theme

import "github.com/jsvensson/themeswap/internal/color"

// Offsets from the keyword color for editor accents.
var (
	SelectionDelta          = color.Delta{S: -0.35, L: -0.35}
	InsertionPointDelta     = color.Delta{S: 0.1, L: 0.1}
	InstructionPointerDelta = color.Delta{S: 0.2, L: -0.1}
)

// Modifiers applied to presets when deriving backgrounds and comments.
const (
	ActiveLineModifier = 0.5
	CommentModifier    = 1.5
)

const commentShades = 2

// expansions assigns each cascade element of a role to a slot; the
// cascade length is the number of slots. Element 0 is the origin color
// itself and always lands on the system variant.
var expansions = []struct {
	role  Role
	slots []Slot
}{
	{RoleReferenceTypes, []Slot{ClassSystem, ClassProject, DeclarationType}},
	{RoleValueTypes, []Slot{TypeSystem, TypeProject, Attribute}},
	{RoleFunctions, []Slot{FunctionSystem, FunctionProject, MacroSystem, MacroProject}},
	{RoleConstants, []Slot{ConstantSystem, ConstantProject, Preprocessor}},
	{RoleVariables, []Slot{VariableSystem, VariableProject, Parameter, DeclarationOther}},
	{RoleStrings, []Slot{String, Character, URL}},
}

// Generate extrapolates a full theme from origin colors.
func Generate(o OriginColors, meta Meta) Intermediate {
	var slots [slotCount]color.Color

	slots[Background] = o.Background()
	slots[Foreground] = o.Foreground()
	slots[ActiveLine] = color.Lighten(o.Background(), ActiveLineModifier)

	shades := color.Cascade(color.Darken(o.Foreground(), CommentModifier), commentShades, color.Lighter)
	slots[Comment] = shades[0]
	slots[CommentDoc] = shades[0]
	slots[CommentDocKeyword] = shades[1]
	slots[CommentSection] = shades[1]

	kw := o.Keywords()
	slots[Keyword] = kw
	slots[Selection] = color.Transform(kw, SelectionDelta)
	slots[InsertionPoint] = color.Transform(kw, InsertionPointDelta)
	slots[InstructionPointer] = color.Transform(kw, InstructionPointerDelta)

	for _, e := range expansions {
		for i, c := range color.Cascade(o.Color(e.role), len(e.slots), color.Darker) {
			slots[e.slots[i]] = c
		}
	}

	slots[Number] = o.Numbers()

	return New(meta, func(s Slot) color.Color { return slots[s] })
}

// GenerateFrom validates that colors holds exactly one color per role
// and generates a theme from them.
func GenerateFrom(colors []color.Color, meta Meta) (Intermediate, error) {
	o, err := NewOriginColors(colors)
	if err != nil {
		return Intermediate{}, err
	}
	return Generate(o, meta), nil
}

// Unmap recovers the origin colors from the slots they were copied to.
// The result is exact for themes produced by Generate and an
// approximation for themes converted from other formats.
func Unmap(t Intermediate) OriginColors {
	var o OriginColors
	o.colors[RoleBackground] = t.Color(Background)
	o.colors[RoleForeground] = t.Color(Foreground)
	o.colors[RoleKeywords] = t.Color(Keyword)
	for _, e := range expansions {
		o.colors[e.role] = t.Color(e.slots[0])
	}
	o.colors[RoleNumbers] = t.Color(Number)
	return o
}

// SlotsFor returns the slots Generate derives from role, starting with
// the slot that receives the origin color itself.
func SlotsFor(role Role) []Slot {
	switch role {
	case RoleBackground:
		return []Slot{Background, ActiveLine}
	case RoleForeground:
		return []Slot{Foreground, Comment, CommentDoc, CommentDocKeyword, CommentSection}
	case RoleKeywords:
		return []Slot{Keyword, Selection, InsertionPoint, InstructionPointer}
	case RoleNumbers:
		return []Slot{Number}
	}
	for _, e := range expansions {
		if e.role == role {
			return append([]Slot(nil), e.slots...)
		}
	}
	return nil
}
