// Package xcode projects intermediate themes to and from Xcode
// .xccolortheme property lists.
package xcode

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jsvensson/themeswap/internal/color"
	"github.com/jsvensson/themeswap/internal/theme"
)

// ErrMissingKey is returned when a theme lacks a color needed to rebuild
// an intermediate theme.
var ErrMissingKey = errors.New("missing required key")

// FontAndColorVersion is the only DVTFontAndColorVersion Xcode writes.
const FontAndColorVersion = 1

// Theme is an Xcode color theme. Xcode keeps the theme name in the file
// name rather than the plist, so Name is not serialized. Spacings are
// stored as decimal strings.
type Theme struct {
	Name string `plist:"-"`

	Version            int               `plist:"DVTFontAndColorVersion"`
	Background         string            `plist:"DVTSourceTextBackground"`
	Selection          string            `plist:"DVTSourceTextSelectionColor"`
	CurrentLine        string            `plist:"DVTSourceTextCurrentLineHighlightColor"`
	InsertionPoint     string            `plist:"DVTSourceTextInsertionPointColor"`
	Invisibles         string            `plist:"DVTSourceTextInvisiblesColor"`
	InstructionPointer string            `plist:"DVTDebuggerInstructionPointerColor"`
	SyntaxColors       map[string]string `plist:"DVTSourceTextSyntaxColors"`
	SyntaxFonts        map[string]string `plist:"DVTSourceTextSyntaxFonts"`
	LineSpacing        string            `plist:"DVTLineSpacing,omitempty"`
	CharacterSpacing   string            `plist:"DVTCharacterSpacing,omitempty"`
}

// Fonts names the font used for every syntax key.
type Fonts struct {
	Name string
	Size float64
}

// String formats the font the way Xcode stores it, e.g. "SFMono-Regular - 12".
func (f Fonts) String() string {
	return f.Name + " - " + strconv.FormatFloat(f.Size, 'f', -1, 64)
}

// Options control the non-color parts of an exported theme.
type Options struct {
	Font             Fonts
	LineSpacing      float64
	CharacterSpacing float64
}

// DefaultOptions returns the settings Xcode ships with.
func DefaultOptions() Options {
	return Options{
		Font:             Fonts{Name: "SFMono-Regular", Size: 12},
		LineSpacing:      1.1,
		CharacterSpacing: 0,
	}
}

// syntaxKeys maps syntax slots to keys of DVTSourceTextSyntaxColors.
// Parameter has no Xcode counterpart.
var syntaxKeys = []struct {
	slot theme.Slot
	key  string
}{
	{theme.Foreground, "xcode.syntax.plain"},
	{theme.Comment, "xcode.syntax.comment"},
	{theme.CommentDoc, "xcode.syntax.comment.doc"},
	{theme.CommentDocKeyword, "xcode.syntax.comment.doc.keyword"},
	{theme.CommentSection, "xcode.syntax.mark"},
	{theme.Keyword, "xcode.syntax.keyword"},
	{theme.ClassSystem, "xcode.syntax.identifier.class.system"},
	{theme.ClassProject, "xcode.syntax.identifier.class"},
	{theme.DeclarationType, "xcode.syntax.declaration.type"},
	{theme.TypeSystem, "xcode.syntax.identifier.type.system"},
	{theme.TypeProject, "xcode.syntax.identifier.type"},
	{theme.Attribute, "xcode.syntax.attribute"},
	{theme.FunctionSystem, "xcode.syntax.identifier.function.system"},
	{theme.FunctionProject, "xcode.syntax.identifier.function"},
	{theme.MacroSystem, "xcode.syntax.identifier.macro.system"},
	{theme.MacroProject, "xcode.syntax.identifier.macro"},
	{theme.ConstantSystem, "xcode.syntax.identifier.constant.system"},
	{theme.ConstantProject, "xcode.syntax.identifier.constant"},
	{theme.Preprocessor, "xcode.syntax.preprocessor"},
	{theme.VariableSystem, "xcode.syntax.identifier.variable.system"},
	{theme.VariableProject, "xcode.syntax.identifier.variable"},
	{theme.DeclarationOther, "xcode.syntax.declaration.other"},
	{theme.String, "xcode.syntax.string"},
	{theme.Character, "xcode.syntax.character"},
	{theme.URL, "xcode.syntax.url"},
	{theme.Number, "xcode.syntax.number"},
}

// SyntaxKey returns the Xcode key for a slot.
func SyntaxKey(s theme.Slot) (string, bool) {
	for _, k := range syntaxKeys {
		if k.slot == s {
			return k.key, true
		}
	}
	return "", false
}

// Format returns theme.FormatXcode.
func (t Theme) Format() theme.Format {
	return theme.FormatXcode
}

// ThemeName returns the theme's display name.
func (t Theme) ThemeName() string {
	return t.Name
}

// FromIntermediate projects an intermediate theme into an Xcode theme.
func FromIntermediate(t theme.Intermediate, opts Options) Theme {
	out := Theme{
		Name:               t.Meta.Name,
		Version:            FontAndColorVersion,
		Background:         t.Color(theme.Background).FloatRGBA(),
		Selection:          t.Color(theme.Selection).FloatRGBA(),
		CurrentLine:        t.Color(theme.ActiveLine).FloatRGBA(),
		InsertionPoint:     t.Color(theme.InsertionPoint).FloatRGBA(),
		Invisibles:         t.Color(theme.Foreground).FloatRGBA(),
		InstructionPointer: t.Color(theme.InstructionPointer).FloatRGBA(),
		SyntaxColors:       make(map[string]string, len(syntaxKeys)),
		SyntaxFonts:        make(map[string]string, len(syntaxKeys)),
		LineSpacing:        formatSpacing(opts.LineSpacing),
		CharacterSpacing:   formatSpacing(opts.CharacterSpacing),
	}

	font := opts.Font.String()
	for _, k := range syntaxKeys {
		out.SyntaxColors[k.key] = t.Color(k.slot).FloatRGBA()
		out.SyntaxFonts[k.key] = font
	}
	return out
}

func formatSpacing(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ToIntermediate rebuilds an intermediate theme. Parameter is taken from
// the project variable color.
func ToIntermediate(x Theme) (theme.Intermediate, error) {
	resolved := make(map[theme.Slot]color.Color, len(theme.Slots()))

	editor := []struct {
		slot  theme.Slot
		key   string
		value string
	}{
		{theme.Background, "DVTSourceTextBackground", x.Background},
		{theme.Selection, "DVTSourceTextSelectionColor", x.Selection},
		{theme.ActiveLine, "DVTSourceTextCurrentLineHighlightColor", x.CurrentLine},
		{theme.InsertionPoint, "DVTSourceTextInsertionPointColor", x.InsertionPoint},
		{theme.InstructionPointer, "DVTDebuggerInstructionPointerColor", x.InstructionPointer},
	}
	for _, e := range editor {
		c, err := parseColor(e.key, e.value, e.value != "")
		if err != nil {
			return theme.Intermediate{}, err
		}
		resolved[e.slot] = c
	}

	for _, k := range syntaxKeys {
		raw, ok := x.SyntaxColors[k.key]
		c, err := parseColor(k.key, raw, ok)
		if err != nil {
			return theme.Intermediate{}, err
		}
		resolved[k.slot] = c
	}
	resolved[theme.Parameter] = resolved[theme.VariableProject]

	return theme.New(theme.Meta{Name: x.Name}, func(s theme.Slot) color.Color {
		return resolved[s]
	}), nil
}

func parseColor(key, raw string, present bool) (color.Color, error) {
	if !present {
		return color.Color{}, fmt.Errorf("%s: %w", key, ErrMissingKey)
	}
	c, err := color.ParseFloatRGBA(raw)
	if err != nil {
		return color.Color{}, fmt.Errorf("%s: %w", key, err)
	}
	return c, nil
}
