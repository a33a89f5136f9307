package vscode

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jsvensson/themeswap/internal/color"
	"github.com/jsvensson/themeswap/internal/scope"
	"github.com/jsvensson/themeswap/internal/theme"
)

// ErrMissingRule is returned when a theme lacks a rule or editor color
// required to rebuild an intermediate theme.
var ErrMissingRule = errors.New("missing required rule")

// Theme is a Visual Studio Code color theme.
type Theme struct {
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	Colors      map[string]string `json:"colors"`
	TokenColors []TokenColor      `json:"tokenColors"`
}

// TokenColor is a single entry in tokenColors.
type TokenColor struct {
	Name     string   `json:"name,omitempty"`
	Scope    Scopes   `json:"scope,omitempty"`
	Settings Settings `json:"settings"`
}

// Settings are the style settings of a token color rule.
type Settings struct {
	Foreground string `json:"foreground,omitempty"`
	Background string `json:"background,omitempty"`
	FontStyle  string `json:"fontStyle,omitempty"`
}

// Scopes is a list of scope selectors. Theme files in the wild write it
// either as an array or as a single comma-separated string.
type Scopes []string

// UnmarshalJSON accepts a string or an array of strings.
func (s *Scopes) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}
	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return fmt.Errorf("scope must be a string or array of strings: %w", err)
	}
	var out Scopes
	for _, part := range strings.Split(joined, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*s = out
	return nil
}

// editorKeys maps editor-level slots to workbench color keys.
var editorKeys = map[theme.Slot]string{
	theme.Foreground:         "editor.foreground",
	theme.Background:         "editor.background",
	theme.Selection:          "editor.selectionBackground",
	theme.ActiveLine:         "editor.lineHighlightBackground",
	theme.InsertionPoint:     "editorCursor.foreground",
	theme.InstructionPointer: "editor.stackFrameHighlightBackground",
}

// Format returns theme.FormatVSCode.
func (t Theme) Format() theme.Format {
	return theme.FormatVSCode
}

// ThemeName returns the theme's display name.
func (t Theme) ThemeName() string {
	return t.Name
}

// FromIntermediate projects an intermediate theme into VS Code's schema.
func FromIntermediate(t theme.Intermediate) Theme {
	out := Theme{
		Name:   t.Meta.Name,
		Type:   "light",
		Colors: make(map[string]string, len(editorKeys)),
	}
	if t.Color(theme.Background).IsDark() {
		out.Type = "dark"
	}

	for _, s := range scope.EditorSlots() {
		out.Colors[editorKeys[s]] = t.Color(s).Hex()
	}

	for _, r := range scope.Rules() {
		out.TokenColors = append(out.TokenColors, TokenColor{
			Name:     r.Name,
			Scope:    r.Scopes,
			Settings: Settings{Foreground: t.Color(r.Slot).Hex()},
		})
	}
	return out
}

// ToIntermediate rebuilds an intermediate theme by looking up every
// required rule by name and every editor color by key.
func ToIntermediate(v Theme) (theme.Intermediate, error) {
	byName := make(map[string]TokenColor, len(v.TokenColors))
	for _, tc := range v.TokenColors {
		if tc.Name != "" {
			byName[tc.Name] = tc
		}
	}

	resolved := make(map[theme.Slot]color.Color, len(theme.Slots()))

	for _, s := range scope.EditorSlots() {
		key := editorKeys[s]
		raw, ok := v.Colors[key]
		if !ok {
			return theme.Intermediate{}, fmt.Errorf("editor color %q: %w", key, ErrMissingRule)
		}
		c, err := color.ParseHexAlpha(raw)
		if err != nil {
			return theme.Intermediate{}, fmt.Errorf("editor color %q: %w", key, err)
		}
		resolved[s] = c
	}

	for _, r := range scope.Rules() {
		tc, ok := byName[r.Name]
		if !ok {
			return theme.Intermediate{}, fmt.Errorf("token color %q: %w", r.Name, ErrMissingRule)
		}
		c, err := color.ParseHexAlpha(tc.Settings.Foreground)
		if err != nil {
			return theme.Intermediate{}, fmt.Errorf("token color %q: %w", r.Name, err)
		}
		resolved[r.Slot] = c
	}

	return theme.New(theme.Meta{Name: v.Name}, func(s theme.Slot) color.Color {
		return resolved[s]
	}), nil
}
