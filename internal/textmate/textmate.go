// Package textmate projects intermediate themes to and from TextMate
// .tmTheme property lists.
package textmate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jsvensson/themeswap/internal/color"
	"github.com/jsvensson/themeswap/internal/scope"
	"github.com/jsvensson/themeswap/internal/theme"
)

// ErrMissingRule is returned when a theme lacks a rule or global setting
// required to rebuild an intermediate theme.
var ErrMissingRule = errors.New("missing required rule")

// Theme is a TextMate color theme.
type Theme struct {
	Name     string    `plist:"name"`
	Author   string    `plist:"author,omitempty"`
	UUID     string    `plist:"uuid"`
	Settings []Setting `plist:"settings"`
}

// Setting is one entry of the settings array. The entry without a scope
// holds the global editor settings.
type Setting struct {
	Name     string            `plist:"name,omitempty"`
	Scope    string            `plist:"scope,omitempty"`
	Settings map[string]string `plist:"settings"`
}

// Keys of the global settings dictionary.
const (
	KeyBackground    = "background"
	KeyForeground    = "foreground"
	KeyCaret         = "caret"
	KeySelection     = "selection"
	KeyLineHighlight = "lineHighlight"
	KeyInvisibles    = "invisibles"
)

// TextMate has no instruction pointer color; it is rebuilt from the caret.
var globalKeys = []struct {
	key  string
	slot theme.Slot
}{
	{KeyBackground, theme.Background},
	{KeyForeground, theme.Foreground},
	{KeyCaret, theme.InsertionPoint},
	{KeySelection, theme.Selection},
	{KeyLineHighlight, theme.ActiveLine},
	{KeyInvisibles, theme.Foreground},
}

// uuidNamespace seeds name-based UUIDs so that exporting the same theme
// twice produces identical files.
var uuidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/jsvensson/themeswap/textmate"))

// Format returns theme.FormatTextMate.
func (t Theme) Format() theme.Format {
	return theme.FormatTextMate
}

// ThemeName returns the theme's display name.
func (t Theme) ThemeName() string {
	return t.Name
}

// Global returns the global settings entry, if any.
func (t Theme) Global() (Setting, bool) {
	for _, s := range t.Settings {
		if s.Scope == "" && s.Name == "" {
			return s, true
		}
	}
	return Setting{}, false
}

// FromIntermediate projects an intermediate theme into a TextMate theme.
func FromIntermediate(t theme.Intermediate) Theme {
	global := Setting{Settings: make(map[string]string, len(globalKeys))}
	for _, g := range globalKeys {
		global.Settings[g.key] = t.Color(g.slot).Hex()
	}

	out := Theme{
		Name:     t.Meta.Name,
		Author:   t.Meta.Author,
		UUID:     uuid.NewSHA1(uuidNamespace, []byte(t.Meta.Name)).String(),
		Settings: []Setting{global},
	}

	for _, r := range scope.Rules() {
		out.Settings = append(out.Settings, Setting{
			Name:     r.Name,
			Scope:    strings.Join(r.Scopes, ", "),
			Settings: map[string]string{KeyForeground: t.Color(r.Slot).Hex()},
		})
	}
	return out
}

// ToIntermediate rebuilds an intermediate theme from the global settings
// and the named rules written by FromIntermediate.
func ToIntermediate(tm Theme) (theme.Intermediate, error) {
	global, ok := tm.Global()
	if !ok {
		return theme.Intermediate{}, fmt.Errorf("global settings: %w", ErrMissingRule)
	}

	resolved := make(map[theme.Slot]color.Color, len(theme.Slots()))

	for _, g := range globalKeys {
		if _, done := resolved[g.slot]; done {
			continue
		}
		c, err := lookup(global.Settings, g.key)
		if err != nil {
			return theme.Intermediate{}, fmt.Errorf("global setting %q: %w", g.key, err)
		}
		resolved[g.slot] = c
	}
	resolved[theme.InstructionPointer] = resolved[theme.InsertionPoint]

	byName := make(map[string]Setting, len(tm.Settings))
	for _, s := range tm.Settings {
		if s.Name != "" {
			byName[s.Name] = s
		}
	}

	for _, r := range scope.Rules() {
		s, ok := byName[r.Name]
		if !ok {
			return theme.Intermediate{}, fmt.Errorf("rule %q: %w", r.Name, ErrMissingRule)
		}
		c, err := lookup(s.Settings, KeyForeground)
		if err != nil {
			return theme.Intermediate{}, fmt.Errorf("rule %q: %w", r.Name, err)
		}
		resolved[r.Slot] = c
	}

	meta := theme.Meta{Name: tm.Name, Author: tm.Author}
	return theme.New(meta, func(s theme.Slot) color.Color {
		return resolved[s]
	}), nil
}

func lookup(settings map[string]string, key string) (color.Color, error) {
	raw, ok := settings[key]
	if !ok {
		return color.Color{}, ErrMissingRule
	}
	return color.ParseHexAlpha(raw)
}
