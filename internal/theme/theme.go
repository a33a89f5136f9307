package theme

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jsvensson/themeswap/internal/color"
)

const (
	// Marker tags serialized intermediate themes.
	Marker = "themeswap.intermediate"
	// Version is written into every serialized intermediate theme.
	Version = "1.0"
)

// Meta holds theme metadata.
type Meta struct {
	Name   string
	Author string
}

// Intermediate is the canonical, format-agnostic theme. It holds one
// color per Slot. Values are never modified in place; Map and With
// return new themes.
type Intermediate struct {
	Meta    Meta
	version string
	colors  [slotCount]color.Color
}

// New builds an Intermediate from a color for every slot.
func New(meta Meta, fn func(Slot) color.Color) Intermediate {
	t := Intermediate{Meta: meta, version: Version}
	for i := range t.colors {
		t.colors[i] = fn(Slot(i))
	}
	return t
}

// Format returns FormatIntermediate.
func (t Intermediate) Format() Format {
	return FormatIntermediate
}

// ThemeName returns the theme's display name.
func (t Intermediate) ThemeName() string {
	return t.Meta.Name
}

// Version returns the version string the theme was created or decoded with.
func (t Intermediate) Version() string {
	if t.version == "" {
		return Version
	}
	return t.version
}

// Color returns the color in slot s.
func (t Intermediate) Color(s Slot) color.Color {
	return t.colors[s]
}

// Map returns a new theme with fn applied to every slot.
func (t Intermediate) Map(fn func(Slot, color.Color) color.Color) Intermediate {
	out := t
	for i, c := range t.colors {
		out.colors[i] = fn(Slot(i), c)
	}
	return out
}

// With returns a new theme with slot s replaced by c.
func (t Intermediate) With(s Slot, c color.Color) Intermediate {
	return t.Map(func(slot Slot, old color.Color) color.Color {
		if slot == s {
			return c
		}
		return old
	})
}

// WithMeta returns a new theme carrying meta.
func (t Intermediate) WithMeta(meta Meta) Intermediate {
	out := t
	out.Meta = meta
	return out
}

type wireIntermediate struct {
	Format  string                 `json:"format"`
	Version string                 `json:"version"`
	Name    string                 `json:"name,omitempty"`
	Author  string                 `json:"author,omitempty"`
	Colors  map[string]color.Color `json:"colors"`
}

// MarshalJSON encodes the theme with float RGBA colors so that no
// precision is lost.
func (t Intermediate) MarshalJSON() ([]byte, error) {
	w := wireIntermediate{
		Format:  Marker,
		Version: t.Version(),
		Name:    t.Meta.Name,
		Author:  t.Meta.Author,
		Colors:  make(map[string]color.Color, slotCount),
	}
	for i, c := range t.colors {
		w.Colors[Slot(i).String()] = c
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a theme written by MarshalJSON. Colors may be
// hex or float RGBA. Every slot must be present.
func (t *Intermediate) UnmarshalJSON(data []byte) error {
	var w wireIntermediate
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Format != Marker {
		return fmt.Errorf("not an intermediate theme: format %q", w.Format)
	}

	out := Intermediate{
		Meta:    Meta{Name: w.Name, Author: w.Author},
		version: w.Version,
	}

	seen := make(map[Slot]bool, slotCount)
	for name, c := range w.Colors {
		s, ok := ParseSlot(name)
		if !ok {
			return fmt.Errorf("unknown slot %q", name)
		}
		out.colors[s] = c
		seen[s] = true
	}

	var missing []string
	for _, s := range Slots() {
		if !seen[s] {
			missing = append(missing, s.String())
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing slots: %s", strings.Join(missing, ", "))
	}

	*t = out
	return nil
}
