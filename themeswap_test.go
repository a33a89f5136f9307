package themeswap

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jsvensson/themeswap/internal/color"
	"github.com/jsvensson/themeswap/internal/textmate"
	"github.com/jsvensson/themeswap/internal/theme"
	"github.com/jsvensson/themeswap/internal/vscode"
	"github.com/jsvensson/themeswap/internal/xcode"
)

func testTheme(t *testing.T) theme.Intermediate {
	t.Helper()
	hexes := []string{
		"#1E1E1E", "#D4D4D4", "#C586C0", "#4EC9B0", "#569CD6",
		"#DCDCAA", "#4FC1FF", "#9CDCFE", "#CE9178", "#B5CEA8",
	}
	colors := make([]color.Color, len(hexes))
	for i, h := range hexes {
		c, err := color.ParseHex(h)
		if err != nil {
			t.Fatal(err)
		}
		colors[i] = c
	}
	th, err := theme.GenerateFrom(colors, theme.Meta{Name: "Dark Modern", Author: "Tester"})
	if err != nil {
		t.Fatal(err)
	}
	return th
}

func hexColors(t theme.Intermediate) map[string]string {
	out := make(map[string]string, len(theme.Slots()))
	for _, s := range theme.Slots() {
		out[s.String()] = t.Color(s).Hex()
	}
	return out
}

type unknownTheme struct{}

func (unknownTheme) Format() theme.Format { return theme.Format(99) }
func (unknownTheme) ThemeName() string    { return "" }

func TestCoerceProducesTargetFormat(t *testing.T) {
	src := testTheme(t)

	for _, f := range theme.Formats() {
		t.Run(f.String(), func(t *testing.T) {
			got, err := Coerce(src, f)
			if err != nil {
				t.Fatalf("Coerce() error: %v", err)
			}
			if got.Format() != f {
				t.Errorf("Format() = %v, want %v", got.Format(), f)
			}
			if got.ThemeName() != "Dark Modern" {
				t.Errorf("ThemeName() = %q, want %q", got.ThemeName(), "Dark Modern")
			}
		})
	}
}

func TestCoerceSameFormatIsIdentity(t *testing.T) {
	v := vscode.FromIntermediate(testTheme(t))
	got, err := Coerce(v, theme.FormatVSCode)
	if err != nil {
		t.Fatalf("Coerce() error: %v", err)
	}
	if diff := cmp.Diff(v, got); diff != "" {
		t.Errorf("Coerce(vscode, vscode) mismatch (-want +got):\n%s", diff)
	}
}

func TestCoerceSameFormatValidates(t *testing.T) {
	v := vscode.FromIntermediate(testTheme(t))
	v.TokenColors = v.TokenColors[1:]
	_, err := Coerce(v, theme.FormatVSCode)
	if !errors.Is(err, vscode.ErrMissingRule) {
		t.Errorf("Coerce() error = %v, want ErrMissingRule", err)
	}
}

func TestCoerceRoundTrips(t *testing.T) {
	src := testTheme(t)

	tests := []struct {
		name   string
		format theme.Format
		// adjust maps the source theme to what survives the projection.
		adjust func(theme.Intermediate) theme.Intermediate
	}{
		{"xcode", theme.FormatXcode, func(t theme.Intermediate) theme.Intermediate {
			return t.With(theme.Parameter, t.Color(theme.VariableProject)).WithMeta(theme.Meta{Name: t.Meta.Name})
		}},
		{"textmate", theme.FormatTextMate, func(t theme.Intermediate) theme.Intermediate {
			return t.With(theme.InstructionPointer, t.Color(theme.InsertionPoint))
		}},
		{"vscode", theme.FormatVSCode, func(t theme.Intermediate) theme.Intermediate {
			return t.WithMeta(theme.Meta{Name: t.Meta.Name})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projected, err := Coerce(src, tt.format)
			if err != nil {
				t.Fatalf("Coerce(to %s) error: %v", tt.format, err)
			}
			back, err := Coerce(projected, theme.FormatIntermediate)
			if err != nil {
				t.Fatalf("Coerce(to intermediate) error: %v", err)
			}
			im := back.(theme.Intermediate)
			want := tt.adjust(src)

			if diff := cmp.Diff(hexColors(want), hexColors(im)); diff != "" {
				t.Errorf("colors mismatch (-want +got):\n%s", diff)
			}
			if im.Meta != want.Meta {
				t.Errorf("Meta = %+v, want %+v", im.Meta, want.Meta)
			}
		})
	}
}

func TestCoerceBetweenProjections(t *testing.T) {
	tm := textmate.FromIntermediate(testTheme(t))
	got, err := Coerce(tm, theme.FormatXcode)
	if err != nil {
		t.Fatalf("Coerce() error: %v", err)
	}
	x, ok := got.(xcode.Theme)
	if !ok {
		t.Fatalf("Coerce() = %T, want xcode.Theme", got)
	}
	if x.Background != testTheme(t).Color(theme.Background).FloatRGBA() {
		t.Errorf("Background = %q", x.Background)
	}
}

func TestCoerceWithXcodeOptions(t *testing.T) {
	opts := xcode.Options{Font: xcode.Fonts{Name: "Menlo-Regular", Size: 14}, LineSpacing: 1.3}
	got, err := Coerce(testTheme(t), theme.FormatXcode, WithXcodeOptions(opts))
	if err != nil {
		t.Fatalf("Coerce() error: %v", err)
	}
	x := got.(xcode.Theme)
	if x.LineSpacing != "1.3" {
		t.Errorf("LineSpacing = %q, want 1.3", x.LineSpacing)
	}
	for key, font := range x.SyntaxFonts {
		if font != "Menlo-Regular - 14" {
			t.Errorf("SyntaxFonts[%s] = %q", key, font)
			break
		}
	}
}

func TestCoerceUnsupported(t *testing.T) {
	if _, err := Coerce(unknownTheme{}, theme.FormatVSCode); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Coerce(unknown) error = %v, want ErrUnsupported", err)
	}
	if _, err := Coerce(testTheme(t), theme.Format(42)); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Coerce(to unknown) error = %v, want ErrUnsupported", err)
	}
	if _, err := CoerceToIntermediate(unknownTheme{}); !errors.Is(err, ErrUnsupported) {
		t.Errorf("CoerceToIntermediate(unknown) error = %v, want ErrUnsupported", err)
	}
}

func TestCoerceNilTheme(t *testing.T) {
	var nilIntermediate *theme.Intermediate
	tests := []struct {
		name  string
		theme Theme
	}{
		{"nil interface", nil},
		{"nil intermediate pointer", nilIntermediate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Coerce(tt.theme, theme.FormatVSCode); !errors.Is(err, ErrUnsupported) {
				t.Errorf("Coerce() error = %v, want ErrUnsupported", err)
			}
			if _, err := Coerce(tt.theme, theme.FormatIntermediate); !errors.Is(err, ErrUnsupported) {
				t.Errorf("Coerce(to intermediate) error = %v, want ErrUnsupported", err)
			}
			if _, err := CoerceToIntermediate(tt.theme); !errors.Is(err, ErrUnsupported) {
				t.Errorf("CoerceToIntermediate() error = %v, want ErrUnsupported", err)
			}
		})
	}
}

func TestCoerceToIntermediatePointer(t *testing.T) {
	src := testTheme(t)
	got, err := CoerceToIntermediate(&src)
	if err != nil {
		t.Fatalf("CoerceToIntermediate() error: %v", err)
	}
	if got.Color(theme.Keyword) != src.Color(theme.Keyword) {
		t.Error("pointer theme not dereferenced")
	}
}

func TestLoadSeed(t *testing.T) {
	src := `
meta {
  name = "Seeded"
}

origin {
  background      = "#1E1E1E"
  foreground      = "#D4D4D4"
  keywords        = "#C586C0"
  reference_types = "#4EC9B0"
  value_types     = "#569CD6"
  functions       = "#DCDCAA"
  constants       = "#4FC1FF"
  variables       = "#9CDCFE"
  strings         = "#CE9178"
  numbers         = "#B5CEA8"
}
`
	path := filepath.Join(t.TempDir(), "seed.hcl")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("LoadSeed() error: %v", err)
	}
	if got.Meta.Name != "Seeded" {
		t.Errorf("Meta.Name = %q, want %q", got.Meta.Name, "Seeded")
	}
	want := testTheme(t)
	if diff := cmp.Diff(hexColors(want), hexColors(got)); diff != "" {
		t.Errorf("colors mismatch (-want +got):\n%s", diff)
	}

	_, err = LoadSeed(filepath.Join(t.TempDir(), "absent.hcl"))
	if err == nil || !strings.Contains(err.Error(), "loading seed") {
		t.Errorf("LoadSeed(missing) error = %v", err)
	}
}
