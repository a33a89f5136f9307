package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/jsvensson/themeswap/internal/color"
	"github.com/jsvensson/themeswap/internal/theme"
)

// Engine loads and executes Go templates against an intermediate theme.
type Engine struct {
	TemplatesDir string
	OutputDir    string
	Names        []string // if non-empty, only render these template basenames
}

// Run loads all .tmpl files from the templates directory, executes them
// with the given theme data, and writes output files. It returns the
// paths written.
func (e *Engine) Run(t theme.Intermediate) ([]string, error) {
	pattern := filepath.Join(e.TemplatesDir, "*.tmpl")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("globbing templates: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no .tmpl files found in %s", e.TemplatesDir)
	}

	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	data := buildTemplateData(t)

	var written []string
	for _, tmplPath := range matches {
		baseName := strings.TrimSuffix(filepath.Base(tmplPath), ".tmpl")

		if !e.shouldRender(baseName) {
			continue
		}

		outPath, err := e.renderTemplate(tmplPath, baseName, data)
		if err != nil {
			return written, err
		}
		written = append(written, outPath)
	}

	return written, nil
}

func (e *Engine) shouldRender(name string) bool {
	// If no names are specified, render all.
	if len(e.Names) == 0 {
		return true
	}

	return slices.Contains(e.Names, name)
}

func (e *Engine) renderTemplate(tmplPath, outputName string, data templateData) (string, error) {
	tmpl, err := template.New(filepath.Base(tmplPath)).Funcs(data.FuncMap).ParseFiles(tmplPath)
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}

	outPath := filepath.Join(e.OutputDir, outputName)
	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("creating output file %s: %w", outPath, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", tmplPath, err)
	}

	return outPath, nil
}

// templateData is the data passed to templates.
type templateData struct {
	Meta    theme.Meta
	Dark    bool
	Colors  map[string]color.Color // slot name -> color
	Origin  map[string]color.Color // role name -> color
	FuncMap template.FuncMap
}

// resolveColorPath resolves a dot-notation path to a Color.
// Supports paths like "colors.keyword" and "origin.strings".
func resolveColorPath(path string, data templateData) (color.Color, error) {
	block, name, ok := strings.Cut(path, ".")
	if !ok || name == "" {
		return color.Color{}, fmt.Errorf("invalid path %q: must be block.name format", path)
	}
	if strings.Contains(name, ".") {
		return color.Color{}, fmt.Errorf("%s paths must be single-level: %s", block, path)
	}

	switch block {
	case "colors":
		c, ok := data.Colors[name]
		if !ok {
			return color.Color{}, fmt.Errorf("slot not found: %s", name)
		}
		return c, nil

	case "origin":
		c, ok := data.Origin[name]
		if !ok {
			return color.Color{}, fmt.Errorf("origin role not found: %s", name)
		}
		return c, nil

	default:
		return color.Color{}, fmt.Errorf("unknown block %q (valid: colors, origin)", block)
	}
}

// toColor accepts a Color, a block path or a color literal.
func toColor(v any, data templateData) (color.Color, error) {
	switch v := v.(type) {
	case color.Color:
		return v, nil
	case string:
		if strings.HasPrefix(v, "colors.") || strings.HasPrefix(v, "origin.") {
			return resolveColorPath(v, data)
		}
		return color.Parse(v)
	default:
		return color.Color{}, fmt.Errorf("expected color or path, got %T", v)
	}
}

func toFloat(v any) (float64, error) {
	switch v := v.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

func buildTemplateData(t theme.Intermediate) templateData {
	data := templateData{
		Meta:   t.Meta,
		Dark:   t.Color(theme.Background).IsDark(),
		Colors: make(map[string]color.Color, len(theme.Slots())),
		Origin: make(map[string]color.Color, theme.OriginCount),
	}
	for _, s := range theme.Slots() {
		data.Colors[s.String()] = t.Color(s)
	}
	origin := theme.Unmap(t)
	for _, r := range theme.Roles() {
		data.Origin[r.String()] = origin.Color(r)
	}

	format := func(fn func(color.Color) string) func(any) (string, error) {
		return func(v any) (string, error) {
			c, err := toColor(v, data)
			if err != nil {
				return "", err
			}
			return fn(c), nil
		}
	}
	skew := func(s color.Skew) func(any, any) (color.Color, error) {
		return func(v, m any) (color.Color, error) {
			c, err := toColor(v, data)
			if err != nil {
				return color.Color{}, err
			}
			mod, err := toFloat(m)
			if err != nil {
				return color.Color{}, err
			}
			return color.Skewed(c, s, mod), nil
		}
	}

	data.FuncMap = template.FuncMap{
		"hex":       format(color.Color.Hex),
		"hexBare":   format(color.Color.HexBare),
		"floatRGBA": format(color.Color.FloatRGBA),
		"rgb":       format(color.Color.RGB),
		"hsl": format(func(c color.Color) string {
			h, s, l := c.HSL()
			return fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", h*360, s*100, l*100)
		}),
		"lighten": skew(color.Lighter),
		"darken":  skew(color.Darker),
		"slot": func(name string) (color.Color, error) {
			return resolveColorPath("colors."+name, data)
		},
	}
	return data
}
