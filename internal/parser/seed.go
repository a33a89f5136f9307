// Package parser loads seed files: HCL documents that name the ten
// origin colors of a theme, optionally through a palette of reusable
// colors and the lighten, darken and transform functions.
package parser

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/themeswap/internal/color"
	"github.com/jsvensson/themeswap/internal/theme"
)

// Seed holds the parsed contents of a seed file.
type Seed struct {
	Meta    Meta
	Palette *color.Node
	Origin  theme.OriginColors
}

// Theme generates the intermediate theme described by the seed.
func (s *Seed) Theme() theme.Intermediate {
	return theme.Generate(s.Origin, theme.Meta{Name: s.Meta.Name, Author: s.Meta.Author})
}

// Meta holds theme metadata.
type Meta struct {
	Name   string `hcl:"name,optional"`
	Author string `hcl:"author,optional"`
}

// PaletteBlock wraps a single palette block for gohcl decoding.
type PaletteBlock struct {
	Entries hcl.Body `hcl:",remain"`
}

// RawConfig captures the palette block first (no EvalContext needed).
type RawConfig struct {
	Palette *PaletteBlock `hcl:"palette,block"`
	Remain  hcl.Body      `hcl:",remain"`
}

// ColorBlock wraps a block with arbitrary color attributes for gohcl decoding.
type ColorBlock struct {
	Entries hcl.Body `hcl:",remain"`
}

// ResolvedConfig decodes blocks that reference palette.
type ResolvedConfig struct {
	Meta   *Meta       `hcl:"meta,block"`
	Origin *ColorBlock `hcl:"origin,block"`
	Remain hcl.Body    `hcl:",remain"` // holds the already parsed palette
}

// Loader handles two-pass HCL decoding with palette resolution.
type Loader struct {
	body    hcl.Body
	ctx     *hcl.EvalContext
	palette *color.Node
}

// NewLoader parses an HCL file and builds the evaluation context from palette.
func NewLoader(path string) (*Loader, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	return NewLoaderFromSource(src, path)
}

// NewLoaderFromSource is NewLoader for in-memory content.
func NewLoaderFromSource(src []byte, filename string) (*Loader, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	// First pass: extract palette
	var raw RawConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decoding palette: %s", diags.Error())
	}

	palette := &color.Node{}
	if raw.Palette != nil {
		paletteBody, ok := raw.Palette.Entries.(*hclsyntax.Body)
		if !ok {
			return nil, fmt.Errorf("palette block is not an hclsyntax.Body")
		}
		if err := parsePaletteBody(paletteBody, palette, palette, nil); err != nil {
			return nil, fmt.Errorf("parsing palette: %w", err)
		}
	}

	return &Loader{
		body:    file.Body,
		ctx:     BuildEvalContext(palette),
		palette: palette,
	}, nil
}

// Decode decodes a value using the palette context.
func (l *Loader) Decode(target any) error {
	if diags := gohcl.DecodeBody(l.body, l.ctx, target); diags.HasErrors() {
		return fmt.Errorf("decoding: %s", diags.Error())
	}
	return nil
}

// Palette returns the parsed palette colors.
func (l *Loader) Palette() *color.Node {
	return l.palette
}

// Context returns the EvalContext for manual parsing.
func (l *Loader) Context() *hcl.EvalContext {
	return l.ctx
}

// Parse parses a seed file.
func Parse(path string) (*Seed, error) {
	loader, err := NewLoader(path)
	if err != nil {
		return nil, err
	}
	return loader.Seed()
}

// ParseSource parses seed content held in memory.
func ParseSource(src []byte, filename string) (*Seed, error) {
	loader, err := NewLoaderFromSource(src, filename)
	if err != nil {
		return nil, err
	}
	return loader.Seed()
}

// Seed runs the second decoding pass and validates the origin block.
func (l *Loader) Seed() (*Seed, error) {
	var resolved ResolvedConfig
	if err := l.Decode(&resolved); err != nil {
		return nil, err
	}

	var body hcl.Body
	if resolved.Origin != nil {
		body = resolved.Origin.Entries
	}
	origin, err := parseOrigin(body, l.ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing origin: %w", err)
	}

	meta := Meta{}
	if resolved.Meta != nil {
		meta = *resolved.Meta
	}

	return &Seed{
		Meta:    meta,
		Palette: l.palette,
		Origin:  origin,
	}, nil
}

// parseOrigin evaluates the origin block and checks that every role is
// present exactly once.
func parseOrigin(body hcl.Body, ctx *hcl.EvalContext) (theme.OriginColors, error) {
	found := make(map[theme.Role]color.Color, theme.OriginCount)

	if body != nil {
		attrs, diags := body.JustAttributes()
		if diags.HasErrors() {
			return theme.OriginColors{}, fmt.Errorf("getting attributes: %s", diags.Error())
		}

		for name, attr := range attrs {
			role, ok := theme.ParseRole(name)
			if !ok {
				return theme.OriginColors{}, fmt.Errorf("unknown role %q (valid: %s)", name, roleList())
			}
			val, diags := attr.Expr.Value(ctx)
			if diags.HasErrors() {
				return theme.OriginColors{}, fmt.Errorf("evaluating %s: %s", name, diags.Error())
			}
			c, err := ValueColor(val)
			if err != nil {
				return theme.OriginColors{}, fmt.Errorf("%s: %w", name, err)
			}
			found[role] = c
		}
	}

	var missing []string
	colors := make([]color.Color, 0, theme.OriginCount)
	for _, r := range theme.Roles() {
		c, ok := found[r]
		if !ok {
			missing = append(missing, r.String())
			continue
		}
		colors = append(colors, c)
	}
	if len(missing) > 0 {
		return theme.OriginColors{}, fmt.Errorf("origin block incomplete, missing roles: %s: %w",
			strings.Join(missing, ", "), theme.ErrInsufficientData)
	}

	return theme.NewOriginColors(colors)
}

func roleList() string {
	names := make([]string, 0, theme.OriginCount)
	for _, r := range theme.Roles() {
		names = append(names, r.String())
	}
	return strings.Join(names, ", ")
}

// paletteItem represents an attribute or block in source order.
type paletteItem struct {
	pos   hcl.Pos
	attr  *hclsyntax.Attribute
	block *hclsyntax.Block
}

// sortedItems returns the attributes and blocks of body in source order.
func sortedItems(body *hclsyntax.Body) []paletteItem {
	var items []paletteItem
	for _, attr := range body.Attributes {
		items = append(items, paletteItem{pos: attr.SrcRange.Start, attr: attr})
	}
	for _, block := range body.Blocks {
		items = append(items, paletteItem{pos: block.DefRange().Start, block: block})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].pos.Byte < items[j].pos.Byte
	})
	return items
}

// parsePaletteBody evaluates palette entries in source order so later
// entries can reference earlier ones. A "color" attribute sets the
// enclosing block's own color.
func parsePaletteBody(body *hclsyntax.Body, root, node *color.Node, path []string) error {
	for _, item := range sortedItems(body) {
		if item.block != nil {
			if node.Children == nil {
				node.Children = make(map[string]*color.Node)
			}
			child := &color.Node{}
			node.Children[item.block.Type] = child
			if err := parsePaletteBody(item.block.Body, root, child, append(path, item.block.Type)); err != nil {
				return err
			}
			continue
		}

		name := strings.Join(append(append([]string{"palette"}, path...), item.attr.Name), ".")
		val, diags := item.attr.Expr.Value(BuildEvalContext(root))
		if diags.HasErrors() {
			return fmt.Errorf("evaluating %s: %s", name, diags.Error())
		}
		c, err := ValueColor(val)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		if item.attr.Name == "color" {
			node.Color = &c
			continue
		}
		if node.Children == nil {
			node.Children = make(map[string]*color.Node)
		}
		node.Children[item.attr.Name] = &color.Node{Color: &c}
	}
	return nil
}
