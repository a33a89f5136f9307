package lsp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/lucasb-eyer/go-colorful"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jsvensson/themeswap/internal/color"
	"github.com/jsvensson/themeswap/internal/parser"
	"github.com/jsvensson/themeswap/internal/theme"
)

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
	DiagInfo    = protocol.DiagnosticSeverityInformation
)

const diagSource = "themeswap"

// MinContrast is the smallest CIEDE2000 distance between foreground and
// background that does not raise a warning.
const MinContrast = 0.2

// topLevelBlocks are the blocks a seed file may contain.
var topLevelBlocks = []string{"meta", "palette", "origin"}

// AnalysisResult holds all information produced by analyzing a seed file.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	Palette     *color.Node
	Symbols     map[string]protocol.Range // "palette.base", "origin.keywords" -> definition range
	Colors      []ColorLocation
	Origin      map[theme.Role]color.Color
	RoleRanges  map[theme.Role]protocol.Range // origin attribute name ranges
	RoleSources map[theme.Role]string         // palette path each role's value reads
	OriginRange *protocol.Range               // range of the origin block header, if present
	Generated   *theme.Intermediate           // set when every role resolved
}

// ColorLocation records a resolved color at a specific source position.
type ColorLocation struct {
	Range protocol.Range
	Color color.Color
	IsRef bool // true if this is a palette reference (not a literal)
}

// hclPosToLSP converts an HCL position to an LSP position.
// HCL positions are 1-based; LSP positions are 0-based.
func hclPosToLSP(pos hcl.Pos) protocol.Position {
	return protocol.Position{
		Line:      uint32(pos.Line - 1),
		Character: uint32(pos.Column - 1),
	}
}

// hclRangeToLSP converts an HCL range to an LSP range.
func hclRangeToLSP(r hcl.Range) protocol.Range {
	return protocol.Range{
		Start: hclPosToLSP(r.Start),
		End:   hclPosToLSP(r.End),
	}
}

func fileStart(filename string) hcl.Range {
	return hcl.Range{
		Filename: filename,
		Start:    hcl.Pos{Line: 1, Column: 1},
		End:      hcl.Pos{Line: 1, Column: 1},
	}
}

// Analyze parses a seed file from memory and produces diagnostics, a
// symbol table and color locations. It collects all errors rather than
// stopping at the first.
func Analyze(filename, content string) *AnalysisResult {
	result := &AnalysisResult{
		Symbols:     make(map[string]protocol.Range),
		Origin:      make(map[theme.Role]color.Color),
		RoleRanges:  make(map[theme.Role]protocol.Range),
		RoleSources: make(map[theme.Role]string),
		Palette:     &color.Node{},
	}

	file, diags := hclsyntax.ParseConfig([]byte(content), filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		for _, d := range diags {
			result.Diagnostics = append(result.Diagnostics, hclDiagToLSP(d))
		}
		// The partial AST still carries the palette, which completion
		// needs while a reference is half typed.
		if body, ok := partialBody(file); ok {
			for _, block := range body.Blocks {
				if block.Type == "palette" && block.Body != nil {
					result.analyzePaletteBody(block.Body, result.Palette, result.Palette, "palette")
				}
			}
		}
		return result
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		result.addError(hcl.Range{}, "internal error: parsed body is not *hclsyntax.Body")
		return result
	}

	var paletteBody *hclsyntax.Body
	var originBlock *hclsyntax.Block

	for _, block := range body.Blocks {
		switch block.Type {
		case "palette":
			paletteBody = block.Body
		case "origin":
			originBlock = block
		case "meta":
			// meta is decoded by gohcl in the parser; nothing to resolve here
		default:
			result.addError(block.DefRange(), fmt.Sprintf("unknown block %q (valid: %s)",
				block.Type, strings.Join(topLevelBlocks, ", ")))
		}
	}
	for _, attr := range body.Attributes {
		result.addError(attr.SrcRange, fmt.Sprintf("unexpected attribute %q at top level", attr.Name))
	}

	if paletteBody != nil {
		result.analyzePaletteBody(paletteBody, result.Palette, result.Palette, "palette")
	}

	if originBlock == nil {
		result.addError(fileStart(filename), "missing required origin block")
		return result
	}
	rng := hclRangeToLSP(originBlock.DefRange())
	result.OriginRange = &rng

	result.analyzeOrigin(originBlock, parser.BuildEvalContext(result.Palette))
	result.checkContrast()

	return result
}

func partialBody(file *hcl.File) (*hclsyntax.Body, bool) {
	if file == nil {
		return nil, false
	}
	body, ok := file.Body.(*hclsyntax.Body)
	return body, ok
}

// hclDiagToLSP converts an HCL diagnostic to an LSP diagnostic.
func hclDiagToLSP(d *hcl.Diagnostic) protocol.Diagnostic {
	sev := DiagError
	if d.Severity == hcl.DiagWarning {
		sev = DiagWarning
	}

	diag := protocol.Diagnostic{
		Severity: &sev,
		Message:  d.Summary,
		Source:   strPtr(diagSource),
	}

	if d.Detail != "" {
		diag.Message = d.Summary + ": " + d.Detail
	}

	if d.Subject != nil {
		diag.Range = hclRangeToLSP(*d.Subject)
	}

	return diag
}

func (r *AnalysisResult) addError(rng hcl.Range, msg string) {
	r.addDiagnostic(rng, DiagError, msg)
}

func (r *AnalysisResult) addWarning(rng hcl.Range, msg string) {
	r.addDiagnostic(rng, DiagWarning, msg)
}

func (r *AnalysisResult) addDiagnostic(rng hcl.Range, sev protocol.DiagnosticSeverity, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    hclRangeToLSP(rng),
		Severity: &sev,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

func strPtr(s string) *string {
	return &s
}

// evalColor evaluates an attribute and records its color location.
func (r *AnalysisResult) evalColor(attr *hclsyntax.Attribute, ctx *hcl.EvalContext, name string) (color.Color, bool) {
	val, diags := attr.Expr.Value(ctx)
	if diags.HasErrors() {
		r.addError(attr.SrcRange, fmt.Sprintf("evaluating %s: %s", name, diags.Error()))
		return color.Color{}, false
	}

	c, err := parser.ValueColor(val)
	if err != nil {
		r.addError(attr.SrcRange, fmt.Sprintf("%s: %s", name, err.Error()))
		return color.Color{}, false
	}

	r.Colors = append(r.Colors, ColorLocation{
		Range: hclRangeToLSP(attr.Expr.Range()),
		Color: c,
		IsRef: isReferenceExpr(attr.Expr),
	})
	return c, true
}

// analyzePaletteBody walks a palette body in source order so later
// entries can reference earlier ones, building the symbol table and
// color locations.
func (r *AnalysisResult) analyzePaletteBody(body *hclsyntax.Body, root, node *color.Node, prefix string) {
	for _, item := range sortedItems(body) {
		if item.block != nil {
			if node.Children == nil {
				node.Children = make(map[string]*color.Node)
			}
			child := &color.Node{}
			node.Children[item.block.Type] = child
			r.Symbols[prefix+"."+item.block.Type] = hclRangeToLSP(item.block.DefRange())
			r.analyzePaletteBody(item.block.Body, root, child, prefix+"."+item.block.Type)
			continue
		}

		attrName := item.attr.Name
		symbolName := prefix + "." + attrName
		if attrName != "color" {
			r.Symbols[symbolName] = hclRangeToLSP(item.attr.SrcRange)
		}

		// Rebuild the context so this entry sees everything defined above it
		c, ok := r.evalColor(item.attr, parser.BuildEvalContext(root), symbolName)
		if !ok {
			continue
		}

		if attrName == "color" {
			node.Color = &c
			continue
		}
		if node.Children == nil {
			node.Children = make(map[string]*color.Node)
		}
		node.Children[attrName] = &color.Node{Color: &c}
	}
}

// analyzeOrigin resolves every role in the origin block and warns about
// roles that are missing.
func (r *AnalysisResult) analyzeOrigin(block *hclsyntax.Block, ctx *hcl.EvalContext) {
	for _, b := range block.Body.Blocks {
		r.addError(b.DefRange(), fmt.Sprintf("origin accepts only attributes, found block %q", b.Type))
	}

	for _, attr := range sortedAttributes(block.Body) {
		role, ok := theme.ParseRole(attr.Name)
		if !ok {
			r.addError(attr.NameRange, fmt.Sprintf("unknown role %q (valid: %s)", attr.Name, roleList()))
			continue
		}
		r.Symbols["origin."+attr.Name] = hclRangeToLSP(attr.SrcRange)
		r.RoleRanges[role] = hclRangeToLSP(attr.NameRange)
		if path := paletteSource(attr.Expr); path != "" {
			r.RoleSources[role] = path
		}

		c, ok := r.evalColor(attr, ctx, "origin."+attr.Name)
		if !ok {
			continue
		}
		r.Origin[role] = c
	}

	if len(r.Origin) == theme.OriginCount {
		colors := make([]color.Color, 0, theme.OriginCount)
		for _, role := range theme.Roles() {
			colors = append(colors, r.Origin[role])
		}
		if t, err := theme.GenerateFrom(colors, theme.Meta{}); err == nil {
			r.Generated = &t
		}
	}

	var missing []string
	for _, role := range MissingRoles(block.Body) {
		missing = append(missing, role.String())
	}
	if len(missing) > 0 {
		r.addWarning(block.DefRange(), fmt.Sprintf("origin block missing roles: %s", strings.Join(missing, ", ")))
	}
}

// checkContrast warns when foreground and background are perceptually
// too close to read.
func (r *AnalysisResult) checkContrast() {
	fg, okFg := r.Origin[theme.RoleForeground]
	bg, okBg := r.Origin[theme.RoleBackground]
	if !okFg || !okBg {
		return
	}

	d := Contrast(fg, bg)
	if d >= MinContrast {
		return
	}

	rng, ok := r.Symbols["origin.foreground"]
	if !ok {
		return
	}
	sev := DiagWarning
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    rng,
		Severity: &sev,
		Source:   strPtr(diagSource),
		Message:  fmt.Sprintf("low contrast between foreground and background (CIEDE2000 distance %.3f, minimum %.1f)", d, MinContrast),
	})
}

// Contrast returns the CIEDE2000 distance between two colors, scaled so
// that 1 is roughly the distance between black and white.
func Contrast(a, b color.Color) float64 {
	ca := colorful.Color{R: a.R(), G: a.G(), B: a.B()}
	cb := colorful.Color{R: b.R(), G: b.G(), B: b.B()}
	return ca.DistanceCIEDE2000(cb)
}

// MissingRoles lists the roles not assigned in an origin body, in role
// order.
func MissingRoles(body *hclsyntax.Body) []theme.Role {
	var missing []theme.Role
	for _, role := range theme.Roles() {
		if body == nil {
			missing = append(missing, role)
			continue
		}
		if _, ok := body.Attributes[role.String()]; !ok {
			missing = append(missing, role)
		}
	}
	return missing
}

func roleList() string {
	names := make([]string, 0, theme.OriginCount)
	for _, r := range theme.Roles() {
		names = append(names, r.String())
	}
	return strings.Join(names, ", ")
}

// isReferenceExpr returns true if the expression is a scope traversal
// (e.g. palette.base) rather than a literal value.
func isReferenceExpr(expr hclsyntax.Expression) bool {
	switch expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		return true
	case *hclsyntax.RelativeTraversalExpr:
		return true
	default:
		return false
	}
}

// paletteSource returns the dotted palette path of the first palette
// reference in expr, e.g. "palette.accent.soft" for
// lighten(palette.accent.soft, 0.1).
func paletteSource(expr hclsyntax.Expression) string {
	for _, tr := range expr.Variables() {
		if _, ok := BlockTypes[tr.RootName()]; !ok {
			continue
		}
		parts := []string{tr.RootName()}
		for _, step := range tr[1:] {
			attr, ok := step.(hcl.TraverseAttr)
			if !ok {
				break
			}
			parts = append(parts, attr.Name)
		}
		return strings.Join(parts, ".")
	}
	return ""
}

// paletteItem represents an attribute or block in source order.
type paletteItem struct {
	pos   hcl.Pos
	attr  *hclsyntax.Attribute
	block *hclsyntax.Block
}

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

func sortedAttributes(body *hclsyntax.Body) []*hclsyntax.Attribute {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, attr := range body.Attributes {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})
	return attrs
}
