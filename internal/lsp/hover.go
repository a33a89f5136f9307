package lsp

import (
	"fmt"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jsvensson/themeswap/internal/color"
	"github.com/jsvensson/themeswap/internal/theme"
)

// posInRange returns true if pos is within the range [r.Start, r.End).
// The end position is exclusive.
func posInRange(pos protocol.Position, r protocol.Range) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character >= r.End.Character {
		return false
	}
	return true
}

// extractText extracts the source text at a given LSP range from document content.
func extractText(content string, r protocol.Range) string {
	lines := strings.Split(content, "\n")

	startLine := int(r.Start.Line)
	endLine := int(r.End.Line)

	if startLine >= len(lines) {
		return ""
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	if startLine == endLine {
		line := lines[startLine]
		startChar := int(r.Start.Character)
		endChar := int(r.End.Character)
		if startChar > len(line) {
			startChar = len(line)
		}
		if endChar > len(line) {
			endChar = len(line)
		}
		return line[startChar:endChar]
	}

	// Multi-line range
	var parts []string
	for i := startLine; i <= endLine; i++ {
		line := lines[i]
		if i == startLine {
			startChar := int(r.Start.Character)
			if startChar > len(line) {
				startChar = len(line)
			}
			parts = append(parts, line[startChar:])
		} else if i == endLine {
			endChar := int(r.End.Character)
			if endChar > len(line) {
				endChar = len(line)
			}
			parts = append(parts, line[:endChar])
		} else {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "\n")
}

// colorSummary renders a color as hex, float RGBA and HSL.
func colorSummary(c color.Color) string {
	h, sat, l := c.HSL()
	return fmt.Sprintf("`%s` \u00b7 `%s` \u00b7 `hsl(%.0f, %.0f%%, %.0f%%)`",
		c.Hex(), c.FloatRGBA(), h*360, sat*100, l*100)
}

// hover produces a Hover response for the given cursor position.
// On an origin role name it lists the slots generated from that role.
// On a color value it shows the color in every notation, prefixed by
// the source text for references.
// Returns nil if nothing is found at the position.
func hover(result *AnalysisResult, content string, pos protocol.Position) *protocol.Hover {
	if result == nil {
		return nil
	}

	for role, rng := range result.RoleRanges {
		if posInRange(pos, rng) {
			return &protocol.Hover{
				Contents: protocol.MarkupContent{
					Kind:  protocol.MarkupKindMarkdown,
					Value: roleHover(result, role),
				},
				Range: &rng,
			}
		}
	}

	for _, cl := range result.Colors {
		if !posInRange(pos, cl.Range) {
			continue
		}

		md := colorSummary(cl.Color)
		if cl.IsRef {
			md = fmt.Sprintf("**%s**\n\n%s", extractText(content, cl.Range), md)
		}

		return &protocol.Hover{
			Contents: protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: md,
			},
			Range: &cl.Range,
		}
	}

	return nil
}

// roleHover describes the slots generated from role. Colors are listed
// only once the whole origin block resolves.
func roleHover(result *AnalysisResult, role theme.Role) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** generates:\n", role)
	for _, slot := range theme.SlotsFor(role) {
		if result.Generated != nil {
			fmt.Fprintf(&b, "\n- `%s` `%s`", slot, result.Generated.Color(slot).Hex())
		} else {
			fmt.Fprintf(&b, "\n- `%s`", slot)
		}
	}
	return b.String()
}

// textDocumentHover handles textDocument/hover requests.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := string(params.TextDocument.URI)

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	return hover(result, content, params.Position), nil
}
