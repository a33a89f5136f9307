package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jsvensson/themeswap/internal/color"
)

// colorToLSP converts a color.Color to a protocol.Color.
func colorToLSP(c color.Color) protocol.Color {
	return protocol.Color{
		Red:   float32(c.R()),
		Green: float32(c.G()),
		Blue:  float32(c.B()),
		Alpha: 1.0,
	}
}

// colorFromLSP converts a protocol.Color to a color.Color, dropping alpha.
func colorFromLSP(c protocol.Color) color.Color {
	return color.New(float64(c.Red), float64(c.Green), float64(c.Blue))
}

// documentColors converts the analysis result's color locations into LSP ColorInformation items.
func documentColors(result *AnalysisResult) []protocol.ColorInformation {
	if result == nil {
		return []protocol.ColorInformation{}
	}

	infos := make([]protocol.ColorInformation, 0, len(result.Colors))
	for _, cl := range result.Colors {
		infos = append(infos, protocol.ColorInformation{
			Range: cl.Range,
			Color: colorToLSP(cl.Color),
		})
	}
	return infos
}

// colorPresentation offers hex and float RGBA replacements for a quoted
// color literal, with the literal's current notation first. References
// and function calls get no presentations, so they are never replaced
// by a literal.
func colorPresentation(content string, params *protocol.ColorPresentationParams) []protocol.ColorPresentation {
	text := extractText(content, params.Range)
	if !strings.HasPrefix(text, "\"") {
		return []protocol.ColorPresentation{}
	}

	c := colorFromLSP(params.Color)
	labels := []string{c.Hex(), c.FloatRGBA()}
	if f, ok := color.DetectFormat(strings.Trim(text, "\"")); ok && f == color.FormatFloatRGBA {
		labels[0], labels[1] = labels[1], labels[0]
	}

	out := make([]protocol.ColorPresentation, 0, len(labels))
	for _, label := range labels {
		out = append(out, protocol.ColorPresentation{
			Label: label,
			TextEdit: &protocol.TextEdit{
				Range:   params.Range,
				NewText: "\"" + label + "\"",
			},
		})
	}
	return out
}

// textDocumentDocumentColor handles textDocument/documentColor requests.
func (s *Server) textDocumentDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	uri := string(params.TextDocument.URI)
	result := s.getResult(uri)
	return documentColors(result), nil
}

// textDocumentColorPresentation handles textDocument/colorPresentation requests.
func (s *Server) textDocumentColorPresentation(_ *glsp.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	uri := string(params.TextDocument.URI)
	content, ok := s.docs.Get(uri)
	if !ok {
		return []protocol.ColorPresentation{}, nil
	}
	return colorPresentation(content, params), nil
}
