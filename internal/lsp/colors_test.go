package lsp

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jsvensson/themeswap/internal/color"
)

func TestColorToLSP(t *testing.T) {
	tests := []struct {
		name  string
		input color.Color
		want  protocol.Color
	}{
		{
			name:  "pure red",
			input: color.RGB8(255, 0, 0),
			want:  protocol.Color{Red: 1.0, Green: 0.0, Blue: 0.0, Alpha: 1.0},
		},
		{
			name:  "pure green",
			input: color.RGB8(0, 255, 0),
			want:  protocol.Color{Red: 0.0, Green: 1.0, Blue: 0.0, Alpha: 1.0},
		},
		{
			name:  "white",
			input: color.RGB8(255, 255, 255),
			want:  protocol.Color{Red: 1.0, Green: 1.0, Blue: 1.0, Alpha: 1.0},
		},
		{
			name:  "mid gray",
			input: color.RGB8(128, 128, 128),
			want:  protocol.Color{Red: float32(128.0 / 255), Green: float32(128.0 / 255), Blue: float32(128.0 / 255), Alpha: 1.0},
		},
		{
			name:  "fractional",
			input: color.New(0.25, 0.5, 0.75),
			want:  protocol.Color{Red: 0.25, Green: 0.5, Blue: 0.75, Alpha: 1.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := colorToLSP(tt.input); got != tt.want {
				t.Errorf("colorToLSP() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDocumentColors(t *testing.T) {
	red := color.RGB8(255, 0, 0)
	blue := color.RGB8(0, 0, 255)

	result := &AnalysisResult{
		Colors: []ColorLocation{
			{
				Range: protocol.Range{
					Start: protocol.Position{Line: 1, Character: 10},
					End:   protocol.Position{Line: 1, Character: 20},
				},
				Color: red,
			},
			{
				Range: protocol.Range{
					Start: protocol.Position{Line: 2, Character: 10},
					End:   protocol.Position{Line: 2, Character: 22},
				},
				Color: blue,
				IsRef: true,
			},
		},
	}

	infos := documentColors(result)

	if len(infos) != 2 {
		t.Fatalf("expected 2 ColorInformation items, got %d", len(infos))
	}
	if infos[0].Color != (protocol.Color{Red: 1, Alpha: 1}) {
		t.Errorf("item 0: expected red, got %+v", infos[0].Color)
	}
	if infos[0].Range.Start.Line != 1 || infos[0].Range.Start.Character != 10 {
		t.Errorf("item 0: unexpected range start")
	}
	if infos[1].Color != (protocol.Color{Blue: 1, Alpha: 1}) {
		t.Errorf("item 1: expected blue, got %+v", infos[1].Color)
	}
}

func TestDocumentColors_NilResult(t *testing.T) {
	infos := documentColors(nil)
	if infos == nil {
		t.Fatal("expected non-nil empty slice, got nil")
	}
	if len(infos) != 0 {
		t.Errorf("expected 0 items, got %d", len(infos))
	}
}

func TestColorPresentation(t *testing.T) {
	red := protocol.Color{Red: 1, Alpha: 1}

	tests := []struct {
		name       string
		content    string
		rng        protocol.Range
		wantLabels []string
	}{
		{
			name:    "hex literal",
			content: "palette {\n  base = \"#191724\"\n}\n",
			rng: protocol.Range{
				Start: protocol.Position{Line: 1, Character: 9},
				End:   protocol.Position{Line: 1, Character: 18},
			},
			wantLabels: []string{"#FF0000", "1 0 0 1"},
		},
		{
			name:    "float literal",
			content: "palette {\n  base = \"0.1 0.2 0.3 1\"\n}\n",
			rng: protocol.Range{
				Start: protocol.Position{Line: 1, Character: 9},
				End:   protocol.Position{Line: 1, Character: 24},
			},
			wantLabels: []string{"1 0 0 1", "#FF0000"},
		},
		{
			name:    "palette reference",
			content: "origin {\n  background = palette.base\n}\n",
			rng: protocol.Range{
				Start: protocol.Position{Line: 1, Character: 15},
				End:   protocol.Position{Line: 1, Character: 27},
			},
			wantLabels: nil,
		},
		{
			name:    "function call",
			content: "palette {\n  soft = lighten(\"#191724\", 1)\n}\n",
			rng: protocol.Range{
				Start: protocol.Position{Line: 1, Character: 9},
				End:   protocol.Position{Line: 1, Character: 30},
			},
			wantLabels: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := &protocol.ColorPresentationParams{Color: red, Range: tt.rng}
			presentations := colorPresentation(tt.content, params)

			if len(presentations) != len(tt.wantLabels) {
				t.Fatalf("got %d presentations, want %d", len(presentations), len(tt.wantLabels))
			}
			for i, p := range presentations {
				if p.Label != tt.wantLabels[i] {
					t.Errorf("presentation %d label = %q, want %q", i, p.Label, tt.wantLabels[i])
				}
				if p.TextEdit == nil {
					t.Fatalf("presentation %d has no TextEdit", i)
				}
				if want := "\"" + tt.wantLabels[i] + "\""; p.TextEdit.NewText != want {
					t.Errorf("presentation %d NewText = %q, want %q", i, p.TextEdit.NewText, want)
				}
				if p.TextEdit.Range != tt.rng {
					t.Errorf("presentation %d range = %v, want %v", i, p.TextEdit.Range, tt.rng)
				}
			}
		})
	}
}

func TestColorPresentation_Integration(t *testing.T) {
	// Use the analyzer to produce real color locations, then test color presentation
	result := Analyze("test.hcl", validSeed)

	infos := documentColors(result)
	if len(infos) != len(result.Colors) {
		t.Fatalf("got %d ColorInformation items for %d colors", len(infos), len(result.Colors))
	}

	for i, cl := range result.Colors {
		params := &protocol.ColorPresentationParams{
			Color: infos[i].Color,
			Range: infos[i].Range,
		}
		presentations := colorPresentation(validSeed, params)

		text := extractText(validSeed, cl.Range)
		quoted := len(text) > 0 && text[0] == '"'
		switch {
		case quoted && len(presentations) != 2:
			t.Errorf("literal %s: expected 2 presentations, got %d", text, len(presentations))
		case !quoted && len(presentations) != 0:
			t.Errorf("expression %s: expected 0 presentations, got %d", text, len(presentations))
		}
		if cl.IsRef && quoted {
			t.Errorf("reference %s should not be quoted", text)
		}
	}
}
