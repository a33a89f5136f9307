package lsp

import (
	"strings"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jsvensson/themeswap/internal/format"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "basic formatting",
			input:    `meta{name="Test"author="Author"}`,
			expected: `meta { name = "Test" author = "Author" }`,
		},
		{
			name:     "palette with nested blocks",
			input:    `palette{base="#191724"surface="#1f1d2e"highlight{low="#21202e"}}`,
			expected: `palette { base = "#191724" surface = "#1f1d2e" highlight { low = "#21202e" } }`,
		},
		{
			name: "already formatted stays same",
			input: `meta {
  name = "Test"
}
`,
			expected: `meta {
  name = "Test"
}
`,
		},
		{
			name:     "extra whitespace normalized",
			input:    `meta   {   name   =   "Test"   }`,
			expected: `meta { name = "Test" }`,
		},
		{
			name:     "empty content",
			input:    "",
			expected: "",
		},
		{
			name: "multiple blocks",
			input: `meta{name="Test"}
palette{base="#191724"}
origin{background=palette.base}`,
			expected: `meta { name = "Test" }
palette { base = "#191724" }
origin { background = palette.base }`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := format.Format(tt.input)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			// Normalize line endings for comparison
			result = strings.TrimSuffix(result, "\n")
			expected := strings.TrimSuffix(tt.expected, "\n")

			if result != expected {
				t.Errorf("Format() = %q, want %q", result, expected)
			}
		})
	}
}

func TestFormatEditsInvalidHCL(t *testing.T) {
	// Partial HCL still formats while the user is typing
	input := `meta { name = "Test"`
	if _, err := formatEdits(input); err != nil {
		t.Errorf("formatEdits() on incomplete HCL should not error, got: %v", err)
	}
}

func TestFormatEdits(t *testing.T) {
	input := "meta{name=\"Test\"}\norigin{background=\"#000000\"}"
	edits, err := formatEdits(input)
	if err != nil {
		t.Fatalf("formatEdits() error = %v", err)
	}
	if len(edits) != 1 {
		t.Fatalf("formatEdits() returned %d edits, want 1", len(edits))
	}
	want := protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: 1, Character: uint32(len(`origin{background="#000000"}`))},
	}
	if edits[0].Range != want {
		t.Errorf("Range = %+v, want %+v", edits[0].Range, want)
	}
	if !strings.Contains(edits[0].NewText, `background = "#000000"`) {
		t.Errorf("NewText = %q, want formatted origin", edits[0].NewText)
	}

	again, err := formatEdits(edits[0].NewText)
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != 0 {
		t.Errorf("formatting formatted text returned %d edits, want 0", len(again))
	}
}
