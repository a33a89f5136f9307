package lsp

import (
	"sort"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/jsvensson/themeswap/internal/color"
	"github.com/jsvensson/themeswap/internal/parser"
	"github.com/jsvensson/themeswap/internal/theme"
)

// splitLines splits content into lines, preserving empty trailing lines.
func splitLines(content string) []string {
	return strings.Split(content, "\n")
}

// blockContext represents the kind of block the cursor is in.
type blockContext int

const (
	contextRoot    blockContext = iota
	contextMeta                 // inside meta {}
	contextPalette              // inside palette {} or one of its groups
	contextOrigin               // inside origin {}
)

// metaAttributes are the valid attributes inside the meta block.
var metaAttributes = []string{"name", "author"}

// functionSnippets holds the completion snippet for each color function.
var functionSnippets = map[string]struct{ detail, snippet string }{
	"lighten":   {"lighten(color, modifier)", "lighten(${1:color}, ${2:1})"},
	"darken":    {"darken(color, modifier)", "darken(${1:color}, ${2:1})"},
	"transform": {"transform(color, hue, saturation, lightness)", "transform(${1:color}, ${2:0}, ${3:0}, ${4:0})"},
}

// complete produces completion items given an analysis result, document content,
// and cursor position. This is the core logic, decoupled from the LSP protocol
// handler for testability.
func complete(result *AnalysisResult, content string, pos protocol.Position) []protocol.CompletionItem {
	lines := splitLines(content)
	if int(pos.Line) >= len(lines) {
		return nil
	}

	line := lines[pos.Line]
	charPos := min(int(pos.Character), len(line))
	textBeforeCursor := line[:charPos]

	// Check for palette path completion: look for "palette." or "palette.xxx."
	if paletteItems := tryPaletteCompletion(result, textBeforeCursor); paletteItems != nil {
		return paletteItems
	}

	// After "=", offer functions and palette
	if isValuePosition(textBeforeCursor) {
		return valueCompletions()
	}

	// Determine which block the cursor is in by scanning backwards
	ctx := determineBlockContext(lines, int(pos.Line))

	switch ctx {
	case contextOrigin:
		return roleCompletions(lines, int(pos.Line))
	case contextMeta:
		return metaCompletions(lines, int(pos.Line))
	case contextRoot:
		return topLevelCompletions()
	}

	return nil
}

// tryPaletteCompletion checks if the text before the cursor ends with a palette
// path prefix (e.g., "palette." or "palette.highlight.") and returns completion
// items for the children at that node in the palette tree.
func tryPaletteCompletion(result *AnalysisResult, textBeforeCursor string) []protocol.CompletionItem {
	if result == nil || result.Palette == nil {
		return nil
	}

	// Find the last occurrence of "palette." in the text before cursor
	idx := strings.LastIndex(textBeforeCursor, "palette.")
	if idx == -1 {
		return nil
	}

	// Extract the path after "palette."
	pathStr := textBeforeCursor[idx+len("palette."):]

	// Walk the palette tree based on the path segments.
	// - "palette."              -> children of root (segments = nil)
	// - "palette.highlight."    -> children of "highlight" node
	// - "palette.high"          -> children of root (client filters partial match)
	// - "palette.highlight.lo"  -> children of "highlight" (client filters "lo")
	var segments []string
	if pathStr == "" {
		segments = nil
	} else if before, ok := strings.CutSuffix(pathStr, "."); ok {
		trimmed := before
		segments = strings.Split(trimmed, ".")
	} else if strings.Contains(pathStr, ".") {
		parts := strings.Split(pathStr, ".")
		segments = parts[:len(parts)-1]
	} else {
		segments = nil
	}

	// Walk the palette tree to the target node
	node := result.Palette
	for _, seg := range segments {
		if node.Children == nil {
			return nil
		}
		child, ok := node.Children[seg]
		if !ok {
			return nil
		}
		node = child
	}

	if node.Children == nil {
		return nil
	}

	return nodeChildrenToCompletionItems(node)
}

// nodeChildrenToCompletionItems converts a node's children into completion items.
func nodeChildrenToCompletionItems(node *color.Node) []protocol.CompletionItem {
	var items []protocol.CompletionItem
	kind := protocol.CompletionItemKindColor

	names := make([]string, 0, len(node.Children))
	for name := range node.Children {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		child := node.Children[name]
		item := protocol.CompletionItem{
			Label: name,
			Kind:  &kind,
		}

		// If the child has a direct color, show it in Detail
		if child.Color != nil {
			hex := child.Color.Hex()
			item.Detail = &hex
		} else if child.Children != nil {
			// A namespace-only group is still offered, with a group detail
			groupKind := protocol.CompletionItemKindModule
			item.Kind = &groupKind
			detail := "color group"
			item.Detail = &detail
		}

		items = append(items, item)
	}

	return items
}

// isValuePosition returns true if the text before the cursor indicates we are
// at a value position (after an "=" sign with nothing meaningful following it).
func isValuePosition(textBeforeCursor string) bool {
	trimmed := strings.TrimSpace(textBeforeCursor)
	eqIdx := strings.LastIndex(trimmed, "=")
	if eqIdx == -1 {
		return false
	}
	afterEq := strings.TrimSpace(trimmed[eqIdx+1:])
	return afterEq == ""
}

// valueCompletions returns completion items for a value position, including
// function snippets and a palette reference trigger.
func valueCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet

	var items []protocol.CompletionItem
	for _, name := range parser.FunctionNames() {
		fn, ok := functionSnippets[name]
		if !ok {
			continue
		}
		items = append(items, protocol.CompletionItem{
			Label:            name,
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr(fn.detail),
			InsertText:       strPtr(fn.snippet),
			InsertTextFormat: &snippetFormat,
		})
	}

	paletteSnippet := "palette."
	items = append(items, protocol.CompletionItem{
		Label:      "palette",
		Kind:       completionKindPtr(protocol.CompletionItemKindVariable),
		Detail:     strPtr("palette reference"),
		InsertText: &paletteSnippet,
	})
	return items
}

// determineBlockContext scans from the top of the file down to the cursor line
// to determine which block the cursor is in, using brace nesting.
func determineBlockContext(lines []string, cursorLine int) blockContext {
	type blockInfo struct {
		name string
	}

	var stack []blockInfo

	for i := 0; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])

		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")

		// Process opening braces: extract the block name (first word on the line)
		if opens > 0 {
			parts := strings.Fields(line)
			if len(parts) >= 1 {
				name := parts[0]
				for i := 0; i < opens; i++ {
					stack = append(stack, blockInfo{name: name})
				}
			}
		}

		// Process closing braces
		if closes > 0 {
			for i := 0; i < closes; i++ {
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
				}
			}
		}
	}

	if len(stack) == 0 {
		return contextRoot
	}

	current := stack[len(stack)-1]

	switch current.name {
	case "meta":
		return contextMeta
	case "palette":
		return contextPalette
	case "origin":
		return contextOrigin
	default:
		// Nested groups inherit the palette context
		if stack[0].name == "palette" {
			return contextPalette
		}
		return contextRoot
	}
}

// roleCompletions returns origin role completions, excluding roles that
// are already assigned in the origin block surrounding the cursor.
func roleCompletions(lines []string, cursorLine int) []protocol.CompletionItem {
	defined := findDefinedAttributes(lines, cursorLine)
	kind := protocol.CompletionItemKindConstant

	var items []protocol.CompletionItem
	for _, role := range theme.Roles() {
		name := role.String()
		if defined[name] {
			continue
		}
		detail := "origin role"
		items = append(items, protocol.CompletionItem{
			Label:  name,
			Kind:   &kind,
			Detail: &detail,
		})
	}

	return items
}

// metaCompletions returns meta attribute completions not yet defined.
func metaCompletions(lines []string, cursorLine int) []protocol.CompletionItem {
	defined := findDefinedAttributes(lines, cursorLine)
	kind := protocol.CompletionItemKindProperty

	var items []protocol.CompletionItem
	for _, name := range metaAttributes {
		if !defined[name] {
			items = append(items, protocol.CompletionItem{
				Label: name,
				Kind:  &kind,
			})
		}
	}

	return items
}

// findDefinedAttributes scans the current block (from the nearest opening brace
// before cursorLine to cursorLine) and returns attribute names already defined
// (lines containing "name = ...").
func findDefinedAttributes(lines []string, cursorLine int) map[string]bool {
	defined := make(map[string]bool)

	// Scan backwards to find the opening brace of the current block
	startLine := 0
	depth := 0
	for i := cursorLine; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		closes := strings.Count(line, "}")
		opens := strings.Count(line, "{")
		depth += closes - opens
		if depth < 0 {
			startLine = i
			break
		}
	}

	// Scan forward from startLine to cursorLine, collecting attribute names
	for i := startLine; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])
		if eqIdx := strings.Index(line, "="); eqIdx > 0 {
			name := strings.TrimSpace(line[:eqIdx])
			if !strings.Contains(name, " ") && !strings.Contains(name, "{") {
				defined[name] = true
			}
		}
	}

	return defined
}

// topLevelCompletions returns completion items for top-level block names.
func topLevelCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet
	kind := protocol.CompletionItemKindSnippet

	var items []protocol.CompletionItem
	for _, name := range topLevelBlocks {
		snippet := name + " {\n  $0\n}"
		items = append(items, protocol.CompletionItem{
			Label:            name,
			Kind:             &kind,
			InsertText:       &snippet,
			InsertTextFormat: &snippetFormat,
		})
	}

	return items
}

// completionKindPtr returns a pointer to a CompletionItemKind.
func completionKindPtr(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}

// textDocumentCompletion is the LSP handler for textDocument/completion requests.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	result := s.getResult(uri)
	if result == nil {
		return nil, nil
	}

	items := complete(result, content, params.Position)
	return items, nil
}
