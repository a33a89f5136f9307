package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// BlockTypes are the root names that expressions can reference.
var BlockTypes = map[string]struct{}{
	"palette": {},
}

// definition resolves the cursor to the palette entry it points at. On an
// origin role name that is the entry the role's value reads; anywhere
// else it is the palette reference under the cursor, cut after the
// segment the cursor is on.
func definition(result *AnalysisResult, content, uri string, pos protocol.Position) *protocol.Location {
	if result == nil {
		return nil
	}

	path, onRole := roleSourceAt(result, pos)
	if !onRole {
		lines := strings.Split(content, "\n")
		if int(pos.Line) >= len(lines) {
			return nil
		}
		path = referenceAt(lines[pos.Line], pos.Character)
	}
	if path == "" {
		return nil
	}

	rng, ok := result.Symbols[path]
	if !ok {
		return nil
	}
	return &protocol.Location{URI: protocol.DocumentUri(uri), Range: rng}
}

// roleSourceAt reports whether pos is on an origin role name and, if so,
// the palette path that role reads. Literal roles have no path.
func roleSourceAt(result *AnalysisResult, pos protocol.Position) (string, bool) {
	for role, rng := range result.RoleRanges {
		if posInRange(pos, rng) {
			return result.RoleSources[role], true
		}
	}
	return "", false
}

// referenceAt returns the dotted reference around character, truncated
// after the segment under the cursor: on "accent" in
// "palette.accent.soft" it returns "palette.accent". A bare root with no
// dot is not a reference.
func referenceAt(line string, character uint32) string {
	col := int(character)
	if col >= len(line) {
		return ""
	}

	start, end := col, col
	for start > 0 && isIdentChar(line[start-1]) {
		start--
	}
	for end < len(line) && isIdentChar(line[end]) {
		end++
	}
	word := line[start:end]

	root, _, dotted := strings.Cut(word, ".")
	if _, ok := BlockTypes[root]; !ok || !dotted {
		return ""
	}
	if i := strings.IndexByte(word[col-start:], '.'); i >= 0 {
		word = word[:col-start+i]
	}
	return word
}

// isIdentChar reports whether b can appear in a dotted reference.
func isIdentChar(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_' || b == '.'
}

func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := string(params.TextDocument.URI)
	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}
	return definition(s.getResult(uri), content, uri, params.Position), nil
}
