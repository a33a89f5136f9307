package format

import (
	"regexp"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/jsvensson/themeswap/internal/theme"
)

var multipleBlankLines = regexp.MustCompile(`\n{3,}`)
var blankLineAfterOpenBrace = regexp.MustCompile(`\{\n\s*\n`)
var blankLineBeforeCloseBrace = regexp.MustCompile(`\n\s*\n(\s*\})`)

var originOpen = regexp.MustCompile(`^origin\s*\{\s*$`)
var attrLine = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_-]*)\s*=`)

// Format takes HCL source content and returns it formatted according to
// HCL canonical style rules. It uses hclwrite.Format which handles
// indentation, spacing, and newline normalization. Attributes of the
// origin block are put in role order.
//
// The formatter works even on partial/invalid HCL, making it suitable
// for use while the user is still typing.
func Format(content string) (string, error) {
	formatted := string(hclwrite.Format([]byte(content)))
	if reordered, ok := reorderOrigin(formatted); ok {
		formatted = string(hclwrite.Format([]byte(reordered)))
	}
	// Collapse multiple consecutive blank lines into a single blank line.
	collapsed := multipleBlankLines.ReplaceAllString(formatted, "\n\n")
	// Remove blank lines immediately after opening braces.
	collapsed = blankLineAfterOpenBrace.ReplaceAllString(collapsed, "{\n")
	// Remove blank lines immediately before closing braces.
	collapsed = blankLineBeforeCloseBrace.ReplaceAllString(collapsed, "\n${1}")
	return collapsed, nil
}

// attrGroup is an attribute line plus the comment lines directly above it.
type attrGroup struct {
	rank  int
	lines []string
}

// reorderOrigin sorts the attributes of a top-level origin block by role.
// Comments travel with the attribute below them. Blocks containing
// anything other than single-line attributes and comments are left alone.
func reorderOrigin(src string) (string, bool) {
	lines := strings.Split(src, "\n")

	start := -1
	for i, l := range lines {
		if originOpen.MatchString(l) {
			start = i
			break
		}
	}
	if start < 0 {
		return "", false
	}
	end := -1
	for i := start + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "}" && !strings.HasPrefix(lines[i], " ") {
			end = i
			break
		}
	}
	if end < 0 {
		return "", false
	}

	var groups []attrGroup
	var pending []string
	for _, l := range lines[start+1 : end] {
		trimmed := strings.TrimSpace(l)
		switch {
		case trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//"):
			pending = append(pending, l)
		case attrLine.MatchString(l) && !strings.ContainsAny(trimmed, "{["):
			name := attrLine.FindStringSubmatch(l)[1]
			groups = append(groups, attrGroup{rank: roleRank(name), lines: append(pending, l)})
			pending = nil
		default:
			return "", false
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].rank < groups[j].rank
	})

	out := append([]string(nil), lines[:start+1]...)
	for _, g := range groups {
		out = append(out, g.lines...)
	}
	out = append(out, pending...)
	out = append(out, lines[end:]...)
	return strings.Join(out, "\n"), true
}

// roleRank orders known roles first, in declaration order.
func roleRank(name string) int {
	if r, ok := theme.ParseRole(name); ok {
		return int(r)
	}
	return theme.OriginCount
}
