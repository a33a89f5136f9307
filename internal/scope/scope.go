// Package scope holds the fixed table that maps intermediate theme slots
// to TextMate scope selectors. TextMate and VS Code themes share it.
package scope

import "github.com/jsvensson/themeswap/internal/theme"

// Rule pairs a named group of scope selectors with the slot that colors them.
type Rule struct {
	Name   string
	Slot   theme.Slot
	Scopes []string
}

var rules = []Rule{
	{"Comment", theme.Comment, []string{"comment", "punctuation.definition.comment"}},
	{"Documentation comment", theme.CommentDoc, []string{"comment.block.documentation", "comment.line.documentation"}},
	{"Documentation keyword", theme.CommentDocKeyword, []string{"comment.block.documentation keyword", "storage.type.class.doc", "storage.type.class.jsdoc"}},
	{"Section header", theme.CommentSection, []string{"comment.line.mark", "meta.toc-list"}},
	{"Keyword", theme.Keyword, []string{"keyword", "storage.type", "storage.modifier"}},
	{"Class (system)", theme.ClassSystem, []string{"support.class"}},
	{"Class (project)", theme.ClassProject, []string{"entity.name.type.class", "entity.name.class"}},
	{"Type declaration", theme.DeclarationType, []string{"entity.name.type", "meta.type.declaration"}},
	{"Type (system)", theme.TypeSystem, []string{"support.type"}},
	{"Type (project)", theme.TypeProject, []string{"entity.name.type.struct", "entity.name.type.enum"}},
	{"Attribute", theme.Attribute, []string{"entity.other.attribute-name", "meta.attribute"}},
	{"Function (system)", theme.FunctionSystem, []string{"support.function"}},
	{"Function (project)", theme.FunctionProject, []string{"entity.name.function", "meta.function-call"}},
	{"Macro (system)", theme.MacroSystem, []string{"support.function.preprocessor", "support.macro"}},
	{"Macro (project)", theme.MacroProject, []string{"entity.name.function.preprocessor", "entity.name.function.macro"}},
	{"Constant (system)", theme.ConstantSystem, []string{"support.constant", "constant.language"}},
	{"Constant (project)", theme.ConstantProject, []string{"constant.other", "variable.other.constant", "variable.other.enummember"}},
	{"Preprocessor", theme.Preprocessor, []string{"meta.preprocessor", "keyword.control.directive"}},
	{"Variable (system)", theme.VariableSystem, []string{"support.variable", "variable.language"}},
	{"Variable (project)", theme.VariableProject, []string{"variable", "variable.other"}},
	{"Parameter", theme.Parameter, []string{"variable.parameter"}},
	{"Declaration", theme.DeclarationOther, []string{"entity.name", "entity.name.namespace"}},
	{"String", theme.String, []string{"string", "punctuation.definition.string"}},
	{"Character", theme.Character, []string{"constant.character", "constant.character.escape"}},
	{"URL", theme.URL, []string{"markup.underline.link", "string.other.link"}},
	{"Number", theme.Number, []string{"constant.numeric"}},
}

// Rules returns a copy of the rule table in display order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		r.Scopes = append([]string(nil), r.Scopes...)
		out[i] = r
	}
	return out
}

// ByName indexes rules by their name.
func ByName() map[string]Rule {
	out := make(map[string]Rule, len(rules))
	for _, r := range Rules() {
		out[r.Name] = r
	}
	return out
}

// Editor slots are not syntax rules; each format stores them in its own
// editor-level settings.
var editorSlots = []theme.Slot{
	theme.Foreground,
	theme.Background,
	theme.Selection,
	theme.ActiveLine,
	theme.InsertionPoint,
	theme.InstructionPointer,
}

// EditorSlots returns the slots that are not covered by a Rule.
func EditorSlots() []theme.Slot {
	return append([]theme.Slot(nil), editorSlots...)
}
