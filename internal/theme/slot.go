package theme

import "fmt"

// Slot identifies one named color field of an Intermediate theme.
type Slot int

const (
	Foreground Slot = iota
	Background
	Selection
	ActiveLine
	InsertionPoint
	InstructionPointer

	Comment
	CommentDoc
	CommentDocKeyword
	CommentSection

	Keyword

	ClassSystem
	ClassProject
	DeclarationType

	TypeSystem
	TypeProject
	Attribute

	FunctionSystem
	FunctionProject
	MacroSystem
	MacroProject

	ConstantSystem
	ConstantProject
	Preprocessor

	VariableSystem
	VariableProject
	Parameter
	DeclarationOther

	String
	Character
	URL

	Number

	slotCount
)

var slotNames = [slotCount]string{
	Foreground:         "foreground",
	Background:         "background",
	Selection:          "selection",
	ActiveLine:         "activeLine",
	InsertionPoint:     "insertionPoint",
	InstructionPointer: "instructionPointer",
	Comment:            "comment",
	CommentDoc:         "commentDoc",
	CommentDocKeyword:  "commentDocKeyword",
	CommentSection:     "commentSection",
	Keyword:            "keyword",
	ClassSystem:        "classSystem",
	ClassProject:       "classProject",
	DeclarationType:    "declarationType",
	TypeSystem:         "typeSystem",
	TypeProject:        "typeProject",
	Attribute:          "attribute",
	FunctionSystem:     "functionSystem",
	FunctionProject:    "functionProject",
	MacroSystem:        "macroSystem",
	MacroProject:       "macroProject",
	ConstantSystem:     "constantSystem",
	ConstantProject:    "constantProject",
	Preprocessor:       "preprocessor",
	VariableSystem:     "variableSystem",
	VariableProject:    "variableProject",
	Parameter:          "parameter",
	DeclarationOther:   "declarationOther",
	String:             "string",
	Character:          "character",
	URL:                "url",
	Number:             "number",
}

// Slots returns every slot in declaration order.
func Slots() []Slot {
	out := make([]Slot, slotCount)
	for i := range out {
		out[i] = Slot(i)
	}
	return out
}

// Valid reports whether s names a known slot.
func (s Slot) Valid() bool {
	return s >= 0 && s < slotCount
}

func (s Slot) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Slot(%d)", int(s))
	}
	return slotNames[s]
}

// ParseSlot returns the slot with the given name.
func ParseSlot(name string) (Slot, bool) {
	for i, n := range slotNames {
		if n == name {
			return Slot(i), true
		}
	}
	return 0, false
}
