package theme

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jsvensson/themeswap/internal/color"
)

var referenceSeed = []string{
	"#1E1E1E", "#D4D4D4", "#C586C0", "#4EC9B0", "#569CD6",
	"#DCDCAA", "#4FC1FF", "#9CDCFE", "#CE9178", "#B5CEA8",
}

func seedColors(t *testing.T, hexes []string) []color.Color {
	t.Helper()
	out := make([]color.Color, len(hexes))
	for i, h := range hexes {
		c, err := color.ParseHex(h)
		if err != nil {
			t.Fatalf("ParseHex(%q): %v", h, err)
		}
		out[i] = c
	}
	return out
}

func referenceTheme(t *testing.T) Intermediate {
	t.Helper()
	th, err := GenerateFrom(seedColors(t, referenceSeed), Meta{Name: "Reference"})
	if err != nil {
		t.Fatalf("GenerateFrom() error: %v", err)
	}
	return th
}

func TestGenerate_PassThrough(t *testing.T) {
	th := referenceTheme(t)

	tests := []struct {
		slot Slot
		want string
	}{
		{Background, "#1E1E1E"},
		{Foreground, "#D4D4D4"},
		{Keyword, "#C586C0"},
		{Number, "#B5CEA8"},
	}

	for _, tt := range tests {
		if got := th.Color(tt.slot).Hex(); got != tt.want {
			t.Errorf("%s = %s, want %s", tt.slot, got, tt.want)
		}
	}

	seed := seedColors(t, referenceSeed)
	if th.Color(Background) != seed[0] || th.Color(Foreground) != seed[1] {
		t.Error("background and foreground must pass through exactly")
	}
}

func TestGenerate_SlotMapping(t *testing.T) {
	th := referenceTheme(t)

	want := map[Slot]string{
		Foreground:         "#D4D4D4",
		Background:         "#1E1E1E",
		Selection:          "#4C4C4C",
		ActiveLine:         "#313131",
		InsertionPoint:     "#DBA2D7",
		InstructionPointer: "#CB4CC1",
		Comment:            "#8E5A5A",
		CommentDoc:         "#8E5A5A",
		CommentDocKeyword:  "#997575",
		CommentSection:     "#997575",
		Keyword:            "#C586C0",
		ClassSystem:        "#4EC9B0",
		ClassProject:       "#31BB9F",
		DeclarationType:    "#239E85",
		TypeSystem:         "#569CD6",
		TypeProject:        "#2D88D4",
		Attribute:          "#1F72B7",
		FunctionSystem:     "#DCDCAA",
		FunctionProject:    "#D5D590",
		MacroSystem:        "#D0D075",
		MacroProject:       "#CCCC5A",
		ConstantSystem:     "#4FC1FF",
		ConstantProject:    "#24B2FF",
		Preprocessor:       "#00A1F9",
		VariableSystem:     "#9CDCFE",
		VariableProject:    "#7BD1FF",
		Parameter:          "#5BC6FF",
		DeclarationOther:   "#3BBBFF",
		String:             "#CE9178",
		Character:          "#C87553",
		URL:                "#BC5B34",
		Number:             "#B5CEA8",
	}

	got := make(map[Slot]string, len(want))
	for _, s := range Slots() {
		got[s] = th.Color(s).Hex()
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("generated slots mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateFrom_Arity(t *testing.T) {
	all := seedColors(t, referenceSeed)
	for n := 0; n <= 12; n++ {
		colors := make([]color.Color, 0, n)
		for i := 0; i < n; i++ {
			colors = append(colors, all[i%len(all)])
		}
		_, err := GenerateFrom(colors, Meta{})
		if n == OriginCount {
			if err != nil {
				t.Errorf("GenerateFrom(%d colors) error: %v", n, err)
			}
			continue
		}
		if !errors.Is(err, ErrInsufficientData) {
			t.Errorf("GenerateFrom(%d colors) error = %v, want ErrInsufficientData", n, err)
		}
	}
}

func TestUnmapInvertsGenerate(t *testing.T) {
	seed := seedColors(t, referenceSeed)
	th := referenceTheme(t)

	got := Unmap(th).Slice()
	for i := range seed {
		if got[i] != seed[i] {
			t.Errorf("Unmap()[%s] = %s, want %s", Role(i), got[i], seed[i])
		}
	}
}

func TestOriginColorsAccessors(t *testing.T) {
	o, err := NewOriginColors(seedColors(t, referenceSeed))
	if err != nil {
		t.Fatal(err)
	}
	if o.Background().Hex() != "#1E1E1E" || o.Numbers().Hex() != "#B5CEA8" || o.Strings().Hex() != "#CE9178" {
		t.Errorf("unexpected accessor results: %v", o.Slice())
	}
	if o.Color(RoleFunctions) != o.Functions() {
		t.Error("Color(RoleFunctions) should match Functions()")
	}
}

func TestMapAndWith(t *testing.T) {
	th := referenceTheme(t)
	red := color.New(1, 0, 0)

	replaced := th.With(Keyword, red)
	if replaced.Color(Keyword) != red {
		t.Errorf("With() did not replace keyword")
	}
	if th.Color(Keyword).Hex() != "#C586C0" {
		t.Errorf("With() mutated the original theme")
	}
	if replaced.Color(String) != th.Color(String) {
		t.Errorf("With() changed an unrelated slot")
	}

	visited := 0
	inverted := th.Map(func(s Slot, c color.Color) color.Color {
		visited++
		return color.New(1-c.R(), 1-c.G(), 1-c.B())
	})
	if visited != len(Slots()) {
		t.Errorf("Map visited %d slots, want %d", visited, len(Slots()))
	}
	if inverted.Color(Background).Hex() != "#E1E1E1" {
		t.Errorf("inverted background = %s, want #E1E1E1", inverted.Color(Background).Hex())
	}
	if inverted.Meta != th.Meta {
		t.Errorf("Map() dropped metadata")
	}
}

func TestSlotNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range Slots() {
		name := s.String()
		if seen[name] {
			t.Errorf("duplicate slot name %q", name)
		}
		seen[name] = true

		back, ok := ParseSlot(name)
		if !ok || back != s {
			t.Errorf("ParseSlot(%q) = %v, %v", name, back, ok)
		}
	}
	if len(Slots()) != 32 {
		t.Errorf("len(Slots()) = %d, want 32", len(Slots()))
	}
	if _, ok := ParseSlot("nope"); ok {
		t.Error("ParseSlot(nope) should fail")
	}
}

func TestRoleNames(t *testing.T) {
	want := []string{
		"background", "foreground", "keywords", "reference_types", "value_types",
		"functions", "constants", "variables", "strings", "numbers",
	}
	var got []string
	for _, r := range Roles() {
		got = append(got, r.String())
		if back, ok := ParseRole(r.String()); !ok || back != r {
			t.Errorf("ParseRole(%q) = %v, %v", r, back, ok)
		}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("role order mismatch (-want +got):\n%s", diff)
	}
}

func TestIntermediateJSONRoundTrip(t *testing.T) {
	th := referenceTheme(t).WithMeta(Meta{Name: "Reference", Author: "Tester"})

	data, err := json.Marshal(th)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if !strings.Contains(string(data), Marker) {
		t.Errorf("encoded theme lacks marker: %s", data)
	}

	var back Intermediate
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if back != th {
		t.Errorf("round trip lost data")
	}
	if back.Version() != Version {
		t.Errorf("Version() = %q, want %q", back.Version(), Version)
	}
}

func TestIntermediateUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"wrong marker", `{"format":"other","colors":{}}`, "not an intermediate theme"},
		{"missing slots", `{"format":"themeswap.intermediate","colors":{"background":"#000000"}}`, "missing slots"},
		{"unknown slot", `{"format":"themeswap.intermediate","colors":{"bogus":"#000000"}}`, "unknown slot"},
		{"bad color", `{"format":"themeswap.intermediate","colors":{"background":"nope"}}`, "unrecognized color format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var th Intermediate
			err := json.Unmarshal([]byte(tt.input), &th)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Unmarshal error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestIntermediateAcceptsHexColors(t *testing.T) {
	th := referenceTheme(t)
	var b strings.Builder
	b.WriteString(`{"format":"themeswap.intermediate","version":"1.0","colors":{`)
	for i, s := range Slots() {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`"` + s.String() + `":"` + th.Color(s).Hex() + `"`)
	}
	b.WriteString("}}")

	var back Intermediate
	if err := json.Unmarshal([]byte(b.String()), &back); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if back.Color(Background) != th.Color(Background) {
		t.Errorf("background = %s, want %s", back.Color(Background), th.Color(Background))
	}
}

func TestSlotsForCoversEverySlotOnce(t *testing.T) {
	seen := make(map[Slot]Role)
	for _, r := range Roles() {
		slots := SlotsFor(r)
		if len(slots) == 0 {
			t.Errorf("SlotsFor(%s) is empty", r)
		}
		for _, s := range slots {
			if prev, ok := seen[s]; ok {
				t.Errorf("slot %s claimed by %s and %s", s, prev, r)
			}
			seen[s] = r
		}
	}
	if len(seen) != len(Slots()) {
		t.Errorf("SlotsFor covers %d slots, want %d", len(seen), len(Slots()))
	}

	// The first slot carries the origin color unchanged.
	th, err := GenerateFrom(seedColors(t, referenceSeed), Meta{})
	if err != nil {
		t.Fatal(err)
	}
	o := Unmap(th)
	for _, r := range Roles() {
		if got := th.Color(SlotsFor(r)[0]); got != o.Color(r) {
			t.Errorf("SlotsFor(%s)[0] = %s, want origin color %s", r, got, o.Color(r))
		}
	}
}
