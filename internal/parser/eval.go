package parser

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/jsvensson/themeswap/internal/color"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// ResolveColor extracts a color string from a cty.Value.
// If the value is a string, return it directly.
// If the value is an object, extract the "color" key.
func ResolveColor(val cty.Value) (string, error) {
	if val.Type() == cty.String {
		return val.AsString(), nil
	}
	if val.Type().IsObjectType() {
		if val.Type().HasAttribute("color") {
			colorVal := val.GetAttr("color")
			if colorVal.Type() == cty.String {
				return colorVal.AsString(), nil
			}
		}
		return "", fmt.Errorf("object has no 'color' attribute; reference a specific child or add a color attribute")
	}
	return "", fmt.Errorf("expected string or object with color attribute, got %s", val.Type().FriendlyName())
}

// ValueColor resolves and parses a cty.Value into a Color.
func ValueColor(val cty.Value) (color.Color, error) {
	s, err := ResolveColor(val)
	if err != nil {
		return color.Color{}, err
	}
	return color.Parse(s)
}

// NodeToCty converts a color.Node to a cty.Value for HCL evaluation context.
// Leaf nodes become strings. Nodes with children become objects, with
// "color" as a sibling key if the node has its own color. Colors are
// written as float RGBA so that chained functions lose no precision.
func NodeToCty(node *color.Node) cty.Value {
	if node.Children == nil {
		if node.Color != nil {
			return cty.StringVal(node.Color.FloatRGBA())
		}
		return cty.EmptyObjectVal
	}

	vals := make(map[string]cty.Value, len(node.Children)+1)
	if node.Color != nil {
		vals["color"] = cty.StringVal(node.Color.FloatRGBA())
	}

	keys := make([]string, 0, len(node.Children))
	for k := range node.Children {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		vals[k] = NodeToCty(node.Children[k])
	}
	return cty.ObjectVal(vals)
}

// Functions returns the color functions available in seed files.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"lighten":   makeSkewFunc(color.Lighter),
		"darken":    makeSkewFunc(color.Darker),
		"transform": makeTransformFunc(),
	}
}

// FunctionNames lists Functions() keys in a stable order.
func FunctionNames() []string {
	return []string{"darken", "lighten", "transform"}
}

// BuildEvalContext creates an HCL evaluation context with palette
// variables and the color functions.
func BuildEvalContext(palette *color.Node) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"palette": NodeToCty(palette),
		},
		Functions: Functions(),
	}
}

var colorParam = function.Parameter{
	Name:             "color",
	Type:             cty.DynamicPseudoType,
	AllowDynamicType: true,
}

// makeSkewFunc creates lighten or darken.
// Usage: lighten("#hex", 0.5) or darken(palette.color, 1)
func makeSkewFunc(skew color.Skew) function.Function {
	return function.New(&function.Spec{
		Description: fmt.Sprintf("Applies the %s preset to a color, scaled by the modifier", skew),
		Params: []function.Parameter{
			colorParam,
			{Name: "modifier", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := ValueColor(args[0])
			if err != nil {
				return cty.NilVal, err
			}
			m, _ := args[1].AsBigFloat().Float64()
			return cty.StringVal(color.Skewed(c, skew, m).FloatRGBA()), nil
		},
	})
}

// makeTransformFunc creates transform.
// Usage: transform(palette.color, 0, -0.1, 0.2)
func makeTransformFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Adds hue, saturation and lightness offsets to a color",
		Params: []function.Parameter{
			colorParam,
			{Name: "hue", Type: cty.Number},
			{Name: "saturation", Type: cty.Number},
			{Name: "lightness", Type: cty.Number},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := ValueColor(args[0])
			if err != nil {
				return cty.NilVal, err
			}
			var d [3]float64
			for i := range d {
				d[i], _ = args[i+1].AsBigFloat().Float64()
			}
			return cty.StringVal(color.Transform(c, color.Delta{H: d[0], S: d[1], L: d[2]}).FloatRGBA()), nil
		},
	})
}
