package format

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/jsvensson/themeswap/internal/color"
	"github.com/jsvensson/themeswap/internal/theme"
	"github.com/zclconf/go-cty/cty"
)

// Seed renders a seed file for the given origin colors. Colors that are
// exactly representable in hex are written as hex, all others as float
// RGBA, so parsing the output yields the same origin.
func Seed(meta theme.Meta, origin theme.OriginColors) string {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	if meta.Name != "" || meta.Author != "" {
		m := body.AppendNewBlock("meta", nil).Body()
		if meta.Name != "" {
			m.SetAttributeValue("name", cty.StringVal(meta.Name))
		}
		if meta.Author != "" {
			m.SetAttributeValue("author", cty.StringVal(meta.Author))
		}
		body.AppendNewline()
	}

	o := body.AppendNewBlock("origin", nil).Body()
	for _, r := range theme.Roles() {
		o.SetAttributeValue(r.String(), cty.StringVal(seedColor(origin.Color(r))))
	}

	out, _ := Format(string(f.Bytes()))
	return out
}

func seedColor(c color.Color) string {
	if back, err := color.ParseHex(c.Hex()); err == nil && back == c {
		return c.Hex()
	}
	return c.FloatRGBA()
}
