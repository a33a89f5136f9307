package theme

import (
	"bytes"
	"fmt"
	"strings"
)

// Format identifies which projection a theme model belongs to.
type Format int

const (
	FormatIntermediate Format = iota
	FormatXcode
	FormatTextMate
	FormatVSCode
)

// Encoding is the serialization used for a format on disk.
type Encoding int

const (
	EncodingJSON Encoding = iota
	EncodingPlistXML
)

func (e Encoding) String() string {
	if e == EncodingPlistXML {
		return "plist-xml"
	}
	return "json"
}

// Formats returns every known format.
func Formats() []Format {
	return []Format{FormatIntermediate, FormatXcode, FormatTextMate, FormatVSCode}
}

func (f Format) String() string {
	switch f {
	case FormatIntermediate:
		return "intermediate"
	case FormatXcode:
		return "xcode"
	case FormatTextMate:
		return "textmate"
	case FormatVSCode:
		return "vscode"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Extension returns the default file extension, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatXcode:
		return ".xccolortheme"
	case FormatTextMate:
		return ".tmTheme"
	case FormatVSCode:
		return ".json"
	default:
		return ".tstheme"
	}
}

// Encoding returns the default serialization for the format.
func (f Format) Encoding() Encoding {
	switch f {
	case FormatXcode, FormatTextMate:
		return EncodingPlistXML
	default:
		return EncodingJSON
	}
}

// ParseFormat resolves a format name or common alias.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "intermediate", "themeswap", "tstheme":
		return FormatIntermediate, nil
	case "xcode", "xccolortheme":
		return FormatXcode, nil
	case "textmate", "tmtheme", "tm":
		return FormatTextMate, nil
	case "vscode", "code", "visualstudiocode":
		return FormatVSCode, nil
	}
	return 0, fmt.Errorf("unknown theme format %q (valid: intermediate, xcode, textmate, vscode)", name)
}

// FormatForExtension maps a file extension (with or without dot) to a format.
// A bare ".json" is ambiguous and maps to vscode.
func FormatForExtension(ext string) (Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "tstheme":
		return FormatIntermediate, true
	case "xccolortheme", "dvtcolortheme":
		return FormatXcode, true
	case "tmtheme":
		return FormatTextMate, true
	case "json":
		return FormatVSCode, true
	}
	return 0, false
}

// Markers searched for by DetectFormat, in priority order.
var detectMarkers = []struct {
	marker []byte
	format Format
}{
	{[]byte(Marker), FormatIntermediate},
	{[]byte("DVTFontAndColorVersion"), FormatXcode},
	{[]byte("<key>settings</key>"), FormatTextMate},
	{[]byte("editor.foreground"), FormatVSCode},
}

// DetectFormat sniffs raw theme content for a format-specific marker.
func DetectFormat(data []byte) (Format, bool) {
	for _, m := range detectMarkers {
		if bytes.Contains(data, m.marker) {
			return m.format, true
		}
	}
	return 0, false
}
