package themeswap

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	"howett.net/plist"

	"github.com/jsvensson/themeswap/internal/textmate"
	"github.com/jsvensson/themeswap/internal/theme"
	"github.com/jsvensson/themeswap/internal/vscode"
	"github.com/jsvensson/themeswap/internal/xcode"
)

var log = commonlog.GetLogger("themeswap")

// ErrUnknownFormat is returned when a file's format cannot be detected.
var ErrUnknownFormat = errors.New("unrecognized theme format")

// CodingError wraps a failure to encode or decode a theme.
type CodingError struct {
	Op     string // "encode", "decode" or "detect"
	Format theme.Format
	Name   string
	Err    error
}

func (e *CodingError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Op != "detect" {
		b.WriteString(" " + e.Format.String())
	}
	b.WriteString(" theme")
	if e.Name != "" {
		fmt.Fprintf(&b, " %q", e.Name)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *CodingError) Unwrap() error {
	return e.Err
}

// Encode serializes a theme in its format's native encoding.
func Encode(t Theme) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch t.Format().Encoding() {
	case theme.EncodingPlistXML:
		data, err = plist.MarshalIndent(t, plist.XMLFormat, "\t")
	default:
		data, err = json.MarshalIndent(t, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return nil, &CodingError{Op: "encode", Format: t.Format(), Name: t.ThemeName(), Err: err}
	}
	return data, nil
}

// Decode parses data as a theme of format f. Format-specific themes are
// checked for every rule needed to convert them.
func Decode(data []byte, f theme.Format) (Theme, error) {
	t, err := decode(data, f)
	if err != nil {
		return nil, &CodingError{Op: "decode", Format: f, Err: err}
	}
	if _, err := CoerceToIntermediate(t); err != nil {
		return nil, &CodingError{Op: "decode", Format: f, Name: t.ThemeName(), Err: err}
	}
	return t, nil
}

func decode(data []byte, f theme.Format) (Theme, error) {
	switch f {
	case theme.FormatIntermediate:
		var t theme.Intermediate
		err := json.Unmarshal(data, &t)
		return t, err
	case theme.FormatXcode:
		var t xcode.Theme
		_, err := plist.Unmarshal(data, &t)
		return t, err
	case theme.FormatTextMate:
		var t textmate.Theme
		_, err := plist.Unmarshal(data, &t)
		return t, err
	case theme.FormatVSCode:
		var t vscode.Theme
		err := json.Unmarshal(data, &t)
		return t, err
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, f)
	}
}

// DecodeAuto detects the format of data and decodes it.
func DecodeAuto(data []byte) (Theme, error) {
	f, ok := theme.DetectFormat(data)
	if !ok {
		return nil, &CodingError{Op: "detect", Err: ErrUnknownFormat}
	}
	return Decode(data, f)
}

// LoadFile reads and decodes a theme file. The format is detected from
// the content, falling back to the file extension. Xcode themes take
// their name from the file name.
func LoadFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	f, ok := theme.DetectFormat(data)
	if !ok {
		f, ok = theme.FormatForExtension(filepath.Ext(path))
		if !ok {
			return nil, &CodingError{Op: "detect", Name: path, Err: ErrUnknownFormat}
		}
	}
	log.Debugf("%s: detected %s theme", path, f)

	t, err := Decode(data, f)
	if err != nil {
		return nil, err
	}
	if x, ok := t.(xcode.Theme); ok && x.Name == "" {
		x.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		t = x
	}
	return t, nil
}

// WriteFile encodes t and writes it to path.
func WriteFile(path string, t Theme) error {
	data, err := Encode(t)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing theme file: %w", err)
	}
	log.Debugf("wrote %s theme to %s", t.Format(), path)
	return nil
}

// FileName returns a file name for t: its name, or fallback when the
// theme is unnamed, with the format's extension.
func FileName(t Theme, fallback string) string {
	name := strings.TrimSpace(t.ThemeName())
	if name == "" {
		name = fallback
	}
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == 0 {
			return '-'
		}
		return r
	}, name)
	return name + t.Format().Extension()
}
