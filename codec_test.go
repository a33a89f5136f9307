package themeswap

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jsvensson/themeswap/internal/textmate"
	"github.com/jsvensson/themeswap/internal/theme"
	"github.com/jsvensson/themeswap/internal/vscode"
	"github.com/jsvensson/themeswap/internal/xcode"
)

func TestEncodeDecode(t *testing.T) {
	src := testTheme(t)

	for _, f := range theme.Formats() {
		t.Run(f.String(), func(t *testing.T) {
			projected, err := Coerce(src, f)
			if err != nil {
				t.Fatal(err)
			}
			data, err := Encode(projected)
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}

			detected, ok := theme.DetectFormat(data)
			if !ok || detected != f {
				t.Errorf("DetectFormat() = %v, %v; want %v", detected, ok, f)
			}

			decoded, err := Decode(data, f)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			want, _ := CoerceToIntermediate(projected)
			got, err := CoerceToIntermediate(decoded)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(hexColors(want), hexColors(got)); diff != "" {
				t.Errorf("colors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeIntermediateIsExact(t *testing.T) {
	src := testTheme(t)
	data, err := Encode(src)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeAuto(data)
	if err != nil {
		t.Fatalf("DecodeAuto() error: %v", err)
	}
	got := decoded.(theme.Intermediate)
	for _, s := range theme.Slots() {
		if got.Color(s) != src.Color(s) {
			t.Errorf("slot %s = %s, want %s", s, got.Color(s).FloatRGBA(), src.Color(s).FloatRGBA())
		}
	}
}

func TestEncodePlistHeader(t *testing.T) {
	data, err := Encode(textmate.FromIntermediate(testTheme(t)))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("<?xml")) {
		t.Errorf("plist output does not start with XML header: %q", data[:20])
	}
}

func TestDecodeErrors(t *testing.T) {
	v := vscode.FromIntermediate(testTheme(t))
	v.TokenColors = v.TokenColors[:3]
	incomplete, err := Encode(v)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		data    []byte
		format  theme.Format
		wantErr error
	}{
		{"malformed json", []byte(`{"name":`), theme.FormatVSCode, nil},
		{"malformed plist", []byte(`<plist><dict><key>`), theme.FormatTextMate, nil},
		{"missing rule", incomplete, theme.FormatVSCode, vscode.ErrMissingRule},
		{"empty xcode", []byte(`<plist><dict></dict></plist>`), theme.FormatXcode, xcode.ErrMissingKey},
		{"unknown format", []byte(`{}`), theme.Format(7), ErrUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data, tt.format)
			if err == nil {
				t.Fatal("expected error")
			}
			var ce *CodingError
			if !errors.As(err, &ce) {
				t.Fatalf("error %v is not a *CodingError", err)
			}
			if ce.Op != "decode" || ce.Format != tt.format {
				t.Errorf("CodingError = %+v", ce)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want wrapping %v", err, tt.wantErr)
			}
		})
	}
}

func TestCodingErrorMessage(t *testing.T) {
	tests := []struct {
		err  *CodingError
		want string
	}{
		{
			&CodingError{Op: "decode", Format: theme.FormatVSCode, Name: "Night", Err: errors.New("boom")},
			`decode vscode theme "Night": boom`,
		},
		{
			&CodingError{Op: "encode", Format: theme.FormatXcode, Err: errors.New("boom")},
			`encode xcode theme: boom`,
		},
		{
			&CodingError{Op: "detect", Err: ErrUnknownFormat},
			`detect theme: unrecognized theme format`,
		},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestDecodeAutoUnknown(t *testing.T) {
	_, err := DecodeAuto([]byte("just some text"))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("DecodeAuto() error = %v, want ErrUnknownFormat", err)
	}
}

func TestWriteLoadFile(t *testing.T) {
	dir := t.TempDir()
	src := testTheme(t)

	for _, f := range theme.Formats() {
		t.Run(f.String(), func(t *testing.T) {
			projected, err := Coerce(src, f)
			if err != nil {
				t.Fatal(err)
			}
			path := filepath.Join(dir, FileName(projected, "untitled"))
			if err := WriteFile(path, projected); err != nil {
				t.Fatalf("WriteFile() error: %v", err)
			}

			loaded, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile() error: %v", err)
			}
			if loaded.Format() != f {
				t.Errorf("Format() = %v, want %v", loaded.Format(), f)
			}
			if loaded.ThemeName() != "Dark Modern" {
				t.Errorf("ThemeName() = %q, want %q", loaded.ThemeName(), "Dark Modern")
			}
		})
	}
}

func TestLoadFileExtensionFallback(t *testing.T) {
	// A VSCode theme missing editor.foreground cannot be sniffed, so the
	// extension decides and decoding reports the missing color.
	v := vscode.FromIntermediate(testTheme(t))
	delete(v.Colors, "editor.foreground")
	data, err := Encode(v)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	_, err = LoadFile(path)
	if !errors.Is(err, vscode.ErrMissingRule) {
		t.Errorf("LoadFile() error = %v, want ErrMissingRule", err)
	}

	unknown := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(unknown, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(unknown); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("LoadFile(txt) error = %v, want ErrUnknownFormat", err)
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name string
		t    Theme
		want string
	}{
		{"named vscode", vscode.Theme{Name: "Night Owl"}, "Night Owl.json"},
		{"unnamed xcode", xcode.Theme{}, "untitled.xccolortheme"},
		{"slash", textmate.Theme{Name: "a/b"}, "a-b.tmTheme"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileName(tt.t, "untitled"); got != tt.want {
				t.Errorf("FileName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadFileXcodeNameFromPath(t *testing.T) {
	x := xcode.FromIntermediate(testTheme(t), xcode.DefaultOptions())
	x.Name = ""
	path := filepath.Join(t.TempDir(), "Midnight.xccolortheme")
	if err := WriteFile(path, x); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if !strings.EqualFold(loaded.ThemeName(), "Midnight") {
		t.Errorf("ThemeName() = %q, want Midnight", loaded.ThemeName())
	}
}
