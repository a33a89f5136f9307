package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsvensson/themeswap"
	"github.com/jsvensson/themeswap/internal/color"
	"github.com/jsvensson/themeswap/internal/textmate"
	"github.com/jsvensson/themeswap/internal/theme"
	"github.com/jsvensson/themeswap/internal/vscode"
	"github.com/jsvensson/themeswap/internal/xcode"
)

// errNotFormatted is returned by fmt --check when a file would change.
var errNotFormatted = errors.New("some files are not formatted")

// describe turns an error into a message with a hint for its kind.
// The most specific kinds are checked first, since a CodingError
// usually wraps one of the others.
func describe(err error) string {
	var hint string
	switch {
	case errors.Is(err, themeswap.ErrUnknownFormat):
		hint = "the input is not an intermediate, Xcode, TextMate or VS Code theme"
	case errors.Is(err, xcode.ErrMissingKey),
		errors.Is(err, textmate.ErrMissingRule),
		errors.Is(err, vscode.ErrMissingRule):
		hint = "the theme lacks a color needed to rebuild the origin colors"
	case errors.Is(err, theme.ErrInsufficientData):
		hint = fmt.Sprintf("exactly %d origin colors are required, in the order: %s",
			theme.OriginCount, roleNames())
	case errors.Is(err, color.ErrFormat):
		hint = `colors are written as "#RRGGBB" or as four floats "r g b a"`
	case errors.Is(err, themeswap.ErrUnsupported):
		hint = fmt.Sprintf("supported formats are %s", formatNames())
	case errors.Is(err, errNotFormatted):
		hint = "run themeswap fmt without --check to rewrite them"
	default:
		var ce *themeswap.CodingError
		if errors.As(err, &ce) {
			hint = fmt.Sprintf("the file is not valid %s", ce.Format.Encoding())
		}
	}

	if hint == "" {
		return err.Error()
	}
	return err.Error() + "\n  " + hint
}

func roleNames() string {
	names := make([]string, 0, theme.OriginCount)
	for _, r := range theme.Roles() {
		names = append(names, r.String())
	}
	return strings.Join(names, ", ")
}

func formatNames() string {
	names := make([]string, 0, len(theme.Formats()))
	for _, f := range theme.Formats() {
		names = append(names, f.String())
	}
	return strings.Join(names, ", ")
}
