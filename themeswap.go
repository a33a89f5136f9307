// Package themeswap converts editor color themes between Xcode, TextMate
// and Visual Studio Code through a format-agnostic intermediate theme,
// and generates complete themes from ten seed colors.
package themeswap

import (
	"errors"
	"fmt"

	"github.com/jsvensson/themeswap/internal/parser"
	"github.com/jsvensson/themeswap/internal/textmate"
	"github.com/jsvensson/themeswap/internal/theme"
	"github.com/jsvensson/themeswap/internal/vscode"
	"github.com/jsvensson/themeswap/internal/xcode"
)

// ErrUnsupported is returned when a theme or target format has no
// conversion.
var ErrUnsupported = errors.New("unsupported theme format")

// Theme is any theme model: the intermediate theme or one of the
// format-specific projections.
type Theme interface {
	Format() theme.Format
	ThemeName() string
}

type options struct {
	xcode xcode.Options
}

// Option configures Coerce.
type Option func(*options)

// WithXcodeOptions sets the font and spacing written into Xcode themes.
func WithXcodeOptions(o xcode.Options) Option {
	return func(opts *options) {
		opts.xcode = o
	}
}

// CoerceToIntermediate converts any supported theme model into the
// intermediate theme.
func CoerceToIntermediate(t Theme) (theme.Intermediate, error) {
	switch v := t.(type) {
	case theme.Intermediate:
		return v, nil
	case *theme.Intermediate:
		if v == nil {
			return theme.Intermediate{}, fmt.Errorf("%w: nil %T", ErrUnsupported, t)
		}
		return *v, nil
	case xcode.Theme:
		return xcode.ToIntermediate(v)
	case textmate.Theme:
		return textmate.ToIntermediate(v)
	case vscode.Theme:
		return vscode.ToIntermediate(v)
	default:
		return theme.Intermediate{}, fmt.Errorf("%w: %T", ErrUnsupported, t)
	}
}

// Coerce converts t into the model for the target format. A theme that
// is already in the target format is returned unchanged.
func Coerce(t Theme, to theme.Format, opts ...Option) (Theme, error) {
	o := options{xcode: xcode.DefaultOptions()}
	for _, opt := range opts {
		opt(&o)
	}

	if p, ok := t.(*theme.Intermediate); t == nil || ok && p == nil {
		return nil, fmt.Errorf("%w: nil theme", ErrUnsupported)
	}
	if t.Format() == to {
		if _, err := CoerceToIntermediate(t); err != nil {
			return nil, err
		}
		return t, nil
	}

	im, err := CoerceToIntermediate(t)
	if err != nil {
		return nil, err
	}

	switch to {
	case theme.FormatIntermediate:
		return im, nil
	case theme.FormatXcode:
		return xcode.FromIntermediate(im, o.xcode), nil
	case theme.FormatTextMate:
		return textmate.FromIntermediate(im), nil
	case theme.FormatVSCode:
		return vscode.FromIntermediate(im), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, to)
	}
}

// LoadSeed parses a seed file and generates its theme.
func LoadSeed(path string) (theme.Intermediate, error) {
	seed, err := parser.Parse(path)
	if err != nil {
		return theme.Intermediate{}, fmt.Errorf("loading seed: %w", err)
	}
	return seed.Theme(), nil
}
