package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsvensson/themeswap"
	"github.com/jsvensson/themeswap/internal/color"
	"github.com/jsvensson/themeswap/internal/engine"
	"github.com/jsvensson/themeswap/internal/format"
	"github.com/jsvensson/themeswap/internal/theme"
)

var (
	flagSeed      string
	flagColors    []string
	flagTo        string
	flagOut       string
	flagName      string
	flagAuthor    string
	flagTemplates string
	flagOnly      []string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a theme from a seed file or ten origin colors",
	Long: `Generate a theme from a seed file or from ten origin colors given in role order:
background, foreground, keywords, reference_types, value_types, functions,
constants, variables, strings, numbers.`,
	Example: `  themeswap generate --seed dark.hcl --to xcode
  themeswap generate --colors '#1E1E1E,#D4D4D4,#C586C0,#4EC9B0,#569CD6,#DCDCAA,#4FC1FF,#9CDCFE,#CE9178,#B5CEA8' --name Dark`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

var unmapCmd = &cobra.Command{
	Use:   "unmap <theme-file>",
	Short: "Recover the origin colors of a theme as a seed file",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnmap,
}

var renderCmd = &cobra.Command{
	Use:   "render <seed-or-theme-file>",
	Short: "Render Go templates with the colors of a theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	generateCmd.Flags().StringVar(&flagSeed, "seed", "", "path to seed HCL file")
	generateCmd.Flags().StringSliceVar(&flagColors, "colors", nil, "ten comma-separated origin colors")
	generateCmd.Flags().StringVar(&flagTo, "to", "", "output format (default from config)")
	generateCmd.Flags().StringVar(&flagOut, "out", "", "output directory (default from config)")
	generateCmd.Flags().StringVar(&flagName, "name", "", "theme name")
	generateCmd.Flags().StringVar(&flagAuthor, "author", "", "theme author (default from config)")
	generateCmd.MarkFlagsMutuallyExclusive("seed", "colors")
	generateCmd.MarkFlagsOneRequired("seed", "colors")

	unmapCmd.Flags().StringVar(&flagOut, "out", "", "write the seed to this file instead of stdout")

	renderCmd.Flags().StringVar(&flagTemplates, "templates", "", "templates directory (default from config)")
	renderCmd.Flags().StringVar(&flagOut, "out", "", "output directory (default from config)")
	renderCmd.Flags().StringArrayVar(&flagOnly, "only", nil, "render only these templates (can be repeated)")

	rootCmd.AddCommand(generateCmd, unmapCmd, renderCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	to, err := targetFormat(flagTo)
	if err != nil {
		return err
	}

	var im theme.Intermediate
	if flagSeed != "" {
		im, err = themeswap.LoadSeed(flagSeed)
	} else {
		im, err = generateFromColors(flagColors)
	}
	if err != nil {
		return err
	}

	meta := im.Meta
	if flagName != "" {
		meta.Name = flagName
	}
	if flagAuthor != "" {
		meta.Author = flagAuthor
	} else if meta.Author == "" {
		meta.Author = cfg.Author
	}
	im = im.WithMeta(meta)

	out, err := themeswap.Coerce(im, to, coerceOptions()...)
	if err != nil {
		return err
	}

	path, err := writeTheme(out, outputDir(), "theme")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// generateFromColors parses the --colors values and models a theme.
func generateFromColors(values []string) (theme.Intermediate, error) {
	colors := make([]color.Color, 0, len(values))
	for _, v := range values {
		c, err := color.Parse(strings.TrimSpace(v))
		if err != nil {
			return theme.Intermediate{}, fmt.Errorf("parsing --colors: %w", err)
		}
		colors = append(colors, c)
	}
	return theme.GenerateFrom(colors, theme.Meta{})
}

func runUnmap(cmd *cobra.Command, args []string) error {
	im, err := loadIntermediate(args[0])
	if err != nil {
		return err
	}

	seed := format.Seed(im.Meta, theme.Unmap(im))
	if flagOut == "" {
		fmt.Fprint(cmd.OutOrStdout(), seed)
		return nil
	}
	if err := os.WriteFile(flagOut, []byte(seed), 0o644); err != nil {
		return fmt.Errorf("writing seed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), flagOut)
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	im, err := loadIntermediate(args[0])
	if err != nil {
		return err
	}

	templates := flagTemplates
	if templates == "" {
		templates = cfg.TemplatesDir
	}
	e := &engine.Engine{
		TemplatesDir: templates,
		OutputDir:    outputDir(),
		Names:        flagOnly,
	}

	written, err := e.Run(im)
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	for _, p := range written {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

// loadIntermediate reads a seed file (.hcl) or any theme file and
// returns its intermediate form.
func loadIntermediate(path string) (theme.Intermediate, error) {
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		return themeswap.LoadSeed(path)
	}
	t, err := themeswap.LoadFile(path)
	if err != nil {
		return theme.Intermediate{}, err
	}
	return themeswap.CoerceToIntermediate(t)
}

func outputDir() string {
	if flagOut != "" {
		return flagOut
	}
	return cfg.OutputDir
}

// writeTheme writes t into dir under its own name and returns the path.
func writeTheme(t themeswap.Theme, dir, fallback string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(dir, themeswap.FileName(t, fallback))
	if err := themeswap.WriteFile(path, t); err != nil {
		return "", err
	}
	return path, nil
}
