package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsvensson/themeswap/internal/color"
)

var (
	flagCount int
	flagSkew  string
)

var colorCmd = &cobra.Command{
	Use:   "color <color>...",
	Short: "Print a color in every notation",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runColor,
}

var cascadeCmd = &cobra.Command{
	Use:   "cascade <color>",
	Short: "Print a run of colors stepping lighter or darker",
	Args:  cobra.ExactArgs(1),
	RunE:  runCascade,
}

func init() {
	cascadeCmd.Flags().IntVarP(&flagCount, "count", "n", 5, "number of colors")
	cascadeCmd.Flags().StringVar(&flagSkew, "skew", "lighter", "direction: lighter or darker")
	rootCmd.AddCommand(colorCmd, cascadeCmd)
}

func runColor(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	for i, arg := range args {
		c, err := color.Parse(arg)
		if err != nil {
			return fmt.Errorf("parsing %q: %w", arg, err)
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		h, s, l := c.HSL()
		fmt.Fprintf(w, "hex         %s\n", c.Hex())
		fmt.Fprintf(w, "float       %s\n", c.FloatRGBA())
		fmt.Fprintf(w, "hsl         %.1f %.3f %.3f\n", h*360, s, l)
		fmt.Fprintf(w, "brightness  %.3f\n", c.Brightness())
		fmt.Fprintf(w, "dark        %t\n", c.IsDark())
	}
	return nil
}

func runCascade(cmd *cobra.Command, args []string) error {
	c, err := color.Parse(args[0])
	if err != nil {
		return fmt.Errorf("parsing %q: %w", args[0], err)
	}

	var skew color.Skew
	switch strings.ToLower(flagSkew) {
	case "lighter":
		skew = color.Lighter
	case "darker":
		skew = color.Darker
	default:
		return fmt.Errorf("unknown skew %q (valid: lighter, darker)", flagSkew)
	}
	if flagCount < 1 {
		return fmt.Errorf("count must be at least 1, got %d", flagCount)
	}

	for _, step := range color.Cascade(c, flagCount, skew) {
		fmt.Fprintln(cmd.OutOrStdout(), step.Hex())
	}
	return nil
}
