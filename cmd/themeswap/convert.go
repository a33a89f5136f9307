package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jsvensson/themeswap"
	"github.com/jsvensson/themeswap/internal/theme"
)

var flagJobs int

var convertCmd = &cobra.Command{
	Use:   "convert <theme-file>...",
	Short: "Convert theme files to another format",
	Long: `Convert one or more theme files to another format. The input format is
detected from the file content. Files are converted in parallel.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

var detectCmd = &cobra.Command{
	Use:   "detect <theme-file>...",
	Short: "Print the format of theme files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDetect,
}

func init() {
	convertCmd.Flags().StringVar(&flagTo, "to", "", "output format (default from config)")
	convertCmd.Flags().StringVar(&flagOut, "out", "", "output directory (default from config)")
	convertCmd.Flags().IntVarP(&flagJobs, "jobs", "j", 0, "files converted at once (default from config)")
	rootCmd.AddCommand(convertCmd, detectCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	to, err := targetFormat(flagTo)
	if err != nil {
		return err
	}

	jobs := flagJobs
	if jobs < 1 {
		jobs = cfg.Jobs
	}
	dir := outputDir()

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobs)

	written := make([]string, len(args))
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := convertFile(path, to, dir)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			written[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, p := range written {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

// convertFile converts a single theme file into dir and returns the new path.
func convertFile(path string, to theme.Format, dir string) (string, error) {
	t, err := themeswap.LoadFile(path)
	if err != nil {
		return "", err
	}
	log.Debugf("converting %s from %s to %s", path, t.Format(), to)

	out, err := themeswap.Coerce(t, to, coerceOptions()...)
	if err != nil {
		return "", err
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return writeTheme(out, dir, stem)
}

func runDetect(cmd *cobra.Command, args []string) error {
	var failed error
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading theme file: %w", err)
		}

		f, ok := theme.DetectFormat(data)
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: unknown\n", path)
			failed = &themeswap.CodingError{Op: "detect", Name: path, Err: themeswap.ErrUnknownFormat}
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", path, f)
	}
	return failed
}
