package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/jsvensson/themeswap"
	"github.com/jsvensson/themeswap/internal/config"
	"github.com/jsvensson/themeswap/internal/theme"
)

var (
	flagConfig  string
	flagVerbose int
	cfg         = config.Default()
	version     = "dev" // Injected at build time via ldflags
)

var log = commonlog.GetLogger("themeswap.cli")

var rootCmd = &cobra.Command{
	Use:               "themeswap",
	Short:             "Generate and convert editor color themes from ten origin colors",
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default is the user config dir)")
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity (can be repeated)")
	rootCmd.AddCommand(versionCmd)
}

// setup configures logging and loads the config file before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	commonlog.Configure(flagVerbose, nil)

	path := flagConfig
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			log.Warningf("using default config: %s", err)
			return nil
		}
		path = p
	}

	c, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config %s: %w", path, err)
	}
	cfg = c
	log.Debugf("config %s: default format %s, %d jobs", path, cfg.Format(), cfg.Jobs)
	return nil
}

// targetFormat parses a --to flag, falling back to the configured default.
func targetFormat(name string) (theme.Format, error) {
	if name == "" {
		return cfg.Format(), nil
	}
	return theme.ParseFormat(name)
}

// coerceOptions returns the conversion options taken from the config.
func coerceOptions() []themeswap.Option {
	return []themeswap.Option{themeswap.WithXcodeOptions(cfg.XcodeOptions())}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", describe(err))
		os.Exit(1)
	}
}
