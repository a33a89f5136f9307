package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jsvensson/themeswap/internal/lsp"
)

var (
	flagVerbose int
	version     = "dev"
)

var rootCmd = &cobra.Command{
	Use:          "themeswap-lsp",
	Short:        "Language server for themeswap seed files, speaking LSP over stdio",
	Version:      version,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return lsp.NewServer(version).Run(flagVerbose)
	},
}

func init() {
	rootCmd.Flags().CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity (can be repeated)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
