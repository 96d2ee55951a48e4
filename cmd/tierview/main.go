package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "tierview",
	Short: "Web console for browsing a tiered distributed file namespace",
	Long: `TierView serves a web console over the metadata and content stores of a
tiered distributed filesystem: directory listings with pagination, file
previews, and per-file block locations across storage tiers.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to config file (default: $XDG_CONFIG_HOME/tierview/config.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
