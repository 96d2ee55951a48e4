package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tierview/tierview/pkg/config"
)

var forceInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the TierView configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false,
		"Overwrite an existing configuration file")

	configCmd.AddCommand(configInitCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.GetDefaultConfigPath()
	}

	if forceInit {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove existing config: %w", err)
		}
	}

	if err := config.WriteDefaultConfig(path); err != nil {
		return err
	}

	fmt.Printf("Configuration written to %s\n", path)
	return nil
}
