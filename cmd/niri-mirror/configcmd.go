package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yourusername/niri-mirror/internal/config"
)

var configForce bool

// configCmd groups the config subcommands. It loads the config itself so
// that an invalid file can still be shown and validated.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show, create or validate the configuration file",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupOutput()
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}

		format := "yaml"
		if jsonOutput {
			format = "json"
		}
		data, err := loaded.Marshal(format)
		if err != nil {
			return err
		}
		os.Stdout.Write(data)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.GetConfigPath()
		}
		if err := config.WriteDefault(path, configForce); err != nil {
			return err
		}
		printSuccess("Wrote %s", path)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.GetConfigPath()
		}
		if _, err := config.LoadConfig(configPath); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		keyColor.Print("Config: ")
		fmt.Println(path)
		printSuccess("Configuration is valid")
		return nil
	},
}
