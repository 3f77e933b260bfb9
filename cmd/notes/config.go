package main

import (
	"fmt"
	"os"
	"path/filepath"

	"notetaker/internal/shared"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write the effective client config to --config",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if configPath == "" {
			fatal("Error saving config", errors.New("no --config path"))
		}
		cfg := loadClientConfig()
		if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
			fatal("Error creating config dir", err)
		}
		if err := shared.SaveClientConfig(configPath, cfg); err != nil {
			fatal("Error saving config", err)
		}
		fmt.Println("Saved", configPath)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
