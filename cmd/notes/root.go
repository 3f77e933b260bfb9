package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"notetaker/internal/client"
	"notetaker/internal/shared"

	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	serverURL  string
)

var rootCmd = &cobra.Command{
	Use:   "notes",
	Short: "Command line client for the note taker service",
	Long: `notes lists, adds and deletes notes through the note taker HTTP API.
The check command opens the configured store directly instead.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "info"
		if verbose {
			level = "debug"
		}
		slog.SetDefault(shared.NewLogger(os.Stderr, level))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "path to client config yaml")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server URL (overrides config)")
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "notetaker", "client.yaml")
}

func loadClientConfig() *shared.ClientConfig {
	cfg, err := shared.LoadClientConfig(configPath)
	if err != nil {
		fatal("Error loading config", err)
	}
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	slog.Debug("client config", "path", configPath, "server", cfg.ServerURL)
	return cfg
}

func newClient() *client.Client {
	return client.New(loadClientConfig())
}
