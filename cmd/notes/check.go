package main

import (
	"context"
	"fmt"

	"notetaker/internal/server"
	"notetaker/internal/shared"

	"github.com/spf13/cobra"
)

var checkServerConfig string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Open the configured store directly and count its notes",
	Long: `Check reads the server configuration (yaml file plus PORT/NOTES_* env vars),
opens the notes document without going through HTTP and reports how many
notes it holds. It fails if the document is missing or malformed.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := shared.LoadServerConfig(checkServerConfig)
		if err != nil {
			fatal("Error loading server config", err)
		}
		store, closeStore, err := server.OpenStore(cfg)
		if err != nil {
			fatal("Error opening store", err)
		}
		defer closeStore()

		n, err := server.NewNoteService(store).Count(context.Background())
		if err != nil {
			fatal("Error reading notes", err)
		}
		fmt.Println("Store:", cfg.Store, cfg.DBPath)
		fmt.Println("Notes:", n)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkServerConfig, "server-config", "", "path to server config yaml")
}
