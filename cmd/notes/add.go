package main

import (
	"context"
	"fmt"

	"notetaker/internal/client"
	"notetaker/internal/shared"

	"github.com/spf13/cobra"
)

var addJSON string

var addCmd = &cobra.Command{
	Use:   "add [key=value...]",
	Short: "Create a note",
	Long: `Add creates a note from key=value pairs, or from a JSON object given
with --json. The server assigns the id.`,
	Run: func(cmd *cobra.Command, args []string) {
		var fields map[string]any
		var err error
		if addJSON != "" {
			fields, err = shared.DecodeFields([]byte(addJSON))
		} else {
			fields, err = client.ParseFields(args)
		}
		if err != nil {
			fatal("Error reading note fields", err)
		}

		note, err := newClient().Create(context.Background(), fields)
		if err != nil {
			fatal("Error creating note", err)
		}
		b, err := shared.MarshalCompact(note)
		if err != nil {
			fatal("Error encoding note", err)
		}
		fmt.Println(string(b))
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addJSON, "json", "", "note fields as a JSON object")
}
