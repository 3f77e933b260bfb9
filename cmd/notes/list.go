package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"notetaker/internal/client"

	"github.com/spf13/cobra"
)

var listField string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		raw, err := newClient().List(context.Background())
		if err != nil {
			fatal("Error listing notes", err)
		}

		if listField == "" {
			var out bytes.Buffer
			if err := json.Indent(&out, raw, "", "  "); err != nil {
				fatal("Error formatting notes", err)
			}
			fmt.Println(out.String())
			return
		}

		ids := client.Column(raw, "id")
		values := client.Column(raw, listField)
		for i := range ids {
			fmt.Printf("%s\t%s\n", ids[i], values[i])
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listField, "field", "", "print id and this field, one note per line")
}
