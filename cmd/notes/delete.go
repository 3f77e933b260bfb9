package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a note by id",
	Long:    `Delete removes the note with the given id. Unknown ids are not an error.`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		msg, err := newClient().Delete(context.Background(), args[0])
		if err != nil {
			fatal("Error deleting note", err)
		}
		fmt.Println(msg)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
