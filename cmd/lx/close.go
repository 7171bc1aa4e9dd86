package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridlock-labs/lattice/internal/client"
	"github.com/gridlock-labs/lattice/internal/model"
)

var closeCmd = &cobra.Command{
	Use:     "close <id>...",
	Short:   "Mark one or more work items completed",
	GroupID: "items",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		completed := string(model.StatusCompleted)
		for _, id := range args {
			item, err := latticeClient.UpdateItem(context.Background(), id, &client.UpdateItemRequest{
				Status: &completed,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error closing %s: %v\n", id, err)
				os.Exit(1)
			}

			if jsonOutput {
				printJSON(item)
			} else {
				if len(args) > 1 {
					fmt.Printf("Closed %s\n", item.ID)
				} else {
					printItemTable(item)
				}
			}
		}
		return nil
	},
}
