package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridlock-labs/lattice/internal/client"
)

var createCmd = &cobra.Command{
	Use:     "create <name>",
	Short:   "Create a new work item",
	GroupID: "items",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws := requireWorkspace()

		category, _ := cmd.Flags().GetString("category")
		duration, _ := cmd.Flags().GetFloat64("duration")
		status, _ := cmd.Flags().GetString("status")
		dueStr, _ := cmd.Flags().GetString("due")

		req := &client.CreateItemRequest{
			WorkspaceID: ws,
			Name:        args[0],
			Category:    category,
			Duration:    duration,
			Status:      status,
			CreatedBy:   actor,
		}
		if dueStr != "" {
			due, err := time.Parse(time.RFC3339, dueStr)
			if err != nil {
				return fmt.Errorf("parsing --due: %w", err)
			}
			req.DueAt = &due
		}

		item, err := latticeClient.CreateItem(context.Background(), req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(item)
		} else {
			fmt.Printf("Created %s\n", item.ID)
			printItemTable(item)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().String("category", "", "item category")
	createCmd.Flags().Float64("duration", 0, "duration estimate (0 = no estimate)")
	createCmd.Flags().String("status", "", "initial status (default not_started)")
	createCmd.Flags().String("due", "", "due date (RFC3339)")
}
