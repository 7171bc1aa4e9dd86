package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridlock-labs/lattice/internal/client"
)

var updateCmd = &cobra.Command{
	Use:     "update <id>",
	Short:   "Update a work item",
	GroupID: "items",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &client.UpdateItemRequest{}

		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			req.Name = &name
		}
		if cmd.Flags().Changed("category") {
			category, _ := cmd.Flags().GetString("category")
			req.Category = &category
		}
		if cmd.Flags().Changed("duration") {
			duration, _ := cmd.Flags().GetFloat64("duration")
			req.Duration = &duration
		}
		if cmd.Flags().Changed("status") {
			status, _ := cmd.Flags().GetString("status")
			req.Status = &status
		}
		if cmd.Flags().Changed("due") {
			dueStr, _ := cmd.Flags().GetString("due")
			due, err := time.Parse(time.RFC3339, dueStr)
			if err != nil {
				return fmt.Errorf("parsing --due: %w", err)
			}
			req.DueAt = &due
		}

		if req.Name == nil && req.Category == nil && req.Duration == nil && req.Status == nil && req.DueAt == nil {
			return fmt.Errorf("nothing to update: provide at least one of --name, --category, --duration, --status, --due")
		}

		item, err := latticeClient.UpdateItem(context.Background(), args[0], req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(item)
		} else {
			printItemTable(item)
		}
		return nil
	},
}

func init() {
	updateCmd.Flags().String("name", "", "new name")
	updateCmd.Flags().String("category", "", "new category")
	updateCmd.Flags().Float64("duration", 0, "new duration estimate")
	updateCmd.Flags().String("status", "", "new status")
	updateCmd.Flags().String("due", "", "new due date (RFC3339)")
}
