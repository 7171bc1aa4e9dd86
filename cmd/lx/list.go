package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridlock-labs/lattice/internal/client"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List work items",
	GroupID: "items",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetStringSlice("status")
		category, _ := cmd.Flags().GetStringSlice("category")
		search, _ := cmd.Flags().GetString("search")
		sortFlag, _ := cmd.Flags().GetString("sort")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		resp, err := latticeClient.ListItems(context.Background(), &client.ListItemsRequest{
			WorkspaceID: workspace,
			Status:      status,
			Category:    category,
			Search:      search,
			Sort:        sortFlag,
			Limit:       limit,
			Offset:      offset,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(resp.Items)
		} else {
			printItemListTable(resp.Items, resp.Total)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringSlice("status", nil, "filter by status (comma separated)")
	listCmd.Flags().StringSlice("category", nil, "filter by category (comma separated)")
	listCmd.Flags().String("search", "", "substring match on name")
	listCmd.Flags().String("sort", "", "sort order (e.g. created_at, -updated_at)")
	listCmd.Flags().Int("limit", 100, "maximum items to return")
	listCmd.Flags().Int("offset", 0, "pagination offset")
}
