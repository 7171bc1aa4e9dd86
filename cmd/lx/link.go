package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gridlock-labs/lattice/internal/client"
)

var linkCmd = &cobra.Command{
	Use:     "link",
	Short:   "Manage links between work items",
	GroupID: "links",
}

var linkAddCmd = &cobra.Command{
	Use:   "add <source-id> <target-id>",
	Short: "Add a link (source precedes or blocks target)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws := requireWorkspace()
		kind, _ := cmd.Flags().GetString("kind")

		link, err := latticeClient.AddLink(context.Background(), &client.AddLinkRequest{
			WorkspaceID: ws,
			SourceID:    args[0],
			TargetID:    args[1],
			Kind:        kind,
			CreatedBy:   actor,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(link)
		} else {
			fmt.Printf("Linked %s -> %s (%s) as %s\n", link.SourceID, link.TargetID, link.Kind, link.ID)
		}
		return nil
	},
}

var linkRemoveCmd = &cobra.Command{
	Use:     "remove <link-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a link",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := latticeClient.RemoveLink(context.Background(), args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Removed %s\n", args[0])
		return nil
	},
}

var linkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List links in the workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws := requireWorkspace()

		links, err := latticeClient.ListLinks(context.Background(), ws)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(links)
		} else {
			printLinkListTable(links)
		}
		return nil
	},
}

func init() {
	linkAddCmd.Flags().String("kind", "dependency", "link kind (dependency, blocks, complements, relates)")
	linkCmd.AddCommand(linkAddCmd)
	linkCmd.AddCommand(linkRemoveCmd)
	linkCmd.AddCommand(linkListCmd)
}
