package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:     "analyze",
	Short:   "Run dependency analysis on the workspace",
	GroupID: "analysis",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws := requireWorkspace()

		report, err := latticeClient.Analyze(context.Background(), ws)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(report)
		} else {
			printReportTable(report)
		}
		return nil
	},
}

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Short:   "Show workspace summary counts",
	GroupID: "analysis",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws := requireWorkspace()

		summary, err := latticeClient.Dashboard(context.Background(), ws)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(summary)
		} else {
			printSummaryTable(summary)
		}
		return nil
	},
}

var graphCmd = &cobra.Command{
	Use:     "graph",
	Short:   "Dump the raw workspace snapshot (items and links)",
	GroupID: "analysis",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws := requireWorkspace()

		snap, err := latticeClient.GetGraph(context.Background(), ws)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(snap)
		} else {
			printItemListTable(snap.Items, len(snap.Items))
			fmt.Println()
			printLinkListTable(snap.Links)
		}
		return nil
	},
}
