package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/gridlock-labs/lattice/internal/model"
	"github.com/gridlock-labs/lattice/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printItemTable(item *model.WorkItem) {
	fmt.Printf("ID:         %s\n", item.ID)
	fmt.Printf("Workspace:  %s\n", item.WorkspaceID)
	fmt.Printf("Name:       %s\n", item.Name)
	if item.Category != "" {
		fmt.Printf("Category:   %s\n", item.Category)
	}
	fmt.Printf("Status:     %s\n", ui.RenderStatus(item.Status))
	if item.Duration > 0 {
		fmt.Printf("Duration:   %g\n", item.Duration)
	} else {
		fmt.Printf("Duration:   %s\n", ui.RenderMuted("no estimate"))
	}
	if item.DueAt != nil {
		fmt.Printf("Due At:     %s\n", item.DueAt.Format("2006-01-02 15:04:05"))
	}
	if item.CreatedBy != "" {
		fmt.Printf("Created By: %s\n", item.CreatedBy)
	}
	if !item.CreatedAt.IsZero() {
		fmt.Printf("Created At: %s\n", item.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if !item.UpdatedAt.IsZero() {
		fmt.Printf("Updated At: %s\n", item.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
}

func printItemListTable(items []*model.WorkItem, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tDURATION\tNAME")
	for _, it := range items {
		name := it.Name
		if len(name) > 50 {
			name = name[:47] + "..."
		}
		duration := fmt.Sprintf("%g", it.Duration)
		if it.Duration <= 0 {
			duration = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			it.ID,
			ui.RenderStatus(it.Status),
			duration,
			name,
		)
	}
	w.Flush()
	fmt.Printf("\n%d items (%d total)\n", len(items), total)
}

func printLinkListTable(links []*model.Link) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tTARGET\tKIND")
	for _, l := range links {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.ID, l.SourceID, l.TargetID, l.Kind)
	}
	w.Flush()
	fmt.Printf("\n%d links\n", len(links))
}

func printReportTable(report *model.AnalysisReport) {
	fmt.Println(ui.RenderAccent("Critical path"))
	if len(report.CriticalPath.Items) == 0 {
		fmt.Println("  (empty)")
	} else {
		fmt.Printf("  %s  (total duration %g)\n",
			strings.Join(report.CriticalPath.Items, " -> "),
			report.CriticalPath.TotalDuration)
	}

	fmt.Println(ui.RenderAccent("Bottlenecks"))
	if len(report.Bottlenecks) == 0 {
		fmt.Println("  none")
	} else {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  ITEM\tBLOCKED\tSEVERITY")
		for _, b := range report.Bottlenecks {
			fmt.Fprintf(w, "  %s\t%d\t%s\n", b.ItemID, b.BlockedCount, ui.RenderSeverity(b.Severity))
		}
		w.Flush()
	}

	fmt.Println(ui.RenderAccent("Circular dependencies"))
	if len(report.CircularDependencies) == 0 {
		fmt.Println("  none")
	} else {
		for _, c := range report.CircularDependencies {
			fmt.Printf("  %s\n", strings.Join(c, " -> "))
		}
	}

	fmt.Println(ui.RenderAccent("Link health"))
	if len(report.EdgeHealth) == 0 {
		fmt.Println("  no blocking links")
	} else {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  LINK\tTIER")
		for _, h := range report.EdgeHealth {
			fmt.Fprintf(w, "  %s\t%s\n", h.LinkID, ui.RenderTier(h.Tier))
		}
		w.Flush()
	}

	fmt.Println(ui.RenderAccent("Orphaned items"))
	if len(report.OrphanedItems) == 0 {
		fmt.Println("  none")
	} else {
		fmt.Printf("  %s\n", strings.Join(report.OrphanedItems, ", "))
	}
}

func printSummaryTable(summary *model.DashboardSummary) {
	fmt.Printf("Items:               %d\n", summary.TotalItems)
	for _, status := range []model.Status{
		model.StatusNotStarted,
		model.StatusInProgress,
		model.StatusBlocked,
		model.StatusReview,
		model.StatusCompleted,
	} {
		if n := summary.ItemsByStatus[status]; n > 0 {
			fmt.Printf("  %-18s %d\n", ui.RenderStatus(status), n)
		}
	}
	fmt.Printf("Links:               %d\n", summary.TotalLinks)
	fmt.Printf("  %-18s %d\n", ui.RenderTier(model.TierHealthy), summary.HealthyLinks)
	fmt.Printf("  %-18s %d\n", ui.RenderTier(model.TierAtRisk), summary.AtRiskLinks)
	fmt.Printf("  %-18s %d\n", ui.RenderTier(model.TierBlocked), summary.BlockedLinks)
	fmt.Printf("Cycles:              %d\n", summary.CycleCount)
	fmt.Printf("Orphans:             %d\n", summary.OrphanCount)
	fmt.Printf("Critical path:       %g\n", summary.PathLength)
}

// requireWorkspace exits with an error unless --workspace (or
// LATTICE_WORKSPACE) is set.
func requireWorkspace() string {
	if workspace == "" {
		fmt.Fprintln(os.Stderr, "Error: workspace is required (use --workspace or LATTICE_WORKSPACE)")
		os.Exit(1)
	}
	return workspace
}
