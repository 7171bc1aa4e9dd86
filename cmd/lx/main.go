package main

import (
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gridlock-labs/lattice/internal/client"
	"github.com/gridlock-labs/lattice/internal/ui"
)

var (
	serverURL  string
	authToken  string
	workspace  string
	jsonOutput bool
	actor      string

	latticeClient client.LatticeClient
)

func defaultActor() string {
	out, err := exec.Command("git", "config", "user.name").Output()
	if err == nil {
		name := strings.TrimSpace(string(out))
		if name != "" {
			return name
		}
	}
	return "unknown"
}

func defaultServerURL() string {
	if s := os.Getenv("LATTICE_SERVER_URL"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

func defaultWorkspace() string {
	return os.Getenv("LATTICE_WORKSPACE")
}

var rootCmd = &cobra.Command{
	Use:   "lx <command>",
	Short: "CLI client for the Lattice service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}
		latticeClient = client.NewHTTPClient(serverURL, authToken)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if latticeClient != nil {
			latticeClient.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServerURL(), "Lattice server URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", os.Getenv("LATTICE_AUTH_TOKEN"), "bearer token for authenticated servers")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", defaultWorkspace(), "workspace id")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&actor, "actor", defaultActor(), "actor name for created_by fields")

	rootCmd.AddGroup(
		&cobra.Group{ID: "items", Title: "Work items:"},
		&cobra.Group{ID: "links", Title: "Links:"},
		&cobra.Group{ID: "analysis", Title: "Analysis:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	cobra.EnableCommandSorting = false

	// Work items
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(closeCmd)
	rootCmd.AddCommand(deleteCmd)

	// Links
	rootCmd.AddCommand(linkCmd)

	// Analysis
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(watchCmd)

	// System
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
