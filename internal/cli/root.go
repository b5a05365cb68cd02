// Package cli implements the seatctl commands: CSV import/export and stats
// against a running seating server.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/wedding-seating/go-seating-backend/internal/seating/syncer"
)

var (
	flagServer  string
	flagProject string
)

var rootCmd = &cobra.Command{
	Use:   "seatctl",
	Short: "Wedding seating project tool",
	Long:  `seatctl imports and exports seating charts as CSV and inspects project state against a running seating server.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "http://localhost:8080", "base URL of the seating server")
	rootCmd.PersistentFlags().StringVar(&flagProject, "project", "", "project id (defaults to the remembered id, or a fresh one)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statsCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// resolveProjectID applies the same provisioning order as the web client:
// explicit flag, then the remembered id file, then a fresh random id.
func resolveProjectID() string {
	ids := &syncer.FileIDStore{Path: syncer.DefaultIDStorePath()}
	c := syncer.New(nil, nil, syncer.WithIDStore(ids))
	return c.Provision(flagProject)
}
