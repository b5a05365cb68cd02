package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wedding-seating/go-seating-backend/internal/seating/state"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show project seating stats",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID := resolveProjectID()
		client := newAPIClient(flagServer)

		p, err := client.fetchProject(context.Background(), projectID)
		if err != nil {
			return err
		}

		st := state.New(p)
		stats := st.Stats()
		layout := st.ActiveLayout()

		fmt.Printf("Project: %s\n", projectID)
		fmt.Printf("Layout: %s (%d tables)\n", layout.Name, len(layout.Tables))
		fmt.Printf("Guests: %d\n", stats.Total)
		fmt.Printf("Placed: %d/%d\n", stats.Placed, stats.Total)
		fmt.Printf("Tentative: %d\n", stats.Tentative)

		for _, g := range st.Unassigned() {
			fmt.Printf("  unassigned: %s\n", g.Name)
		}
		return nil
	},
}
