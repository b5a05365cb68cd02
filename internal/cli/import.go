package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wedding-seating/go-seating-backend/internal/seating/state"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import a guest list CSV",
	Long: `Replace the project's roster and the active layout's placements from a CSV
file, then save the result back to the server. Existing tables are kept and
tables referenced by the CSV are created as needed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		projectID := resolveProjectID()
		client := newAPIClient(flagServer)
		ctx := context.Background()

		p, err := client.fetchProject(ctx, projectID)
		if err != nil {
			return err
		}

		st := state.New(p)
		if !st.ImportCSV(string(data)) {
			return fmt.Errorf("no usable guest rows in %s", args[0])
		}

		updatedAt, err := client.putProject(ctx, projectID, st.Snapshot())
		if err != nil {
			return err
		}

		stats := st.Stats()
		fmt.Printf("Imported %d guests (%d placed), saved at %s\n", stats.Total, stats.Placed, updatedAt)
		return nil
	},
}
