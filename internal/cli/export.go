package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wedding-seating/go-seating-backend/internal/seating/state"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the seating chart as CSV",
	Long:  `Fetch the project from the server and write its roster and active-layout placements as CSV.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		projectID := resolveProjectID()
		client := newAPIClient(flagServer)

		p, err := client.fetchProject(context.Background(), projectID)
		if err != nil {
			return err
		}

		csv := state.New(p).ExportCSV()

		if exportOut == "" || exportOut == "-" {
			fmt.Print(csv)
			return nil
		}
		if err := os.WriteFile(exportOut, []byte(csv), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", exportOut, err)
		}
		fmt.Printf("Exported %s (%d guests)\n", exportOut, len(p.Guests))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
}
