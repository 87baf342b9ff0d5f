package cli

import (
	"github.com/spf13/cobra"
)

var analyticsJSON bool

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show usage analytics (admin)",
	Args:  cobra.NoArgs,
	RunE:  runAnalytics,
}

func init() {
	analyticsCmd.Flags().BoolVar(&analyticsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(analyticsCmd)
}

func runAnalytics(cmd *cobra.Command, _ []string) error {
	if adminService == nil {
		return errNoAdminService
	}

	a, err := adminService.Analytics(cmd.Context())
	if err != nil {
		return err
	}
	if analyticsJSON {
		return printJSON(cmd, a)
	}

	cmd.Println("Totals:")
	cmd.Printf("  Documents: %d\n", a.TotalDocuments)
	cmd.Printf("  Users:     %d\n", a.TotalUsers)
	cmd.Printf("  Sources:   %d\n", a.TotalSources)

	if len(a.TopViewedDocuments) > 0 {
		cmd.Println()
		cmd.Println("Most viewed documents:")
		for _, d := range a.TopViewedDocuments {
			cmd.Printf("  %6d  [%d] %s\n", d.Views, d.ID, d.Title)
		}
	}
	if len(a.TopSearchQueries) > 0 {
		cmd.Println()
		cmd.Println("Top searches:")
		for _, q := range a.TopSearchQueries {
			cmd.Printf("  %6d  %s\n", q.Count, q.Query)
		}
	}
	if len(a.RecentActivity) > 0 {
		cmd.Println()
		cmd.Println("Recent activity:")
		for _, e := range a.RecentActivity {
			cmd.Printf("  %s  %s\n", e.CreatedAt, e.Type)
		}
	}
	return nil
}
