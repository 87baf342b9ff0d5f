package cli

import (
	"github.com/spf13/cobra"
)

var jobCmd = &cobra.Command{
	Use:     "job",
	Aliases: []string{"jobs"},
	Short:   "Inspect crawl jobs (admin)",
}

var jobListCmd = &cobra.Command{
	Use:   "list",
	Short: "List crawl jobs",
	Args:  cobra.NoArgs,
	RunE:  runJobList,
}

var (
	jobSource int64
	jobJSON   bool
)

func init() {
	jobListCmd.Flags().Int64Var(&jobSource, "source", 0, "only jobs for this source id")
	jobListCmd.Flags().BoolVar(&jobJSON, "json", false, "output as JSON")
	jobCmd.AddCommand(jobListCmd)
	rootCmd.AddCommand(jobCmd)
}

func runJobList(cmd *cobra.Command, _ []string) error {
	if adminService == nil {
		return errNoAdminService
	}

	jobs, err := adminService.CrawlJobs(cmd.Context(), jobSource)
	if err != nil {
		return err
	}
	if jobJSON {
		return printJSON(cmd, jobs)
	}

	if len(jobs) == 0 {
		cmd.Println("No crawl jobs.")
		return nil
	}
	for i := range jobs {
		j := &jobs[i]
		cmd.Printf("  [%d] source %d  %-8s  created %s", j.ID, j.SourceID, j.Status, j.CreatedAt)
		if j.FinishedAt != nil {
			cmd.Printf("  finished %s", j.FinishedAt)
		}
		cmd.Println()
		if j.ErrorMessage != "" {
			cmd.Printf("      Error: %s\n", j.ErrorMessage)
		}
	}
	return nil
}
