package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

var sourceCmd = &cobra.Command{
	Use:     "source",
	Aliases: []string{"sources"},
	Short:   "Manage crawl sources (admin)",
	Long: `List, create and update the websites the backend crawls for documents.
All source commands require an admin account.

Examples:
  bdlens source create --name "Ministry of Finance" --base-url https://mof.gov.bd
  bdlens source disable 3
  bdlens source crawl 3`,
}

var sourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sources with their latest crawl",
	Args:  cobra.NoArgs,
	RunE:  runSourceList,
}

var sourceCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a source",
	Args:  cobra.NoArgs,
	RunE:  runSourceCreate,
}

var sourceUpdateCmd = &cobra.Command{
	Use:   "update [source-id]",
	Short: "Update a source",
	Long:  `Updates only the fields given as flags. Other fields are left as they are.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceUpdate,
}

var sourceEnableCmd = &cobra.Command{
	Use:   "enable [source-id]",
	Short: "Enable a source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSourceToggle(cmd, args, true)
	},
}

var sourceDisableCmd = &cobra.Command{
	Use:   "disable [source-id]",
	Short: "Disable a source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSourceToggle(cmd, args, false)
	},
}

var sourceCrawlCmd = &cobra.Command{
	Use:   "crawl [source-id]",
	Short: "Trigger a crawl",
	Long:  `Queues a crawl. Use 'bdlens job list --source <id>' to follow its progress.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSourceCrawl,
}

var (
	sourceName       string
	sourceBaseURL    string
	sourcePattern    string
	sourceScraper    string
	sourceDisabled   bool
	sourceEnabledArg bool
	sourceJSON       bool
)

func init() {
	for _, c := range []*cobra.Command{sourceCreateCmd, sourceUpdateCmd} {
		c.Flags().StringVar(&sourceName, "name", "", "display name")
		c.Flags().StringVar(&sourceBaseURL, "base-url", "", "site root to crawl")
		c.Flags().StringVar(&sourcePattern, "pattern", "", "URL pattern the crawler follows")
		c.Flags().StringVar(&sourceScraper, "scraper", "", "scraper type (simple, dncc, mopa)")
	}
	sourceCreateCmd.Flags().BoolVar(&sourceDisabled, "disabled", false, "create the source disabled")
	sourceUpdateCmd.Flags().BoolVar(&sourceEnabledArg, "enabled", true, "enable or disable the source")

	for _, c := range []*cobra.Command{sourceListCmd, sourceCreateCmd, sourceUpdateCmd, sourceEnableCmd, sourceDisableCmd, sourceCrawlCmd} {
		c.Flags().BoolVar(&sourceJSON, "json", false, "output as JSON")
	}

	sourceCmd.AddCommand(sourceListCmd)
	sourceCmd.AddCommand(sourceCreateCmd)
	sourceCmd.AddCommand(sourceUpdateCmd)
	sourceCmd.AddCommand(sourceEnableCmd)
	sourceCmd.AddCommand(sourceDisableCmd)
	sourceCmd.AddCommand(sourceCrawlCmd)
	rootCmd.AddCommand(sourceCmd)
}

func runSourceList(cmd *cobra.Command, _ []string) error {
	if adminService == nil {
		return errNoAdminService
	}

	ov, err := adminService.SourcesOverview(cmd.Context())
	if err != nil {
		return err
	}
	if sourceJSON {
		return printJSON(cmd, ov)
	}

	if len(ov.Sources) == 0 {
		cmd.Println("No sources configured.")
		cmd.Println("Use 'bdlens source create' to add one.")
		return nil
	}

	cmd.Println("Sources:")
	for i := range ov.Sources {
		src := &ov.Sources[i]
		status := "enabled"
		if !src.IsEnabled {
			status = "disabled"
		}
		cmd.Printf("  [%d] %s (%s)\n", src.ID, src.Name, status)
		cmd.Printf("      %s\n", src.BaseURL)
		if src.ScraperType != "" {
			cmd.Printf("      Scraper: %s\n", src.ScraperType)
		}
		if job := ov.LatestJob(src.ID); job != nil {
			cmd.Printf("      Last crawl: %s (job %d, %s)\n", job.Status, job.ID, job.CreatedAt)
		} else {
			cmd.Println("      Last crawl: never")
		}
	}
	return nil
}

func runSourceCreate(cmd *cobra.Command, _ []string) error {
	if adminService == nil {
		return errNoAdminService
	}

	in := domain.SourceInput{
		Name:        sourceName,
		BaseURL:     sourceBaseURL,
		URLPattern:  sourcePattern,
		ScraperType: domain.ScraperType(sourceScraper),
	}
	if sourceDisabled {
		in.IsEnabled = domain.Ptr(false)
	}

	src, err := adminService.CreateSource(cmd.Context(), in)
	if err != nil {
		return err
	}
	if sourceJSON {
		return printJSON(cmd, src)
	}
	cmd.Printf("Created source %d (%s).\n", src.ID, src.Name)
	return nil
}

func runSourceUpdate(cmd *cobra.Command, args []string) error {
	if adminService == nil {
		return errNoAdminService
	}
	id, err := parseID("source", args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	var patch domain.SourcePatch
	if flags.Changed("name") {
		patch.Name = domain.Ptr(sourceName)
	}
	if flags.Changed("base-url") {
		patch.BaseURL = domain.Ptr(sourceBaseURL)
	}
	if flags.Changed("pattern") {
		patch.URLPattern = domain.Ptr(sourcePattern)
	}
	if flags.Changed("scraper") {
		patch.ScraperType = domain.Ptr(domain.ScraperType(sourceScraper))
	}
	if flags.Changed("enabled") {
		patch.IsEnabled = domain.Ptr(sourceEnabledArg)
	}

	src, err := adminService.UpdateSource(cmd.Context(), id, patch)
	if err != nil {
		return err
	}
	if sourceJSON {
		return printJSON(cmd, src)
	}
	cmd.Printf("Updated source %d (%s).\n", src.ID, src.Name)
	return nil
}

func runSourceToggle(cmd *cobra.Command, args []string, enabled bool) error {
	if adminService == nil {
		return errNoAdminService
	}
	id, err := parseID("source", args[0])
	if err != nil {
		return err
	}

	src, err := adminService.ToggleSource(cmd.Context(), id, enabled)
	if err != nil {
		return err
	}
	if sourceJSON {
		return printJSON(cmd, src)
	}
	state := "Enabled"
	if !src.IsEnabled {
		state = "Disabled"
	}
	cmd.Printf("%s source %d (%s).\n", state, src.ID, src.Name)
	return nil
}

func runSourceCrawl(cmd *cobra.Command, args []string) error {
	if adminService == nil {
		return errNoAdminService
	}
	id, err := parseID("source", args[0])
	if err != nil {
		return err
	}

	job, err := adminService.TriggerCrawl(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("trigger crawl: %w", err)
	}
	if sourceJSON {
		return printJSON(cmd, job)
	}
	cmd.Printf("Queued crawl job %d for source %d (%s).\n", job.ID, job.SourceID, job.Status)
	return nil
}
