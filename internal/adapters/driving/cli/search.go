package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

var (
	searchLimit  int
	searchTag    string
	searchSource int64
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search documents",
	Long: `Runs a semantic search on the backend. Results are shown in the
backend's ranking order. Multiple words may be given without quotes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (backend default when 0)")
	searchCmd.Flags().StringVarP(&searchTag, "tag", "t", "", "filter by tag slug")
	searchCmd.Flags().Int64Var(&searchSource, "source", 0, "filter by source id")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	if searchService == nil {
		return errNoSearchService
	}

	filter := domain.SearchFilter{
		Limit:    searchLimit,
		Tag:      searchTag,
		SourceID: searchSource,
	}

	results, err := searchService.Search(cmd.Context(), query, filter)
	if err != nil {
		return err
	}

	if searchJSON {
		return printJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		r := &results[i]
		// Format: [N] Title (Score)
		title := r.DocumentTitle
		if title == "" {
			title = "Untitled"
		}

		cmd.Printf("  [%d] %s (%.2f)\n", i+1, title, r.Score)
		cmd.Printf("      Document: %d\n", r.DocumentID)
		if r.Source != nil {
			cmd.Printf("      Source: %s\n", r.Source.Name)
		}
		if r.Snippet != "" {
			cmd.Printf("      %s\n", truncate(r.Snippet, 160))
		}
		cmd.Println()
	}
	return nil
}
