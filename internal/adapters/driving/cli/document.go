package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:     "document",
	Aliases: []string{"doc", "documents"},
	Short:   "Browse discovered documents",
	Long:    `List, view and re-summarise documents discovered by the backend.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show a document with its summary and sections",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentRegenerateCmd = &cobra.Command{
	Use:   "regenerate [doc-id]",
	Short: "Regenerate a document summary",
	Long: `Asks the backend to recompute the AI summary. The call blocks until
the backend is done, which can take a while for long documents.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentRegenerate,
}

var documentTagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags",
	Args:  cobra.NoArgs,
	RunE:  runDocumentTags,
}

var (
	docListSkip   int
	docListLimit  int
	docListTag    string
	docListSource int64
	docListSearch string
	docJSON       bool
	docSections   bool
	docFullText   bool
)

func init() {
	documentListCmd.Flags().IntVar(&docListSkip, "skip", 0, "number of documents to skip")
	documentListCmd.Flags().IntVarP(&docListLimit, "limit", "n", 20, "maximum number of documents")
	documentListCmd.Flags().StringVarP(&docListTag, "tag", "t", "", "filter by tag slug")
	documentListCmd.Flags().Int64Var(&docListSource, "source", 0, "filter by source id")
	documentListCmd.Flags().StringVarP(&docListSearch, "search", "s", "", "filter by title text")

	documentGetCmd.Flags().BoolVar(&docSections, "sections", false, "print every section")
	documentGetCmd.Flags().BoolVar(&docFullText, "full-text", false, "print the extracted text")

	for _, c := range []*cobra.Command{documentListCmd, documentGetCmd, documentRegenerateCmd, documentTagsCmd} {
		c.Flags().BoolVar(&docJSON, "json", false, "output as JSON")
	}

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentRegenerateCmd)
	documentCmd.AddCommand(documentTagsCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errNoDocumentService
	}

	filter := domain.DocumentFilter{
		Tag:      docListTag,
		SourceID: docListSource,
		Search:   docListSearch,
	}
	if cmd.Flags().Changed("skip") {
		filter.Skip = &docListSkip
	}
	if cmd.Flags().Changed("limit") {
		filter.Limit = &docListLimit
	}

	docs, err := documentService.List(cmd.Context(), filter)
	if err != nil {
		return err
	}
	if docJSON {
		return printJSON(cmd, docs)
	}

	if len(docs) == 0 {
		cmd.Println("No documents found.")
		return nil
	}
	for i := range docs {
		d := &docs[i]
		cmd.Printf("  [%d] %s\n", d.ID, d.Title)
		meta := []string{d.CrawledAt.String()}
		if d.Source != nil {
			meta = append(meta, d.Source.Name)
		}
		if len(d.Tags) > 0 {
			meta = append(meta, tagList(d.Tags))
		}
		cmd.Printf("      %s\n", strings.Join(meta, " | "))
	}
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNoDocumentService
	}
	id, err := parseID("document", args[0])
	if err != nil {
		return err
	}

	doc, err := documentService.Get(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("get document %d: %w", id, err)
	}
	if docJSON {
		return printJSON(cmd, doc)
	}
	printDocument(cmd, doc)
	return nil
}

func runDocumentRegenerate(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNoDocumentService
	}
	id, err := parseID("document", args[0])
	if err != nil {
		return err
	}

	cmd.PrintErrf("Regenerating summary for document %d...\n", id)
	doc, err := documentService.RegenerateSummary(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("regenerate summary: %w", err)
	}
	if docJSON {
		return printJSON(cmd, doc)
	}
	cmd.Println("Summary:")
	cmd.Println(doc.Summary)
	return nil
}

func runDocumentTags(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errNoDocumentService
	}

	tags, err := documentService.Tags(cmd.Context())
	if err != nil {
		return err
	}
	if docJSON {
		return printJSON(cmd, tags)
	}
	if len(tags) == 0 {
		cmd.Println("No tags.")
		return nil
	}
	for _, t := range tags {
		cmd.Printf("  %-24s %s\n", t.Slug, t.Name)
	}
	return nil
}

func printDocument(cmd *cobra.Command, doc *domain.Document) {
	cmd.Printf("Document: %s\n", doc.Title)
	cmd.Printf("  ID:        %d\n", doc.ID)
	cmd.Printf("  Type:      %s\n", doc.ContentType)
	if doc.URL != "" {
		cmd.Printf("  URL:       %s\n", doc.URL)
	}
	if doc.Source != nil {
		cmd.Printf("  Source:    %s\n", doc.Source.Name)
	}
	if doc.PublishedAt != nil {
		cmd.Printf("  Published: %s\n", doc.PublishedAt)
	}
	cmd.Printf("  Crawled:   %s\n", doc.CrawledAt)
	if doc.Language != "" {
		cmd.Printf("  Language:  %s\n", doc.Language)
	}
	if len(doc.Tags) > 0 {
		cmd.Printf("  Tags:      %s\n", tagList(doc.Tags))
	}
	if len(doc.Entities) > 0 {
		names := make([]string, 0, len(doc.Entities))
		for _, e := range doc.Entities {
			names = append(names, fmt.Sprintf("%s (%s)", e.Name, e.Type))
		}
		cmd.Printf("  Entities:  %s\n", strings.Join(names, ", "))
	}

	if doc.Summary != "" {
		cmd.Println()
		cmd.Println("Summary:")
		cmd.Println(doc.Summary)
	}
	if doc.Explanation != "" {
		cmd.Println()
		cmd.Println("Explanation:")
		cmd.Println(doc.Explanation)
	}

	sections := doc.OrderedSections()
	if len(sections) > 0 {
		cmd.Println()
		cmd.Printf("Sections (%d):\n", len(sections))
		for _, s := range sections {
			heading := s.Heading
			if heading == "" {
				heading = fmt.Sprintf("Section %d", s.OrderIndex+1)
			}
			cmd.Printf("  - %s\n", heading)
			if docSections {
				cmd.Printf("    %s\n", s.Text)
			}
		}
	}

	if docFullText && doc.ContentText != "" {
		cmd.Println()
		cmd.Println(doc.ContentText)
	}
}

func tagList(tags []domain.Tag) string {
	slugs := make([]string, 0, len(tags))
	for _, t := range tags {
		slugs = append(slugs, t.Slug)
	}
	return strings.Join(slugs, ", ")
}
