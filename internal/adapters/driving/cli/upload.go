package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
	"github.com/bdlens/bdlens-cli/internal/inbox"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a PDF document (admin)",
	Long: `Uploads a PDF for ingestion. The file is checked locally before it is
sent unless --no-check is given or upload.check_pdf is false.

Examples:
  bdlens upload budget-2024.pdf --title "Budget 2024" --source 3
  bdlens upload watch ~/Downloads/gazettes`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

var uploadWatchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Upload every PDF dropped into a directory",
	Long: `Uploads the PDFs already in dir, then keeps watching it and uploads new
ones as they appear. Each file content is uploaded once, even across
restarts. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runUploadWatch,
}

var (
	uploadTitle    string
	uploadSource   int64
	uploadNoCheck  bool
	uploadJSON     bool
	uploadDebounce time.Duration
)

func init() {
	uploadCmd.Flags().StringVar(&uploadTitle, "title", "", "document title (extracted when omitted)")
	uploadCmd.Flags().Int64Var(&uploadSource, "source", 0, "attach to this source id")
	uploadCmd.Flags().BoolVar(&uploadNoCheck, "no-check", false, "skip the local PDF check")
	uploadCmd.Flags().BoolVar(&uploadJSON, "json", false, "output as JSON")

	uploadWatchCmd.Flags().Int64Var(&uploadSource, "source", 0, "attach uploads to this source id")
	uploadWatchCmd.Flags().DurationVar(&uploadDebounce, "debounce", inbox.DefaultDebounce, "quiet period before a changed file is uploaded")

	uploadCmd.AddCommand(uploadWatchCmd)
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if adminService == nil {
		return errNoAdminService
	}

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := adminService.Upload(cmd.Context(), domain.Upload{
		FileName:  filepath.Base(path),
		Content:   f,
		Title:     uploadTitle,
		SourceID:  uploadSource,
		SkipCheck: uploadNoCheck || !settings.CheckPDF,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotPDF) {
			return fmt.Errorf("%w\nUse --no-check to send it anyway", err)
		}
		return err
	}
	if uploadJSON {
		return printJSON(cmd, doc)
	}
	cmd.Printf("Uploaded %s as document %d (%s).\n", filepath.Base(path), doc.ID, doc.Title)
	return nil
}

func runUploadWatch(cmd *cobra.Command, args []string) error {
	if adminService == nil {
		return errNoAdminService
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := inbox.New(dir, adminService, uploadLedger,
		inbox.WithSourceID(uploadSource),
		inbox.WithDebounce(uploadDebounce),
	)
	results, err := w.Run(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s for PDFs. Press Ctrl-C to stop.\n", dir)
	var uploaded, failed int
	for res := range results {
		name := filepath.Base(res.Path)
		switch {
		case res.Err != nil:
			failed++
			cmd.PrintErrf("  ✗ %s: %s\n", name, FormatError(res.Err))
		case res.Duplicate != nil:
			cmd.Printf("  = %s already uploaded (document %d)\n", name, res.Duplicate.DocumentID)
		case res.Document != nil:
			uploaded++
			cmd.Printf("  ✓ %s → document %d\n", name, res.Document.ID)
		}
	}

	cmd.Printf("Stopped. %d uploaded, %d failed.\n", uploaded, failed)
	return nil
}
