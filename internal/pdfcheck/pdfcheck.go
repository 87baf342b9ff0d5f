// Package pdfcheck validates upload candidates locally with pdfcpu so
// obviously broken files never reach the backend.
package pdfcheck

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driven"
	"github.com/bdlens/bdlens-cli/internal/logger"
)

// Ensure Checker implements the interface.
var _ driven.PDFChecker = (*Checker)(nil)

// headerWindow is how far into the file the %PDF- marker may appear.
const headerWindow = 1024

// Checker runs a relaxed pdfcpu validation and counts pages.
type Checker struct {
	conf *model.Configuration
}

// New creates a checker using relaxed validation, which accepts the
// minor structural defects common in scanned government PDFs.
func New() *Checker {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Checker{conf: conf}
}

// Check validates r and returns its page count and header version.
func (c *Checker) Check(r io.ReadSeeker) (*driven.PDFInfo, error) {
	version, err := headerVersion(r)
	if err != nil {
		return nil, err
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind: %w", err)
	}
	if err := api.Validate(r, c.conf); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNotPDF, err)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind: %w", err)
	}
	pages, err := api.PageCount(r, c.conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNotPDF, err)
	}
	if pages == 0 {
		return nil, fmt.Errorf("%w: document has no pages", domain.ErrNotPDF)
	}

	logger.Debug("pdfcheck: valid PDF %s with %d pages", version, pages)
	return &driven.PDFInfo{PageCount: pages, Version: version}, nil
}

// CheckFile opens path and runs Check.
func (c *Checker) CheckFile(path string) (*driven.PDFInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return c.Check(f)
}

// headerVersion finds the %PDF-x.y marker near the start of the file.
func headerVersion(r io.ReadSeeker) (string, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind: %w", err)
	}
	head := make([]byte, headerWindow)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("read header: %w", err)
	}
	head = head[:n]

	idx := bytes.Index(head, []byte("%PDF-"))
	if idx < 0 {
		return "", fmt.Errorf("%w: missing %%PDF- header", domain.ErrNotPDF)
	}
	rest := string(head[idx+len("%PDF-"):])
	end := strings.IndexFunc(rest, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	if end < 0 {
		end = len(rest)
	}
	version := rest[:end]
	if version == "" {
		return "", fmt.Errorf("%w: malformed %%PDF- header", domain.ErrNotPDF)
	}
	return version, nil
}
