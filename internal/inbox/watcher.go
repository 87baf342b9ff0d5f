// Package inbox uploads PDFs dropped into a directory.
//
// The watcher scans the directory once on start, then follows fsnotify
// events. Bursts of create/write events for the same file are collapsed
// into one upload after a quiet period. Each distinct file content is
// uploaded once; the ledger remembers checksums across restarts.
package inbox

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driven"
	"github.com/bdlens/bdlens-cli/internal/logger"
)

// DefaultDebounce is the quiet period before a changed file is uploaded.
const DefaultDebounce = 750 * time.Millisecond

// Uploader submits a document. driving.AdminService satisfies it.
type Uploader interface {
	Upload(ctx context.Context, upload domain.Upload) (*domain.Document, error)
}

// Result reports what happened to one file.
type Result struct {
	Path     string
	Checksum string

	// Document is set when the file was uploaded.
	Document *domain.Document

	// Duplicate is set when the content was uploaded before.
	Duplicate *driven.UploadRecord

	Err error
}

// Uploaded reports whether the file produced a new document.
func (r Result) Uploaded() bool {
	return r.Err == nil && r.Document != nil
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before upload.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithSourceID attaches every upload to a source.
func WithSourceID(id int64) Option {
	return func(w *Watcher) {
		w.sourceID = id
	}
}

// Watcher uploads PDFs that appear in a directory.
type Watcher struct {
	dir      string
	uploader Uploader
	ledger   driven.UploadLedger
	debounce time.Duration
	sourceID int64
	now      func() time.Time
}

// New creates a watcher for dir.
func New(dir string, uploader Uploader, ledger driven.UploadLedger, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		uploader: uploader,
		ledger:   ledger,
		debounce: DefaultDebounce,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Scan processes the PDFs already in the directory, in name order.
func (w *Watcher) Scan(ctx context.Context) ([]Result, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", w.dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(w.dir, e.Name())
		if isCandidate(path) {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)

	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		if ctx.Err() != nil {
			return results, ctx.Err()
		}
		results = append(results, w.Process(ctx, path))
	}
	return results, nil
}

// Run scans the directory and then watches it until ctx is cancelled.
// The returned channel is closed when watching stops.
func (w *Watcher) Run(ctx context.Context) (<-chan Result, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(w.dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", w.dir, err)
	}

	results := make(chan Result, 16)
	go w.loop(ctx, fw, results)
	return results, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, results chan<- Result) {
	defer close(results)
	defer fw.Close()

	send := func(r Result) bool {
		select {
		case results <- r:
			return true
		case <-ctx.Done():
			return false
		}
	}

	initial, err := w.Scan(ctx)
	for _, r := range initial {
		if !send(r) {
			return
		}
	}
	if err != nil && ctx.Err() == nil {
		if !send(Result{Path: w.dir, Err: err}) {
			return
		}
	}

	pending := make(map[string]*time.Timer)
	ready := make(chan string)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			path := handleEvent(event)
			if path == "" {
				continue
			}
			if t, ok := pending[path]; ok {
				t.Reset(w.debounce)
				continue
			}
			pending[path] = time.AfterFunc(w.debounce, func() {
				select {
				case ready <- path:
				case <-ctx.Done():
				}
			})

		case path := <-ready:
			delete(pending, path)
			if !send(w.Process(ctx, path)) {
				return
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			if !send(Result{Path: w.dir, Err: fmt.Errorf("watch: %w", err)}) {
				return
			}
		}
	}
}

// Process uploads path unless its content is already in the ledger.
func (w *Watcher) Process(ctx context.Context, path string) Result {
	res := Result{Path: path}

	f, err := os.Open(path)
	if err != nil {
		res.Err = fmt.Errorf("open %s: %w", path, err)
		return res
	}
	defer f.Close()

	res.Checksum, err = checksum(f)
	if err != nil {
		res.Err = fmt.Errorf("checksum %s: %w", path, err)
		return res
	}

	if w.ledger != nil {
		rec, err := w.ledger.FindUpload(ctx, res.Checksum)
		switch {
		case err == nil:
			logger.Debug("inbox: %s already uploaded as document %d", path, rec.DocumentID)
			res.Duplicate = rec
			return res
		case !errors.Is(err, domain.ErrNotFound):
			res.Err = fmt.Errorf("look up %s: %w", path, err)
			return res
		}
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		res.Err = fmt.Errorf("rewind %s: %w", path, err)
		return res
	}

	doc, err := w.uploader.Upload(ctx, domain.Upload{
		FileName: filepath.Base(path),
		Content:  f,
		SourceID: w.sourceID,
	})
	if err != nil {
		res.Err = err
		logger.Warn("inbox: %s: %v", path, err)
		return res
	}
	res.Document = doc

	if w.ledger != nil {
		rec := driven.UploadRecord{
			Checksum:   res.Checksum,
			Path:       path,
			DocumentID: doc.ID,
			UploadedAt: w.now().UTC(),
		}
		if err := w.ledger.RecordUpload(ctx, rec); err != nil {
			res.Err = fmt.Errorf("record %s: %w", path, err)
		}
	}
	logger.Debug("inbox: uploaded %s as document %d", path, doc.ID)
	return res
}

// handleEvent returns the path to process for event, or "" to ignore it.
func handleEvent(event fsnotify.Event) string {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return ""
	}
	if !isCandidate(event.Name) {
		return ""
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return ""
	}
	return event.Name
}

// isCandidate reports whether path looks like an uploadable PDF.
// Hidden and editor temp files are skipped.
func isCandidate(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~") {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

func checksum(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
