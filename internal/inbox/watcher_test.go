package inbox

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdlens/bdlens-cli/internal/adapters/driven/storage/memory"
	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

// fakeUploader records uploads and hands out increasing document IDs.
type fakeUploader struct {
	mu      sync.Mutex
	nextID  int64
	uploads []domain.Upload
	bodies  []string
	err     error
}

func (f *fakeUploader) Upload(_ context.Context, upload domain.Upload) (*domain.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(upload.Content)
	if err != nil {
		return nil, err
	}
	f.nextID++
	f.uploads = append(f.uploads, upload)
	f.bodies = append(f.bodies, string(body))
	return &domain.Document{ID: f.nextID, Title: upload.FileName}, nil
}

func (f *fakeUploader) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.uploads)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestWatcher_Scan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.pdf", "%PDF-1.7 b")
	writeFile(t, dir, "a.PDF", "%PDF-1.7 a")
	writeFile(t, dir, "notes.txt", "not a pdf")
	writeFile(t, dir, ".hidden.pdf", "%PDF-1.7 hidden")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.pdf"), 0755))

	up := &fakeUploader{}
	ledger := memory.NewUploadLedger()
	w := New(dir, up, ledger, WithSourceID(5))

	results, err := w.Scan(context.Background())

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, filepath.Join(dir, "a.PDF"), results[0].Path)
	assert.True(t, results[0].Uploaded())
	assert.True(t, results[1].Uploaded())
	assert.Equal(t, 2, ledger.Len())

	require.Len(t, up.uploads, 2)
	assert.Equal(t, "a.PDF", up.uploads[0].FileName)
	assert.Equal(t, int64(5), up.uploads[0].SourceID)
	assert.Equal(t, "%PDF-1.7 a", up.bodies[0], "content should be read from the start after hashing")
}

func TestWatcher_Process_SkipsDuplicates(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "budget.pdf", "%PDF-1.7 same")
	copyPath := writeFile(t, dir, "budget-copy.pdf", "%PDF-1.7 same")

	up := &fakeUploader{}
	w := New(dir, up, memory.NewUploadLedger())
	ctx := context.Background()

	res := w.Process(ctx, first)
	require.NoError(t, res.Err)
	require.NotNil(t, res.Document)

	res = w.Process(ctx, copyPath)
	require.NoError(t, res.Err)
	assert.False(t, res.Uploaded())
	require.NotNil(t, res.Duplicate)
	assert.Equal(t, first, res.Duplicate.Path)
	assert.Equal(t, 1, up.count())
}

func TestWatcher_Process_UploadErrorNotRecorded(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "budget.pdf", "%PDF-1.7")

	up := &fakeUploader{err: domain.ErrForbidden}
	ledger := memory.NewUploadLedger()
	w := New(dir, up, ledger)

	res := w.Process(context.Background(), path)

	assert.ErrorIs(t, res.Err, domain.ErrForbidden)
	assert.Zero(t, ledger.Len())

	// Retry succeeds once the error clears.
	up.err = nil
	res = w.Process(context.Background(), path)
	assert.True(t, res.Uploaded())
	assert.Equal(t, 1, ledger.Len())
}

func TestWatcher_Process_MissingFile(t *testing.T) {
	w := New(t.TempDir(), &fakeUploader{}, nil)
	res := w.Process(context.Background(), filepath.Join(t.TempDir(), "gone.pdf"))
	require.Error(t, res.Err)
	assert.True(t, errors.Is(res.Err, os.ErrNotExist))
}

func TestWatcher_Run_UploadsNewFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "existing.pdf", "%PDF-1.7 existing")

	up := &fakeUploader{}
	w := New(dir, up, memory.NewUploadLedger(), WithDebounce(20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results, err := w.Run(ctx)
	require.NoError(t, err)

	first := nextResult(t, results)
	assert.Equal(t, filepath.Join(dir, "existing.pdf"), first.Path)
	assert.True(t, first.Uploaded())

	writeFile(t, dir, "ignored.txt", "text")
	dropped := writeFile(t, dir, "new.pdf", "%PDF-1.7 new")

	second := nextResult(t, results)
	assert.Equal(t, dropped, second.Path)
	assert.True(t, second.Uploaded())
	assert.Equal(t, 2, up.count())

	cancel()
	for range results {
	}
}

func TestWatcher_Run_MissingDir(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "nope"), &fakeUploader{}, nil)
	_, err := w.Run(context.Background())
	assert.Error(t, err)
}

func nextResult(t *testing.T, results <-chan Result) Result {
	t.Helper()
	select {
	case r, ok := <-results:
		require.True(t, ok, "results channel closed")
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for inbox result")
		return Result{}
	}
}

func TestHandleEvent(t *testing.T) {
	dir := t.TempDir()
	pdf := writeFile(t, dir, "report.pdf", "%PDF")
	txt := writeFile(t, dir, "report.txt", "x")
	hidden := writeFile(t, dir, ".report.pdf", "%PDF")
	sub := filepath.Join(dir, "folder.pdf")
	require.NoError(t, os.Mkdir(sub, 0755))

	tests := []struct {
		name  string
		event fsnotify.Event
		want  string
	}{
		{"create pdf", fsnotify.Event{Name: pdf, Op: fsnotify.Create}, pdf},
		{"write pdf", fsnotify.Event{Name: pdf, Op: fsnotify.Write}, pdf},
		{"write and chmod", fsnotify.Event{Name: pdf, Op: fsnotify.Write | fsnotify.Chmod}, pdf},
		{"chmod only", fsnotify.Event{Name: pdf, Op: fsnotify.Chmod}, ""},
		{"remove", fsnotify.Event{Name: pdf, Op: fsnotify.Remove}, ""},
		{"non pdf", fsnotify.Event{Name: txt, Op: fsnotify.Create}, ""},
		{"hidden", fsnotify.Event{Name: hidden, Op: fsnotify.Create}, ""},
		{"directory", fsnotify.Event{Name: sub, Op: fsnotify.Create}, ""},
		{"vanished", fsnotify.Event{Name: filepath.Join(dir, "gone.pdf"), Op: fsnotify.Create}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, handleEvent(tt.event))
		})
	}
}

func TestIsCandidate(t *testing.T) {
	assert.True(t, isCandidate("/in/budget.pdf"))
	assert.True(t, isCandidate("/in/BUDGET.PDF"))
	assert.False(t, isCandidate("/in/budget.pdf.part"))
	assert.False(t, isCandidate("/in/~budget.pdf"))
	assert.False(t, isCandidate("/in/.budget.pdf"))
}
