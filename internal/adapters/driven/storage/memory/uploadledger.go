package memory

import (
	"context"
	"sync"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driven"
)

// Ensure UploadLedger implements the interface.
var _ driven.UploadLedger = (*UploadLedger)(nil)

// UploadLedger is an in-memory implementation of driven.UploadLedger.
type UploadLedger struct {
	mu      sync.RWMutex
	records map[string]driven.UploadRecord
}

// NewUploadLedger creates a new in-memory upload ledger.
func NewUploadLedger() *UploadLedger {
	return &UploadLedger{
		records: make(map[string]driven.UploadRecord),
	}
}

// RecordUpload stores a successful upload.
func (l *UploadLedger) RecordUpload(_ context.Context, rec driven.UploadRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records[rec.Checksum] = rec
	return nil
}

// FindUpload returns the record for checksum.
func (l *UploadLedger) FindUpload(_ context.Context, checksum string) (*driven.UploadRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, ok := l.records[checksum]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// Len returns the number of recorded uploads.
func (l *UploadLedger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}
