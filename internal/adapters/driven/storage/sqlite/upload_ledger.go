package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
	"github.com/bdlens/bdlens-cli/internal/core/ports/driven"
)

// uploadLedger implements driven.UploadLedger.
type uploadLedger struct {
	store *Store
}

var _ driven.UploadLedger = (*uploadLedger)(nil)

// RecordUpload stores a successful upload. Re-recording a checksum replaces it.
func (l *uploadLedger) RecordUpload(ctx context.Context, rec driven.UploadRecord) error {
	if rec.Checksum == "" {
		return fmt.Errorf("%w: upload checksum is required", domain.ErrInvalidInput)
	}
	if rec.UploadedAt.IsZero() {
		rec.UploadedAt = time.Now().UTC()
	}

	_, err := l.store.db.ExecContext(ctx, `
		INSERT INTO uploads (checksum, path, document_id, uploaded_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(checksum) DO UPDATE SET
			path = excluded.path,
			document_id = excluded.document_id,
			uploaded_at = excluded.uploaded_at
	`, rec.Checksum, rec.Path, rec.DocumentID, rec.UploadedAt.UTC())
	if err != nil {
		return fmt.Errorf("recording upload: %w", err)
	}
	return nil
}

// FindUpload returns the record for checksum.
func (l *uploadLedger) FindUpload(ctx context.Context, checksum string) (*driven.UploadRecord, error) {
	row := l.store.db.QueryRowContext(ctx, `
		SELECT checksum, path, document_id, uploaded_at FROM uploads WHERE checksum = ?
	`, checksum)

	var rec driven.UploadRecord
	if err := row.Scan(&rec.Checksum, &rec.Path, &rec.DocumentID, &rec.UploadedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("finding upload: %w", err)
	}
	return &rec, nil
}
