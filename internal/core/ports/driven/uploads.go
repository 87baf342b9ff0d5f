package driven

import (
	"context"
	"time"
)

// UploadRecord remembers a file that was uploaded to the backend.
type UploadRecord struct {
	// Checksum is the hex SHA-256 of the file content.
	Checksum string

	// Path is where the file was found.
	Path string

	// DocumentID is the backend document created from it.
	DocumentID int64

	UploadedAt time.Time
}

// UploadLedger tracks uploaded files so the inbox sends each one once,
// including across restarts.
type UploadLedger interface {
	// RecordUpload stores a successful upload.
	RecordUpload(ctx context.Context, rec UploadRecord) error

	// FindUpload returns the record for checksum.
	// Returns domain.ErrNotFound if the content was never uploaded.
	FindUpload(ctx context.Context, checksum string) (*UploadRecord, error)
}
