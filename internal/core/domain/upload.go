package domain

import "io"

// Upload is a file submitted by an admin for ingestion.
type Upload struct {
	// FileName is sent as the multipart filename. The backend only accepts .pdf.
	FileName string

	// Content is read once while the request body is built.
	Content io.Reader

	// Title overrides the extracted title when non-empty.
	Title string

	// SourceID attaches the document to a source when non-zero.
	SourceID int64

	// SkipCheck bypasses the local PDF preflight.
	SkipCheck bool
}
