package driven

import "io"

// PDFInfo describes a file that passed the upload preflight.
type PDFInfo struct {
	PageCount int

	// Version is the header version, e.g. "1.7".
	Version string
}

// PDFChecker validates a candidate upload locally.
// Returns an error wrapping domain.ErrNotPDF when r is not a readable PDF.
type PDFChecker interface {
	Check(r io.ReadSeeker) (*PDFInfo, error)
}
