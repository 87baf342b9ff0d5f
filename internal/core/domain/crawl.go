package domain

import "fmt"

// CrawlStatus is the lifecycle state of a crawl job.
type CrawlStatus string

const (
	CrawlPending CrawlStatus = "pending"
	CrawlRunning CrawlStatus = "running"
	CrawlSuccess CrawlStatus = "success"
	CrawlFailed  CrawlStatus = "failed"
)

// IsKnown reports whether s is a recognised status.
func (s CrawlStatus) IsKnown() bool {
	switch s {
	case CrawlPending, CrawlRunning, CrawlSuccess, CrawlFailed:
		return true
	}
	return false
}

// IsTerminal reports whether the job has finished.
func (s CrawlStatus) IsTerminal() bool {
	return s == CrawlSuccess || s == CrawlFailed
}

// CrawlJob is one ingestion run against a source. The backend owns its
// lifecycle; a freshly triggered job only reflects its initial state.
type CrawlJob struct {
	ID           int64       `json:"id"`
	SourceID     int64       `json:"source_id"`
	Status       CrawlStatus `json:"status"`
	StartedAt    *Time       `json:"started_at,omitempty"`
	FinishedAt   *Time       `json:"finished_at,omitempty"`
	ErrorMessage string      `json:"error_message,omitempty"`
	CreatedAt    Time        `json:"created_at"`
}

// Validate checks the job.
func (j *CrawlJob) Validate() error {
	if j.ID <= 0 {
		return fmt.Errorf("%w: crawl job missing id", ErrInvalidPayload)
	}
	if j.SourceID <= 0 {
		return fmt.Errorf("%w: crawl job %d missing source_id", ErrInvalidPayload, j.ID)
	}
	if !j.Status.IsKnown() {
		return fmt.Errorf("%w: crawl job %d has unknown status %q", ErrInvalidPayload, j.ID, j.Status)
	}
	return nil
}
