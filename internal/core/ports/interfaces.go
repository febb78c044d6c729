package ports

import (
	"context"
	"io"

	"github.com/woxyben19-maker/emlak/internal/core/domain"
)

// SubmitRequest carries the immutable parameters of a new extraction job.
type SubmitRequest struct {
	URL   string `json:"url" validate:"required,http_url"`
	Month int    `json:"month" validate:"min=1,max=12"`
	Year  int    `json:"year" validate:"min=2000"`
}

// ScrapeAPI defines the contract with the remote extractor service. All
// heavy lifting (scraping, AI extraction, file generation) happens on the
// remote side; this interface only moves job state and artifacts.
type ScrapeAPI interface {
	// TestCapability checks whether AI-assisted extraction is active
	// upstream. It never fails: transport problems map to
	// CapabilityUnavailable.
	TestCapability(ctx context.Context) domain.CapabilityState

	// SubmitJob starts a new extraction job and returns it in an early,
	// usually non-terminal status.
	SubmitJob(ctx context.Context, req SubmitRequest) (*domain.Job, error)

	// GetJob fetches the current authoritative record for a job.
	GetJob(ctx context.Context, jobID string) (*domain.Job, error)

	// ListJobs fetches all known jobs, newest first.
	ListJobs(ctx context.Context) ([]domain.Job, error)

	// Export requests a generated artifact for a completed job.
	// Returns a ReadCloser that the caller must close.
	Export(ctx context.Context, jobID string, format domain.ExportFormat) (io.ReadCloser, error)
}

// ExportSink persists export artifacts locally.
type ExportSink interface {
	// SaveExport writes the artifact under the given name and returns the
	// full path of the saved file.
	SaveExport(ctx context.Context, filename string, r io.Reader) (string, error)
}
