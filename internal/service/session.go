package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/woxyben19-maker/emlak/internal/adapters/emlakapi"
	"github.com/woxyben19-maker/emlak/internal/core/domain"
	"github.com/woxyben19-maker/emlak/internal/core/ports"
)

// Snapshot is the full client-side view of the session at one point in
// time. Every external event (probe result, store refresh, poll tick,
// submission) produces a complete replacement value, so a reader never sees
// a half-applied update.
type Snapshot struct {
	Capability domain.CapabilityState
	Current    *domain.Job
	Jobs       []domain.Job
	Loading    bool
	Stale      bool
}

// Session drives the job lifecycle against the remote extractor: submitting
// jobs, polling them to a terminal state, keeping the cached job list fresh
// and triggering export downloads.
type Session struct {
	api      ports.ScrapeAPI
	sink     ports.ExportSink
	logger   *log.Logger
	validate *validator.Validate

	interval time.Duration
	maxWatch time.Duration

	mu       sync.Mutex
	snap     Snapshot
	watching map[string]struct{}
}

// NewSession creates a Session. interval is the polling cadence; maxWatch
// caps how long one job is watched (zero disables the cap).
func NewSession(api ports.ScrapeAPI, sink ports.ExportSink, interval, maxWatch time.Duration, logger *log.Logger) *Session {
	return &Session{
		api:      api,
		sink:     sink,
		logger:   logger,
		validate: validator.New(),
		interval: interval,
		maxWatch: maxWatch,
		snap:     Snapshot{Capability: domain.CapabilityUnknown},
		watching: make(map[string]struct{}),
	}
}

// Snapshot returns the current session view. The contained slice and job
// pointer are replaced wholesale on every update and must not be mutated by
// the caller.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// update applies fn to a copy of the current snapshot and installs the copy
// as the new value.
func (s *Session) update(fn func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.snap
	fn(&next)
	s.snap = next
}

// Probe checks whether AI-assisted extraction is active upstream. The
// result only feeds the status indicator; nothing downstream depends on it.
func (s *Session) Probe(ctx context.Context) domain.CapabilityState {
	state := s.api.TestCapability(ctx)
	s.update(func(snap *Snapshot) { snap.Capability = state })
	s.logger.Printf("AI capability: %s", state)
	return state
}

// RefreshJobs replaces the cached job list with the remote one. On failure
// the previous cache is retained and the failure is only logged.
func (s *Session) RefreshJobs(ctx context.Context) {
	jobs, err := s.api.ListJobs(ctx)
	if err != nil {
		s.logger.Printf("job list refresh failed, keeping cached list: %v", err)
		return
	}
	s.update(func(snap *Snapshot) { snap.Jobs = jobs })
}

// Submit validates and sends a new extraction request. On success the
// returned job is installed as the current job and the loading flag is set;
// the caller should follow up with Watch. Validation failures are returned
// as *ValidationError and never reach the network.
func (s *Session) Submit(ctx context.Context, rawURL string, month, year int) (*domain.Job, error) {
	req := ports.SubmitRequest{
		URL:   strings.TrimSpace(rawURL),
		Month: month,
		Year:  year,
	}
	if req.URL == "" {
		return nil, &ValidationError{Reason: "url must not be empty"}
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, &ValidationError{Reason: validationReason(err)}
	}

	job, err := s.api.SubmitJob(ctx, req)
	if err != nil {
		s.update(func(snap *Snapshot) { snap.Loading = false })
		return nil, submitError(err)
	}

	s.logger.Printf("[JOB %s] submitted (%s, month=%d year=%d)", job.ID, job.URL, job.Month, job.Year)
	s.update(func(snap *Snapshot) {
		snap.Current = job
		snap.Loading = true
		snap.Stale = false
	})
	s.RefreshJobs(ctx)
	return job, nil
}

// Export downloads a generated artifact for a completed job and saves it
// under a deterministic name. The caller is responsible for only invoking
// this on completed jobs with at least one listing.
func (s *Session) Export(ctx context.Context, jobID string, format domain.ExportFormat) (string, error) {
	body, err := s.api.Export(ctx, jobID, format)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}
	defer body.Close()

	filename := domain.ExportFilename(jobID, format)
	path, err := s.sink.SaveExport(ctx, filename, body)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}
	s.logger.Printf("[JOB %s] export saved to %s", jobID, path)
	return path, nil
}

func validationReason(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "URL":
			return "url must be a valid http(s) address"
		case "Month":
			return "month must be between 1 and 12"
		case "Year":
			return "year must be 2000 or later"
		}
	}
	return "invalid submission parameters"
}

// submitError keeps any server-supplied detail visible while guaranteeing a
// usable generic message for everything else.
func submitError(err error) error {
	var remote *emlakapi.RemoteError
	if errors.As(err, &remote) && remote.Detail != "" {
		return fmt.Errorf("submission rejected: %s", remote.Detail)
	}
	return fmt.Errorf("submission failed, please try again: %w", err)
}
