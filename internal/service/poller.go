package service

import (
	"context"
	"time"
)

// Watch polls the given job on the session cadence until it reaches a
// terminal state, the watch budget runs out, a poll fails, or ctx is
// cancelled. Each tick is scheduled only after the previous response has
// been processed, so ticks never overlap.
//
// Watch is single-flight per job: calling it for a job that is already
// being watched returns immediately.
func (s *Session) Watch(ctx context.Context, jobID string) {
	if !s.claimWatch(jobID) {
		s.logger.Printf("[JOB %s] already being watched, ignoring duplicate watch", jobID)
		return
	}
	defer s.releaseWatch(jobID)

	var deadline time.Time
	if s.maxWatch > 0 {
		deadline = time.Now().Add(s.maxWatch)
	}

	for {
		select {
		case <-ctx.Done():
			s.update(func(snap *Snapshot) { snap.Loading = false })
			return
		case <-time.After(s.interval):
		}

		if !deadline.IsZero() && time.Now().After(deadline) {
			s.logger.Printf("[JOB %s] watch budget of %s exhausted, marking view stale", jobID, s.maxWatch)
			s.update(func(snap *Snapshot) {
				snap.Loading = false
				snap.Stale = true
			})
			return
		}

		job, err := s.api.GetJob(ctx, jobID)
		if err != nil {
			// Stop quietly: the last displayed state stays as-is and the
			// job is not forced into an error status the remote side never
			// reported.
			s.logger.Printf("[JOB %s] poll failed, stopping watch: %v", jobID, err)
			s.update(func(snap *Snapshot) { snap.Loading = false })
			return
		}

		// Last fetch wins. The client never edits job fields itself, so
		// there is nothing to reconcile.
		s.update(func(snap *Snapshot) { snap.Current = job })

		if job.Terminal() {
			s.logger.Printf("[JOB %s] reached terminal status %s (%d/%d listings)",
				jobID, job.Status, job.ProcessedListings, job.TotalListings)
			s.update(func(snap *Snapshot) { snap.Loading = false })
			s.RefreshJobs(ctx)
			return
		}
	}
}

func (s *Session) claimWatch(jobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, active := s.watching[jobID]; active {
		return false
	}
	s.watching[jobID] = struct{}{}
	return true
}

func (s *Session) releaseWatch(jobID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.watching, jobID)
}
