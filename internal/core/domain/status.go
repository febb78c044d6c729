package domain

// Status is the remote-defined lifecycle state of a job. The set of values
// belongs to the extractor service; the client recognizes the documented
// ones and treats everything else as StatusUnknown while keeping the raw
// string around for display.
type Status string

const (
	StatusQueued       Status = "queued"
	StatusProcessing   Status = "processing"
	StatusScraping     Status = "scraping"
	StatusProcessingAI Status = "processing_ai"
	StatusCompleted    Status = "completed"
	StatusError        Status = "error"

	// StatusUnknown is client-side only: the canonical form of any value
	// the remote side reports that this client does not recognize.
	StatusUnknown Status = "unknown"
)

var knownStatuses = map[Status]struct{}{
	StatusQueued:       {},
	StatusProcessing:   {},
	StatusScraping:     {},
	StatusProcessingAI: {},
	StatusCompleted:    {},
	StatusError:        {},
}

// Known reports whether the value is one of the documented lifecycle states.
func (s Status) Known() bool {
	_, ok := knownStatuses[s]
	return ok
}

// Canonical maps unrecognized remote values to StatusUnknown and returns
// documented values unchanged. The raw value stays on the Job for display.
func (s Status) Canonical() Status {
	if s.Known() {
		return s
	}
	return StatusUnknown
}

// Terminal reports whether the job has finished, successfully or not.
// Unrecognized values are non-terminal so polling continues until the
// remote side says otherwise.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusError
}

func (s Status) String() string {
	if s == "" {
		return string(StatusUnknown)
	}
	return string(s)
}

// CapabilityState is the result of the startup AI-capability probe. It is
// informational only and never gates submission or polling.
type CapabilityState string

const (
	CapabilityUnknown     CapabilityState = "unknown"
	CapabilityAvailable   CapabilityState = "available"
	CapabilityDegraded    CapabilityState = "degraded"
	CapabilityUnavailable CapabilityState = "unavailable"
)
