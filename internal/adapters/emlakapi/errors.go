package emlakapi

import "fmt"

// RemoteError means the request reached the service but the service signaled
// failure. Detail carries the human-readable message from the response body
// when one was present.
type RemoteError struct {
	StatusCode int
	Detail     string
}

func (e *RemoteError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("extractor service error (status %d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("extractor service error (status %d)", e.StatusCode)
}
