package service

// ValidationError is a locally rejected input. It never corresponds to a
// network exchange: validation failures are resolved at the boundary before
// any request is issued.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
