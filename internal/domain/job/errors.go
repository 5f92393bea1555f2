package job

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a job id is not in the repository
	ErrNotFound = errors.New("job not found")

	// ErrSourceUnavailable is returned when no job source has been initialized
	ErrSourceUnavailable = errors.New("job source not initialized")

	// ErrUnsupported is returned by sources that cannot perform an operation
	ErrUnsupported = errors.New("operation not supported by job source")
)

// UpstreamError wraps a failed call to the external job source
type UpstreamError struct {
	Source string
	Op     string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Source, e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
