package errors

import "fmt"

var (
	// ErrNotFound is returned when an id does not resolve to a stored review.
	ErrNotFound = fmt.Errorf("review not found")
	// ErrStoreUnavailable wraps storage failures that are not a missing key.
	ErrStoreUnavailable = fmt.Errorf("store unavailable")
	// ErrValidation is returned when an input fails the configured checks.
	ErrValidation = fmt.Errorf("validation failed")
	// ErrSessionBufferFull signals a session that can no longer keep up with
	// event delivery. The fanout treats it as that session's disconnect.
	ErrSessionBufferFull = fmt.Errorf("session buffer full")
	ErrWorkerPanic       = fmt.Errorf("worker panic")
)
