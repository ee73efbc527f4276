package domain

import (
	"errors"
	"fmt"
)

// ErrAuthFailed marks a remote rejection of the bearer identity (401/403).
var ErrAuthFailed = errors.New("authentication failed")

// ProtocolError is any other non-2xx answer or malformed payload from the
// remote service.
type ProtocolError struct {
	StatusCode int
	Body       string
}

func (e *ProtocolError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("remote service error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("remote service error: status %d: %s", e.StatusCode, e.Body)
}

// RunFailedError reports a run that reached a terminal state other than
// completed. Every non-completed terminal status is treated the same way;
// the status literal is preserved for display.
type RunFailedError struct {
	Status RunStatus
}

func (e *RunFailedError) Error() string {
	return fmt.Sprintf("run ended with status: %s", e.Status)
}

// ErrorKind buckets failures for the presentation layer.
type ErrorKind int

const (
	ErrorKindUnknown ErrorKind = iota
	ErrorKindAuth
	ErrorKindProtocol
	ErrorKindRun
)

// Classify maps an error from a turn to its display bucket.
func Classify(err error) ErrorKind {
	var protocolErr *ProtocolError
	var runErr *RunFailedError

	switch {
	case errors.Is(err, ErrAuthFailed):
		return ErrorKindAuth
	case errors.As(err, &runErr):
		return ErrorKindRun
	case errors.As(err, &protocolErr):
		return ErrorKindProtocol
	default:
		return ErrorKindUnknown
	}
}
