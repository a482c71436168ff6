package models

import (
	"errors"
	"fmt"
)

// ErrHistoryDisabled is returned by history operations when no
// persistence backend is configured.
var ErrHistoryDisabled = errors.New("history store not configured")

// FetchError signals an upstream network failure: timeout, connection
// error or a non-2xx status. Retryable by the caller, never retried
// internally.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError signals that the page layout was not recognized and zero
// records could be extracted.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse gold prices: %s", e.Reason)
}

// ValidationError rejects a malformed query before any acquisition
// happens.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// PersistenceError wraps a storage failure. It only affects the
// history/trend paths, never price acquisition.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
