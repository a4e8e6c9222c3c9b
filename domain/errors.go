package domain

import "fmt"

// Boundary errors. Each external operation (store read, page fetch,
// HTML parse, link validation, store write) fails with its own type so
// callers can isolate the failure instead of aborting the batch.

// FetchError is a record store read failure.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetching records: %v", e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// PageFetchError is a network or HTTP failure fetching one page.
type PageFetchError struct {
	URL string
	Err error
}

func (e *PageFetchError) Error() string { return fmt.Sprintf("fetching page %s: %v", e.URL, e.Err) }
func (e *PageFetchError) Unwrap() error { return e.Err }

// ParseError is a malformed HTML document.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parsing page %s: %v", e.URL, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError is a candidate link that could not be parsed as a
// URL during filtering. The link is rejected, nothing else.
type ValidationError struct {
	Link string
	Err  error
}

func (e *ValidationError) Error() string { return fmt.Sprintf("validating link %s: %v", e.Link, e.Err) }
func (e *ValidationError) Unwrap() error { return e.Err }

// SyncWriteError is a record store write failure for one record.
type SyncWriteError struct {
	RecordID string
	Err      error
}

func (e *SyncWriteError) Error() string {
	return fmt.Sprintf("updating record %s: %v", e.RecordID, e.Err)
}
func (e *SyncWriteError) Unwrap() error { return e.Err }
