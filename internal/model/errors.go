package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNoRecord = errors.New("no record")
var ErrAlreadyExists = errors.New("entity already exists")

// FetchError is raised by a source fetcher on any failure. Fetchers never
// return partial data alongside an error.
type FetchError struct {
	SourceID string
	// Auth marks credential problems (expired/invalid token, 401/403).
	Auth bool
	// Parse marks payloads that were retrieved but could not be decoded.
	Parse bool
	Err   error
}

func (e *FetchError) Error() string {
	switch {
	case e.Auth:
		return fmt.Sprintf("source %q: authentication failed: %v", e.SourceID, e.Err)
	case e.Parse:
		return fmt.Sprintf("source %q: parse failed: %v", e.SourceID, e.Err)
	default:
		return fmt.Sprintf("source %q: fetch failed: %v", e.SourceID, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// RunError is returned when every source of an aggregation run failed and
// the run would otherwise present a broken integration as an empty
// calendar.
type RunError struct {
	Failures []*FetchError
}

func (e *RunError) Error() string {
	ids := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		ids[i] = f.SourceID
	}
	return fmt.Sprintf("all calendar sources failed: %s", strings.Join(ids, ", "))
}
