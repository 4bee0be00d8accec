package animego

import (
	"errors"
	"fmt"
)

// ErrNoResults reports a well-formed response that legitimately contains
// nothing usable for the request.
var ErrNoResults = errors.New("no results")

// ServiceError indicates the site returned an unexpected HTTP or envelope
// status, or an upstream fetch failed outright.
type ServiceError struct {
	Op     string // the operation that failed, e.g. "fast search"
	Status string // the offending HTTP or envelope status, if any
	Err    error  // underlying cause, may be nil
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: service error: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: service error: unexpected status %q", e.Op, e.Status)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// ContentBlockedError signals a geo/licensing restriction. Metadata may
// still be viewable even though playback resolution is withheld, so
// callers can degrade instead of aborting.
type ContentBlockedError struct {
	AnimegoID string
	Reason    string
}

func (e *ContentBlockedError) Error() string {
	return fmt.Sprintf("content %s is blocked: %s", e.AnimegoID, e.Reason)
}

// UnexpectedBehaviorError reports a response that was received and parsed
// but violated an invariant the pipeline depends on.
type UnexpectedBehaviorError struct {
	Op     string
	Detail string
}

func (e *UnexpectedBehaviorError) Error() string {
	return fmt.Sprintf("%s: unexpected behavior: %s", e.Op, e.Detail)
}
