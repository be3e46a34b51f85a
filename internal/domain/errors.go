package domain

import "errors"

// Sentinel errors shared across services, repositories, and controllers.
var (
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput means the request was malformed (missing required
	// field, non-positive duration, unknown filter field or operator).
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden means the caller is not allowed to perform the operation
	// (e.g. only the organizer may list a conference's attendees).
	ErrForbidden = errors.New("forbidden")

	// ErrUnscopedQuery means a session query had no conference scope and no
	// speaker filter, which would require a full table scan.
	ErrUnscopedQuery = errors.New("query must be scoped to a conference or a speaker")

	// ErrUnavailable means the backing store or cache is temporarily
	// unreachable. Callers on the synchronous path may retry.
	ErrUnavailable = errors.New("store temporarily unavailable")
)
