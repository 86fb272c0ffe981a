package services

import "errors"

// Error kinds surfaced by the service layer. Controllers map these onto HTTP
// statuses; nothing here is retried internally.
var (
	// ErrBadRequest means missing or invalid input.
	ErrBadRequest = errors.New("bad request")

	// ErrNotFound covers both genuinely missing resources and resources owned
	// by someone else. Ownership failures are deliberately indistinguishable
	// from not-found so callers cannot probe for existence.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller lacks premium entitlement.
	ErrForbidden = errors.New("forbidden")

	// ErrUpstream means an external dependency (AI call, audio fetch) failed.
	ErrUpstream = errors.New("upstream failure")
)
