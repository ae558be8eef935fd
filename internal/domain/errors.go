package domain

import "errors"

// Sentinel errors for the arrivals aggregation service. Upstream transport
// and data failures are absorbed close to where they happen (empty page,
// skipped record, fallback dataset); only these surface to the HTTP layer.
var (
	// ErrMissingCredentials means the upstream API credentials are not configured.
	// This is fatal for the request and maps to a 500 response.
	ErrMissingCredentials = errors.New("upstream API credentials are not configured")

	// ErrBudgetExhausted means the metadata API call budget has run out.
	// Callers degrade to the bulk fallback dataset instead of failing.
	ErrBudgetExhausted = errors.New("metadata API call budget exhausted")

	// ErrUpstreamStatus means an upstream request returned a non-200 status.
	// The fetch layer reports it for logging; the paginate loop treats the
	// page as empty and carries on.
	ErrUpstreamStatus = errors.New("upstream returned non-200 status")
)
