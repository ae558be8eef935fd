package domain

import (
	"context"
	"net/url"
)

//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=domain

// ArrivalsPage is one page of normalized arrivals from the paginated feed.
type ArrivalsPage struct {
	// Flights holds the normalized records of this page
	Flights []FlightRecord

	// HasMore is true when the feed advertised a further page
	HasMore bool

	// NextURL addresses the next page, "" when the feed is exhausted
	NextURL string
}

// ScheduledArrivalsFeed is the paginated primary arrivals feed. Pages are
// addressed by URL; the feed embeds all query state in the next-page URL it
// returns, so the paginate loop carries no parameters of its own.
type ScheduledArrivalsFeed interface {
	// HasCredentials reports whether the feed's credentials are configured.
	HasCredentials() bool

	// FirstPageURL builds the URL of the first page for the given query.
	FirstPageURL(params url.Values) string

	// FetchPage retrieves and normalizes one page. A transport failure or
	// non-200 status yields an empty page with HasMore=false together with
	// the error; callers log it and let their loop wind down.
	FetchPage(ctx context.Context, pageURL string) (ArrivalsPage, error)
}

// StatusArrivalsFeed is the multi-status aggregator feed. Flights are
// bucketed by status and each bucket is fetched with a separate request.
type StatusArrivalsFeed interface {
	// HasCredentials reports whether the feed's credentials are configured.
	HasCredentials() bool

	// Statuses returns the feed's status buckets in deduplication priority
	// order, highest first.
	Statuses() []string

	// FetchByStatus retrieves and normalizes one status bucket for the
	// given destination airport.
	FetchByStatus(ctx context.Context, airportCode, status string) ([]FlightRecord, error)
}

// MetadataResolver maps airport codes to human-readable metadata. Codes that
// cannot be resolved are simply absent from the result, never an error.
type MetadataResolver interface {
	ResolveMany(ctx context.Context, codes []string) map[string]AirportMetadata
}
