package flightdata

import (
	"context"

	"github.com/arrivals-board/arrivals-aggregation-service/internal/domain"
)

// Feed adapts the client to the multi-status arrivals feed the use cases
// consume.
type Feed struct {
	client *Client
}

// NewFeed wraps a client.
func NewFeed(client *Client) *Feed {
	return &Feed{client: client}
}

// HasCredentials reports whether the access key is configured.
func (f *Feed) HasCredentials() bool {
	return f.client.HasCredentials()
}

// Statuses returns the feed's status buckets in deduplication priority
// order, highest first.
func (f *Feed) Statuses() []string {
	return Statuses
}

// FetchByStatus retrieves and normalizes one status bucket.
func (f *Feed) FetchByStatus(ctx context.Context, airportCode, status string) ([]domain.FlightRecord, error) {
	raw, err := f.client.FetchByStatus(ctx, airportCode, status)
	if err != nil {
		return nil, err
	}
	return Normalize(raw), nil
}

var _ domain.StatusArrivalsFeed = (*Feed)(nil)
