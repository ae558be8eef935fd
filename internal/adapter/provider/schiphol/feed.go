package schiphol

import (
	"context"
	"net/url"
	"time"

	"github.com/arrivals-board/arrivals-aggregation-service/internal/domain"
)

// Feed adapts the client to the paginated arrivals feed the use cases
// consume. Each page is normalized as it is fetched.
type Feed struct {
	client      *Client
	homeAirport string
	loc         *time.Location
}

// NewFeed binds a client to its home airport and local timezone.
func NewFeed(client *Client, homeAirport string, loc *time.Location) *Feed {
	return &Feed{
		client:      client,
		homeAirport: homeAirport,
		loc:         loc,
	}
}

// HasCredentials reports whether the upstream credentials are configured.
func (f *Feed) HasCredentials() bool {
	return f.client.HasCredentials()
}

// FirstPageURL builds the URL of the first page for the given query.
func (f *Feed) FirstPageURL(params url.Values) string {
	return f.client.FlightsURL(params)
}

// FetchPage retrieves and normalizes one page. The error, if any, is for
// logging; the empty page it accompanies lets the caller's loop terminate.
func (f *Feed) FetchPage(ctx context.Context, pageURL string) (domain.ArrivalsPage, error) {
	page, err := f.client.FetchPage(ctx, pageURL)
	return domain.ArrivalsPage{
		Flights: Normalize(page.Flights, f.homeAirport, f.loc),
		HasMore: page.HasMore,
		NextURL: page.NextURL,
	}, err
}

var _ domain.ScheduledArrivalsFeed = (*Feed)(nil)
