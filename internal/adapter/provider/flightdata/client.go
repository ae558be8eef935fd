// Package flightdata fetches arrival data from a generic flight data
// aggregator API. The feed buckets flights by status; the service queries
// the scheduled, active and landed buckets separately.
package flightdata

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/arrivals-board/arrivals-aggregation-service/internal/domain"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/infrastructure/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultBaseURL is the default aggregator API origin.
const DefaultBaseURL = "https://api.aviationstack.com/v1"

// pageLimit is the number of records requested per status bucket. The free
// tier caps result sets well below this.
const pageLimit = 100

// Statuses the feed buckets flights into, in deduplication priority order.
var Statuses = []string{"landed", "active", "scheduled"}

// Client talks to the aggregator API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	log        *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithBaseURL overrides the API origin (used in tests).
func WithBaseURL(u string) Option {
	return func(cl *Client) { cl.baseURL = strings.TrimSuffix(u, "/") }
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(cl *Client) { cl.log = log.WithFeed("flightdata") }
}

// NewClient creates an aggregator API client with the given access key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasCredentials reports whether the access key is configured.
func (c *Client) HasCredentials() bool {
	return c.apiKey != ""
}

// FetchByStatus returns the flights arriving at arrIATA that the feed
// currently buckets under the given status.
func (c *Client) FetchByStatus(ctx context.Context, arrIATA, status string) ([]RawFlight, error) {
	q := url.Values{}
	q.Set("access_key", c.apiKey)
	q.Set("arr_iata", arrIATA)
	q.Set("flight_status", status)
	q.Set("limit", fmt.Sprint(pageLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/flights?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build flights request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s flights: %w", status, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s flights returned %d", domain.ErrUpstreamStatus, status, resp.StatusCode)
	}

	var payload flightsPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode %s flights: %w", status, err)
	}
	return payload.Data, nil
}
