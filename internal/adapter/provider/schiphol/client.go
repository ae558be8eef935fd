// Package schiphol fetches paginated arrival data from the Schiphol
// public-flights API. Pagination follows the Link response header; transport
// failures degrade to an empty page so the caller's loop terminates cleanly.
package schiphol

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	"github.com/arrivals-board/arrivals-aggregation-service/internal/domain"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/infrastructure/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultBaseURL is the origin of the Schiphol public-flights API.
const DefaultBaseURL = "https://api.schiphol.nl"

// flightsPath is the arrivals/departures listing endpoint.
const flightsPath = "/public-flights/flights"

// placeholderOrigin is the literal host placeholder the API emits in its
// Link headers; it must be rewritten to the real origin before following.
const placeholderOrigin = "protocol://server_address:port"

// Page is one page of upstream flight data.
type Page struct {
	// Flights holds the raw records of this page
	Flights []RawFlight

	// HasMore is true when the Link header advertised a next page
	HasMore bool

	// NextURL is the fully-qualified URL of the next page, "" when done
	NextURL string
}

// Client talks to the Schiphol public-flights API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	appID      string
	appKey     string
	limiter    *rate.Limiter
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

// WithRateLimiter sets a client-side request rate limiter.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(cl *Client) { cl.limiter = l }
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(cl *Client) { cl.log = log.WithFeed("schiphol") }
}

// NewClient creates a Schiphol API client authenticated with the given
// application credentials.
func NewClient(appID, appKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    DefaultBaseURL,
		appID:      appID,
		appKey:     appKey,
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HasCredentials reports whether both application credentials are configured.
func (c *Client) HasCredentials() bool {
	return c.appID != "" && c.appKey != ""
}

// FlightsURL builds the first-page URL for the given query parameters.
// Subsequent pages are addressed by the URLs the API returns; the upstream
// embeds all query state there.
func (c *Client) FlightsURL(params url.Values) string {
	return c.baseURL + flightsPath + "?" + params.Encode()
}

// FetchPage issues one GET for the given page URL. A non-200 status or a
// transport error yields an empty page with HasMore=false together with the
// error; callers log it and let their loop wind down rather than abort.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (Page, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Page{}, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Page{}, fmt.Errorf("build flights request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("ResourceVersion", "v4")
	req.Header.Set("app_id", c.appID)
	req.Header.Set("app_key", c.appKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("fetch flights page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Page{}, fmt.Errorf("%w: flights page returned %d", domain.ErrUpstreamStatus, resp.StatusCode)
	}

	var payload flightsPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Page{}, fmt.Errorf("decode flights page: %w", err)
	}

	nextURL := c.nextPageURL(resp.Header.Get("Link"))
	return Page{
		Flights: payload.Flights,
		HasMore: nextURL != "",
		NextURL: nextURL,
	}, nil
}

// nextPageURL extracts the rel="next" target from a Link header and rewrites
// placeholder or path-only URLs against the known API origin.
func (c *Client) nextPageURL(linkHeader string) string {
	if linkHeader == "" {
		return ""
	}

	for _, link := range strings.Split(linkHeader, ",") {
		link = strings.TrimSpace(link)
		if !strings.Contains(link, `rel="next"`) {
			continue
		}

		start := strings.IndexByte(link, '<')
		end := strings.IndexByte(link, '>')
		if start < 0 || end <= start+1 {
			continue
		}
		next := link[start+1 : end]

		switch {
		case strings.HasPrefix(next, placeholderOrigin):
			next = c.baseURL + strings.TrimPrefix(next, placeholderOrigin)
		case strings.HasPrefix(next, "/"):
			next = c.baseURL + next
		}
		return next
	}
	return ""
}
