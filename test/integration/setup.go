// Package integration provides helpers and integration tests for the
// arrivals aggregation service. The tests wire real orchestrators, caches
// and provider clients against httptest upstream stubs and exercise the
// HTTP surface end to end.
package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/labstack/echo/v4"

	httpAdapter "github.com/arrivals-board/arrivals-aggregation-service/internal/adapter/http"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/adapter/provider/flightdata"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/adapter/provider/schiphol"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/airports"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/cache"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/domain"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/infrastructure/timeutil"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/usecase"
)

// testNow is noon local time at the home airport, injected everywhere a
// clock is consumed so the future filter and windows are deterministic.
var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, timeutil.MustGetLocation(timeutil.Amsterdam))

// scheduleAt formats an offset from testNow as the upstream's local
// ISO-8601 schedule instant.
func scheduleAt(offset time.Duration) string {
	return testNow.Add(offset).Format(time.RFC3339)
}

// schipholFlight builds one raw upstream record as the JSON body expects it.
func schipholFlight(name string, offset time.Duration, states ...string) map[string]any {
	if len(states) == 0 {
		states = []string{"SCH"}
	}
	at := testNow.Add(offset)
	return map[string]any{
		"flightName":       name,
		"mainFlight":       name,
		"scheduleDate":     at.Format("2006-01-02"),
		"scheduleTime":     at.Format("15:04:05"),
		"scheduleDateTime": at.Format(time.RFC3339),
		"prefixIATA":       "KL",
		"route":            map[string]any{"destinations": []string{"LIN"}},
		"publicFlightState": map[string]any{
			"flightStates": states,
		},
	}
}

// schipholStub serves pages of raw flights with Link pagination headers.
type schipholStub struct {
	pages [][]map[string]any
	calls int
}

func (s *schipholStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.calls++
		page := 0
		fmt.Sscanf(r.URL.Query().Get("page"), "%d", &page)
		if page >= len(s.pages) {
			page = len(s.pages) - 1
		}
		if page+1 < len(s.pages) {
			w.Header().Set("Link", fmt.Sprintf(`</public-flights/flights?page=%d>; rel="next"`, page+1))
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"flights": s.pages[page]})
	}
}

// TestServer wraps an Echo instance wired with real use cases against stub
// upstreams.
type TestServer struct {
	Echo  *echo.Echo
	Clock *timeutil.MockClock

	// UpstreamCalls counts requests the stub upstream served, when the
	// builder tracks them.
	UpstreamCalls *int

	upstream *httptest.Server
	metadata *httptest.Server
}

// Close shuts down the stub upstream servers.
func (ts *TestServer) Close() {
	ts.upstream.Close()
	ts.metadata.Close()
}

// Get executes a test GET request and returns the recorder.
func (ts *TestServer) Get(target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, req)
	return rec
}

// metadataDataset is the bulk fallback body the resolver stub serves.
const metadataDataset = `"id","ident","type","name","latitude_deg","longitude_deg","elevation_ft","continent","iso_country","iso_region","municipality","scheduled_service","icao_code","iata_code"
2434,"EHAM","large_airport","Amsterdam Airport Schiphol",52.3,4.76,-11,"EU","NL","NL-NH","Amsterdam","yes","EHAM","AMS"
4309,"LIML","medium_airport","Milano Linate Airport",45.46,9.27,353,"EU","IT","IT-25","Milan","yes","LIML","LIN"
`

// NewArrivalsServer builds a server whose arrivals endpoint walks the given
// upstream pages. Airport metadata always comes from the bulk dataset stub.
func NewArrivalsServer(pages [][]map[string]any) *TestServer {
	return newArrivalsServer(pages, "test-id", "test-key")
}

// NewDegradedArrivalsServer builds a server whose scheduled feed has no
// credentials configured.
func NewDegradedArrivalsServer() *TestServer {
	return newArrivalsServer(nil, "", "")
}

func newArrivalsServer(pages [][]map[string]any, appID, appKey string) *TestServer {
	stub := &schipholStub{pages: pages}
	upstream := httptest.NewServer(stub.handler())
	metadata := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, metadataDataset)
	}))

	clock := timeutil.NewMockClock(testNow)
	loc := timeutil.MustGetLocation(timeutil.Amsterdam)

	client := schiphol.NewClient(appID, appKey, schiphol.WithBaseURL(upstream.URL))
	feed := schiphol.NewFeed(client, "AMS", loc)

	resolver := airports.NewResolver(airports.Config{
		DatasetURL: metadata.URL,
		CallBudget: 0,
	}, nil, clock, nil)

	uc := usecase.NewArrivalsUseCase(feed, usecase.NewEnricher(resolver),
		cache.New[domain.ArrivalsResponse](15*time.Minute, clock), clock, usecase.ArrivalsConfig{}, nil)

	ts := newServer(uc, noopLive{}, upstream, metadata, clock)
	ts.UpstreamCalls = &stub.calls
	return ts
}

// NewLiveServer builds a server whose live endpoint fans out to the given
// flightdata-style upstream handler.
func NewLiveServer(upstreamHandler http.HandlerFunc) *TestServer {
	return newLiveServer(upstreamHandler, "test-key")
}

// NewDegradedLiveServer builds a server whose status feed has no API key.
func NewDegradedLiveServer() *TestServer {
	return newLiveServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, "")
}

func newLiveServer(upstreamHandler http.HandlerFunc, apiKey string) *TestServer {
	upstream := httptest.NewServer(upstreamHandler)
	metadata := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, metadataDataset)
	}))

	clock := timeutil.NewMockClock(testNow)

	client := flightdata.NewClient(apiKey, flightdata.WithBaseURL(upstream.URL))
	feed := flightdata.NewFeed(client)

	resolver := airports.NewResolver(airports.Config{
		DatasetURL: metadata.URL,
		CallBudget: 0,
	}, nil, clock, nil)

	uc := usecase.NewLiveArrivalsUseCase(feed, usecase.NewEnricher(resolver),
		cache.New[domain.ArrivalsResponse](5*time.Minute, clock), clock, "", nil)

	return newServer(noopArrivals{}, uc, upstream, metadata, clock)
}

func newServer(arrivals usecase.ArrivalsUseCase, live usecase.LiveArrivalsUseCase, upstream, metadata *httptest.Server, clock *timeutil.MockClock) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	handler := httpAdapter.NewArrivalsHandler(arrivals, live, "AMS", nil)
	httpAdapter.RegisterRoutes(e, handler)

	return &TestServer{
		Echo:     e,
		Clock:    clock,
		upstream: upstream,
		metadata: metadata,
	}
}

// noopArrivals and noopLive fill the orchestrator slot a server built for
// the other endpoint does not exercise.
type noopArrivals struct{}

func (noopArrivals) Arrivals(context.Context, usecase.ArrivalsQuery) (*domain.ArrivalsResponse, error) {
	return nil, domain.ErrMissingCredentials
}

type noopLive struct{}

func (noopLive) LiveArrivals(context.Context, string) (*domain.ArrivalsResponse, error) {
	return nil, domain.ErrMissingCredentials
}
