package flightdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrivals-board/arrivals-aggregation-service/internal/domain"
)

const flightsBody = `{
	"data": [
		{
			"flight_date": "2026-03-01",
			"flight_status": "active",
			"departure": {"airport": "Milano Linate", "iata": "LIN", "scheduled": "2026-03-01T07:30:00+01:00"},
			"arrival": {"airport": "Amsterdam Schiphol", "iata": "AMS", "terminal": "3", "gate": "D7", "delay": 12, "scheduled": "2026-03-01T09:05:00+01:00"},
			"airline": {"name": "KLM", "iata": "KL", "icao": "KLM"},
			"flight": {"number": "1234", "iata": "KL1234", "icao": "KLM1234"},
			"aircraft": {"iata": "73H", "icao": "B738"}
		}
	]
}`

func TestFetchByStatus(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		assert.Equal(t, "/flights", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(flightsBody))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	flights, err := client.FetchByStatus(context.Background(), "AMS", "active")
	require.NoError(t, err)
	require.Len(t, flights, 1)

	assert.Equal(t, "test-key", gotQuery["access_key"])
	assert.Equal(t, "AMS", gotQuery["arr_iata"])
	assert.Equal(t, "active", gotQuery["flight_status"])
	assert.Equal(t, "100", gotQuery["limit"])

	f := flights[0]
	assert.Equal(t, "KL1234", f.Flight.IATA)
	assert.Equal(t, "active", f.FlightStatus)
	assert.Equal(t, "LIN", f.Departure.IATA)
	assert.Equal(t, "AMS", f.Arrival.IATA)
	require.NotNil(t, f.Arrival.Delay)
	assert.Equal(t, 12, *f.Arrival.Delay)
	assert.False(t, f.IsCodeshare())
}

func TestFetchByStatusUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))

	_, err := client.FetchByStatus(context.Background(), "AMS", "landed")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamStatus)
}

func TestHasCredentials(t *testing.T) {
	assert.True(t, NewClient("key").HasCredentials())
	assert.False(t, NewClient("").HasCredentials())
}
