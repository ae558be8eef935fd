package airports

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrivals-board/arrivals-aggregation-service/internal/domain"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/infrastructure/timeutil"
)

// newTestUpstreams builds a primary-API server and a dataset server, returning
// the servers plus counters of how many requests each received.
func newTestUpstreams(t *testing.T, primaryStatus int) (*httptest.Server, *httptest.Server, *atomic.Int64, *atomic.Int64) {
	t.Helper()

	var primaryCalls, datasetCalls atomic.Int64

	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		primaryCalls.Add(1)
		if primaryStatus != http.StatusOK {
			w.WriteHeader(primaryStatus)
			return
		}
		code := r.URL.Query().Get("iata_code")
		fmt.Fprintf(w, `{"data":[{"airport_name":"%s Airport","iata_code":"%s","country_iso2":"NL","city":"%s City"}]}`, code, code, code)
	}))
	t.Cleanup(primary.Close)

	dataset := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		datasetCalls.Add(1)
		fmt.Fprint(w, sampleDataset)
	}))
	t.Cleanup(dataset.Close)

	return primary, dataset, &primaryCalls, &datasetCalls
}

func newTestResolver(primary, dataset *httptest.Server, budget int, clock timeutil.Clock) *Resolver {
	return NewResolver(Config{
		BaseURL:    primary.URL,
		APIKey:     "test-key",
		DatasetURL: dataset.URL + "/airports.csv",
		CallBudget: budget,
		TableTTL:   24 * time.Hour,
	}, primary.Client(), clock, nil)
}

func TestResolver_PrimaryLookup(t *testing.T) {
	primary, dataset, primaryCalls, datasetCalls := newTestUpstreams(t, http.StatusOK)
	r := newTestResolver(primary, dataset, 90, nil)

	meta, ok := r.Resolve(context.Background(), "ams")
	require.True(t, ok)
	assert.Equal(t, "AMS City", meta.City)
	assert.Equal(t, "NL", meta.Country)
	assert.Equal(t, domain.SourcePrimaryAPI, meta.Source)
	assert.Equal(t, int64(1), primaryCalls.Load())
	assert.Equal(t, int64(0), datasetCalls.Load(), "dataset untouched while budget lasts")

	// Second resolve of the same code is served from the table.
	_, ok = r.Resolve(context.Background(), "AMS")
	require.True(t, ok)
	assert.Equal(t, int64(1), primaryCalls.Load())
}

func TestResolver_FallbackWhenBudgetExhausted(t *testing.T) {
	primary, dataset, primaryCalls, _ := newTestUpstreams(t, http.StatusOK)
	r := newTestResolver(primary, dataset, 0, nil)

	// Codes present in the fallback dataset resolve even with no budget.
	for _, code := range []string{"AMS", "LIN", "BHX"} {
		meta, ok := r.Resolve(context.Background(), code)
		require.True(t, ok, "code %s should resolve from dataset", code)
		assert.Equal(t, domain.SourceFallbackDataset, meta.Source)
	}
	assert.Equal(t, int64(0), primaryCalls.Load())
}

func TestResolver_FallbackWhenPrimaryFails(t *testing.T) {
	primary, dataset, _, datasetCalls := newTestUpstreams(t, http.StatusInternalServerError)
	r := newTestResolver(primary, dataset, 90, nil)

	meta, ok := r.Resolve(context.Background(), "LIN")
	require.True(t, ok)
	assert.Equal(t, "Milan", meta.City)
	assert.Equal(t, domain.SourceFallbackDataset, meta.Source)
	assert.Equal(t, int64(1), datasetCalls.Load())
}

func TestResolver_UnresolvableCode(t *testing.T) {
	primary, dataset, _, _ := newTestUpstreams(t, http.StatusOK)
	r := newTestResolver(primary, dataset, 0, nil)

	_, ok := r.Resolve(context.Background(), "ZZZ")
	assert.False(t, ok)

	_, ok = r.Resolve(context.Background(), "TOOLONG")
	assert.False(t, ok)

	_, ok = r.Resolve(context.Background(), "")
	assert.False(t, ok)
}

func TestResolver_BulkLoadOncePerEpoch(t *testing.T) {
	primary, dataset, _, datasetCalls := newTestUpstreams(t, http.StatusOK)
	clock := timeutil.NewMockClockFromString("2026-03-01T12:00:00+01:00")
	r := newTestResolver(primary, dataset, 0, clock)

	r.Resolve(context.Background(), "AMS")
	r.Resolve(context.Background(), "ZZZ")
	r.Resolve(context.Background(), "LIN")
	assert.Equal(t, int64(1), datasetCalls.Load(), "one bulk load per epoch")

	// A new epoch permits one fresh load.
	clock.AdvanceHours(25)
	r.Resolve(context.Background(), "AMS")
	assert.Equal(t, int64(2), datasetCalls.Load())
}

func TestResolveMany_FiltersCachedAndDeduplicates(t *testing.T) {
	primary, dataset, primaryCalls, _ := newTestUpstreams(t, http.StatusOK)
	r := newTestResolver(primary, dataset, 90, nil)

	r.Resolve(context.Background(), "AMS")
	require.Equal(t, int64(1), primaryCalls.Load())

	got := r.ResolveMany(context.Background(), []string{"AMS", "ams", "LIN", "LIN"})
	assert.Len(t, got, 2)
	// AMS came from the table, LIN cost exactly one more call.
	assert.Equal(t, int64(2), primaryCalls.Load())
}

func TestResolveMany_NeverExceedsBudget(t *testing.T) {
	primary, dataset, primaryCalls, _ := newTestUpstreams(t, http.StatusOK)
	r := newTestResolver(primary, dataset, 2, nil)

	// Demand far more codes than the budget allows: the batch must switch to
	// one bulk load instead of spending per-code calls.
	codes := []string{"AMS", "LIN", "BHX", "ORD", "IST", "NCE", "OPO", "SVQ"}
	got := r.ResolveMany(context.Background(), codes)

	assert.LessOrEqual(t, primaryCalls.Load(), int64(2))
	// Dataset-backed codes still resolve.
	assert.Contains(t, got, "AMS")
	assert.Contains(t, got, "LIN")
	assert.Contains(t, got, "BHX")
}

func TestResolveMany_EmptyAndInvalidInput(t *testing.T) {
	primary, dataset, primaryCalls, datasetCalls := newTestUpstreams(t, http.StatusOK)
	r := newTestResolver(primary, dataset, 90, nil)

	got := r.ResolveMany(context.Background(), []string{"", "TOOLONG", "ab"})
	assert.Empty(t, got)
	assert.Equal(t, int64(0), primaryCalls.Load())
	assert.Equal(t, int64(0), datasetCalls.Load())
}

func TestCallBudget(t *testing.T) {
	b := NewCallBudget(2)

	assert.True(t, b.Take())
	assert.True(t, b.Take())
	assert.False(t, b.Take(), "third take exceeds the budget")
	assert.Equal(t, 0, b.Remaining())

	b.Reset(5)
	assert.Equal(t, 5, b.Remaining())
	assert.True(t, b.Take())
}
