// Package airports resolves 3-letter airport codes to city, country and
// display-name metadata. Lookups hit an in-memory table first, then a
// per-code primary API while a small call budget lasts, then a bulk public
// dataset that is loaded at most once per cache epoch.
package airports

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/arrivals-board/arrivals-aggregation-service/internal/domain"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/infrastructure/logger"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/infrastructure/retry"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/infrastructure/timeutil"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Default resolver settings.
const (
	// DefaultCallBudget caps primary API lookups per cache epoch.
	DefaultCallBudget = 90

	// DefaultTableTTL is how long resolved metadata stays valid. The table
	// lives for the process lifetime but is refreshed after this long.
	DefaultTableTTL = 24 * time.Hour
)

// Config holds the resolver settings.
type Config struct {
	// BaseURL is the origin of the primary lookup API
	BaseURL string

	// APIKey authenticates the primary lookup API (query parameter)
	APIKey string

	// DatasetURL is the bulk fallback dataset location
	DatasetURL string

	// CallBudget caps primary API calls per epoch (default 90)
	CallBudget int

	// TableTTL bounds the metadata table lifetime (default 24h)
	TableTTL time.Duration
}

// Resolver maps airport codes to metadata. All methods are safe for
// concurrent use; the bulk fallback load runs at most once per epoch.
type Resolver struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	datasetURL string
	budget     *CallBudget
	budgetSize int
	ttl        time.Duration
	clock      timeutil.Clock
	log        *logger.Logger

	mu         sync.Mutex
	table      map[string]domain.AirportMetadata
	epochStart time.Time
	bulkLoaded bool
}

// NewResolver creates a resolver. A nil httpClient defaults to
// http.DefaultClient, a nil clock to real time, a nil log to a no-op logger.
func NewResolver(cfg Config, httpClient *http.Client, clock timeutil.Clock, log *logger.Logger) *Resolver {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if log == nil {
		log = logger.Nop()
	}
	if cfg.DatasetURL == "" {
		cfg.DatasetURL = DefaultDatasetURL
	}
	if cfg.CallBudget <= 0 {
		cfg.CallBudget = DefaultCallBudget
	}
	if cfg.TableTTL <= 0 {
		cfg.TableTTL = DefaultTableTTL
	}

	return &Resolver{
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		datasetURL: cfg.DatasetURL,
		budget:     NewCallBudget(cfg.CallBudget),
		budgetSize: cfg.CallBudget,
		ttl:        cfg.TableTTL,
		clock:      clock,
		log:        log,
		table:      make(map[string]domain.AirportMetadata),
		epochStart: clock.Now(),
	}
}

// Budget exposes the call budget, mainly for tests and diagnostics.
func (r *Resolver) Budget() *CallBudget {
	return r.budget
}

// Resolve returns metadata for one airport code. An unresolvable code yields
// ok=false, never an error: callers leave the metadata fields blank.
func (r *Resolver) Resolve(ctx context.Context, code string) (domain.AirportMetadata, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return domain.AirportMetadata{}, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rollEpochLocked()

	if meta, ok := r.table[code]; ok {
		return meta, true
	}

	if r.budget.Take() {
		if meta, err := r.lookupPrimary(ctx, code); err == nil {
			r.table[code] = meta
			return meta, true
		} else {
			r.log.Warn().Err(err).Str("code", code).Msg("Primary airport lookup failed, using dataset fallback")
		}
	}

	r.loadDatasetLocked(ctx)
	meta, ok := r.table[code]
	return meta, ok
}

// ResolveMany resolves a batch of codes, returning an entry per code that
// could be resolved. Already-cached codes are filtered first; when the budget
// cannot cover the remainder one bulk load replaces N primary calls.
func (r *Resolver) ResolveMany(ctx context.Context, codes []string) map[string]domain.AirportMetadata {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rollEpochLocked()

	result := make(map[string]domain.AirportMetadata, len(codes))
	var missing []string
	seen := make(map[string]bool, len(codes))

	for _, raw := range codes {
		code := strings.ToUpper(strings.TrimSpace(raw))
		if len(code) != 3 || seen[code] {
			continue
		}
		seen[code] = true

		if meta, ok := r.table[code]; ok {
			result[code] = meta
		} else {
			missing = append(missing, code)
		}
	}

	if len(missing) == 0 {
		return result
	}

	// The bulk path costs one dataset fetch regardless of batch size, so
	// prefer it whenever the budget cannot cover every missing code.
	if r.budget.Remaining() >= len(missing) {
		var failed bool
		for _, code := range missing {
			if !r.budget.Take() {
				failed = true
				break
			}
			meta, err := r.lookupPrimary(ctx, code)
			if err != nil {
				r.log.Warn().Err(err).Str("code", code).Msg("Primary airport lookup failed in batch")
				failed = true
				break
			}
			r.table[code] = meta
			result[code] = meta
		}
		if !failed {
			return result
		}
	}

	r.loadDatasetLocked(ctx)
	for _, code := range missing {
		if meta, ok := r.table[code]; ok {
			result[code] = meta
		}
	}
	return result
}

// rollEpochLocked starts a fresh epoch when the table has outlived its TTL.
func (r *Resolver) rollEpochLocked() {
	if r.clock.Now().Sub(r.epochStart) < r.ttl {
		return
	}
	r.table = make(map[string]domain.AirportMetadata)
	r.epochStart = r.clock.Now()
	r.bulkLoaded = false
}

// loadDatasetLocked populates the table from the fallback dataset. The load
// runs at most once per epoch; a failed load consumes the epoch's attempt.
func (r *Resolver) loadDatasetLocked(ctx context.Context) {
	if r.bulkLoaded {
		return
	}
	r.bulkLoaded = true

	table, err := retry.DoWithResult(ctx, func() (map[string]domain.AirportMetadata, error) {
		return fetchDataset(ctx, r.httpClient, r.datasetURL)
	}, retry.UpstreamConfig)
	if err != nil {
		r.log.Error().Err(err).Str("url", r.datasetURL).Msg("Fallback dataset load failed")
		return
	}

	for code, meta := range table {
		// Primary-API entries are fresher; keep them.
		if _, exists := r.table[code]; !exists {
			r.table[code] = meta
		}
	}
	r.budget.Reset(r.budgetSize)
	r.log.Info().Int("airports", len(table)).Msg("Fallback dataset loaded")
}

// primaryResponse is the wire shape of the primary lookup API.
type primaryResponse struct {
	Data []struct {
		AirportName string `json:"airport_name"`
		IATACode    string `json:"iata_code"`
		CountryISO2 string `json:"country_iso2"`
		City        string `json:"city"`
	} `json:"data"`
}

// lookupPrimary queries the primary API for a single code.
func (r *Resolver) lookupPrimary(ctx context.Context, code string) (domain.AirportMetadata, error) {
	if r.baseURL == "" || r.apiKey == "" {
		return domain.AirportMetadata{}, domain.ErrMissingCredentials
	}

	return retry.DoWithResult(ctx, func() (domain.AirportMetadata, error) {
		q := url.Values{}
		q.Set("access_key", r.apiKey)
		q.Set("iata_code", code)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/airports?"+q.Encode(), nil)
		if err != nil {
			return domain.AirportMetadata{}, retry.NewPermanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := r.httpClient.Do(req)
		if err != nil {
			return domain.AirportMetadata{}, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return domain.AirportMetadata{}, fmt.Errorf("%w: airport lookup returned %d", domain.ErrUpstreamStatus, resp.StatusCode)
		}

		var payload primaryResponse
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return domain.AirportMetadata{}, retry.NewPermanent(fmt.Errorf("decode airport lookup: %w", err))
		}
		if len(payload.Data) == 0 {
			return domain.AirportMetadata{}, retry.NewPermanent(fmt.Errorf("airport %s not found", code))
		}

		entry := payload.Data[0]
		return domain.AirportMetadata{
			City:    entry.City,
			Country: entry.CountryISO2,
			Name:    entry.AirportName,
			Source:  domain.SourcePrimaryAPI,
		}, nil
	}, retry.UpstreamConfig.WithRetryIf(retry.SkipPermanent))
}
