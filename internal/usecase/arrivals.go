package usecase

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/arrivals-board/arrivals-aggregation-service/internal/cache"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/domain"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/infrastructure/logger"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/infrastructure/timeutil"
)

// upstreamDateTimeLayout is the date-time format the arrivals feed expects
// in its fromDateTime/toDateTime filters.
const upstreamDateTimeLayout = "2006-01-02T15:04:05"

// ArrivalsQuery is one validated inbound arrivals request.
type ArrivalsQuery struct {
	// Window is a named time window, "" for none. Ignored when explicit
	// Filters are present.
	Window string

	// MaxPages is the caller's page budget, 0 for the configured default.
	MaxPages int

	// UseDateTimeRange requests the rolling now..now+24h range explicitly.
	// The default query already behaves this way; the flag is accepted for
	// compatibility with existing front-end callers.
	UseDateTimeRange bool

	// Filters are whitelisted upstream filter parameters, passed through
	// as-is when present.
	Filters map[string]string
}

// ArrivalsUseCase serves the primary paginated arrivals feed.
type ArrivalsUseCase interface {
	// Arrivals produces the arrivals list for one query, from cache when a
	// fresh entry exists. The only error it returns is a configuration
	// error; upstream failures degrade to whatever pages were fetched.
	Arrivals(ctx context.Context, query ArrivalsQuery) (*domain.ArrivalsResponse, error)
}

// ArrivalsConfig tunes the arrivals orchestrator.
type ArrivalsConfig struct {
	// Timezone is the IANA timezone of the home airport
	Timezone string

	// MaxPages is the default page budget
	MaxPages int

	// ArrivalsPerHour and PageSize feed the starting-page estimate
	ArrivalsPerHour int
	PageSize        int
}

// DefaultArrivalsConfig returns the orchestrator defaults.
func DefaultArrivalsConfig() ArrivalsConfig {
	return ArrivalsConfig{
		Timezone:        timeutil.Amsterdam,
		MaxPages:        DefaultMaxPages,
		ArrivalsPerHour: DefaultArrivalsPerHour,
		PageSize:        DefaultPageSize,
	}
}

type arrivalsUseCase struct {
	feed     domain.ScheduledArrivalsFeed
	enricher *Enricher
	cache    *cache.Cache[domain.ArrivalsResponse]
	clock    timeutil.Clock
	loc      *time.Location
	cfg      ArrivalsConfig
	log      *logger.Logger
}

// NewArrivalsUseCase wires the arrivals orchestrator. A nil clock defaults
// to real time, a nil log to a no-op logger; zero config fields fall back
// to the defaults.
func NewArrivalsUseCase(
	feed domain.ScheduledArrivalsFeed,
	enricher *Enricher,
	responseCache *cache.Cache[domain.ArrivalsResponse],
	clock timeutil.Clock,
	cfg ArrivalsConfig,
	log *logger.Logger,
) ArrivalsUseCase {
	defaults := DefaultArrivalsConfig()
	if cfg.Timezone == "" {
		cfg.Timezone = defaults.Timezone
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = defaults.MaxPages
	}
	if cfg.ArrivalsPerHour <= 0 {
		cfg.ArrivalsPerHour = defaults.ArrivalsPerHour
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaults.PageSize
	}
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if log == nil {
		log = logger.Nop()
	}

	return &arrivalsUseCase{
		feed:     feed,
		enricher: enricher,
		cache:    responseCache,
		clock:    clock,
		loc:      timeutil.MustGetLocation(cfg.Timezone),
		cfg:      cfg,
		log:      log,
	}
}

// Arrivals implements ArrivalsUseCase.
func (uc *arrivalsUseCase) Arrivals(ctx context.Context, query ArrivalsQuery) (*domain.ArrivalsResponse, error) {
	if !uc.feed.HasCredentials() {
		return nil, domain.ErrMissingCredentials
	}

	now := uc.clock.Now().In(uc.loc)
	localDate := timeutil.FormatDate(now)

	params, window, windowStart := uc.buildParams(query, now)

	key := uc.cacheKey(localDate, query, window)
	if entry, ok := uc.cache.Get(key); ok {
		resp := entry.Data
		resp.Meta.Cached = true
		resp.Meta.CacheAgeSeconds = int64(uc.cache.Age(entry).Seconds())
		resp.Meta.NextUpdate = timeutil.FormatISO(uc.cache.ExpiresAt(entry))
		uc.log.Debug().Str("key", key).Msg("Arrivals served from cache")
		return &resp, nil
	}

	maxPages := query.MaxPages
	if maxPages <= 0 {
		maxPages = uc.cfg.MaxPages
	}

	if startPage := EstimateStartPage(now.Sub(windowStart), uc.cfg.ArrivalsPerHour, uc.cfg.PageSize); startPage > 0 {
		params.Set("page", strconv.Itoa(startPage))
	}

	flights, meta := uc.paginate(ctx, uc.feed.FirstPageURL(params), maxPages, NewFutureChecker(now))

	flights = uc.enricher.Enrich(ctx, flights)
	domain.SortByScheduleTime(flights)

	meta.AvailableTimeWindows = domain.AllWindowNames()
	resp := domain.NewArrivalsResponse(flights, domain.TimeInfo{
		LocalDate: localDate,
		LocalTime: timeutil.FormatTime(now),
		Timezone:  uc.cfg.Timezone,
		Window:    window,
	}, meta)

	uc.cache.Set(key, *resp)
	return resp, nil
}

// paginate walks the feed from firstURL, keeping only future flights. It
// stops on an empty page, an exhausted feed, the page budget, or a run of
// consecutive pages with no future flights. Fetch errors are logged and the
// empty page they accompany winds the loop down.
func (uc *arrivalsUseCase) paginate(ctx context.Context, firstURL string, maxPages int, future FutureChecker) ([]domain.FlightRecord, domain.ResponseMeta) {
	var flights []domain.FlightRecord
	var meta domain.ResponseMeta

	pageURL := firstURL
	futurelessRun := 0
	for meta.PagesRetrieved < maxPages {
		page, err := uc.feed.FetchPage(ctx, pageURL)
		if err != nil {
			uc.log.Warn().Err(err).Str("url", pageURL).Msg("Arrivals page fetch failed")
		}
		meta.PagesRetrieved++
		meta.TotalFlights += len(page.Flights)
		meta.HasMorePages = page.HasMore

		futureOnPage := 0
		for _, f := range page.Flights {
			if future.InFuture(f.ScheduleDateTime) {
				flights = append(flights, f)
				futureOnPage++
			}
		}
		if futureOnPage == 0 {
			futurelessRun++
		} else {
			futurelessRun = 0
		}

		if len(page.Flights) == 0 || !page.HasMore {
			break
		}
		if futurelessRun >= futurelessPageLimit {
			uc.log.Debug().Int("pages", meta.PagesRetrieved).Msg("Stopping pagination, feed has moved past relevant data")
			break
		}
		pageURL = page.NextURL
	}

	return flights, meta
}

// buildParams assembles the upstream query. Explicit filters pass through
// untouched apart from the forced arrival direction; otherwise the query is
// scoped to the requested window, or to a rolling now..now+24h range. The
// returned instant anchors the starting-page estimate.
func (uc *arrivalsUseCase) buildParams(query ArrivalsQuery, now time.Time) (url.Values, *domain.TimeWindow, time.Time) {
	params := url.Values{}
	for k, v := range query.Filters {
		params.Set(k, v)
	}
	params.Set("flightDirection", "A")

	if len(query.Filters) > 0 {
		return params, nil, now
	}

	params.Set("searchDateTimeField", "scheduleDateTime")
	params.Set("sort", "+scheduleTime")

	var window *domain.TimeWindow
	var start, end time.Time
	switch {
	case query.Window == domain.WindowCurrent:
		w := domain.CurrentWindow(now)
		window = &w
		start, end = domain.CurrentBounds(now)
	case query.Window != "":
		// An unknown window name is treated as no window at all.
		if w, ok := domain.LookupWindow(query.Window); ok {
			window = &w
			start, end = w.Bounds(now)
		}
	}
	if window == nil {
		start, end = now, now.Add(24*time.Hour)
	}

	params.Set("fromDateTime", start.Format(upstreamDateTimeLayout))
	params.Set("toDateTime", end.Format(upstreamDateTimeLayout))
	return params, window, start
}

// cacheKey fingerprints the query: explicit filters get the canonical
// params key, window queries the date_window key.
func (uc *arrivalsUseCase) cacheKey(localDate string, query ArrivalsQuery, window *domain.TimeWindow) string {
	if len(query.Filters) > 0 {
		return cache.ParamsKey(localDate, query.Filters)
	}
	name := ""
	if window != nil {
		name = window.Name
	}
	return cache.WindowKey(localDate, name)
}
