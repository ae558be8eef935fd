package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arrivals-board/arrivals-aggregation-service/internal/cache"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/domain"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/infrastructure/logger"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/infrastructure/timeutil"
)

// LiveArrivalsUseCase serves the multi-status aggregator feed: one request
// per status bucket, fanned out concurrently and merged.
type LiveArrivalsUseCase interface {
	// LiveArrivals produces the merged live arrivals list for one airport.
	// A failed status branch degrades to an empty bucket and flags the
	// response as partial; only a configuration error is returned.
	LiveArrivals(ctx context.Context, airportCode string) (*domain.ArrivalsResponse, error)
}

type liveArrivalsUseCase struct {
	feed     domain.StatusArrivalsFeed
	enricher *Enricher
	cache    *cache.Cache[domain.ArrivalsResponse]
	clock    timeutil.Clock
	loc      *time.Location
	timezone string
	log      *logger.Logger
}

// NewLiveArrivalsUseCase wires the live arrivals orchestrator. A nil clock
// defaults to real time, a nil log to a no-op logger, an empty timezone to
// the home airport's.
func NewLiveArrivalsUseCase(
	feed domain.StatusArrivalsFeed,
	enricher *Enricher,
	responseCache *cache.Cache[domain.ArrivalsResponse],
	clock timeutil.Clock,
	timezone string,
	log *logger.Logger,
) LiveArrivalsUseCase {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if timezone == "" {
		timezone = timeutil.Amsterdam
	}
	if log == nil {
		log = logger.Nop()
	}

	return &liveArrivalsUseCase{
		feed:     feed,
		enricher: enricher,
		cache:    responseCache,
		clock:    clock,
		loc:      timeutil.MustGetLocation(timezone),
		timezone: timezone,
		log:      log,
	}
}

// LiveArrivals implements LiveArrivalsUseCase.
func (uc *liveArrivalsUseCase) LiveArrivals(ctx context.Context, airportCode string) (*domain.ArrivalsResponse, error) {
	if !uc.feed.HasCredentials() {
		return nil, domain.ErrMissingCredentials
	}

	now := uc.clock.Now().In(uc.loc)
	localDate := timeutil.FormatDate(now)

	key := cache.ParamsKey(localDate, map[string]string{"arr_iata": airportCode})
	if entry, ok := uc.cache.Get(key); ok {
		resp := entry.Data
		resp.Meta.Cached = true
		resp.Meta.CacheAgeSeconds = int64(uc.cache.Age(entry).Seconds())
		resp.Meta.NextUpdate = timeutil.FormatISO(uc.cache.ExpiresAt(entry))
		uc.log.Debug().Str("key", key).Msg("Live arrivals served from cache")
		return &resp, nil
	}

	statuses := uc.feed.Statuses()
	buckets := make([][]domain.FlightRecord, len(statuses))
	failures := make([]error, len(statuses))

	g, gctx := errgroup.WithContext(ctx)
	for i, status := range statuses {
		i, status := i, status
		g.Go(func() error {
			flights, err := uc.feed.FetchByStatus(gctx, airportCode, status)
			if err != nil {
				// A failed branch must not cancel its siblings.
				uc.log.Warn().Err(err).Str("status", status).Msg("Status bucket fetch failed")
				failures[i] = err
				return nil
			}
			buckets[i] = flights
			return nil
		})
	}
	_ = g.Wait()

	var meta domain.ResponseMeta
	var merged []domain.FlightRecord
	for i, bucket := range buckets {
		if failures[i] != nil {
			meta.PartialData = true
			continue
		}
		meta.PagesRetrieved++
		meta.TotalFlights += len(bucket)
		merged = append(merged, bucket...)
	}

	flights := Dedupe(merged)
	flights = uc.enricher.Enrich(ctx, flights)
	domain.SortByScheduleTime(flights)

	resp := domain.NewArrivalsResponse(flights, domain.TimeInfo{
		LocalDate: localDate,
		LocalTime: timeutil.FormatTime(now),
		Timezone:  uc.timezone,
	}, meta)

	uc.cache.Set(key, *resp)
	return resp, nil
}
