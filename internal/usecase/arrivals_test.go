package usecase

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/arrivals-board/arrivals-aggregation-service/internal/cache"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/domain"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/infrastructure/timeutil"
)

// testNow is noon local time at the home airport.
var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, timeutil.MustGetLocation(timeutil.Amsterdam))

func futureFlight(name, schedule string) domain.FlightRecord {
	return domain.FlightRecord{
		FlightName:       name,
		ScheduleDateTime: schedule,
		ScheduleTime:     schedule[11:16],
		Status:           domain.StatusScheduled,
	}
}

// passthroughResolver returns an empty table so enrichment is a no-op.
func passthroughResolver(ctrl *gomock.Controller) *domain.MockMetadataResolver {
	resolver := domain.NewMockMetadataResolver(ctrl)
	resolver.EXPECT().ResolveMany(gomock.Any(), gomock.Any()).
		Return(map[string]domain.AirportMetadata{}).AnyTimes()
	return resolver
}

func newArrivalsForTest(t *testing.T, feed domain.ScheduledArrivalsFeed) (ArrivalsUseCase, *timeutil.MockClock) {
	t.Helper()
	ctrl := gomock.NewController(t)
	clock := timeutil.NewMockClock(testNow)
	responseCache := cache.New[domain.ArrivalsResponse](15*time.Minute, clock)
	uc := NewArrivalsUseCase(feed, NewEnricher(passthroughResolver(ctrl)), responseCache, clock, ArrivalsConfig{}, nil)
	return uc, clock
}

func TestArrivalsMissingCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := domain.NewMockScheduledArrivalsFeed(ctrl)
	feed.EXPECT().HasCredentials().Return(false)

	uc, _ := newArrivalsForTest(t, feed)

	_, err := uc.Arrivals(context.Background(), ArrivalsQuery{})
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
}

func TestArrivalsHappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := domain.NewMockScheduledArrivalsFeed(ctrl)
	feed.EXPECT().HasCredentials().Return(true)

	var gotParams url.Values
	feed.EXPECT().FirstPageURL(gomock.Any()).DoAndReturn(func(params url.Values) string {
		gotParams = params
		return "https://feed.test/flights?page=0"
	})
	feed.EXPECT().FetchPage(gomock.Any(), "https://feed.test/flights?page=0").Return(domain.ArrivalsPage{
		Flights: []domain.FlightRecord{
			futureFlight("KL1234", "2026-03-01T14:30:00+01:00"),
			futureFlight("KL1033", "2026-03-01T13:05:00+01:00"),
			// Past beyond the grace buffer, discarded but counted.
			futureFlight("KL0001", "2026-03-01T09:00:00+01:00"),
		},
		HasMore: true,
		NextURL: "https://feed.test/flights?page=1",
	}, nil)
	feed.EXPECT().FetchPage(gomock.Any(), "https://feed.test/flights?page=1").Return(domain.ArrivalsPage{
		Flights: []domain.FlightRecord{
			futureFlight("KL1678", "2026-03-01T15:45:00+01:00"),
		},
		HasMore: false,
	}, nil)

	uc, _ := newArrivalsForTest(t, feed)

	resp, err := uc.Arrivals(context.Background(), ArrivalsQuery{})
	require.NoError(t, err)

	assert.Equal(t, "A", gotParams.Get("flightDirection"))
	assert.Equal(t, "2026-03-01T12:00:00", gotParams.Get("fromDateTime"))
	assert.Equal(t, "2026-03-02T12:00:00", gotParams.Get("toDateTime"))
	assert.Equal(t, "+scheduleTime", gotParams.Get("sort"))

	require.Len(t, resp.Flights, 3)
	assert.Equal(t, "KL1033", resp.Flights[0].FlightName)
	assert.Equal(t, "KL1234", resp.Flights[1].FlightName)
	assert.Equal(t, "KL1678", resp.Flights[2].FlightName)

	assert.Equal(t, 4, resp.Meta.TotalFlights)
	assert.Equal(t, 2, resp.Meta.PagesRetrieved)
	assert.False(t, resp.Meta.HasMorePages)
	assert.False(t, resp.Meta.Cached)
	assert.Contains(t, resp.Meta.AvailableTimeWindows, "morning")
	assert.Contains(t, resp.Meta.AvailableTimeWindows, "current")

	assert.Equal(t, "2026-03-01", resp.TimeInfo.LocalDate)
	assert.Equal(t, "12:00", resp.TimeInfo.LocalTime)
	assert.Equal(t, timeutil.Amsterdam, resp.TimeInfo.Timezone)
	assert.Nil(t, resp.TimeInfo.Window)
}

func TestArrivalsCacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := domain.NewMockScheduledArrivalsFeed(ctrl)
	feed.EXPECT().HasCredentials().Return(true).Times(2)
	feed.EXPECT().FirstPageURL(gomock.Any()).Return("https://feed.test/flights").Times(1)
	feed.EXPECT().FetchPage(gomock.Any(), gomock.Any()).Return(domain.ArrivalsPage{
		Flights: []domain.FlightRecord{futureFlight("KL1234", "2026-03-01T14:30:00+01:00")},
	}, nil).Times(1)

	uc, clock := newArrivalsForTest(t, feed)

	first, err := uc.Arrivals(context.Background(), ArrivalsQuery{})
	require.NoError(t, err)
	assert.False(t, first.Meta.Cached)

	clock.AdvanceMinutes(5)

	second, err := uc.Arrivals(context.Background(), ArrivalsQuery{})
	require.NoError(t, err)
	assert.True(t, second.Meta.Cached)
	assert.Equal(t, int64(300), second.Meta.CacheAgeSeconds)
	assert.NotEmpty(t, second.Meta.NextUpdate)
	assert.Equal(t, first.Flights, second.Flights)
}

func TestArrivalsPageBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := domain.NewMockScheduledArrivalsFeed(ctrl)
	feed.EXPECT().HasCredentials().Return(true)
	feed.EXPECT().FirstPageURL(gomock.Any()).Return("https://feed.test/flights")

	// The feed claims more pages forever; the budget must still stop the loop.
	feed.EXPECT().FetchPage(gomock.Any(), gomock.Any()).Return(domain.ArrivalsPage{
		Flights: []domain.FlightRecord{futureFlight("KL1234", "2026-03-01T14:30:00+01:00")},
		HasMore: true,
		NextURL: "https://feed.test/flights?page=next",
	}, nil).Times(2)

	uc, _ := newArrivalsForTest(t, feed)

	resp, err := uc.Arrivals(context.Background(), ArrivalsQuery{MaxPages: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Meta.PagesRetrieved)
	assert.True(t, resp.Meta.HasMorePages)
}

func TestArrivalsEarlyStopOnFuturelessRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := domain.NewMockScheduledArrivalsFeed(ctrl)
	feed.EXPECT().HasCredentials().Return(true)
	feed.EXPECT().FirstPageURL(gomock.Any()).Return("https://feed.test/flights")

	// Every page is stale; after three in a row the loop gives up even
	// though the feed keeps advertising more.
	feed.EXPECT().FetchPage(gomock.Any(), gomock.Any()).Return(domain.ArrivalsPage{
		Flights: []domain.FlightRecord{futureFlight("KL0001", "2026-03-01T06:00:00+01:00")},
		HasMore: true,
		NextURL: "https://feed.test/flights?page=next",
	}, nil).Times(3)

	uc, _ := newArrivalsForTest(t, feed)

	resp, err := uc.Arrivals(context.Background(), ArrivalsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Meta.PagesRetrieved)
	assert.Empty(t, resp.Flights)
	assert.Equal(t, 3, resp.Meta.TotalFlights)
	assert.True(t, resp.Meta.HasMorePages)
}

func TestArrivalsFetchErrorDegradesToEmptyPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := domain.NewMockScheduledArrivalsFeed(ctrl)
	feed.EXPECT().HasCredentials().Return(true)
	feed.EXPECT().FirstPageURL(gomock.Any()).Return("https://feed.test/flights")
	feed.EXPECT().FetchPage(gomock.Any(), gomock.Any()).
		Return(domain.ArrivalsPage{}, assert.AnError)

	uc, _ := newArrivalsForTest(t, feed)

	resp, err := uc.Arrivals(context.Background(), ArrivalsQuery{})
	require.NoError(t, err)
	assert.NotNil(t, resp.Flights)
	assert.Empty(t, resp.Flights)
	assert.Equal(t, 1, resp.Meta.PagesRetrieved)
}

func TestArrivalsWindowBounds(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := domain.NewMockScheduledArrivalsFeed(ctrl)
	feed.EXPECT().HasCredentials().Return(true)

	var gotParams url.Values
	feed.EXPECT().FirstPageURL(gomock.Any()).DoAndReturn(func(params url.Values) string {
		gotParams = params
		return "https://feed.test/flights"
	})
	feed.EXPECT().FetchPage(gomock.Any(), gomock.Any()).Return(domain.ArrivalsPage{}, nil)

	uc, _ := newArrivalsForTest(t, feed)

	resp, err := uc.Arrivals(context.Background(), ArrivalsQuery{Window: "morning"})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-01T08:00:00", gotParams.Get("fromDateTime"))
	assert.Equal(t, "2026-03-01T12:00:00", gotParams.Get("toDateTime"))
	// The morning window started four hours before noon; the estimate
	// pre-seeds a later starting page.
	assert.NotEmpty(t, gotParams.Get("page"))

	require.NotNil(t, resp.TimeInfo.Window)
	assert.Equal(t, "morning", resp.TimeInfo.Window.Name)
}

func TestArrivalsCurrentWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := domain.NewMockScheduledArrivalsFeed(ctrl)
	feed.EXPECT().HasCredentials().Return(true)

	var gotParams url.Values
	feed.EXPECT().FirstPageURL(gomock.Any()).DoAndReturn(func(params url.Values) string {
		gotParams = params
		return "https://feed.test/flights"
	})
	feed.EXPECT().FetchPage(gomock.Any(), gomock.Any()).Return(domain.ArrivalsPage{}, nil)

	uc, _ := newArrivalsForTest(t, feed)

	resp, err := uc.Arrivals(context.Background(), ArrivalsQuery{Window: domain.WindowCurrent})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-01T10:00:00", gotParams.Get("fromDateTime"))
	assert.Equal(t, "2026-03-01T14:00:00", gotParams.Get("toDateTime"))
	require.NotNil(t, resp.TimeInfo.Window)
	assert.Equal(t, domain.WindowCurrent, resp.TimeInfo.Window.Name)
}

func TestArrivalsUnknownWindowIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := domain.NewMockScheduledArrivalsFeed(ctrl)
	feed.EXPECT().HasCredentials().Return(true)

	var gotParams url.Values
	feed.EXPECT().FirstPageURL(gomock.Any()).DoAndReturn(func(params url.Values) string {
		gotParams = params
		return "https://feed.test/flights"
	})
	feed.EXPECT().FetchPage(gomock.Any(), gomock.Any()).Return(domain.ArrivalsPage{}, nil)

	uc, _ := newArrivalsForTest(t, feed)

	resp, err := uc.Arrivals(context.Background(), ArrivalsQuery{Window: "brunch"})
	require.NoError(t, err)
	assert.Nil(t, resp.TimeInfo.Window)
	assert.Equal(t, "2026-03-01T12:00:00", gotParams.Get("fromDateTime"))
}

func TestArrivalsExplicitFiltersPassThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	feed := domain.NewMockScheduledArrivalsFeed(ctrl)
	feed.EXPECT().HasCredentials().Return(true)

	var gotParams url.Values
	feed.EXPECT().FirstPageURL(gomock.Any()).DoAndReturn(func(params url.Values) string {
		gotParams = params
		return "https://feed.test/flights"
	})
	feed.EXPECT().FetchPage(gomock.Any(), gomock.Any()).Return(domain.ArrivalsPage{}, nil)

	uc, _ := newArrivalsForTest(t, feed)

	_, err := uc.Arrivals(context.Background(), ArrivalsQuery{
		// A caller-supplied direction must not survive; arrivals only.
		Filters: map[string]string{"airline": "KL", "flightDirection": "D"},
		Window:  "morning",
	})
	require.NoError(t, err)

	assert.Equal(t, "KL", gotParams.Get("airline"))
	assert.Equal(t, "A", gotParams.Get("flightDirection"))
	assert.Empty(t, gotParams.Get("fromDateTime"))
}
