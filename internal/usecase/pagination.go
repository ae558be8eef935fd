package usecase

import "time"

// Tunables of the paginate loop.
const (
	// DefaultMaxPages bounds one invocation's page fetches.
	DefaultMaxPages = 200

	// DefaultArrivalsPerHour is the assumed average arrival rate used by
	// the starting-page estimate.
	DefaultArrivalsPerHour = 40

	// DefaultPageSize is the upstream feed's records-per-page.
	DefaultPageSize = 20

	// futurelessPageLimit stops the loop after this many consecutive pages
	// without a single future flight.
	futurelessPageLimit = 3

	// graceBuffer keeps recently-past flights in the results. A flight
	// running 10 minutes late is still an arrival in progress.
	graceBuffer = 15 * time.Minute
)

// EstimateStartPage guesses which page of a time-ordered feed the flights
// around "now" begin on, from the time elapsed since the window started and
// two assumed rates. It is a performance optimization only; an estimate
// that overshoots merely costs the accuracy the early-stop heuristic
// already tolerates, so callers must treat it as approximate.
func EstimateStartPage(elapsed time.Duration, arrivalsPerHour, pageSize int) int {
	if elapsed <= 0 || arrivalsPerHour <= 0 || pageSize <= 0 {
		return 0
	}
	pagesPerHour := float64(arrivalsPerHour) / float64(pageSize)
	return int(elapsed.Hours() * pagesPerHour)
}

// FutureChecker classifies flights as future or past relative to a fixed
// reference instant, with a grace buffer for arrivals still in progress.
type FutureChecker struct {
	cutoff time.Time
}

// NewFutureChecker anchors the checker at now minus the grace buffer.
func NewFutureChecker(now time.Time) FutureChecker {
	return FutureChecker{cutoff: now.Add(-graceBuffer)}
}

// InFuture reports whether the scheduled instant is at or after the cutoff.
// Unparseable schedules count as future; dropping a record over a malformed
// timestamp loses data the front-end could still display.
func (fc FutureChecker) InFuture(scheduleDateTime string) bool {
	if scheduleDateTime == "" {
		return true
	}
	t, err := time.Parse(time.RFC3339, scheduleDateTime)
	if err != nil {
		return true
	}
	return !t.Before(fc.cutoff)
}
