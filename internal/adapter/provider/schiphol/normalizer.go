package schiphol

import (
	"strconv"
	"time"

	"github.com/arrivals-board/arrivals-aggregation-service/internal/domain"
)

// Schiphol public flight states grouped by canonical status. A landed state
// beats an airborne one, which beats a schedule-side one.
var (
	landedStates    = map[string]bool{"LND": true, "ARR": true}
	activeStates    = map[string]bool{"AIR": true, "EXP": true, "FIR": true, "APP": true}
	scheduledStates = map[string]bool{"SCH": true, "DEL": true, "GTO": true, "GCL": true, "BRD": true}
)

// Normalize converts raw Schiphol flights into canonical records bound to the
// given home airport. Codeshare aliases and cancelled flights are dropped.
// Airport metadata is attached later by the enricher.
func Normalize(raw []RawFlight, homeAirport string, loc *time.Location) []domain.FlightRecord {
	result := make([]domain.FlightRecord, 0, len(raw))
	for i := range raw {
		f := &raw[i]
		if f.IsCodeshare() || f.IsCancelled() {
			continue
		}
		result = append(result, normalizeFlight(f, homeAirport, loc))
	}
	return result
}

func normalizeFlight(f *RawFlight, homeAirport string, loc *time.Location) domain.FlightRecord {
	scheduleDateTime, scheduled := parseSchedule(f, loc)

	origin := ""
	if len(f.Route.Destinations) > 0 {
		origin = f.Route.Destinations[0]
	}

	terminal := ""
	if f.Terminal != 0 {
		terminal = strconv.Itoa(f.Terminal)
	}

	return domain.FlightRecord{
		FlightName:       f.FlightName,
		ScheduleDateTime: scheduleDateTime,
		ScheduleTime:     clockOf(f.ScheduleTime),
		Airline: domain.AirlineInfo{
			IATACode: f.PrefixIATA,
			ICAOCode: f.PrefixICAO,
		},
		Origin: domain.RoutePoint{
			AirportCode: origin,
		},
		Destination: domain.RoutePoint{
			AirportCode: homeAirport,
		},
		Aircraft: domain.AircraftInfo{
			IATACode: f.AircraftType.IATASub,
			ICAOCode: f.AircraftType.IATAMain,
		},
		ArrivalDetails: domain.ArrivalDetails{
			Terminal:     terminal,
			Gate:         f.Gate,
			DelayMinutes: delayMinutes(scheduled, f.EstimatedLandingTime),
		},
		Status: statusOf(f.PublicFlightState.FlightStates),
	}
}

// parseSchedule resolves the scheduled instant, preferring the feed's full
// ISO timestamp and falling back to combining date and time in the airport's
// timezone. Returns the ISO-8601 string plus the parsed instant (zero when
// unparseable).
func parseSchedule(f *RawFlight, loc *time.Location) (string, time.Time) {
	if f.ScheduleDateTime != "" {
		if t, err := time.Parse(time.RFC3339, f.ScheduleDateTime); err == nil {
			return f.ScheduleDateTime, t
		}
	}
	if f.ScheduleDate != "" && f.ScheduleTime != "" {
		if t, err := time.ParseInLocation("2006-01-02T15:04:05", f.ScheduleDate+"T"+f.ScheduleTime, loc); err == nil {
			return t.Format(time.RFC3339), t
		}
	}
	return "", time.Time{}
}

// clockOf trims an upstream "HH:MM:SS" value to "HH:MM".
func clockOf(scheduleTime string) string {
	if len(scheduleTime) >= 5 {
		return scheduleTime[:5]
	}
	return scheduleTime
}

// delayMinutes derives the delay from the estimated landing time when the
// feed supplies one. Early arrivals report no delay.
func delayMinutes(scheduled time.Time, estimatedLanding string) *int {
	if scheduled.IsZero() || estimatedLanding == "" {
		return nil
	}
	estimated, err := time.Parse(time.RFC3339, estimatedLanding)
	if err != nil {
		return nil
	}
	minutes := int(estimated.Sub(scheduled).Minutes())
	if minutes <= 0 {
		return nil
	}
	return &minutes
}

func statusOf(states []string) domain.FlightStatus {
	for _, s := range states {
		if landedStates[s] {
			return domain.StatusLanded
		}
	}
	for _, s := range states {
		if activeStates[s] {
			return domain.StatusActive
		}
	}
	for _, s := range states {
		if scheduledStates[s] {
			return domain.StatusScheduled
		}
	}
	return domain.StatusUnknown
}
