package flightdata

import (
	"time"

	"github.com/arrivals-board/arrivals-aggregation-service/internal/domain"
)

// statusMap translates the feed's status strings to canonical statuses.
var statusMap = map[string]domain.FlightStatus{
	"scheduled": domain.StatusScheduled,
	"active":    domain.StatusActive,
	"landed":    domain.StatusLanded,
}

// Normalize converts raw aggregator flights into canonical records.
// Codeshare aliases are dropped entirely. Airport metadata is attached later
// by the enricher.
func Normalize(raw []RawFlight) []domain.FlightRecord {
	result := make([]domain.FlightRecord, 0, len(raw))
	for i := range raw {
		f := &raw[i]
		if f.IsCodeshare() {
			continue
		}
		result = append(result, normalizeFlight(f))
	}
	return result
}

func normalizeFlight(f *RawFlight) domain.FlightRecord {
	record := domain.FlightRecord{
		FlightName:       f.Flight.IATA,
		ScheduleDateTime: f.Arrival.Scheduled,
		ScheduleTime:     clockOf(f.Arrival.Scheduled),
		Airline: domain.AirlineInfo{
			Name:     f.Airline.Name,
			IATACode: f.Airline.IATA,
			ICAOCode: f.Airline.ICAO,
		},
		Origin: domain.RoutePoint{
			AirportCode: f.Departure.IATA,
			AirportName: f.Departure.Airport,
		},
		Destination: domain.RoutePoint{
			AirportCode: f.Arrival.IATA,
			AirportName: f.Arrival.Airport,
		},
		ArrivalDetails: domain.ArrivalDetails{
			Terminal:     f.Arrival.Terminal,
			Gate:         f.Arrival.Gate,
			DelayMinutes: f.Arrival.Delay,
		},
		Status: statusOf(f.FlightStatus),
	}
	if f.Flight.IATA == "" {
		record.FlightName = f.Flight.ICAO
	}
	if f.Aircraft != nil {
		record.Aircraft = domain.AircraftInfo{
			IATACode: f.Aircraft.IATA,
			ICAOCode: f.Aircraft.ICAO,
		}
	}
	return record
}

// clockOf extracts the local "HH:MM" from an ISO-8601 timestamp.
func clockOf(scheduled string) string {
	t, err := time.Parse(time.RFC3339, scheduled)
	if err != nil {
		return ""
	}
	return t.Format("15:04")
}

func statusOf(status string) domain.FlightStatus {
	if s, ok := statusMap[status]; ok {
		return s
	}
	return domain.StatusUnknown
}
