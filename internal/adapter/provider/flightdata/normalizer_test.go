package flightdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrivals-board/arrivals-aggregation-service/internal/domain"
)

func rawActiveFlight() RawFlight {
	delay := 12
	f := RawFlight{
		FlightDate:   "2026-03-01",
		FlightStatus: "active",
		Departure: RawEndpoint{
			Airport:   "Milano Linate",
			IATA:      "LIN",
			Scheduled: "2026-03-01T07:30:00+01:00",
		},
		Arrival: RawEndpoint{
			Airport:   "Amsterdam Schiphol",
			IATA:      "AMS",
			Terminal:  "3",
			Gate:      "D7",
			Delay:     &delay,
			Scheduled: "2026-03-01T09:05:00+01:00",
		},
	}
	f.Airline.Name = "KLM"
	f.Airline.IATA = "KL"
	f.Airline.ICAO = "KLM"
	f.Flight.Number = "1234"
	f.Flight.IATA = "KL1234"
	f.Flight.ICAO = "KLM1234"
	return f
}

func TestNormalizeFlight(t *testing.T) {
	raw := rawActiveFlight()

	records := Normalize([]RawFlight{raw})
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, "KL1234", got.FlightName)
	assert.Equal(t, "2026-03-01T09:05:00+01:00", got.ScheduleDateTime)
	assert.Equal(t, "09:05", got.ScheduleTime)
	assert.Equal(t, domain.StatusActive, got.Status)
	assert.Equal(t, "KLM", got.Airline.Name)
	assert.Equal(t, "LIN", got.Origin.AirportCode)
	assert.Equal(t, "Milano Linate", got.Origin.AirportName)
	assert.Equal(t, "AMS", got.Destination.AirportCode)
	assert.Equal(t, "3", got.ArrivalDetails.Terminal)
	assert.Equal(t, "D7", got.ArrivalDetails.Gate)
	require.NotNil(t, got.ArrivalDetails.DelayMinutes)
	assert.Equal(t, 12, *got.ArrivalDetails.DelayMinutes)
}

func TestNormalizeDropsCodeshares(t *testing.T) {
	operating := rawActiveFlight()

	alias := rawActiveFlight()
	alias.Flight.IATA = "AF8801"
	alias.Flight.Codeshared = &RawCodeshared{AirlineName: "KLM", FlightIATA: "KL1234"}

	records := Normalize([]RawFlight{operating, alias})
	require.Len(t, records, 1)
	assert.Equal(t, "KL1234", records[0].FlightName)
}

func TestNormalizeFallbacks(t *testing.T) {
	raw := rawActiveFlight()
	raw.Flight.IATA = ""
	raw.Arrival.Scheduled = "not-a-timestamp"
	raw.Arrival.Delay = nil
	raw.FlightStatus = "cancelled"

	records := Normalize([]RawFlight{raw})
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, "KLM1234", got.FlightName)
	assert.Equal(t, "", got.ScheduleTime)
	assert.Nil(t, got.ArrivalDetails.DelayMinutes)
	assert.Equal(t, domain.StatusUnknown, got.Status)
}

func TestNormalizeAircraft(t *testing.T) {
	raw := rawActiveFlight()
	raw.Aircraft = &struct {
		IATA string `json:"iata"`
		ICAO string `json:"icao"`
	}{IATA: "73H", ICAO: "B738"}

	records := Normalize([]RawFlight{raw})
	require.Len(t, records, 1)
	assert.Equal(t, "73H", records[0].Aircraft.IATACode)
	assert.Equal(t, "B738", records[0].Aircraft.ICAOCode)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		status string
		want   domain.FlightStatus
	}{
		{"scheduled", domain.StatusScheduled},
		{"active", domain.StatusActive},
		{"landed", domain.StatusLanded},
		{"diverted", domain.StatusUnknown},
		{"", domain.StatusUnknown},
	}
	for _, tt := range tests {
		t.Run("status "+tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, statusOf(tt.status))
		})
	}
}
