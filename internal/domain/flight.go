// Package domain contains the core business entities and rules for the arrivals
// aggregation service. These entities are feed-agnostic and form the canonical
// shape every upstream record is normalized into.
package domain

import (
	"sort"

	"github.com/google/uuid"
)

// FlightStatus describes where a flight is in its lifecycle.
type FlightStatus string

// Canonical flight statuses.
const (
	// StatusScheduled means the flight has not departed yet (includes expected and delayed states).
	StatusScheduled FlightStatus = "scheduled"

	// StatusActive means the flight is en route or on approach.
	StatusActive FlightStatus = "active"

	// StatusLanded means the flight has arrived.
	StatusLanded FlightStatus = "landed"

	// StatusUnknown is used when the upstream feed reports no recognizable state.
	StatusUnknown FlightStatus = "unknown"
)

// bucketPriority orders statuses for deduplication: once a flight has been
// seen as landed, a later "scheduled" sighting of the same code must not
// overwrite it.
var bucketPriority = map[FlightStatus]int{
	StatusLanded:    3,
	StatusActive:    2,
	StatusScheduled: 1,
	StatusUnknown:   0,
}

// Priority returns the deduplication priority of the status. Higher wins.
func (s FlightStatus) Priority() int {
	return bucketPriority[s]
}

// FlightRecord is the canonical arrival record served to the front-end.
type FlightRecord struct {
	// FlightName is the public flight designator (e.g., "KL1234")
	FlightName string `json:"flightName"`

	// ScheduleDateTime is the scheduled arrival instant as an ISO-8601 string
	ScheduleDateTime string `json:"scheduleDateTime"`

	// ScheduleTime is the local scheduled time as "HH:MM"
	ScheduleTime string `json:"scheduleTime"`

	// Airline identifies the operating carrier
	Airline AirlineInfo `json:"airline"`

	// Origin is where the flight departed from
	Origin RoutePoint `json:"origin"`

	// Destination is where the flight arrives
	Destination RoutePoint `json:"destination"`

	// Aircraft identifies the equipment type
	Aircraft AircraftInfo `json:"aircraft"`

	// ArrivalDetails carries terminal, gate and delay information
	ArrivalDetails ArrivalDetails `json:"arrivalDetails"`

	// Status is the canonical flight status
	Status FlightStatus `json:"status"`
}

// AirlineInfo identifies an airline.
type AirlineInfo struct {
	// Name is the full airline name (e.g., "KLM Royal Dutch Airlines")
	Name string `json:"name"`

	// IATACode is the 2-letter IATA carrier code (e.g., "KL")
	IATACode string `json:"iataCode"`

	// ICAOCode is the 3-letter ICAO carrier code (e.g., "KLM")
	ICAOCode string `json:"icaoCode"`
}

// RoutePoint is one end of a flight route, enriched with resolved airport
// metadata when available. Metadata fields stay blank for codes the resolver
// could not identify; an unresolvable code never fails a request.
type RoutePoint struct {
	// AirportCode is the 3-letter IATA airport code (e.g., "LIN")
	AirportCode string `json:"airportCode"`

	// AirportName is the display label, upgraded to "City (CODE)" when the
	// raw feed label lacked a parenthesized code
	AirportName string `json:"airportName,omitempty"`

	// City is the resolved city name
	City string `json:"city"`

	// Country is the resolved ISO-2 country code
	Country string `json:"country"`

	// CountryFlagEmoji is the Unicode flag for Country ("" when unresolved)
	CountryFlagEmoji string `json:"countryFlagEmoji"`

	// MetadataSource records which resolver path produced the metadata
	MetadataSource MetadataSource `json:"metadataSource,omitempty"`
}

// AircraftInfo identifies the aircraft type.
type AircraftInfo struct {
	// IATACode is the IATA equipment code (e.g., "73H")
	IATACode string `json:"iataCode"`

	// ICAOCode is the ICAO equipment code (e.g., "B738")
	ICAOCode string `json:"icaoCode"`
}

// ArrivalDetails carries gate-side information about an arrival.
type ArrivalDetails struct {
	// Terminal is the arrival terminal identifier
	Terminal string `json:"terminal"`

	// Gate is the arrival gate
	Gate string `json:"gate"`

	// DelayMinutes is the known delay in minutes, nil when not reported
	DelayMinutes *int `json:"delayMinutes"`
}

// DedupeKey uniquely identifies a record within one response. Records from
// multiple upstream status buckets that share a key collapse to one. A record
// with neither a flight name nor a schedule gets a generated token so it is
// never merged with another equally anonymous record.
func (f *FlightRecord) DedupeKey() string {
	if f.FlightName == "" && f.ScheduleDateTime == "" {
		return "anon_" + uuid.NewString()
	}
	return f.FlightName + "_" + f.ScheduleDateTime
}

// SortByScheduleTime orders flights ascending by their local "HH:MM" schedule
// string. Flights with no schedule time sort last.
func SortByScheduleTime(flights []FlightRecord) {
	sort.SliceStable(flights, func(i, j int) bool {
		ti, tj := flights[i].ScheduleTime, flights[j].ScheduleTime
		if ti == "" {
			return false
		}
		if tj == "" {
			return true
		}
		return ti < tj
	})
}
