package flightdata

// flightsPayload is the top-level response body of the flights endpoint.
type flightsPayload struct {
	Data []RawFlight `json:"data"`
}

// RawFlight is the wire shape of one flight in the aggregator API. Only the
// fields the service consumes are mapped.
type RawFlight struct {
	// FlightDate is the local date of the flight, YYYY-MM-DD
	FlightDate string `json:"flight_date"`

	// FlightStatus is the feed's own status (scheduled, active, landed, ...)
	FlightStatus string `json:"flight_status"`

	// Departure and Arrival describe the two route points
	Departure RawEndpoint `json:"departure"`
	Arrival   RawEndpoint `json:"arrival"`

	// Airline identifies the carrier
	Airline struct {
		Name string `json:"name"`
		IATA string `json:"iata"`
		ICAO string `json:"icao"`
	} `json:"airline"`

	// Flight identifies the flight itself; Codeshared is non-nil on
	// codeshare aliases
	Flight struct {
		Number     string         `json:"number"`
		IATA       string         `json:"iata"`
		ICAO       string         `json:"icao"`
		Codeshared *RawCodeshared `json:"codeshared"`
	} `json:"flight"`

	// Aircraft is nil for flights without published equipment
	Aircraft *struct {
		IATA string `json:"iata"`
		ICAO string `json:"icao"`
	} `json:"aircraft"`
}

// RawEndpoint is one end of a route in the aggregator API.
type RawEndpoint struct {
	// Airport is the display name, e.g. "Milano Linate"
	Airport string `json:"airport"`

	// IATA and ICAO are the airport codes
	IATA string `json:"iata"`
	ICAO string `json:"icao"`

	// Terminal and Gate are gate-side details
	Terminal string `json:"terminal"`
	Gate     string `json:"gate"`

	// Delay is the known delay in minutes, nil when not reported
	Delay *int `json:"delay"`

	// Scheduled is the scheduled instant, ISO-8601
	Scheduled string `json:"scheduled"`
}

// RawCodeshared marks a codeshare alias and names the operating flight.
type RawCodeshared struct {
	AirlineName string `json:"airline_name"`
	FlightIATA  string `json:"flight_iata"`
}

// IsCodeshare reports whether the record is a codeshare alias. The feed
// marks these explicitly; aliases are dropped entirely, not merged.
func (f *RawFlight) IsCodeshare() bool {
	return f.Flight.Codeshared != nil
}
