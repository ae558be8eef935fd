package schiphol

// flightsPayload is the top-level response body of the flights endpoint.
type flightsPayload struct {
	Flights []RawFlight `json:"flights"`
}

// RawFlight is the wire shape of one flight in the Schiphol public-flights
// API (ResourceVersion v4). Only the fields the service consumes are mapped.
type RawFlight struct {
	// FlightName is the public designator, e.g. "KL1234"
	FlightName string `json:"flightName"`

	// MainFlight differs from FlightName on codeshare entries
	MainFlight string `json:"mainFlight"`

	// ScheduleDate is the local date, YYYY-MM-DD
	ScheduleDate string `json:"scheduleDate"`

	// ScheduleTime is the local time, HH:MM:SS
	ScheduleTime string `json:"scheduleTime"`

	// ScheduleDateTime is the full ISO-8601 instant when present
	ScheduleDateTime string `json:"scheduleDateTime"`

	// EstimatedLandingTime is the ISO-8601 estimate, when known
	EstimatedLandingTime string `json:"estimatedLandingTime"`

	// PrefixIATA and PrefixICAO identify the carrier
	PrefixIATA string `json:"prefixIATA"`
	PrefixICAO string `json:"prefixICAO"`

	// FlightNumber is the numeric part of the designator
	FlightNumber int `json:"flightNumber"`

	// Gate and Terminal are gate-side details
	Gate     string `json:"gate"`
	Terminal int    `json:"terminal"`

	// Route lists the airports the flight came through; for arrivals the
	// first entry is the origin
	Route struct {
		Destinations []string `json:"destinations"`
	} `json:"route"`

	// PublicFlightState carries the state codes (SCH, DEL, EXP, AIR, LND, ...)
	PublicFlightState struct {
		FlightStates []string `json:"flightStates"`
	} `json:"publicFlightState"`

	// AircraftType identifies the equipment
	AircraftType struct {
		IATAMain string `json:"iataMain"`
		IATASub  string `json:"iataSub"`
	} `json:"aircraftType"`
}

// IsCodeshare reports whether the record is a codeshare alias of another
// flight. The feed marks these by giving them a mainFlight different from
// their own name.
func (f *RawFlight) IsCodeshare() bool {
	return f.MainFlight != "" && f.FlightName != "" && f.MainFlight != f.FlightName
}

// IsCancelled reports whether the flight carries the CNX state.
func (f *RawFlight) IsCancelled() bool {
	for _, s := range f.PublicFlightState.FlightStates {
		if s == "CNX" {
			return true
		}
	}
	return false
}
