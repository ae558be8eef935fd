package domain

// ArrivalsResponse is the JSON body served to the front-end. The Flights
// slice is never nil: the presentation layer must never receive a payload
// without a well-formed flight list.
type ArrivalsResponse struct {
	// Flights is the normalized, deduplicated, sorted arrivals list
	Flights []FlightRecord `json:"flights"`

	// TimeInfo describes the local time context of the query
	TimeInfo TimeInfo `json:"timeInfo"`

	// Meta carries counters and cache diagnostics
	Meta ResponseMeta `json:"meta"`
}

// TimeInfo describes the local time context a response was produced in.
type TimeInfo struct {
	// LocalDate is today's date at the airport, YYYY-MM-DD
	LocalDate string `json:"localDate"`

	// LocalTime is the local wall clock at response time, HH:MM
	LocalTime string `json:"localTime"`

	// Timezone is the IANA timezone of the airport
	Timezone string `json:"timezone"`

	// Window is the time window the query was scoped to, if any
	Window *TimeWindow `json:"window,omitempty"`
}

// ResponseMeta carries counters and cache diagnostics about a response.
type ResponseMeta struct {
	// TotalFlights is the number of flights seen upstream, including
	// past-dated ones discarded by the future filter
	TotalFlights int `json:"totalFlights"`

	// PagesRetrieved is how many upstream pages were fetched
	PagesRetrieved int `json:"pagesRetrieved"`

	// HasMorePages is true when the loop stopped before the feed ran out
	HasMorePages bool `json:"hasMorePages"`

	// Cached is true when the payload was served from the response cache
	Cached bool `json:"cached"`

	// CacheAgeSeconds is the age of the cached payload, present on cache hits
	CacheAgeSeconds int64 `json:"cacheAge,omitempty"`

	// NextUpdate is when the cached payload expires, RFC 3339, on cache hits
	NextUpdate string `json:"nextUpdate,omitempty"`

	// PartialData is true when one or more upstream branches failed and the
	// response was assembled from the remainder
	PartialData bool `json:"partialData,omitempty"`

	// AvailableTimeWindows lists the selectable window names
	AvailableTimeWindows []string `json:"availableTimeWindows,omitempty"`
}

// NewArrivalsResponse builds a response, guaranteeing a non-nil flight list.
func NewArrivalsResponse(flights []FlightRecord, timeInfo TimeInfo, meta ResponseMeta) *ArrivalsResponse {
	if flights == nil {
		flights = []FlightRecord{}
	}
	return &ArrivalsResponse{
		Flights:  flights,
		TimeInfo: timeInfo,
		Meta:     meta,
	}
}

// ErrorResponse is the degraded payload for failed requests. It still carries
// an empty flight list so the front-end never crashes on absent data.
type ErrorResponse struct {
	// Error is a human-readable description of what went wrong
	Error string `json:"error"`

	// Flights is always present and empty
	Flights []FlightRecord `json:"flights"`
}

// NewErrorResponse builds a degraded payload with an empty flight list.
func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		Error:   message,
		Flights: []FlightRecord{},
	}
}
