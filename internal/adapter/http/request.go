// Package http provides the HTTP handler layer for the arrivals API.
// It handles query parsing, response formatting, and error mapping.
package http

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/arrivals-board/arrivals-aggregation-service/internal/usecase"
)

// filterWhitelist is the set of upstream filter parameters callers may pass
// through. Anything else in the query string is dropped silently.
var filterWhitelist = map[string]bool{
	"scheduleDate":        true,
	"scheduleTime":        true,
	"fromScheduleDate":    true,
	"toScheduleDate":      true,
	"fromDateTime":        true,
	"toDateTime":          true,
	"searchDateTimeField": true,
	"flightName":          true,
	"airline":             true,
	"airlineCode":         true,
	"route":               true,
	"sort":                true,
	"page":                true,
}

// ParseArrivalsQuery extracts the arrivals query from the request's query
// string. Unknown parameters are dropped, never rejected; the endpoint is
// called by a static page that must keep working across front-end versions.
func ParseArrivalsQuery(c echo.Context) usecase.ArrivalsQuery {
	query := usecase.ArrivalsQuery{
		Window: c.QueryParam("timeWindow"),
	}

	if raw := c.QueryParam("maxPages"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			query.MaxPages = n
		}
	}

	if raw := c.QueryParam("useDateTimeRange"); raw != "" {
		query.UseDateTimeRange, _ = strconv.ParseBool(raw)
	}

	filters := map[string]string{}
	for key, values := range c.QueryParams() {
		if !filterWhitelist[key] || len(values) == 0 || values[0] == "" {
			continue
		}
		filters[key] = values[0]
	}
	if len(filters) > 0 {
		query.Filters = filters
	}

	return query
}

// ParseAirportCode extracts the destination airport for the live endpoint,
// falling back to the given default.
func ParseAirportCode(c echo.Context, defaultCode string) string {
	code := strings.ToUpper(strings.TrimSpace(c.QueryParam("arr_iata")))
	if len(code) != 3 {
		return defaultCode
	}
	return code
}
