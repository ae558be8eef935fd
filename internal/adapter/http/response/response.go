// Package response provides the HTTP response builders for the arrivals
// API. Every payload, including failures, carries a well-formed flights
// array; the static front-end must never receive a body without one.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arrivals-board/arrivals-aggregation-service/internal/domain"
)

// CacheControl is sent on every arrivals payload. It lets shared caches
// serve the response briefly and revalidate it in the background.
const CacheControl = "public, s-maxage=300, stale-while-revalidate=600"

// Error messages used in degraded responses.
const (
	MsgMissingCredentials = "Upstream API credentials are not configured"
	MsgInternalError      = "An unexpected error occurred"
)

// HealthResponse is the health check body.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health writes the health check response.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status: "ok",
	})
}

// Arrivals writes a 200 response with the arrivals payload and the shared
// cache-control directive.
func Arrivals(c echo.Context, resp *domain.ArrivalsResponse) error {
	c.Response().Header().Set("Cache-Control", CacheControl)
	return c.JSON(http.StatusOK, resp)
}

// Degraded writes a 500 response whose body still carries an empty flights
// array.
func Degraded(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, domain.NewErrorResponse(message))
}
