package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all arrivals API routes.
func RegisterRoutes(e *echo.Echo, h *ArrivalsHandler) {
	// Health check endpoint (no version prefix)
	e.GET("/health", h.Health)

	// API v1 group
	api := e.Group("/api/v1")

	arrivals := api.Group("/arrivals")
	arrivals.GET("", h.Arrivals)
	arrivals.GET("/live", h.LiveArrivals)
}
