package http

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/arrivals-board/arrivals-aggregation-service/internal/adapter/http/response"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/domain"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/infrastructure/logger"
	"github.com/arrivals-board/arrivals-aggregation-service/internal/usecase"
)

// ArrivalsHandler handles HTTP requests for the arrivals endpoints.
type ArrivalsHandler struct {
	arrivals       usecase.ArrivalsUseCase
	live           usecase.LiveArrivalsUseCase
	defaultAirport string
	log            *logger.Logger
}

// NewArrivalsHandler creates a handler serving both arrivals variants.
// A nil log defaults to a no-op logger.
func NewArrivalsHandler(arrivals usecase.ArrivalsUseCase, live usecase.LiveArrivalsUseCase, defaultAirport string, log *logger.Logger) *ArrivalsHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &ArrivalsHandler{
		arrivals:       arrivals,
		live:           live,
		defaultAirport: defaultAirport,
		log:            log,
	}
}

// Arrivals handles GET /api/v1/arrivals.
func (h *ArrivalsHandler) Arrivals(c echo.Context) error {
	query := ParseArrivalsQuery(c)

	result, err := h.arrivals.Arrivals(c.Request().Context(), query)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.Arrivals(c, result)
}

// LiveArrivals handles GET /api/v1/arrivals/live.
func (h *ArrivalsHandler) LiveArrivals(c echo.Context) error {
	code := ParseAirportCode(c, h.defaultAirport)

	result, err := h.live.LiveArrivals(c.Request().Context(), code)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.Arrivals(c, result)
}

// handleError maps use case errors to degraded 500 responses. Upstream
// failures never reach this point; the orchestrators absorb them.
func (h *ArrivalsHandler) handleError(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrMissingCredentials) {
		h.log.Error().Err(err).Msg("Arrivals request rejected, credentials missing")
		return response.Degraded(c, response.MsgMissingCredentials)
	}

	h.log.Error().Err(err).Msg("Arrivals request failed")
	return response.Degraded(c, response.MsgInternalError)
}

// Health handles GET /health.
func (h *ArrivalsHandler) Health(c echo.Context) error {
	return response.Health(c)
}
