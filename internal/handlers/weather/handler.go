package weather

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-lookup/internal/models"
)

type weatherFetcher interface {
	Fetch(ctx context.Context, q models.Query) (models.WeatherReport, error)
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler serves the JSON weather endpoint.
type Handler struct {
	service weatherFetcher
	timeout time.Duration
	logger  zerolog.Logger
}

func NewHandler(svc weatherFetcher, timeout time.Duration, logger zerolog.Logger) *Handler {
	return &Handler{service: svc, timeout: timeout, logger: logger}
}

// GetWeather
// @Summary Get current weather
// @Description Returns the current weather for a given city
// @Tags weather
// @Produce json
// @Param city query string true "City name"
// @Success 200 {object} models.WeatherReport
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /weather [get]
func (h *Handler) GetWeather(c *gin.Context) {
	q, err := models.NewQuery(c.Query("city"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	data, err := h.service.Fetch(ctx, q)
	if err != nil {
		h.logger.Warn().
			Ctx(ctx).
			Str("city", q.City).
			Str("error_type", models.Kind(err)).
			Err(err).
			Msg("weather request failed")
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, data)
}

func statusFor(err error) int {
	var httpErr *models.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}
