package lookup

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-lookup/internal/models"
	"github.com/Nazarious-ucu/weather-lookup/internal/view"
)

const OutcomeSuccess = "success"

type weatherFetcher interface {
	Fetch(ctx context.Context, q models.Query) (models.WeatherReport, error)
}

type lookupRecorder interface {
	ObserveLookup(outcome string, d time.Duration)
}

// Handler runs one weather lookup per user action against the Display it is given.
type Handler struct {
	fetcher  weatherFetcher
	timeout  time.Duration
	logger   zerolog.Logger
	recorder lookupRecorder
}

// NewHandler builds a Handler. A zero timeout leaves the request bounded only by ctx.
func NewHandler(
	fetcher weatherFetcher,
	timeout time.Duration,
	logger zerolog.Logger,
	recorder lookupRecorder,
) *Handler {
	return &Handler{fetcher: fetcher, timeout: timeout, logger: logger, recorder: recorder}
}

// GetWeather reads the city from d, fetches its weather and renders the result or the
// error into d. On failure the previous result fields are left as they were.
//
// The returned error has already been rendered; callers use it for logging and metrics only.
// Concurrent calls on the same Display are not serialized: the last one to resolve wins.
func (h *Handler) GetWeather(ctx context.Context, d view.Display) error {
	start := time.Now()

	q, err := models.NewQuery(d.Input())
	if err != nil {
		d.SetError(err.Error())
		h.observe(ctx, q, start, err)
		return err
	}

	d.SetError("")

	report, err := h.fetch(ctx, q)
	if err != nil {
		d.SetError("Error: " + err.Error())
		h.observe(ctx, q, start, err)
		return err
	}

	d.SetResult(report.Fields())
	h.observe(ctx, q, start, nil)
	return nil
}

func (h *Handler) fetch(ctx context.Context, q models.Query) (models.WeatherReport, error) {
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	return h.fetcher.Fetch(ctx, q)
}

func (h *Handler) observe(ctx context.Context, q models.Query, start time.Time, err error) {
	d := time.Since(start)
	if err != nil {
		kind := models.Kind(err)
		h.logger.Warn().
			Ctx(ctx).
			Str("city", q.City).
			Str("error_type", kind).
			Err(err).
			Dur("duration_ms", d).
			Msg("weather lookup failed")
		h.recorder.ObserveLookup(kind, d)
		return
	}

	h.logger.Info().
		Ctx(ctx).
		Str("city", q.City).
		Dur("duration_ms", d).
		Msg("weather lookup rendered")
	h.recorder.ObserveLookup(OutcomeSuccess, d)
}
