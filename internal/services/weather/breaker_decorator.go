package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Nazarious-ucu/weather-lookup/internal/models"
)

type fetcher interface {
	Fetch(ctx context.Context, q models.Query) (models.WeatherReport, error)
}

type BreakerConfig struct {
	TimeInterval time.Duration
	TimeTimeOut  time.Duration
	RepeatNumber uint32
}

// BreakerClient fails fast once the wrapped client keeps failing. It never retries.
type BreakerClient struct {
	name    string
	cb      *gobreaker.CircuitBreaker
	wrapped fetcher
}

func NewBreakerClient(name string, cfg BreakerConfig, wrapped fetcher) *BreakerClient {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    cfg.TimeInterval,
		Timeout:     cfg.TimeTimeOut,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.RepeatNumber
		},
		IsSuccessful: isProviderHealthy,
	}
	return &BreakerClient{
		name:    name,
		cb:      gobreaker.NewCircuitBreaker(settings),
		wrapped: wrapped,
	}
}

// Fetch returns the wrapped client's errors unchanged.
func (b *BreakerClient) Fetch(ctx context.Context, q models.Query) (models.WeatherReport, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.wrapped.Fetch(ctx, q)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return models.WeatherReport{}, &models.NetworkError{Err: fmt.Errorf("%s unavailable: %w", b.name, err)}
	}
	if err != nil {
		return models.WeatherReport{}, err
	}
	res, ok := result.(models.WeatherReport)
	if !ok {
		return models.WeatherReport{},
			&models.DecodeError{Err: fmt.Errorf("%s returned unexpected result", b.name)}
	}
	return res, nil
}

// isProviderHealthy treats client-side rejections (unknown city, bad key) as healthy answers.
func isProviderHealthy(err error) bool {
	if err == nil {
		return true
	}
	var httpErr *models.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode < http.StatusInternalServerError
	}
	return false
}
