package weather_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Nazarious-ucu/weather-lookup/internal/models"
	"github.com/Nazarious-ucu/weather-lookup/internal/services/weather"
)

var breakerCfg = weather.BreakerConfig{
	TimeInterval: 30 * time.Second,
	TimeTimeOut:  15 * time.Second,
	RepeatNumber: 5,
}

type mockWrapped struct {
	mock.Mock
}

func (m *mockWrapped) Fetch(ctx context.Context, q models.Query) (models.WeatherReport, error) {
	args := m.Called(ctx, q)
	data, ok := args.Get(0).(models.WeatherReport)
	if !ok {
		return models.WeatherReport{}, args.Error(1)
	}
	return data, args.Error(1)
}

const breakerName = "TestAPI"

var lviv = models.Query{City: "Lviv"}

func TestBreakerClient_Success(t *testing.T) {
	wrapped := new(mockWrapped)
	expected := models.WeatherReport{CityName: "Lviv", TemperatureCelsius: 20, Description: "clear sky", HumidityPercent: 40}

	wrapped.
		On("Fetch", mock.Anything, lviv).
		Return(expected, nil).
		Once()

	bc := weather.NewBreakerClient(breakerName, breakerCfg, wrapped)

	data, err := bc.Fetch(context.Background(), lviv)
	assert.NoError(t, err)
	assert.Equal(t, expected, data)

	wrapped.AssertExpectations(t)
	wrapped.AssertNumberOfCalls(t, "Fetch", 1)
}

func TestBreakerClient_UnderlyingErrorIsReturnedUnchanged(t *testing.T) {
	wrapped := new(mockWrapped)
	underlyingErr := &models.HTTPError{StatusCode: 503}

	wrapped.
		On("Fetch", mock.Anything, lviv).
		Return(models.WeatherReport{}, underlyingErr).
		Once()

	bc := weather.NewBreakerClient(breakerName, breakerCfg, wrapped)

	data, err := bc.Fetch(context.Background(), lviv)
	require.Error(t, err)
	assert.Empty(t, data)
	assert.Same(t, underlyingErr, err)

	wrapped.AssertExpectations(t)
}

func TestBreakerClient_TripCircuitAfterFiveFailures(t *testing.T) {
	wrapped := new(mockWrapped)
	underlyingErr := &models.NetworkError{Err: errors.New("timeout")}

	wrapped.
		On("Fetch", mock.Anything, lviv).
		Return(models.WeatherReport{}, underlyingErr).
		Times(5)

	bc := weather.NewBreakerClient(breakerName, breakerCfg, wrapped)

	for i := 1; i <= 5; i++ {
		_, err := bc.Fetch(context.Background(), lviv)
		assert.Error(t, err, "call #%d should error before trip", i)
		assert.Equal(t, "timeout", err.Error())
	}

	_, err := bc.Fetch(context.Background(), lviv)
	require.Error(t, err)
	assert.Equal(t, models.KindNetwork, models.Kind(err))
	assert.Equal(t, breakerName+" unavailable: circuit breaker is open", err.Error())

	wrapped.AssertExpectations(t)
	wrapped.AssertNumberOfCalls(t, "Fetch", 5)
}

func TestBreakerClient_NotFoundDoesNotTrip(t *testing.T) {
	wrapped := new(mockWrapped)
	notFound := &models.HTTPError{StatusCode: 404}

	wrapped.
		On("Fetch", mock.Anything, lviv).
		Return(models.WeatherReport{}, notFound).
		Times(7)

	bc := weather.NewBreakerClient(breakerName, breakerCfg, wrapped)

	for i := 1; i <= 7; i++ {
		_, err := bc.Fetch(context.Background(), lviv)
		require.Error(t, err)
		assert.Equal(t, "HTTP error! Status: 404", err.Error())
	}

	wrapped.AssertNumberOfCalls(t, "Fetch", 7)
}
