package weather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/weather-lookup/internal/models"
)

const units = "metric"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// apiResponse is the decoded body. The consumed subset of the "current weather data"
// schema is checked field by field so type mismatches name the offending field.
type apiResponse map[string]any

func (r apiResponse) report() (models.WeatherReport, error) {
	name, err := stringField(r, "", "name")
	if err != nil {
		return models.WeatherReport{}, err
	}

	mainObj, ok := r["main"].(map[string]any)
	if !ok {
		return models.WeatherReport{}, fieldError(r, "main", "an object")
	}
	temp, err := numberField(mainObj, "main.", "temp")
	if err != nil {
		return models.WeatherReport{}, err
	}
	humidity, err := numberField(mainObj, "main.", "humidity")
	if err != nil {
		return models.WeatherReport{}, err
	}

	conditions, ok := r["weather"].([]any)
	if !ok {
		return models.WeatherReport{}, fieldError(r, "weather", "an array")
	}
	if len(conditions) == 0 {
		return models.WeatherReport{}, errors.New(`missing field "weather[0]"`)
	}
	first, ok := conditions[0].(map[string]any)
	if !ok {
		return models.WeatherReport{}, errors.New(`field "weather[0]" is not an object`)
	}
	description, err := stringField(first, "weather[0].", "description")
	if err != nil {
		return models.WeatherReport{}, err
	}

	return models.WeatherReport{
		CityName:           name,
		TemperatureCelsius: temp,
		Description:        description,
		HumidityPercent:    humidity,
	}, nil
}

func stringField(obj map[string]any, prefix, key string) (string, error) {
	v, ok := obj[key].(string)
	if !ok {
		return "", fieldError(obj, prefix+key, "a string")
	}
	return v, nil
}

func numberField(obj map[string]any, prefix, key string) (float64, error) {
	v, ok := obj[key].(float64)
	if !ok {
		return 0, fieldError(obj, prefix+key, "a number")
	}
	return v, nil
}

// fieldError reports path as missing when its last key is absent from obj, or as the wrong type otherwise.
func fieldError(obj map[string]any, path, want string) error {
	key := path
	if i := strings.LastIndex(path, "."); i >= 0 {
		key = path[i+1:]
	}
	if v, present := obj[key]; !present || v == nil {
		return fmt.Errorf("missing field %q", path)
	}
	return fmt.Errorf("field %q is not %s", path, want)
}

// ClientOpenWeatherMap fetches current weather from the OpenWeatherMap API.
type ClientOpenWeatherMap struct {
	apiKey string
	apiURL string
	client HTTPClient
	logger zerolog.Logger
}

// NewClientOpenWeatherMap constructs a new OpenWeatherMap client.
func NewClientOpenWeatherMap(apiKey, apiURL string,
	httpClient HTTPClient, logger zerolog.Logger,
) *ClientOpenWeatherMap {
	return &ClientOpenWeatherMap{apiKey: apiKey, apiURL: apiURL, client: httpClient, logger: logger}
}

// RequestURL builds the "current weather by city name" URL with every parameter percent-encoded.
func (s *ClientOpenWeatherMap) RequestURL(city string) (string, error) {
	u, err := url.Parse(s.apiURL)
	if err != nil {
		return "", fmt.Errorf("parse weather api url: %w", err)
	}
	q := u.Query()
	q.Set("q", city)
	q.Set("appid", s.apiKey)
	q.Set("units", units)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Fetch retrieves the current weather for q. Errors are one of the models error types.
func (s *ClientOpenWeatherMap) Fetch(ctx context.Context, q models.Query) (models.WeatherReport, error) {
	start := time.Now()

	reqURL, err := s.RequestURL(q.City)
	if err != nil {
		return models.WeatherReport{}, &models.NetworkError{Err: err}
	}

	s.logger.Debug().
		Ctx(ctx).
		Str("city", q.City).
		Msg("starting OpenWeatherMap request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("city", q.City).
			Msg("failed to create HTTP request")
		return models.WeatherReport{}, &models.NetworkError{Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		err = transportCause(err)
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("city", q.City).
			Msg("error sending HTTP request to OpenWeatherMap")
		return models.WeatherReport{}, &models.NetworkError{Err: err}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Error().
				Ctx(ctx).
				Err(cerr).
				Str("city", q.City).
				Msg("failed to close response body")
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		s.logger.Warn().
			Ctx(ctx).
			Str("city", q.City).
			Int("status_code", resp.StatusCode).
			Msg("OpenWeatherMap API returned non-success status")
		return models.WeatherReport{}, &models.HTTPError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("city", q.City).
			Msg("failed to read OpenWeatherMap response")
		return models.WeatherReport{}, &models.NetworkError{Err: transportCause(err)}
	}

	// Unmarshal rejects anything after the top-level value.
	var raw apiResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("city", q.City).
			Msg("failed to decode OpenWeatherMap response")
		return models.WeatherReport{}, &models.DecodeError{Err: err}
	}

	report, err := raw.report()
	if err != nil {
		s.logger.Error().
			Ctx(ctx).
			Err(err).
			Str("city", q.City).
			Msg("incomplete OpenWeatherMap response")
		return models.WeatherReport{}, &models.DecodeError{Err: err}
	}

	s.logger.Info().
		Ctx(ctx).
		Str("city", q.City).
		Dur("duration_ms", time.Since(start)).
		Msg("successfully fetched weather data")

	return report, nil
}

// transportCause strips the *url.Error envelope, whose message repeats the request URL
// including the credential.
func transportCause(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}
