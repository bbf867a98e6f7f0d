package models

import (
	"strconv"
	"strings"
)

// Query is a validated lookup request.
type Query struct {
	City string `json:"city"`
}

// NewQuery trims the raw input and rejects empty city names.
func NewQuery(input string) (Query, error) {
	city := strings.TrimSpace(input)
	if city == "" {
		return Query{}, &ValidationError{}
	}
	return Query{City: city}, nil
}

type WeatherReport struct {
	CityName           string  `json:"city"`
	TemperatureCelsius float64 `json:"temperature"`
	Description        string  `json:"description"`
	HumidityPercent    float64 `json:"humidity"`
}

// Fields holds the four display lines of a report.
type Fields struct {
	CityName    string
	Temperature string
	Description string
	Humidity    string
}

func (r WeatherReport) Fields() Fields {
	return Fields{
		CityName:    "City: " + r.CityName,
		Temperature: "Temperature: " + formatNumber(r.TemperatureCelsius) + "°C",
		Description: "Description: " + r.Description,
		Humidity:    "Humidity: " + formatNumber(r.HumidityPercent) + "%",
	}
}

// formatNumber prints the shortest decimal that round-trips, so 18.2 stays 18.2 and 60 stays 60.
// Negative zero prints as 0.
func formatNumber(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
