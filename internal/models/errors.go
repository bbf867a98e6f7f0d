package models

import (
	"errors"
	"fmt"
)

const ValidationMessage = "Please enter a city name"

// Error kinds reported by Kind.
const (
	KindValidation = "validation"
	KindHTTP       = "http"
	KindNetwork    = "network"
	KindDecode     = "decode"
	KindUnknown    = "unknown"
)

// ValidationError is returned when the city is empty after trimming.
type ValidationError struct{}

func (e *ValidationError) Error() string {
	return ValidationMessage
}

// HTTPError is returned when the weather provider answers with a non-success status.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! Status: %d", e.StatusCode)
}

// NetworkError is returned when no response was received at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when the response body is malformed or incomplete.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "invalid weather response: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Kind classifies err for logs and metrics.
func Kind(err error) string {
	var (
		validationErr *ValidationError
		httpErr       *HTTPError
		networkErr    *NetworkError
		decodeErr     *DecodeError
	)
	switch {
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.As(err, &httpErr):
		return KindHTTP
	case errors.As(err, &networkErr):
		return KindNetwork
	case errors.As(err, &decodeErr):
		return KindDecode
	default:
		return KindUnknown
	}
}
