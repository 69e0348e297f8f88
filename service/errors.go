package services

import "errors"

// ErrPlaceNotFound is returned when the upstream has no place for the requested id.
var ErrPlaceNotFound = errors.New("place not found")

// ErrUpstreamUnavailable is returned when no upstream request produced a usable answer.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// MissingParameterError reports a required request parameter that was not supplied.
type MissingParameterError struct {
	Field string
}

func (e *MissingParameterError) Error() string {
	return "Missing required parameter: " + e.Field
}

// InvalidParameterError reports a request parameter that could not be parsed or is out of range.
type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return "Invalid parameter: " + e.Field
}
