package geolib

import (
	"encoding/json"
	"errors"
	"net/http"
)

var (
	// ErrUnresolvable is a root of every error returned by Locator.
	// Check it with errors.Is.
	ErrUnresolvable = errors.New("ip address is unresolvable")

	ErrNoCallerAddress          = errors.New("caller address is unknown")
	ErrInvalidIP                = errors.New("incorrect ip address")
	ErrInvalidCoordinates       = errors.New("incorrect coordinates")
	ErrNotFound                 = errors.New("address component is not found")
	ErrUnknownComponentProperty = errors.New("unknown address component property")
	ErrCountriesUnavailable     = errors.New("countries store is not configured")
	ErrCircuitBreakerOpened     = errors.New("circuit breaker is opened")
)

// LookupError is returned by Locator if IP address cannot be resolved
// into GeoRecord: transport failure, bad response status or a provider
// which has reported an error in the body.
type LookupError struct {
	IP       string
	Provider string
	Err      error
}

func (l *LookupError) Error() string {
	msg := "cannot resolve"

	if l.IP != "" {
		msg += " " + l.IP
	}

	if l.Provider != "" {
		msg += " with " + l.Provider
	}

	if l.Err != nil {
		msg += ": " + l.Err.Error()
	}

	return msg
}

func (l *LookupError) Unwrap() error {
	return l.Err
}

func (l *LookupError) Is(target error) bool {
	return target == ErrUnresolvable
}

type jsonHTTPError struct {
	Error struct {
		Message string `json:"message"`
		Context string `json:"context"`
	} `json:"error"`
}

type httpError struct {
	message    string
	err        error
	statusCode int
}

func (h *httpError) Message() string {
	if h == nil {
		return ""
	}

	return h.message
}

func (h *httpError) Err() string {
	if err := errors.Unwrap(h); err != nil {
		return err.Error()
	}

	return ""
}

func (h *httpError) StatusCode() int {
	if h != nil && h.statusCode != 0 {
		return h.statusCode
	}

	return http.StatusInternalServerError
}

func (h *httpError) Unwrap() error {
	if h == nil {
		return nil
	}

	return h.err
}

func (h *httpError) Error() string {
	switch {
	case h == nil:
		return ""
	case h.err != nil && h.message != "":
		return h.message + ": " + h.err.Error()
	case h.err != nil:
		return h.err.Error()
	}

	return h.message
}

func (h *httpError) MarshalJSON() ([]byte, error) {
	value := jsonHTTPError{}
	value.Error.Message = h.Message()
	value.Error.Context = h.Err()

	return json.Marshal(&value)
}
