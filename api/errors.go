package api

import (
	"errors"
	"fmt"
)

// HTTPError is returned when the backend answered with a status outside
// the 2xx range. Body holds the raw response text so callers can classify
// further, or the status line when the backend sent an empty body.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Body)
}

// NetworkError is returned when the transport failed before any response
// was received. It is distinguishable from HTTPError so that callers can
// tell "backend rejected" from "backend unreachable".
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// AsHTTPError unwraps err into an HTTPError if it carries one.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// IsNetworkError reports whether err stems from a transport failure.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsServerError reports whether err is an HTTPError with a 5xx status.
func IsServerError(err error) bool {
	httpErr, ok := AsHTTPError(err)
	return ok && httpErr.Status >= 500
}

// IsStatus reports whether err is an HTTPError with the given status.
func IsStatus(err error, status int) bool {
	httpErr, ok := AsHTTPError(err)
	return ok && httpErr.Status == status
}
