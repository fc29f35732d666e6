package fio

import (
	"errors"
	"fmt"
)

// ErrInvalidPolicy is returned for unsupported cache policy strings.
var ErrInvalidPolicy = errors.New("invalid cache policy")

// ErrBadEndpoint is returned when an endpoint contains characters that have
// no business in a request path (quotes, angle brackets).
var ErrBadEndpoint = errors.New("malformed endpoint")

// FetchError reports a transport or HTTP status failure after retries.
type FetchError struct {
	Endpoint string
	Status   int // 0 when the failure happened below HTTP
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a response body that could not be decoded.
type ParseError struct {
	Endpoint string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Endpoint, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
