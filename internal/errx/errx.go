// Package errx classifies application errors into kinds that the HTTP
// layer maps onto status codes. Upstream errors additionally carry the
// status code reported by the remote server.
package errx

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind uint8

const (
	Unknown Kind = iota
	Invalid
	NotFound
	Unauthorized
	Forbidden
	Upstream
	Internal
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case NotFound:
		return "not_found"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case Upstream:
		return "upstream"
	case Internal:
		return "internal"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

type Error struct {
	Op   string
	Kind Kind
	// Status is only meaningful for Upstream errors: the HTTP status
	// reported by the remote server, surfaced to the client as-is.
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op
	}
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func E(op string, kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: kind, Err: err}
}

// EStatus wraps an upstream failure together with the remote status code.
func EStatus(op string, status int, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: Upstream, Status: status, Err: err}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// StatusOf resolves the HTTP status code an error should surface as.
func StatusOf(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case Invalid:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Upstream:
		if e.Status >= 400 {
			return e.Status
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
