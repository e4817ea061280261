// Package server provides the HTTP REST API for the document generator.
package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrInvalidAPIKey indicates the presented API key did not verify.
type ErrInvalidAPIKey struct{}

func (e *ErrInvalidAPIKey) Error() string {
	return "invalid API key"
}

// ErrRunNotFound indicates the requested run does not exist.
type ErrRunNotFound struct {
	RunID uuid.UUID
}

func (e *ErrRunNotFound) Error() string {
	return fmt.Sprintf("run not found: %s", e.RunID)
}

// ErrDatabaseUnavailable indicates the endpoint needs a database but the
// server was started without one.
type ErrDatabaseUnavailable struct{}

func (e *ErrDatabaseUnavailable) Error() string {
	return "database persistence is not configured"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrInvalidAPIKey:
		return http.StatusUnauthorized
	case *ErrRunNotFound:
		return http.StatusNotFound
	case *ErrDatabaseUnavailable:
		return http.StatusServiceUnavailable
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
