// Package server provides the HTTP JSON API for the ATS scorer.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/ats-scorer/internal/pipeline"
	"github.com/jonathan/ats-scorer/internal/schemas"
)

// ErrUnknownTenant indicates a valid token for a tenant that is not configured
type ErrUnknownTenant struct {
	Tenant string
}

func (e *ErrUnknownTenant) Error() string {
	return fmt.Sprintf("unknown tenant: %s", e.Tenant)
}

// ErrForbidden indicates an authenticated caller that may not perform the operation
type ErrForbidden struct {
	Message string
}

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("forbidden: %s", e.Message)
}

// ErrNotFound indicates a missing resource
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrStoreUnavailable is returned by endpoints that need a database when none is configured.
var ErrStoreUnavailable = errors.New("persistence is not configured (set DATABASE_URL)")

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// errorBody is the JSON error envelope. Details carries schema field errors when present.
type errorBody struct {
	Error   string               `json:"error"`
	Details []schemas.FieldError `json:"details,omitempty"`
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validation *ErrValidation
		input      *pipeline.InputError
		schema     *schemas.ValidationError
		tenant     *ErrUnknownTenant
		forbidden  *ErrForbidden
		notFound   *ErrNotFound
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &input), errors.As(err, &schema):
		return http.StatusBadRequest
	case errors.As(err, &tenant), errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// newErrorBody builds the response body for err. Internal errors are not echoed.
func newErrorBody(err error) errorBody {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		return errorBody{Error: "internal server error"}
	}
	body := errorBody{Error: err.Error()}
	var schema *schemas.ValidationError
	if errors.As(err, &schema) {
		body.Details = schema.Errors
	}
	return body
}
