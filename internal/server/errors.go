package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/algo-rhythm/portfolio-deck/internal/gauth"
	"github.com/algo-rhythm/portfolio-deck/internal/layout"
	"github.com/algo-rhythm/portfolio-deck/internal/pipeline"
	"github.com/algo-rhythm/portfolio-deck/internal/slidesapi"
)

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var authErr *gauth.AuthError
	var remoteErr *slidesapi.RemoteAPIError
	var planErr *layout.PlanConsistencyError

	switch {
	case errors.Is(err, pipeline.ErrCancelled):
		return http.StatusBadRequest
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	case errors.As(err, &remoteErr):
		return http.StatusBadGateway
	case errors.As(err, &planErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
