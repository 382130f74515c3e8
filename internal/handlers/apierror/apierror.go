package apierror

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// FromService maps the service error taxonomy to HTTP errors. Anything
// unrecognised becomes a 500 carrying only fallback; the cause is recorded in
// the request's LogData instead of the response.
func FromService(ctx context.Context, err error, fallback string) error {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return huma.Error400BadRequest(validationErr.Message)
	}

	var conflictErr *service.ConflictError
	if errors.As(err, &conflictErr) {
		return huma.Error409Conflict(conflictErr.Message)
	}

	var authErr *service.AuthenticationError
	if errors.As(err, &authErr) {
		return huma.Error401Unauthorized(authErr.Message)
	}

	logging.GetLogData(ctx).AddData("error", err.Error())
	return huma.Error500InternalServerError(fallback)
}
