package backend

import (
	"context"
	"errors"
	"net/http"

	"github.com/aura-webinar/portal/internal/catalog"
)

// Status maps an error from a Store or the Client to the HTTP status returned to the browser.
// Backend client errors (4xx) pass through; anything else is a gateway failure.
func Status(err error) int {
	var apiErr *APIError
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrAlreadyRegistered):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500:
		return apiErr.Status
	default:
		return http.StatusBadGateway
	}
}
