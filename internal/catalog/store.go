// Package catalog defines where webinar and registration records come from. The platform
// backend is the default source; a Postgres repository serves self-hosted deployments.
package catalog

import (
	"context"
	"errors"

	"github.com/aura-webinar/portal/internal/auth"
	"github.com/aura-webinar/portal/internal/models"
)

var (
	// ErrNotFound is returned when a webinar does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyRegistered is returned when the user already holds a registration.
	ErrAlreadyRegistered = errors.New("already registered")
)

// Store reads webinars and the caller's registrations, and creates free registrations.
type Store interface {
	ListWebinars(ctx context.Context) ([]models.Webinar, error)
	GetWebinar(ctx context.Context, id int64) (*models.Webinar, error)
	ListRegistrations(ctx context.Context, p auth.Principal) ([]models.Registration, error)
	Register(ctx context.Context, p auth.Principal, webinarID int64) (*models.Registration, error)
}
