// Package registrations serves the signed-in user's registrations and keeps a short-lived
// snapshot of them for registration clicks.
package registrations

import (
	"context"

	"go.uber.org/zap"

	"github.com/aura-webinar/portal/internal/auth"
	"github.com/aura-webinar/portal/internal/catalog"
	"github.com/aura-webinar/portal/internal/models"
)

// Service reads registrations through the snapshot cache. Cache failures are logged and
// never fail a request.
type Service struct {
	store     catalog.Store
	snapshots Snapshots
	logger    *zap.Logger
}

// NewService creates a registrations service.
func NewService(store catalog.Store, snapshots Snapshots, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, snapshots: snapshots, logger: logger}
}

// Fresh fetches the registrations from the store and refreshes the snapshot.
func (s *Service) Fresh(ctx context.Context, p auth.Principal) ([]models.Registration, error) {
	regs, err := s.store.ListRegistrations(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := s.snapshots.Put(ctx, p.UserID, regs); err != nil {
		s.logger.Warn("store registration snapshot", zap.Error(err), zap.Int64("user_id", p.UserID))
	}
	return regs, nil
}

// Snapshot returns the cached registrations, fetching them on a miss.
func (s *Service) Snapshot(ctx context.Context, p auth.Principal) ([]models.Registration, error) {
	regs, ok, err := s.snapshots.Get(ctx, p.UserID)
	if err != nil {
		s.logger.Warn("read registration snapshot", zap.Error(err), zap.Int64("user_id", p.UserID))
	}
	if ok {
		return regs, nil
	}
	return s.Fresh(ctx, p)
}

// Register creates a free registration and records it in the snapshot.
func (s *Service) Register(ctx context.Context, p auth.Principal, webinarID int64) (*models.Registration, error) {
	reg, err := s.store.Register(ctx, p, webinarID)
	if err != nil {
		return nil, err
	}
	s.Record(ctx, p, *reg)
	return reg, nil
}

// Record adds a registration created elsewhere (e.g. after payment) to the snapshot.
func (s *Service) Record(ctx context.Context, p auth.Principal, reg models.Registration) {
	if err := s.snapshots.Add(ctx, p.UserID, reg); err != nil {
		s.logger.Warn("update registration snapshot", zap.Error(err), zap.Int64("user_id", p.UserID))
	}
}

// Forget drops the user's snapshot.
func (s *Service) Forget(ctx context.Context, p auth.Principal) {
	if p.UserID == 0 {
		return
	}
	if err := s.snapshots.Drop(ctx, p.UserID); err != nil {
		s.logger.Warn("drop registration snapshot", zap.Error(err), zap.Int64("user_id", p.UserID))
	}
}
