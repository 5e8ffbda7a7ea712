// Package catalogtest provides an in-memory catalog.Store for handler tests.
package catalogtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/aura-webinar/portal/internal/auth"
	"github.com/aura-webinar/portal/internal/catalog"
	"github.com/aura-webinar/portal/internal/models"
)

// Memory is a catalog.Store holding everything in maps.
type Memory struct {
	mu            sync.Mutex
	webinars      []models.Webinar
	registrations map[int64][]models.Registration

	// Err, when set, is returned by every call.
	Err error
	// ListCalls counts ListRegistrations calls.
	ListCalls int
}

var _ catalog.Store = (*Memory)(nil)

// NewMemory creates a store seeded with webinars.
func NewMemory(webinars ...models.Webinar) *Memory {
	return &Memory{webinars: webinars, registrations: map[int64][]models.Registration{}}
}

// Seed sets the registrations of a user.
func (m *Memory) Seed(userID int64, regs ...models.Registration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registrations[userID] = regs
}

// ListWebinars implements catalog.Store.
func (m *Memory) ListWebinars(ctx context.Context) ([]models.Webinar, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]models.Webinar{}, m.webinars...), nil
}

// GetWebinar implements catalog.Store.
func (m *Memory) GetWebinar(ctx context.Context, id int64) (*models.Webinar, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, w := range m.webinars {
		if w.ID == id {
			w := w
			return &w, nil
		}
	}
	return nil, fmt.Errorf("webinar %d: %w", id, catalog.ErrNotFound)
}

// ListRegistrations implements catalog.Store.
func (m *Memory) ListRegistrations(ctx context.Context, p auth.Principal) ([]models.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]models.Registration{}, m.registrations[p.UserID]...), nil
}

// Register implements catalog.Store.
func (m *Memory) Register(ctx context.Context, p auth.Principal, webinarID int64) (*models.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, r := range m.registrations[p.UserID] {
		if r.WebinarID == webinarID {
			return nil, catalog.ErrAlreadyRegistered
		}
	}
	reg := models.Registration{
		ID:        int64(len(m.registrations[p.UserID]) + 1),
		WebinarID: webinarID,
		Status:    models.RegistrationStatusPending,
	}
	m.registrations[p.UserID] = append(m.registrations[p.UserID], reg)
	return &reg, nil
}

// Snapshots is an in-memory registrations snapshot cache.
type Snapshots struct {
	mu    sync.Mutex
	Items map[int64][]models.Registration
	// Err, when set, is returned by every call.
	Err error
}

// NewSnapshots creates an empty snapshot cache.
func NewSnapshots() *Snapshots {
	return &Snapshots{Items: map[int64][]models.Registration{}}
}

// Get returns the snapshot of a user.
func (s *Snapshots) Get(ctx context.Context, userID int64) ([]models.Registration, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, false, s.Err
	}
	regs, ok := s.Items[userID]
	return regs, ok, nil
}

// Put replaces the snapshot of a user.
func (s *Snapshots) Put(ctx context.Context, userID int64, regs []models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Items[userID] = regs
	return nil
}

// Add appends to an existing snapshot.
func (s *Snapshots) Add(ctx context.Context, userID int64, reg models.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if regs, ok := s.Items[userID]; ok {
		s.Items[userID] = append(regs, reg)
	}
	return nil
}

// Drop removes the snapshot of a user.
func (s *Snapshots) Drop(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.Items, userID)
	return nil
}
