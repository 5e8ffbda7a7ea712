package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aura-webinar/portal/internal/auth"
	"github.com/aura-webinar/portal/internal/models"
)

const pgForeignKeyViolation = "23503"

const webinarColumns = `w.id, w.title, w.description, w.speaker, w.category, w.level, w.date, w.time, w.duration,
	w.image_url, w.price, w.currency,
	(SELECT COUNT(*)::int FROM registrations r WHERE r.webinar_id = w.id),
	w.max_capacity, w.hero_image, w.hero_context, w.hero_subtitle, w.platform, w.mentor_name, w.roadmap_items`

const registrationColumns = `r.id, r.webinar_id, r.status, r.registered_at,
	w.title, w.date, w.time, w.duration, w.speaker, w.image_url, w.meeting_id, w.passcode, w.invite_link`

// Postgres serves webinars and registrations from the portal's own database.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres-backed store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

var _ Store = (*Postgres)(nil)

// ListWebinars returns all webinars in insertion order.
func (s *Postgres) ListWebinars(ctx context.Context) ([]models.Webinar, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+webinarColumns+` FROM webinars w ORDER BY w.id`)
	if err != nil {
		return nil, fmt.Errorf("list webinars: %w", err)
	}
	defer rows.Close()
	list := []models.Webinar{}
	for rows.Next() {
		w, err := scanWebinar(rows)
		if err != nil {
			return nil, fmt.Errorf("scan webinar: %w", err)
		}
		list = append(list, *w)
	}
	return list, rows.Err()
}

// GetWebinar returns a webinar by ID.
func (s *Postgres) GetWebinar(ctx context.Context, id int64) (*models.Webinar, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+webinarColumns+` FROM webinars w WHERE w.id = $1`, id)
	w, err := scanWebinar(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("webinar %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get webinar %d: %w", id, err)
	}
	return w, nil
}

// ListRegistrations returns the caller's registrations, newest first.
func (s *Postgres) ListRegistrations(ctx context.Context, p auth.Principal) ([]models.Registration, error) {
	const q = `SELECT ` + registrationColumns + `
		FROM registrations r JOIN webinars w ON w.id = r.webinar_id
		WHERE r.user_id = $1 ORDER BY r.registered_at DESC, r.id DESC`
	rows, err := s.pool.Query(ctx, q, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()
	list := []models.Registration{}
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		list = append(list, *reg)
	}
	return list, rows.Err()
}

// Register creates a pending registration. A second registration for the same webinar
// returns ErrAlreadyRegistered; an unknown webinar returns ErrNotFound.
func (s *Postgres) Register(ctx context.Context, p auth.Principal, webinarID int64) (*models.Registration, error) {
	const insert = `INSERT INTO registrations (user_id, webinar_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, webinar_id) DO NOTHING
		RETURNING id`
	var id int64
	err := s.pool.QueryRow(ctx, insert, p.UserID, webinarID, models.RegistrationStatusPending).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAlreadyRegistered
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return nil, fmt.Errorf("webinar %d: %w", webinarID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("insert registration: %w", err)
	}

	row := s.pool.QueryRow(ctx, `SELECT `+registrationColumns+`
		FROM registrations r JOIN webinars w ON w.id = r.webinar_id WHERE r.id = $1`, id)
	reg, err := scanRegistration(row)
	if err != nil {
		return nil, fmt.Errorf("get registration %d: %w", id, err)
	}
	return reg, nil
}

func scanWebinar(row pgx.Row) (*models.Webinar, error) {
	var w models.Webinar
	err := row.Scan(&w.ID, &w.Title, &w.Description, &w.Speaker, &w.Category, &w.Level, &w.Date, &w.Time, &w.Duration,
		&w.ImageURL, &w.Price, &w.Currency, &w.RegisteredCount,
		&w.MaxCapacity, &w.HeroImage, &w.HeroContext, &w.HeroSubtitle, &w.Platform, &w.MentorName, &w.RoadmapItems)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func scanRegistration(row pgx.Row) (*models.Registration, error) {
	var reg models.Registration
	err := row.Scan(&reg.ID, &reg.WebinarID, &reg.Status, &reg.RegisteredAt,
		&reg.Title, &reg.Date, &reg.Time, &reg.Duration, &reg.Speaker, &reg.ImageURL, &reg.MeetingID, &reg.Passcode, &reg.InviteLink)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}
