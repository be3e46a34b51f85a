package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

type ConferenceRepository struct {
	DB *sql.DB
}

func NewConferenceRepository(db *sql.DB) domain.ConferenceRepository {
	return &ConferenceRepository{
		DB: db,
	}
}

const conferenceColumns = `id, organizer_id, name, city, topics, start_date, end_date, month, max_attendees, seats_available, created_at, updated_at`

func (r *ConferenceRepository) Create(ctx context.Context, c *domain.Conference) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	query := `
		INSERT INTO conferences (id, organizer_id, name, city, topics, start_date, end_date, month, max_attendees, seats_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.DB.ExecContext(ctx, query,
		c.ID, c.OrganizerID, c.Name, c.City, pq.Array(c.Topics),
		c.StartDate, c.EndDate, c.Month, c.MaxAttendees, c.SeatsAvailable, c.CreatedAt, c.UpdatedAt)
	return storeErr(err)
}

func (r *ConferenceRepository) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	query := `SELECT ` + conferenceColumns + ` FROM conferences WHERE id = $1`
	c := &domain.Conference{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.OrganizerID, &c.Name, &c.City, pq.Array(&c.Topics),
		&c.StartDate, &c.EndDate, &c.Month, &c.MaxAttendees, &c.SeatsAvailable, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, storeErr(err)
	}
	return c, nil
}

func (r *ConferenceRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Conference, error) {
	query := `SELECT ` + conferenceColumns + ` FROM conferences WHERE organizer_id = $1 ORDER BY start_date, name`
	rows, err := r.DB.QueryContext(ctx, query, organizerID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()
	return scanConferences(rows)
}

func (r *ConferenceRepository) ListNearlySoldOut(ctx context.Context, maxSeats int) ([]*domain.Conference, error) {
	query := `SELECT ` + conferenceColumns + ` FROM conferences WHERE seats_available > 0 AND seats_available <= $1 ORDER BY name`
	rows, err := r.DB.QueryContext(ctx, query, maxSeats)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()
	return scanConferences(rows)
}

func scanConferences(rows *sql.Rows) ([]*domain.Conference, error) {
	var conferences []*domain.Conference
	for rows.Next() {
		c := &domain.Conference{}
		if err := rows.Scan(
			&c.ID, &c.OrganizerID, &c.Name, &c.City, pq.Array(&c.Topics),
			&c.StartDate, &c.EndDate, &c.Month, &c.MaxAttendees, &c.SeatsAvailable, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		conferences = append(conferences, c)
	}
	return conferences, rows.Err()
}
