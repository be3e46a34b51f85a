package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

type SpeakerRepository struct {
	DB *sql.DB
}

func NewSpeakerRepository(db *sql.DB) domain.SpeakerRepository {
	return &SpeakerRepository{
		DB: db,
	}
}

const speakerColumns = `id, name, email, bio, created_at, updated_at`

func (r *SpeakerRepository) Create(ctx context.Context, s *domain.Speaker) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	query := `
		INSERT INTO speakers (id, name, email, bio, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query, s.ID, s.Name, s.Email, s.Bio, s.CreatedAt, s.UpdatedAt)
	return storeErr(err)
}

func (r *SpeakerRepository) GetByID(ctx context.Context, id string) (*domain.Speaker, error) {
	query := `SELECT ` + speakerColumns + ` FROM speakers WHERE id = $1`
	s := &domain.Speaker{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name, &s.Email, &s.Bio, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, storeErr(err)
	}
	return s, nil
}

func (r *SpeakerRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Speaker, error) {
	query := `SELECT ` + speakerColumns + ` FROM speakers ORDER BY name, id LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()
	return scanSpeakers(rows)
}

func (r *SpeakerRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM speakers`).Scan(&count); err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}

func (r *SpeakerRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Speaker, error) {
	if len(ids) == 0 {
		return []*domain.Speaker{}, nil
	}
	query := `SELECT ` + speakerColumns + ` FROM speakers WHERE id = ANY($1) ORDER BY name, id`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()
	return scanSpeakers(rows)
}

func scanSpeakers(rows *sql.Rows) ([]*domain.Speaker, error) {
	var speakers []*domain.Speaker
	for rows.Next() {
		s := &domain.Speaker{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Bio, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		speakers = append(speakers, s)
	}
	return speakers, rows.Err()
}
