package postgres

import (
	"context"
	"database/sql"

	"conferencecentral/internal/domain"
)

type ProfileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &ProfileRepository{
		DB: db,
	}
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO profiles (id, display_name, email, tee_shirt_size, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, p.ID, p.DisplayName, p.Email, p.TeeShirtSize, p.CreatedAt, p.UpdatedAt)
	return storeErr(err)
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT id, display_name, email, tee_shirt_size, created_at, updated_at FROM profiles WHERE id = $1`
	p := &domain.Profile{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.DisplayName, &p.Email, &p.TeeShirtSize, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, storeErr(err)
	}

	regs, err := r.listRegistrationIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	p.ConferenceIDs = regs

	wishlist, err := r.ListWishlistSessionIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	p.WishlistSessionIDs = wishlist
	return p, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *domain.Profile) error {
	query := `
		UPDATE profiles
		SET display_name = $2, email = $3, tee_shirt_size = $4, updated_at = $5
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, p.ID, p.DisplayName, p.Email, p.TeeShirtSize, p.UpdatedAt)
	if err != nil {
		return storeErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProfileRepository) AddRegistration(ctx context.Context, profileID, conferenceID string) (bool, error) {
	query := `
		INSERT INTO conference_registrations (profile_id, conference_id, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (profile_id, conference_id) DO NOTHING
	`
	res, err := r.DB.ExecContext(ctx, query, profileID, conferenceID)
	if err != nil {
		return false, storeErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *ProfileRepository) RemoveRegistration(ctx context.Context, profileID, conferenceID string) (bool, error) {
	query := `DELETE FROM conference_registrations WHERE profile_id = $1 AND conference_id = $2`
	res, err := r.DB.ExecContext(ctx, query, profileID, conferenceID)
	if err != nil {
		return false, storeErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *ProfileRepository) ListByConferenceID(ctx context.Context, conferenceID string) ([]*domain.Profile, error) {
	query := `
		SELECT p.id, p.display_name, p.email, p.tee_shirt_size, p.created_at, p.updated_at
		FROM profiles p
		JOIN conference_registrations cr ON cr.profile_id = p.id
		WHERE cr.conference_id = $1
		ORDER BY p.display_name, p.id
	`
	rows, err := r.DB.QueryContext(ctx, query, conferenceID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()
	var profiles []*domain.Profile
	for rows.Next() {
		p := &domain.Profile{}
		if err := rows.Scan(&p.ID, &p.DisplayName, &p.Email, &p.TeeShirtSize, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *ProfileRepository) AddWishlistEntry(ctx context.Context, profileID, sessionID string) (bool, error) {
	// ON CONFLICT DO NOTHING makes the add idempotent: a duplicate key
	// reports inserted=false rather than an error.
	query := `
		INSERT INTO wishlist_entries (profile_id, session_id, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (profile_id, session_id) DO NOTHING
	`
	res, err := r.DB.ExecContext(ctx, query, profileID, sessionID)
	if err != nil {
		return false, storeErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *ProfileRepository) RemoveWishlistEntry(ctx context.Context, profileID, sessionID string) (bool, error) {
	query := `DELETE FROM wishlist_entries WHERE profile_id = $1 AND session_id = $2`
	res, err := r.DB.ExecContext(ctx, query, profileID, sessionID)
	if err != nil {
		return false, storeErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *ProfileRepository) ListWishlistSessionIDs(ctx context.Context, profileID string) ([]string, error) {
	query := `SELECT session_id FROM wishlist_entries WHERE profile_id = $1 ORDER BY session_id`
	rows, err := r.DB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *ProfileRepository) listRegistrationIDs(ctx context.Context, profileID string) ([]string, error) {
	query := `SELECT conference_id FROM conference_registrations WHERE profile_id = $1 ORDER BY conference_id`
	rows, err := r.DB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
