package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

type SessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &SessionRepository{
		DB: db,
	}
}

const sessionColumns = `id, conference_id, name, highlights, session_type, duration, start_date, start_time, speaker_id, created_at, updated_at`

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	query := `
		INSERT INTO sessions (id, conference_id, name, highlights, session_type, duration, start_date, start_time, speaker_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.DB.ExecContext(ctx, query, s.ID, s.ConferenceID, s.Name, s.Highlights, s.SessionType, s.Duration, s.StartDate, s.StartTime, s.SpeakerID, s.CreatedAt, s.UpdatedAt)
	return storeErr(err)
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`
	s := &domain.Session{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.ConferenceID, &s.Name, &s.Highlights, &s.SessionType,
		&s.Duration, &s.StartDate, &s.StartTime, &s.SpeakerID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, storeErr(err)
	}
	return s, nil
}

func (r *SessionRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Session, error) {
	if len(ids) == 0 {
		return []*domain.Session{}, nil
	}
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ANY($1) ORDER BY start_date, start_time, name`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()
	return scanSessions(rows)
}

func (r *SessionRepository) DistinctSpeakerIDsByConferenceID(ctx context.Context, conferenceID string) ([]string, error) {
	query := `SELECT DISTINCT speaker_id FROM sessions WHERE conference_id = $1 AND speaker_id <> '' ORDER BY speaker_id`
	rows, err := r.DB.QueryContext(ctx, query, conferenceID)
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

// nativeColumns whitelists the queryable session columns. Field names in
// predicates happen to match column names; the map still guards against
// anything else reaching the SQL text.
var nativeColumns = map[string]string{
	domain.FieldName:        "name",
	domain.FieldSessionType: "session_type",
	domain.FieldDuration:    "duration",
	domain.FieldStartDate:   "start_date",
	domain.FieldStartTime:   "start_time",
	domain.FieldSpeakerID:   "speaker_id",
}

var inequalitySQL = map[domain.Operator]string{
	domain.OpLT:  "<",
	domain.OpLTE: "<=",
	domain.OpGT:  ">",
	domain.OpGTE: ">=",
}

// QueryNative executes a query the store supports natively: any number of
// equality predicates plus at most one inequality predicate. Anything else
// is rejected with ErrInvalidInput; decomposing richer queries is the query
// planner's job, not the store's.
func (r *SessionRepository) QueryNative(ctx context.Context, q domain.NativeQuery) ([]*domain.Session, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.ConferenceID != "" {
		where = append(where, "conference_id = "+arg(q.ConferenceID))
	}
	for _, eq := range q.Equalities {
		if eq.Op != domain.OpEQ {
			return nil, fmt.Errorf("%w: operator %s is not an equality", domain.ErrInvalidInput, eq.Op)
		}
		col, v, err := columnAndValue(eq)
		if err != nil {
			return nil, err
		}
		where = append(where, col+" = "+arg(v))
	}

	orderBy := "name"
	if q.Inequality != nil {
		op, ok := inequalitySQL[q.Inequality.Op]
		if !ok {
			return nil, fmt.Errorf("%w: operator %s is not a native inequality", domain.ErrInvalidInput, q.Inequality.Op)
		}
		col, v, err := columnAndValue(*q.Inequality)
		if err != nil {
			return nil, err
		}
		where = append(where, col+" "+op+" "+arg(v))
		// Results are ordered on the inequality column first, the way the
		// underlying index is walked.
		orderBy = col + ", name"
	}

	query := `SELECT ` + sessionColumns + ` FROM sessions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + orderBy

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()
	return scanSessions(rows)
}

// columnAndValue resolves a predicate to its whitelisted column and a typed
// query argument.
func columnAndValue(p domain.Predicate) (string, any, error) {
	col, ok := nativeColumns[p.Field]
	if !ok {
		return "", nil, fmt.Errorf("%w: unknown field %q", domain.ErrInvalidInput, p.Field)
	}
	switch p.Field {
	case domain.FieldDuration:
		n, err := strconv.Atoi(p.Value)
		if err != nil {
			return "", nil, fmt.Errorf("%w: duration value %q is not an integer", domain.ErrInvalidInput, p.Value)
		}
		return col, n, nil
	case domain.FieldStartDate:
		t, err := time.Parse("2006-01-02", p.Value)
		if err != nil {
			return "", nil, fmt.Errorf("%w: start_date value %q is not a date", domain.ErrInvalidInput, p.Value)
		}
		return col, t, nil
	default:
		return col, p.Value, nil
	}
}

func scanSessions(rows *sql.Rows) ([]*domain.Session, error) {
	var sessions []*domain.Session
	for rows.Next() {
		s := &domain.Session{}
		if err := rows.Scan(
			&s.ID, &s.ConferenceID, &s.Name, &s.Highlights, &s.SessionType,
			&s.Duration, &s.StartDate, &s.StartTime, &s.SpeakerID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
