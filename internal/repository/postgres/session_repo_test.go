package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"conferencecentral/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func sessionRows(sessions ...*domain.Session) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "conference_id", "name", "highlights", "session_type",
		"duration", "start_date", "start_time", "speaker_id", "created_at", "updated_at",
	})
	for _, s := range sessions {
		rows.AddRow(s.ID, s.ConferenceID, s.Name, s.Highlights, s.SessionType,
			s.Duration, s.StartDate, s.StartTime, s.SpeakerID, s.CreatedAt, s.UpdatedAt)
	}
	return rows
}

func TestSessionRepository_Create(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	startDate := time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		session *domain.Session
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
	}{
		{
			name: "success",
			session: &domain.Session{
				ConferenceID: "conf-1",
				Name:         "Intro to Go",
				SessionType:  "lecture",
				Duration:     60,
				StartDate:    startDate,
				StartTime:    "10:00",
				SpeakerID:    "sp-1",
				CreatedAt:    createdAt,
				UpdatedAt:    createdAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO sessions`).
					WithArgs(sqlmock.AnyArg(), "conf-1", "Intro to Go", "", "lecture", 60, startDate, "10:00", "sp-1", createdAt, createdAt).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			wantErr: false,
		},
		{
			name: "db error",
			session: &domain.Session{
				ConferenceID: "conf-1",
				Name:         "Intro to Go",
				SessionType:  "lecture",
				Duration:     60,
				StartDate:    startDate,
				StartTime:    "10:00",
				CreatedAt:    createdAt,
				UpdatedAt:    createdAt,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO sessions`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewSessionRepository(db)
			err = repo.Create(ctx, tt.session)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotEmpty(t, tt.session.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM sessions WHERE id =`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	repo := NewSessionRepository(db)
	_, err = repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionRepository_QueryNative(t *testing.T) {
	ctx := context.Background()
	startDate := time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	session := &domain.Session{
		ID: "s1", ConferenceID: "conf-1", Name: "Intro to Go", SessionType: "lecture",
		Duration: 60, StartDate: startDate, StartTime: "10:00", SpeakerID: "sp-1",
		CreatedAt: now, UpdatedAt: now,
	}

	tests := []struct {
		name    string
		query   domain.NativeQuery
		mock    func(mock sqlmock.Sqlmock)
		wantLen int
		wantErr error
	}{
		{
			name:  "scope only",
			query: domain.NativeQuery{ConferenceID: "conf-1"},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .+ FROM sessions WHERE conference_id = \$1 ORDER BY name`).
					WithArgs("conf-1").
					WillReturnRows(sessionRows(session))
			},
			wantLen: 1,
		},
		{
			name: "equality plus inequality orders on inequality column",
			query: domain.NativeQuery{
				ConferenceID: "conf-1",
				Equalities: []domain.Predicate{
					{Field: domain.FieldSessionType, Op: domain.OpEQ, Value: "lecture"},
				},
				Inequality: &domain.Predicate{Field: domain.FieldStartTime, Op: domain.OpLT, Value: "19:00"},
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .+ FROM sessions WHERE conference_id = \$1 AND session_type = \$2 AND start_time < \$3 ORDER BY start_time, name`).
					WithArgs("conf-1", "lecture", "19:00").
					WillReturnRows(sessionRows(session))
			},
			wantLen: 1,
		},
		{
			name: "duration inequality passes a typed argument",
			query: domain.NativeQuery{
				ConferenceID: "conf-1",
				Inequality:   &domain.Predicate{Field: domain.FieldDuration, Op: domain.OpGTE, Value: "45"},
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .+ FROM sessions WHERE conference_id = \$1 AND duration >= \$2 ORDER BY duration, name`).
					WithArgs("conf-1", 45).
					WillReturnRows(sessionRows(session))
			},
			wantLen: 1,
		},
		{
			name: "NEQ rejected as native inequality",
			query: domain.NativeQuery{
				ConferenceID: "conf-1",
				Inequality:   &domain.Predicate{Field: domain.FieldSessionType, Op: domain.OpNEQ, Value: "workshop"},
			},
			mock:    func(mock sqlmock.Sqlmock) {},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "non-equality operator rejected in equality list",
			query: domain.NativeQuery{
				ConferenceID: "conf-1",
				Equalities: []domain.Predicate{
					{Field: domain.FieldStartTime, Op: domain.OpLT, Value: "19:00"},
				},
			},
			mock:    func(mock sqlmock.Sqlmock) {},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name: "unknown field rejected",
			query: domain.NativeQuery{
				ConferenceID: "conf-1",
				Equalities: []domain.Predicate{
					{Field: "organizer", Op: domain.OpEQ, Value: "x"},
				},
			},
			mock:    func(mock sqlmock.Sqlmock) {},
			wantErr: domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewSessionRepository(db).(*SessionRepository)
			got, err := repo.QueryNative(ctx, tt.query)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, tt.wantLen)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepository_DistinctSpeakerIDsByConferenceID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT DISTINCT speaker_id FROM sessions`).
		WithArgs("conf-1").
		WillReturnRows(sqlmock.NewRows([]string{"speaker_id"}).AddRow("sp-1").AddRow("sp-2"))

	repo := NewSessionRepository(db)
	ids, err := repo.DistinctSpeakerIDsByConferenceID(context.Background(), "conf-1")
	require.NoError(t, err)
	require.Equal(t, []string{"sp-1", "sp-2"}, ids)
}
