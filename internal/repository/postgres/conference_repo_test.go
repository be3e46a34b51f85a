package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"conferencecentral/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func conferenceRows(conferences ...*domain.Conference) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "organizer_id", "name", "city", "topics", "start_date", "end_date",
		"month", "max_attendees", "seats_available", "created_at", "updated_at",
	})
	for _, c := range conferences {
		rows.AddRow(c.ID, c.OrganizerID, c.Name, c.City, pq.Array(c.Topics),
			c.StartDate, c.EndDate, c.Month, c.MaxAttendees, c.SeatsAvailable, c.CreatedAt, c.UpdatedAt)
	}
	return rows
}

func TestConferenceRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	conf := domain.NewConference("u1", "GopherCon", "Berlin", []string{"go", "backend"}, start, start.AddDate(0, 0, 2), 100, now, now)

	mock.ExpectExec(`INSERT INTO conferences`).
		WithArgs(sqlmock.AnyArg(), "u1", "GopherCon", "Berlin", pq.Array([]string{"go", "backend"}),
			start, start.AddDate(0, 0, 2), 10, 100, 100, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewConferenceRepository(db)
	require.NoError(t, repo.Create(ctx, conf))
	require.NotEmpty(t, conf.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConferenceRepository_GetByID(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	conf := &domain.Conference{
		ID: "c1", OrganizerID: "u1", Name: "GopherCon", City: "Berlin",
		Topics: []string{"go"}, StartDate: now, EndDate: now, Month: 1,
		MaxAttendees: 100, SeatsAvailable: 42, CreatedAt: now, UpdatedAt: now,
	}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .+ FROM conferences WHERE id =`).
					WithArgs("c1").
					WillReturnRows(conferenceRows(conf))
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .+ FROM conferences WHERE id =`).
					WithArgs("c1").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewConferenceRepository(db)
			got, err := repo.GetByID(context.Background(), "c1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "GopherCon", got.Name)
			require.Equal(t, 42, got.SeatsAvailable)
		})
	}
}

func TestConferenceRepository_ListNearlySoldOut(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	conf := &domain.Conference{
		ID: "c1", OrganizerID: "u1", Name: "GopherCon", Topics: []string{},
		StartDate: now, EndDate: now, SeatsAvailable: 3, CreatedAt: now, UpdatedAt: now,
	}

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM conferences WHERE seats_available > 0 AND seats_available <=`).
		WithArgs(5).
		WillReturnRows(conferenceRows(conf))

	repo := NewConferenceRepository(db)
	got, err := repo.ListNearlySoldOut(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "GopherCon", got[0].Name)
}
