package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"conferencecentral/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func speakerRows(speakers ...*domain.Speaker) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "email", "bio", "created_at", "updated_at"})
	for _, s := range speakers {
		rows.AddRow(s.ID, s.Name, s.Email, s.Bio, s.CreatedAt, s.UpdatedAt)
	}
	return rows
}

func TestSpeakerRepository_Create(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO speakers`).
		WithArgs(sqlmock.AnyArg(), "Ada", "ada@example.com", "", createdAt, createdAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewSpeakerRepository(db)
	speaker := &domain.Speaker{Name: "Ada", Email: "ada@example.com", CreatedAt: createdAt, UpdatedAt: createdAt}
	require.NoError(t, repo.Create(ctx, speaker))
	require.NotEmpty(t, speaker.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSpeakerRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .+ FROM speakers WHERE id = \$1`).
					WithArgs("sp-1").
					WillReturnRows(speakerRows(&domain.Speaker{
						ID: "sp-1", Name: "Ada", Email: "ada@example.com",
						CreatedAt: createdAt, UpdatedAt: createdAt,
					}))
			},
		},
		{
			name: "not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .+ FROM speakers WHERE id = \$1`).
					WithArgs("sp-1").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "connection gone",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT .+ FROM speakers WHERE id = \$1`).
					WithArgs("sp-1").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: domain.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)

			repo := NewSpeakerRepository(db)
			speaker, err := repo.GetByID(ctx, "sp-1")
			if tt.wantErr != nil {
				require.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "sp-1", speaker.ID)
			require.Equal(t, "Ada", speaker.Name)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSpeakerRepository_ListByIDs(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM speakers WHERE id = ANY\(\$1\)`).
		WillReturnRows(speakerRows(
			&domain.Speaker{ID: "sp-1", Name: "Ada", CreatedAt: createdAt, UpdatedAt: createdAt},
		))

	repo := NewSpeakerRepository(db)
	speakers, err := repo.ListByIDs(ctx, []string{"sp-1", "sp-gone"})
	require.NoError(t, err)
	require.Len(t, speakers, 1)
	require.Equal(t, "sp-1", speakers[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSpeakerRepository_ListByIDsEmpty(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewSpeakerRepository(db)
	speakers, err := repo.ListByIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, speakers)
}

func TestSpeakerRepository_Count(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM speakers`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	repo := NewSpeakerRepository(db)
	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 7, count)
	require.NoError(t, mock.ExpectationsWereMet())
}
