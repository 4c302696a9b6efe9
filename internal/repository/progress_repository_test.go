package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var progressRowColumns = []string{"id", "user_id", "category", "experience", "streak", "level", "last_studied"}

func TestProgressRepository_Upsert(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name          string
		passed        bool
		initialStreak int
	}{
		{name: "passing quiz starts streak at 1", passed: true, initialStreak: 1},
		{name: "failing quiz starts streak at 0", passed: false, initialStreak: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupTestDB(t)
			repo := NewProgressRepository(db)

			mock.ExpectQuery(`INSERT INTO progress .* ON CONFLICT \(user_id, category\) DO UPDATE SET .* RETURNING`).
				WithArgs(sqlmock.AnyArg(), "u1", "vocabulary", 90, tt.initialStreak, sqlmock.AnyArg(), tt.passed).
				WillReturnRows(sqlmock.NewRows(progressRowColumns).
					AddRow("p1", "u1", "vocabulary", 90, tt.initialStreak, 1, now))

			p, err := repo.Upsert(context.Background(), "u1", "vocabulary", 90, tt.passed)

			require.NoError(t, err)
			assert.Equal(t, 90, p.Experience)
			assert.Equal(t, tt.initialStreak, p.Streak)
			assert.Equal(t, 1, p.Level)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestProgressRepository_ListByUser(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewProgressRepository(db)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM progress WHERE user_id = \$1 ORDER BY category`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(progressRowColumns).
			AddRow("p1", "u1", "grammar", 40, 0, 1, now).
			AddRow("p2", "u1", "vocabulary", 310, 4, 1, now))

	rows, err := repo.ListByUser(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "vocabulary", rows[1].Category)
	assert.Equal(t, 4, rows[1].Streak)
	assert.NoError(t, mock.ExpectationsWereMet())
}
