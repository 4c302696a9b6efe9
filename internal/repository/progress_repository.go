package repository

import (
	"context"
	"fmt"
	"time"

	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/repository/models"
	"lingo-quiz/internal/util"

	"github.com/jmoiron/sqlx"
)

const progressColumns = `id, user_id, category, experience, streak, level, last_studied`

// ProgressRepository implements domain.ProgressRepository on Postgres.
type ProgressRepository struct {
	db *sqlx.DB
}

func NewProgressRepository(db *sqlx.DB) domain.ProgressRepository {
	return &ProgressRepository{db: db}
}

// Upsert creates the (userID, category) row on first use and increments it afterwards.
// A failed quiz resets the streak to 0; the level is left untouched on update.
func (r *ProgressRepository) Upsert(ctx context.Context, userID, category string, experienceGained int, passed bool) (*domain.Progress, error) {
	initialStreak := 0
	if passed {
		initialStreak = 1
	}

	query := `INSERT INTO progress (` + progressColumns + `)
		VALUES ($1, $2, $3, $4, $5, 1, $6)
		ON CONFLICT (user_id, category) DO UPDATE SET
			experience = progress.experience + EXCLUDED.experience,
			streak = CASE WHEN $7 THEN progress.streak + 1 ELSE 0 END,
			last_studied = EXCLUDED.last_studied
		RETURNING ` + progressColumns

	var m models.Progress
	err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query,
		util.NewULID(), userID, category, experienceGained, initialStreak, time.Now().UTC(), passed)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert progress for category %s: %w", category, err)
	}
	return toDomainProgress(&m), nil
}

func (r *ProgressRepository) ListByUser(ctx context.Context, userID string) ([]domain.Progress, error) {
	var rows []models.Progress
	query := `SELECT ` + progressColumns + ` FROM progress WHERE user_id = $1 ORDER BY category`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	out := make([]domain.Progress, 0, len(rows))
	for i := range rows {
		out = append(out, *toDomainProgress(&rows[i]))
	}
	return out, nil
}

func toDomainProgress(m *models.Progress) *domain.Progress {
	return &domain.Progress{
		ID:          m.ID,
		UserID:      m.UserID,
		Category:    m.Category,
		Experience:  m.Experience,
		Streak:      m.Streak,
		Level:       m.Level,
		LastStudied: m.LastStudied,
	}
}
