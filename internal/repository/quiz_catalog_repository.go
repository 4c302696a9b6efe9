package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

type QuizCatalogRepository struct {
	db *sqlx.DB
}

func NewQuizCatalogRepository(db *sqlx.DB) domain.QuizCatalogRepository {
	return &QuizCatalogRepository{db: db}
}

// UpsertQuiz refreshes the description of an existing (title, category) pair or inserts a new quiz.
func (r *QuizCatalogRepository) UpsertQuiz(ctx context.Context, q *domain.Quiz) (bool, error) {
	exec := GetExecutor(ctx, r.db)

	var id int64
	err := exec.GetContext(ctx, &id, `SELECT id FROM quizzes WHERE title = $1 AND category = $2`, q.Title, q.Category)
	switch {
	case err == nil:
		if _, err := exec.ExecContext(ctx, `UPDATE quizzes SET description = $1 WHERE id = $2`, q.Description, id); err != nil {
			return false, fmt.Errorf("failed to update quiz %d: %w", id, err)
		}
		q.ID = id
		return false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return false, fmt.Errorf("failed to look up quiz %q: %w", q.Title, err)
	}

	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO quizzes (title, category, description, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := exec.GetContext(ctx, &q.ID, query, q.Title, q.Category, q.Description, q.CreatedAt); err != nil {
		return false, fmt.Errorf("failed to insert quiz %q: %w", q.Title, err)
	}
	return true, nil
}

func (r *QuizCatalogRepository) ListQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	var rows []models.Quiz
	query := `SELECT id, title, category, description, created_at FROM quizzes ORDER BY id`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	out := make([]domain.Quiz, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.Quiz{
			ID:          m.ID,
			Title:       m.Title,
			Category:    m.Category,
			Description: m.Description,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out, nil
}
