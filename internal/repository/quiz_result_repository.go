package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/repository/models"
	"lingo-quiz/internal/util"

	"github.com/jmoiron/sqlx"
)

const quizResultColumns = `r.id, r.user_id, r.quiz_id, r.score, r.total_questions, r.time_spent, r.completed_at,
	q.title AS quiz_title, q.category AS quiz_category`

const questionResultColumns = `id, quiz_result_id, question_id, question, selected_option, correct_answer, is_correct, time_spent`

// QuizResultRepository implements domain.QuizResultRepository on Postgres.
type QuizResultRepository struct {
	db *sqlx.DB
}

func NewQuizResultRepository(db *sqlx.DB) domain.QuizResultRepository {
	return &QuizResultRepository{db: db}
}

// CreateResult inserts the result and fills in its ID and CompletedAt when unset.
func (r *QuizResultRepository) CreateResult(ctx context.Context, result *domain.QuizResult) error {
	if result.ID == "" {
		result.ID = util.NewULID()
	}
	if result.CompletedAt.IsZero() {
		result.CompletedAt = time.Now().UTC()
	}
	m := fromDomainQuizResult(result)

	query := `INSERT INTO quiz_results (id, user_id, quiz_id, score, total_questions, time_spent, completed_at)
		VALUES (:id, :user_id, :quiz_id, :score, :total_questions, :time_spent, :completed_at)`

	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, m); err != nil {
		return fmt.Errorf("failed to insert quiz result: %w", err)
	}
	return nil
}

// CreateQuestionResults inserts all rows with one multi-row INSERT.
func (r *QuizResultRepository) CreateQuestionResults(ctx context.Context, results []domain.QuestionResult) error {
	if len(results) == 0 {
		return nil
	}
	rows := make([]models.QuestionResult, len(results))
	for i := range results {
		if results[i].ID == "" {
			results[i].ID = util.NewULID()
		}
		rows[i] = fromDomainQuestionResult(&results[i])
	}

	query := `INSERT INTO question_results (` + questionResultColumns + `)
		VALUES (:id, :quiz_result_id, :question_id, :question, :selected_option, :correct_answer, :is_correct, :time_spent)`

	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, rows); err != nil {
		return fmt.Errorf("failed to insert question results: %w", err)
	}
	return nil
}

// GetResultByIDForUser returns (nil, nil) when the result does not exist or belongs to another user.
func (r *QuizResultRepository) GetResultByIDForUser(ctx context.Context, id, userID string) (*domain.QuizResult, error) {
	exec := GetExecutor(ctx, r.db)

	var m models.QuizResult
	query := `SELECT ` + quizResultColumns + `
		FROM quiz_results r
		JOIN quizzes q ON q.id = r.quiz_id
		WHERE r.id = $1 AND r.user_id = $2`
	if err := exec.GetContext(ctx, &m, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz result %s: %w", id, err)
	}

	result := toDomainQuizResult(&m)
	byResult, err := r.loadQuestionResults(ctx, []string{m.ID})
	if err != nil {
		return nil, err
	}
	result.QuestionResults = byResult[m.ID]
	return result, nil
}

// ListResultsByUser returns one page of results, newest first, with their question results.
func (r *QuizResultRepository) ListResultsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.QuizResult, error) {
	var rows []models.QuizResult
	query := `SELECT ` + quizResultColumns + `
		FROM quiz_results r
		JOIN quizzes q ON q.id = r.quiz_id
		WHERE r.user_id = $1
		ORDER BY r.completed_at DESC, r.id DESC
		LIMIT $2 OFFSET $3`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list quiz results: %w", err)
	}
	return r.withQuestionResults(ctx, rows)
}

func (r *QuizResultRepository) CountResultsByUser(ctx context.Context, userID string) (int, error) {
	var count int
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &count, `SELECT COUNT(*) FROM quiz_results WHERE user_id = $1`, userID); err != nil {
		return 0, fmt.Errorf("failed to count quiz results: %w", err)
	}
	return count, nil
}

// GetRecentResults returns the newest results without question results.
func (r *QuizResultRepository) GetRecentResults(ctx context.Context, userID string, limit int) ([]domain.QuizResult, error) {
	var rows []models.QuizResult
	query := `SELECT ` + quizResultColumns + `
		FROM quiz_results r
		JOIN quizzes q ON q.id = r.quiz_id
		WHERE r.user_id = $1
		ORDER BY r.completed_at DESC, r.id DESC
		LIMIT $2`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to get recent quiz results: %w", err)
	}
	results := make([]domain.QuizResult, 0, len(rows))
	for i := range rows {
		results = append(results, *toDomainQuizResult(&rows[i]))
	}
	return results, nil
}

func (r *QuizResultRepository) GetScoreSummary(ctx context.Context, userID string) (*domain.ScoreSummary, error) {
	var row struct {
		Count     int             `db:"count"`
		Average   sql.NullFloat64 `db:"average"`
		BestScore sql.NullInt64   `db:"best_score"`
	}
	query := `SELECT COUNT(*) AS count, AVG(score)::float8 AS average, MAX(score) AS best_score
		FROM quiz_results WHERE user_id = $1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &row, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get score summary: %w", err)
	}
	return &domain.ScoreSummary{
		Count:     row.Count,
		Average:   row.Average.Float64,
		BestScore: int(row.BestScore.Int64),
	}, nil
}

func (r *QuizResultRepository) GetAnswerSummary(ctx context.Context, userID string) (*domain.AnswerSummary, error) {
	var row struct {
		Total   int `db:"total"`
		Correct int `db:"correct"`
	}
	query := `SELECT COUNT(qr.id) AS total, COUNT(qr.id) FILTER (WHERE qr.is_correct) AS correct
		FROM question_results qr
		JOIN quiz_results r ON r.id = qr.quiz_result_id
		WHERE r.user_id = $1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &row, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get answer summary: %w", err)
	}
	return &domain.AnswerSummary{Total: row.Total, Correct: row.Correct}, nil
}

// ListResultsWithQuestions returns every result of the user, newest first.
// An empty category matches all quizzes.
func (r *QuizResultRepository) ListResultsWithQuestions(ctx context.Context, userID, category string) ([]domain.QuizResult, error) {
	query := `SELECT ` + quizResultColumns + `
		FROM quiz_results r
		JOIN quizzes q ON q.id = r.quiz_id
		WHERE r.user_id = $1`
	args := []interface{}{userID}
	if category != "" {
		query += ` AND q.category = $2`
		args = append(args, category)
	}
	query += ` ORDER BY r.completed_at DESC, r.id DESC`

	var rows []models.QuizResult
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list quiz results for analytics: %w", err)
	}
	return r.withQuestionResults(ctx, rows)
}

func (r *QuizResultRepository) withQuestionResults(ctx context.Context, rows []models.QuizResult) ([]domain.QuizResult, error) {
	results := make([]domain.QuizResult, 0, len(rows))
	if len(rows) == 0 {
		return results, nil
	}

	ids := make([]string, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	byResult, err := r.loadQuestionResults(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range rows {
		res := toDomainQuizResult(&rows[i])
		res.QuestionResults = byResult[res.ID]
		results = append(results, *res)
	}
	return results, nil
}

// loadQuestionResults fetches the question results of all ids in one query, grouped by result.
// Every id gets a non-nil slice.
func (r *QuizResultRepository) loadQuestionResults(ctx context.Context, ids []string) (map[string][]domain.QuestionResult, error) {
	exec := GetExecutor(ctx, r.db)

	query, args, err := sqlx.In(`SELECT `+questionResultColumns+` FROM question_results WHERE quiz_result_id IN (?) ORDER BY quiz_result_id, id`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build question results query: %w", err)
	}

	var rows []models.QuestionResult
	if err := exec.SelectContext(ctx, &rows, exec.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to load question results: %w", err)
	}

	grouped := make(map[string][]domain.QuestionResult, len(ids))
	for _, id := range ids {
		grouped[id] = []domain.QuestionResult{}
	}
	for i := range rows {
		grouped[rows[i].QuizResultID] = append(grouped[rows[i].QuizResultID], toDomainQuestionResult(&rows[i]))
	}
	return grouped, nil
}

func toDomainQuizResult(m *models.QuizResult) *domain.QuizResult {
	if m == nil {
		return nil
	}
	return &domain.QuizResult{
		ID:             m.ID,
		UserID:         m.UserID,
		QuizID:         m.QuizID,
		Score:          m.Score,
		TotalQuestions: m.TotalQuestions,
		TimeSpent:      m.TimeSpent,
		CompletedAt:    m.CompletedAt,
		QuizTitle:      m.QuizTitle,
		QuizCategory:   m.QuizCategory,
	}
}

func fromDomainQuizResult(d *domain.QuizResult) *models.QuizResult {
	return &models.QuizResult{
		ID:             d.ID,
		UserID:         d.UserID,
		QuizID:         d.QuizID,
		Score:          d.Score,
		TotalQuestions: d.TotalQuestions,
		TimeSpent:      d.TimeSpent,
		CompletedAt:    d.CompletedAt,
	}
}

func toDomainQuestionResult(m *models.QuestionResult) domain.QuestionResult {
	return domain.QuestionResult{
		ID:             m.ID,
		QuizResultID:   m.QuizResultID,
		QuestionID:     m.QuestionID,
		Question:       m.Question,
		SelectedOption: m.SelectedOption,
		CorrectAnswer:  m.CorrectAnswer,
		IsCorrect:      m.IsCorrect,
		TimeSpent:      m.TimeSpent,
	}
}

func fromDomainQuestionResult(d *domain.QuestionResult) models.QuestionResult {
	return models.QuestionResult{
		ID:             d.ID,
		QuizResultID:   d.QuizResultID,
		QuestionID:     d.QuestionID,
		Question:       d.Question,
		SelectedOption: d.SelectedOption,
		CorrectAnswer:  d.CorrectAnswer,
		IsCorrect:      d.IsCorrect,
		TimeSpent:      d.TimeSpent,
	}
}
