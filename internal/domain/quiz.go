package domain

import (
	"context"
	"time"

	"lingo-quiz/internal/util"
)

const (
	// DefaultQuizID is the vocabulary quiz seeded by the initial migration.
	DefaultQuizID int64 = 1
	// DefaultQuizType is the progress category used when a submission does not name one.
	DefaultQuizType = "vocabulary"

	// PassingPercentage keeps a streak alive.
	PassingPercentage = 60
	// BonusPercentage earns BonusExperience on top of the per-answer experience.
	BonusPercentage = 80
	// ExperiencePerCorrectAnswer is awarded for every point of score.
	ExperiencePerCorrectAnswer = 10
	// BonusExperience is added when a quiz reaches BonusPercentage.
	BonusExperience = 50
	// WeakAreaAccuracy is the accuracy below which a question is reported as a weak area.
	WeakAreaAccuracy = 70
)

// Quiz is a catalog entry a QuizResult refers to.
type Quiz struct {
	ID          int64
	Title       string
	Category    string
	Description string
	CreatedAt   time.Time
}

// QuizResult is one completed quiz attempt.
type QuizResult struct {
	ID              string
	UserID          string
	QuizID          int64
	Score           int
	TotalQuestions  int
	TimeSpent       int
	CompletedAt     time.Time
	QuizTitle       string
	QuizCategory    string
	QuestionResults []QuestionResult
}

// Percentage returns round(score/totalQuestions*100), or 0 when there are no questions.
func (r *QuizResult) Percentage() int {
	return Percentage(r.Score, r.TotalQuestions)
}

// QuestionResult is the outcome of a single question inside a QuizResult.
type QuestionResult struct {
	ID             string
	QuizResultID   string
	QuestionID     string
	Question       string
	SelectedOption string
	CorrectAnswer  string
	IsCorrect      bool
	TimeSpent      int
}

// Progress is the per-category experience and streak counter of a user.
type Progress struct {
	ID          string
	UserID      string
	Category    string
	Experience  int
	Streak      int
	Level       int
	LastStudied time.Time
}

// ScoreSummary is the aggregate of a user's quiz scores.
type ScoreSummary struct {
	Count     int
	Average   float64
	BestScore int
}

// AnswerSummary counts question results across a user's quizzes.
type AnswerSummary struct {
	Total   int
	Correct int
}

// Percentage returns round(part/whole*100), defined as 0 when whole is not positive.
func Percentage(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return util.RoundHalfUp(float64(part) / float64(whole) * 100)
}

// ExperienceFor returns the experience earned by a quiz with the given score and percentage.
func ExperienceFor(score, percentage int) int {
	bonus := 0
	if percentage >= BonusPercentage {
		bonus = BonusExperience
	}
	return util.RoundHalfUp(float64(score*ExperiencePerCorrectAnswer + bonus))
}

// Passed reports whether a percentage keeps the streak going.
func Passed(percentage int) bool {
	return percentage >= PassingPercentage
}

// QuizResultRepository persists quiz attempts and their question breakdown.
type QuizResultRepository interface {
	CreateResult(ctx context.Context, result *QuizResult) error
	CreateQuestionResults(ctx context.Context, results []QuestionResult) error
	GetResultByIDForUser(ctx context.Context, id, userID string) (*QuizResult, error)
	ListResultsByUser(ctx context.Context, userID string, limit, offset int) ([]QuizResult, error)
	CountResultsByUser(ctx context.Context, userID string) (int, error)
	GetRecentResults(ctx context.Context, userID string, limit int) ([]QuizResult, error)
	GetScoreSummary(ctx context.Context, userID string) (*ScoreSummary, error)
	GetAnswerSummary(ctx context.Context, userID string) (*AnswerSummary, error)
	ListResultsWithQuestions(ctx context.Context, userID, category string) ([]QuizResult, error)
}

// QuizCatalogRepository maintains the quizzes results refer to.
type QuizCatalogRepository interface {
	// UpsertQuiz matches on (title, category). It fills q.ID and reports whether a row was inserted.
	UpsertQuiz(ctx context.Context, q *Quiz) (bool, error)
	ListQuizzes(ctx context.Context) ([]Quiz, error)
}

// ProgressRepository persists per-category progress.
type ProgressRepository interface {
	// Upsert creates the (userID, category) row or applies the increment to it.
	Upsert(ctx context.Context, userID, category string, experienceGained int, passed bool) (*Progress, error)
	ListByUser(ctx context.Context, userID string) ([]Progress, error)
}

// TransactionManager runs fn inside a single database transaction.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
