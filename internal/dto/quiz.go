package dto

import "time"

// SubmitQuizResultRequest is the body of POST /api/quiz/submit-result.
// @Description Completed quiz submission
type SubmitQuizResultRequest struct {
	QuizID         *int64                  `json:"quizId" validate:"omitempty,gt=0"`
	Questions      []QuestionAnswerRequest `json:"questions" validate:"required,min=1,dive"`
	TotalTimeSpent *int                    `json:"totalTimeSpent" validate:"required,gte=0"`
	Score          *int                    `json:"score" validate:"required,gte=0"`
	TotalQuestions *int                    `json:"totalQuestions" validate:"required,gt=0"`
	QuizType       string                  `json:"quizType" validate:"omitempty,max=100"`
}

// QuestionAnswerRequest is one answered question inside a submission.
type QuestionAnswerRequest struct {
	QuestionID string `json:"questionId" validate:"required"`
	// Pointers so an absent field is rejected while "" is still accepted.
	Question       *string `json:"question" validate:"required"`
	SelectedOption *string `json:"selectedOption" validate:"required"`
	CorrectAnswer  *string `json:"correctAnswer" validate:"required"`
	IsCorrect      *bool   `json:"isCorrect" validate:"required"`
	TimeSpent      *int    `json:"timeSpent" validate:"omitempty,gte=0"`
}

// SubmitQuizResultResponse confirms a stored submission.
type SubmitQuizResultResponse struct {
	Message         string              `json:"message"`
	QuizResult      SubmittedQuizResult `json:"quizResult"`
	QuestionResults int                 `json:"questionResults"`
}

type SubmittedQuizResult struct {
	ID               string `json:"id"`
	Score            int    `json:"score"`
	TotalQuestions   int    `json:"totalQuestions"`
	Percentage       int    `json:"percentage"`
	ExperienceGained int    `json:"experienceGained"`
}

// QuizInfo is the denormalized quiz title and category.
type QuizInfo struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

type QuestionResultResponse struct {
	QuestionID     string `json:"questionId"`
	Question       string `json:"question"`
	SelectedOption string `json:"selectedOption"`
	CorrectAnswer  string `json:"correctAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
	TimeSpent      int    `json:"timeSpent"`
}

// QuizResultDetail is a stored quiz result with its question breakdown.
// @Description Quiz result with nested question results
type QuizResultDetail struct {
	ID              string                   `json:"id"`
	UserID          string                   `json:"userId"`
	QuizID          int64                    `json:"quizId"`
	Score           int                      `json:"score"`
	TotalQuestions  int                      `json:"totalQuestions"`
	TimeSpent       int                      `json:"timeSpent"`
	CompletedAt     time.Time                `json:"completedAt"`
	Quiz            QuizInfo                 `json:"quiz"`
	QuestionResults []QuestionResultResponse `json:"questionResults"`
}

// QuizHistoryResponse is one page of GET /api/quiz/history.
type QuizHistoryResponse struct {
	QuizResults []QuizResultDetail `json:"quizResults"`
	Pagination  Pagination         `json:"pagination"`
}

type RecentQuiz struct {
	ID             string    `json:"id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	CompletedAt    time.Time `json:"completedAt"`
	Percentage     int       `json:"percentage"`
}

type StreakInfo struct {
	Category    string    `json:"category"`
	Streak      int       `json:"streak"`
	LastStudied time.Time `json:"lastStudied"`
}

// QuizStatsResponse is the dashboard snapshot of GET /api/quiz/stats.
// @Description Aggregated quiz statistics
type QuizStatsResponse struct {
	TotalQuizzes   int          `json:"totalQuizzes"`
	TotalQuestions int          `json:"totalQuestions"`
	CorrectAnswers int          `json:"correctAnswers"`
	Accuracy       int          `json:"accuracy"`
	AverageScore   int          `json:"averageScore"`
	BestScore      int          `json:"bestScore"`
	Improvement    int          `json:"improvement"`
	RecentQuizzes  []RecentQuiz `json:"recentQuizzes"`
	Streaks        []StreakInfo `json:"streaks"`
	LastQuizDate   *time.Time   `json:"lastQuizDate"`
}

type QuestionAccuracy struct {
	Accuracy    int `json:"accuracy"`
	Attempts    int `json:"attempts"`
	AverageTime int `json:"averageTime"`
}

type TimeAnalysis struct {
	AverageTimePerQuestion int `json:"averageTimePerQuestion"`
	AverageTimePerQuiz     int `json:"averageTimePerQuiz"`
}

// TrendPoint is one calendar month of results. The bucket is serialized as "week".
type TrendPoint struct {
	Month        string `json:"week"`
	AverageScore int    `json:"averageScore"`
	Attempts     int    `json:"attempts"`
}

type WeakArea struct {
	QuestionID string `json:"questionId"`
	Accuracy   int    `json:"accuracy"`
	Attempts   int    `json:"attempts"`
}

// QuizAnalyticsResponse is the body of GET /api/quiz/analytics.
// @Description Per-question and per-month performance analytics
type QuizAnalyticsResponse struct {
	TotalAttempts      int                         `json:"totalAttempts"`
	AverageScore       int                         `json:"averageScore"`
	AccuracyByQuestion map[string]QuestionAccuracy `json:"accuracyByQuestion"`
	TimeAnalysis       TimeAnalysis                `json:"timeAnalysis"`
	ImprovementTrend   []TrendPoint                `json:"improvementTrend"`
	WeakAreas          []WeakArea                  `json:"weakAreas"`
}
