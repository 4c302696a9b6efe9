package models

import (
	"time"
)

type Quiz struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Category    string    `db:"category"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}

// QuizResult maps quiz_results. QuizTitle and QuizCategory are filled by joins on quizzes.
type QuizResult struct {
	ID             string    `db:"id"`
	UserID         string    `db:"user_id"`
	QuizID         int64     `db:"quiz_id"`
	Score          int       `db:"score"`
	TotalQuestions int       `db:"total_questions"`
	TimeSpent      int       `db:"time_spent"`
	CompletedAt    time.Time `db:"completed_at"`
	QuizTitle      string    `db:"quiz_title"`
	QuizCategory   string    `db:"quiz_category"`
}

type QuestionResult struct {
	ID             string `db:"id"`
	QuizResultID   string `db:"quiz_result_id"`
	QuestionID     string `db:"question_id"`
	Question       string `db:"question"`
	SelectedOption string `db:"selected_option"`
	CorrectAnswer  string `db:"correct_answer"`
	IsCorrect      bool   `db:"is_correct"`
	TimeSpent      int    `db:"time_spent"`
}

type Progress struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Category    string    `db:"category"`
	Experience  int       `db:"experience"`
	Streak      int       `db:"streak"`
	Level       int       `db:"level"`
	LastStudied time.Time `db:"last_studied"`
}
