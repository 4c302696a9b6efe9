package validation

import (
	"testing"

	"lingo-quiz/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func answered(id string, correct bool) dto.QuestionAnswerRequest {
	return dto.QuestionAnswerRequest{
		QuestionID:     id,
		Question:       strPtr("What does 'apple' mean?"),
		SelectedOption: strPtr("fruit"),
		CorrectAnswer:  strPtr("fruit"),
		IsCorrect:      boolPtr(correct),
	}
}

func validSubmission() *dto.SubmitQuizResultRequest {
	return &dto.SubmitQuizResultRequest{
		Questions: []dto.QuestionAnswerRequest{
			answered("q1", true),
			answered("q2", false),
		},
		TotalTimeSpent: intPtr(30),
		Score:          intPtr(1),
		TotalQuestions: intPtr(2),
	}
}

func TestValidateSubmitQuizResult_Valid(t *testing.T) {
	v := NewValidator()
	assert.Empty(t, v.ValidateSubmitQuizResult(validSubmission()))
}

func TestValidateSubmitQuizResult_EmptyTextAllowed(t *testing.T) {
	v := NewValidator()
	req := validSubmission()
	req.Questions[0].Question = strPtr("")
	req.Questions[0].SelectedOption = strPtr("")
	req.Questions[0].CorrectAnswer = strPtr("")

	assert.Empty(t, v.ValidateSubmitQuizResult(req))
}

func TestValidateSubmitQuizResult_FieldErrors(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name      string
		mutate    func(r *dto.SubmitQuizResultRequest)
		wantField string
	}{
		{
			name:      "missing score",
			mutate:    func(r *dto.SubmitQuizResultRequest) { r.Score = nil },
			wantField: "score",
		},
		{
			name:      "zero total questions",
			mutate:    func(r *dto.SubmitQuizResultRequest) { r.TotalQuestions = intPtr(0) },
			wantField: "totalQuestions",
		},
		{
			name:      "empty questions",
			mutate:    func(r *dto.SubmitQuizResultRequest) { r.Questions = nil },
			wantField: "questions",
		},
		{
			name:      "negative time",
			mutate:    func(r *dto.SubmitQuizResultRequest) { r.TotalTimeSpent = intPtr(-1) },
			wantField: "totalTimeSpent",
		},
		{
			name:      "question without id",
			mutate:    func(r *dto.SubmitQuizResultRequest) { r.Questions[0].QuestionID = "" },
			wantField: "questions[0].questionId",
		},
		{
			name:      "question without isCorrect",
			mutate:    func(r *dto.SubmitQuizResultRequest) { r.Questions[1].IsCorrect = nil },
			wantField: "questions[1].isCorrect",
		},
		{
			name:      "question text missing",
			mutate:    func(r *dto.SubmitQuizResultRequest) { r.Questions[0].Question = nil },
			wantField: "questions[0].question",
		},
		{
			name:      "selected option missing",
			mutate:    func(r *dto.SubmitQuizResultRequest) { r.Questions[1].SelectedOption = nil },
			wantField: "questions[1].selectedOption",
		},
		{
			name:      "correct answer missing",
			mutate:    func(r *dto.SubmitQuizResultRequest) { r.Questions[0].CorrectAnswer = nil },
			wantField: "questions[0].correctAnswer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSubmission()
			tt.mutate(req)

			errs := v.ValidateSubmitQuizResult(req)
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.wantField, errs[0].Field)
		})
	}
}

func TestValidateSubmitQuizResult_ScoreAboveTotal(t *testing.T) {
	v := NewValidator()
	req := validSubmission()
	req.Score = intPtr(3)

	errs := v.ValidateSubmitQuizResult(req)
	require.Len(t, errs, 2)
	assert.Equal(t, "score", errs[0].Field)
	assert.Contains(t, errs[0].Message, "must not exceed totalQuestions")
	assert.Contains(t, errs[1].Message, "number of correct answers (1)")
}

func TestValidateSubmitQuizResult_ScoreMismatch(t *testing.T) {
	v := NewValidator()
	req := validSubmission()
	req.Score = intPtr(2)

	errs := v.ValidateSubmitQuizResult(req)
	require.Len(t, errs, 1)
	assert.Equal(t, 2, errs[0].Value)
}

func TestValidateSubmitQuizResult_Nil(t *testing.T) {
	errs := NewValidator().ValidateSubmitQuizResult(nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "body", errs[0].Field)
}

func TestStruct_RegisterRequest(t *testing.T) {
	v := NewValidator()

	errs := v.Struct(&dto.RegisterRequest{Email: "not-an-email", Password: "short"})
	require.Len(t, errs, 2)

	assert.Equal(t, "email", errs[0].Field)
	assert.Equal(t, "must be a valid email address", errs[0].Message)
	assert.Equal(t, "not-an-email", errs[0].Value)

	assert.Equal(t, "password", errs[1].Field)
	assert.Equal(t, "must be at least 7 characters long", errs[1].Message)
	assert.Nil(t, errs[1].Value, "passwords are never echoed back")
}

func TestStruct_OneOf(t *testing.T) {
	v := NewValidator()

	errs := v.Struct(&dto.VocabularyRequest{Word: "apple", Difficulty: "EXPERT"})
	require.Len(t, errs, 1)
	assert.Equal(t, "difficulty", errs[0].Field)
	assert.Equal(t, "must be one of: BEGINNER, INTERMEDIATE, ADVANCED", errs[0].Message)
}
