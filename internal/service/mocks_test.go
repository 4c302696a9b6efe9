package service

import (
	"context"
	"io"
	"time"

	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/dto"

	"github.com/stretchr/testify/mock"
)

// --- MockQuizResultRepository ---
type MockQuizResultRepository struct {
	mock.Mock
}

func (m *MockQuizResultRepository) CreateResult(ctx context.Context, result *domain.QuizResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockQuizResultRepository) CreateQuestionResults(ctx context.Context, results []domain.QuestionResult) error {
	args := m.Called(ctx, results)
	return args.Error(0)
}

func (m *MockQuizResultRepository) GetResultByIDForUser(ctx context.Context, id, userID string) (*domain.QuizResult, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizResult), args.Error(1)
}

func (m *MockQuizResultRepository) ListResultsByUser(ctx context.Context, userID string, limit, offset int) ([]domain.QuizResult, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuizResult), args.Error(1)
}

func (m *MockQuizResultRepository) CountResultsByUser(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockQuizResultRepository) GetRecentResults(ctx context.Context, userID string, limit int) ([]domain.QuizResult, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuizResult), args.Error(1)
}

func (m *MockQuizResultRepository) GetScoreSummary(ctx context.Context, userID string) (*domain.ScoreSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScoreSummary), args.Error(1)
}

func (m *MockQuizResultRepository) GetAnswerSummary(ctx context.Context, userID string) (*domain.AnswerSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnswerSummary), args.Error(1)
}

func (m *MockQuizResultRepository) ListResultsWithQuestions(ctx context.Context, userID, category string) ([]domain.QuizResult, error) {
	args := m.Called(ctx, userID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuizResult), args.Error(1)
}

// --- MockProgressRepository ---
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Upsert(ctx context.Context, userID, category string, experienceGained int, passed bool) (*domain.Progress, error) {
	args := m.Called(ctx, userID, category, experienceGained, passed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Progress), args.Error(1)
}

func (m *MockProgressRepository) ListByUser(ctx context.Context, userID string) ([]domain.Progress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Progress), args.Error(1)
}

// --- MockTransactionManager ---
// Runs fn directly so the repository mocks see every call.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Called(ctx)
	return fn(ctx)
}

// --- MockUserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	args := m.Called(ctx, token, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error {
	args := m.Called(ctx, userID, token, expiry)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) ClearAllResetTokens(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, userID, role string) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}

// --- MockVocabularyRepository ---
type MockVocabularyRepository struct {
	mock.Mock
}

func (m *MockVocabularyRepository) ListByUser(ctx context.Context, userID string) ([]domain.Vocabulary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vocabulary), args.Error(1)
}

func (m *MockVocabularyRepository) GetByID(ctx context.Context, id string) (*domain.Vocabulary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vocabulary), args.Error(1)
}

func (m *MockVocabularyRepository) GetByUserAndWord(ctx context.Context, userID, word string) (*domain.Vocabulary, error) {
	args := m.Called(ctx, userID, word)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vocabulary), args.Error(1)
}

func (m *MockVocabularyRepository) Create(ctx context.Context, v *domain.Vocabulary) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVocabularyRepository) Update(ctx context.Context, v *domain.Vocabulary) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVocabularyRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- MockDictionaryClient ---
type MockDictionaryClient struct {
	mock.Mock
}

func (m *MockDictionaryClient) Lookup(ctx context.Context, word string) (*domain.DictionaryEntry, error) {
	args := m.Called(ctx, word)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DictionaryEntry), args.Error(1)
}

// --- MockMediaRepository ---
type MockMediaRepository struct {
	mock.Mock
}

func (m *MockMediaRepository) List(ctx context.Context, filter domain.MediaFilter, limit, offset int) ([]domain.MediaContent, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MediaContent), args.Error(1)
}

func (m *MockMediaRepository) Count(ctx context.Context, filter domain.MediaFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockMediaRepository) GetByID(ctx context.Context, id string, activeOnly bool) (*domain.MediaContent, error) {
	args := m.Called(ctx, id, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MediaContent), args.Error(1)
}

func (m *MockMediaRepository) ListCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMediaRepository) Create(ctx context.Context, mc *domain.MediaContent) error {
	args := m.Called(ctx, mc)
	return args.Error(0)
}

func (m *MockMediaRepository) Update(ctx context.Context, mc *domain.MediaContent) error {
	args := m.Called(ctx, mc)
	return args.Error(0)
}

func (m *MockMediaRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- MockFileStorage ---
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Save(ctx context.Context, folder, name string, r io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, folder, name, r, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) Delete(ctx context.Context, publicPath string) error {
	args := m.Called(ctx, publicPath)
	return args.Error(0)
}

// --- MockMailer ---
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}

// --- MockStatsCacheService ---
type MockStatsCacheService struct {
	mock.Mock
}

func (m *MockStatsCacheService) Put(ctx context.Context, userID string, stats *dto.QuizStatsResponse) error {
	args := m.Called(ctx, userID, stats)
	return args.Error(0)
}

func (m *MockStatsCacheService) Get(ctx context.Context, userID string) (*dto.QuizStatsResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizStatsResponse), args.Error(1)
}

func (m *MockStatsCacheService) Invalidate(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- MockSubmissionRecorder ---
type MockSubmissionRecorder struct {
	mock.Mock
}

func (m *MockSubmissionRecorder) RecordQuizSubmission(quizType string, passed bool) {
	m.Called(quizType, passed)
}
