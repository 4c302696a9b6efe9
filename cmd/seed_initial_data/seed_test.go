package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"lingo-quiz/cmd/seed_initial_data/internal/seedmodels"
	"lingo-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockQuizCatalog struct {
	mock.Mock
}

func (m *mockQuizCatalog) UpsertQuiz(ctx context.Context, q *domain.Quiz) (bool, error) {
	args := m.Called(ctx, q)
	return args.Bool(0), args.Error(1)
}

func (m *mockQuizCatalog) ListQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Quiz), args.Error(1)
}

// passthroughTx runs fn directly and returns its error.
type passthroughTx struct{ calls int }

func (p *passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

type stubUsers struct {
	domain.UserRepository
	user     *domain.User
	lookup   error
	promoted string
}

func (s *stubUsers) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.user, s.lookup
}

func (s *stubUsers) UpdateRole(ctx context.Context, userID, role string) error {
	s.promoted = userID + ":" + role
	return nil
}

func TestSeeder_SeedQuizzes(t *testing.T) {
	catalog := new(mockQuizCatalog)
	tx := &passthroughTx{}
	s := &seeder{quizzes: catalog, tx: tx, log: zap.NewNop()}

	catalog.On("UpsertQuiz", mock.Anything, mock.MatchedBy(func(q *domain.Quiz) bool {
		return q.Title == "Vocabulary Quiz"
	})).Return(false, nil).Once()
	catalog.On("UpsertQuiz", mock.Anything, mock.MatchedBy(func(q *domain.Quiz) bool {
		return q.Title == "Grammar Basics" && q.Category == "grammar" && q.Description == "Tenses"
	})).Return(true, nil).Once()

	created, err := s.seedQuizzes(context.Background(), seedmodels.SeedFile{Quizzes: []seedmodels.SeedQuiz{
		{Title: "Vocabulary Quiz", Category: "vocabulary"},
		{Title: " Grammar Basics ", Category: "grammar", Description: "Tenses "},
	}})

	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, tx.calls)
	catalog.AssertExpectations(t)
}

func TestSeeder_SeedQuizzesRejectsIncompleteEntries(t *testing.T) {
	catalog := new(mockQuizCatalog)
	s := &seeder{quizzes: catalog, tx: &passthroughTx{}, log: zap.NewNop()}

	_, err := s.seedQuizzes(context.Background(), seedmodels.SeedFile{Quizzes: []seedmodels.SeedQuiz{{Title: "No category"}}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "quiz #1")
	catalog.AssertNotCalled(t, "UpsertQuiz", mock.Anything, mock.Anything)
}

func TestSeeder_SeedQuizzesStopsOnStoreError(t *testing.T) {
	catalog := new(mockQuizCatalog)
	s := &seeder{quizzes: catalog, tx: &passthroughTx{}, log: zap.NewNop()}
	catalog.On("UpsertQuiz", mock.Anything, mock.Anything).Return(false, errors.New("db down")).Once()

	created, err := s.seedQuizzes(context.Background(), seedmodels.SeedFile{Quizzes: []seedmodels.SeedQuiz{
		{Title: "a", Category: "b"},
		{Title: "c", Category: "d"},
	}})

	require.Error(t, err)
	assert.Zero(t, created)
	catalog.AssertNumberOfCalls(t, "UpsertQuiz", 1)
}

func TestSeeder_PromoteAdmin(t *testing.T) {
	t.Run("promotes a regular account", func(t *testing.T) {
		users := &stubUsers{user: &domain.User{ID: "u1", Role: domain.RoleUser, CreatedAt: time.Now()}}
		s := &seeder{users: users, log: zap.NewNop()}

		require.NoError(t, s.promoteAdmin(context.Background(), "a@b.c"))
		assert.Equal(t, "u1:admin", users.promoted)
	})

	t.Run("already admin", func(t *testing.T) {
		users := &stubUsers{user: &domain.User{ID: "u1", Role: domain.RoleAdmin}}
		s := &seeder{users: users, log: zap.NewNop()}

		require.NoError(t, s.promoteAdmin(context.Background(), "a@b.c"))
		assert.Empty(t, users.promoted)
	})

	t.Run("unknown email", func(t *testing.T) {
		s := &seeder{users: &stubUsers{}, log: zap.NewNop()}

		err := s.promoteAdmin(context.Background(), "ghost@b.c")
		assert.ErrorIs(t, err, errAdminNotFound)
	})
}
