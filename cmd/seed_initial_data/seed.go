package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lingo-quiz/cmd/seed_initial_data/internal/seedmodels"
	"lingo-quiz/internal/domain"

	"go.uber.org/zap"
)

var errAdminNotFound = errors.New("no account with that email, register it first")

type seeder struct {
	quizzes domain.QuizCatalogRepository
	users   domain.UserRepository
	tx      domain.TransactionManager
	log     *zap.Logger
}

// seedQuizzes upserts every quiz of the file in one transaction.
func (s *seeder) seedQuizzes(ctx context.Context, file seedmodels.SeedFile) (created int, err error) {
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		for i, sq := range file.Quizzes {
			title := strings.TrimSpace(sq.Title)
			category := strings.TrimSpace(sq.Category)
			if title == "" || category == "" {
				return fmt.Errorf("quiz #%d: title and category are required", i+1)
			}

			q := &domain.Quiz{Title: title, Category: category, Description: strings.TrimSpace(sq.Description)}
			inserted, err := s.quizzes.UpsertQuiz(ctx, q)
			if err != nil {
				return err
			}
			if inserted {
				created++
				s.log.Info("Created quiz", zap.Int64("id", q.ID), zap.String("title", q.Title))
			} else {
				s.log.Info("Quiz exists, description refreshed", zap.Int64("id", q.ID), zap.String("title", q.Title))
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// promoteAdmin gives an existing account the admin role.
func (s *seeder) promoteAdmin(ctx context.Context, email string) error {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("%s: %w", email, errAdminNotFound)
	}
	if user.IsAdmin() {
		s.log.Info("Account is already an admin", zap.String("user_id", user.ID))
		return nil
	}
	if err := s.users.UpdateRole(ctx, user.ID, domain.RoleAdmin); err != nil {
		return err
	}
	s.log.Info("Promoted account to admin", zap.String("user_id", user.ID))
	return nil
}
