package service

import (
	"context"
	"fmt"
	"strings"

	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/dto"
	"lingo-quiz/internal/logger"
	"lingo-quiz/internal/observability"
	"lingo-quiz/internal/validation"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

// SubmissionRecorder counts stored quiz submissions.
type SubmissionRecorder interface {
	RecordQuizSubmission(quizType string, passed bool)
}

// QuizResultService records quiz submissions and reads them back.
type QuizResultService interface {
	SubmitResult(ctx context.Context, userID string, req *dto.SubmitQuizResultRequest) (*dto.SubmitQuizResultResponse, error)
	GetHistory(ctx context.Context, userID string, page dto.PageRequest) (*dto.QuizHistoryResponse, error)
	GetResult(ctx context.Context, userID, resultID string) (*dto.QuizResultDetail, error)
}

type quizResultService struct {
	results    domain.QuizResultRepository
	progress   domain.ProgressRepository
	txManager  domain.TransactionManager
	validator  *validation.Validator
	statsCache StatsCacheService
	metrics    SubmissionRecorder
}

// NewQuizResultService creates a new QuizResultService. statsCache and metrics may be nil.
func NewQuizResultService(
	results domain.QuizResultRepository,
	progress domain.ProgressRepository,
	txManager domain.TransactionManager,
	validator *validation.Validator,
	statsCache StatsCacheService,
	metrics SubmissionRecorder,
) QuizResultService {
	if statsCache == nil {
		statsCache = &noopStatsCacheService{}
	}
	return &quizResultService{
		results:    results,
		progress:   progress,
		txManager:  txManager,
		validator:  validator,
		statsCache: statsCache,
		metrics:    metrics,
	}
}

// SubmitResult stores the result, its question results and the progress increment atomically.
func (s *quizResultService) SubmitResult(ctx context.Context, userID string, req *dto.SubmitQuizResultRequest) (*dto.SubmitQuizResultResponse, error) {
	ctx, span := observability.Tracer().Start(ctx, "QuizResultService.SubmitResult")
	defer span.End()

	if errs := s.validator.ValidateSubmitQuizResult(req); len(errs) > 0 {
		return nil, errs
	}

	quizID := domain.DefaultQuizID
	if req.QuizID != nil {
		quizID = *req.QuizID
	}
	quizType := strings.TrimSpace(req.QuizType)
	if quizType == "" {
		quizType = domain.DefaultQuizType
	}

	score, total := *req.Score, *req.TotalQuestions
	percentage := domain.Percentage(score, total)
	experience := domain.ExperienceFor(score, percentage)
	passed := domain.Passed(percentage)

	result := &domain.QuizResult{
		UserID:         userID,
		QuizID:         quizID,
		Score:          score,
		TotalQuestions: total,
		TimeSpent:      *req.TotalTimeSpent,
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.results.CreateResult(txCtx, result); err != nil {
			return err
		}

		questions := make([]domain.QuestionResult, 0, len(req.Questions))
		for _, q := range req.Questions {
			timeSpent := 0
			if q.TimeSpent != nil {
				timeSpent = *q.TimeSpent
			}
			questions = append(questions, domain.QuestionResult{
				QuizResultID:   result.ID,
				QuestionID:     q.QuestionID,
				Question:       *q.Question,
				SelectedOption: *q.SelectedOption,
				CorrectAnswer:  *q.CorrectAnswer,
				IsCorrect:      *q.IsCorrect,
				TimeSpent:      timeSpent,
			})
		}
		if err := s.results.CreateQuestionResults(txCtx, questions); err != nil {
			return err
		}

		if _, err := s.progress.Upsert(txCtx, userID, quizType, experience, passed); err != nil {
			return fmt.Errorf("failed to update progress: %w", err)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "quiz result not saved")
		logger.Get().Error("Failed to save quiz result",
			zap.String("userID", userID),
			zap.Int64("quizID", quizID),
			zap.Error(err))
		return nil, domain.NewQuizSaveFailedError(err)
	}

	span.SetAttributes(
		attribute.String("quiz.result_id", result.ID),
		attribute.Int("quiz.percentage", percentage),
	)

	if err := s.statsCache.Invalidate(ctx, userID); err != nil {
		logger.Get().Warn("Failed to invalidate stats cache after submission",
			zap.String("userID", userID),
			zap.Error(err))
	}
	if s.metrics != nil {
		s.metrics.RecordQuizSubmission(quizType, passed)
	}

	logger.Get().Info("Quiz result saved",
		zap.String("userID", userID),
		zap.String("quizResultID", result.ID),
		zap.Int("percentage", percentage),
		zap.Int("experienceGained", experience))

	return &dto.SubmitQuizResultResponse{
		Message: "Quiz result saved successfully",
		QuizResult: dto.SubmittedQuizResult{
			ID:               result.ID,
			Score:            score,
			TotalQuestions:   total,
			Percentage:       percentage,
			ExperienceGained: experience,
		},
		QuestionResults: len(req.Questions),
	}, nil
}

func (s *quizResultService) GetHistory(ctx context.Context, userID string, page dto.PageRequest) (*dto.QuizHistoryResponse, error) {
	ctx, span := observability.Tracer().Start(ctx, "QuizResultService.GetHistory")
	defer span.End()

	page = normalizePage(page, DefaultHistoryLimit, MaxHistoryLimit)

	var (
		results []domain.QuizResult
		total   int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		results, err = s.results.ListResultsByUser(gctx, userID, page.Limit, page.Offset())
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.results.CountResultsByUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		logger.Get().Error("Failed to load quiz history", zap.String("userID", userID), zap.Error(err))
		return nil, domain.NewInternalError("Failed to fetch quiz history", err)
	}

	items := make([]dto.QuizResultDetail, 0, len(results))
	for i := range results {
		items = append(items, toQuizResultDetail(&results[i]))
	}

	return &dto.QuizHistoryResponse{
		QuizResults: items,
		Pagination:  pagination(page, total),
	}, nil
}

// GetResult returns a result owned by userID. Results of other users are reported as not found.
func (s *quizResultService) GetResult(ctx context.Context, userID, resultID string) (*dto.QuizResultDetail, error) {
	result, err := s.results.GetResultByIDForUser(ctx, resultID, userID)
	if err != nil {
		logger.Get().Error("Failed to load quiz result",
			zap.String("userID", userID),
			zap.String("quizResultID", resultID),
			zap.Error(err))
		return nil, domain.NewInternalError("Failed to fetch quiz result", err)
	}
	if result == nil {
		return nil, domain.NewQuizResultNotFoundError()
	}

	detail := toQuizResultDetail(result)
	return &detail, nil
}

// normalizePage applies the default page and limit and caps the limit at maxLimit.
func normalizePage(p dto.PageRequest, defaultLimit, maxLimit int) dto.PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

func toQuizResultDetail(r *domain.QuizResult) dto.QuizResultDetail {
	questions := make([]dto.QuestionResultResponse, 0, len(r.QuestionResults))
	for _, q := range r.QuestionResults {
		questions = append(questions, dto.QuestionResultResponse{
			QuestionID:     q.QuestionID,
			Question:       q.Question,
			SelectedOption: q.SelectedOption,
			CorrectAnswer:  q.CorrectAnswer,
			IsCorrect:      q.IsCorrect,
			TimeSpent:      q.TimeSpent,
		})
	}
	return dto.QuizResultDetail{
		ID:              r.ID,
		UserID:          r.UserID,
		QuizID:          r.QuizID,
		Score:           r.Score,
		TotalQuestions:  r.TotalQuestions,
		TimeSpent:       r.TimeSpent,
		CompletedAt:     r.CompletedAt,
		Quiz:            dto.QuizInfo{Title: r.QuizTitle, Category: r.QuizCategory},
		QuestionResults: questions,
	}
}
