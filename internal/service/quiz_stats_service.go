package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/dto"
	"lingo-quiz/internal/logger"
	"lingo-quiz/internal/observability"
	"lingo-quiz/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// RecentQuizLimit is the number of attempts listed in recentQuizzes.
	RecentQuizLimit = 5
	// ImprovementWindow is the number of attempts on each side of the improvement comparison.
	ImprovementWindow = 3

	trendBucketLayout = "2006-01"
)

// QuizStatsService aggregates a user's quiz results.
type QuizStatsService interface {
	GetStats(ctx context.Context, userID string) (*dto.QuizStatsResponse, error)
	GetAnalytics(ctx context.Context, userID, category string) (*dto.QuizAnalyticsResponse, error)
}

type quizStatsService struct {
	results    domain.QuizResultRepository
	progress   domain.ProgressRepository
	statsCache StatsCacheService
}

func NewQuizStatsService(results domain.QuizResultRepository, progress domain.ProgressRepository, statsCache StatsCacheService) QuizStatsService {
	if statsCache == nil {
		statsCache = &noopStatsCacheService{}
	}
	return &quizStatsService{
		results:    results,
		progress:   progress,
		statsCache: statsCache,
	}
}

// GetStats serves the cached snapshot when there is one and rebuilds it otherwise.
func (s *quizStatsService) GetStats(ctx context.Context, userID string) (*dto.QuizStatsResponse, error) {
	ctx, span := observability.Tracer().Start(ctx, "QuizStatsService.GetStats")
	defer span.End()

	cached, err := s.statsCache.Get(ctx, userID)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, ErrStatsNotCached) {
		logger.Get().Warn("Stats cache read failed, loading from store", zap.String("userID", userID), zap.Error(err))
	}

	var (
		totalQuizzes int
		answers      *domain.AnswerSummary
		scores       *domain.ScoreSummary
		recent       []domain.QuizResult
		progress     []domain.Progress
	)
	fetch := RecentQuizLimit
	if 2*ImprovementWindow > fetch {
		fetch = 2 * ImprovementWindow
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totalQuizzes, err = s.results.CountResultsByUser(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		answers, err = s.results.GetAnswerSummary(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		scores, err = s.results.GetScoreSummary(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		recent, err = s.results.GetRecentResults(gctx, userID, fetch)
		return err
	})
	g.Go(func() (err error) {
		progress, err = s.progress.ListByUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		logger.Get().Error("Failed to load quiz stats", zap.String("userID", userID), zap.Error(err))
		return nil, domain.NewInternalError("Failed to fetch quiz statistics", err)
	}

	stats := buildStats(totalQuizzes, answers, scores, recent, progress)

	if err := s.statsCache.Put(ctx, userID, stats); err != nil {
		logger.Get().Warn("Failed to cache quiz stats", zap.String("userID", userID), zap.Error(err))
	}
	return stats, nil
}

func buildStats(totalQuizzes int, answers *domain.AnswerSummary, scores *domain.ScoreSummary, recent []domain.QuizResult, progress []domain.Progress) *dto.QuizStatsResponse {
	stats := &dto.QuizStatsResponse{
		TotalQuizzes:  totalQuizzes,
		RecentQuizzes: make([]dto.RecentQuiz, 0, RecentQuizLimit),
		Streaks:       make([]dto.StreakInfo, 0, len(progress)),
	}

	if answers != nil {
		stats.TotalQuestions = answers.Total
		stats.CorrectAnswers = answers.Correct
		stats.Accuracy = domain.Percentage(answers.Correct, answers.Total)
	}
	if scores != nil {
		stats.AverageScore = util.RoundHalfUp(scores.Average)
		stats.BestScore = scores.BestScore
	}

	for i, r := range recent {
		if i >= RecentQuizLimit {
			break
		}
		stats.RecentQuizzes = append(stats.RecentQuizzes, dto.RecentQuiz{
			ID:             r.ID,
			Score:          r.Score,
			TotalQuestions: r.TotalQuestions,
			CompletedAt:    r.CompletedAt,
			Percentage:     r.Percentage(),
		})
	}
	if len(recent) > 0 {
		last := recent[0].CompletedAt
		stats.LastQuizDate = &last
	}
	stats.Improvement = improvement(recent)

	for _, p := range progress {
		stats.Streaks = append(stats.Streaks, dto.StreakInfo{
			Category:    p.Category,
			Streak:      p.Streak,
			LastStudied: p.LastStudied,
		})
	}
	return stats
}

// improvement compares the mean score of the newest ImprovementWindow results with the
// mean of the ImprovementWindow results before them. results must be newest first.
func improvement(results []domain.QuizResult) int {
	var newer, older []int
	for i, r := range results {
		switch {
		case i < ImprovementWindow:
			newer = append(newer, r.Score)
		case i < 2*ImprovementWindow:
			older = append(older, r.Score)
		}
	}

	olderAvg := util.MeanInt(older)
	if olderAvg <= 0 {
		return 0
	}
	return util.RoundHalfUp((util.MeanInt(newer) - olderAvg) / olderAvg * 100)
}

type questionStat struct {
	total   int
	correct int
	times   []int
}

type trendBucket struct {
	scores []int
}

// GetAnalytics builds per-question and per-month analytics, optionally for a single quiz category.
func (s *quizStatsService) GetAnalytics(ctx context.Context, userID, category string) (*dto.QuizAnalyticsResponse, error) {
	ctx, span := observability.Tracer().Start(ctx, "QuizStatsService.GetAnalytics")
	defer span.End()

	results, err := s.results.ListResultsWithQuestions(ctx, userID, strings.TrimSpace(category))
	if err != nil {
		span.RecordError(err)
		logger.Get().Error("Failed to load quiz analytics",
			zap.String("userID", userID),
			zap.String("category", category),
			zap.Error(err))
		return nil, domain.NewInternalError("Failed to fetch analytics", err)
	}
	return buildAnalytics(results), nil
}

func buildAnalytics(results []domain.QuizResult) *dto.QuizAnalyticsResponse {
	analytics := &dto.QuizAnalyticsResponse{
		TotalAttempts:      len(results),
		AccuracyByQuestion: map[string]dto.QuestionAccuracy{},
		ImprovementTrend:   []dto.TrendPoint{},
		WeakAreas:          []dto.WeakArea{},
	}
	if len(results) == 0 {
		return analytics
	}

	scores := make([]int, 0, len(results))
	quizTimes := make([]int, 0, len(results))
	var questionTimes []int
	byQuestion := map[string]*questionStat{}
	byMonth := map[string]*trendBucket{}

	for _, r := range results {
		scores = append(scores, r.Score)
		quizTimes = append(quizTimes, r.TimeSpent)

		month := r.CompletedAt.UTC().Format(trendBucketLayout)
		b, ok := byMonth[month]
		if !ok {
			b = &trendBucket{}
			byMonth[month] = b
		}
		b.scores = append(b.scores, r.Score)

		for _, q := range r.QuestionResults {
			st, ok := byQuestion[q.QuestionID]
			if !ok {
				st = &questionStat{}
				byQuestion[q.QuestionID] = st
			}
			st.total++
			if q.IsCorrect {
				st.correct++
			}
			st.times = append(st.times, q.TimeSpent)
			questionTimes = append(questionTimes, q.TimeSpent)
		}
	}

	analytics.AverageScore = util.RoundHalfUp(util.MeanInt(scores))
	analytics.TimeAnalysis = dto.TimeAnalysis{
		AverageTimePerQuestion: util.RoundHalfUp(util.MeanInt(questionTimes)),
		AverageTimePerQuiz:     util.RoundHalfUp(util.MeanInt(quizTimes)),
	}

	questionIDs := make([]string, 0, len(byQuestion))
	for id, st := range byQuestion {
		questionIDs = append(questionIDs, id)
		analytics.AccuracyByQuestion[id] = dto.QuestionAccuracy{
			Accuracy:    domain.Percentage(st.correct, st.total),
			Attempts:    st.total,
			AverageTime: util.RoundHalfUp(util.MeanInt(st.times)),
		}
	}
	sort.Strings(questionIDs)
	for _, id := range questionIDs {
		acc := analytics.AccuracyByQuestion[id]
		if acc.Accuracy < domain.WeakAreaAccuracy {
			analytics.WeakAreas = append(analytics.WeakAreas, dto.WeakArea{
				QuestionID: id,
				Accuracy:   acc.Accuracy,
				Attempts:   acc.Attempts,
			})
		}
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)
	for _, m := range months {
		b := byMonth[m]
		analytics.ImprovementTrend = append(analytics.ImprovementTrend, dto.TrendPoint{
			Month:        m,
			AverageScore: util.RoundHalfUp(util.MeanInt(b.scores)),
			Attempts:     len(b.scores),
		})
	}
	return analytics
}
