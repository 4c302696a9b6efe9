package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lingo-quiz/internal/cache"
	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/dto"
	"lingo-quiz/internal/logger"

	"go.uber.org/zap"
)

// ErrStatsNotCached is returned when no snapshot is cached for the user.
var ErrStatsNotCached = errors.New("stats snapshot not found in cache")

// StatsCacheService stores the per-user stats snapshot served by GET /api/quiz/stats.
type StatsCacheService interface {
	Put(ctx context.Context, userID string, stats *dto.QuizStatsResponse) error
	Get(ctx context.Context, userID string) (*dto.QuizStatsResponse, error)
	Invalidate(ctx context.Context, userID string) error
}

type statsCacheServiceImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewStatsCacheService returns a no-op implementation when c is nil.
func NewStatsCacheService(c domain.Cache, ttl time.Duration) StatsCacheService {
	if c == nil {
		logger.Get().Warn("StatsCacheService initialized with nil cache. Service will be no-op.")
		return &noopStatsCacheService{}
	}
	return &statsCacheServiceImpl{
		cache: c,
		ttl:   ttl,
	}
}

func (s *statsCacheServiceImpl) Put(ctx context.Context, userID string, stats *dto.QuizStatsResponse) error {
	if stats == nil {
		return domain.NewInvalidInputError("cannot cache nil stats")
	}

	key := cache.StatsKey(userID)
	data, err := json.Marshal(stats)
	if err != nil {
		return domain.NewInternalError("failed to marshal stats for caching", err)
	}

	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to cache stats snapshot", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to set stats in cache for key %s", key), err)
	}
	logger.Get().Debug("Cached stats snapshot", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

func (s *statsCacheServiceImpl) Get(ctx context.Context, userID string) (*dto.QuizStatsResponse, error) {
	key := cache.StatsKey(userID)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, ErrStatsNotCached
		}
		return nil, domain.NewInternalError(fmt.Sprintf("failed to get stats from cache for key %s", key), err)
	}
	if data == "" {
		return nil, ErrStatsNotCached
	}

	var stats dto.QuizStatsResponse
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to unmarshal stats from cache for key %s", key), err)
	}
	return &stats, nil
}

func (s *statsCacheServiceImpl) Invalidate(ctx context.Context, userID string) error {
	key := cache.StatsKey(userID)
	if err := s.cache.Delete(ctx, key); err != nil {
		return domain.NewInternalError(fmt.Sprintf("failed to invalidate stats for key %s", key), err)
	}
	return nil
}

type noopStatsCacheService struct{}

func (s *noopStatsCacheService) Put(ctx context.Context, userID string, stats *dto.QuizStatsResponse) error {
	return nil
}

func (s *noopStatsCacheService) Get(ctx context.Context, userID string) (*dto.QuizStatsResponse, error) {
	return nil, ErrStatsNotCached
}

func (s *noopStatsCacheService) Invalidate(ctx context.Context, userID string) error {
	return nil
}
