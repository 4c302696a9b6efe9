package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lingo-quiz/internal/domain"
	"lingo-quiz/internal/observability"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RedisCacheAdapter backs domain.Cache with redis. Every call runs in a client span.
type RedisCacheAdapter struct {
	client *redis.Client
}

func NewRedisCacheAdapter(client *redis.Client) domain.Cache {
	return &RedisCacheAdapter{client: client}
}

// Get maps redis.Nil to domain.ErrCacheMiss. A miss is not recorded as a span error.
func (r *RedisCacheAdapter) Get(ctx context.Context, key string) (string, error) {
	ctx, span := r.start(ctx, "GET", key)
	defer span.End()

	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		span.SetAttributes(attribute.Bool("cache.hit", false))
		return "", domain.ErrCacheMiss
	}
	if err != nil {
		return "", fail(span, fmt.Errorf("cache get %s: %w", key, err))
	}
	span.SetAttributes(attribute.Bool("cache.hit", true))
	return val, nil
}

func (r *RedisCacheAdapter) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	ctx, span := r.start(ctx, "SET", key)
	defer span.End()

	if err := r.client.Set(ctx, key, value, expiration).Err(); err != nil {
		return fail(span, fmt.Errorf("cache set %s: %w", key, err))
	}
	return nil
}

// Delete removes keys in a single DEL round trip.
func (r *RedisCacheAdapter) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	ctx, span := r.start(ctx, "DEL", keys[0])
	defer span.End()
	span.SetAttributes(attribute.Int("cache.keys", len(keys)))

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fail(span, fmt.Errorf("cache delete %v: %w", keys, err))
	}
	return nil
}

func (r *RedisCacheAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCacheAdapter) start(ctx context.Context, op, key string) (context.Context, trace.Span) {
	return observability.Tracer().Start(ctx, "redis "+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", op),
			attribute.String("cache.key", key),
		),
	)
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
