package triage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const patternKeyPrefix = "pattern:"

// Per-phrase retention caps. Counts grow unbounded; exemplar lists are
// trimmed so the store cannot grow without limit on hot phrases.
const (
	maxSuccessfulResponses = 20
	maxPatternContexts     = 50
)

// PatternContext is one recorded exchange for a key phrase.
type PatternContext struct {
	UserMsg     string `json:"user_msg"`
	BotResponse string `json:"bot_response"`
}

// RedisPatternStore accumulates learned key-phrase statistics in Redis.
// All writes are single pipelined commands, so concurrent sessions
// cannot clobber each other's updates.
type RedisPatternStore struct {
	redis  *redis.Client
	tracer trace.Tracer
}

// NewRedisPatternStore creates a Redis-backed pattern store.
func NewRedisPatternStore(redisClient *redis.Client) *RedisPatternStore {
	if redisClient == nil {
		return nil
	}
	return &RedisPatternStore{
		redis:  redisClient,
		tracer: otel.Tracer("sanad.internal.triage.patterns"),
	}
}

// RecordPattern increments the phrase count, appends the exchange to the
// context log, and promotes the response to the successful list only
// when satisfaction was affirmed.
func (s *RedisPatternStore) RecordPattern(ctx context.Context, phrase, userText, botResponse string, satisfied bool) error {
	if s == nil || s.redis == nil {
		return nil
	}
	if phrase == "" {
		return errors.New("triage: pattern phrase required")
	}

	contextData, err := json.Marshal(PatternContext{UserMsg: userText, BotResponse: botResponse})
	if err != nil {
		return fmt.Errorf("triage: marshal pattern context: %w", err)
	}

	ctx, span := s.tracer.Start(ctx, "triage.patterns.record")
	defer span.End()

	pipe := s.redis.TxPipeline()
	pipe.Incr(ctx, patternCountKey(phrase))
	pipe.RPush(ctx, patternContextsKey(phrase), contextData)
	pipe.LTrim(ctx, patternContextsKey(phrase), -maxPatternContexts, -1)
	if satisfied {
		pipe.RPush(ctx, patternResponsesKey(phrase), botResponse)
		pipe.LTrim(ctx, patternResponsesKey(phrase), -maxSuccessfulResponses, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		span.RecordError(err)
		return fmt.Errorf("triage: record pattern: %w", err)
	}
	return nil
}

// LookupPattern returns the stored successful responses for a phrase,
// oldest first. Unknown phrases yield an empty slice.
func (s *RedisPatternStore) LookupPattern(ctx context.Context, phrase string) ([]string, error) {
	if s == nil || s.redis == nil {
		return nil, nil
	}
	if phrase == "" {
		return nil, errors.New("triage: pattern phrase required")
	}

	ctx, span := s.tracer.Start(ctx, "triage.patterns.lookup")
	defer span.End()

	responses, err := s.redis.LRange(ctx, patternResponsesKey(phrase), 0, -1).Result()
	if err != nil {
		span.RecordError(err)
		if err == redis.Nil {
			return []string{}, nil
		}
		return nil, fmt.Errorf("triage: lookup pattern: %w", err)
	}
	return responses, nil
}

// PatternCount returns how many times a phrase has been recorded.
func (s *RedisPatternStore) PatternCount(ctx context.Context, phrase string) (int64, error) {
	if s == nil || s.redis == nil {
		return 0, nil
	}
	count, err := s.redis.Get(ctx, patternCountKey(phrase)).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("triage: pattern count: %w", err)
	}
	return count, nil
}

// PatternContexts returns the recorded exchanges for a phrase, skipping
// entries that fail to decode.
func (s *RedisPatternStore) PatternContexts(ctx context.Context, phrase string) ([]PatternContext, error) {
	if s == nil || s.redis == nil {
		return nil, nil
	}
	raw, err := s.redis.LRange(ctx, patternContextsKey(phrase), 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []PatternContext{}, nil
		}
		return nil, fmt.Errorf("triage: pattern contexts: %w", err)
	}
	out := make([]PatternContext, 0, len(raw))
	for _, item := range raw {
		var pc PatternContext
		if err := json.Unmarshal([]byte(item), &pc); err != nil {
			continue
		}
		out = append(out, pc)
	}
	return out, nil
}

func patternCountKey(phrase string) string { return patternKeyPrefix + phrase + ":count" }

func patternResponsesKey(phrase string) string { return patternKeyPrefix + phrase + ":responses" }

func patternContextsKey(phrase string) string { return patternKeyPrefix + phrase + ":contexts" }
