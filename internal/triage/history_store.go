package triage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const historyKeyPrefix = "conversation:"

// historyTTL expires idle sessions; every append refreshes it.
const historyTTL = 30 * 24 * time.Hour

// RedisConversationStore keeps per-session turn history in a Redis list.
// Appends run RPUSH + LTRIM in one transactional pipeline, so the
// 50-turn FIFO cap holds under concurrent sessions without a
// read-modify-write cycle.
type RedisConversationStore struct {
	redis    *redis.Client
	tracer   trace.Tracer
	maxTurns int64
}

// NewRedisConversationStore creates a Redis-backed conversation store.
func NewRedisConversationStore(redisClient *redis.Client) *RedisConversationStore {
	if redisClient == nil {
		return nil
	}
	return &RedisConversationStore{
		redis:    redisClient,
		tracer:   otel.Tracer("sanad.internal.triage.history"),
		maxTurns: MaxTurnsPerSession,
	}
}

// AppendTurn appends a turn and trims the session to the retention cap,
// oldest first.
func (s *RedisConversationStore) AppendTurn(ctx context.Context, sessionID string, turn Turn) error {
	if s == nil || s.redis == nil {
		return nil
	}
	if sessionID == "" {
		return errors.New("triage: history sessionID required")
	}
	if turn.Timestamp.IsZero() {
		turn.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("triage: marshal turn: %w", err)
	}

	ctx, span := s.tracer.Start(ctx, "triage.history.append")
	defer span.End()

	key := historyKey(sessionID)
	pipe := s.redis.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, historyTTL)
	if s.maxTurns > 0 {
		pipe.LTrim(ctx, key, -s.maxTurns, -1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		span.RecordError(err)
		return fmt.Errorf("triage: append turn: %w", err)
	}
	return nil
}

// RecentTurns returns the last n turns in chronological order. Entries
// that fail to decode are skipped - corrupt records never fail a read.
func (s *RedisConversationStore) RecentTurns(ctx context.Context, sessionID string, n int) ([]Turn, error) {
	if s == nil || s.redis == nil {
		return nil, nil
	}
	if sessionID == "" {
		return nil, errors.New("triage: history sessionID required")
	}

	ctx, span := s.tracer.Start(ctx, "triage.history.recent")
	defer span.End()

	start := int64(0)
	if n > 0 {
		start = -int64(n)
	}

	raw, err := s.redis.LRange(ctx, historyKey(sessionID), start, -1).Result()
	if err != nil {
		span.RecordError(err)
		if err == redis.Nil {
			return []Turn{}, nil
		}
		return nil, fmt.Errorf("triage: list turns: %w", err)
	}

	out := make([]Turn, 0, len(raw))
	for _, item := range raw {
		var turn Turn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			span.RecordError(err)
			continue
		}
		out = append(out, turn)
	}
	return out, nil
}

func historyKey(sessionID string) string {
	return historyKeyPrefix + sessionID
}
