package triage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// PgxIface is the slice of pgxpool.Pool the Postgres store needs;
// narrow so tests can substitute a mock pool.
type PgxIface interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PGConversationStore persists turn history to PostgreSQL for
// deployments that prefer a durable relational store over Redis.
type PGConversationStore struct {
	db       PgxIface
	maxTurns int
}

// NewPGConversationStore builds a Postgres-backed conversation store.
func NewPGConversationStore(db PgxIface) *PGConversationStore {
	if db == nil {
		panic("triage: pgx pool cannot be nil")
	}
	return &PGConversationStore{db: db, maxTurns: MaxTurnsPerSession}
}

var _ ConversationStore = (*PGConversationStore)(nil)

// AppendTurn inserts the turn and trims the session to the retention cap
// in one transaction, so concurrent appends cannot observe a partially
// trimmed history.
func (s *PGConversationStore) AppendTurn(ctx context.Context, sessionID string, turn Turn) error {
	if sessionID == "" {
		return errors.New("triage: history sessionID required")
	}
	if turn.Timestamp.IsZero() {
		turn.Timestamp = time.Now().UTC()
	}

	conditionsJSON, err := json.Marshal(turn.Conditions)
	if err != nil {
		return fmt.Errorf("triage: encode conditions: %w", err)
	}
	concernsJSON, err := json.Marshal(turn.Concerns)
	if err != nil {
		return fmt.Errorf("triage: encode concerns: %w", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("triage: begin append turn: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO conversation_turns (
			session_id, user_text, response_text, action,
			sentiment, risk_score, conditions, severity, concerns, created_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, sessionID, turn.UserText, turn.ResponseText, string(turn.Action),
		string(turn.Sentiment), turn.RiskScore, conditionsJSON, string(turn.Severity),
		concernsJSON, turn.Timestamp); err != nil {
		return fmt.Errorf("triage: insert turn: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM conversation_turns
		WHERE session_id = $1
		  AND id NOT IN (
			SELECT id FROM conversation_turns
			WHERE session_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		  )
	`, sessionID, s.maxTurns); err != nil {
		return fmt.Errorf("triage: trim turns: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("triage: commit append turn: %w", err)
	}
	return nil
}

// RecentTurns returns the last n turns in chronological order.
func (s *PGConversationStore) RecentTurns(ctx context.Context, sessionID string, n int) ([]Turn, error) {
	if sessionID == "" {
		return nil, errors.New("triage: history sessionID required")
	}
	if n <= 0 {
		n = s.maxTurns
	}

	rows, err := s.db.Query(ctx, `
		SELECT session_id, user_text, response_text, action,
		       sentiment, risk_score, conditions, severity, concerns, created_at
		FROM conversation_turns
		WHERE session_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, sessionID, n)
	if err != nil {
		return nil, fmt.Errorf("triage: query turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var (
			turn           Turn
			action         string
			sentiment      string
			severity       string
			conditionsJSON []byte
			concernsJSON   []byte
		)
		if err := rows.Scan(&turn.SessionID, &turn.UserText, &turn.ResponseText, &action,
			&sentiment, &turn.RiskScore, &conditionsJSON, &severity, &concernsJSON,
			&turn.Timestamp); err != nil {
			return nil, fmt.Errorf("triage: scan turn: %w", err)
		}
		turn.Action = Action(action)
		turn.Sentiment = Sentiment(sentiment)
		turn.Severity = Severity(severity)
		// Corrupt context payloads degrade to empty slices, never a
		// failed read.
		if len(conditionsJSON) > 0 {
			_ = json.Unmarshal(conditionsJSON, &turn.Conditions)
		}
		if len(concernsJSON) > 0 {
			_ = json.Unmarshal(concernsJSON, &turn.Concerns)
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("triage: iterate turns: %w", err)
	}

	// Newest-first from the query; callers expect chronological order.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}
