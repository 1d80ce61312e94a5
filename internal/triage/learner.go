package triage

import (
	"context"
	"strings"

	"github.com/sanad-ai/triage-backend/pkg/logging"
)

// Learner extracts key phrases from each turn and accumulates per-phrase
// statistics and exemplar responses in a PatternStore. Store failures are
// logged and swallowed - learning is best-effort and never fails a turn.
type Learner struct {
	store  PatternStore
	logger *logging.Logger
}

// NewLearner creates a pattern learner. The store may be nil, which
// disables learning entirely.
func NewLearner(store PatternStore, logger *logging.Logger) *Learner {
	if logger == nil {
		logger = logging.Default()
	}
	return &Learner{store: store, logger: logger}
}

// ExtractKeyPhrases returns the fixed-vocabulary phrases contained in the
// text, in vocabulary order.
func (l *Learner) ExtractKeyPhrases(text string) []string {
	lowered := strings.ToLower(text)
	var phrases []string
	for _, phrase := range keyPhraseVocabulary {
		if strings.Contains(lowered, phrase) {
			phrases = append(phrases, phrase)
		}
	}
	return phrases
}

// Record updates the stored statistics for every phrase extracted from
// userText. The bot response is only promoted to the phrase's
// successful-responses list when satisfaction was explicitly affirmed.
func (l *Learner) Record(ctx context.Context, sessionID, userText, botResponse string, satisfied bool) {
	if l.store == nil {
		return
	}
	for _, phrase := range l.ExtractKeyPhrases(userText) {
		if err := l.store.RecordPattern(ctx, phrase, userText, botResponse, satisfied); err != nil {
			l.logger.Warn("failed to record learned pattern",
				"phrase", phrase,
				"session_id", sessionID,
				"error", err,
			)
		}
	}
}

// Lookup returns up to max stored successful responses for the phrases
// found in the text, for reuse as generation context.
func (l *Learner) Lookup(ctx context.Context, text string, max int) []string {
	if l.store == nil || max <= 0 {
		return nil
	}
	var responses []string
	for _, phrase := range l.ExtractKeyPhrases(text) {
		stored, err := l.store.LookupPattern(ctx, phrase)
		if err != nil {
			l.logger.Warn("failed to look up learned pattern", "phrase", phrase, "error", err)
			continue
		}
		responses = append(responses, stored...)
		if len(responses) >= max {
			return responses[:max]
		}
	}
	return responses
}
