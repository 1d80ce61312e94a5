package triage

import (
	"context"
	"time"
)

// Action is the triage outcome attached to every response.
type Action string

const (
	ActionContinueChat       Action = "CONTINUE_CHAT"
	ActionGuidedExercise     Action = "GUIDED_EXERCISE"
	ActionEmergencyTriggered Action = "EMERGENCY_TRIGGERED"
)

// Sentiment is the normalized sentiment label for a message.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
	SentimentUnknown  Sentiment = "UNKNOWN"
	SentimentError    Sentiment = "ERROR"
)

// Severity grades how acute the detected context is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
)

// ClassificationResult is the output of the risk/sentiment classifier.
// RiskScore is always within [0, 1] and rounded to two decimal places.
type ClassificationResult struct {
	Sentiment Sentiment `json:"sentiment"`
	RiskScore float64   `json:"risk_score"`
}

// MentalHealthContext is the output of the context analyzer.
type MentalHealthContext struct {
	Conditions              []string `json:"conditions,omitempty"`
	Severity                Severity `json:"severity"`
	Concerns                []string `json:"concerns,omitempty"`
	NeedsImmediateAttention bool     `json:"needs_immediate_attention"`
}

// HasCondition reports whether the analyzer detected the given condition tag.
func (c MentalHealthContext) HasCondition(tag string) bool {
	for _, cond := range c.Conditions {
		if cond == tag {
			return true
		}
	}
	return false
}

// HasConcern reports whether the analyzer flagged the given concern tag.
func (c MentalHealthContext) HasConcern(tag string) bool {
	for _, concern := range c.Concerns {
		if concern == tag {
			return true
		}
	}
	return false
}

// Turn is one completed exchange in a session. Turns are immutable once
// recorded and appended to the per-session history in arrival order.
type Turn struct {
	SessionID    string    `json:"session_id"`
	UserText     string    `json:"user_text"`
	ResponseText string    `json:"response_text"`
	Action       Action    `json:"action"`
	Sentiment    Sentiment `json:"sentiment"`
	RiskScore    float64   `json:"risk_score"`
	Conditions   []string  `json:"conditions,omitempty"`
	Severity     Severity  `json:"severity"`
	Concerns     []string  `json:"concerns,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// ConversationStore persists per-session turn history. Implementations
// enforce the retention cap at append time and must be safe for
// concurrent use across sessions.
type ConversationStore interface {
	AppendTurn(ctx context.Context, sessionID string, turn Turn) error
	RecentTurns(ctx context.Context, sessionID string, n int) ([]Turn, error)
}

// PatternStore accumulates learned key-phrase statistics and exemplar
// responses.
type PatternStore interface {
	RecordPattern(ctx context.Context, phrase, userText, botResponse string, satisfied bool) error
	LookupPattern(ctx context.Context, phrase string) ([]string, error)
}

// MaxTurnsPerSession is the per-session history retention cap. Appends
// beyond the cap evict the oldest turns first.
const MaxTurnsPerSession = 50
