package triage

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/sanad-ai/triage-backend/internal/observability/metrics"
	"github.com/sanad-ai/triage-backend/pkg/logging"
)

// historyContextTurns is how many recent turns feed the oracle prompt.
const historyContextTurns = 5

// maxLearnedExemplars caps learned responses handed to the oracle.
const maxLearnedExemplars = 2

// MessageRequest is the inbound triage request. History is optional;
// when absent the service reads recent turns from the store.
type MessageRequest struct {
	SessionID string        `json:"session_id"`
	Text      string        `json:"text"`
	History   []ChatMessage `json:"history,omitempty"`
}

// MessageResponse is what the caller receives for every turn.
type MessageResponse struct {
	ResponseText string `json:"response_text"`
	Action       Action `json:"action"`
}

// ServiceConfig wires the service's collaborators. Oracle, stores, and
// metrics are all optional; the rule-based pipeline works without them.
type ServiceConfig struct {
	Classifier *Classifier
	Analyzer   *Analyzer
	Selector   *Selector
	Learner    *Learner
	History    ConversationStore
	Oracle     LLMClient
	// OracleProvider labels metrics; OracleModel is passed through to
	// the provider.
	OracleProvider string
	OracleModel    string
	OracleTimeout  time.Duration
	Metrics        *metrics.TriageMetrics
	Logger         *logging.Logger
}

// Service runs the full triage pipeline for one turn: classify, analyze,
// optionally generate, select, persist, learn. The crisis predicate is
// evaluated before the oracle is ever consulted.
type Service struct {
	classifier     *Classifier
	analyzer       *Analyzer
	selector       *Selector
	learner        *Learner
	history        ConversationStore
	oracle         LLMClient
	oracleProvider string
	oracleModel    string
	oracleTimeout  time.Duration
	metrics        *metrics.TriageMetrics
	logger         *logging.Logger
	tracer         trace.Tracer
}

// NewService creates the triage service.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Classifier == nil {
		cfg.Classifier = NewClassifier(nil, cfg.Logger)
	}
	if cfg.Analyzer == nil {
		cfg.Analyzer = NewAnalyzer()
	}
	if cfg.Selector == nil {
		cfg.Selector = NewSelector()
	}
	if cfg.Learner == nil {
		cfg.Learner = NewLearner(nil, cfg.Logger)
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.OracleTimeout <= 0 {
		cfg.OracleTimeout = 15 * time.Second
	}
	return &Service{
		classifier:     cfg.Classifier,
		analyzer:       cfg.Analyzer,
		selector:       cfg.Selector,
		learner:        cfg.Learner,
		history:        cfg.History,
		oracle:         cfg.Oracle,
		oracleProvider: cfg.OracleProvider,
		oracleModel:    cfg.OracleModel,
		oracleTimeout:  cfg.OracleTimeout,
		metrics:        cfg.Metrics,
		logger:         cfg.Logger,
		tracer:         otel.Tracer("sanad.internal.triage.service"),
	}
}

// ErrEmptyMessage is returned for blank input; the transport layer
// rejects it before the pipeline runs.
var ErrEmptyMessage = errors.New("triage: message text is empty")

// ProcessMessage handles one turn. Oracle and store failures degrade;
// the only error the caller can see is invalid input.
func (s *Service) ProcessMessage(ctx context.Context, req MessageRequest) (MessageResponse, error) {
	ctx, span := s.tracer.Start(ctx, "triage.process_message")
	defer span.End()

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return MessageResponse{}, ErrEmptyMessage
	}

	classification := s.classifier.Classify(ctx, text)
	healthCtx := s.analyzer.Analyze(text)

	// The crisis predicate runs before the oracle is consulted: no
	// generated or learned content can preempt the emergency branch.
	var generated string
	if !IsCrisis(classification, healthCtx) && s.oracle != nil {
		generated = s.generateReply(ctx, req, text, healthCtx)
	}

	decision := s.selector.Select(SelectInput{
		Text:           text,
		Classification: classification,
		Context:        healthCtx,
		GeneratedReply: generated,
	})

	span.SetAttributes(
		attribute.String("triage.action", string(decision.Action)),
		attribute.String("triage.rule", decision.Rule),
		attribute.Float64("triage.risk_score", classification.RiskScore),
	)
	s.logger.Info("triage decision",
		"session_id", req.SessionID,
		"action", decision.Action,
		"rule", decision.Rule,
		"risk_score", classification.RiskScore,
		"sentiment", classification.Sentiment,
		"conditions", healthCtx.Conditions,
		"severity", healthCtx.Severity,
	)
	s.metrics.ObserveMessage(string(decision.Action), decision.Rule, classification.RiskScore)

	turn := Turn{
		SessionID:    req.SessionID,
		UserText:     text,
		ResponseText: decision.ResponseText,
		Action:       decision.Action,
		Sentiment:    classification.Sentiment,
		RiskScore:    classification.RiskScore,
		Conditions:   healthCtx.Conditions,
		Severity:     healthCtx.Severity,
		Concerns:     healthCtx.Concerns,
		Timestamp:    time.Now().UTC(),
	}
	if s.history != nil {
		if err := s.history.AppendTurn(ctx, req.SessionID, turn); err != nil {
			s.logger.Error("failed to persist turn", "session_id", req.SessionID, "error", err)
		}
	}
	// Satisfaction is unknown at turn time, so responses are recorded
	// without promotion to the successful-exemplar list.
	s.learner.Record(ctx, req.SessionID, text, decision.ResponseText, false)

	return MessageResponse{ResponseText: decision.ResponseText, Action: decision.Action}, nil
}

// RecentTurns exposes session history for the transport layer.
func (s *Service) RecentTurns(ctx context.Context, sessionID string, n int) ([]Turn, error) {
	if s.history == nil {
		return []Turn{}, nil
	}
	return s.history.RecentTurns(ctx, sessionID, n)
}

// generateReply consults the text oracle with a bounded timeout. Any
// failure returns an empty reply and the scripted pipeline takes over.
func (s *Service) generateReply(ctx context.Context, req MessageRequest, text string, healthCtx MentalHealthContext) string {
	history := req.History
	if len(history) == 0 && s.history != nil {
		turns, err := s.history.RecentTurns(ctx, req.SessionID, historyContextTurns)
		if err != nil {
			s.logger.Warn("failed to load history for generation", "session_id", req.SessionID, "error", err)
		} else {
			history = HistoryMessages(turns)
		}
	}

	learned := s.learner.Lookup(ctx, text, maxLearnedExemplars)
	llmReq := BuildGenerationRequest(s.oracleModel, text, history, healthCtx, learned)

	genCtx, cancel := context.WithTimeout(ctx, s.oracleTimeout)
	defer cancel()

	start := time.Now()
	resp, err := s.oracle.Complete(genCtx, llmReq)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		s.metrics.ObserveOracle(s.oracleProvider, "error", elapsed)
		s.logger.Warn("text oracle failed, falling back to scripted responses",
			"session_id", req.SessionID,
			"provider", s.oracleProvider,
			"error", err,
		)
		return ""
	}
	s.metrics.ObserveOracle(s.oracleProvider, "ok", elapsed)
	return strings.TrimSpace(resp.Text)
}
