package triage

import (
	"context"
	"math"
	"strings"

	"github.com/sanad-ai/triage-backend/pkg/logging"
)

// negativeConfidenceThreshold is the oracle confidence above which a
// NEGATIVE label contributes moderate risk.
const negativeConfidenceThreshold = 0.8

// highRiskScore is the forced score for explicit self-harm phrasing.
const highRiskScore = 0.99

// Classifier turns raw text into a sentiment label and a bounded risk
// score. An optional sentiment oracle refines the label; explicit
// high-risk phrases always override whatever the oracle says.
type Classifier struct {
	oracle SentimentOracle
	logger *logging.Logger
}

// NewClassifier creates a classifier. The oracle may be nil, in which
// case the keyword fallback is used for every message.
func NewClassifier(oracle SentimentOracle, logger *logging.Logger) *Classifier {
	if logger == nil {
		logger = logging.Default()
	}
	return &Classifier{oracle: oracle, logger: logger}
}

// Classify never fails: oracle errors degrade to the keyword fallback.
// The returned risk score lies in [0, 1], rounded to two decimals.
func (c *Classifier) Classify(ctx context.Context, text string) ClassificationResult {
	lowered := strings.ToLower(text)

	if c.oracle == nil {
		return c.keywordFallback(lowered)
	}

	res, err := c.oracle.ClassifySentiment(ctx, text)
	if err != nil {
		c.logger.Warn("sentiment oracle unavailable, using keyword fallback", "error", err)
		return c.keywordFallback(lowered)
	}

	sentiment := normalizeSentiment(res.Label)

	// Explicit self-harm phrasing is a hard override, not a blend.
	risk := 0.0
	if _, found := containsAny(lowered, highRiskPhrases); found {
		risk = highRiskScore
		sentiment = SentimentNegative
	} else if sentiment == SentimentNegative && res.Confidence > negativeConfidenceThreshold {
		risk = res.Confidence * 0.5
	}

	return ClassificationResult{
		Sentiment: sentiment,
		RiskScore: clampRisk(risk),
	}
}

// keywordFallback is the two-tier rule path used when no oracle is
// available or the oracle call failed.
func (c *Classifier) keywordFallback(lowered string) ClassificationResult {
	if _, found := containsAny(lowered, highRiskPhrases); found {
		return ClassificationResult{Sentiment: SentimentNegative, RiskScore: highRiskScore}
	}
	if _, found := containsAny(lowered, distressKeywords); found {
		return ClassificationResult{Sentiment: SentimentNegative, RiskScore: 0.5}
	}
	return ClassificationResult{Sentiment: SentimentPositive, RiskScore: 0.0}
}

func normalizeSentiment(label string) Sentiment {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "POSITIVE":
		return SentimentPositive
	case "NEGATIVE":
		return SentimentNegative
	case "":
		return SentimentError
	default:
		return SentimentUnknown
	}
}

func clampRisk(score float64) float64 {
	score = math.Round(score*100) / 100
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
