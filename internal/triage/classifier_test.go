package triage

import (
	"context"
	"errors"
	"testing"
)

type stubSentimentOracle struct {
	result SentimentResult
	err    error
	calls  int
}

func (s *stubSentimentOracle) ClassifySentiment(_ context.Context, _ string) (SentimentResult, error) {
	s.calls++
	return s.result, s.err
}

func TestClassifyWithoutOracle(t *testing.T) {
	c := NewClassifier(nil, nil)

	tests := []struct {
		name      string
		text      string
		sentiment Sentiment
		risk      float64
	}{
		{"high risk phrase", "I want to end it all", SentimentNegative, 0.99},
		{"distress keyword", "I feel so hopeless lately", SentimentNegative, 0.5},
		{"neutral text", "I went for a walk today", SentimentPositive, 0.0},
		{"uppercase high risk", "SUICIDE", SentimentNegative, 0.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(context.Background(), tt.text)
			if got.Sentiment != tt.sentiment {
				t.Fatalf("sentiment = %s, want %s", got.Sentiment, tt.sentiment)
			}
			if got.RiskScore != tt.risk {
				t.Fatalf("risk = %v, want %v", got.RiskScore, tt.risk)
			}
		})
	}
}

func TestClassifyOracleNegativeHighConfidence(t *testing.T) {
	oracle := &stubSentimentOracle{result: SentimentResult{Label: "NEGATIVE", Confidence: 0.9}}
	c := NewClassifier(oracle, nil)

	got := c.Classify(context.Background(), "everything feels heavy")
	if got.Sentiment != SentimentNegative {
		t.Fatalf("sentiment = %s, want NEGATIVE", got.Sentiment)
	}
	if got.RiskScore != 0.45 {
		t.Fatalf("risk = %v, want 0.45", got.RiskScore)
	}
}

func TestClassifyOracleNegativeLowConfidence(t *testing.T) {
	oracle := &stubSentimentOracle{result: SentimentResult{Label: "negative", Confidence: 0.6}}
	c := NewClassifier(oracle, nil)

	got := c.Classify(context.Background(), "today was rough")
	if got.RiskScore != 0 {
		t.Fatalf("risk = %v, want 0", got.RiskScore)
	}
}

func TestClassifyHighRiskOverridesOracle(t *testing.T) {
	oracle := &stubSentimentOracle{result: SentimentResult{Label: "POSITIVE", Confidence: 0.99}}
	c := NewClassifier(oracle, nil)

	got := c.Classify(context.Background(), "I might hurt myself tonight")
	if got.Sentiment != SentimentNegative {
		t.Fatalf("sentiment = %s, want NEGATIVE", got.Sentiment)
	}
	if got.RiskScore != 0.99 {
		t.Fatalf("risk = %v, want 0.99", got.RiskScore)
	}
}

func TestClassifyOracleErrorFallsBack(t *testing.T) {
	oracle := &stubSentimentOracle{err: errors.New("boom")}
	c := NewClassifier(oracle, nil)

	got := c.Classify(context.Background(), "I feel sad")
	if got.Sentiment != SentimentNegative || got.RiskScore != 0.5 {
		t.Fatalf("expected keyword fallback, got %+v", got)
	}
	if oracle.calls != 1 {
		t.Fatalf("oracle calls = %d, want 1", oracle.calls)
	}
}

func TestNormalizeSentiment(t *testing.T) {
	tests := []struct {
		label string
		want  Sentiment
	}{
		{"POSITIVE", SentimentPositive},
		{" negative ", SentimentNegative},
		{"", SentimentError},
		{"LABEL_1", SentimentUnknown},
	}
	for _, tt := range tests {
		if got := normalizeSentiment(tt.label); got != tt.want {
			t.Fatalf("normalizeSentiment(%q) = %s, want %s", tt.label, got, tt.want)
		}
	}
}

func TestClampRisk(t *testing.T) {
	if got := clampRisk(0.456); got != 0.46 {
		t.Fatalf("clampRisk(0.456) = %v, want 0.46", got)
	}
	if got := clampRisk(-0.2); got != 0 {
		t.Fatalf("clampRisk(-0.2) = %v, want 0", got)
	}
	if got := clampRisk(1.7); got != 1 {
		t.Fatalf("clampRisk(1.7) = %v, want 1", got)
	}
}
