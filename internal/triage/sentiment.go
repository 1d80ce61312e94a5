package triage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SentimentResult is the label/confidence pair a sentiment oracle returns.
type SentimentResult struct {
	Label      string
	Confidence float64
}

// SentimentOracle classifies raw text into a sentiment label with a
// confidence score. Implementations are network-backed and may fail; the
// classifier degrades to keyword rules on any error.
type SentimentOracle interface {
	ClassifySentiment(ctx context.Context, text string) (SentimentResult, error)
}

// HTTPSentimentOracle calls an inference endpoint that speaks the
// Hugging Face text-classification JSON shape: the response is a list
// (possibly nested one level) of {label, score} candidates, best first.
type HTTPSentimentOracle struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewHTTPSentimentOracle creates a sentiment oracle client. The token is
// optional; timeout bounds the whole request.
func NewHTTPSentimentOracle(endpoint, token string, timeout time.Duration) (*HTTPSentimentOracle, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, errors.New("triage: sentiment endpoint is required")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPSentimentOracle{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type sentimentCandidate struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ClassifySentiment posts the text to the inference endpoint and returns
// the top candidate.
func (o *HTTPSentimentOracle) ClassifySentiment(ctx context.Context, text string) (SentimentResult, error) {
	payload, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return SentimentResult{}, fmt.Errorf("triage: encode sentiment request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(payload))
	if err != nil {
		return SentimentResult{}, fmt.Errorf("triage: build sentiment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if o.token != "" {
		req.Header.Set("Authorization", "Bearer "+o.token)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return SentimentResult{}, fmt.Errorf("triage: sentiment request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return SentimentResult{}, fmt.Errorf("triage: sentiment endpoint returned status %d", resp.StatusCode)
	}

	var nested [][]sentimentCandidate
	var flat []sentimentCandidate

	dec := json.NewDecoder(resp.Body)
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return SentimentResult{}, fmt.Errorf("triage: decode sentiment response: %w", err)
	}
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		flat = nested[0]
	} else if err := json.Unmarshal(raw, &flat); err != nil || len(flat) == 0 {
		return SentimentResult{}, errors.New("triage: sentiment response contained no candidates")
	}

	best := flat[0]
	for _, c := range flat[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return SentimentResult{
		Label:      strings.ToUpper(strings.TrimSpace(best.Label)),
		Confidence: best.Score,
	}, nil
}
