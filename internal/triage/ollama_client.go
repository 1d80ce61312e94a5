package triage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// OllamaLLMClient implements LLMClient against a local-network model
// server speaking the Ollama generate API.
type OllamaLLMClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOllamaLLMClient creates a client for an Ollama-compatible endpoint.
// The supplied http.Client controls the request timeout.
func NewOllamaLLMClient(baseURL string, httpClient *http.Client) (*OllamaLLMClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("triage: ollama base url is required")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &OllamaLLMClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}, nil
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	DoneReason      string `json:"done_reason,omitempty"`
	PromptEvalCount int32  `json:"prompt_eval_count,omitempty"`
	EvalCount       int32  `json:"eval_count,omitempty"`
}

// Complete flattens the chat request into a single prompt and posts it
// to /api/generate.
func (c *OllamaLLMClient) Complete(ctx context.Context, req LLMRequest) (LLMResponse, error) {
	if strings.TrimSpace(req.Model) == "" {
		return LLMResponse{}, errors.New("triage: ollama model id is required")
	}

	prompt := flattenPrompt(req)
	if prompt == "" {
		return LLMResponse{}, errors.New("triage: ollama requires a non-empty prompt")
	}

	payload, err := json.Marshal(ollamaGenerateRequest{
		Model:  req.Model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return LLMResponse{}, fmt.Errorf("triage: encode ollama request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return LLMResponse{}, fmt.Errorf("triage: build ollama request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return LLMResponse{}, fmt.Errorf("triage: ollama request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return LLMResponse{}, fmt.Errorf("triage: ollama returned status %d", resp.StatusCode)
	}

	var decoded ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return LLMResponse{}, fmt.Errorf("triage: decode ollama response: %w", err)
	}

	text := strings.TrimSpace(decoded.Response)
	if text == "" {
		return LLMResponse{}, errors.New("triage: ollama returned an empty response")
	}

	return LLMResponse{
		Text:       text,
		StopReason: decoded.DoneReason,
		Usage: TokenUsage{
			InputTokens:  decoded.PromptEvalCount,
			OutputTokens: decoded.EvalCount,
			TotalTokens:  decoded.PromptEvalCount + decoded.EvalCount,
		},
	}, nil
}

// flattenPrompt renders system blocks and chat history into the single
// prompt string the generate API expects.
func flattenPrompt(req LLMRequest) string {
	var b strings.Builder
	for _, block := range req.System {
		if strings.TrimSpace(block) == "" {
			continue
		}
		b.WriteString(block)
		b.WriteString("\n\n")
	}
	for _, msg := range req.Messages {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			continue
		}
		switch msg.Role {
		case ChatRoleSystem:
			b.WriteString(content)
		case ChatRoleAssistant:
			b.WriteString("Therapist: ")
			b.WriteString(content)
		default:
			b.WriteString("User: ")
			b.WriteString(content)
		}
		b.WriteString("\n")
	}
	if b.Len() > 0 {
		b.WriteString("Therapist:")
	}
	return strings.TrimSpace(b.String())
}
