package triage

import (
	"context"
	"errors"
	"testing"
)

func TestFallbackClientPrimarySucceeds(t *testing.T) {
	primary := &stubLLMClient{response: LLMResponse{Text: "primary"}}
	fallback := &stubLLMClient{response: LLMResponse{Text: "fallback"}}
	client := NewFallbackLLMClient(primary, fallback, nil)

	resp, err := client.Complete(context.Background(), LLMRequest{})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if resp.Text != "primary" {
		t.Fatalf("text = %q, want primary", resp.Text)
	}
	if fallback.calls != 0 {
		t.Fatalf("fallback was called %d times", fallback.calls)
	}
}

func TestFallbackClientRetriesOnFailure(t *testing.T) {
	primary := &stubLLMClient{err: errors.New("primary down")}
	fallback := &stubLLMClient{response: LLMResponse{Text: "fallback"}}
	client := NewFallbackLLMClient(primary, fallback, nil)

	resp, err := client.Complete(context.Background(), LLMRequest{})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if resp.Text != "fallback" {
		t.Fatalf("text = %q, want fallback", resp.Text)
	}
}

func TestFallbackClientBothFail(t *testing.T) {
	primary := &stubLLMClient{err: errors.New("primary down")}
	fallback := &stubLLMClient{err: errors.New("fallback down")}
	client := NewFallbackLLMClient(primary, fallback, nil)

	if _, err := client.Complete(context.Background(), LLMRequest{}); err == nil {
		t.Fatal("expected error when both providers fail")
	}
}

func TestFallbackClientWithoutFallback(t *testing.T) {
	primary := &stubLLMClient{err: errors.New("primary down")}
	client := NewFallbackLLMClient(primary, nil, nil)

	if _, err := client.Complete(context.Background(), LLMRequest{}); err == nil {
		t.Fatal("expected primary error to surface")
	}
}
