package triage

import (
	"strings"
	"testing"
)

func TestBuildGenerationRequest(t *testing.T) {
	history := []ChatMessage{
		{Role: ChatRoleUser, Content: "earlier message"},
		{Role: ChatRoleAssistant, Content: "earlier reply"},
	}
	healthCtx := MentalHealthContext{Conditions: []string{ConditionDepression, ConditionAnxiety}}
	learned := []string{"a response that worked before"}

	req := BuildGenerationRequest("model-x", "today was hard", history, healthCtx, learned)

	if req.Model != "model-x" {
		t.Fatalf("model = %q", req.Model)
	}
	if req.MaxTokens != defaultMaxTokens || req.Temperature != 0.7 {
		t.Fatalf("unexpected generation params: %+v", req)
	}
	if len(req.System) != 3 {
		t.Fatalf("got %d system blocks, want persona, context, and learned", len(req.System))
	}
	if !strings.Contains(req.System[1], "depression, anxiety") {
		t.Fatalf("context block = %q", req.System[1])
	}
	if !strings.Contains(req.System[2], "a response that worked before") {
		t.Fatalf("learned block = %q", req.System[2])
	}
	if len(req.Messages) != 3 {
		t.Fatalf("got %d messages, want 3", len(req.Messages))
	}
	last := req.Messages[len(req.Messages)-1]
	if last.Role != ChatRoleUser || last.Content != "today was hard" {
		t.Fatalf("final message = %+v", last)
	}
}

func TestBuildGenerationRequestMinimal(t *testing.T) {
	req := BuildGenerationRequest("m", "hello", nil, MentalHealthContext{}, nil)
	if len(req.System) != 1 {
		t.Fatalf("got %d system blocks, want persona only", len(req.System))
	}
	if len(req.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(req.Messages))
	}
}

func TestHistoryMessages(t *testing.T) {
	turns := []Turn{
		{UserText: "first", ResponseText: "reply one"},
		{UserText: "second", ResponseText: ""},
		{UserText: "  ", ResponseText: "reply three"},
	}

	msgs := HistoryMessages(turns)
	if len(msgs) != 4 {
		t.Fatalf("got %d messages, want 4", len(msgs))
	}
	if msgs[0].Role != ChatRoleUser || msgs[0].Content != "first" {
		t.Fatalf("unexpected first message: %+v", msgs[0])
	}
	if msgs[1].Role != ChatRoleAssistant || msgs[1].Content != "reply one" {
		t.Fatalf("unexpected second message: %+v", msgs[1])
	}
	if msgs[3].Role != ChatRoleAssistant || msgs[3].Content != "reply three" {
		t.Fatalf("unexpected last message: %+v", msgs[3])
	}
}
