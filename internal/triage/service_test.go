package triage

import (
	"context"
	"errors"
	"strings"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type stubLLMClient struct {
	response LLMResponse
	err      error
	calls    int
	lastReq  LLMRequest
}

func (s *stubLLMClient) Complete(_ context.Context, req LLMRequest) (LLMResponse, error) {
	s.calls++
	s.lastReq = req
	return s.response, s.err
}

func newTestService(t *testing.T, oracle LLMClient) (*Service, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewService(ServiceConfig{
		History:     NewRedisConversationStore(client),
		Learner:     NewLearner(NewRedisPatternStore(client), nil),
		Oracle:      oracle,
		OracleModel: "test-model",
	}), client
}

func TestProcessMessageCrisisSkipsOracle(t *testing.T) {
	oracle := &stubLLMClient{response: LLMResponse{Text: "generated text"}}
	service, _ := newTestService(t, oracle)

	resp, err := service.ProcessMessage(context.Background(), MessageRequest{
		SessionID: "s1",
		Text:      "I want to end it all",
	})
	if err != nil {
		t.Fatalf("ProcessMessage failed: %v", err)
	}
	if resp.Action != ActionEmergencyTriggered {
		t.Fatalf("action = %s, want EMERGENCY_TRIGGERED", resp.Action)
	}
	if !strings.Contains(resp.ResponseText, "988") {
		t.Fatalf("crisis response missing hotline: %q", resp.ResponseText)
	}
	if oracle.calls != 0 {
		t.Fatalf("oracle was consulted %d times during a crisis", oracle.calls)
	}
}

func TestProcessMessageUsesGeneratedReply(t *testing.T) {
	oracle := &stubLLMClient{response: LLMResponse{Text: "A thoughtful generated reply."}}
	service, _ := newTestService(t, oracle)

	resp, err := service.ProcessMessage(context.Background(), MessageRequest{
		SessionID: "s1",
		Text:      "I had a strange day",
	})
	if err != nil {
		t.Fatalf("ProcessMessage failed: %v", err)
	}
	if resp.ResponseText != "A thoughtful generated reply." {
		t.Fatalf("response = %q, want generated reply", resp.ResponseText)
	}
	if resp.Action != ActionContinueChat {
		t.Fatalf("action = %s, want CONTINUE_CHAT", resp.Action)
	}
	if oracle.lastReq.Model != "test-model" {
		t.Fatalf("oracle model = %q, want test-model", oracle.lastReq.Model)
	}
	if len(oracle.lastReq.System) == 0 || !strings.Contains(oracle.lastReq.System[0], "Sanad") {
		t.Fatalf("oracle request missing persona: %+v", oracle.lastReq.System)
	}
}

func TestProcessMessageOracleFailureDegrades(t *testing.T) {
	oracle := &stubLLMClient{err: errors.New("provider down")}
	service, _ := newTestService(t, oracle)

	resp, err := service.ProcessMessage(context.Background(), MessageRequest{
		SessionID: "s1",
		Text:      "I have been so depressed",
	})
	if err != nil {
		t.Fatalf("ProcessMessage failed: %v", err)
	}
	if resp.ResponseText != depressionResponse {
		t.Fatalf("expected scripted depression response after oracle failure")
	}
}

func TestProcessMessageWithoutOracle(t *testing.T) {
	service, _ := newTestService(t, nil)

	resp, err := service.ProcessMessage(context.Background(), MessageRequest{
		SessionID: "s1",
		Text:      "hello",
	})
	if err != nil {
		t.Fatalf("ProcessMessage failed: %v", err)
	}
	if resp.ResponseText != greetingResponse {
		t.Fatalf("expected greeting response, got %q", resp.ResponseText)
	}
}

func TestProcessMessageRejectsBlankText(t *testing.T) {
	service, _ := newTestService(t, nil)

	if _, err := service.ProcessMessage(context.Background(), MessageRequest{SessionID: "s1", Text: "   "}); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("err = %v, want ErrEmptyMessage", err)
	}
}

func TestProcessMessagePersistsTurn(t *testing.T) {
	service, _ := newTestService(t, nil)
	ctx := context.Background()

	if _, err := service.ProcessMessage(ctx, MessageRequest{SessionID: "s1", Text: "I feel anxious"}); err != nil {
		t.Fatalf("ProcessMessage failed: %v", err)
	}

	turns, err := service.RecentTurns(ctx, "s1", 10)
	if err != nil {
		t.Fatalf("RecentTurns failed: %v", err)
	}
	if len(turns) != 1 {
		t.Fatalf("got %d turns, want 1", len(turns))
	}
	turn := turns[0]
	if turn.UserText != "I feel anxious" {
		t.Fatalf("user text = %q", turn.UserText)
	}
	if turn.Action != ActionGuidedExercise {
		t.Fatalf("action = %s, want GUIDED_EXERCISE", turn.Action)
	}
	if len(turn.Conditions) != 1 || turn.Conditions[0] != ConditionAnxiety {
		t.Fatalf("conditions = %v, want anxiety", turn.Conditions)
	}
}

func TestProcessMessageFeedsHistoryToOracle(t *testing.T) {
	oracle := &stubLLMClient{response: LLMResponse{Text: "reply"}}
	service, _ := newTestService(t, oracle)
	ctx := context.Background()

	if _, err := service.ProcessMessage(ctx, MessageRequest{SessionID: "s1", Text: "I had a strange day"}); err != nil {
		t.Fatalf("first turn failed: %v", err)
	}
	if _, err := service.ProcessMessage(ctx, MessageRequest{SessionID: "s1", Text: "it got worse later"}); err != nil {
		t.Fatalf("second turn failed: %v", err)
	}

	msgs := oracle.lastReq.Messages
	if len(msgs) != 3 {
		t.Fatalf("got %d oracle messages, want history plus current", len(msgs))
	}
	if msgs[0].Role != ChatRoleUser || msgs[0].Content != "I had a strange day" {
		t.Fatalf("unexpected first history message: %+v", msgs[0])
	}
	if msgs[1].Role != ChatRoleAssistant || msgs[1].Content != "reply" {
		t.Fatalf("unexpected assistant history message: %+v", msgs[1])
	}
	if msgs[2].Content != "it got worse later" {
		t.Fatalf("unexpected final message: %+v", msgs[2])
	}
}
