package triage

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

type fakePatternStore struct {
	recorded  []recordedPattern
	responses map[string][]string
	err       error
}

type recordedPattern struct {
	phrase    string
	userText  string
	bot       string
	satisfied bool
}

func (f *fakePatternStore) RecordPattern(_ context.Context, phrase, userText, botResponse string, satisfied bool) error {
	if f.err != nil {
		return f.err
	}
	f.recorded = append(f.recorded, recordedPattern{phrase, userText, botResponse, satisfied})
	return nil
}

func (f *fakePatternStore) LookupPattern(_ context.Context, phrase string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.responses[phrase], nil
}

func TestExtractKeyPhrases(t *testing.T) {
	l := NewLearner(nil, nil)

	got := l.ExtractKeyPhrases("I feel anxious and I can't relax, help me")
	want := []string{"i feel", "i can't", "anxious", "help me"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("phrases = %v, want %v", got, want)
	}

	if got := l.ExtractKeyPhrases("nothing matches here"); got != nil {
		t.Fatalf("expected no phrases, got %v", got)
	}
}

func TestRecordFansOutPerPhrase(t *testing.T) {
	store := &fakePatternStore{}
	l := NewLearner(store, nil)

	l.Record(context.Background(), "s1", "I feel sad", "reply", true)

	if len(store.recorded) != 2 {
		t.Fatalf("recorded %d patterns, want 2", len(store.recorded))
	}
	if store.recorded[0].phrase != "i feel" || store.recorded[1].phrase != "sad" {
		t.Fatalf("unexpected phrases: %+v", store.recorded)
	}
	for _, r := range store.recorded {
		if !r.satisfied {
			t.Fatalf("expected satisfied flag to pass through")
		}
	}
}

func TestRecordSwallowsStoreErrors(t *testing.T) {
	store := &fakePatternStore{err: errors.New("redis down")}
	l := NewLearner(store, nil)

	// Must not panic or surface the error.
	l.Record(context.Background(), "s1", "I feel sad", "reply", false)
}

func TestRecordWithNilStore(t *testing.T) {
	l := NewLearner(nil, nil)
	l.Record(context.Background(), "s1", "I feel sad", "reply", false)
}

func TestLookupCapsResults(t *testing.T) {
	store := &fakePatternStore{responses: map[string][]string{
		"i feel": {"r1", "r2"},
		"sad":    {"r3"},
	}}
	l := NewLearner(store, nil)

	got := l.Lookup(context.Background(), "I feel sad", 2)
	if !reflect.DeepEqual(got, []string{"r1", "r2"}) {
		t.Fatalf("responses = %v, want first two", got)
	}

	got = l.Lookup(context.Background(), "I feel sad", 5)
	if !reflect.DeepEqual(got, []string{"r1", "r2", "r3"}) {
		t.Fatalf("responses = %v, want all three", got)
	}

	if got := l.Lookup(context.Background(), "I feel sad", 0); got != nil {
		t.Fatalf("expected nil for max=0, got %v", got)
	}
}

func TestLookupSkipsFailingPhrases(t *testing.T) {
	store := &fakePatternStore{err: errors.New("redis down")}
	l := NewLearner(store, nil)

	if got := l.Lookup(context.Background(), "I feel sad", 3); got != nil {
		t.Fatalf("expected nil on store failure, got %v", got)
	}
}
