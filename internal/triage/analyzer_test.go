package triage

import (
	"reflect"
	"testing"
)

func TestAnalyzeConditions(t *testing.T) {
	a := NewAnalyzer()

	tests := []struct {
		name       string
		text       string
		conditions []string
		severity   Severity
		immediate  bool
	}{
		{
			name:       "single condition",
			text:       "I have been so depressed",
			conditions: []string{ConditionDepression},
			severity:   SeverityModerate,
		},
		{
			name:       "precedence order is stable",
			text:       "my job makes me anxious and I feel sad",
			conditions: []string{ConditionDepression, ConditionAnxiety, ConditionWork},
			severity:   SeverityModerate,
		},
		{
			name:       "suicidal appended after dispatch conditions",
			text:       "I'm sad and it's not worth living",
			conditions: []string{ConditionDepression, ConditionSuicidal},
			severity:   SeverityModerate,
			immediate:  true,
		},
		{
			name:       "intensifier escalates severity",
			text:       "my anxiety is extremely bad",
			conditions: []string{ConditionAnxiety},
			severity:   SeverityHigh,
		},
		{
			name:     "intensifier alone stays low",
			text:     "today was a very good day",
			severity: SeverityLow,
		},
		{
			name:     "no conditions",
			text:     "I went for a walk",
			severity: SeverityLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Analyze(tt.text)
			if !reflect.DeepEqual(got.Conditions, tt.conditions) {
				t.Fatalf("conditions = %v, want %v", got.Conditions, tt.conditions)
			}
			if got.Severity != tt.severity {
				t.Fatalf("severity = %s, want %s", got.Severity, tt.severity)
			}
			if got.NeedsImmediateAttention != tt.immediate {
				t.Fatalf("needs_immediate_attention = %v, want %v", got.NeedsImmediateAttention, tt.immediate)
			}
		})
	}
}

func TestAnalyzeConcerns(t *testing.T) {
	a := NewAnalyzer()

	got := a.Analyze("I can't cope and I need help to get better")
	for _, concern := range []string{ConcernFunctionality, ConcernSeekingHelp, ConcernImprovement} {
		if !got.HasConcern(concern) {
			t.Fatalf("expected concern %s in %v", concern, got.Concerns)
		}
	}

	if got := a.Analyze("just checking in"); len(got.Concerns) != 0 {
		t.Fatalf("expected no concerns, got %v", got.Concerns)
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	a := NewAnalyzer()
	text := "I'm very anxious about work stress and I can't sleep"

	first := a.Analyze(text)
	for i := 0; i < 5; i++ {
		if got := a.Analyze(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("analysis changed between runs: %+v vs %+v", got, first)
		}
	}
}
