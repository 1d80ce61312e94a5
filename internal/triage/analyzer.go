package triage

import "strings"

// Analyzer scans text against the condition lexicon to produce detected
// conditions, a severity grade, and concern tags. Analyze is a pure
// function of its input: identical text always yields an identical
// MentalHealthContext.
type Analyzer struct{}

// NewAnalyzer creates a context analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze detects conditions by substring containment, in the fixed
// precedence order so the result slice is deterministic.
func (a *Analyzer) Analyze(text string) MentalHealthContext {
	lowered := strings.ToLower(text)

	var conditions []string
	for _, condition := range conditionPrecedence {
		if _, found := containsAny(lowered, conditionKeywords[condition]); found {
			conditions = append(conditions, condition)
		}
	}
	// Suicidal sits outside the dispatch precedence but still counts as a
	// detected condition.
	if _, found := containsAny(lowered, conditionKeywords[ConditionSuicidal]); found {
		conditions = append(conditions, ConditionSuicidal)
	}

	severity := SeverityLow
	if len(conditions) > 0 {
		severity = SeverityModerate
		if _, found := containsAny(lowered, severityIntensifiers); found {
			severity = SeverityHigh
		}
	}

	var concerns []string
	if strings.Contains(lowered, "can't") || strings.Contains(lowered, "cannot") {
		concerns = append(concerns, ConcernFunctionality)
	}
	if strings.Contains(lowered, "help") || strings.Contains(lowered, "need") {
		concerns = append(concerns, ConcernSeekingHelp)
	}
	if strings.Contains(lowered, "better") || strings.Contains(lowered, "improve") {
		concerns = append(concerns, ConcernImprovement)
	}

	ctx := MentalHealthContext{
		Conditions: conditions,
		Severity:   severity,
		Concerns:   concerns,
	}
	ctx.NeedsImmediateAttention = ctx.HasCondition(ConditionSuicidal)
	return ctx
}
