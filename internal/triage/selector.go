package triage

import "strings"

// SelectInput carries everything the response selector needs for one
// turn. The selector holds no state of its own.
type SelectInput struct {
	Text           string
	Classification ClassificationResult
	Context        MentalHealthContext
	// GeneratedReply is an externally generated candidate reply, empty
	// when no text oracle produced one.
	GeneratedReply string
}

// Decision is the selector's output: the final response text, the triage
// action, and the name of the rule that fired (for logs and metrics).
type Decision struct {
	ResponseText string
	Action       Action
	Rule         string
}

// crisisRiskThreshold triggers the emergency branch.
const crisisRiskThreshold = 0.95

type selectState struct {
	SelectInput
	lowered string
	trimmed string
}

// rule is one (predicate, handler) pair in the priority table.
type rule struct {
	name    string
	matches func(s selectState) bool
	respond func(s selectState) Decision
}

// Selector picks the final response via a strict-priority rule table.
// The table order is the safety contract: the crisis rule is always
// first and is never overridden by a generated reply or learned content.
type Selector struct {
	rules []rule
}

// NewSelector builds the rule table in its fixed priority order.
func NewSelector() *Selector {
	s := &Selector{}
	s.rules = append(s.rules, rule{
		name:    "crisis",
		matches: func(st selectState) bool { return IsCrisis(st.Classification, st.Context) },
		respond: func(st selectState) Decision {
			return Decision{ResponseText: crisisResponse, Action: ActionEmergencyTriggered}
		},
	})
	s.rules = append(s.rules, rule{
		name:    "generated",
		matches: func(st selectState) bool { return st.GeneratedReply != "" },
		respond: func(st selectState) Decision {
			action := ActionContinueChat
			if _, cued := containsAny(st.lowered, exerciseCues); cued {
				action = ActionGuidedExercise
			}
			return Decision{ResponseText: st.GeneratedReply, Action: action}
		},
	})
	s.rules = append(s.rules, conditionRules()...)
	s.rules = append(s.rules, intentRules()...)
	s.rules = append(s.rules, rule{
		name:    "default",
		matches: func(selectState) bool { return true },
		respond: defaultResponse,
	})
	return s
}

// IsCrisis is the crisis predicate shared by the selector and the
// service's pre-generation short-circuit.
func IsCrisis(cls ClassificationResult, ctx MentalHealthContext) bool {
	return cls.RiskScore >= crisisRiskThreshold || ctx.NeedsImmediateAttention
}

// Select evaluates the rule table in order; the first match wins.
func (s *Selector) Select(in SelectInput) Decision {
	st := selectState{
		SelectInput: in,
		lowered:     strings.ToLower(strings.TrimSpace(in.Text)),
		trimmed:     strings.TrimSpace(in.Text),
	}
	for _, r := range s.rules {
		if r.matches(st) {
			d := r.respond(st)
			d.Rule = r.name
			return d
		}
	}
	// Unreachable: the default rule always matches.
	return Decision{ResponseText: neutralProbeResponse, Action: ActionContinueChat, Rule: "default"}
}

// conditionRules dispatches on the highest-priority detected condition.
func conditionRules() []rule {
	templates := map[string]struct {
		text   string
		action Action
	}{
		ConditionAnxiety:        {anxietyResponse, ActionGuidedExercise},
		ConditionTrauma:         {traumaResponse, ActionContinueChat},
		ConditionSleep:          {sleepResponse, ActionContinueChat},
		ConditionRelationship:   {relationshipResponse, ActionContinueChat},
		ConditionWork:           {workStressResponse, ActionContinueChat},
		ConditionGrief:          {griefResponse, ActionContinueChat},
		ConditionEatingDisorder: {eatingDisorderResponse, ActionContinueChat},
		ConditionSubstance:      {substanceResponse, ActionContinueChat},
	}

	rules := make([]rule, 0, len(conditionPrecedence))
	for _, condition := range conditionPrecedence {
		condition := condition
		if condition == ConditionDepression {
			rules = append(rules, rule{
				name:    "condition:" + condition,
				matches: func(st selectState) bool { return st.Context.HasCondition(condition) },
				respond: func(st selectState) Decision {
					if st.Context.Severity == SeverityHigh {
						return Decision{ResponseText: depressionHighResponse, Action: ActionContinueChat}
					}
					return Decision{ResponseText: depressionResponse, Action: ActionContinueChat}
				},
			})
			continue
		}
		tpl := templates[condition]
		rules = append(rules, rule{
			name:    "condition:" + condition,
			matches: func(st selectState) bool { return st.Context.HasCondition(condition) },
			respond: func(selectState) Decision {
				return Decision{ResponseText: tpl.text, Action: tpl.action}
			},
		})
	}
	return rules
}

// intentRules is the conversational fallback when no condition matched:
// affirmative, question, greeting, gratitude, negation - in that order.
func intentRules() []rule {
	return []rule{
		{
			name: "intent:affirmative",
			matches: func(st selectState) bool {
				_, ok := containsAny(st.lowered, affirmativeWords)
				return ok
			},
			respond: func(st selectState) Decision {
				_, cued := containsAny(st.lowered, exerciseCues)
				if cued || len(st.trimmed) < 10 {
					return Decision{ResponseText: breathingExerciseResponse, Action: ActionGuidedExercise}
				}
				return Decision{ResponseText: affirmativeResponse, Action: ActionContinueChat}
			},
		},
		{
			name: "intent:question",
			matches: func(st selectState) bool {
				_, ok := containsAny(st.lowered, questionWords)
				return ok
			},
			respond: func(st selectState) Decision {
				if _, cued := containsAny(st.lowered, exerciseCues); cued {
					return Decision{ResponseText: breathingTechniqueResponse, Action: ActionGuidedExercise}
				}
				return Decision{ResponseText: questionResponse, Action: ActionContinueChat}
			},
		},
		{
			name: "intent:greeting",
			matches: func(st selectState) bool {
				_, ok := containsAny(st.lowered, greetingWords)
				return ok
			},
			respond: func(selectState) Decision {
				return Decision{ResponseText: greetingResponse, Action: ActionContinueChat}
			},
		},
		{
			name: "intent:gratitude",
			matches: func(st selectState) bool {
				_, ok := containsAny(st.lowered, gratitudeWords)
				return ok
			},
			respond: func(selectState) Decision {
				return Decision{ResponseText: gratitudeResponse, Action: ActionContinueChat}
			},
		},
		{
			name: "intent:negation",
			matches: func(st selectState) bool {
				_, ok := containsAny(st.lowered, negationWords)
				return ok
			},
			respond: func(selectState) Decision {
				return Decision{ResponseText: negationResponse, Action: ActionContinueChat}
			},
		},
	}
}

// defaultResponse probes based on sentiment and concerns.
func defaultResponse(st selectState) Decision {
	switch {
	case st.Classification.Sentiment == SentimentNegative && st.Classification.RiskScore >= 0.3:
		return Decision{ResponseText: empatheticProbeResponse, Action: ActionContinueChat}
	case st.Context.HasConcern(ConcernSeekingHelp):
		return Decision{ResponseText: collaborativeProbeResponse, Action: ActionContinueChat}
	default:
		return Decision{ResponseText: neutralProbeResponse, Action: ActionContinueChat}
	}
}
