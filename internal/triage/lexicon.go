package triage

import "strings"

// Condition tags detected by the context analyzer.
const (
	ConditionDepression     = "depression"
	ConditionAnxiety        = "anxiety"
	ConditionSuicidal       = "suicidal"
	ConditionTrauma         = "trauma"
	ConditionEatingDisorder = "eating_disorder"
	ConditionSleep          = "sleep"
	ConditionSubstance      = "substance"
	ConditionRelationship   = "relationship"
	ConditionWork           = "work"
	ConditionGrief          = "grief"
)

// Concern tags flagged independently of conditions.
const (
	ConcernFunctionality = "functionality_issues"
	ConcernSeekingHelp   = "seeking_help"
	ConcernImprovement   = "seeking_improvement"
)

// conditionKeywords maps each condition tag to its lowercase trigger
// substrings. Matching is plain substring containment against the
// lowercased message; no tokenization or stemming. That trades precision
// for recall deliberately.
var conditionKeywords = map[string][]string{
	ConditionDepression:     {"depression", "depressed", "sad", "hopeless", "worthless", "empty", "numb"},
	ConditionAnxiety:        {"anxiety", "anxious", "worried", "panic", "fear", "nervous", "stressed"},
	ConditionSuicidal:       {"suicide", "kill myself", "end it all", "hurt myself", "not worth living"},
	ConditionTrauma:         {"trauma", "ptsd", "flashback", "triggered", "abuse", "assault"},
	ConditionEatingDisorder: {"eating disorder", "anorexia", "bulimia", "binge", "not eating"},
	ConditionSleep:          {"insomnia", "can't sleep", "sleeping too much", "nightmares"},
	ConditionSubstance:      {"alcohol", "drugs", "addiction", "using", "drinking too much"},
	ConditionRelationship:   {"relationship", "breakup", "divorce", "lonely", "isolated"},
	ConditionWork:           {"work stress", "job", "unemployed", "career", "boss"},
	ConditionGrief:          {"grief", "loss", "death", "died", "mourning", "funeral"},
}

// conditionPrecedence is the fixed dispatch order the response selector
// uses when several conditions are detected at once. First populated wins.
var conditionPrecedence = []string{
	ConditionDepression,
	ConditionAnxiety,
	ConditionTrauma,
	ConditionSleep,
	ConditionRelationship,
	ConditionWork,
	ConditionGrief,
	ConditionEatingDisorder,
	ConditionSubstance,
}

// highRiskPhrases force an immediate-intervention risk score no matter
// what the sentiment oracle says.
var highRiskPhrases = []string{"end it all", "suicide", "hurt myself"}

// distressKeywords mark general distress in the oracle-less fallback path.
var distressKeywords = []string{"sad", "depressed", "hopeless", "anxious"}

// severityIntensifiers escalate severity to high when any detected
// condition co-occurs with one of them anywhere in the text. The match is
// text-global, not clause-scoped.
var severityIntensifiers = []string{"very", "extremely", "severe", "terrible", "awful", "worst"}

// keyPhraseVocabulary is the curated phrase list the pattern learner
// extracts from user messages. Independent of the condition lexicon.
var keyPhraseVocabulary = []string{
	"i feel", "i'm feeling", "i have", "i can't", "i don't",
	"depression", "anxious", "sad", "worried", "stressed",
	"help me", "i need", "i want", "i wish",
}

// Intent keyword sets for the conversational fallback, checked in the
// selector's fixed priority order.
var (
	affirmativeWords = []string{"yes", "sure", "ok", "okay", "yeah", "yep", "alright", "let's", "let us"}
	questionWords    = []string{"how", "what", "when", "where", "why", "explain", "tell me"}
	greetingWords    = []string{"hi", "hello", "hey", "good morning", "good afternoon", "good evening"}
	gratitudeWords   = []string{"thank", "thanks", "appreciate", "grateful"}
	negationWords    = []string{"no", "not", "don't", "can't", "won't", "nope"}
	exerciseCues     = []string{"breathing", "exercise"}
)

// containsAny reports whether lowered contains any of the given
// substrings, returning the first match.
func containsAny(lowered string, phrases []string) (string, bool) {
	for _, p := range phrases {
		if strings.Contains(lowered, p) {
			return p, true
		}
	}
	return "", false
}
