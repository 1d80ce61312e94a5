package triage

import (
	"fmt"
	"strings"
)

// therapistSystemPrompt is the persona given to every text oracle.
const therapistSystemPrompt = `You are Sanad, an expert mental health therapist and AI companion. Your role is to:
- Provide evidence-based, therapeutic responses
- Show empathy and understanding
- Offer practical coping strategies
- Recognize when professional help is needed
- Maintain appropriate boundaries
- Prioritize user safety above all

Guidelines:
- Always validate the user's feelings
- Use therapeutic techniques (CBT, DBT, mindfulness)
- Provide specific, actionable advice
- Never diagnose, but recognize symptoms
- Encourage professional help when appropriate
- Maintain a warm, professional tone`

// defaultMaxTokens bounds oracle replies to chat-sized responses.
const defaultMaxTokens = 300

// BuildGenerationRequest assembles the provider-neutral request for one
// turn: persona, recent history, detected context, learned exemplars,
// then the user message last.
func BuildGenerationRequest(model, userText string, history []ChatMessage, healthCtx MentalHealthContext, learned []string) LLMRequest {
	system := []string{therapistSystemPrompt}

	if len(healthCtx.Conditions) > 0 {
		system = append(system, fmt.Sprintf(
			"Detected mental health context: %s. Adjust your response accordingly.",
			strings.Join(healthCtx.Conditions, ", "),
		))
	}
	if len(learned) > 0 {
		system = append(system, fmt.Sprintf(
			"Previously successful response patterns to consider: %s",
			strings.Join(learned, " | "),
		))
	}

	messages := make([]ChatMessage, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, ChatMessage{Role: ChatRoleUser, Content: userText})

	return LLMRequest{
		Model:       model,
		System:      system,
		Messages:    messages,
		MaxTokens:   defaultMaxTokens,
		Temperature: 0.7,
	}
}

// HistoryMessages converts stored turns into chat history, two messages
// per turn in chronological order.
func HistoryMessages(turns []Turn) []ChatMessage {
	messages := make([]ChatMessage, 0, len(turns)*2)
	for _, t := range turns {
		if strings.TrimSpace(t.UserText) != "" {
			messages = append(messages, ChatMessage{Role: ChatRoleUser, Content: t.UserText})
		}
		if strings.TrimSpace(t.ResponseText) != "" {
			messages = append(messages, ChatMessage{Role: ChatRoleAssistant, Content: t.ResponseText})
		}
	}
	return messages
}
