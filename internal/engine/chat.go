package engine

import (
	"strings"

	"github.com/davidbz/mirage/internal/domain"
)

// Character overhead added per message when estimating prompt tokens,
// covering role tags and separators.
const messageOverheadChars = 20

// GenerateChatCompletion assembles a full chat completion response for
// a validated request.
func GenerateChatCompletion(req *domain.ChatRequest) *domain.ChatResponse {
	n := req.ChoiceCount()
	choices := make([]domain.ChatChoice, 0, n)
	for i := 0; i < n; i++ {
		choices = append(choices, generateChatChoice(req, i))
	}

	promptTokens := estimateMessagesTokens(req.Messages)
	completionTokens := estimateChoicesTokens(choices)

	return &domain.ChatResponse{
		ID:      NewChatCompletionID(),
		Object:  domain.ObjectChatCompletion,
		Created: Timestamp(),
		Model:   req.Model,
		Choices: choices,
		Usage:   domain.NewUsage(promptTokens, completionTokens),
	}
}

func generateChatChoice(req *domain.ChatRequest, index int) domain.ChatChoice {
	userContent := req.LastUserContent()

	if shouldSynthesizeToolCall(req, userContent) {
		return domain.ChatChoice{
			Index: index,
			Message: domain.AssistantMessage{
				Role:      domain.RoleAssistant,
				ToolCalls: []domain.ToolCall{SynthesizeToolCall(req.Tools[0])},
			},
			FinishReason: domain.FinishReasonToolCalls,
		}
	}

	content := RenderChatReply(Classify(userContent), userContent, req.Model)

	return domain.ChatChoice{
		Index: index,
		Message: domain.AssistantMessage{
			Role:    domain.RoleAssistant,
			Content: &content,
		},
		FinishReason: chatFinishReason(req, content),
	}
}

// shouldSynthesizeToolCall gates tool-call emission on tools being
// declared, a selection policy being supplied, and the latest user
// message matching a trigger keyword. The first declared tool is
// always the one invoked.
func shouldSynthesizeToolCall(req *domain.ChatRequest, userContent string) bool {
	return len(req.Tools) > 0 && req.ToolChoice.IsSet() && TriggersToolCall(userContent)
}

// chatFinishReason applies the finish-reason policy for content
// replies. Tool-call choices are unconditionally tool_calls and never
// reach here.
func chatFinishReason(req *domain.ChatRequest, content string) string {
	for _, seq := range req.Stop.Values() {
		if seq != "" && strings.Contains(content, seq) {
			return domain.FinishReasonStop
		}
	}

	if req.MaxTokens != nil && EstimateTokens(content) >= *req.MaxTokens {
		return domain.FinishReasonLength
	}

	return domain.FinishReasonStop
}

func estimateMessagesTokens(messages []domain.Message) int {
	chars := 0
	for _, msg := range messages {
		if msg.Content != nil {
			chars += len(*msg.Content)
		}
		chars += len(msg.Role) + messageOverheadChars
	}
	return EstimateTokensFromChars(chars)
}

func estimateChoicesTokens(choices []domain.ChatChoice) int {
	chars := 0
	for _, choice := range choices {
		if choice.Message.Content != nil {
			chars += len(*choice.Message.Content)
		}
		for _, call := range choice.Message.ToolCalls {
			chars += len(call.Function.Name) + len(call.Function.Arguments)
		}
	}
	return EstimateTokensFromChars(chars)
}
