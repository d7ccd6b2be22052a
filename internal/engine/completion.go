// Package engine is the deterministic response-synthesis core. It
// classifies prompts into response categories, renders canned text or
// tool-call payloads, derives reproducible embedding vectors from
// input content, and computes internally consistent token usage,
// without performing any actual inference.
//
// The engine is stateless and purely functional: every generator reads
// only its inputs and returns a fresh response, so concurrent
// invocation needs no synchronization. Determinism is scoped to
// content; response IDs and timestamps are per-call.
package engine

import (
	"strings"

	"github.com/davidbz/mirage/internal/domain"
)

// GenerateCompletion assembles a full completion response for a
// validated request.
func GenerateCompletion(req *domain.CompletionRequest) *domain.CompletionResponse {
	n := req.ChoiceCount()
	choices := make([]domain.CompletionChoice, 0, n)
	for i := 0; i < n; i++ {
		choices = append(choices, generateCompletionChoice(req, i))
	}

	promptTokens := EstimateTokens(req.Prompt.Join())
	completionTokens := 0
	for _, choice := range choices {
		completionTokens += EstimateTokens(choice.Text)
	}

	return &domain.CompletionResponse{
		ID:      NewCompletionID(),
		Object:  domain.ObjectTextCompletion,
		Created: Timestamp(),
		Model:   req.Model,
		Choices: choices,
		Usage:   domain.NewUsage(promptTokens, completionTokens),
	}
}

func generateCompletionChoice(req *domain.CompletionRequest, index int) domain.CompletionChoice {
	prompt := req.Prompt.First()
	maxTokens := req.MaxOutputTokens()

	category := Classify(prompt)
	text := RenderCompletion(category, prompt, maxTokens, req.EchoPrompt())

	choice := domain.CompletionChoice{
		Text:         text,
		Index:        index,
		FinishReason: completionFinishReason(req, text),
	}

	if req.Logprobs != nil && *req.Logprobs > 0 {
		choice.Logprobs = synthesizeLogprobs(text, *req.Logprobs)
	}

	return choice
}

// completionFinishReason applies the finish-reason policy: a stop
// sequence appearing in the text wins, then the length cap, then stop.
func completionFinishReason(req *domain.CompletionRequest, text string) string {
	if containsStopSequence(text, req.Stop) {
		return domain.FinishReasonStop
	}

	if EstimateTokens(text) >= req.MaxOutputTokens() {
		return domain.FinishReasonLength
	}

	return domain.FinishReasonStop
}

func containsStopSequence(text string, stop *domain.StopSequences) bool {
	for _, seq := range stop.Values() {
		if seq != "" && strings.Contains(text, seq) {
			return true
		}
	}
	return false
}
