package engine

import (
	"strings"

	"github.com/davidbz/mirage/internal/domain"
)

// synthesizeLogprobs fabricates per-token log-probability annotations
// for up to count whitespace-delimited tokens of text. The numbers are
// structurally plausible (negative, longer words less likely) but
// carry no statistical meaning.
func synthesizeLogprobs(text string, count int) *domain.Logprobs {
	words := strings.Fields(text)
	if len(words) > count {
		words = words[:count]
	}

	logprobs := &domain.Logprobs{
		Tokens:        make([]string, 0, len(words)),
		TokenLogprobs: make([]float64, 0, len(words)),
		TopLogprobs:   make([]map[string]float64, 0, len(words)),
		TextOffset:    make([]int, 0, len(words)),
	}

	offset := 0
	for _, word := range words {
		logprob := -0.1 - float64(len(word))*0.05

		top := map[string]float64{word: logprob}
		if len(word) > 3 {
			top[word+"s"] = logprob - 0.5
			top["un"+word] = logprob - 1.0
		}

		logprobs.Tokens = append(logprobs.Tokens, word)
		logprobs.TokenLogprobs = append(logprobs.TokenLogprobs, logprob)
		logprobs.TopLogprobs = append(logprobs.TopLogprobs, top)
		logprobs.TextOffset = append(logprobs.TextOffset, offset)

		offset += len(word) + 1
	}

	return logprobs
}
