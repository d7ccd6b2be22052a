package engine

import "strings"

const charsPerToken = 4

// EstimateTokens approximates the token count of text using the usual
// 4-characters-per-token heuristic, plus a small remainder-based
// variation so counts don't look suspiciously round. Approximate by
// design; callers must not depend on exact values.
func EstimateTokens(text string) int {
	return EstimateTokensFromChars(len(text))
}

// EstimateTokensFromChars estimates tokens for an accumulated
// character count.
func EstimateTokensFromChars(chars int) int {
	base := chars / charsPerToken
	if base < 1 {
		base = 1
	}
	return base + chars%3
}

// EstimateEmbeddingTokens approximates the token count of embedding
// input. Embedding tokenization is typically more efficient than
// completion tokenization, so the blend of character and word counts
// is discounted.
func EstimateEmbeddingTokens(text string) int {
	base := len(text) / charsPerToken
	if base < 1 {
		base = 1
	}
	words := len(strings.Fields(text))
	return int(float64(base+words) * 0.8)
}
