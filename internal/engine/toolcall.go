package engine

import (
	"strings"

	"github.com/davidbz/mirage/internal/domain"
)

// argumentRules map function-name keywords to canned argument
// payloads, evaluated top to bottom. Unmatched names fall back to an
// empty object.
var argumentRules = []struct {
	keyword   string
	arguments string
}{
	{"weather", `{"location": "San Francisco, CA"}`},
	{"search", `{"query": "artificial intelligence"}`},
	{"calculate", `{"expression": "2 + 2"}`},
	{"time", `{"timezone": "UTC"}`},
}

// SynthesizeToolCall emits an invocation of the declared tool with
// plausible canned arguments. Callers always pass the first declared
// tool; no ranking happens here.
func SynthesizeToolCall(tool domain.Tool) domain.ToolCall {
	return domain.ToolCall{
		ID:   NewToolCallID(),
		Type: "function",
		Function: domain.FunctionCall{
			Name:      tool.Function.Name,
			Arguments: FunctionArguments(tool.Function.Name),
		},
	}
}

// FunctionArguments picks canned arguments by substring-matching the
// function name against the keyword rules.
func FunctionArguments(functionName string) string {
	lower := strings.ToLower(functionName)
	for _, rule := range argumentRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.arguments
		}
	}
	return "{}"
}
