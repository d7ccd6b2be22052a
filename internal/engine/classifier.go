package engine

import "strings"

// Category is the response bucket assigned to an input prompt or
// conversation by the classifier.
type Category int

const (
	// CategoryDefault is the fall-through bucket; rendering resolves
	// it per request kind (model-tier default for chat, general pool
	// for completions).
	CategoryDefault Category = iota
	CategoryGreeting
	CategoryQuestion
	CategoryCode
	CategoryMath
	CategoryCreative
)

// String returns the category name for logging.
func (c Category) String() string {
	switch c {
	case CategoryGreeting:
		return "greeting"
	case CategoryQuestion:
		return "question"
	case CategoryCode:
		return "code"
	case CategoryMath:
		return "math"
	case CategoryCreative:
		return "creative"
	default:
		return "default"
	}
}

var (
	greetingKeywords = []string{"hello", "hi", "hey"}
	questionKeywords = []string{"?", "what", "how", "why"}
	codeKeywords     = []string{"code", "programming", "function"}
	mathKeywords     = []string{"calculate", "math", "number"}
	creativeKeywords = []string{"story", "creative", "write"}

	toolTriggerKeywords = []string{"weather", "search", "calculate", "time"}
)

// Classify assigns text to a response category. Keyword groups are
// tested case-insensitively in priority order; the first match wins.
func Classify(text string) Category {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, greetingKeywords):
		return CategoryGreeting
	case containsAny(lower, questionKeywords):
		return CategoryQuestion
	case containsAny(lower, codeKeywords):
		return CategoryCode
	case containsAny(lower, mathKeywords):
		return CategoryMath
	case containsAny(lower, creativeKeywords):
		return CategoryCreative
	default:
		return CategoryDefault
	}
}

// TriggersToolCall reports whether the text matches a tool-trigger
// keyword. Callers gate this on tool declarations actually being
// present in the request.
func TriggersToolCall(text string) bool {
	return containsAny(strings.ToLower(text), toolTriggerKeywords)
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// contentHash is a stable additive hash over runes, used to pick a
// canned response from a pool. Stable across runs so the same input
// always selects the same response.
func contentHash(text string) int {
	sum := 0
	for _, r := range text {
		sum += int(r)
	}
	return sum
}
