package engine

import "strings"

// Canned completion text, pooled per category. The pools are fixed
// static tables; selection within a pool is keyed off a hash of the
// prompt so the same prompt always yields the same text.
var completionPools = map[Category][]string{
	CategoryGreeting: {
		" Hello! How can I help you today?",
		" Hi there! Nice to meet you.",
		" Hello! I'm here to assist you.",
		" Hi! What would you like to know?",
		" Hello! Feel free to ask me anything.",
	},
	CategoryQuestion: {
		" This is a complex topic that involves multiple interconnected concepts. Let me break it down into simpler parts for better understanding.",
		" The fundamental principle behind this is based on well-established scientific theories that have been validated through extensive research.",
		" To understand this properly, we need to consider the historical context and how various factors have influenced its development over time.",
		" This concept can be explained through a practical example that demonstrates its real-world applications and benefits.",
	},
	CategoryCode: {
		"\n```rust\nfn example() {\n    println!(\"Hello, world!\");\n}\n```",
		"\n```python\ndef example():\n    print(\"Hello, world!\")\n    return True\n```",
		"\n```javascript\nfunction example() {\n    console.log(\"Hello, world!\");\n    return true;\n}\n```",
		"\n```java\npublic void example() {\n    System.out.println(\"Hello, world!\");\n}\n```",
	},
	CategoryMath: {
		" The calculation works out step by step: identify the operands, apply the operation, and verify the result against a rough estimate.",
		" Working through the numbers carefully, the answer follows directly from the standard rules of arithmetic.",
		" Breaking the problem into smaller calculations makes the arithmetic straightforward to verify.",
	},
	CategoryCreative: {
		" Once upon a time, in a land far away, there lived a curious explorer who discovered amazing secrets hidden in ancient ruins.",
		" The story begins on a rainy Tuesday morning when everything seemed ordinary, but little did anyone know that extraordinary events were about to unfold.",
		" In the bustling city, among the towering skyscrapers and busy streets, a small coffee shop held the key to an incredible adventure.",
		" The old library contained more than just books - it held mysteries that had been waiting centuries to be uncovered by the right person.",
	},
	CategoryDefault: {
		" This is an interesting topic that deserves careful consideration and thoughtful analysis.",
		" There are several important factors to consider when approaching this subject matter.",
		" The key to understanding this lies in examining the underlying principles and their practical applications.",
		" This represents a fascinating area of study with many opportunities for further exploration.",
		" The complexity of this subject requires a multifaceted approach to fully appreciate its nuances.",
	},
}

// Canned chat replies, pooled per category. The question category is
// rendered separately because its reply varies with the question word.
var chatPools = map[Category][]string{
	CategoryGreeting: {
		"Hello! How can I assist you today?",
		"Hi there! What can I help you with?",
		"Hey! I'm here to help. What do you need?",
		"Hello! I'm ready to assist you with any questions or tasks you have.",
	},
	CategoryCode: {
		"I can help you with programming! Here's a solution:\n\n```python\ndef example_function():\n    return \"Hello, World!\"\n```\n\nThis code demonstrates a basic function that returns a greeting.",
	},
	CategoryMath: {
		"I can help with mathematical calculations. For example, if you're looking to solve an equation or perform calculations, I can guide you through the process step by step.",
	},
	CategoryCreative: {
		"I'd be delighted to help with creative writing! Here's a short example:\n\nOnce upon a time, in a world where artificial intelligence and human creativity merged seamlessly, there lived a helpful assistant who loved to tell stories...",
	},
}

const (
	chatAdvancedReply = "As an advanced AI model, I can provide detailed, nuanced responses to complex questions. I'll analyze your request from multiple angles and provide comprehensive insights."
	chatGeneralReply  = "I'm here to help! Please feel free to ask me anything, and I'll do my best to provide you with accurate and helpful information."
	chatFallbackReply = "Hello! I'm an AI assistant. How can I help you today?"
)

// RenderCompletion produces canned completion text for a category.
// The canned body is truncated to the token budget first; when echo is
// set the original prompt is then prepended verbatim.
func RenderCompletion(category Category, prompt string, maxTokens int, echo bool) string {
	pool := completionPools[category]
	if len(pool) == 0 {
		pool = completionPools[CategoryDefault]
	}

	text := pool[contentHash(prompt)%len(pool)]
	text = truncateToTokens(text, maxTokens)

	if echo {
		return prompt + text
	}
	return text
}

// RenderChatReply produces a canned assistant reply for the most
// recent user message. An empty userContent (no user message in the
// conversation) yields the fallback reply; an unmatched category falls
// through to a model-tier default.
func RenderChatReply(category Category, userContent, model string) string {
	if userContent == "" {
		return chatFallbackReply
	}

	if category == CategoryQuestion {
		return questionReply(userContent)
	}

	if pool, ok := chatPools[category]; ok {
		return pool[contentHash(userContent)%len(pool)]
	}

	if strings.Contains(model, "gpt-4") {
		return chatAdvancedReply
	}
	return chatGeneralReply
}

func questionReply(userContent string) string {
	lower := strings.ToLower(userContent)
	switch {
	case strings.Contains(lower, "what"):
		return "That's an interesting question. Let me provide you with a comprehensive answer based on my knowledge."
	case strings.Contains(lower, "how"):
		return "Here's how you can approach this: I'll break it down into clear, actionable steps."
	case strings.Contains(lower, "why"):
		return "There are several reasons for this. Let me explain the key factors involved."
	default:
		return "I'd be happy to help answer your question. Let me provide you with detailed information."
	}
}

// truncateToTokens caps text at roughly maxTokens worth of characters
// (4 chars per token), preferring to cut at a word boundary.
func truncateToTokens(text string, maxTokens int) string {
	maxChars := maxTokens * charsPerToken
	if len(text) <= maxChars {
		return text
	}

	truncated := text[:maxChars]
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > 0 {
		return truncated[:lastSpace]
	}
	return truncated
}
