package engine

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	completionIDHexLen = 24
	chatIDHexLen       = 29
	toolCallIDHexLen   = 24
)

// NewCompletionID generates a unique completion identifier.
func NewCompletionID() string {
	return "cmpl-" + uuidHex(completionIDHexLen)
}

// NewChatCompletionID generates a unique chat completion identifier.
func NewChatCompletionID() string {
	return "chatcmpl-" + uuidHex(chatIDHexLen)
}

// NewToolCallID generates a tool call identifier unique within the
// process. Uniqueness matters; unpredictability does not.
func NewToolCallID() string {
	return "call_" + uuidHex(toolCallIDHexLen)
}

// Timestamp returns the current Unix time for response envelopes.
// Determinism is scoped to content, never to IDs or timestamps.
func Timestamp() int64 {
	return time.Now().Unix()
}

func uuidHex(n int) string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return hex[:n]
}
