package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Category
	}{
		{name: "greeting", text: "hello there", expected: CategoryGreeting},
		{name: "greeting uppercase", text: "HELLO", expected: CategoryGreeting},
		{name: "question mark", text: "is the sky blue?", expected: CategoryQuestion},
		{name: "question word", text: "what makes planes fly", expected: CategoryQuestion},
		{name: "code", text: "debug my function", expected: CategoryCode},
		{name: "math", text: "add up these numbers", expected: CategoryMath},
		{name: "creative", text: "tell me a story", expected: CategoryCreative},
		{name: "no match", text: "lorem ipsum dolor", expected: CategoryDefault},
		{name: "empty", text: "", expected: CategoryDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Classify(tt.text))
		})
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	// Greeting outranks question, question outranks creative.
	require.Equal(t, CategoryGreeting, Classify("hello, what can you do?"))
	require.Equal(t, CategoryQuestion, Classify("why does the story end that way"))
}

func TestTriggersToolCall(t *testing.T) {
	require.True(t, TriggersToolCall("What's the weather in SF?"))
	require.True(t, TriggersToolCall("CALCULATE 2+2"))
	require.True(t, TriggersToolCall("what time is it"))
	require.False(t, TriggersToolCall("tell me a joke"))
	require.False(t, TriggersToolCall(""))
}

func TestContentHash_Stable(t *testing.T) {
	require.Equal(t, contentHash("hello"), contentHash("hello"))
	require.NotEqual(t, contentHash("hello"), contentHash("hellp"))
	require.Equal(t, 0, contentHash(""))
}
