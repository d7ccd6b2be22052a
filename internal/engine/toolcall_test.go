package engine

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/mirage/internal/domain"
)

func TestFunctionArguments(t *testing.T) {
	tests := []struct {
		name     string
		function string
		key      string
	}{
		{name: "weather", function: "get_weather", key: "location"},
		{name: "search", function: "web_search", key: "query"},
		{name: "calculate", function: "calculate_sum", key: "expression"},
		{name: "time", function: "get_time", key: "timezone"},
		{name: "case insensitive", function: "GET_WEATHER", key: "location"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := FunctionArguments(tt.function)

			var parsed map[string]string
			require.NoError(t, json.Unmarshal([]byte(args), &parsed))
			require.Contains(t, parsed, tt.key)
		})
	}
}

func TestFunctionArguments_UnknownFallsBackToEmptyObject(t *testing.T) {
	require.JSONEq(t, "{}", FunctionArguments("launch_rocket"))
}

func TestSynthesizeToolCall(t *testing.T) {
	tool := domain.Tool{
		Type: "function",
		Function: domain.FunctionDefinition{
			Name:        "get_weather",
			Description: "Get the current weather",
		},
	}

	call := SynthesizeToolCall(tool)

	require.True(t, strings.HasPrefix(call.ID, "call_"))
	require.Len(t, call.ID, len("call_")+24)
	require.Equal(t, "function", call.Type)
	require.Equal(t, "get_weather", call.Function.Name)
	require.Contains(t, call.Function.Arguments, "location")
}

func TestSynthesizeToolCall_UniqueIDs(t *testing.T) {
	tool := domain.Tool{Type: "function", Function: domain.FunctionDefinition{Name: "get_time"}}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := SynthesizeToolCall(tool).ID
		require.False(t, seen[id])
		seen[id] = true
	}
}
