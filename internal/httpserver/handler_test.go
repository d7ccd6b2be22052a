package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/mirage/internal/catalog"
	"github.com/davidbz/mirage/internal/config"
	"github.com/davidbz/mirage/internal/domain"
	"github.com/davidbz/mirage/internal/httpserver/middleware"
	"github.com/davidbz/mirage/internal/metrics"
)

const testAPIKey = "sk-mock-openai-api-key-12345"

// capturingRecorder remembers every usage record it receives.
type capturingRecorder struct {
	kinds  []string
	models []string
	usages []domain.Usage
}

func (c *capturingRecorder) Record(_ context.Context, kind, model string, usage domain.Usage) error {
	c.kinds = append(c.kinds, kind)
	c.models = append(c.models, model)
	c.usages = append(c.usages, usage)
	return nil
}

func newTestRoutes(recorder metrics.Recorder) http.Handler {
	if recorder == nil {
		recorder = metrics.NewNopRecorder()
	}

	handler := NewHandler(catalog.NewCatalog(), recorder)
	chain := middleware.BuildMiddlewareChain(
		config.CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		},
		config.AuthConfig{APIKey: testAPIKey},
	)
	server := NewServer(config.ServerConfig{}, handler, chain)

	return server.Routes()
}

func doJSON(t *testing.T, routes http.Handler, method, path, apiKey, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	w := httptest.NewRecorder()
	routes.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) domain.ErrorResponse {
	t.Helper()

	var errResp domain.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResp))
	return errResp
}

func TestCompletionEndpoint_Success(t *testing.T) {
	routes := newTestRoutes(nil)

	w := doJSON(t, routes, http.MethodPost, "/v1/completions", testAPIKey,
		`{"model": "text-davinci-003", "prompt": "Hello", "max_tokens": 50}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp domain.CompletionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.True(t, strings.HasPrefix(resp.ID, "cmpl-"))
	require.Equal(t, domain.ObjectTextCompletion, resp.Object)
	require.Len(t, resp.Choices, 1)
	require.NotEmpty(t, resp.Choices[0].Text)
	require.Equal(t, resp.Usage.PromptTokens+resp.Usage.CompletionTokens, resp.Usage.TotalTokens)
}

func TestCompletionEndpoint_Deterministic(t *testing.T) {
	routes := newTestRoutes(nil)
	body := `{"model": "text-davinci-003", "prompt": "tell me about go"}`

	var first, second domain.CompletionResponse
	w := doJSON(t, routes, http.MethodPost, "/v1/completions", testAPIKey, body)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&first))
	w = doJSON(t, routes, http.MethodPost, "/v1/completions", testAPIKey, body)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&second))

	require.Equal(t, first.Choices[0].Text, second.Choices[0].Text)
	require.Equal(t, first.Usage, second.Usage)
}

func TestCompletionEndpoint_BadJSON(t *testing.T) {
	routes := newTestRoutes(nil)

	w := doJSON(t, routes, http.MethodPost, "/v1/completions", testAPIKey, `{not json`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	errResp := decodeError(t, w)
	require.Equal(t, "invalid_request_error", errResp.Error.Type)
}

func TestCompletionEndpoint_ValidationFailure(t *testing.T) {
	routes := newTestRoutes(nil)

	w := doJSON(t, routes, http.MethodPost, "/v1/completions", testAPIKey,
		`{"model": "text-davinci-003", "prompt": "Hello", "n": 0}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	errResp := decodeError(t, w)
	require.Contains(t, errResp.Error.Message, "n must")
}

func TestCompletionEndpoint_MethodNotAllowed(t *testing.T) {
	routes := newTestRoutes(nil)

	w := doJSON(t, routes, http.MethodGet, "/v1/completions", testAPIKey, "")
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestAuth_MissingKey(t *testing.T) {
	routes := newTestRoutes(nil)

	w := doJSON(t, routes, http.MethodPost, "/v1/completions", "",
		`{"model": "text-davinci-003", "prompt": "Hello"}`)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	errResp := decodeError(t, w)
	require.Contains(t, errResp.Error.Message, "didn't provide an API key")
}

func TestAuth_WrongKey(t *testing.T) {
	routes := newTestRoutes(nil)

	w := doJSON(t, routes, http.MethodPost, "/v1/completions", "sk-wrong-key",
		`{"model": "text-davinci-003", "prompt": "Hello"}`)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	errResp := decodeError(t, w)
	require.Contains(t, errResp.Error.Message, "Incorrect API key")
}

func TestAuth_MalformedHeader(t *testing.T) {
	routes := newTestRoutes(nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/completions",
		strings.NewReader(`{"model": "m", "prompt": "p"}`))
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	w := httptest.NewRecorder()
	routes.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	errResp := decodeError(t, w)
	require.Contains(t, errResp.Error.Message, "Bearer authentication")
}

func TestChatEndpoint_Success(t *testing.T) {
	routes := newTestRoutes(nil)

	w := doJSON(t, routes, http.MethodPost, "/v1/chat/completions", testAPIKey,
		`{"model": "gpt-4", "messages": [{"role": "user", "content": "Hello"}]}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp domain.ChatResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.True(t, strings.HasPrefix(resp.ID, "chatcmpl-"))
	require.Equal(t, domain.ObjectChatCompletion, resp.Object)
	require.Equal(t, domain.RoleAssistant, resp.Choices[0].Message.Role)
	require.NotNil(t, resp.Choices[0].Message.Content)
}

func TestChatEndpoint_WeatherToolScenario(t *testing.T) {
	routes := newTestRoutes(nil)

	w := doJSON(t, routes, http.MethodPost, "/v1/chat/completions", testAPIKey, `{
		"model": "gpt-4",
		"messages": [{"role": "user", "content": "What's the weather in SF?"}],
		"tools": [{"type": "function", "function": {"name": "get_weather"}}],
		"tool_choice": "auto"
	}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp domain.ChatResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))

	choice := resp.Choices[0]
	require.Equal(t, domain.FinishReasonToolCalls, choice.FinishReason)
	require.Len(t, choice.Message.ToolCalls, 1)
	require.Contains(t, choice.Message.ToolCalls[0].Function.Arguments, "location")
}

func TestChatEndpoint_InvalidMessage(t *testing.T) {
	routes := newTestRoutes(nil)

	w := doJSON(t, routes, http.MethodPost, "/v1/chat/completions", testAPIKey,
		`{"model": "gpt-4", "messages": [{"role": "user"}]}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	errResp := decodeError(t, w)
	require.Contains(t, errResp.Error.Message, "content")
}

func TestEmbeddingsEndpoint_Success(t *testing.T) {
	routes := newTestRoutes(nil)

	w := doJSON(t, routes, http.MethodPost, "/v1/embeddings", testAPIKey,
		`{"model": "text-embedding-ada-002", "input": ["first", "second"]}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp domain.EmbeddingResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Data, 2)
	require.Len(t, resp.Data[0].Embedding, 1536)
	require.Equal(t, 1, resp.Data[1].Index)
}

func TestEmbeddingsEndpoint_DimensionsOverride(t *testing.T) {
	routes := newTestRoutes(nil)

	w := doJSON(t, routes, http.MethodPost, "/v1/embeddings", testAPIKey,
		`{"model": "text-embedding-3-large", "input": "hello", "dimensions": 32}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp domain.EmbeddingResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp.Data[0].Embedding, 32)
}

func TestModelsEndpoint_OpenWithoutAuth(t *testing.T) {
	routes := newTestRoutes(nil)

	w := doJSON(t, routes, http.MethodGet, "/v1/models", "", "")

	require.Equal(t, http.StatusOK, w.Code)

	var list domain.ModelList
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	require.Equal(t, domain.ObjectList, list.Object)

	ids := make([]string, 0, len(list.Data))
	for _, m := range list.Data {
		ids = append(ids, m.ID)
	}
	require.Contains(t, ids, "gpt-4")
	require.Contains(t, ids, "text-embedding-ada-002")
}

func TestHealthEndpoint(t *testing.T) {
	routes := newTestRoutes(nil)

	w := doJSON(t, routes, http.MethodGet, "/health", "", "")

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Equal(t, "healthy", body["status"])
}

func TestRootEndpoint(t *testing.T) {
	routes := newTestRoutes(nil)

	w := doJSON(t, routes, http.MethodGet, "/", "", "")

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Equal(t, "OpenAI Mock API Server", body["message"])
}

func TestUnknownPath_NotFound(t *testing.T) {
	routes := newTestRoutes(nil)

	w := doJSON(t, routes, http.MethodGet, "/nope", "", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTraceHeadersPresent(t *testing.T) {
	routes := newTestRoutes(nil)

	w := doJSON(t, routes, http.MethodGet, "/health", "", "")
	require.NotEmpty(t, w.Header().Get("X-Trace-Id"))
	require.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestCORSHeadersPresent(t *testing.T) {
	routes := newTestRoutes(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://example.com")

	w := httptest.NewRecorder()
	routes.ServeHTTP(w, req)

	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestUsageRecording(t *testing.T) {
	recorder := &capturingRecorder{}
	routes := newTestRoutes(recorder)

	doJSON(t, routes, http.MethodPost, "/v1/completions", testAPIKey,
		`{"model": "text-davinci-003", "prompt": "Hello"}`)
	doJSON(t, routes, http.MethodPost, "/v1/embeddings", testAPIKey,
		`{"model": "text-embedding-ada-002", "input": "hello"}`)

	require.Equal(t, []string{metrics.KindCompletion, metrics.KindEmbedding}, recorder.kinds)
	require.Equal(t, []string{"text-davinci-003", "text-embedding-ada-002"}, recorder.models)
	for _, usage := range recorder.usages {
		require.Positive(t, usage.TotalTokens)
	}
}
