package domain

// Response object discriminators.
const (
	ObjectTextCompletion = "text_completion"
	ObjectChatCompletion = "chat.completion"
	ObjectList           = "list"
	ObjectEmbedding      = "embedding"
	ObjectModel          = "model"
)

// Finish reasons.
const (
	FinishReasonStop      = "stop"
	FinishReasonLength    = "length"
	FinishReasonToolCalls = "tool_calls"
)

// Usage tracks token consumption for a response. total_tokens is
// always the sum of the two addends; construct via NewUsage.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// NewUsage builds a usage record with the total invariant enforced.
func NewUsage(promptTokens, completionTokens int) Usage {
	return Usage{
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
	}
}

// EmbeddingUsage tracks token consumption for an embedding response,
// which has no completion side on the wire.
type EmbeddingUsage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// NewEmbeddingUsage builds an embedding usage record.
func NewEmbeddingUsage(promptTokens int) EmbeddingUsage {
	return EmbeddingUsage{
		PromptTokens: promptTokens,
		TotalTokens:  promptTokens,
	}
}

// Logprobs carries synthetic per-token log-probability annotations for
// a completion choice. The values are structurally realistic, not real
// probabilities.
type Logprobs struct {
	Tokens        []string             `json:"tokens"`
	TokenLogprobs []float64            `json:"token_logprobs"`
	TopLogprobs   []map[string]float64 `json:"top_logprobs"`
	TextOffset    []int                `json:"text_offset"`
}

// CompletionChoice is one generated alternative in a completion
// response.
type CompletionChoice struct {
	Text         string    `json:"text"`
	Index        int       `json:"index"`
	Logprobs     *Logprobs `json:"logprobs"`
	FinishReason string    `json:"finish_reason"`
}

// CompletionResponse is the envelope for POST /v1/completions.
type CompletionResponse struct {
	ID      string             `json:"id"`
	Object  string             `json:"object"`
	Created int64              `json:"created"`
	Model   string             `json:"model"`
	Choices []CompletionChoice `json:"choices"`
	Usage   Usage              `json:"usage"`
}

// AssistantMessage is the generated message inside a chat choice.
// Content is null when the choice carries tool calls instead.
type AssistantMessage struct {
	Role      string     `json:"role"`
	Content   *string    `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// ChatChoice is one generated alternative in a chat completion
// response.
type ChatChoice struct {
	Index        int              `json:"index"`
	Message      AssistantMessage `json:"message"`
	FinishReason string           `json:"finish_reason"`
}

// ChatResponse is the envelope for POST /v1/chat/completions.
type ChatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   Usage        `json:"usage"`
}

// EmbeddingData is one generated vector in an embedding response.
type EmbeddingData struct {
	Object    string    `json:"object"`
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}

// EmbeddingResponse is the envelope for POST /v1/embeddings.
type EmbeddingResponse struct {
	Object string          `json:"object"`
	Data   []EmbeddingData `json:"data"`
	Model  string          `json:"model"`
	Usage  EmbeddingUsage  `json:"usage"`
}

// Model is one entry in the GET /v1/models listing.
type Model struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

// ModelList is the envelope for GET /v1/models.
type ModelList struct {
	Object string  `json:"object"`
	Data   []Model `json:"data"`
}

// ErrorDetail is the inner error object of the OpenAI error envelope.
type ErrorDetail struct {
	Message string  `json:"message"`
	Type    string  `json:"type"`
	Param   *string `json:"param"`
	Code    *string `json:"code"`
}

// ErrorResponse is the OpenAI-style error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// NewInvalidRequestError builds a 400-class error envelope.
func NewInvalidRequestError(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{
		Message: message,
		Type:    "invalid_request_error",
	}}
}

// NewAuthenticationError builds a 401-class error envelope.
func NewAuthenticationError(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{
		Message: message,
		Type:    "invalid_request_error",
		Code:    stringPtr("invalid_api_key"),
	}}
}

// NewServerError builds a 500-class error envelope.
func NewServerError(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{
		Message: message,
		Type:    "server_error",
	}}
}

func stringPtr(s string) *string {
	return &s
}
