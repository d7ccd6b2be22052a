// Package domain defines the wire-level request and response value
// objects for the mock OpenAI API, including the union-shaped fields
// (prompt, stop, embedding input, tool choice) and the validation
// rules applied before a request reaches the synthesis engine.
package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Validation bounds.
const (
	maxTokensLimit  = 4096
	maxChoices      = 20
	maxLogprobs     = 5
	maxBestOf       = 20
	maxDimensions   = 3072
	penaltyAbsLimit = 2.0
	temperatureMax  = 2.0
)

// PromptInput accepts either a JSON string or an array of strings.
type PromptInput struct {
	values  []string
	isArray bool
}

// NewPrompt builds a single-string prompt input.
func NewPrompt(text string) PromptInput {
	return PromptInput{values: []string{text}, isArray: false}
}

// NewPromptArray builds an array-form prompt input.
func NewPromptArray(texts []string) PromptInput {
	return PromptInput{values: texts, isArray: true}
}

// UnmarshalJSON decodes a string or an array of strings.
func (p *PromptInput) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		p.values = []string{single}
		p.isArray = false
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		p.values = many
		p.isArray = true
		return nil
	}

	return errors.New("prompt must be a string or an array of strings")
}

// MarshalJSON re-encodes the prompt in its original shape.
func (p PromptInput) MarshalJSON() ([]byte, error) {
	if p.isArray {
		return json.Marshal(p.values)
	}
	return json.Marshal(p.First())
}

// Strings returns all prompt entries.
func (p PromptInput) Strings() []string {
	return p.values
}

// First returns the first prompt entry, or "" when empty.
func (p PromptInput) First() string {
	if len(p.values) == 0 {
		return ""
	}
	return p.values[0]
}

// Join concatenates all prompt entries with a single space.
func (p PromptInput) Join() string {
	return strings.Join(p.values, " ")
}

// StopSequences accepts either a JSON string or an array of strings.
type StopSequences struct {
	values  []string
	isArray bool
}

// NewStopSequences builds stop sequences from a list.
func NewStopSequences(values ...string) *StopSequences {
	return &StopSequences{values: values, isArray: len(values) != 1}
}

// UnmarshalJSON decodes a string or an array of strings.
func (s *StopSequences) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		s.values = []string{single}
		s.isArray = false
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		s.values = many
		s.isArray = true
		return nil
	}

	return errors.New("stop must be a string or an array of strings")
}

// MarshalJSON re-encodes the stop sequences in their original shape.
func (s StopSequences) MarshalJSON() ([]byte, error) {
	if s.isArray {
		return json.Marshal(s.values)
	}
	if len(s.values) == 0 {
		return json.Marshal([]string{})
	}
	return json.Marshal(s.values[0])
}

// Values returns all stop sequences.
func (s *StopSequences) Values() []string {
	if s == nil {
		return nil
	}
	return s.values
}

// EmbeddingInput accepts a string, an array of strings, an array of
// integers (a single tokenized input), or an array of integer arrays.
type EmbeddingInput struct {
	texts   []string
	intRows [][]int64
	kind    embeddingInputKind
}

type embeddingInputKind int

const (
	embeddingInputString embeddingInputKind = iota
	embeddingInputStringArray
	embeddingInputIntArray
	embeddingInputIntMatrix
)

// NewEmbeddingText builds a single-string embedding input.
func NewEmbeddingText(text string) EmbeddingInput {
	return EmbeddingInput{texts: []string{text}, kind: embeddingInputString}
}

// NewEmbeddingTexts builds a string-array embedding input.
func NewEmbeddingTexts(texts []string) EmbeddingInput {
	return EmbeddingInput{texts: texts, kind: embeddingInputStringArray}
}

// UnmarshalJSON decodes any of the four accepted input shapes.
func (e *EmbeddingInput) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		e.texts = []string{single}
		e.kind = embeddingInputString
		return nil
	}

	var texts []string
	if err := json.Unmarshal(data, &texts); err == nil {
		e.texts = texts
		e.kind = embeddingInputStringArray
		return nil
	}

	var ints []int64
	if err := json.Unmarshal(data, &ints); err == nil {
		e.intRows = [][]int64{ints}
		e.kind = embeddingInputIntArray
		return nil
	}

	var matrix [][]int64
	if err := json.Unmarshal(data, &matrix); err == nil {
		e.intRows = matrix
		e.kind = embeddingInputIntMatrix
		return nil
	}

	return errors.New("input must be a string, an array of strings, an array of integers, or an array of integer arrays")
}

// MarshalJSON re-encodes the input in its original shape.
func (e EmbeddingInput) MarshalJSON() ([]byte, error) {
	switch e.kind {
	case embeddingInputString:
		if len(e.texts) == 0 {
			return json.Marshal("")
		}
		return json.Marshal(e.texts[0])
	case embeddingInputStringArray:
		return json.Marshal(e.texts)
	case embeddingInputIntArray:
		if len(e.intRows) == 0 {
			return json.Marshal([]int64{})
		}
		return json.Marshal(e.intRows[0])
	case embeddingInputIntMatrix:
		return json.Marshal(e.intRows)
	}
	return nil, errors.New("unknown embedding input kind")
}

// Records converts the input into one textual record per embedding to
// generate. Integer inputs become their bracketed list form so that
// token arrays still hash to stable vectors.
func (e EmbeddingInput) Records() []string {
	switch e.kind {
	case embeddingInputString, embeddingInputStringArray:
		return e.texts
	case embeddingInputIntArray, embeddingInputIntMatrix:
		records := make([]string, 0, len(e.intRows))
		for _, row := range e.intRows {
			records = append(records, formatIntRow(row))
		}
		return records
	}
	return nil
}

func formatIntRow(row []int64) string {
	parts := make([]string, 0, len(row))
	for _, v := range row {
		parts = append(parts, fmt.Sprintf("%d", v))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// validate reports whether the input is non-empty.
func (e EmbeddingInput) validate() error {
	switch e.kind {
	case embeddingInputString:
		if len(e.texts) == 0 || strings.TrimSpace(e.texts[0]) == "" {
			return errors.New("input cannot be empty")
		}
	case embeddingInputStringArray:
		if len(e.texts) == 0 {
			return errors.New("input array cannot be empty")
		}
		for _, t := range e.texts {
			if strings.TrimSpace(t) == "" {
				return errors.New("input array cannot contain empty strings")
			}
		}
	case embeddingInputIntArray, embeddingInputIntMatrix:
		if len(e.intRows) == 0 {
			return errors.New("input array cannot be empty")
		}
		for _, row := range e.intRows {
			if len(row) == 0 {
				return errors.New("input array cannot contain empty arrays")
			}
		}
	}
	return nil
}

// ToolChoice accepts the string forms ("none", "auto", "required") or
// a named-function object. The raw JSON is retained; the engine only
// cares whether a tool-selection policy was supplied at all.
type ToolChoice struct {
	raw json.RawMessage
}

// NewToolChoice builds a tool choice from its raw JSON form.
func NewToolChoice(raw string) *ToolChoice {
	return &ToolChoice{raw: json.RawMessage(raw)}
}

// UnmarshalJSON stores the raw value after shape-checking it.
func (t *ToolChoice) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		t.raw = nil
		return nil
	}
	if trimmed[0] != '"' && trimmed[0] != '{' {
		return errors.New("tool_choice must be a string or an object")
	}
	t.raw = append(t.raw[:0], data...)
	return nil
}

// MarshalJSON re-encodes the original value.
func (t ToolChoice) MarshalJSON() ([]byte, error) {
	if len(t.raw) == 0 {
		return []byte("null"), nil
	}
	return t.raw, nil
}

// IsSet reports whether a tool-selection policy was supplied.
func (t *ToolChoice) IsSet() bool {
	return t != nil && len(t.raw) > 0
}

// Tool declares a callable function in a chat request.
type Tool struct {
	Type     string             `json:"type"`
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition describes a declared function's schema.
type FunctionDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// ToolCall is a synthesized function invocation. The same shape is
// used in assistant request messages and in generated responses.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the invoked function name and its JSON-encoded
// arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Message is one entry in a chat conversation.
type Message struct {
	Role       string     `json:"role"`
	Content    *string    `json:"content,omitempty"`
	Name       *string    `json:"name,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID *string    `json:"tool_call_id,omitempty"`
}

// Validate checks per-role content requirements.
func (m *Message) Validate() error {
	switch m.Role {
	case RoleSystem, RoleUser:
		if m.Content == nil || strings.TrimSpace(*m.Content) == "" {
			return errors.New("content cannot be empty for system and user messages")
		}
	case RoleAssistant:
		if m.Content == nil && len(m.ToolCalls) == 0 {
			return errors.New("assistant messages must have either content or tool_calls")
		}
	case RoleTool:
		if m.Content == nil || strings.TrimSpace(*m.Content) == "" {
			return errors.New("tool messages must have content")
		}
		if m.ToolCallID == nil {
			return errors.New("tool messages must have tool_call_id")
		}
	default:
		return fmt.Errorf("unknown role: %s", m.Role)
	}
	return nil
}

// CompletionRequest is the body of POST /v1/completions.
type CompletionRequest struct {
	Model            string             `json:"model"`
	Prompt           PromptInput        `json:"prompt"`
	Suffix           *string            `json:"suffix,omitempty"`
	MaxTokens        *int               `json:"max_tokens,omitempty"`
	Temperature      *float64           `json:"temperature,omitempty"`
	TopP             *float64           `json:"top_p,omitempty"`
	N                *int               `json:"n,omitempty"`
	Stream           *bool              `json:"stream,omitempty"`
	Logprobs         *int               `json:"logprobs,omitempty"`
	Echo             *bool              `json:"echo,omitempty"`
	Stop             *StopSequences     `json:"stop,omitempty"`
	PresencePenalty  *float64           `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64           `json:"frequency_penalty,omitempty"`
	BestOf           *int               `json:"best_of,omitempty"`
	LogitBias        map[string]float64 `json:"logit_bias,omitempty"`
	User             *string            `json:"user,omitempty"`
}

// Validate applies the upstream validation contract for completion
// requests. The synthesis engine assumes these invariants hold.
func (r *CompletionRequest) Validate() error {
	if strings.TrimSpace(r.Model) == "" {
		return errors.New("model cannot be empty")
	}

	prompts := r.Prompt.Strings()
	if len(prompts) == 0 {
		return errors.New("prompt cannot be empty")
	}
	for _, p := range prompts {
		if strings.TrimSpace(p) == "" {
			return errors.New("prompt cannot be empty")
		}
	}

	if r.MaxTokens != nil && (*r.MaxTokens < 1 || *r.MaxTokens > maxTokensLimit) {
		return fmt.Errorf("max_tokens must be between 1 and %d", maxTokensLimit)
	}

	if r.Temperature != nil && (*r.Temperature < 0 || *r.Temperature > temperatureMax) {
		return errors.New("temperature must be between 0.0 and 2.0")
	}

	if r.TopP != nil && (*r.TopP < 0 || *r.TopP > 1) {
		return errors.New("top_p must be between 0.0 and 1.0")
	}

	if r.N != nil && (*r.N < 1 || *r.N > maxChoices) {
		return fmt.Errorf("n must be between 1 and %d", maxChoices)
	}

	if r.Logprobs != nil && (*r.Logprobs < 0 || *r.Logprobs > maxLogprobs) {
		return fmt.Errorf("logprobs cannot exceed %d", maxLogprobs)
	}

	if err := validatePenalty("presence_penalty", r.PresencePenalty); err != nil {
		return err
	}
	if err := validatePenalty("frequency_penalty", r.FrequencyPenalty); err != nil {
		return err
	}

	if r.BestOf != nil {
		n := 1
		if r.N != nil {
			n = *r.N
		}
		if *r.BestOf < n {
			return errors.New("best_of must be greater than or equal to n")
		}
		if *r.BestOf > maxBestOf {
			return fmt.Errorf("best_of cannot exceed %d", maxBestOf)
		}
	}

	return nil
}

// ChoiceCount returns the requested number of choices, defaulting to 1.
func (r *CompletionRequest) ChoiceCount() int {
	if r.N == nil {
		return 1
	}
	return *r.N
}

// MaxOutputTokens returns max_tokens, defaulting to 16 as the upstream
// API does for completions.
func (r *CompletionRequest) MaxOutputTokens() int {
	if r.MaxTokens == nil {
		return 16
	}
	return *r.MaxTokens
}

// EchoPrompt reports whether the prompt should be echoed back.
func (r *CompletionRequest) EchoPrompt() bool {
	return r.Echo != nil && *r.Echo
}

// ChatRequest is the body of POST /v1/chat/completions.
type ChatRequest struct {
	Model            string             `json:"model"`
	Messages         []Message          `json:"messages"`
	Temperature      *float64           `json:"temperature,omitempty"`
	TopP             *float64           `json:"top_p,omitempty"`
	N                *int               `json:"n,omitempty"`
	Stream           *bool              `json:"stream,omitempty"`
	Stop             *StopSequences     `json:"stop,omitempty"`
	MaxTokens        *int               `json:"max_tokens,omitempty"`
	PresencePenalty  *float64           `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float64           `json:"frequency_penalty,omitempty"`
	LogitBias        map[string]float64 `json:"logit_bias,omitempty"`
	User             *string            `json:"user,omitempty"`
	Tools            []Tool             `json:"tools,omitempty"`
	ToolChoice       *ToolChoice        `json:"tool_choice,omitempty"`
}

// Validate applies the upstream validation contract for chat requests.
func (r *ChatRequest) Validate() error {
	if strings.TrimSpace(r.Model) == "" {
		return errors.New("model cannot be empty")
	}

	if len(r.Messages) == 0 {
		return errors.New("messages array cannot be empty")
	}

	if r.Temperature != nil && (*r.Temperature < 0 || *r.Temperature > temperatureMax) {
		return errors.New("temperature must be between 0 and 2")
	}

	if r.TopP != nil && (*r.TopP < 0 || *r.TopP > 1) {
		return errors.New("top_p must be between 0 and 1")
	}

	if r.N != nil && (*r.N < 1 || *r.N > maxChoices) {
		return fmt.Errorf("n must be between 1 and %d", maxChoices)
	}

	if r.MaxTokens != nil && *r.MaxTokens < 1 {
		return errors.New("max_tokens must be greater than 0")
	}

	if err := validatePenalty("presence_penalty", r.PresencePenalty); err != nil {
		return err
	}
	if err := validatePenalty("frequency_penalty", r.FrequencyPenalty); err != nil {
		return err
	}

	for i := range r.Messages {
		if err := r.Messages[i].Validate(); err != nil {
			return fmt.Errorf("invalid message at index %d: %w", i, err)
		}
	}

	return nil
}

// ChoiceCount returns the requested number of choices, defaulting to 1.
func (r *ChatRequest) ChoiceCount() int {
	if r.N == nil {
		return 1
	}
	return *r.N
}

// LastUserContent returns the content of the most recent user message,
// or "" when the conversation has none.
func (r *ChatRequest) LastUserContent() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		msg := r.Messages[i]
		if msg.Role == RoleUser && msg.Content != nil {
			return *msg.Content
		}
	}
	return ""
}

// EmbeddingRequest is the body of POST /v1/embeddings.
type EmbeddingRequest struct {
	Model          string         `json:"model"`
	Input          EmbeddingInput `json:"input"`
	EncodingFormat *string        `json:"encoding_format,omitempty"`
	Dimensions     *int           `json:"dimensions,omitempty"`
	User           *string        `json:"user,omitempty"`
}

// Validate applies the upstream validation contract for embedding
// requests.
func (r *EmbeddingRequest) Validate() error {
	if strings.TrimSpace(r.Model) == "" {
		return errors.New("model cannot be empty")
	}

	if err := r.Input.validate(); err != nil {
		return err
	}

	if r.EncodingFormat != nil {
		switch *r.EncodingFormat {
		case "float", "base64":
		default:
			return errors.New("encoding_format must be 'float' or 'base64'")
		}
	}

	if r.Dimensions != nil && (*r.Dimensions < 1 || *r.Dimensions > maxDimensions) {
		return fmt.Errorf("dimensions must be between 1 and %d", maxDimensions)
	}

	return nil
}

func validatePenalty(name string, value *float64) error {
	if value != nil && (*value < -penaltyAbsLimit || *value > penaltyAbsLimit) {
		return fmt.Errorf("%s must be between -2.0 and 2.0", name)
	}
	return nil
}
