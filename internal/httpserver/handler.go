// Package httpserver exposes the mock API over HTTP.
package httpserver

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/davidbz/mirage/internal/catalog"
	"github.com/davidbz/mirage/internal/domain"
	"github.com/davidbz/mirage/internal/engine"
	"github.com/davidbz/mirage/internal/metrics"
	"github.com/davidbz/mirage/internal/observability"
	"go.uber.org/zap"
)

const serviceVersion = "1.0.0"

// Handler handles HTTP requests.
type Handler struct {
	catalog  *catalog.Catalog
	recorder metrics.Recorder
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(modelCatalog *catalog.Catalog, recorder metrics.Recorder) *Handler {
	return &Handler{
		catalog:  modelCatalog,
		recorder: recorder,
	}
}

// HandleCompletion processes text completion requests.
func (h *Handler) HandleCompletion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req domain.CompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, domain.NewInvalidRequestError("invalid request body: "+err.Error()))
		return
	}

	ctx = observability.WithModel(ctx, req.Model)
	logger := observability.FromContext(ctx)

	if err := req.Validate(); err != nil {
		logger.Warn("completion request rejected", zap.Error(err))
		writeError(ctx, w, http.StatusBadRequest, domain.NewInvalidRequestError(err.Error()))
		return
	}

	response := engine.GenerateCompletion(&req)

	logger.Info("completion generated",
		zap.Int("choices", len(response.Choices)),
		zap.Int("total_tokens", response.Usage.TotalTokens),
	)

	h.recordUsage(ctx, metrics.KindCompletion, req.Model, response.Usage)
	writeJSON(ctx, w, http.StatusOK, response)
}

// HandleChatCompletion processes chat completion requests.
func (h *Handler) HandleChatCompletion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, domain.NewInvalidRequestError("invalid request body: "+err.Error()))
		return
	}

	ctx = observability.WithModel(ctx, req.Model)
	logger := observability.FromContext(ctx)

	if err := req.Validate(); err != nil {
		logger.Warn("chat request rejected", zap.Error(err))
		writeError(ctx, w, http.StatusBadRequest, domain.NewInvalidRequestError(err.Error()))
		return
	}

	response := engine.GenerateChatCompletion(&req)

	logger.Info("chat completion generated",
		zap.Int("choices", len(response.Choices)),
		zap.String("finish_reason", response.Choices[0].FinishReason),
		zap.Int("total_tokens", response.Usage.TotalTokens),
	)

	h.recordUsage(ctx, metrics.KindChat, req.Model, response.Usage)
	writeJSON(ctx, w, http.StatusOK, response)
}

// HandleEmbeddings processes embedding requests.
func (h *Handler) HandleEmbeddings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	var req domain.EmbeddingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, domain.NewInvalidRequestError("invalid request body: "+err.Error()))
		return
	}

	ctx = observability.WithModel(ctx, req.Model)
	logger := observability.FromContext(ctx)

	if err := req.Validate(); err != nil {
		logger.Warn("embedding request rejected", zap.Error(err))
		writeError(ctx, w, http.StatusBadRequest, domain.NewInvalidRequestError(err.Error()))
		return
	}

	response := engine.GenerateEmbeddings(&req)

	dims := 0
	if len(response.Data) > 0 {
		dims = len(response.Data[0].Embedding)
	}
	logger.Info("embeddings generated",
		zap.Int("vectors", len(response.Data)),
		zap.Int("dimensions", dims),
		zap.Int("total_tokens", response.Usage.TotalTokens),
	)

	h.recordUsage(ctx, metrics.KindEmbedding, req.Model, domain.Usage{
		PromptTokens: response.Usage.PromptTokens,
		TotalTokens:  response.Usage.TotalTokens,
	})
	writeJSON(ctx, w, http.StatusOK, response)
}

// HandleModels lists the advertised models.
func (h *Handler) HandleModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, h.catalog.List(r.Context()))
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"service": "mirage",
		"version": serviceVersion,
		"endpoints": []string{
			"/v1/completions",
			"/v1/chat/completions",
			"/v1/embeddings",
		},
	})
}

// HandleRoot serves the index page describing the API surface.
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(r.Context(), w, http.StatusNotFound, domain.NewInvalidRequestError("unknown endpoint: "+r.URL.Path))
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, map[string]any{
		"message": "OpenAI Mock API Server",
		"version": serviceVersion,
		"endpoints": map[string]string{
			"completions":      "/v1/completions",
			"chat_completions": "/v1/chat/completions",
			"embeddings":       "/v1/embeddings",
			"health":           "/health",
		},
		"authentication": map[string]string{
			"type":   "Bearer",
			"header": "Authorization",
		},
		"documentation": "https://platform.openai.com/docs/api-reference",
	})
}

func (h *Handler) recordUsage(ctx context.Context, kind, model string, usage domain.Usage) {
	if err := h.recorder.Record(ctx, kind, model, usage); err != nil {
		observability.FromContext(ctx).Warn("failed to record usage", zap.Error(err))
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Status already written, just log.
		observability.FromContext(ctx).Error("failed to encode response", zap.Error(err))
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, body domain.ErrorResponse) {
	writeJSON(ctx, w, status, body)
}

func writeMethodNotAllowed(w http.ResponseWriter) {
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}
