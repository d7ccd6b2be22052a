// Package metrics accumulates per-model token usage counters so test
// suites can inspect what their code asked the mock backend for.
package metrics

import (
	"context"

	"github.com/davidbz/mirage/internal/domain"
)

// Request kinds tracked by recorders.
const (
	KindCompletion = "completion"
	KindChat       = "chat"
	KindEmbedding  = "embedding"
)

// Recorder accumulates usage counters.
type Recorder interface {
	// Record adds one request's usage to the per-model counters.
	Record(ctx context.Context, kind, model string, usage domain.Usage) error
}

// NopRecorder discards all usage; the default when no metrics backend
// is configured.
type NopRecorder struct{}

// NewNopRecorder creates a no-op recorder.
func NewNopRecorder() *NopRecorder {
	return &NopRecorder{}
}

// Record discards the usage.
func (*NopRecorder) Record(_ context.Context, _, _ string, _ domain.Usage) error {
	return nil
}
