package engine

import (
	"strings"

	"github.com/davidbz/mirage/internal/domain"
)

// GenerateEmbeddings assembles a full embedding response for a
// validated request: one deterministically derived unit vector per
// input record, indexed in input order.
func GenerateEmbeddings(req *domain.EmbeddingRequest) *domain.EmbeddingResponse {
	records := req.Input.Records()
	dimensions := EmbeddingDimensions(req.Model, req.Dimensions)

	data := make([]domain.EmbeddingData, 0, len(records))
	for i, record := range records {
		data = append(data, domain.EmbeddingData{
			Object:    domain.ObjectEmbedding,
			Embedding: EmbedText(record, dimensions),
			Index:     i,
		})
	}

	promptTokens := EstimateEmbeddingTokens(strings.Join(records, " "))

	return &domain.EmbeddingResponse{
		Object: domain.ObjectList,
		Data:   data,
		Model:  req.Model,
		Usage:  domain.NewEmbeddingUsage(promptTokens),
	}
}
