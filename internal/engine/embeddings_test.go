package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/mirage/internal/domain"
)

func TestGenerateEmbeddings_SingleInput(t *testing.T) {
	req := &domain.EmbeddingRequest{
		Model: "text-embedding-ada-002",
		Input: domain.NewEmbeddingText("hello world"),
	}

	resp := GenerateEmbeddings(req)

	require.Equal(t, domain.ObjectList, resp.Object)
	require.Equal(t, "text-embedding-ada-002", resp.Model)

	require.Len(t, resp.Data, 1)
	require.Equal(t, domain.ObjectEmbedding, resp.Data[0].Object)
	require.Equal(t, 0, resp.Data[0].Index)
	require.Len(t, resp.Data[0].Embedding, 1536)

	require.Positive(t, resp.Usage.PromptTokens)
	require.Equal(t, resp.Usage.PromptTokens, resp.Usage.TotalTokens)
}

func TestGenerateEmbeddings_MultipleInputs(t *testing.T) {
	req := &domain.EmbeddingRequest{
		Model: "text-embedding-3-small",
		Input: domain.NewEmbeddingTexts([]string{"first", "second", "third"}),
	}

	resp := GenerateEmbeddings(req)

	require.Len(t, resp.Data, 3)
	for i, data := range resp.Data {
		require.Equal(t, i, data.Index)
		require.Len(t, data.Embedding, 1536)
	}
	require.NotEqual(t, resp.Data[0].Embedding, resp.Data[1].Embedding)
}

func TestGenerateEmbeddings_DimensionsOverride(t *testing.T) {
	req := &domain.EmbeddingRequest{
		Model:      "text-embedding-3-large",
		Input:      domain.NewEmbeddingText("hello"),
		Dimensions: intPtr(16),
	}

	resp := GenerateEmbeddings(req)
	require.Len(t, resp.Data[0].Embedding, 16)
}

func TestGenerateEmbeddings_LargeModelDefault(t *testing.T) {
	req := &domain.EmbeddingRequest{
		Model: "text-embedding-3-large",
		Input: domain.NewEmbeddingText("hello"),
	}

	resp := GenerateEmbeddings(req)
	require.Len(t, resp.Data[0].Embedding, 3072)
}

func TestGenerateEmbeddings_Deterministic(t *testing.T) {
	req := &domain.EmbeddingRequest{
		Model: "text-embedding-ada-002",
		Input: domain.NewEmbeddingText("stable input"),
	}

	first := GenerateEmbeddings(req)
	second := GenerateEmbeddings(req)
	require.Equal(t, first.Data[0].Embedding, second.Data[0].Embedding)
}
