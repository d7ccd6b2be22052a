package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/mirage/internal/domain"
)

func TestNopRecorder(t *testing.T) {
	recorder := NewNopRecorder()
	err := recorder.Record(context.Background(), KindChat, "gpt-4", domain.NewUsage(1, 2))
	require.NoError(t, err)
}

func TestRedisRecorder_KeyLayout(t *testing.T) {
	recorder := NewRedisRecorder(Config{Addr: "localhost:6379", KeyPrefix: "mirage:usage"})
	defer recorder.Close()

	require.Equal(t, "mirage:usage:chat:gpt-4", recorder.key(KindChat, "gpt-4"))
}
