package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"stakeholder-rag-be/pkg/embedding"
	"stakeholder-rag-be/pkg/llm"
	"stakeholder-rag-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit a locally running Ollama server. They are skipped unless
// OLLAMA_INTEGRATION=1 so the regular suite stays hermetic.

func ollamaBaseURL() string {
	if url := os.Getenv("OLLAMA_BASE_URL"); url != "" {
		return url
	}
	return "http://localhost:11434"
}

func requireOllama(t *testing.T) {
	t.Helper()
	if os.Getenv("OLLAMA_INTEGRATION") != "1" {
		t.Skip("Skipping integration test: OLLAMA_INTEGRATION not set")
	}
}

func TestOllamaChat(t *testing.T) {
	requireOllama(t)

	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "llama3"
	}
	provider := ollama.NewOllamaProvider(ollamaBaseURL(), model)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	reply, err := provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: "Answer with a single word."},
		{Role: "user", Content: "What color is the sky on a clear day?"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
	t.Logf("Ollama reply: %s", reply)
}

func TestOllamaEmbedding(t *testing.T) {
	requireOllama(t)

	model := os.Getenv("OLLAMA_EMBEDDING_MODEL")
	if model == "" {
		model = "nomic-embed-text"
	}
	provider := embedding.NewOllamaProvider(ollamaBaseURL(), model)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	resp, err := provider.Generate(ctx, "Q3 revenue was $15,000.", embedding.TaskDocument)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Embedding.Values)
	t.Logf("Embedding dimensions: %d", len(resp.Embedding.Values))

	// Vectors are normalized for cosine search, the norm should be ~1
	var norm float64
	for _, v := range resp.Embedding.Values {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, norm, 0.01)
}
