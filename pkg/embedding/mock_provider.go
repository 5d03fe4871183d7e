package embedding

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
)

// MockProvider produces deterministic unit vectors from a hash of the input.
// Identical texts embed identically; it carries no semantic signal.
type MockProvider struct {
	dimensions int
}

func NewMockProvider(dimensions int) EmbeddingProvider {
	if dimensions <= 0 {
		dimensions = 64
	}
	return &MockProvider{dimensions: dimensions}
}

func (m *MockProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("mock embedding: text cannot be empty")
	}

	hash := sha256.Sum256([]byte(text))
	values := make([]float32, m.dimensions)
	for i := range values {
		b := hash[i%len(hash)]
		values[i] = float32(int(b)-128) / 128
		if values[i] == 0 {
			values[i] = 1.0 / 256
		}
	}

	return &EmbeddingResponse{Embedding: EmbeddingResponseEmbedding{Values: normalizeVector(values)}}, nil
}
