package embedding

import (
	"context"
	"errors"
	"strings"
)

var ErrEmptyVector = errors.New("embedding: provider returned an empty vector")

// Gateway turns text into stored vector blobs for passages and raw vectors for queries.
type Gateway struct {
	provider EmbeddingProvider
}

func NewGateway(provider EmbeddingProvider) *Gateway {
	return &Gateway{provider: provider}
}

// Embed returns nil with no error for empty or whitespace-only text.
func (g *Gateway) Embed(ctx context.Context, text string) ([]byte, error) {
	values, err := g.generate(ctx, text, TaskRetrievalDocument)
	if err != nil || values == nil {
		return nil, err
	}
	return EncodeVector(values), nil
}

// EmbedQuery returns nil with no error for empty or whitespace-only text.
func (g *Gateway) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return g.generate(ctx, text, TaskRetrievalQuery)
}

func (g *Gateway) generate(ctx context.Context, text, taskType string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	res, err := g.provider.Generate(ctx, text, taskType)
	if err != nil {
		return nil, err
	}
	if res == nil || len(res.Embedding.Values) == 0 {
		return nil, ErrEmptyVector
	}
	return res.Embedding.Values, nil
}
