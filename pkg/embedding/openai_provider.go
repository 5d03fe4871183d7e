package embedding

import (
	"context"
	"errors"
	"fmt"

	openaisdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/packages/param"
)

var ErrNoEmbeddingInResponse = errors.New("openai: no embedding in response")

const defaultOpenAIDimensions = 1536

// OpenAIProvider uses text-embedding-3-small through the official SDK.
type OpenAIProvider struct {
	sdk        openaisdk.Client
	dimensions int
}

func NewOpenAIProvider(apiKey string, dimensions int) EmbeddingProvider {
	if dimensions <= 0 {
		dimensions = defaultOpenAIDimensions
	}
	return &OpenAIProvider{
		sdk:        openaisdk.NewClient(option.WithAPIKey(apiKey)),
		dimensions: dimensions,
	}
}

// Generate ignores taskType; OpenAI embeddings are symmetric.
func (p *OpenAIProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	resp, err := p.sdk.Embeddings.New(ctx, openaisdk.EmbeddingNewParams{
		Input: openaisdk.EmbeddingNewParamsInputUnion{
			OfString: param.NewOpt(text),
		},
		Model:      openaisdk.EmbeddingModelTextEmbedding3Small,
		Dimensions: param.NewOpt(int64(p.dimensions)),
	})
	if err != nil {
		return nil, fmt.Errorf("openai embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, ErrNoEmbeddingInResponse
	}

	emb := resp.Data[0].Embedding
	values := make([]float32, len(emb))
	for i := range emb {
		values[i] = float32(emb[i])
	}

	return &EmbeddingResponse{Embedding: EmbeddingResponseEmbedding{Values: values}}, nil
}
