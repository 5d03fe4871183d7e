package mcq

import (
	"context"

	"quiz-generation-be/pkg/llm"
)

// Generator asks a language model for a single question grounded in one passage.
type Generator struct {
	provider    llm.LLMProvider
	temperature float64
	maxTokens   int
}

func NewGenerator(provider llm.LLMProvider, temperature float64, maxTokens int) *Generator {
	if maxTokens <= 0 {
		maxTokens = 256
	}
	return &Generator{
		provider:    provider,
		temperature: temperature,
		maxTokens:   maxTokens,
	}
}

// Generate returns an error wrapping ErrMalformedOutput when the model replied
// with something that is not a valid question; transport failures are returned as-is.
func (g *Generator) Generate(ctx context.Context, passage string, difficulty Difficulty) (*Question, error) {
	system, user := BuildPrompt(passage, difficulty)

	raw, err := g.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	},
		llm.WithTemperature(g.temperature),
		llm.WithMaxTokens(g.maxTokens),
		llm.WithJSONResponse(),
	)
	if err != nil {
		return nil, err
	}

	return ParseResponse(raw, difficulty)
}
