package factory

import (
	"context"
	"fmt"

	"quiz-generation-be/pkg/llm"
	"quiz-generation-be/pkg/llm/gemini"
	"quiz-generation-be/pkg/llm/ollama"
	"quiz-generation-be/pkg/llm/openai"
)

type Settings struct {
	Provider      string // "ollama", "openai" or "gemini"
	Model         string
	OllamaBaseURL string
	OpenAIKey     string
	GeminiKey     string
}

func NewLLMProvider(ctx context.Context, s Settings) (llm.LLMProvider, error) {
	switch s.Provider {
	case "ollama":
		baseURL := s.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, s.Model), nil
	case "openai":
		if s.OpenAIKey == "" {
			return nil, fmt.Errorf("openai provider requires OPENAI_API_KEY")
		}
		return openai.NewProvider(s.OpenAIKey, s.Model), nil
	case "gemini":
		if s.GeminiKey == "" {
			return nil, fmt.Errorf("gemini provider requires GOOGLE_GEMINI_API_KEY")
		}
		return gemini.NewProvider(ctx, s.GeminiKey, s.Model)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.Provider)
	}
}
