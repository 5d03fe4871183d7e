package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimitedProvider throttles calls into an LLM backend with a shared token bucket.
type RateLimitedProvider struct {
	next    LLMProvider
	limiter *rate.Limiter
}

var _ LLMProvider = &RateLimitedProvider{}

// NewRateLimitedProvider allows perSecond calls with bursts of burst.
// A non-positive perSecond disables throttling.
func NewRateLimitedProvider(next LLMProvider, perSecond float64, burst int) *RateLimitedProvider {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimitedProvider{next: next, limiter: rate.NewLimiter(limit, burst)}
}

func (r *RateLimitedProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return r.next.Chat(ctx, history, options...)
}

func (r *RateLimitedProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return r.next.Generate(ctx, prompt, options...)
}
