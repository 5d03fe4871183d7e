package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoProvider struct {
	calls int
	last  Options
}

func (e *echoProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	e.calls++
	e.last = Apply(Options{}, options...)
	return history[len(history)-1].Content, nil
}

func (e *echoProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return e.Chat(ctx, []Message{{Role: "user", Content: prompt}}, options...)
}

func TestApplyOptions(t *testing.T) {
	got := Apply(Options{Temperature: 0.7}, WithTemperature(0.1), WithMaxTokens(256), WithJSONResponse(), WithModel("phi3"))

	assert.Equal(t, Options{Temperature: 0.1, MaxTokens: 256, Model: "phi3", JSONMode: true}, got)
}

func TestRateLimitedProviderForwards(t *testing.T) {
	inner := &echoProvider{}
	p := NewRateLimitedProvider(inner, 0, 0)

	out, err := p.Generate(context.Background(), "hello", WithMaxTokens(8))
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	assert.Equal(t, 8, inner.last.MaxTokens)
}

func TestRateLimitedProviderHonoursCancellation(t *testing.T) {
	inner := &echoProvider{}
	p := NewRateLimitedProvider(inner, 0.001, 1)

	_, err := p.Generate(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Generate(ctx, "second")

	assert.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}
