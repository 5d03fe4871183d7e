package llm

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string
	Content string
}

// Options are per-call knobs. Zero values leave the backend default in place.
type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string
	JSONMode    bool
}

type Option func(*Options)

func WithTemperature(temp float64) Option { return func(o *Options) { o.Temperature = temp } }

func WithModel(model string) Option { return func(o *Options) { o.Model = model } }

func WithMaxTokens(n int) Option { return func(o *Options) { o.MaxTokens = n } }

// WithJSONResponse asks the backend to constrain its reply to one JSON object.
func WithJSONResponse() Option { return func(o *Options) { o.JSONMode = true } }

// Apply folds opts over defaults.
func Apply(defaults Options, opts ...Option) Options {
	for _, opt := range opts {
		opt(&defaults)
	}
	return defaults
}

// LLMProvider is a text completion backend used by question generation.
type LLMProvider interface {
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)
	// Generate is Chat with a single user turn.
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
