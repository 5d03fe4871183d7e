package mcq

import (
	"context"
	"errors"
	"strings"
	"testing"

	"quiz-generation-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantCorrect OptionLabel
		wantTime    int
	}{
		{
			name:        "index answer",
			raw:         `{"question":"What repeats code?","options":["loop","if","var","func"],"correct":0,"difficulty":"Easy","time_secs":30}`,
			wantCorrect: OptionA,
			wantTime:    30,
		},
		{
			name:        "label answer with surrounding prose",
			raw:         "Sure! Here it is:\n```json\n{\"question\":\"Q?\",\"options\":[\"a\",\"b\",\"c\",\"d\"],\"correct\":\"c\"}\n```",
			wantCorrect: OptionC,
			wantTime:    DefaultTimeSecs,
		},
		{
			name:        "numeric string answer",
			raw:         `{"question":"Q?","options":["a","b","c","d"],"correct":"3","time_secs":"45"}`,
			wantCorrect: OptionD,
			wantTime:    45,
		},
		{
			name:        "non-positive time defaults",
			raw:         `{"question":"Q?","options":["a","b","c","d"],"correct":1,"time_secs":0}`,
			wantCorrect: OptionB,
			wantTime:    DefaultTimeSecs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ParseResponse(tt.raw, DifficultyHard)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCorrect, q.Correct)
			assert.Equal(t, tt.wantTime, q.TimeSecs)
			assert.Equal(t, DifficultyHard, q.Difficulty)
		})
	}
}

func TestParseResponseMapsOptionsByPosition(t *testing.T) {
	q, err := ParseResponse(`{"question":" Which? ","options":[" w "," x","y ","z"],"correct":2}`, DifficultyEasy)
	require.NoError(t, err)

	assert.Equal(t, "Which?", q.Text)
	assert.Equal(t, Options{A: "w", B: "x", C: "y", D: "z"}, q.Options)
	assert.Equal(t, "y", q.Options.Get(q.Correct))
}

func TestParseResponseAcceptsNonStringOptions(t *testing.T) {
	raw := "Here you go: {\"question\":\"What does 7 / 2 evaluate to in integer division?\",\"options\":[3,3.5,4,2],\"correct\":0,\"time_secs\":45}"

	q, err := ParseResponse(raw, DifficultyEasy)
	require.NoError(t, err)
	assert.Equal(t, Options{A: "3", B: "3.5", C: "4", D: "2"}, q.Options)
	assert.Equal(t, "3", q.Options.Get(q.Correct))

	q, err = ParseResponse(`{"question":"Is 0 falsy in C?","options":[true,false," 0 ","-1"],"correct":"A"}`, DifficultyMedium)
	require.NoError(t, err)
	assert.Equal(t, Options{A: "true", B: "false", C: "0", D: "-1"}, q.Options)
}

func TestParseResponseRejectsMalformedOutput(t *testing.T) {
	cases := map[string]string{
		"no json":          "I cannot help with that.",
		"broken json":      `{"question": "Q?", "options": [`,
		"three options":    `{"question":"Q?","options":["a","b","c"],"correct":0}`,
		"five options":     `{"question":"Q?","options":["a","b","c","d","e"],"correct":0}`,
		"index too large":  `{"question":"Q?","options":["a","b","c","d"],"correct":4}`,
		"negative index":   `{"question":"Q?","options":["a","b","c","d"],"correct":-1}`,
		"unknown label":    `{"question":"Q?","options":["a","b","c","d"],"correct":"E"}`,
		"missing correct":  `{"question":"Q?","options":["a","b","c","d"]}`,
		"fractional index": `{"question":"Q?","options":["a","b","c","d"],"correct":1.5}`,
		"empty question":   `{"question":"  ","options":["a","b","c","d"],"correct":0}`,
		"options object":   `{"question":"Q?","options":{"A":"a","B":"b","C":"c","D":"d"},"correct":0}`,
		"null option":      `{"question":"Q?","options":[true,false,"0",null],"correct":0}`,
		"nested option":    `{"question":"Q?","options":["a",["b"],"c","d"],"correct":0}`,
		"object option":    `{"question":"Q?","options":["a","b",{"c":1},"d"],"correct":0}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			q, err := ParseResponse(raw, DifficultyMedium)
			assert.Nil(t, q)
			assert.ErrorIs(t, err, ErrMalformedOutput)
		})
	}
}

func TestLabelTable(t *testing.T) {
	for i, want := range []OptionLabel{OptionA, OptionB, OptionC, OptionD} {
		got, ok := LabelForIndex(i)
		require.True(t, ok)
		assert.Equal(t, want, got)

		idx, ok := IndexForLabel(got)
		require.True(t, ok)
		assert.Equal(t, i, idx)
	}

	_, ok := LabelForIndex(4)
	assert.False(t, ok)
	_, ok = IndexForLabel("E")
	assert.False(t, ok)
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("medium")
	require.NoError(t, err)
	assert.Equal(t, DifficultyMedium, d)

	_, err = ParseDifficulty("mixed")
	assert.Error(t, err)
}

type scriptedLLM struct {
	reply    string
	err      error
	messages []llm.Message
	options  llm.Options
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	s.messages = history
	for _, opt := range opts {
		opt(&s.options)
	}
	return s.reply, s.err
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func TestGeneratorBuildsPromptAndParses(t *testing.T) {
	model := &scriptedLLM{reply: `{"question":"What is a loop?","options":["a","b","c","d"],"correct":1}`}
	gen := NewGenerator(model, 0.1, 0)

	q, err := gen.Generate(context.Background(), "Loops repeat a block.", DifficultyEasy)
	require.NoError(t, err)
	assert.Equal(t, OptionB, q.Correct)

	require.Len(t, model.messages, 2)
	assert.Equal(t, "system", model.messages[0].Role)
	assert.True(t, strings.Contains(model.messages[1].Content, "Loops repeat a block."))
	assert.True(t, strings.Contains(model.messages[1].Content, "Difficulty: Easy"))
	assert.Equal(t, 256, model.options.MaxTokens)
	assert.True(t, model.options.JSONMode)
}

func TestGeneratorReturnsTransportErrors(t *testing.T) {
	gen := NewGenerator(&scriptedLLM{err: errors.New("connection refused")}, 0.1, 256)

	_, err := gen.Generate(context.Background(), "p", DifficultyEasy)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMalformedOutput))
}
