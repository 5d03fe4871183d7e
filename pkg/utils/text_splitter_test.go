package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		chunkSize int
		overlap   int
		want      []string
	}{
		{
			name:      "empty text",
			text:      "",
			chunkSize: 10,
			overlap:   2,
			want:      []string{},
		},
		{
			name:      "shorter than window",
			text:      "short",
			chunkSize: 10,
			overlap:   2,
			want:      []string{"short"},
		},
		{
			name:      "exactly one window",
			text:      "abcdefghij",
			chunkSize: 10,
			overlap:   2,
			want:      []string{"abcdefghij"},
		},
		{
			name:      "hard cut without spaces",
			text:      "abcdefghijklmnop",
			chunkSize: 10,
			overlap:   2,
			want:      []string{"abcdefghij", "ijklmnop"},
		},
		{
			name:      "break at late space",
			text:      "abcdefghij klmnopqrst",
			chunkSize: 11,
			overlap:   0,
			want:      []string{"abcdefghij", " klmnopqrst"},
		},
		{
			name:      "early space ignored",
			text:      "ab cdefghijklmn",
			chunkSize: 10,
			overlap:   0,
			want:      []string{"ab cdefghi", "jklmn"},
		},
		{
			name:      "overlap equal to size still advances",
			text:      "abcdefghijkl",
			chunkSize: 5,
			overlap:   5,
			want:      []string{"abcde", "fghij", "kl"},
		},
		{
			name:      "multibyte characters counted once",
			text:      "ééééééé",
			chunkSize: 4,
			overlap:   1,
			want:      []string{"éééé", "éééé"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitText(tt.text, tt.chunkSize, tt.overlap))
		})
	}
}

func TestSplitTextCoversWholeInput(t *testing.T) {
	text := strings.Repeat("loops repeat a block of statements until a condition fails ", 80)

	chunks := SplitText(text, DefaultChunkSize, DefaultChunkOverlap)
	require.NotEmpty(t, chunks)

	assert.True(t, strings.HasPrefix(text, chunks[0]))
	assert.True(t, strings.HasSuffix(text, chunks[len(chunks)-1]))

	prev := -1
	offset := 0
	for _, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), DefaultChunkSize)
		idx := strings.Index(text[offset:], c)
		require.GreaterOrEqual(t, idx, 0)
		pos := offset + idx
		assert.Greater(t, pos, prev, "chunk starts must strictly increase")
		prev = pos
		offset = pos + 1
	}
}

func TestSplitTextClampsInvalidParameters(t *testing.T) {
	text := strings.Repeat("x", 2500)

	chunks := SplitText(text, 0, -5)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], DefaultChunkSize)
	assert.Len(t, chunks[2], 500)
}
