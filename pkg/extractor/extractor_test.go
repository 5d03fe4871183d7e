package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextPlain(t *testing.T) {
	text, err := ExtractText("week1.md", []byte("# Pointers\n\nA pointer stores an address.\n12\n"))
	require.NoError(t, err)
	assert.Equal(t, "# Pointers\n\nA pointer stores an address.\n12\n", text)
}

func TestExtractTextRejects(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		want     error
	}{
		{"empty", "notes.txt", nil, ErrEmptyFile},
		{"fake pdf", "slides.pdf", []byte("not really a pdf"), ErrUnsupportedType},
		{"binary text", "notes.txt", []byte{0x00, 0x01, 0x02}, ErrUnsupportedType},
		{"docx", "notes.docx", []byte("PK\x03\x04"), ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractText(tt.filename, tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("Lecture 01.PDF"))
	assert.True(t, IsSupported("notes.md"))
	assert.False(t, IsSupported("deck.pptx"))
	assert.False(t, IsSupported("noext"))
}
