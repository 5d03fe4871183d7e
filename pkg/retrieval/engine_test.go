package retrieval

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 1},
		{name: "scaled", a: []float32{1, 2, 3}, b: []float32{2, 4, 6}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 1}, want: 0},
		{name: "empty", a: nil, b: []float32{1}, want: 0},
		{name: "dimension mismatch", a: []float32{1, 0}, b: []float32{1, 0, 0}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func candidate(idx int, vec []float32) Candidate {
	return Candidate{PassageID: uuid.New(), ChunkIndex: idx, Vector: vec}
}

func TestRankOrdersBySimilarity(t *testing.T) {
	query := []float32{1, 0}
	candidates := []Candidate{
		candidate(0, []float32{0, 1}),
		candidate(1, []float32{1, 0}),
		candidate(2, nil),
		candidate(3, []float32{1, 1}),
	}

	got := Rank(query, candidates, 10)

	require.Len(t, got, 3, "unembedded candidates are excluded")
	assert.Equal(t, []int{1, 3, 0}, chunkIndexes(got))
	assert.InDelta(t, 1.0, got[0].Similarity, 1e-9)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Similarity, got[i].Similarity)
	}
}

func TestRankTruncatesAndKeepsTieOrder(t *testing.T) {
	query := []float32{1, 1}
	candidates := []Candidate{
		candidate(0, []float32{2, 2}),
		candidate(1, []float32{2, 2}),
		candidate(2, []float32{1, 0}),
		candidate(3, []float32{2, 2}),
	}

	got := Rank(query, candidates, 2)

	assert.Equal(t, []int{0, 1}, chunkIndexes(got))
}

func TestRankEdgeCases(t *testing.T) {
	assert.Empty(t, Rank([]float32{1}, nil, 5))
	assert.Empty(t, Rank([]float32{1}, []Candidate{candidate(0, []float32{1})}, 0))
	assert.Empty(t, Rank([]float32{1}, []Candidate{candidate(0, nil)}, 3))
}

func chunkIndexes(scored []Scored) []int {
	out := make([]int, len(scored))
	for i, s := range scored {
		out[i] = s.ChunkIndex
	}
	return out
}
