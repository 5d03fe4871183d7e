package retrieval

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Candidate is a passage offered for ranking. Vector is nil when the passage was never embedded.
type Candidate struct {
	PassageID  uuid.UUID
	ChunkIndex int
	Text       string
	Vector     []float32
}

type Scored struct {
	Candidate
	Similarity float64
}

// CosineSimilarity returns 0 for empty, zero-norm or mismatched vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank scores every embedded candidate against query by linear scan and returns
// the topK best, highest first. Unembedded candidates are skipped, not scored.
// Equal scores keep the order in which candidates were supplied.
func Rank(query []float32, candidates []Candidate, topK int) []Scored {
	if topK <= 0 {
		return []Scored{}
	}

	scored := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		if c.Vector == nil {
			continue
		}
		scored = append(scored, Scored{Candidate: c, Similarity: CosineSimilarity(query, c.Vector)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}
