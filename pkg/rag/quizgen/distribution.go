package quizgen

import (
	"fmt"

	"quiz-generation-be/pkg/mcq"
)

// NewDistribution turns a per-difficulty count map into slots in canonical
// Easy, Medium, Hard order. An empty map falls back to a single slot of
// fallbackCount questions at the fallback difficulty.
func NewDistribution(counts map[string]int, fallback string, fallbackCount int) ([]Slot, error) {
	if len(counts) == 0 {
		d, err := mcq.ParseDifficulty(fallback)
		if err != nil {
			return nil, err
		}
		if fallbackCount < 0 {
			return nil, fmt.Errorf("question count must not be negative, got %d", fallbackCount)
		}
		return []Slot{{Difficulty: d, Count: fallbackCount}}, nil
	}

	merged := make(map[mcq.Difficulty]int, len(counts))
	for label, n := range counts {
		d, err := mcq.ParseDifficulty(label)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("count for %s must not be negative, got %d", d, n)
		}
		merged[d] += n
	}

	slots := make([]Slot, 0, len(merged))
	for _, d := range mcq.Difficulties {
		if n, ok := merged[d]; ok {
			slots = append(slots, Slot{Difficulty: d, Count: n})
		}
	}
	return slots, nil
}

// Total is the number of questions a distribution asks for.
func Total(slots []Slot) int {
	total := 0
	for _, s := range slots {
		total += s.Count
	}
	return total
}
