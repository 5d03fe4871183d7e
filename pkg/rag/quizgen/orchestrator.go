package quizgen

import (
	"context"
	"errors"
	"fmt"

	"quiz-generation-be/internal/pkg/logger"
	"quiz-generation-be/pkg/mcq"

	"github.com/google/uuid"
)

const (
	logModule = "QUIZGEN"

	DefaultRetryFactor = 3
)

var (
	ErrNoPassages = errors.New("quizgen: no passages to generate from")
	ErrExhausted  = errors.New("quizgen: generation produced no questions")
)

// QuestionGenerator produces one candidate question from one passage.
type QuestionGenerator interface {
	Generate(ctx context.Context, passage string, difficulty mcq.Difficulty) (*mcq.Question, error)
}

// Passage is a retrieved passage in rank order.
type Passage struct {
	ID         uuid.UUID
	Text       string
	Similarity float64
}

// Slot asks for Count questions of one difficulty.
type Slot struct {
	Difficulty mcq.Difficulty
	Count      int
}

type Request struct {
	Passages     []Passage
	Seed         []mcq.Question // preselected questions, kept first and counted toward their slot
	Distribution []Slot
	// Exclude holds question texts that must never be emitted, e.g. rejected library entries.
	Exclude []string
}

type Orchestrator struct {
	generator   QuestionGenerator
	logger      logger.ILogger
	retryFactor int
}

func NewOrchestrator(generator QuestionGenerator, log logger.ILogger, retryFactor int) *Orchestrator {
	if retryFactor <= 0 {
		retryFactor = DefaultRetryFactor
	}
	return &Orchestrator{generator: generator, logger: log, retryFactor: retryFactor}
}

// Run fills each slot by cycling through the passages in rank order. A slot stops
// after its count is met or after retryFactor*needed failed attempts, where a
// failed attempt is malformed output, a duplicate, or a generator error.
// The passage cursor only advances on success and is shared across slots.
func (o *Orchestrator) Run(ctx context.Context, req Request) ([]mcq.Question, error) {
	if len(req.Passages) == 0 {
		return nil, ErrNoPassages
	}

	result := make([]mcq.Question, 0, len(req.Seed))
	seen := make(map[string]struct{}, len(req.Seed)+len(req.Exclude))
	seeded := make(map[mcq.Difficulty]int)

	for _, text := range req.Exclude {
		seen[text] = struct{}{}
	}
	for _, q := range req.Seed {
		result = append(result, q)
		seen[q.Text] = struct{}{}
		seeded[q.Difficulty]++
	}

	cursor := 0
	for _, slot := range req.Distribution {
		needed := slot.Count - seeded[slot.Difficulty]
		if needed <= 0 {
			continue
		}

		generated, failures := 0, 0
		budget := o.retryFactor * needed
		for generated < needed && failures < budget {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			passage := req.Passages[cursor%len(req.Passages)]
			q, err := o.generator.Generate(ctx, passage.Text, slot.Difficulty)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return nil, ctxErr
				}
				failures++
				o.logger.Warn(logModule, "Generation attempt failed", map[string]interface{}{
					"difficulty": slot.Difficulty,
					"passage_id": passage.ID,
					"malformed":  errors.Is(err, mcq.ErrMalformedOutput),
					"error":      err.Error(),
				})
				continue
			}

			if _, dup := seen[q.Text]; dup {
				failures++
				o.logger.Debug(logModule, "Duplicate question discarded", map[string]interface{}{
					"difficulty": slot.Difficulty,
					"passage_id": passage.ID,
				})
				continue
			}

			q.Difficulty = slot.Difficulty
			q.Source = &mcq.Source{PassageID: passage.ID, Similarity: passage.Similarity}
			seen[q.Text] = struct{}{}
			result = append(result, *q)
			generated++
			cursor++
		}

		if generated < needed {
			o.logger.Warn(logModule, "Difficulty slot under-filled", map[string]interface{}{
				"difficulty": slot.Difficulty,
				"requested":  needed,
				"generated":  generated,
				"failures":   failures,
			})
		}
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("%w after %d passages", ErrExhausted, len(req.Passages))
	}
	return result, nil
}
