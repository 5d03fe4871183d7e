package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"quiz-generation-be/internal/config"
	"quiz-generation-be/internal/entity"
	"quiz-generation-be/internal/pkg/logger"
	"quiz-generation-be/internal/pkg/testdb"
	"quiz-generation-be/internal/repository/unitofwork"
	"quiz-generation-be/pkg/embedding"
	"quiz-generation-be/pkg/events"
	"quiz-generation-be/pkg/mcq"
	"quiz-generation-be/pkg/rag/quizgen"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// keywordProvider embeds text on two topical axes so similarity is predictable.
type keywordProvider struct {
	fail bool
}

func (p *keywordProvider) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	if p.fail {
		return nil, errors.New("provider unavailable")
	}
	lower := strings.ToLower(text)
	values := []float32{0, 0, 0.1}
	if strings.Contains(lower, "mammal") {
		values[0] = 1
	}
	if strings.Contains(lower, "rome") || strings.Contains(lower, "city") {
		values[1] = 1
	}
	return &embedding.EmbeddingResponse{Embedding: embedding.EmbeddingResponseEmbedding{Values: values}}, nil
}

type recordingEvents struct {
	types []string
}

func (r *recordingEvents) Publish(ctx context.Context, evt events.Event) error {
	r.types = append(r.types, evt.EventType())
	return nil
}

type recordingBackfill struct {
	payloads [][]byte
}

func (r *recordingBackfill) Publish(ctx context.Context, payload []byte) error {
	r.payloads = append(r.payloads, payload)
	return nil
}

// scriptedGenerator returns well-formed questions whose text comes from text.
type scriptedGenerator struct {
	calls int
	text  func(n int, d mcq.Difficulty) string
}

func (g *scriptedGenerator) Generate(ctx context.Context, passage string, d mcq.Difficulty) (*mcq.Question, error) {
	g.calls++
	return &mcq.Question{
		Text:     g.text(g.calls, d),
		Options:  mcq.Options{A: "Reptiles", B: "Mammals", C: "Birds", D: "Fish"},
		Correct:  mcq.OptionB,
		TimeSecs: 45,
	}, nil
}

type malformedGenerator struct {
	calls int
}

func (g *malformedGenerator) Generate(ctx context.Context, passage string, d mcq.Difficulty) (*mcq.Question, error) {
	g.calls++
	return nil, fmt.Errorf("%w: no JSON object", mcq.ErrMalformedOutput)
}

func uniqueText(n int, d mcq.Difficulty) string {
	return fmt.Sprintf("%s question %d", d, n)
}

var testQuizConfig = config.QuizConfig{
	ContextTopK:     5,
	SearchTopK:      6,
	SearchMaxTopK:   20,
	RetryFactor:     3,
	DefaultTimeSecs: 60,
}

type fixture struct {
	uowFactory unitofwork.RepositoryFactory
	provider   *keywordProvider
	gateway    *embedding.Gateway
	events     *recordingEvents
	log        logger.ILogger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	provider := &keywordProvider{}
	return &fixture{
		uowFactory: unitofwork.NewRepositoryFactory(testdb.New(t)),
		provider:   provider,
		gateway:    embedding.NewGateway(provider),
		events:     &recordingEvents{},
		log:        logger.NewNopLogger(),
	}
}

func (f *fixture) searchService() ISearchService {
	return NewSearchService(f.uowFactory, f.gateway, testQuizConfig, f.log)
}

func (f *fixture) quizService(gen quizgen.QuestionGenerator) IQuizService {
	orchestrator := quizgen.NewOrchestrator(gen, f.log, testQuizConfig.RetryFactor)
	return NewQuizService(f.uowFactory, f.searchService(), orchestrator, testQuizConfig, f.events, f.log)
}

func (f *fixture) libraryService() ILibraryService {
	return NewLibraryService(f.uowFactory, f.events, f.log)
}

// seedDocument stores a document with one embedded passage per text.
func (f *fixture) seedDocument(t *testing.T, texts ...string) *entity.Document {
	t.Helper()
	ctx := context.Background()
	uow := f.uowFactory.NewUnitOfWork(ctx)

	doc := &entity.Document{
		Id:           uuid.New(),
		CourseId:     uuid.New(),
		UploadedBy:   uuid.New(),
		OriginalName: "lecture.txt",
		FilePath:     "",
	}
	require.NoError(t, uow.DocumentRepository().Create(ctx, doc))

	passages := make([]*entity.Passage, 0, len(texts))
	for i, text := range texts {
		blob, err := f.gateway.Embed(ctx, text)
		require.NoError(t, err)
		passages = append(passages, &entity.Passage{
			Id:         uuid.New(),
			DocumentId: doc.Id,
			ChunkIndex: i,
			Content:    text,
			Embedding:  blob,
		})
	}
	require.NoError(t, uow.PassageRepository().CreateBatch(ctx, passages))
	return doc
}
