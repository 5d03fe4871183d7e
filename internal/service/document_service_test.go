package service

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"quiz-generation-be/internal/config"
	"quiz-generation-be/internal/dto"
	"quiz-generation-be/internal/pkg/apperror"
	"quiz-generation-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIngestConfig = config.IngestConfig{
	ChunkSize:    1000,
	ChunkOverlap: 150,
	KeywordCount: 5,
}

func (f *fixture) documentService(t *testing.T, backfill IPublisherService) (IDocumentService, string) {
	dir := t.TempDir()
	return NewDocumentService(f.uowFactory, f.gateway, testIngestConfig, dir, backfill, f.events, f.log), dir
}

func uploadRequest(name, body string) *dto.UploadDocumentRequest {
	return &dto.UploadDocumentRequest{
		CourseId:     uuid.New(),
		OriginalName: name,
		MimeType:     "text/plain",
		Data:         []byte(body),
	}
}

func TestUploadIngestsTextDocument(t *testing.T) {
	f := newFixture(t)
	svc, _ := f.documentService(t, nil)
	ctx := context.Background()

	res, err := svc.Upload(ctx, uuid.New(), uploadRequest("week1.txt", "Cats are mammals.\n\n3\n\nDogs are mammals too."))
	require.NoError(t, err)

	assert.Equal(t, 1, res.ChunksCreated)
	assert.Equal(t, 1, res.EmbeddingsCreated)
	assert.Equal(t, StatusProcessed, res.Status)

	doc, err := svc.Show(ctx, res.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, doc.PassageCount)
	assert.Equal(t, "week1.txt", doc.OriginalName)

	passages, err := svc.ListPassages(ctx, res.Id)
	require.NoError(t, err)
	require.Len(t, passages, 1)
	assert.True(t, passages[0].HasEmbedding)
	assert.Equal(t, "Cats are mammals. Dogs are mammals too.", passages[0].Text)
	assert.Equal(t, "mammals", passages[0].Keywords[0])

	assert.Contains(t, f.events.types, events.DocumentIngested)
}

func TestUploadQueuesBackfillWhenEmbeddingFails(t *testing.T) {
	f := newFixture(t)
	f.provider.fail = true
	backfill := &recordingBackfill{}
	svc, _ := f.documentService(t, backfill)

	res, err := svc.Upload(context.Background(), uuid.New(), uploadRequest("notes.md", "Rome is a city."))
	require.NoError(t, err)

	assert.Equal(t, 1, res.ChunksCreated)
	assert.Equal(t, 0, res.EmbeddingsCreated)
	assert.Equal(t, StatusPendingEmbedding, res.Status)

	require.Len(t, backfill.payloads, 1)
	var msg dto.PublishEmbedPassagesMessage
	require.NoError(t, json.Unmarshal(backfill.payloads[0], &msg))
	assert.Equal(t, res.Id, msg.DocumentId)
}

func TestUploadRejectsUnusableFiles(t *testing.T) {
	f := newFixture(t)
	svc, dir := f.documentService(t, nil)
	ctx := context.Background()

	_, err := svc.Upload(ctx, uuid.New(), uploadRequest("slides.pptx", "binary"))
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.Upload(ctx, uuid.New(), uploadRequest("blank.txt", "  \n\n 12 \n"))
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.Upload(ctx, uuid.New(), uploadRequest("empty.txt", ""))
	assert.ErrorIs(t, err, apperror.ErrValidation)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected uploads leave no files behind")
}

func TestListDocumentsByCourse(t *testing.T) {
	f := newFixture(t)
	svc, _ := f.documentService(t, nil)
	ctx := context.Background()

	req := uploadRequest("a.txt", "Cats are mammals.")
	first, err := svc.Upload(ctx, uuid.New(), req)
	require.NoError(t, err)
	_, err = svc.Upload(ctx, uuid.New(), uploadRequest("b.txt", "Rome is a city."))
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byCourse, err := svc.ListByCourse(ctx, req.CourseId)
	require.NoError(t, err)
	require.Len(t, byCourse, 1)
	assert.Equal(t, first.Id, byCourse[0].Id)
}

func TestDeleteDocumentKeepsQuizzes(t *testing.T) {
	f := newFixture(t)
	svc, _ := f.documentService(t, nil)
	ctx := context.Background()

	uploaded, err := svc.Upload(ctx, uuid.New(), uploadRequest("zoo.txt", "Cats are mammals. Dogs are mammals."))
	require.NoError(t, err)
	doc, err := f.uowFactory.NewUnitOfWork(ctx).DocumentRepository().FindOne(ctx)
	require.NoError(t, err)
	_, err = os.Stat(doc.FilePath)
	require.NoError(t, err)

	quizzes := f.quizService(&scriptedGenerator{text: uniqueText})
	finalized, err := quizzes.Generate(ctx, uuid.New(), &dto.GenerateQuizRequest{
		DocumentId:   uploaded.Id,
		Topic:        "mammals",
		NumQuestions: 1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, uploaded.Id))

	_, err = svc.Show(ctx, uploaded.Id)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = os.Stat(doc.FilePath)
	assert.True(t, os.IsNotExist(err))

	quiz, err := quizzes.Show(ctx, finalized.QuizId)
	require.NoError(t, err)
	assert.Nil(t, quiz.DocumentId)
	assert.Len(t, quiz.Questions, 1)

	records, err := quizzes.RetrievalRecords(ctx, finalized.QuizId)
	require.NoError(t, err)
	assert.Empty(t, records)

	assert.ErrorIs(t, svc.Delete(ctx, uploaded.Id), apperror.ErrNotFound)
}
