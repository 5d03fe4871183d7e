package service

import (
	"context"
	"testing"

	"quiz-generation-be/internal/dto"
	"quiz-generation-be/internal/pkg/apperror"
	"quiz-generation-be/internal/repository/specification"
	"quiz-generation-be/pkg/events"
	"quiz-generation-be/pkg/mcq"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload(text string) dto.QuestionPayload {
	return dto.QuestionPayload{
		Question:   text,
		Options:    dto.OptionsPayload{A: "Reptiles", B: "Mammals", C: "Birds", D: "Fish"},
		Correct:    "b",
		Difficulty: "easy",
		TimeSecs:   30,
	}
}

func TestGenerateFillsEachDifficulty(t *testing.T) {
	f := newFixture(t)
	doc := f.seedDocument(t, "cats are mammals", "dogs are mammals", "rome is a city")
	gen := &scriptedGenerator{text: uniqueText}
	svc := f.quizService(gen)
	ctx := context.Background()
	creator := uuid.New()

	res, err := svc.Generate(ctx, creator, &dto.GenerateQuizRequest{
		DocumentId:             doc.Id,
		Topic:                  "mammal facts",
		DifficultyDistribution: map[string]int{"Hard": 1, "easy": 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.QuestionsSaved)
	assert.Equal(t, "Medium", res.Difficulty)

	quiz, err := svc.Show(ctx, res.QuizId)
	require.NoError(t, err)
	assert.Equal(t, "Quiz: mammal facts", quiz.Title)
	assert.Equal(t, creator, quiz.CreatedBy)
	assert.Equal(t, doc.CourseId, quiz.CourseId)
	assert.Equal(t, 2, quiz.TotalQuestions)
	assert.Equal(t, 2, quiz.TotalMarks)
	assert.Equal(t, 1, quiz.TotalTimeMins)
	assert.False(t, quiz.IsPublished)

	require.Len(t, quiz.Questions, 2)
	assert.Equal(t, 1, quiz.Questions[0].QOrder)
	assert.Equal(t, "Easy", quiz.Questions[0].Difficulty)
	assert.Equal(t, 2, quiz.Questions[1].QOrder)
	assert.Equal(t, "Hard", quiz.Questions[1].Difficulty)
	assert.Equal(t, "B", quiz.Questions[0].CorrectOption)

	records, err := svc.RetrievalRecords(ctx, res.QuizId)
	require.NoError(t, err)
	assert.Len(t, records, 2, "one record per distinct source passage")

	assert.Contains(t, f.events.types, events.QuizFinalized)
}

func TestPreviewUnderfillsLabelWithIdenticalOutput(t *testing.T) {
	f := newFixture(t)
	doc := f.seedDocument(t, "cats are mammals", "dogs are mammals")
	gen := &scriptedGenerator{text: func(int, mcq.Difficulty) string { return "Which animals are mammals?" }}

	res, err := f.quizService(gen).Preview(context.Background(), &dto.GenerateQuizRequest{
		DocumentId:             doc.Id,
		Topic:                  "mammals",
		DifficultyDistribution: map[string]int{"Easy": 1, "Hard": 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Requested)
	assert.Equal(t, 1, res.Generated)
	assert.Equal(t, mcq.DifficultyEasy, res.Questions[0].Difficulty)
	assert.Equal(t, 1+testQuizConfig.RetryFactor, gen.calls)
}

func TestPreviewExhaustedWhenOnlyLabelFails(t *testing.T) {
	f := newFixture(t)
	doc := f.seedDocument(t, "cats are mammals")
	gen := &malformedGenerator{}

	_, err := f.quizService(gen).Preview(context.Background(), &dto.GenerateQuizRequest{
		DocumentId:   doc.Id,
		Topic:        "mammals",
		NumQuestions: 2,
		Difficulty:   "hard",
	})
	assert.ErrorIs(t, err, apperror.ErrGenerationExhausted)
	assert.Equal(t, 2*testQuizConfig.RetryFactor, gen.calls)
}

func TestPreviewErrors(t *testing.T) {
	f := newFixture(t)
	doc := f.seedDocument(t, "cats are mammals")
	svc := f.quizService(&scriptedGenerator{text: uniqueText})
	ctx := context.Background()

	_, err := svc.Preview(ctx, &dto.GenerateQuizRequest{DocumentId: uuid.New(), Topic: "cats"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.Preview(ctx, &dto.GenerateQuizRequest{DocumentId: doc.Id, Topic: "cats", Difficulty: "Expert"})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.Preview(ctx, &dto.GenerateQuizRequest{DocumentId: doc.Id, Topic: "cats", DifficultyDistribution: map[string]int{"Trivial": 2}})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.Preview(ctx, &dto.GenerateQuizRequest{DocumentId: doc.Id, Topic: " "})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	empty := f.seedDocument(t)
	_, err = svc.Preview(ctx, &dto.GenerateQuizRequest{DocumentId: empty.Id, Topic: "cats"})
	assert.ErrorIs(t, err, apperror.ErrInsufficientContext)
}

func TestFinalizeReusesLibraryEntry(t *testing.T) {
	f := newFixture(t)
	doc := f.seedDocument(t, "cats are mammals")
	svc := f.quizService(&scriptedGenerator{text: uniqueText})
	ctx := context.Background()

	req := &dto.FinalizeQuizRequest{
		DocumentId: doc.Id,
		Topic:      "mammals",
		Difficulty: "easy",
		Questions:  []dto.QuestionPayload{samplePayload("Which of these is a mammal?")},
	}
	first, err := svc.Finalize(ctx, uuid.New(), req)
	require.NoError(t, err)
	second, err := svc.Finalize(ctx, uuid.New(), req)
	require.NoError(t, err)
	assert.NotEqual(t, first.QuizId, second.QuizId)
	assert.Equal(t, "Easy", first.Difficulty)

	uow := f.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.QuestionLibraryRepository().FindAll(ctx, specification.ByDocumentID{DocumentID: doc.Id})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	for _, quizId := range []uuid.UUID{first.QuizId, second.QuizId} {
		questions, err := uow.QuizQuestionRepository().FindAll(ctx, specification.ByQuizID{QuizID: quizId})
		require.NoError(t, err)
		require.Len(t, questions, 1)
		require.NotNil(t, questions[0].LibraryEntryId)
		assert.Equal(t, entries[0].Id, *questions[0].LibraryEntryId)
		assert.Equal(t, 30, questions[0].TimeSecs)
	}
}

func TestFinalizeValidation(t *testing.T) {
	f := newFixture(t)
	doc := f.seedDocument(t, "cats are mammals")
	svc := f.quizService(&scriptedGenerator{text: uniqueText})
	ctx := context.Background()

	bad := samplePayload("Which of these is a mammal?")
	bad.Correct = "E"
	_, err := svc.Finalize(ctx, uuid.New(), &dto.FinalizeQuizRequest{
		DocumentId: doc.Id,
		Topic:      "mammals",
		Questions:  []dto.QuestionPayload{bad},
	})
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, err = svc.Finalize(ctx, uuid.New(), &dto.FinalizeQuizRequest{
		DocumentId: uuid.New(),
		Topic:      "mammals",
		Questions:  []dto.QuestionPayload{samplePayload("Which of these is a mammal?")},
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	list, err := svc.List(ctx, &dto.ListQuizRequest{})
	require.NoError(t, err)
	assert.Zero(t, list.Total, "failed finalizations persist nothing")
}

func TestFinalizeDefaultsTimeAndCreator(t *testing.T) {
	f := newFixture(t)
	doc := f.seedDocument(t, "cats are mammals")
	svc := f.quizService(&scriptedGenerator{text: uniqueText})
	ctx := context.Background()

	untimed := samplePayload("Name a mammal")
	untimed.TimeSecs = 0
	res, err := svc.Finalize(ctx, uuid.Nil, &dto.FinalizeQuizRequest{
		DocumentId: doc.Id,
		Topic:      "mammals",
		Questions:  []dto.QuestionPayload{untimed, samplePayload("Name another mammal")},
	})
	require.NoError(t, err)

	quiz, err := svc.Show(ctx, res.QuizId)
	require.NoError(t, err)
	assert.Equal(t, doc.UploadedBy, quiz.CreatedBy)
	assert.Equal(t, 60, quiz.Questions[0].TimeSecs)
	assert.Equal(t, 1, quiz.TotalTimeMins)
	assert.Equal(t, "Medium", quiz.AvgDifficulty)
}

func TestPreviewSeedsPreselectedQuestions(t *testing.T) {
	f := newFixture(t)
	doc := f.seedDocument(t, "cats are mammals")
	ctx := context.Background()

	_, err := f.quizService(&scriptedGenerator{text: uniqueText}).Finalize(ctx, uuid.New(), &dto.FinalizeQuizRequest{
		DocumentId: doc.Id,
		Topic:      "mammals",
		Questions:  []dto.QuestionPayload{samplePayload("Which of these is a mammal?")},
	})
	require.NoError(t, err)

	reusable, err := f.libraryService().ListReusable(ctx, doc.Id)
	require.NoError(t, err)
	require.Len(t, reusable, 1)

	gen := &scriptedGenerator{text: uniqueText}
	res, err := f.quizService(gen).Preview(ctx, &dto.GenerateQuizRequest{
		DocumentId:             doc.Id,
		Topic:                  "mammals",
		DifficultyDistribution: map[string]int{"Easy": 2},
		PreselectedIds:         []uuid.UUID{reusable[0].Id, uuid.New()},
	})
	require.NoError(t, err)

	require.Len(t, res.Questions, 2)
	assert.Equal(t, "Which of these is a mammal?", res.Questions[0].Text)
	require.NotNil(t, res.Questions[0].LibraryID)
	assert.Equal(t, reusable[0].Id, *res.Questions[0].LibraryID)
	assert.Nil(t, res.Questions[0].Source)
	require.NotNil(t, res.Questions[1].Source)
	assert.Equal(t, 1, gen.calls)
}

func TestQuizManagement(t *testing.T) {
	f := newFixture(t)
	doc := f.seedDocument(t, "cats are mammals")
	svc := f.quizService(&scriptedGenerator{text: uniqueText})
	ctx := context.Background()

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		res, err := svc.Generate(ctx, uuid.New(), &dto.GenerateQuizRequest{DocumentId: doc.Id, Topic: "cats", NumQuestions: 1})
		require.NoError(t, err)
		ids = append(ids, res.QuizId)
	}

	page, err := svc.List(ctx, &dto.ListQuizRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	assert.Len(t, page.Items, 1)

	byCourse, err := svc.ListByCourse(ctx, doc.CourseId)
	require.NoError(t, err)
	assert.Len(t, byCourse, 3)

	published, err := svc.Publish(ctx, ids[0], true)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)
	shown, err := svc.Show(ctx, ids[0])
	require.NoError(t, err)
	assert.True(t, shown.IsPublished)

	require.NoError(t, svc.Delete(ctx, ids[1]))
	_, err = svc.Show(ctx, ids[1])
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = svc.RetrievalRecords(ctx, ids[1])
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.Publish(ctx, uuid.New(), true)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
