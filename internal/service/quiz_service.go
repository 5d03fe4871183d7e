package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"quiz-generation-be/internal/config"
	"quiz-generation-be/internal/dto"
	"quiz-generation-be/internal/entity"
	"quiz-generation-be/internal/mapper"
	"quiz-generation-be/internal/pkg/apperror"
	"quiz-generation-be/internal/pkg/logger"
	"quiz-generation-be/internal/repository/specification"
	"quiz-generation-be/internal/repository/unitofwork"
	"quiz-generation-be/pkg/events"
	"quiz-generation-be/pkg/mcq"
	"quiz-generation-be/pkg/rag/quizgen"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	quizModule = "QUIZ"

	defaultNumQuestions = 5
	defaultListLimit    = 10
)

type IQuizService interface {
	Preview(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GeneratePreviewResponse, error)
	Finalize(ctx context.Context, userId uuid.UUID, req *dto.FinalizeQuizRequest) (*dto.FinalizeQuizResponse, error)
	Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateQuizRequest) (*dto.FinalizeQuizResponse, error)
	List(ctx context.Context, req *dto.ListQuizRequest) (*dto.ListQuizResponse, error)
	ListByCourse(ctx context.Context, courseId uuid.UUID) ([]*dto.QuizResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowQuizResponse, error)
	Publish(ctx context.Context, id uuid.UUID, isPublished bool) (*dto.QuizResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RetrievalRecords(ctx context.Context, id uuid.UUID) ([]*dto.RetrievalRecordResponse, error)
}

type quizService struct {
	uowFactory     unitofwork.RepositoryFactory
	searchService  ISearchService
	orchestrator   *quizgen.Orchestrator
	libraryMapper  *mapper.QuestionLibraryMapper
	cfg            config.QuizConfig
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewQuizService(
	uowFactory unitofwork.RepositoryFactory,
	searchService ISearchService,
	orchestrator *quizgen.Orchestrator,
	cfg config.QuizConfig,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IQuizService {
	return &quizService{
		uowFactory:     uowFactory,
		searchService:  searchService,
		orchestrator:   orchestrator,
		libraryMapper:  mapper.NewQuestionLibraryMapper(),
		cfg:            cfg,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *quizService) Preview(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GeneratePreviewResponse, error) {
	ctx, span := tracer.Start(ctx, "QuizService.Preview", trace.WithAttributes(
		attribute.String("document.id", req.DocumentId.String()),
		attribute.String("topic", req.Topic),
	))
	defer span.End()

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, apperror.NewValidationError("topic", "topic must not be empty")
	}

	slots, err := s.distribution(req)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := findDocument(ctx, uow, req.DocumentId); err != nil {
		return nil, err
	}

	scored, err := s.searchService.Retrieve(ctx, req.DocumentId, topic, s.cfg.ContextTopK)
	if err != nil {
		return nil, err
	}
	if len(scored) == 0 {
		return nil, apperror.NewInsufficientContextError("")
	}

	passages := make([]quizgen.Passage, 0, len(scored))
	for _, sc := range scored {
		passages = append(passages, quizgen.Passage{ID: sc.PassageID, Text: sc.Text, Similarity: sc.Similarity})
	}

	seeds, err := s.loadPreselected(ctx, uow, req.DocumentId, req.PreselectedIds)
	if err != nil {
		return nil, err
	}

	exclude, err := s.rejectedTexts(ctx, uow, req.DocumentId)
	if err != nil {
		return nil, err
	}

	questions, err := s.orchestrator.Run(ctx, quizgen.Request{
		Passages:     passages,
		Seed:         seeds,
		Distribution: slots,
		Exclude:      exclude,
	})
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, quizgen.ErrExhausted) {
			span.SetStatus(codes.Error, "generation exhausted")
			return nil, apperror.NewGenerationExhaustedError("")
		}
		return nil, err
	}

	requested := quizgen.Total(slots)
	if requested < len(seeds) {
		requested = len(seeds)
	}

	s.logger.Info(quizModule, "Quiz preview generated", map[string]interface{}{
		"document_id": req.DocumentId,
		"topic":       topic,
		"requested":   requested,
		"generated":   len(questions),
		"seeded":      len(seeds),
	})
	span.SetAttributes(attribute.Int("requested", requested), attribute.Int("generated", len(questions)))

	return &dto.GeneratePreviewResponse{
		DocumentId: req.DocumentId,
		Topic:      topic,
		Requested:  requested,
		Generated:  len(questions),
		Questions:  questions,
	}, nil
}

func (s *quizService) distribution(req *dto.GenerateQuizRequest) ([]quizgen.Slot, error) {
	difficulty := req.Difficulty
	if strings.TrimSpace(difficulty) == "" {
		difficulty = string(mcq.DifficultyMedium)
	}
	num := req.NumQuestions
	if num == 0 {
		num = defaultNumQuestions
	}

	slots, err := quizgen.NewDistribution(req.DifficultyDistribution, difficulty, num)
	if err != nil {
		field := "difficulty"
		if len(req.DifficultyDistribution) > 0 {
			field = "difficulty_distribution"
		}
		return nil, apperror.NewValidationError(field, err.Error())
	}
	if quizgen.Total(slots) == 0 && len(req.PreselectedIds) == 0 {
		return nil, apperror.NewValidationError("difficulty_distribution", "at least one question must be requested")
	}
	return slots, nil
}

// loadPreselected keeps the caller's order and skips ids that are unknown,
// belong to another document or were marked poor.
func (s *quizService) loadPreselected(ctx context.Context, uow unitofwork.UnitOfWork, documentId uuid.UUID, ids []uuid.UUID) ([]mcq.Question, error) {
	seeds := make([]mcq.Question, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))

	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		entry, err := uow.QuestionLibraryRepository().FindOne(ctx,
			specification.ByID{ID: id},
			specification.ByDocumentID{DocumentID: documentId},
		)
		if err != nil {
			return nil, err
		}
		if entry == nil || entry.Quality != entity.QuestionQualityGood {
			s.logger.Warn(quizModule, "Skipping unavailable preselected question", map[string]interface{}{
				"library_id":  id,
				"document_id": documentId,
			})
			continue
		}
		seeds = append(seeds, s.libraryMapper.ToQuestion(entry))
	}
	return seeds, nil
}

func (s *quizService) rejectedTexts(ctx context.Context, uow unitofwork.UnitOfWork, documentId uuid.UUID) ([]string, error) {
	entries, err := uow.QuestionLibraryRepository().FindAll(ctx,
		specification.SelectColumns{Columns: []string{"id", "question_text"}},
		specification.ByDocumentID{DocumentID: documentId},
		specification.ByQuality{Quality: string(entity.QuestionQualityPoor)},
	)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(entries))
	for _, e := range entries {
		texts = append(texts, e.QuestionText)
	}
	return texts, nil
}

func (s *quizService) Finalize(ctx context.Context, userId uuid.UUID, req *dto.FinalizeQuizRequest) (*dto.FinalizeQuizResponse, error) {
	ctx, span := tracer.Start(ctx, "QuizService.Finalize", trace.WithAttributes(
		attribute.String("document.id", req.DocumentId.String()),
		attribute.Int("questions", len(req.Questions)),
	))
	defer span.End()

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, apperror.NewValidationError("topic", "topic must not be empty")
	}
	if len(req.Questions) == 0 {
		return nil, apperror.NewValidationError("questions", "at least one question is required")
	}

	overall := mcq.DifficultyMedium
	if strings.TrimSpace(req.Difficulty) != "" {
		d, err := mcq.ParseDifficulty(req.Difficulty)
		if err != nil {
			return nil, apperror.NewValidationError("difficulty", err.Error())
		}
		overall = d
	}

	questions := make([]mcq.Question, 0, len(req.Questions))
	for i, p := range req.Questions {
		q, err := s.fromPayload(p, overall)
		if err != nil {
			return nil, apperror.NewValidationError(fmt.Sprintf("questions[%d]", i), err.Error())
		}
		questions = append(questions, q)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := findDocument(ctx, uow, req.DocumentId)
	if err != nil {
		return nil, err
	}

	createdBy := userId
	if createdBy == uuid.Nil {
		createdBy = document.UploadedBy
	}

	totalSecs := 0
	for _, q := range questions {
		totalSecs += q.EffectiveTimeSecs()
	}

	documentId := document.Id
	quiz := &entity.Quiz{
		Id:             uuid.New(),
		CourseId:       document.CourseId,
		CreatedBy:      createdBy,
		DocumentId:     &documentId,
		Title:          "Quiz: " + topic,
		Topic:          topic,
		TotalQuestions: len(questions),
		AvgDifficulty:  string(overall),
		TotalTimeMins:  totalSecs / 60,
		TotalMarks:     len(questions),
		IsPublished:    false,
		CreatedAt:      time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.QuizRepository().Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}

	quizQuestions := make([]*entity.QuizQuestion, 0, len(questions))
	newEntries := 0
	for i, q := range questions {
		libraryId, created, err := s.ensureLibraryEntry(ctx, uow, document.Id, q)
		if err != nil {
			return nil, err
		}
		if created {
			newEntries++
		}

		quizQuestions = append(quizQuestions, &entity.QuizQuestion{
			Id:             uuid.New(),
			QuizId:         quiz.Id,
			LibraryEntryId: libraryId,
			QOrder:         i + 1,
			QuestionText:   q.Text,
			OptionA:        q.Options.A,
			OptionB:        q.Options.B,
			OptionC:        q.Options.C,
			OptionD:        q.Options.D,
			CorrectOption:  string(q.Correct),
			Difficulty:     string(q.Difficulty),
			TimeSecs:       q.EffectiveTimeSecs(),
			Marks:          1,
		})
	}
	if err := uow.QuizQuestionRepository().CreateBatch(ctx, quizQuestions); err != nil {
		return nil, fmt.Errorf("create quiz questions: %w", err)
	}

	records, err := s.retrievalRecords(ctx, uow, quiz.Id, document.Id, questions)
	if err != nil {
		return nil, err
	}
	if err := uow.RetrievalRecordRepository().CreateBatch(ctx, records); err != nil {
		return nil, fmt.Errorf("create retrieval records: %w", err)
	}

	if err := uow.Commit(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.logger.Info(quizModule, "Quiz finalized", map[string]interface{}{
		"quiz_id":         quiz.Id,
		"document_id":     document.Id,
		"questions":       len(quizQuestions),
		"library_created": newEntries,
		"records":         len(records),
	})

	if s.eventPublisher != nil {
		evt := events.New(events.QuizFinalized, map[string]interface{}{
			"quiz_id":     quiz.Id,
			"document_id": document.Id,
			"course_id":   quiz.CourseId,
			"created_by":  createdBy,
			"questions":   len(quizQuestions),
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn(quizModule, "Failed to publish event", map[string]interface{}{
				"type":  evt.EventType(),
				"error": err.Error(),
			})
		}
	}

	return &dto.FinalizeQuizResponse{
		QuizId:         quiz.Id,
		QuestionsSaved: len(quizQuestions),
		Topic:          topic,
		Difficulty:     string(overall),
	}, nil
}

func (s *quizService) fromPayload(p dto.QuestionPayload, fallback mcq.Difficulty) (mcq.Question, error) {
	text := strings.TrimSpace(p.Question)
	if text == "" {
		return mcq.Question{}, errors.New("question text must not be empty")
	}

	correct, ok := mcq.ParseOptionLabel(p.Correct)
	if !ok {
		return mcq.Question{}, fmt.Errorf("correct must be one of A, B, C, D, got %q", p.Correct)
	}

	difficulty := fallback
	if strings.TrimSpace(p.Difficulty) != "" {
		d, err := mcq.ParseDifficulty(p.Difficulty)
		if err != nil {
			return mcq.Question{}, err
		}
		difficulty = d
	}

	timeSecs := p.TimeSecs
	if timeSecs <= 0 {
		timeSecs = s.cfg.DefaultTimeSecs
	}

	return mcq.Question{
		Text: text,
		Options: mcq.Options{
			A: p.Options.A,
			B: p.Options.B,
			C: p.Options.C,
			D: p.Options.D,
		},
		Correct:    correct,
		Difficulty: difficulty,
		TimeSecs:   timeSecs,
		LibraryID:  p.LibraryId,
		Source:     p.Source,
	}, nil
}

// ensureLibraryEntry returns the id of the library entry holding q's text, creating
// a good entry when none exists.
func (s *quizService) ensureLibraryEntry(ctx context.Context, uow unitofwork.UnitOfWork, documentId uuid.UUID, q mcq.Question) (*uuid.UUID, bool, error) {
	entry := s.libraryMapper.FromQuestion(documentId, q)
	created, err := uow.QuestionLibraryRepository().CreateIfAbsent(ctx, entry)
	if err != nil {
		return nil, false, fmt.Errorf("create library entry: %w", err)
	}
	if created {
		return &entry.Id, true, nil
	}

	existing, err := uow.QuestionLibraryRepository().FindOne(ctx,
		specification.ByDocumentID{DocumentID: documentId},
		specification.ByQuestionText{Text: q.Text},
	)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, nil
	}
	return &existing.Id, false, nil
}

// retrievalRecords keeps one record per distinct source passage that still
// belongs to the document, using the first similarity seen.
func (s *quizService) retrievalRecords(ctx context.Context, uow unitofwork.UnitOfWork, quizId, documentId uuid.UUID, questions []mcq.Question) ([]*entity.RetrievalRecord, error) {
	similarity := make(map[uuid.UUID]float64)
	order := make([]uuid.UUID, 0)
	for _, q := range questions {
		if q.Source == nil || q.Source.PassageID == uuid.Nil {
			continue
		}
		if _, ok := similarity[q.Source.PassageID]; ok {
			continue
		}
		similarity[q.Source.PassageID] = q.Source.Similarity
		order = append(order, q.Source.PassageID)
	}
	if len(order) == 0 {
		return nil, nil
	}

	passages, err := uow.PassageRepository().FindAll(ctx,
		specification.SelectColumns{Columns: []string{"id", "document_id", "chunk_index"}},
		specification.ByDocumentID{DocumentID: documentId},
		specification.ByIDs{IDs: order},
	)
	if err != nil {
		return nil, err
	}
	known := make(map[uuid.UUID]struct{}, len(passages))
	for _, p := range passages {
		known[p.Id] = struct{}{}
	}

	now := time.Now()
	records := make([]*entity.RetrievalRecord, 0, len(order))
	for _, passageId := range order {
		if _, ok := known[passageId]; !ok {
			s.logger.Warn(quizModule, "Dropping provenance for unknown passage", map[string]interface{}{
				"passage_id":  passageId,
				"document_id": documentId,
			})
			continue
		}
		records = append(records, &entity.RetrievalRecord{
			Id:         uuid.New(),
			QuizId:     quizId,
			PassageId:  passageId,
			Similarity: similarity[passageId],
			UsedAt:     now,
		})
	}
	return records, nil
}

func (s *quizService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateQuizRequest) (*dto.FinalizeQuizResponse, error) {
	preview, err := s.Preview(ctx, req)
	if err != nil {
		return nil, err
	}

	payloads := make([]dto.QuestionPayload, 0, len(preview.Questions))
	for _, q := range preview.Questions {
		payloads = append(payloads, toQuestionPayload(q))
	}

	return s.Finalize(ctx, userId, &dto.FinalizeQuizRequest{
		DocumentId: req.DocumentId,
		Topic:      preview.Topic,
		Difficulty: req.Difficulty,
		Questions:  payloads,
	})
}

func toQuestionPayload(q mcq.Question) dto.QuestionPayload {
	return dto.QuestionPayload{
		Question: q.Text,
		Options: dto.OptionsPayload{
			A: q.Options.A,
			B: q.Options.B,
			C: q.Options.C,
			D: q.Options.D,
		},
		Correct:    string(q.Correct),
		Difficulty: string(q.Difficulty),
		TimeSecs:   q.TimeSecs,
		LibraryId:  q.LibraryID,
		Source:     q.Source,
	}
}

func (s *quizService) List(ctx context.Context, req *dto.ListQuizRequest) (*dto.ListQuizResponse, error) {
	page := req.Page
	if page <= 0 {
		page = 1
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.QuizRepository().Count(ctx)
	if err != nil {
		return nil, err
	}

	quizzes, err := uow.QuizRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.QuizResponse, 0, len(quizzes))
	for _, q := range quizzes {
		items = append(items, toQuizResponse(q))
	}

	return &dto.ListQuizResponse{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *quizService) ListByCourse(ctx context.Context, courseId uuid.UUID) ([]*dto.QuizResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	quizzes, err := uow.QuizRepository().FindAll(ctx,
		specification.ByCourseID{CourseID: courseId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.QuizResponse, 0, len(quizzes))
	for _, q := range quizzes {
		res = append(res, toQuizResponse(q))
	}
	return res, nil
}

func (s *quizService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowQuizResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	quiz, err := findQuiz(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	questions, err := uow.QuizQuestionRepository().FindAll(ctx,
		specification.ByQuizID{QuizID: id},
		specification.OrderBy{Field: "q_order"},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ShowQuizResponse{
		QuizResponse: *toQuizResponse(quiz),
		Questions:    make([]*dto.QuizQuestionResponse, 0, len(questions)),
	}
	for _, q := range questions {
		res.Questions = append(res.Questions, &dto.QuizQuestionResponse{
			Id:           q.Id,
			QOrder:       q.QOrder,
			QuestionText: q.QuestionText,
			Options: dto.OptionsPayload{
				A: q.OptionA,
				B: q.OptionB,
				C: q.OptionC,
				D: q.OptionD,
			},
			CorrectOption: q.CorrectOption,
			Difficulty:    q.Difficulty,
			TimeSecs:      q.TimeSecs,
			Marks:         q.Marks,
		})
	}
	return res, nil
}

func (s *quizService) Publish(ctx context.Context, id uuid.UUID, isPublished bool) (*dto.QuizResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	quiz, err := findQuiz(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	quiz.IsPublished = isPublished
	if err := uow.QuizRepository().Update(ctx, quiz); err != nil {
		return nil, err
	}
	return toQuizResponse(quiz), nil
}

func (s *quizService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := findQuiz(ctx, uow, id); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.RetrievalRecordRepository().DeleteByQuizId(ctx, id); err != nil {
		return err
	}
	if err := uow.QuizQuestionRepository().DeleteByQuizId(ctx, id); err != nil {
		return err
	}
	if err := uow.QuizRepository().Delete(ctx, id); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *quizService) RetrievalRecords(ctx context.Context, id uuid.UUID) ([]*dto.RetrievalRecordResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := findQuiz(ctx, uow, id); err != nil {
		return nil, err
	}

	records, err := uow.RetrievalRecordRepository().FindAll(ctx,
		specification.ByQuizID{QuizID: id},
		specification.OrderBy{Field: "similarity", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.RetrievalRecordResponse, 0, len(records))
	for _, r := range records {
		res = append(res, &dto.RetrievalRecordResponse{
			PassageId:  r.PassageId,
			Similarity: r.Similarity,
			UsedAt:     r.UsedAt,
		})
	}
	return res, nil
}

func findQuiz(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.Quiz, error) {
	quiz, err := uow.QuizRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, apperror.NewNotFoundError("quiz", "")
	}
	return quiz, nil
}

func toQuizResponse(q *entity.Quiz) *dto.QuizResponse {
	return &dto.QuizResponse{
		Id:             q.Id,
		CourseId:       q.CourseId,
		CreatedBy:      q.CreatedBy,
		DocumentId:     q.DocumentId,
		Title:          q.Title,
		Topic:          q.Topic,
		TotalQuestions: q.TotalQuestions,
		AvgDifficulty:  q.AvgDifficulty,
		TotalTimeMins:  q.TotalTimeMins,
		TotalMarks:     q.TotalMarks,
		IsPublished:    q.IsPublished,
		CreatedAt:      q.CreatedAt,
	}
}
