package service

import (
	"context"
	"strings"

	"quiz-generation-be/internal/dto"
	"quiz-generation-be/internal/entity"
	"quiz-generation-be/internal/pkg/apperror"
	"quiz-generation-be/internal/pkg/logger"
	"quiz-generation-be/internal/repository/specification"
	"quiz-generation-be/internal/repository/unitofwork"
	"quiz-generation-be/pkg/events"

	"github.com/google/uuid"
)

const libraryModule = "LIBRARY"

type ILibraryService interface {
	ListReusable(ctx context.Context, documentId uuid.UUID) ([]*dto.LibraryEntryResponse, error)
	MarkPoor(ctx context.Context, req *dto.MarkPoorRequest) (*dto.MarkPoorResponse, error)
}

type libraryService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher events.Publisher
	logger         logger.ILogger
}

func NewLibraryService(uowFactory unitofwork.RepositoryFactory, eventPublisher events.Publisher, log logger.ILogger) ILibraryService {
	return &libraryService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// ListReusable returns the document's good entries, oldest first.
func (s *libraryService) ListReusable(ctx context.Context, documentId uuid.UUID) ([]*dto.LibraryEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := findDocument(ctx, uow, documentId); err != nil {
		return nil, err
	}

	entries, err := uow.QuestionLibraryRepository().FindAll(ctx,
		specification.ByDocumentID{DocumentID: documentId},
		specification.ByQuality{Quality: string(entity.QuestionQualityGood)},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.LibraryEntryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, toLibraryEntryResponse(e))
	}
	return res, nil
}

// MarkPoor resolves the quiz's source document and flags the entry with the
// exact question text. Nothing changes when either lookup misses.
func (s *libraryService) MarkPoor(ctx context.Context, req *dto.MarkPoorRequest) (*dto.MarkPoorResponse, error) {
	if strings.TrimSpace(req.QuestionText) == "" {
		return nil, apperror.NewValidationError("question_text", "question text must not be empty")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	quiz, err := findQuiz(ctx, uow, req.QuizId)
	if err != nil {
		return nil, err
	}
	if quiz.DocumentId == nil {
		return nil, apperror.NewNotFoundError("document", "quiz is no longer linked to a document")
	}

	entry, err := uow.QuestionLibraryRepository().FindOne(ctx,
		specification.ByDocumentID{DocumentID: *quiz.DocumentId},
		specification.ByQuestionText{Text: req.QuestionText},
	)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NewNotFoundError("library entry", "")
	}

	if entry.Quality != entity.QuestionQualityPoor {
		if err := uow.QuestionLibraryRepository().UpdateQuality(ctx, entry.Id, entity.QuestionQualityPoor); err != nil {
			return nil, err
		}
		s.logger.Info(libraryModule, "Library question marked poor", map[string]interface{}{
			"entry_id":    entry.Id,
			"quiz_id":     quiz.Id,
			"document_id": entry.DocumentId,
		})

		if s.eventPublisher != nil {
			evt := events.New(events.QuestionMarkedPoor, map[string]interface{}{
				"entry_id":    entry.Id,
				"quiz_id":     quiz.Id,
				"document_id": entry.DocumentId,
			})
			if err := s.eventPublisher.Publish(ctx, evt); err != nil {
				s.logger.Warn(libraryModule, "Failed to publish event", map[string]interface{}{
					"type":  evt.EventType(),
					"error": err.Error(),
				})
			}
		}
	}

	return &dto.MarkPoorResponse{Id: entry.Id, Quality: string(entity.QuestionQualityPoor)}, nil
}

func toLibraryEntryResponse(e *entity.QuestionLibraryEntry) *dto.LibraryEntryResponse {
	return &dto.LibraryEntryResponse{
		Id:           e.Id,
		DocumentId:   e.DocumentId,
		QuestionText: e.QuestionText,
		Options: dto.OptionsPayload{
			A: e.OptionA,
			B: e.OptionB,
			C: e.OptionC,
			D: e.OptionD,
		},
		CorrectOption: e.CorrectOption,
		Difficulty:    e.Difficulty,
		TimeSecs:      e.TimeSecs,
		Quality:       string(e.Quality),
		CreatedAt:     e.CreatedAt,
	}
}
