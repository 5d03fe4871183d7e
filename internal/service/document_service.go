package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"quiz-generation-be/internal/config"
	"quiz-generation-be/internal/dto"
	"quiz-generation-be/internal/entity"
	"quiz-generation-be/internal/pkg/apperror"
	"quiz-generation-be/internal/pkg/logger"
	"quiz-generation-be/internal/repository/specification"
	"quiz-generation-be/internal/repository/unitofwork"
	"quiz-generation-be/pkg/embedding"
	"quiz-generation-be/pkg/events"
	"quiz-generation-be/pkg/extractor"
	"quiz-generation-be/pkg/textclean"
	"quiz-generation-be/pkg/utils"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	ingestModule = "INGEST"

	StatusProcessed        = "processed"
	StatusPendingEmbedding = "pending_embedding"
)

type IDocumentService interface {
	Upload(ctx context.Context, userId uuid.UUID, req *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error)
	List(ctx context.Context) ([]*dto.DocumentResponse, error)
	ListByCourse(ctx context.Context, courseId uuid.UUID) ([]*dto.DocumentResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.DocumentResponse, error)
	ListPassages(ctx context.Context, id uuid.UUID) ([]*dto.PassageResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	gateway          *embedding.Gateway
	normalizer       *textclean.Normalizer
	cfg              config.IngestConfig
	uploadDir        string
	publisherService IPublisherService
	eventPublisher   events.Publisher
	logger           logger.ILogger
}

// NewDocumentService wires the ingestion pipeline. publisherService and
// eventPublisher may be nil to disable embedding backfill and domain events.
func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	gateway *embedding.Gateway,
	cfg config.IngestConfig,
	uploadDir string,
	publisherService IPublisherService,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		gateway:          gateway,
		normalizer:       textclean.NewNormalizer(cfg.HeaderMarker, cfg.FooterMarker),
		cfg:              cfg,
		uploadDir:        uploadDir,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           log,
	}
}

func (s *documentService) Upload(ctx context.Context, userId uuid.UUID, req *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error) {
	ctx, span := tracer.Start(ctx, "DocumentService.Upload", trace.WithAttributes(
		attribute.String("document.name", req.OriginalName),
		attribute.Int("document.size", len(req.Data)),
	))
	defer span.End()

	if !extractor.IsSupported(req.OriginalName) {
		return nil, apperror.NewValidationError("file", fmt.Sprintf("unsupported file type, expected one of %s", strings.Join(extractor.SupportedExtensions, ", ")))
	}

	raw, err := extractor.ExtractText(req.OriginalName, req.Data)
	if err != nil {
		if errors.Is(err, extractor.ErrEmptyFile) || errors.Is(err, extractor.ErrUnsupportedType) {
			return nil, apperror.NewValidationError("file", err.Error())
		}
		span.RecordError(err)
		return nil, apperror.NewValidationError("file", fmt.Sprintf("could not read document: %v", err))
	}

	cleaned := s.normalizer.Normalize(raw)
	if cleaned == "" {
		return nil, apperror.NewValidationError("file", "document contains no readable text")
	}

	chunks := utils.SplitText(cleaned, s.cfg.ChunkSize, s.cfg.ChunkOverlap)

	document := entity.Document{
		Id:           uuid.New(),
		CourseId:     req.CourseId,
		UploadedBy:   userId,
		OriginalName: req.OriginalName,
		MimeType:     req.MimeType,
		SizeBytes:    int64(len(req.Data)),
		CreatedAt:    time.Now(),
	}

	passages, embedded, err := s.buildPassages(ctx, document.Id, chunks)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "embedding aborted")
		return nil, err
	}

	path, err := s.storeFile(document.Id, req.OriginalName, req.Data)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("store upload: %w", err)
	}
	document.FilePath = path

	if err := s.persist(ctx, &document, passages); err != nil {
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			s.logger.Error(ingestModule, "Failed to remove upload after rollback", map[string]interface{}{
				"path":  path,
				"error": rmErr.Error(),
			})
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist failed")
		return nil, err
	}

	status := StatusProcessed
	if embedded < len(passages) {
		status = StatusPendingEmbedding
		s.requestBackfill(ctx, document.Id)
	}

	s.logger.Info(ingestModule, "Document ingested", map[string]interface{}{
		"document_id": document.Id,
		"chunks":      len(passages),
		"embedded":    embedded,
	})

	s.publishEvent(ctx, events.New(events.DocumentIngested, map[string]interface{}{
		"document_id":        document.Id,
		"course_id":          document.CourseId,
		"uploaded_by":        userId,
		"chunks_created":     len(passages),
		"embeddings_created": embedded,
	}))

	span.SetAttributes(attribute.Int("passages", len(passages)), attribute.Int("embedded", embedded))

	return &dto.UploadDocumentResponse{
		Id:                document.Id,
		ChunksCreated:     len(passages),
		EmbeddingsCreated: embedded,
		Status:            status,
	}, nil
}

// buildPassages embeds every chunk. A failed embedding leaves the passage without
// a vector for the backfill consumer; only cancellation aborts the upload.
func (s *documentService) buildPassages(ctx context.Context, documentId uuid.UUID, chunks []string) ([]*entity.Passage, int, error) {
	passages := make([]*entity.Passage, 0, len(chunks))
	embedded := 0

	for i, chunk := range chunks {
		blob, err := s.gateway.Embed(ctx, chunk)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, 0, ctxErr
			}
			s.logger.Warn(ingestModule, "Embedding failed, passage queued for backfill", map[string]interface{}{
				"document_id": documentId,
				"chunk_index": i,
				"error":       err.Error(),
			})
		}
		if blob != nil {
			embedded++
		}

		passages = append(passages, &entity.Passage{
			Id:         uuid.New(),
			DocumentId: documentId,
			ChunkIndex: i,
			Content:    chunk,
			Keywords:   textclean.ExtractKeywords(chunk, s.cfg.KeywordCount),
			Embedding:  blob,
			CreatedAt:  time.Now(),
		})
	}

	return passages, embedded, nil
}

func (s *documentService) storeFile(id uuid.UUID, originalName string, data []byte) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.uploadDir, id.String()+strings.ToLower(filepath.Ext(originalName)))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (s *documentService) persist(ctx context.Context, document *entity.Document, passages []*entity.Passage) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Create(ctx, document); err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	if err := uow.PassageRepository().CreateBatch(ctx, passages); err != nil {
		return fmt.Errorf("create passages: %w", err)
	}
	return uow.Commit()
}

func (s *documentService) requestBackfill(ctx context.Context, documentId uuid.UUID) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(dto.PublishEmbedPassagesMessage{DocumentId: documentId})
	if err != nil {
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Error(ingestModule, "Failed to queue embedding backfill", map[string]interface{}{
			"document_id": documentId,
			"error":       err.Error(),
		})
	}
}

func (s *documentService) publishEvent(ctx context.Context, evt events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn(ingestModule, "Failed to publish event", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err.Error(),
		})
	}
}

func (s *documentService) List(ctx context.Context) ([]*dto.DocumentResponse, error) {
	return s.list(ctx, specification.OrderBy{Field: "created_at", Desc: true})
}

func (s *documentService) ListByCourse(ctx context.Context, courseId uuid.UUID) ([]*dto.DocumentResponse, error) {
	return s.list(ctx,
		specification.ByCourseID{CourseID: courseId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}

func (s *documentService) list(ctx context.Context, specs ...specification.Specification) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	documents, err := uow.DocumentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.DocumentResponse, 0, len(documents))
	for _, d := range documents {
		res = append(res, toDocumentResponse(d, 0))
	}
	return res, nil
}

func (s *documentService) Show(ctx context.Context, id uuid.UUID) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := findDocument(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	count, err := uow.PassageRepository().Count(ctx, specification.ByDocumentID{DocumentID: id})
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(document, count), nil
}

func (s *documentService) ListPassages(ctx context.Context, id uuid.UUID) ([]*dto.PassageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := findDocument(ctx, uow, id); err != nil {
		return nil, err
	}

	passages, err := uow.PassageRepository().FindAll(ctx,
		specification.ByDocumentID{DocumentID: id},
		specification.OrderBy{Field: "chunk_index"},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PassageResponse, 0, len(passages))
	for _, p := range passages {
		keywords := p.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		res = append(res, &dto.PassageResponse{
			Id:           p.Id,
			ChunkIndex:   p.ChunkIndex,
			Text:         p.Content,
			Keywords:     keywords,
			HasEmbedding: p.HasEmbedding(),
		})
	}
	return res, nil
}

// Delete removes the document with its passages, provenance and library entries.
// Quizzes built from it survive with their document reference cleared.
func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := findDocument(ctx, uow, id)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.RetrievalRecordRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}
	if err := uow.QuestionLibraryRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}
	if err := uow.QuizRepository().DetachDocument(ctx, id); err != nil {
		return err
	}
	if err := uow.PassageRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if document.FilePath != "" {
		if err := os.Remove(document.FilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn(ingestModule, "Failed to remove document file", map[string]interface{}{
				"document_id": id,
				"path":        document.FilePath,
				"error":       err.Error(),
			})
		}
	}
	return nil
}

func findDocument(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.Document, error) {
	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, apperror.NewNotFoundError("document", "")
	}
	return document, nil
}

func toDocumentResponse(d *entity.Document, passageCount int64) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:           d.Id,
		CourseId:     d.CourseId,
		UploadedBy:   d.UploadedBy,
		OriginalName: d.OriginalName,
		MimeType:     d.MimeType,
		SizeBytes:    d.SizeBytes,
		PassageCount: passageCount,
		CreatedAt:    d.CreatedAt,
	}
}
