package service

import (
	"context"
	"fmt"
	"strings"

	"quiz-generation-be/internal/config"
	"quiz-generation-be/internal/dto"
	"quiz-generation-be/internal/pkg/apperror"
	"quiz-generation-be/internal/pkg/logger"
	"quiz-generation-be/internal/repository/specification"
	"quiz-generation-be/internal/repository/unitofwork"
	"quiz-generation-be/pkg/embedding"
	"quiz-generation-be/pkg/retrieval"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const searchModule = "SEARCH"

type ISearchService interface {
	Search(ctx context.Context, documentId uuid.UUID, req *dto.SearchRequest) (*dto.SearchResponse, error)
	Retrieve(ctx context.Context, documentId uuid.UUID, query string, topK int) ([]retrieval.Scored, error)
}

type searchService struct {
	uowFactory unitofwork.RepositoryFactory
	gateway    *embedding.Gateway
	cfg        config.QuizConfig
	logger     logger.ILogger
}

func NewSearchService(uowFactory unitofwork.RepositoryFactory, gateway *embedding.Gateway, cfg config.QuizConfig, log logger.ILogger) ISearchService {
	return &searchService{
		uowFactory: uowFactory,
		gateway:    gateway,
		cfg:        cfg,
		logger:     log,
	}
}

func (s *searchService) Search(ctx context.Context, documentId uuid.UUID, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	topK := req.TopK
	if topK <= 0 {
		topK = s.cfg.SearchTopK
	}
	if s.cfg.SearchMaxTopK > 0 && topK > s.cfg.SearchMaxTopK {
		topK = s.cfg.SearchMaxTopK
	}

	scored, err := s.Retrieve(ctx, documentId, req.Query, topK)
	if err != nil {
		return nil, err
	}

	results := make([]*dto.SearchResult, 0, len(scored))
	for _, sc := range scored {
		results = append(results, &dto.SearchResult{
			PassageId:  sc.PassageID,
			ChunkIndex: sc.ChunkIndex,
			Text:       sc.Text,
			Similarity: sc.Similarity,
		})
	}

	return &dto.SearchResponse{
		DocumentId: documentId,
		Query:      req.Query,
		TopK:       topK,
		Results:    results,
	}, nil
}

// Retrieve ranks the document's embedded passages against the query. Passages
// without a vector, or whose vector cannot be decoded, never appear.
func (s *searchService) Retrieve(ctx context.Context, documentId uuid.UUID, query string, topK int) ([]retrieval.Scored, error) {
	ctx, span := tracer.Start(ctx, "SearchService.Retrieve", trace.WithAttributes(
		attribute.String("document.id", documentId.String()),
		attribute.Int("top_k", topK),
	))
	defer span.End()

	if strings.TrimSpace(query) == "" {
		return nil, apperror.NewValidationError("query", "query must not be empty")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := findDocument(ctx, uow, documentId); err != nil {
		return nil, err
	}

	queryVec, err := s.gateway.EmbedQuery(ctx, query)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("embed query: %w", err)
	}

	passages, err := uow.PassageRepository().FindAll(ctx,
		specification.ByDocumentID{DocumentID: documentId},
		specification.HasEmbedding{},
		specification.OrderBy{Field: "chunk_index"},
	)
	if err != nil {
		return nil, err
	}

	candidates := make([]retrieval.Candidate, 0, len(passages))
	for _, p := range passages {
		vec, err := embedding.DecodeVector(p.Embedding)
		if err != nil {
			s.logger.Warn(searchModule, "Skipping passage with corrupt embedding", map[string]interface{}{
				"passage_id": p.Id,
				"error":      err.Error(),
			})
			continue
		}
		if len(vec) != len(queryVec) {
			s.logger.Warn(searchModule, "Embedding dimension mismatch", map[string]interface{}{
				"passage_id": p.Id,
				"passage":    len(vec),
				"query":      len(queryVec),
			})
		}
		candidates = append(candidates, retrieval.Candidate{
			PassageID:  p.Id,
			ChunkIndex: p.ChunkIndex,
			Text:       p.Content,
			Vector:     vec,
		})
	}

	ranked := retrieval.Rank(queryVec, candidates, topK)
	span.SetAttributes(attribute.Int("candidates", len(candidates)), attribute.Int("results", len(ranked)))
	return ranked, nil
}
