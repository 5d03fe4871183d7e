package contract

import (
	"context"

	"quiz-generation-be/internal/entity"
	"quiz-generation-be/internal/repository/specification"

	"github.com/google/uuid"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type PassageRepository interface {
	CreateBatch(ctx context.Context, passages []*entity.Passage) error
	UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []byte) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Passage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Passage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
