package contract

import (
	"context"

	"quiz-generation-be/internal/entity"
	"quiz-generation-be/internal/repository/specification"

	"github.com/google/uuid"
)

type QuestionLibraryRepository interface {
	// CreateIfAbsent inserts entry unless (DocumentId, QuestionText) already exists.
	// It reports whether a row was written.
	CreateIfAbsent(ctx context.Context, entry *entity.QuestionLibraryEntry) (bool, error)
	UpdateQuality(ctx context.Context, id uuid.UUID, quality entity.QuestionQuality) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.QuestionLibraryEntry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuestionLibraryEntry, error)
}
