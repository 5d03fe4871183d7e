package contract

import (
	"context"

	"quiz-generation-be/internal/entity"
	"quiz-generation-be/internal/repository/specification"

	"github.com/google/uuid"
)

type QuizRepository interface {
	Create(ctx context.Context, quiz *entity.Quiz) error
	Update(ctx context.Context, quiz *entity.Quiz) error
	Delete(ctx context.Context, id uuid.UUID) error
	DetachDocument(ctx context.Context, documentId uuid.UUID) error // documentId -> NULL on every quiz
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Quiz, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Quiz, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type QuizQuestionRepository interface {
	CreateBatch(ctx context.Context, questions []*entity.QuizQuestion) error
	DeleteByQuizId(ctx context.Context, quizId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuizQuestion, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type RetrievalRecordRepository interface {
	CreateBatch(ctx context.Context, records []*entity.RetrievalRecord) error
	DeleteByQuizId(ctx context.Context, quizId uuid.UUID) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RetrievalRecord, error)
}
