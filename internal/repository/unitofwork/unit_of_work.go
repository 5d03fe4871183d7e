package unitofwork

import (
	"context"

	"quiz-generation-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	PassageRepository() contract.PassageRepository
	QuizRepository() contract.QuizRepository
	QuizQuestionRepository() contract.QuizQuestionRepository
	QuestionLibraryRepository() contract.QuestionLibraryRepository
	RetrievalRecordRepository() contract.RetrievalRecordRepository
}
