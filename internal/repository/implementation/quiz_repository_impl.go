package implementation

import (
	"context"
	"errors"

	"quiz-generation-be/internal/entity"
	"quiz-generation-be/internal/mapper"
	"quiz-generation-be/internal/model"
	"quiz-generation-be/internal/repository/contract"
	"quiz-generation-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QuizMapper
}

func NewQuizRepository(db *gorm.DB) contract.QuizRepository {
	return &QuizRepositoryImpl{
		db:     db,
		mapper: mapper.NewQuizMapper(),
	}
}

func (r *QuizRepositoryImpl) Create(ctx context.Context, quiz *entity.Quiz) error {
	m := r.mapper.ToModel(quiz)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*quiz = *r.mapper.ToEntity(m)
	return nil
}

func (r *QuizRepositoryImpl) Update(ctx context.Context, quiz *entity.Quiz) error {
	m := r.mapper.ToModel(quiz)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*quiz = *r.mapper.ToEntity(m)
	return nil
}

func (r *QuizRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Quiz{}, "id = ?", id).Error
}

func (r *QuizRepositoryImpl) DetachDocument(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Quiz{}).
		Where("document_id = ?", documentId).
		Update("document_id", nil).Error
}

func (r *QuizRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Quiz, error) {
	var m model.Quiz
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *QuizRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Quiz, error) {
	var models []*model.Quiz
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *QuizRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Quiz{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type QuizQuestionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QuizQuestionMapper
}

func NewQuizQuestionRepository(db *gorm.DB) contract.QuizQuestionRepository {
	return &QuizQuestionRepositoryImpl{
		db:     db,
		mapper: mapper.NewQuizQuestionMapper(),
	}
}

func (r *QuizQuestionRepositoryImpl) CreateBatch(ctx context.Context, questions []*entity.QuizQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	models := r.mapper.ToModels(questions)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*questions[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *QuizQuestionRepositoryImpl) DeleteByQuizId(ctx context.Context, quizId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("quiz_id = ?", quizId).Delete(&model.QuizQuestion{}).Error
}

func (r *QuizQuestionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuizQuestion, error) {
	var models []*model.QuizQuestion
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *QuizQuestionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.QuizQuestion{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type RetrievalRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RetrievalRecordMapper
}

func NewRetrievalRecordRepository(db *gorm.DB) contract.RetrievalRecordRepository {
	return &RetrievalRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewRetrievalRecordMapper(),
	}
}

func (r *RetrievalRecordRepositoryImpl) CreateBatch(ctx context.Context, records []*entity.RetrievalRecord) error {
	if len(records) == 0 {
		return nil
	}
	models := make([]*model.RetrievalRecord, len(records))
	for i, rec := range records {
		models[i] = r.mapper.ToModel(rec)
	}
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*records[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *RetrievalRecordRepositoryImpl) DeleteByQuizId(ctx context.Context, quizId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("quiz_id = ?", quizId).Delete(&model.RetrievalRecord{}).Error
}

func (r *RetrievalRecordRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	passageIds := r.db.Model(&model.Passage{}).Select("id").Where("document_id = ?", documentId)
	return r.db.WithContext(ctx).Where("passage_id IN (?)", passageIds).Delete(&model.RetrievalRecord{}).Error
}

func (r *RetrievalRecordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RetrievalRecord, error) {
	var models []*model.RetrievalRecord
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
