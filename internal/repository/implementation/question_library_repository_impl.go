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
	"gorm.io/gorm/clause"
)

type QuestionLibraryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.QuestionLibraryMapper
}

func NewQuestionLibraryRepository(db *gorm.DB) contract.QuestionLibraryRepository {
	return &QuestionLibraryRepositoryImpl{
		db:     db,
		mapper: mapper.NewQuestionLibraryMapper(),
	}
}

func (r *QuestionLibraryRepositoryImpl) CreateIfAbsent(ctx context.Context, entry *entity.QuestionLibraryEntry) (bool, error) {
	m := r.mapper.ToModel(entry)
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(m)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	*entry = *r.mapper.ToEntity(m)
	return true, nil
}

func (r *QuestionLibraryRepositoryImpl) UpdateQuality(ctx context.Context, id uuid.UUID, quality entity.QuestionQuality) error {
	return r.db.WithContext(ctx).
		Model(&model.QuestionLibraryEntry{}).
		Where("id = ?", id).
		Update("quality", string(quality)).Error
}

func (r *QuestionLibraryRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.QuestionLibraryEntry{}).Error
}

func (r *QuestionLibraryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.QuestionLibraryEntry, error) {
	var m model.QuestionLibraryEntry
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *QuestionLibraryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuestionLibraryEntry, error) {
	var models []*model.QuestionLibraryEntry
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
