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

const passageBatchSize = 100

type PassageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PassageMapper
}

func NewPassageRepository(db *gorm.DB) contract.PassageRepository {
	return &PassageRepositoryImpl{
		db:     db,
		mapper: mapper.NewPassageMapper(),
	}
}

func (r *PassageRepositoryImpl) CreateBatch(ctx context.Context, passages []*entity.Passage) error {
	if len(passages) == 0 {
		return nil
	}
	models := r.mapper.ToModels(passages)
	if err := r.db.WithContext(ctx).CreateInBatches(models, passageBatchSize).Error; err != nil {
		return err
	}
	for i, m := range models {
		*passages[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *PassageRepositoryImpl) UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []byte) error {
	return r.db.WithContext(ctx).
		Model(&model.Passage{}).
		Where("id = ?", id).
		Update("embedding", embedding).Error
}

func (r *PassageRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.Passage{}).Error
}

func (r *PassageRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Passage, error) {
	var m model.Passage
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PassageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Passage, error) {
	var models []*model.Passage
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *PassageRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Passage{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
