package mapper

import (
	"encoding/json"

	"quiz-generation-be/internal/entity"
	"quiz-generation-be/internal/model"

	"gorm.io/datatypes"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:           d.Id,
		CourseId:     d.CourseId,
		UploadedBy:   d.UploadedBy,
		OriginalName: d.OriginalName,
		FilePath:     d.FilePath,
		MimeType:     d.MimeType,
		SizeBytes:    d.SizeBytes,
		CreatedAt:    d.CreatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	return &model.Document{
		Id:           d.Id,
		CourseId:     d.CourseId,
		UploadedBy:   d.UploadedBy,
		OriginalName: d.OriginalName,
		FilePath:     d.FilePath,
		MimeType:     d.MimeType,
		SizeBytes:    d.SizeBytes,
		CreatedAt:    d.CreatedAt,
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}

type PassageMapper struct{}

func NewPassageMapper() *PassageMapper {
	return &PassageMapper{}
}

func (m *PassageMapper) ToEntity(p *model.Passage) *entity.Passage {
	if p == nil {
		return nil
	}

	var keywords []string
	if len(p.Keywords) > 0 {
		// Unreadable keyword blobs are treated as absent annotations.
		_ = json.Unmarshal(p.Keywords, &keywords)
	}

	return &entity.Passage{
		Id:         p.Id,
		DocumentId: p.DocumentId,
		ChunkIndex: p.ChunkIndex,
		Content:    p.Content,
		Keywords:   keywords,
		Embedding:  p.Embedding,
		CreatedAt:  p.CreatedAt,
	}
}

func (m *PassageMapper) ToModel(p *entity.Passage) *model.Passage {
	if p == nil {
		return nil
	}

	var keywords datatypes.JSON
	if len(p.Keywords) > 0 {
		raw, err := json.Marshal(p.Keywords)
		if err == nil {
			keywords = datatypes.JSON(raw)
		}
	}

	return &model.Passage{
		Id:         p.Id,
		DocumentId: p.DocumentId,
		ChunkIndex: p.ChunkIndex,
		Content:    p.Content,
		Keywords:   keywords,
		Embedding:  p.Embedding,
		CreatedAt:  p.CreatedAt,
	}
}

func (m *PassageMapper) ToEntities(passages []*model.Passage) []*entity.Passage {
	entities := make([]*entity.Passage, len(passages))
	for i, p := range passages {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

func (m *PassageMapper) ToModels(passages []*entity.Passage) []*model.Passage {
	models := make([]*model.Passage, len(passages))
	for i, p := range passages {
		models[i] = m.ToModel(p)
	}
	return models
}
