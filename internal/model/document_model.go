package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Document struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourseId     uuid.UUID `gorm:"type:uuid;not null;index"`
	UploadedBy   uuid.UUID `gorm:"type:uuid;not null;index"`
	OriginalName string    `gorm:"type:varchar(255)"`
	FilePath     string    `gorm:"type:varchar(500);not null"`
	MimeType     string    `gorm:"type:varchar(100)"`
	SizeBytes    int64
	CreatedAt    time.Time `gorm:"autoCreateTime"`

	Passages       []Passage              `gorm:"foreignKey:DocumentId;constraint:OnDelete:CASCADE"`
	LibraryEntries []QuestionLibraryEntry `gorm:"foreignKey:DocumentId;constraint:OnDelete:CASCADE"`
	Quizzes        []Quiz                 `gorm:"foreignKey:DocumentId;constraint:OnDelete:SET NULL"`
}

func (Document) TableName() string {
	return "documents"
}

type Passage struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	DocumentId uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_passages_document_chunk"`
	ChunkIndex int            `gorm:"not null;uniqueIndex:idx_passages_document_chunk"`
	Content    string         `gorm:"type:text;not null"`
	Keywords   datatypes.JSON // JSON array of strings
	Embedding  []byte         // little-endian float32 elements, no header
	CreatedAt  time.Time      `gorm:"autoCreateTime"`

	RetrievalRecords []RetrievalRecord `gorm:"foreignKey:PassageId;constraint:OnDelete:CASCADE"`
}

func (Passage) TableName() string {
	return "passages"
}
