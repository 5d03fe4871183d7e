package model

import (
	"time"

	"github.com/google/uuid"
)

type QuestionLibraryEntry struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_question_library_document_text"`
	QuestionText  string    `gorm:"type:text;not null;uniqueIndex:idx_question_library_document_text"`
	OptionA       string    `gorm:"type:text;not null"`
	OptionB       string    `gorm:"type:text;not null"`
	OptionC       string    `gorm:"type:text;not null"`
	OptionD       string    `gorm:"type:text;not null"`
	CorrectOption string    `gorm:"type:varchar(1);not null"`
	Difficulty    string    `gorm:"type:varchar(10)"`
	TimeSecs      int       `gorm:"default:60"`
	Quality       string    `gorm:"type:varchar(10);not null;default:good;index"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (QuestionLibraryEntry) TableName() string {
	return "question_library"
}
