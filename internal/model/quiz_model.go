package model

import (
	"time"

	"github.com/google/uuid"
)

type Quiz struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CourseId       uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy      uuid.UUID  `gorm:"type:uuid;not null;index"`
	DocumentId     *uuid.UUID `gorm:"type:uuid;index"`
	Title          string     `gorm:"type:varchar(255);not null"`
	Topic          string     `gorm:"type:text"`
	TotalQuestions int        `gorm:"default:0"`
	AvgDifficulty  string     `gorm:"type:varchar(10)"`
	TotalTimeMins  int        `gorm:"default:0"`
	TotalMarks     int        `gorm:"default:0"`
	IsPublished    bool       `gorm:"default:false"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime"`

	Questions        []QuizQuestion    `gorm:"foreignKey:QuizId;constraint:OnDelete:CASCADE"`
	RetrievalRecords []RetrievalRecord `gorm:"foreignKey:QuizId;constraint:OnDelete:CASCADE"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type QuizQuestion struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	QuizId         uuid.UUID  `gorm:"type:uuid;not null;index"`
	LibraryEntryId *uuid.UUID `gorm:"type:uuid;index"`
	QOrder         int        `gorm:"not null"`
	QuestionText   string     `gorm:"type:text;not null"`
	OptionA        string     `gorm:"type:text;not null"`
	OptionB        string     `gorm:"type:text;not null"`
	OptionC        string     `gorm:"type:text;not null"`
	OptionD        string     `gorm:"type:text;not null"`
	CorrectOption  string     `gorm:"type:varchar(1);not null"`
	Difficulty     string     `gorm:"type:varchar(10)"`
	TimeSecs       int        `gorm:"default:0"`
	Marks          int        `gorm:"default:1"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

type RetrievalRecord struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	QuizId     uuid.UUID `gorm:"type:uuid;not null;index"`
	PassageId  uuid.UUID `gorm:"type:uuid;not null;index"`
	Similarity float64   `gorm:"type:decimal(5,4)"`
	UsedAt     time.Time `gorm:"autoCreateTime"`
}

func (RetrievalRecord) TableName() string {
	return "retrieval_records"
}
