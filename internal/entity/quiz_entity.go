package entity

import (
	"time"

	"github.com/google/uuid"
)

type Quiz struct {
	Id             uuid.UUID
	CourseId       uuid.UUID
	CreatedBy      uuid.UUID
	DocumentId     *uuid.UUID // cleared when the source document is deleted
	Title          string
	Topic          string
	TotalQuestions int
	AvgDifficulty  string
	TotalTimeMins  int
	TotalMarks     int
	IsPublished    bool
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

type QuizQuestion struct {
	Id             uuid.UUID
	QuizId         uuid.UUID
	LibraryEntryId *uuid.UUID
	QOrder         int
	QuestionText   string
	OptionA        string
	OptionB        string
	OptionC        string
	OptionD        string
	CorrectOption  string
	Difficulty     string
	TimeSecs       int
	Marks          int
}

// RetrievalRecord links a quiz to a passage it drew from.
type RetrievalRecord struct {
	Id         uuid.UUID
	QuizId     uuid.UUID
	PassageId  uuid.UUID
	Similarity float64
	UsedAt     time.Time
}
