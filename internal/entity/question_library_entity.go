package entity

import (
	"time"

	"github.com/google/uuid"
)

type QuestionQuality string

const (
	QuestionQualityGood QuestionQuality = "good"
	QuestionQualityPoor QuestionQuality = "poor"
)

// QuestionLibraryEntry is unique per (DocumentId, QuestionText).
type QuestionLibraryEntry struct {
	Id            uuid.UUID
	DocumentId    uuid.UUID
	QuestionText  string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectOption string
	Difficulty    string
	TimeSecs      int
	Quality       QuestionQuality
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
