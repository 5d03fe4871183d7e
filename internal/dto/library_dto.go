package dto

import (
	"time"

	"github.com/google/uuid"
)

type LibraryEntryResponse struct {
	Id            uuid.UUID      `json:"id"`
	DocumentId    uuid.UUID      `json:"document_id"`
	QuestionText  string         `json:"question_text"`
	Options       OptionsPayload `json:"options"`
	CorrectOption string         `json:"correct_option"`
	Difficulty    string         `json:"difficulty"`
	TimeSecs      int            `json:"time_secs"`
	Quality       string         `json:"quality"`
	CreatedAt     time.Time      `json:"created_at"`
}

type MarkPoorRequest struct {
	QuizId       uuid.UUID `json:"quiz_id" validate:"required"`
	QuestionText string    `json:"question_text" validate:"required"`
}

type MarkPoorResponse struct {
	Id      uuid.UUID `json:"id"`
	Quality string    `json:"quality"`
}
