package dto

import (
	"time"

	"quiz-generation-be/pkg/mcq"

	"github.com/google/uuid"
)

type GenerateQuizRequest struct {
	DocumentId             uuid.UUID      `json:"document_id" validate:"required"`
	Topic                  string         `json:"topic" validate:"required"`
	NumQuestions           int            `json:"num_questions" validate:"gte=0,lte=50"`
	Difficulty             string         `json:"difficulty"`
	DifficultyDistribution map[string]int `json:"difficulty_distribution"`
	PreselectedIds         []uuid.UUID    `json:"preselected_ids"`
}

type GeneratePreviewResponse struct {
	DocumentId uuid.UUID      `json:"document_id"`
	Topic      string         `json:"topic"`
	Requested  int            `json:"requested"`
	Generated  int            `json:"generated"`
	Questions  []mcq.Question `json:"questions"`
}

type OptionsPayload struct {
	A string `json:"A" validate:"required"`
	B string `json:"B" validate:"required"`
	C string `json:"C" validate:"required"`
	D string `json:"D" validate:"required"`
}

type QuestionPayload struct {
	Question   string         `json:"question" validate:"required"`
	Options    OptionsPayload `json:"options"`
	Correct    string         `json:"correct" validate:"required"`
	Difficulty string         `json:"difficulty"`
	TimeSecs   int            `json:"time_secs" validate:"gte=0"`
	LibraryId  *uuid.UUID     `json:"library_id,omitempty"`
	Source     *mcq.Source    `json:"source,omitempty"`
}

type FinalizeQuizRequest struct {
	DocumentId uuid.UUID         `json:"document_id" validate:"required"`
	Topic      string            `json:"topic" validate:"required"`
	Difficulty string            `json:"difficulty"`
	Questions  []QuestionPayload `json:"questions" validate:"required,min=1,dive"`
}

type FinalizeQuizResponse struct {
	QuizId         uuid.UUID `json:"quiz_id"`
	QuestionsSaved int       `json:"questions_saved"`
	Topic          string    `json:"topic"`
	Difficulty     string    `json:"difficulty"`
}

type QuizResponse struct {
	Id             uuid.UUID  `json:"id"`
	CourseId       uuid.UUID  `json:"course_id"`
	CreatedBy      uuid.UUID  `json:"created_by"`
	DocumentId     *uuid.UUID `json:"document_id"`
	Title          string     `json:"title"`
	Topic          string     `json:"topic"`
	TotalQuestions int        `json:"total_questions"`
	AvgDifficulty  string     `json:"avg_difficulty"`
	TotalTimeMins  int        `json:"total_time_mins"`
	TotalMarks     int        `json:"total_marks"`
	IsPublished    bool       `json:"is_published"`
	CreatedAt      time.Time  `json:"created_at"`
}

type QuizQuestionResponse struct {
	Id            uuid.UUID      `json:"id"`
	QOrder        int            `json:"q_order"`
	QuestionText  string         `json:"question_text"`
	Options       OptionsPayload `json:"options"`
	CorrectOption string         `json:"correct_option"`
	Difficulty    string         `json:"difficulty"`
	TimeSecs      int            `json:"time_secs"`
	Marks         int            `json:"marks"`
}

type ShowQuizResponse struct {
	QuizResponse
	Questions []*QuizQuestionResponse `json:"questions"`
}

type ListQuizRequest struct {
	Page  int `query:"page" validate:"gte=0"`
	Limit int `query:"limit" validate:"gte=0,lte=100"`
}

type ListQuizResponse struct {
	Items []*QuizResponse `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

type PublishQuizRequest struct {
	IsPublished *bool `json:"is_published"`
}

type RetrievalRecordResponse struct {
	PassageId  uuid.UUID `json:"passage_id"`
	Similarity float64   `json:"similarity"`
	UsedAt     time.Time `json:"used_at"`
}
