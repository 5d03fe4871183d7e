package mapper

import (
	"time"

	"quiz-generation-be/internal/entity"
	"quiz-generation-be/internal/model"
	"quiz-generation-be/pkg/mcq"

	"github.com/google/uuid"
)

type QuestionLibraryMapper struct{}

func NewQuestionLibraryMapper() *QuestionLibraryMapper {
	return &QuestionLibraryMapper{}
}

func (m *QuestionLibraryMapper) ToEntity(e *model.QuestionLibraryEntry) *entity.QuestionLibraryEntry {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.QuestionLibraryEntry{
		Id:            e.Id,
		DocumentId:    e.DocumentId,
		QuestionText:  e.QuestionText,
		OptionA:       e.OptionA,
		OptionB:       e.OptionB,
		OptionC:       e.OptionC,
		OptionD:       e.OptionD,
		CorrectOption: e.CorrectOption,
		Difficulty:    e.Difficulty,
		TimeSecs:      e.TimeSecs,
		Quality:       entity.QuestionQuality(e.Quality),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *QuestionLibraryMapper) ToModel(e *entity.QuestionLibraryEntry) *model.QuestionLibraryEntry {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.QuestionLibraryEntry{
		Id:            e.Id,
		DocumentId:    e.DocumentId,
		QuestionText:  e.QuestionText,
		OptionA:       e.OptionA,
		OptionB:       e.OptionB,
		OptionC:       e.OptionC,
		OptionD:       e.OptionD,
		CorrectOption: e.CorrectOption,
		Difficulty:    e.Difficulty,
		TimeSecs:      e.TimeSecs,
		Quality:       string(e.Quality),
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *QuestionLibraryMapper) ToEntities(entries []*model.QuestionLibraryEntry) []*entity.QuestionLibraryEntry {
	entities := make([]*entity.QuestionLibraryEntry, len(entries))
	for i, e := range entries {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

// ToQuestion converts a library entry into a preselected question. Unknown
// difficulty or option values are left as stored.
func (m *QuestionLibraryMapper) ToQuestion(e *entity.QuestionLibraryEntry) mcq.Question {
	id := e.Id
	difficulty, err := mcq.ParseDifficulty(e.Difficulty)
	if err != nil {
		difficulty = mcq.Difficulty(e.Difficulty)
	}
	correct, ok := mcq.ParseOptionLabel(e.CorrectOption)
	if !ok {
		correct = mcq.OptionLabel(e.CorrectOption)
	}

	return mcq.Question{
		Text: e.QuestionText,
		Options: mcq.Options{
			A: e.OptionA,
			B: e.OptionB,
			C: e.OptionC,
			D: e.OptionD,
		},
		Correct:    correct,
		Difficulty: difficulty,
		TimeSecs:   e.TimeSecs,
		LibraryID:  &id,
	}
}

// FromQuestion builds a good-quality library entry for documentID.
func (m *QuestionLibraryMapper) FromQuestion(documentID uuid.UUID, q mcq.Question) *entity.QuestionLibraryEntry {
	return &entity.QuestionLibraryEntry{
		Id:            uuid.New(),
		DocumentId:    documentID,
		QuestionText:  q.Text,
		OptionA:       q.Options.A,
		OptionB:       q.Options.B,
		OptionC:       q.Options.C,
		OptionD:       q.Options.D,
		CorrectOption: string(q.Correct),
		Difficulty:    string(q.Difficulty),
		TimeSecs:      q.EffectiveTimeSecs(),
		Quality:       entity.QuestionQualityGood,
	}
}
