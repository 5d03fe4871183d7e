package mapper

import (
	"time"

	"quiz-generation-be/internal/entity"
	"quiz-generation-be/internal/model"
)

type QuizMapper struct{}

func NewQuizMapper() *QuizMapper {
	return &QuizMapper{}
}

func (m *QuizMapper) ToEntity(q *model.Quiz) *entity.Quiz {
	if q == nil {
		return nil
	}

	var updatedAt *time.Time
	if !q.UpdatedAt.IsZero() {
		t := q.UpdatedAt
		updatedAt = &t
	}

	return &entity.Quiz{
		Id:             q.Id,
		CourseId:       q.CourseId,
		CreatedBy:      q.CreatedBy,
		DocumentId:     q.DocumentId,
		Title:          q.Title,
		Topic:          q.Topic,
		TotalQuestions: q.TotalQuestions,
		AvgDifficulty:  q.AvgDifficulty,
		TotalTimeMins:  q.TotalTimeMins,
		TotalMarks:     q.TotalMarks,
		IsPublished:    q.IsPublished,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *QuizMapper) ToModel(q *entity.Quiz) *model.Quiz {
	if q == nil {
		return nil
	}

	var updatedAt time.Time
	if q.UpdatedAt != nil {
		updatedAt = *q.UpdatedAt
	}

	return &model.Quiz{
		Id:             q.Id,
		CourseId:       q.CourseId,
		CreatedBy:      q.CreatedBy,
		DocumentId:     q.DocumentId,
		Title:          q.Title,
		Topic:          q.Topic,
		TotalQuestions: q.TotalQuestions,
		AvgDifficulty:  q.AvgDifficulty,
		TotalTimeMins:  q.TotalTimeMins,
		TotalMarks:     q.TotalMarks,
		IsPublished:    q.IsPublished,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *QuizMapper) ToEntities(quizzes []*model.Quiz) []*entity.Quiz {
	entities := make([]*entity.Quiz, len(quizzes))
	for i, q := range quizzes {
		entities[i] = m.ToEntity(q)
	}
	return entities
}

type QuizQuestionMapper struct{}

func NewQuizQuestionMapper() *QuizQuestionMapper {
	return &QuizQuestionMapper{}
}

func (m *QuizQuestionMapper) ToEntity(q *model.QuizQuestion) *entity.QuizQuestion {
	if q == nil {
		return nil
	}
	return &entity.QuizQuestion{
		Id:             q.Id,
		QuizId:         q.QuizId,
		LibraryEntryId: q.LibraryEntryId,
		QOrder:         q.QOrder,
		QuestionText:   q.QuestionText,
		OptionA:        q.OptionA,
		OptionB:        q.OptionB,
		OptionC:        q.OptionC,
		OptionD:        q.OptionD,
		CorrectOption:  q.CorrectOption,
		Difficulty:     q.Difficulty,
		TimeSecs:       q.TimeSecs,
		Marks:          q.Marks,
	}
}

func (m *QuizQuestionMapper) ToModel(q *entity.QuizQuestion) *model.QuizQuestion {
	if q == nil {
		return nil
	}
	return &model.QuizQuestion{
		Id:             q.Id,
		QuizId:         q.QuizId,
		LibraryEntryId: q.LibraryEntryId,
		QOrder:         q.QOrder,
		QuestionText:   q.QuestionText,
		OptionA:        q.OptionA,
		OptionB:        q.OptionB,
		OptionC:        q.OptionC,
		OptionD:        q.OptionD,
		CorrectOption:  q.CorrectOption,
		Difficulty:     q.Difficulty,
		TimeSecs:       q.TimeSecs,
		Marks:          q.Marks,
	}
}

func (m *QuizQuestionMapper) ToEntities(questions []*model.QuizQuestion) []*entity.QuizQuestion {
	entities := make([]*entity.QuizQuestion, len(questions))
	for i, q := range questions {
		entities[i] = m.ToEntity(q)
	}
	return entities
}

func (m *QuizQuestionMapper) ToModels(questions []*entity.QuizQuestion) []*model.QuizQuestion {
	models := make([]*model.QuizQuestion, len(questions))
	for i, q := range questions {
		models[i] = m.ToModel(q)
	}
	return models
}

type RetrievalRecordMapper struct{}

func NewRetrievalRecordMapper() *RetrievalRecordMapper {
	return &RetrievalRecordMapper{}
}

func (m *RetrievalRecordMapper) ToEntity(r *model.RetrievalRecord) *entity.RetrievalRecord {
	if r == nil {
		return nil
	}
	return &entity.RetrievalRecord{
		Id:         r.Id,
		QuizId:     r.QuizId,
		PassageId:  r.PassageId,
		Similarity: r.Similarity,
		UsedAt:     r.UsedAt,
	}
}

func (m *RetrievalRecordMapper) ToModel(r *entity.RetrievalRecord) *model.RetrievalRecord {
	if r == nil {
		return nil
	}
	return &model.RetrievalRecord{
		Id:         r.Id,
		QuizId:     r.QuizId,
		PassageId:  r.PassageId,
		Similarity: r.Similarity,
		UsedAt:     r.UsedAt,
	}
}

func (m *RetrievalRecordMapper) ToEntities(records []*model.RetrievalRecord) []*entity.RetrievalRecord {
	entities := make([]*entity.RetrievalRecord, len(records))
	for i, r := range records {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
