package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

type ByCourseID struct {
	CourseID uuid.UUID
}

func (s ByCourseID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("course_id = ?", s.CourseID)
}

type ByQuizID struct {
	QuizID uuid.UUID
}

func (s ByQuizID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("quiz_id = ?", s.QuizID)
}

// HasEmbedding keeps passages whose vector has been stored.
type HasEmbedding struct{}

func (s HasEmbedding) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("embedding IS NOT NULL")
}

// MissingEmbedding keeps passages still waiting for a vector.
type MissingEmbedding struct{}

func (s MissingEmbedding) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("embedding IS NULL")
}

// ByQuestionText is an exact, case-sensitive match.
type ByQuestionText struct {
	Text string
}

func (s ByQuestionText) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("question_text = ?", s.Text)
}

type ByQuality struct {
	Quality string
}

func (s ByQuality) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("quality = ?", s.Quality)
}

// SelectColumns limits the loaded columns, e.g. to skip embedding blobs in listings.
type SelectColumns struct {
	Columns []string
}

func (s SelectColumns) Apply(db *gorm.DB) *gorm.DB {
	return db.Select(s.Columns)
}
