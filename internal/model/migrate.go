package model

// All lists every table owned by the service, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&Document{},
		&Passage{},
		&Quiz{},
		&QuizQuestion{},
		&QuestionLibraryEntry{},
		&RetrievalRecord{},
	}
}
