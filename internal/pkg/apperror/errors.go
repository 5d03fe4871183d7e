// Package apperror holds the error kinds services return and the HTTP layer maps to status codes.
package apperror

// ErrNotFound matches any NotFoundError via errors.Is.
var ErrNotFound = &NotFoundError{}

// NotFoundError reports a missing document, quiz, passage or library entry.
type NotFoundError struct {
	Resource string
	Message  string
}

func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{Resource: resource, Message: message}
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Resource != "" {
		return e.Resource + " not found"
	}
	return "resource not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// ErrValidation matches any ValidationError via errors.Is.
var ErrValidation = &ValidationError{}

// ValidationError reports client input that cannot be processed.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Field != "" {
		return "validation failed for field: " + e.Field
	}
	return "validation error"
}

func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// ErrInsufficientContext matches any InsufficientContextError via errors.Is.
var ErrInsufficientContext = &InsufficientContextError{}

// InsufficientContextError means retrieval produced no passages for a topic.
type InsufficientContextError struct {
	Message string
}

func NewInsufficientContextError(message string) *InsufficientContextError {
	return &InsufficientContextError{Message: message}
}

func (e *InsufficientContextError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "no relevant passages found"
}

func (e *InsufficientContextError) Is(target error) bool {
	_, ok := target.(*InsufficientContextError)
	return ok
}

// ErrGenerationExhausted matches any GenerationExhaustedError via errors.Is.
var ErrGenerationExhausted = &GenerationExhaustedError{}

// GenerationExhaustedError means every retry budget was spent without producing a question.
type GenerationExhaustedError struct {
	Message string
}

func NewGenerationExhaustedError(message string) *GenerationExhaustedError {
	return &GenerationExhaustedError{Message: message}
}

func (e *GenerationExhaustedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "failed to generate any valid questions"
}

func (e *GenerationExhaustedError) Is(target error) bool {
	_, ok := target.(*GenerationExhaustedError)
	return ok
}
