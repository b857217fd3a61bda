package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Quiz specific errors
	CodeInvalidURL            ErrorCode = "INVALID_URL"
	CodeQuizNotFound          ErrorCode = "QUIZ_NOT_FOUND"
	CodeFetchFailure          ErrorCode = "FETCH_FAILURE"
	CodeInsufficientQuestions ErrorCode = "INSUFFICIENT_QUESTIONS"
	CodeGeneratorUnavailable  ErrorCode = "GENERATOR_UNAVAILABLE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a detail that is echoed back to API clients.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsCode reports whether err is a DomainError carrying code.
func IsCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(CodeQuizNotFound, fmt.Sprintf("Quiz not found with ID: %s", quizID), nil)
}

func NewInvalidURLError(url string) *DomainError {
	return NewError(CodeInvalidURL, "Invalid Wikipedia URL", nil).WithContext("url", url)
}

// NewFetchFailureError reports that the source article could not be retrieved or parsed.
func NewFetchFailureError(url string, err error) *DomainError {
	return NewError(CodeFetchFailure, fmt.Sprintf("Failed to fetch article: %s", url), err)
}

// NewInsufficientQuestionsError reports that fewer than the minimum number of
// questions survived validation.
func NewInsufficientQuestionsError(got, want int) *DomainError {
	return NewError(CodeInsufficientQuestions,
		fmt.Sprintf("Failed to generate enough quiz questions (got %d, need %d)", got, want), nil).
		WithContext("generated", got)
}

// Reasons a primary generator is considered unavailable.
const (
	GeneratorFailureQuota   = "quota"
	GeneratorFailureTimeout = "timeout"
	GeneratorFailureParse   = "parse"
)

// NewGeneratorUnavailableError reports a quota, timeout or malformed-output
// failure from the primary generator. Callers switch to the deterministic
// generator for the rest of the process when they see it.
func NewGeneratorUnavailableError(kind string, err error) *DomainError {
	return NewError(CodeGeneratorUnavailable, fmt.Sprintf("Question generator unavailable (%s)", kind), err).
		WithContext("kind", kind)
}
