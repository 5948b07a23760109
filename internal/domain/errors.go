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
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Assistant specific errors
	CodeEmptyInput           ErrorCode = "EMPTY_INPUT"
	CodeQuotaExceeded        ErrorCode = "QUOTA_EXCEEDED"
	CodeGenerationFailed     ErrorCode = "GENERATION_FAILED"
	CodeExtractionFailed     ErrorCode = "EXTRACTION_FAILED"
	CodeNoActiveQuiz         ErrorCode = "NO_ACTIVE_QUIZ"
	CodeQuizAlreadySubmitted ErrorCode = "QUIZ_ALREADY_SUBMITTED"
	CodeArtifactNotFound     ErrorCode = "ARTIFACT_NOT_FOUND"
)

// QuotaExceededMessage is shown whenever the backend refuses a request for rate or quota reasons.
const QuotaExceededMessage = "The generation service quota has been exceeded. Please wait a moment and try again."

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Cause }

// WithContext attaches a detail that the error handler passes through to the client.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
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

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// CodeOf returns the code of the first DomainError in err's chain, or CodeInternal.
func CodeOf(err error) ErrorCode {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewUnauthorizedError(message string, err error) *DomainError {
	return NewError(CodeUnauthorized, message, err)
}

func NewEmptyInputError(field string) *DomainError {
	return NewError(CodeEmptyInput, fmt.Sprintf("Please provide %s first.", field), nil).
		WithContext("field", field)
}

// NewQuotaExceededError always carries the fixed user-facing message.
func NewQuotaExceededError(err error) *DomainError {
	return NewError(CodeQuotaExceeded, QuotaExceededMessage, err)
}

// NewGenerationFailedError surfaces the backend's own message verbatim.
func NewGenerationFailedError(err error) *DomainError {
	msg := "generation failed"
	var ge *GenerationError
	if errors.As(err, &ge) && ge.Message != "" {
		msg = ge.Message
	} else if err != nil {
		msg = err.Error()
	}
	return NewError(CodeGenerationFailed, msg, err)
}

func NewExtractionFailedError(filename string, err error) *DomainError {
	return NewError(CodeExtractionFailed, fmt.Sprintf("Could not read text from %s", filename), err).
		WithContext("filename", filename)
}

func NewNoActiveQuizError() *DomainError {
	return NewError(CodeNoActiveQuiz, "There is no active quiz. Generate one first.", nil)
}

func NewQuizAlreadySubmittedError() *DomainError {
	return NewError(CodeQuizAlreadySubmitted, "This quiz has already been submitted. Generate a new one to try again.", nil)
}

func NewArtifactNotFoundError(kind ArtifactKind) *DomainError {
	return NewError(CodeArtifactNotFound, fmt.Sprintf("No %s has been generated yet.", kind), nil).
		WithContext("kind", string(kind))
}
