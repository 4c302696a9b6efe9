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
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeForbidden    ErrorCode = "FORBIDDEN"
	CodeConflict     ErrorCode = "CONFLICT"

	// Quiz
	CodeQuizResultNotFound ErrorCode = "QUIZ_RESULT_NOT_FOUND"
	CodeQuizSaveFailed     ErrorCode = "QUIZ_SAVE_FAILED"

	// Accounts
	CodeEmailInUse         ErrorCode = "EMAIL_IN_USE"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidResetToken  ErrorCode = "INVALID_RESET_TOKEN"
	CodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	CodeAdminRequired      ErrorCode = "ADMIN_REQUIRED"

	// Dictionary
	CodeWordNotFound          ErrorCode = "WORD_NOT_FOUND"
	CodeDictionaryUnavailable ErrorCode = "DICTIONARY_UNAVAILABLE"

	// Media
	CodeMediaNotFound   ErrorCode = "MEDIA_NOT_FOUND"
	CodeInvalidFileType ErrorCode = "INVALID_FILE_TYPE"
	CodeFileTooLarge    ErrorCode = "FILE_TOO_LARGE"
)

// ErrWordNotFound is returned by dictionary clients when a lookup has no entry.
var ErrWordNotFound = errors.New("word not found in dictionary")

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

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a detail that is returned to the client.
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

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewQuizResultNotFoundError() *DomainError {
	return NewError(CodeQuizResultNotFound, "Quiz result not found", nil)
}

func NewQuizSaveFailedError(cause error) *DomainError {
	return NewError(CodeQuizSaveFailed, "Failed to save quiz result", cause)
}

func NewEmailInUseError() *DomainError {
	return NewError(CodeEmailInUse, "Email already in use", nil)
}

func NewInvalidCredentialsError() *DomainError {
	return NewError(CodeInvalidCredentials, "Invalid email or password", nil)
}

func NewInvalidResetTokenError() *DomainError {
	return NewError(CodeInvalidResetToken, "Invalid or expired reset token", nil)
}

func NewUserNotFoundError() *DomainError {
	return NewError(CodeUserNotFound, "User not found", nil)
}

func NewAdminRequiredError() *DomainError {
	return NewError(CodeAdminRequired, "Admin access required", nil)
}

func NewWordNotFoundError(word string) *DomainError {
	return NewError(CodeWordNotFound, "Word not found in dictionary", ErrWordNotFound).WithContext("word", word)
}

func NewDictionaryUnavailableError(cause error) *DomainError {
	return NewError(CodeDictionaryUnavailable, "Failed to fetch word definition", cause)
}

func NewMediaNotFoundError(message string) *DomainError {
	return NewError(CodeMediaNotFound, message, nil)
}

func NewInvalidFileTypeError(mimeType string) *DomainError {
	return NewError(CodeInvalidFileType, "Invalid file type. Only video, audio, and image files are allowed.", nil).
		WithContext("mimeType", mimeType)
}

func NewFileTooLargeError(limitBytes int64) *DomainError {
	return NewError(CodeFileTooLarge, "File exceeds the upload size limit", nil).WithContext("limitBytes", limitBytes)
}
