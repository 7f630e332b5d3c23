package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("authentication required")
	ErrFileTooLarge       = errors.New("file exceeds the upload size limit")
	ErrUpload             = errors.New("upload rejected")
)

// UploadError is an ErrUpload whose Message is safe to show to clients.
type UploadError struct {
	Message string
}

func (e *UploadError) Error() string { return ErrUpload.Error() + ": " + e.Message }

func (e *UploadError) Unwrap() error { return ErrUpload }

// FieldIssue describes one problem with one input field.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when input is missing or malformed. It is
// raised before any store mutation takes place.
type ValidationError struct {
	Issues []FieldIssue
}

// NewValidationError builds a ValidationError with a single issue.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Issues: []FieldIssue{{Field: field, Message: message}}}
}

// Add appends an issue and returns the receiver for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Issues = append(e.Issues, FieldIssue{Field: field, Message: message})
	return e
}

// OrNil returns nil when no issues were collected, so callers can build the
// error incrementally and return it unconditionally.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Issues) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		msgs = append(msgs, is.Field+": "+is.Message)
	}
	return "invalid data: " + strings.Join(msgs, "; ")
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
