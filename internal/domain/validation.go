package domain

import (
	"fmt"
	"strings"
)

// ValidationError describes one rejected request field.
type ValidationError struct {
	Field   string `json:"field"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is returned by request validators. An empty value means
// the request is valid.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Detail returns the user-facing message of the first error.
func (v ValidationErrors) Detail() string {
	if len(v) == 0 {
		return ""
	}
	return v[0].Message
}

// Validation failure reasons.
const (
	ReasonMissing       = "missing"
	ReasonEmpty         = "empty"
	ReasonInvalidFormat = "invalid_format"
	ReasonOutOfRange    = "out_of_range"
)

func NewMissingFieldError(field, message string) ValidationError {
	return ValidationError{Field: field, Reason: ReasonMissing, Message: message}
}

func NewEmptyFieldError(field, message string) ValidationError {
	return ValidationError{Field: field, Reason: ReasonEmpty, Message: message}
}

func NewInvalidFormatError(field string, value any, message string) ValidationError {
	return ValidationError{Field: field, Reason: ReasonInvalidFormat, Message: message, Value: value}
}

func NewOutOfRangeError(field string, value any, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Reason:  ReasonOutOfRange,
		Message: fmt.Sprintf("%s doit être compris entre %d et %d.", field, min, max),
		Value:   value,
	}
}
