package validation

import (
	"strconv"
	"strings"

	"pdf-quiz/internal/domain"
)

const (
	FieldFile         = "file"
	FieldNumQuestions = "num_questions"
)

// Validator provides request validation functionality
type Validator struct {
	maxQuestions int
}

// NewValidator creates a validator accepting up to maxQuestions questions.
func NewValidator(maxQuestions int) *Validator {
	return &Validator{maxQuestions: maxQuestions}
}

// MaxQuestions returns the upper bound applied to num_questions.
func (v *Validator) MaxQuestions() int {
	return v.maxQuestions
}

// ValidateDocument rejects a missing or zero-byte upload.
func (v *Validator) ValidateDocument(document []byte, present bool) domain.ValidationErrors {
	var errors domain.ValidationErrors
	switch {
	case !present:
		errors = append(errors, domain.NewMissingFieldError(FieldFile, domain.MsgMissingFile))
	case len(document) == 0:
		errors = append(errors, domain.NewEmptyFieldError(FieldFile, domain.MsgEmptyFile))
	}
	return errors
}

// ValidateQuestionCount checks an already parsed count.
func (v *Validator) ValidateQuestionCount(count int) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if count < 1 {
		errors = append(errors, domain.NewInvalidFormatError(FieldNumQuestions, count, domain.MsgInvalidCount))
	} else if count > v.maxQuestions {
		errors = append(errors, domain.NewOutOfRangeError(FieldNumQuestions, count, 1, v.maxQuestions))
	}
	return errors
}

// ParseQuestionCount parses and checks the raw num_questions form value.
func (v *Validator) ParseQuestionCount(raw string) (int, domain.ValidationErrors) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, domain.ValidationErrors{domain.NewMissingFieldError(FieldNumQuestions, domain.MsgInvalidCount)}
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError(FieldNumQuestions, raw, domain.MsgInvalidCount)}
	}
	if errs := v.ValidateQuestionCount(count); len(errs) > 0 {
		return 0, errs
	}
	return count, nil
}

// ValidateGenerateQuizRequest validates a pipeline request before any
// extraction work.
func (v *Validator) ValidateGenerateQuizRequest(req *domain.QuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if req == nil {
		return domain.ValidationErrors{domain.NewMissingFieldError(FieldFile, domain.MsgMissingFile)}
	}
	errors = append(errors, v.ValidateDocument(req.Document, req.Document != nil)...)
	errors = append(errors, v.ValidateQuestionCount(req.RequestedCount)...)
	return errors
}

// HasExtractableText reports whether extracted text has any non-whitespace
// content.
func HasExtractableText(text string) bool {
	return strings.TrimSpace(text) != ""
}
