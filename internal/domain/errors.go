package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Pipeline stage errors
	ErrExtraction         ErrorCode = "EXTRACTION_ERROR"
	ErrModelInvocation    ErrorCode = "MODEL_INVOCATION_ERROR"
	ErrEmptyModelResponse ErrorCode = "EMPTY_MODEL_RESPONSE"
	ErrQuizParse          ErrorCode = "QUIZ_PARSE_ERROR"
)

// User-facing messages returned in the "detail" field.
const (
	MsgEmptyFile        = "Fichier vide."
	MsgMissingFile      = "Fichier manquant."
	MsgNoExtractable    = "Le PDF ne contient aucun texte exploitable."
	MsgUnreadablePDF    = "Le fichier n'est pas un PDF valide."
	MsgInvalidCount     = "num_questions doit être un entier positif."
	MsgEmptyModelReply  = "Réponse vide ou invalide de Gemini."
	MsgModelUnavailable = "Erreur lors de l'appel au modèle de génération."
	MsgQuizParse        = "Erreur parsing JSON du quiz généré."
	MsgInternal         = "Erreur interne du serveur lors de la génération du quiz."
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
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
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewExtractionError(err error) *DomainError {
	return NewError(ErrExtraction, MsgUnreadablePDF, err)
}

func NewModelInvocationError(err error) *DomainError {
	return NewError(ErrModelInvocation, MsgModelUnavailable, err)
}

func NewEmptyModelResponseError() *DomainError {
	return NewError(ErrEmptyModelResponse, MsgEmptyModelReply, nil)
}

func NewQuizParseError() *DomainError {
	return NewError(ErrQuizParse, MsgQuizParse, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

// CodeOf returns the code of the first DomainError in err's chain.
// ValidationErrors map to ErrInvalidInput; anything else is ErrInternal.
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	var validationErrs ValidationErrors
	if errors.As(err, &validationErrs) {
		return ErrInvalidInput
	}
	return ErrInternal
}
