package middleware

import (
	"io"

	"pdf-quiz/internal/domain"
	"pdf-quiz/internal/logger"
	"pdf-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// c.Locals keys set by ValidateGenerateQuizForm.
const (
	LocalDocument     = "validated_document"
	LocalNumQuestions = "validated_num_questions"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a validation middleware allowing up to
// maxQuestions questions per request.
func NewValidationMiddleware(maxQuestions int) *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(maxQuestions),
	}
}

// ValidateGenerateQuizForm checks the multipart "file" and "num_questions"
// fields and stores the document bytes and count in c.Locals.
func (vm *ValidationMiddleware) ValidateGenerateQuizForm() fiber.Handler {
	return func(c *fiber.Ctx) error {
		document, present, err := readUpload(c, validation.FieldFile)
		if err != nil {
			return err
		}
		if errs := vm.validator.ValidateDocument(document, present); len(errs) > 0 {
			return errs // This will be handled by ErrorHandler
		}

		count, errs := vm.validator.ParseQuestionCount(c.FormValue(validation.FieldNumQuestions))
		if len(errs) > 0 {
			return errs
		}

		c.Locals(LocalDocument, document)
		c.Locals(LocalNumQuestions, count)
		return c.Next()
	}
}

// readUpload returns the bytes of the named multipart file. present is false
// when the request carries no such file.
func readUpload(c *fiber.Ctx, field string) ([]byte, bool, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		logger.Get().Debug("No uploaded file in request",
			zap.String("field", field),
			zap.String("content_type", c.Get(fiber.HeaderContentType)),
			zap.Error(err))
		return nil, false, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, false, domain.NewInternalError(domain.MsgInternal, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, false, domain.NewInternalError(domain.MsgInternal, err)
	}
	return data, true, nil
}
