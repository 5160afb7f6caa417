package middleware

import (
	"errors"
	"net/http"

	"pdf-quiz/internal/domain"
	"pdf-quiz/internal/dto"
	"pdf-quiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler is the centralized Fiber error handler. Every failure is
// written as {"detail": ..., "code": ...}.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		l := logger.Get().With(
			zap.String("request_id", GetRequestID(c)),
			zap.String("path", c.Path()),
		)

		// Handle validation errors
		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			l.Warn("Validation errors occurred", zap.Int("error_count", len(validationErrs)), zap.Error(err))
			return c.Status(http.StatusBadRequest).JSON(dto.ErrorResponse{
				Detail: validationErrs.Detail(),
				Code:   string(domain.ErrInvalidInput),
				Errors: validationErrs,
			})
		}

		// Handle domain errors
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			statusCode := mapDomainErrorToHTTPStatus(domainErr)
			fields := []zap.Field{
				zap.String("code", string(domainErr.Code)),
				zap.String("message", domainErr.Message),
				zap.Int("status", statusCode),
				zap.Error(domainErr.Err),
			}
			if statusCode >= http.StatusInternalServerError {
				l.Error("Domain error occurred", fields...)
			} else {
				l.Warn("Domain error occurred", fields...)
			}

			return c.Status(statusCode).JSON(dto.ErrorResponse{
				Detail: domainErr.Message,
				Code:   string(domainErr.Code),
			})
		}

		// Handle fiber errors
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			l.Warn("Fiber error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.Status(fiberErr.Code).JSON(dto.ErrorResponse{
				Detail: fiberErr.Message,
				Code:   "HTTP_ERROR",
			})
		}

		// Handle unknown errors
		l.Error("Unknown error occurred", zap.Error(err))

		return c.Status(http.StatusInternalServerError).JSON(dto.ErrorResponse{
			Detail: domain.MsgInternal,
			Code:   string(domain.ErrInternal),
		})
	}
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.ErrInvalidInput, domain.ErrExtraction:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
