package handler

import (
	"pdf-quiz/internal/domain"
	"pdf-quiz/internal/dto"
	"pdf-quiz/internal/logger"
	"pdf-quiz/internal/middleware"
	"pdf-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz from a PDF
// @Description Extracts the text of the uploaded PDF and asks the language model for num_questions multiple-choice questions. At most num_questions items are returned.
// @Tags quiz
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Param num_questions formData int true "Number of questions" minimum(1)
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /generate_quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	document, ok := c.Locals(middleware.LocalDocument).([]byte)
	if !ok {
		return domain.NewInvalidInputError(domain.MsgMissingFile)
	}
	count, ok := c.Locals(middleware.LocalNumQuestions).(int)
	if !ok {
		return domain.NewInvalidInputError(domain.MsgInvalidCount)
	}

	requestID := middleware.GetRequestID(c)
	resp, err := h.service.GenerateQuiz(c.UserContext(), &domain.QuizRequest{
		Document:       document,
		RequestedCount: count,
		RequestID:      requestID,
	})
	if err != nil {
		return err // Handled by ErrorHandler
	}

	logger.Get().Debug("Quiz response ready",
		zap.String("request_id", requestID),
		zap.Int("items", len(resp.Items)))
	return c.JSON(dto.NewGenerateQuizResponse(resp.Items))
}
