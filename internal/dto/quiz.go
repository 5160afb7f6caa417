package dto

import "pdf-quiz/internal/domain"

// QuizItemResponse represents one generated question in the API response
// @Description Multiple-choice question with four options
type QuizItemResponse struct {
	Question    string   `json:"question" example:"Quelle est la capitale de la France ?"`
	Options     []string `json:"options" example:"Paris,Lyon,Marseille,Lille"`
	Answer      string   `json:"answer" example:"Paris"`
	Explanation string   `json:"explanation" example:"Paris est la capitale de la France."`
}

// GenerateQuizResponse is the body returned by POST /generate_quiz
// @Description Generated quiz, at most num_questions items
type GenerateQuizResponse struct {
	Quiz []QuizItemResponse `json:"quiz"`
}

// ErrorResponse represents the standard error response structure
// @Description Error payload; detail holds the user-facing message
type ErrorResponse struct {
	Detail string                   `json:"detail" example:"Fichier vide."`
	Code   string                   `json:"code" example:"INVALID_INPUT"`
	Errors []domain.ValidationError `json:"errors,omitempty"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Cache  string `json:"cache,omitempty" example:"ok"`
}

// NewGenerateQuizResponse converts domain items to the API shape. The quiz
// field is always a JSON array.
func NewGenerateQuizResponse(items []domain.QuizItem) GenerateQuizResponse {
	quiz := make([]QuizItemResponse, 0, len(items))
	for _, it := range items {
		quiz = append(quiz, QuizItemResponse{
			Question:    it.Question,
			Options:     it.Options,
			Answer:      it.Answer,
			Explanation: it.Explanation,
		})
	}
	return GenerateQuizResponse{Quiz: quiz}
}
