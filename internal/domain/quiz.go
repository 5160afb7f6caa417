package domain

import "slices"

// QuizItem is one generated multiple-choice question.
type QuizItem struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

// OptionCount is the number of choices every quiz item carries.
const OptionCount = 4

// HasValidAnswer reports whether Answer is one of Options.
func (q QuizItem) HasValidAnswer() bool {
	return slices.Contains(q.Options, q.Answer)
}

// QuizRequest is the per-call input of the generation pipeline.
type QuizRequest struct {
	Document       []byte
	RequestedCount int
	// RequestID correlates log lines of a single call.
	RequestID string
}

// QuizResponse is the shaped pipeline output.
type QuizResponse struct {
	Items []QuizItem
}

// Shape truncates items to at most n entries, preserving order. It never pads.
func Shape(items []QuizItem, n int) []QuizItem {
	if n < 0 {
		n = 0
	}
	if len(items) <= n {
		return items
	}
	return items[:n]
}
