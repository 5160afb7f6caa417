package parser

import (
	"fmt"
	"regexp"
	"strings"

	"pdf-quiz/internal/domain"
	"pdf-quiz/internal/logger"

	"go.uber.org/zap"
)

// DefaultExplanation fills items whose explanation block is empty.
const DefaultExplanation = "Aucune explication fournie."

var (
	questionHeader = regexp.MustCompile(`\*\*Question\s*\d+\s*:\*\*`)
	questionBlock  = regexp.MustCompile(`^(.*?)\n` +
		`[aA]\)\s*(.*?)\n` +
		`[bB]\)\s*(.*?)\n` +
		`[cC]\)\s*(.*?)\n` +
		`[dD]\)\s*(.*?)\n` +
		`\*\*(?:Réponse|Answer)\s*:\*\*\s*([a-dA-D])\)?[^\n]*\n` +
		`\*\*(?:Explication|Explanation)\s*:\*\*\s*([\s\S]*)$`)
)

// MarkupStrategy parses the legacy "**Question N:**" format with lettered
// options, used when a model ignores the JSON instructions.
type MarkupStrategy struct{}

func (MarkupStrategy) Name() string { return "markup" }

func (MarkupStrategy) Parse(raw string) ([]domain.QuizItem, error) {
	text := strings.ReplaceAll(raw, "\r\n", "\n")

	blocks := questionHeader.Split(text, -1)
	if len(blocks) < 2 {
		return []domain.QuizItem{}, nil
	}

	l := logger.Get()
	items := make([]domain.QuizItem, 0, len(blocks)-1)
	for _, block := range blocks[1:] {
		item, err := parseQuestionBlock(strings.TrimSpace(block))
		if err != nil {
			l.Warn("Skipping badly formatted question", zap.Error(err), zap.String("block", block))
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func parseQuestionBlock(block string) (domain.QuizItem, error) {
	m := questionBlock.FindStringSubmatch(block)
	if m == nil {
		return domain.QuizItem{}, fmt.Errorf("block does not match question layout")
	}

	options := []string{
		strings.TrimSpace(m[2]),
		strings.TrimSpace(m[3]),
		strings.TrimSpace(m[4]),
		strings.TrimSpace(m[5]),
	}
	index := strings.IndexByte("abcd", strings.ToLower(m[6])[0])

	explanation := strings.TrimSpace(m[7])
	if explanation == "" {
		explanation = DefaultExplanation
	}

	return domain.QuizItem{
		Question:    strings.TrimSpace(m[1]),
		Options:     options,
		Answer:      options[index],
		Explanation: explanation,
	}, nil
}
