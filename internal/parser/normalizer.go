package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"pdf-quiz/internal/domain"
	"pdf-quiz/internal/logger"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.uber.org/zap"
)

// Strategy turns raw model output into quiz items.
type Strategy interface {
	Name() string
	Parse(raw string) ([]domain.QuizItem, error)
}

// Normalizer tries its strategies in order and returns the first non-empty
// result. It never fails; errors are logged and yield an empty slice.
type Normalizer struct {
	strategies []Strategy
}

// NewNormalizer returns a Normalizer using the JSON strategy, followed by the
// markup strategy when markupFallback is set.
func NewNormalizer(markupFallback bool) *Normalizer {
	strategies := []Strategy{JSONStrategy{}}
	if markupFallback {
		strategies = append(strategies, MarkupStrategy{})
	}
	return &Normalizer{strategies: strategies}
}

// NewNormalizerWithStrategies builds a Normalizer from explicit strategies.
func NewNormalizerWithStrategies(strategies ...Strategy) *Normalizer {
	return &Normalizer{strategies: strategies}
}

// Normalize implements domain.QuizNormalizer.
func (n *Normalizer) Normalize(raw string) []domain.QuizItem {
	l := logger.Get()
	for _, s := range n.strategies {
		items, err := s.Parse(raw)
		if err != nil {
			l.Error("Failed to parse generated quiz",
				zap.String("strategy", s.Name()),
				zap.Error(err))
			continue
		}
		if len(items) > 0 {
			l.Debug("Generated quiz parsed",
				zap.String("strategy", s.Name()),
				zap.Int("items", len(items)))
			return items
		}
		l.Warn("Strategy produced no quiz items", zap.String("strategy", s.Name()))
	}
	return []domain.QuizItem{}
}

var _ domain.QuizNormalizer = (*Normalizer)(nil)

// fenceMarkers matches a "```json" marker opening a line and a "```" marker
// closing a line.
var fenceMarkers = regexp.MustCompile("(?m)^```json|```$")

// IsolateJSONArray strips code fences and keeps the span from the first '['
// to the last ']' when there is one.
func IsolateJSONArray(raw string) string {
	text := strings.TrimSpace(raw)
	text = strings.TrimSpace(fenceMarkers.ReplaceAllString(text, ""))

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start != -1 && end > start {
		text = text[start : end+1]
	}
	return text
}

// JSONStrategy parses the strict JSON array format the prompt requests.
type JSONStrategy struct{}

func (JSONStrategy) Name() string { return "json" }

// Parse isolates and decodes the array, then drops elements that fail the
// quiz item schema or whose answer is not one of their options.
func (JSONStrategy) Parse(raw string) ([]domain.QuizItem, error) {
	text := IsolateJSONArray(raw)

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(text), &elements); err != nil {
		return nil, fmt.Errorf("decode quiz array: %w", err)
	}

	l := logger.Get()
	items := make([]domain.QuizItem, 0, len(elements))
	for i, element := range elements {
		item, err := decodeItem(element)
		if err != nil {
			l.Warn("Dropping malformed quiz item", zap.Int("index", i), zap.Error(err))
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

var errAnswerNotInOptions = errors.New("answer is not one of the options")

func decodeItem(element json.RawMessage) (domain.QuizItem, error) {
	var item domain.QuizItem

	generic, err := jsonschema.UnmarshalJSON(bytes.NewReader(element))
	if err != nil {
		return item, err
	}
	if err := validateItem(generic); err != nil {
		return item, err
	}
	if err := json.Unmarshal(element, &item); err != nil {
		return item, err
	}
	if !item.HasValidAnswer() {
		return item, errAnswerNotInOptions
	}
	return item, nil
}
