package parser

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const quizItemSchemaURL = "schema://quiz-item.json"

// quizItemSchema describes one element of the array the prompt asks for.
const quizItemSchema = `{
  "type": "object",
  "required": ["question", "options", "answer", "explanation"],
  "properties": {
    "question": {"type": "string", "minLength": 1},
    "options": {
      "type": "array",
      "minItems": 4,
      "maxItems": 4,
      "uniqueItems": true,
      "items": {"type": "string", "minLength": 1}
    },
    "answer": {"type": "string", "minLength": 1},
    "explanation": {"type": "string"}
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func itemSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(quizItemSchema))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(quizItemSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(quizItemSchemaURL)
	})
	return compiledSchema, compileErr
}

// validateItem checks a decoded JSON value against the quiz item schema.
func validateItem(v any) error {
	schema, err := itemSchema()
	if err != nil {
		return fmt.Errorf("compile quiz item schema: %w", err)
	}
	return schema.Validate(v)
}
