package repair

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema names for the payload shapes the pipeline recovers.
const (
	SchemaQuiz          = "quiz"
	SchemaGrading       = "grading"
	SchemaCodeCheck     = "codecheck"
	SchemaQuestionArray = "question-array"
)

var schemaDefs = map[string]map[string]any{
	SchemaQuiz: {
		"type":     "object",
		"required": []any{"questions"},
		"properties": map[string]any{
			"title":     map[string]any{"type": "string"},
			"questions": map[string]any{"type": "array"},
		},
	},
	SchemaGrading: {
		"type":     "object",
		"required": []any{"score", "feedback"},
		"properties": map[string]any{
			"score":    map[string]any{"type": "number"},
			"feedback": map[string]any{"type": "string"},
		},
	},
	SchemaCodeCheck: {
		"type":     "object",
		"required": []any{"passed", "feedback"},
		"properties": map[string]any{
			"passed":   map[string]any{"type": "boolean"},
			"feedback": map[string]any{"type": "string"},
		},
	},
	SchemaQuestionArray: {
		"type": "array",
		"items": map[string]any{
			"type":     "object",
			"required": []any{"question"},
		},
	},
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

func validate(name string, parsed any) error {
	compiled, err := compiledSchema(name)
	if err != nil {
		return err
	}
	return compiled.Validate(parsed)
}

func compiledSchema(name string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, ok := schemaDefs[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}

	// The compiler expects a parsed JSON value, not Go maps with typed
	// values; round-trip through encoding/json.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %q: %w", name, err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource %q: %w", name, err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", name, err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
