package api

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const questionsJSON = `{
	"type": "object",
	"required": ["questions"],
	"properties": {
		"questions": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "question", "options"],
				"properties": {
					"id": {"type": "integer"},
					"question": {"type": "string"},
					"options": {"type": "array", "minItems": 1, "items": {"type": "string"}}
				}
			}
		}
	}
}`

const resultJSON = `{
	"type": "object",
	"required": ["prahar", "prahar_name", "description", "confidence", "color", "timeOfDay"],
	"properties": {
		"prahar": {"type": "integer"},
		"prahar_name": {"type": "string"},
		"description": {"type": "string"},
		"confidence": {"type": "number", "minimum": 0, "maximum": 1},
		"prahar_counts": {"type": "object", "additionalProperties": {"type": "integer", "minimum": 0}},
		"color": {"type": "string", "pattern": "^#[0-9A-Fa-f]{6}$"},
		"timeOfDay": {"type": "string"},
		"reading": {"type": "string"}
	}
}`

var (
	questionsSchema = mustCompile("schema://questions.json", questionsJSON)
	resultSchema    = mustCompile("schema://result.json", resultJSON)
)

func mustCompile(name, src string) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(src))
	if err != nil {
		panic(fmt.Sprintf("parse %s: %v", name, err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, doc); err != nil {
		panic(fmt.Sprintf("add %s: %v", name, err))
	}
	return c.MustCompile(name)
}

// validate checks raw against s, wrapping failures in ErrInvalidPayload.
func validate(s *jsonschema.Schema, raw []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}
