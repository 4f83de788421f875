package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled caches *jsonschema.Schema by Schema.Name.
var compiled sync.Map

// Validate checks raw against s. A nil schema accepts anything.
// Failures are *ErrInvalidResponse.
func Validate(s *Schema, raw json.RawMessage) error {
	if s == nil {
		return nil
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	sch, err := compile(s)
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("compile schema %q: %w", s.Name, err)}
	}

	if err := sch.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

func compile(s *Schema) (*jsonschema.Schema, error) {
	if c, ok := compiled.Load(s.Name); ok {
		return c.(*jsonschema.Schema), nil
	}

	// The compiler wants the json.Number-flavoured values its own
	// decoder produces, so round-trip the Go map through it.
	def, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := "schema://" + s.Name + ".json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, err
	}

	compiled.Store(s.Name, sch)
	return sch, nil
}
