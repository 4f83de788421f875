package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func readingSchema() *Schema {
	return &Schema{
		Name: "test-reading",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"reading": map[string]any{"type": "string", "minLength": 1},
				"mood":    map[string]any{"type": "string", "enum": []any{"calm", "bright"}},
			},
			"required":             []any{"reading"},
			"additionalProperties": false,
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"reading":"You rise early."}`, false},
		{"valid with enum", `{"reading":"x","mood":"calm"}`, false},
		{"missing required", `{"mood":"calm"}`, true},
		{"empty string", `{"reading":""}`, true},
		{"bad enum", `{"reading":"x","mood":"angry"}`, true},
		{"extra property", `{"reading":"x","score":3}`, true},
		{"not json", `You rise early.`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(readingSchema(), json.RawMessage(tt.raw))
			if tt.wantErr {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidate_NilSchema(t *testing.T) {
	if err := Validate(nil, json.RawMessage(`not json`)); err != nil {
		t.Fatalf("nil schema should accept anything, got %v", err)
	}
}

func TestCompletionDecode(t *testing.T) {
	c := &Completion{JSON: json.RawMessage(`{"reading":"hi"}`)}
	var v struct{ Reading string }
	if err := c.Decode(&v); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v.Reading != "hi" {
		t.Fatalf("Reading = %q", v.Reading)
	}
}

func TestStripFence(t *testing.T) {
	tests := map[string]string{
		`{"a":1}`:                 `{"a":1}`,
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}\n```":     `{"a":1}`,
		"  {\"a\":1}  ":           `{"a":1}`,
	}
	for in, want := range tests {
		if got := stripFence(in); got != want {
			t.Errorf("stripFence(%q) = %q, want %q", in, got, want)
		}
	}
}
