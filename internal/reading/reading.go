// Package reading writes a short personalised note for a prediction using
// an LLM. It is optional: any failure leaves the prediction without one.
package reading

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/prahar/internal/llm"
	"github.com/abhisek/prahar/internal/prahar"
)

// Purpose labels narrator calls in the LLM request log.
const Purpose = "reading"

const maxTokens = 300

const systemPrompt = `You write short, warm personality readings for a quiz based on the eight Prahars, the traditional watches of the Indian day.
Write two or three sentences in the second person. Refer to the person's actual answers. Do not mention scores, percentages or the quiz itself.`

// Schema is the structured output requested from the model.
var Schema = &llm.Schema{
	Name:        "prahar-reading",
	Description: "A short personalised reading for a Prahar personality result.",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"reading": map[string]any{
				"type":        "string",
				"description": "Two or three sentences addressed to the quiz taker.",
				"minLength":   1,
			},
		},
		"required":             []any{"reading"},
		"additionalProperties": false,
	},
}

// Narrator produces readings through an llm.Provider.
type Narrator struct {
	provider llm.Provider
	timeout  time.Duration
	log      *zap.Logger
}

// New returns a Narrator. A zero timeout means no per-call deadline.
func New(p llm.Provider, timeout time.Duration, log *zap.Logger) *Narrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Narrator{provider: p, timeout: timeout, log: log}
}

// Narrate returns a reading for the given answers and winning Prahar.
// It returns "" on any error after logging it.
func (n *Narrator) Narrate(ctx context.Context, questions []prahar.Question, answers []int, winner prahar.Prahar) string {
	if n == nil || n.provider == nil {
		return ""
	}

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, Purpose)

	out, err := n.provider.Complete(ctx, llm.Prompt{
		System:      systemPrompt,
		User:        UserPrompt(questions, answers, winner),
		Schema:      Schema,
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		n.log.Warn("reading unavailable", zap.Int("prahar", winner.Index), zap.Error(err))
		return ""
	}

	var body struct {
		Reading string `json:"reading"`
	}
	if err := out.Decode(&body); err != nil {
		n.log.Warn("decode reading", zap.Error(err))
		return ""
	}
	return strings.TrimSpace(body.Reading)
}

// UserPrompt lists each question with the chosen option and names the
// winning Prahar.
func UserPrompt(questions []prahar.Question, answers []int, winner prahar.Prahar) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Result: %s (%s). %s\n\nAnswers:\n", winner.Name, winner.TimeOfDay, winner.Description)
	for i, q := range questions {
		if i >= len(answers) {
			break
		}
		choice := "(no answer)"
		if a := answers[i]; a >= 0 && a < len(q.Options) {
			choice = q.Options[a]
		}
		fmt.Fprintf(&b, "%d. %s -> %s\n", i+1, q.Question, choice)
	}
	return b.String()
}

// MockReply serves a fixed reading for the "mock" provider so the server
// still exercises the narrator path without credentials.
func MockReply(p llm.Prompt) llm.MockReply {
	text := "Your answers carry the quiet steadiness of your Prahar."
	if line, _, ok := strings.Cut(p.User, "\n"); ok {
		if name, _, ok := strings.Cut(strings.TrimPrefix(line, "Result: "), " ("); ok {
			text = fmt.Sprintf("Your answers carry the quiet steadiness of %s.", name)
		}
	}
	raw, _ := json.Marshal(map[string]string{"reading": text})
	return llm.MockReply{JSON: raw}
}
