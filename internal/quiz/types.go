// Package quiz holds the client-side quiz state machine.
//
// The machine is a pure reducer: Transition takes the current State and an
// Event and returns the next State plus the side effects the caller must
// perform. Network I/O and timers live outside this package.
package quiz

import (
	"fmt"
	"math"
	"time"
)

// Unanswered marks an empty slot in an answer set.
const Unanswered = -1

// AdvanceDelay is how long the selection highlight stays visible before the
// pointer moves to the next question.
const AdvanceDelay = 500 * time.Millisecond

// User-facing messages for the three recoverable error conditions.
const (
	MsgFetchFailed  = "Failed to load quiz questions. Please try again."
	MsgIncomplete   = "Please answer all questions before submitting."
	MsgSubmitFailed = "Failed to submit answers. Please try again."
)

// Question is one prompt with its ordered options.
type Question struct {
	ID      int      `json:"id"`
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
}

// Result is the classification returned by the scoring backend.
type Result struct {
	Prahar      int            `json:"prahar"`
	Name        string         `json:"prahar_name"`
	Description string         `json:"description"`
	Confidence  float64        `json:"confidence"`
	Counts      map[string]int `json:"prahar_counts"`
	Color       string         `json:"color"`
	TimeOfDay   string         `json:"timeOfDay"`
	Reading     string         `json:"reading,omitempty"`
}

// ConfidencePercent returns the confidence rounded to a whole percentage.
func (r *Result) ConfidencePercent() int {
	return int(math.Round(r.Confidence * 100))
}

// FormatConfidence renders the confidence as e.g. "73%".
func (r *Result) FormatConfidence() string {
	return fmt.Sprintf("%d%%", r.ConfidencePercent())
}

// Answers is an ordered answer set, one slot per question position.
type Answers []int

// NewAnswers returns an answer set of size n with every slot unanswered.
func NewAnswers(n int) Answers {
	a := make(Answers, n)
	for i := range a {
		a[i] = Unanswered
	}
	return a
}

// Clone returns an independent copy.
func (a Answers) Clone() Answers {
	if a == nil {
		return nil
	}
	out := make(Answers, len(a))
	copy(out, a)
	return out
}

// Answered returns the number of filled slots.
func (a Answers) Answered() int {
	n := 0
	for _, v := range a {
		if v != Unanswered {
			n++
		}
	}
	return n
}

// Complete reports whether every slot is filled.
func (a Answers) Complete() bool {
	return a.Answered() == len(a)
}

// Progress returns the percentage of answered slots, 0 for an empty set.
func Progress(a Answers) float64 {
	if len(a) == 0 {
		return 0
	}
	return float64(a.Answered()) / float64(len(a)) * 100
}
