package quiz

import "time"

// Phase is the coarse state of a quiz session.
type Phase int

const (
	PhaseLoading    Phase = iota // Fetching the question set
	PhaseReady                   // Answering questions
	PhaseSubmitting              // Waiting for a classification
	PhaseResult                  // Classification received
	PhaseError                   // Question fetch failed
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseSubmitting:
		return "submitting"
	case PhaseResult:
		return "result"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// State is the full client-side session state. The zero value is not
// meaningful; use NewState.
type State struct {
	Phase     Phase
	Questions []Question
	Answers   Answers
	Current   int
	Err       string
	Result    *Result

	// Epoch changes whenever outstanding async work becomes stale.
	// Effects carry the epoch they were issued in and completions
	// reporting another epoch are dropped.
	Epoch uint64
}

// NewState returns the initial Loading state.
func NewState() State {
	return State{Phase: PhaseLoading}
}

// CurrentQuestion returns the question under the pointer.
func (s State) CurrentQuestion() (Question, bool) {
	if s.Current < 0 || s.Current >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.Current], true
}

// SelectedAt returns the stored option for a question position.
func (s State) SelectedAt(i int) int {
	if i < 0 || i >= len(s.Answers) {
		return Unanswered
	}
	return s.Answers[i]
}

// IsLast reports whether the pointer is on the final question.
func (s State) IsLast() bool {
	return s.Current == len(s.Questions)-1
}

// Effect is a side effect requested by a transition.
type Effect interface {
	effect()
}

// FetchQuestions asks the caller to load the question set.
type FetchQuestions struct {
	Epoch uint64
}

// SubmitAnswers asks the caller to post the answer set for scoring.
type SubmitAnswers struct {
	Epoch   uint64
	Answers Answers
}

// ScheduleAdvance asks the caller to deliver AdvanceDue after a delay.
type ScheduleAdvance struct {
	Epoch uint64
	To    int
	After time.Duration
}

func (FetchQuestions) effect()  {}
func (SubmitAnswers) effect()   {}
func (ScheduleAdvance) effect() {}
