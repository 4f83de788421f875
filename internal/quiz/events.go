package quiz

// Event is an input to the state machine.
type Event interface {
	event()
}

type (
	// Start kicks off the initial fetch.
	Start struct{}

	// QuestionsLoaded reports a successful fetch.
	QuestionsLoaded struct {
		Epoch     uint64
		Questions []Question
	}

	// QuestionsFailed reports a failed fetch.
	QuestionsFailed struct {
		Epoch uint64
		Err   error
	}

	// AnswerSelected records Option for the question at Index.
	AnswerSelected struct {
		Index  int
		Option int
	}

	// AdvanceDue is the delayed pointer move scheduled by a selection.
	AdvanceDue struct {
		Epoch uint64
		To    int
	}

	// Prev moves the pointer back one question.
	Prev struct{}

	// Next moves the pointer forward one question.
	Next struct{}

	// Submit sends the answer set for scoring.
	Submit struct{}

	// SubmitSucceeded carries the classification.
	SubmitSucceeded struct {
		Epoch  uint64
		Result *Result
	}

	// SubmitFailed reports a failed submission.
	SubmitFailed struct {
		Epoch uint64
		Err   error
	}

	// Reset clears answers, result and error.
	Reset struct{}

	// Retry re-attempts a failed fetch.
	Retry struct{}

	// DismissError clears the error message.
	DismissError struct{}
)

func (Start) event()           {}
func (QuestionsLoaded) event() {}
func (QuestionsFailed) event() {}
func (AnswerSelected) event()  {}
func (AdvanceDue) event()      {}
func (Prev) event()            {}
func (Next) event()            {}
func (Submit) event()          {}
func (SubmitSucceeded) event() {}
func (SubmitFailed) event()    {}
func (Reset) event()           {}
func (Retry) event()           {}
func (DismissError) event()    {}
