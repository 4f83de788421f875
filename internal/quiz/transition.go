package quiz

// Transition applies ev to s and returns the next state and any effects.
// It never mutates s; slices in the returned state are fresh copies when
// they change.
func Transition(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case Start:
		if s.Phase != PhaseLoading {
			return s, nil
		}
		return s, []Effect{FetchQuestions{Epoch: s.Epoch}}

	case QuestionsLoaded:
		if ev.Epoch != s.Epoch || s.Phase != PhaseLoading {
			return s, nil
		}
		s.Questions = cloneQuestions(ev.Questions)
		s.Answers = NewAnswers(len(ev.Questions))
		s.Current = 0
		s.Err = ""
		s.Phase = PhaseReady
		return s, nil

	case QuestionsFailed:
		if ev.Epoch != s.Epoch || s.Phase != PhaseLoading {
			return s, nil
		}
		s.Err = MsgFetchFailed
		s.Phase = PhaseError
		return s, nil

	case Retry:
		if s.Phase != PhaseError {
			return s, nil
		}
		return reload(s)

	case AnswerSelected:
		if s.Phase != PhaseReady {
			return s, nil
		}
		if !s.validSlot(ev.Index, ev.Option) {
			return s, nil
		}
		s.Answers = s.Answers.Clone()
		s.Answers[ev.Index] = ev.Option
		if ev.Index >= len(s.Questions)-1 {
			return s, nil
		}
		return s, []Effect{ScheduleAdvance{Epoch: s.Epoch, To: ev.Index + 1, After: AdvanceDelay}}

	case AdvanceDue:
		if ev.Epoch != s.Epoch || s.Phase != PhaseReady {
			return s, nil
		}
		if ev.To < 0 || ev.To >= len(s.Questions) {
			return s, nil
		}
		s.Current = ev.To
		return s, nil

	case Prev:
		if s.Phase == PhaseReady && s.Current > 0 {
			s.Current--
		}
		return s, nil

	case Next:
		if s.Phase == PhaseReady && s.Current < len(s.Questions)-1 {
			s.Current++
		}
		return s, nil

	case Submit:
		if s.Phase != PhaseReady {
			return s, nil
		}
		if !s.Answers.Complete() {
			s.Err = MsgIncomplete
			return s, nil
		}
		s.Err = ""
		s.Phase = PhaseSubmitting
		return s, []Effect{SubmitAnswers{Epoch: s.Epoch, Answers: s.Answers.Clone()}}

	case SubmitSucceeded:
		if ev.Epoch != s.Epoch || s.Phase != PhaseSubmitting || ev.Result == nil {
			return s, nil
		}
		s.Result = ev.Result
		s.Err = ""
		s.Phase = PhaseResult
		return s, nil

	case SubmitFailed:
		if ev.Epoch != s.Epoch || s.Phase != PhaseSubmitting {
			return s, nil
		}
		s.Err = MsgSubmitFailed
		s.Phase = PhaseReady
		return s, nil

	case DismissError:
		if s.Phase == PhaseReady {
			s.Err = ""
		}
		return s, nil

	case Reset:
		s.Epoch++
		s.Answers = NewAnswers(len(s.Questions))
		s.Current = 0
		s.Result = nil
		s.Err = ""
		if s.Questions == nil {
			// Nothing has loaded yet, so there is no Ready to return to.
			s.Phase = PhaseLoading
			return s, []Effect{FetchQuestions{Epoch: s.Epoch}}
		}
		s.Phase = PhaseReady
		return s, nil
	}

	return s, nil
}

func reload(s State) (State, []Effect) {
	s.Epoch++
	s.Err = ""
	s.Phase = PhaseLoading
	return s, []Effect{FetchQuestions{Epoch: s.Epoch}}
}

func (s State) validSlot(index, option int) bool {
	if index < 0 || index >= len(s.Questions) || index >= len(s.Answers) {
		return false
	}
	return option >= 0 && option < len(s.Questions[index].Options)
}

func cloneQuestions(qs []Question) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		opts := make([]string, len(q.Options))
		copy(opts, q.Options)
		out[i] = Question{ID: q.ID, Prompt: q.Prompt, Options: opts}
	}
	return out
}
