// Package classifier maps a completed answer set to a Prahar.
package classifier

import (
	"errors"
	"fmt"

	"github.com/abhisek/prahar/internal/prahar"
)

// QuestionCount is the number of answers a classification needs.
const QuestionCount = 10

// ErrInvalidAnswers is returned for answer sets of the wrong size or with
// out-of-range options.
var ErrInvalidAnswers = errors.New("invalid answers")

// Outcome is the raw classification before presentation.
type Outcome struct {
	Prahar     int
	Confidence float64
	Counts     [prahar.Count + 1]int // indexed by Prahar, slot 0 unused
}

// Classifier scores an answer set.
type Classifier interface {
	Classify(answers []int) (*Outcome, error)
}

// RuleBased assigns each answer to one Prahar and takes the majority.
// Odd-numbered questions (1-based) map options A-D to Prahars 1-4 and
// even-numbered ones to Prahars 5-8.
type RuleBased struct{}

var _ Classifier = RuleBased{}

// PraharFor returns the Prahar a single answer votes for.
func PraharFor(questionIndex, option int) int {
	if questionIndex%2 == 0 { // question 1, 3, 5, ...
		return option + 1
	}
	return option + 5
}

func (RuleBased) Classify(answers []int) (*Outcome, error) {
	if err := Validate(answers); err != nil {
		return nil, err
	}

	out := &Outcome{}
	for q, opt := range answers {
		out.Counts[PraharFor(q, opt)]++
	}

	// First maximum wins, so ties go to the earlier Prahar.
	best := 1
	for p := 2; p <= prahar.Count; p++ {
		if out.Counts[p] > out.Counts[best] {
			best = p
		}
	}
	out.Prahar = best
	out.Confidence = float64(out.Counts[best]) / float64(len(answers))
	return out, nil
}

// Validate checks answer count and option range.
func Validate(answers []int) error {
	if len(answers) != QuestionCount {
		return fmt.Errorf("%w: got %d answers, want %d", ErrInvalidAnswers, len(answers), QuestionCount)
	}
	for i, a := range answers {
		if a < 0 || a >= prahar.OptionsPerQuestion {
			return fmt.Errorf("%w: answer %d out of range: %d", ErrInvalidAnswers, i+1, a)
		}
	}
	return nil
}

// NamedCounts keys the non-zero counts by Prahar display name.
func (o *Outcome) NamedCounts() map[string]int {
	named := make(map[string]int)
	for p := 1; p <= prahar.Count; p++ {
		if o.Counts[p] == 0 {
			continue
		}
		info, _ := prahar.ByIndex(p)
		named[info.Name] = o.Counts[p]
	}
	return named
}
