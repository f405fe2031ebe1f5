// Package quiz implements the multiple-choice quiz used by the Quiz
// component. A Quiz is an immutable definition; play happens through State
// values that are replaced, never mutated, on every action.
package quiz

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrInvalidQuizDefinition reports a quiz that cannot be played: no
// questions, a question without options, or an answer index out of range.
var ErrInvalidQuizDefinition = errors.New("quiz: invalid quiz definition")

// Question is a single multiple-choice question. Correct is the zero-based
// index of the right option.
type Question struct {
	Text        string   `yaml:"question" json:"question"`
	Options     []string `yaml:"options" json:"options"`
	Correct     int      `yaml:"answer" json:"answer"`
	Explanation string   `yaml:"explanation,omitempty" json:"explanation,omitempty"`
}

// Validate checks the question is answerable.
func (q Question) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Text, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("folio.quiz.question_required", "question text is required")
			}
			return nil
		})),
		validation.Field(&q.Options, validation.Required, validation.Each(validation.Required)),
		validation.Field(&q.Correct, validation.Min(0), validation.Max(len(q.Options)-1)),
	)
}

// Quiz is a validated, read-only list of questions.
type Quiz struct {
	title     string
	questions []Question
}

// Option customises New.
type Option func(*Quiz)

// WithTitle sets the quiz heading.
func WithTitle(title string) Option {
	return func(q *Quiz) {
		q.title = strings.TrimSpace(title)
	}
}

// New validates questions and returns a playable quiz. Any problem is
// reported as ErrInvalidQuizDefinition.
func New(questions []Question, opts ...Option) (*Quiz, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: at least one question is required", ErrInvalidQuizDefinition)
	}

	copied := make([]Question, len(questions))
	for i, question := range questions {
		if err := question.Validate(); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrInvalidQuizDefinition, i+1, err)
		}
		question.Options = append([]string(nil), question.Options...)
		copied[i] = question
	}

	q := &Quiz{questions: copied}
	for _, opt := range opts {
		opt(q)
	}
	return q, nil
}

// Title returns the quiz heading, possibly empty.
func (q *Quiz) Title() string {
	if q == nil {
		return ""
	}
	return q.title
}

// Len returns the number of questions.
func (q *Quiz) Len() int {
	if q == nil {
		return 0
	}
	return len(q.questions)
}

// Question returns a copy of question i.
func (q *Quiz) Question(i int) (Question, bool) {
	if q == nil || i < 0 || i >= len(q.questions) {
		return Question{}, false
	}
	question := q.questions[i]
	question.Options = append([]string(nil), question.Options...)
	return question, true
}

// Questions returns copies of every question in order.
func (q *Quiz) Questions() []Question {
	out := make([]Question, q.Len())
	for i := range out {
		out[i], _ = q.Question(i)
	}
	return out
}

// Start returns the initial state: first question, nothing answered.
func (q *Quiz) Start() State {
	answers := make([]int, q.Len())
	for i := range answers {
		answers[i] = unanswered
	}
	return State{quiz: q, status: InProgress, answers: answers}
}
