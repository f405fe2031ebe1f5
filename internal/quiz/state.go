package quiz

const unanswered = -1

// Status is the phase of a quiz run.
type Status int

const (
	InProgress Status = iota
	Completed
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status as its name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// State is an immutable snapshot of a quiz run. Transitions return a new
// State plus whether the action was accepted; rejected actions return the
// receiver unchanged.
type State struct {
	quiz    *Quiz
	status  Status
	index   int
	answers []int
}

// Status reports the current phase.
func (s State) Status() Status { return s.status }

// Completed reports whether the run has finished.
func (s State) Completed() bool { return s.status == Completed }

// Index is the current question. It stays at the last question once completed.
func (s State) Index() int { return s.index }

// Total is the number of questions.
func (s State) Total() int { return len(s.answers) }

// Quiz returns the definition being played.
func (s State) Quiz() *Quiz { return s.quiz }

// Current returns the question at Index.
func (s State) Current() (Question, bool) {
	return s.quiz.Question(s.index)
}

// Answer returns the option recorded for question i.
func (s State) Answer(i int) (int, bool) {
	if i < 0 || i >= len(s.answers) || s.answers[i] == unanswered {
		return 0, false
	}
	return s.answers[i], true
}

// Answered reports whether the current question has a recorded answer.
func (s State) Answered() bool {
	_, ok := s.Answer(s.index)
	return ok
}

// Select records option for the current question. It is rejected when the
// run is completed, the question is already answered, or option is out of
// range.
func (s State) Select(option int) (State, bool) {
	if s.quiz == nil || s.status != InProgress || s.Answered() {
		return s, false
	}
	question, ok := s.Current()
	if !ok || option < 0 || option >= len(question.Options) {
		return s, false
	}

	next := s.clone()
	next.answers[s.index] = option
	return next, true
}

// Advance moves to the next question, or completes the run after the last
// one. It is rejected until the current question is answered.
func (s State) Advance() (State, bool) {
	if s.quiz == nil || s.status != InProgress || !s.Answered() {
		return s, false
	}

	next := s.clone()
	if s.index+1 < len(s.answers) {
		next.index = s.index + 1
		return next, true
	}
	next.status = Completed
	return next, true
}

// Score counts answered questions whose recorded option is correct.
func (s State) Score() int {
	score := 0
	for i, answer := range s.answers {
		if answer == unanswered {
			continue
		}
		if question, ok := s.quiz.Question(i); ok && question.Correct == answer {
			score++
		}
	}
	return score
}

// Result summarises the run so far.
func (s State) Result() Result {
	result := Result{
		Status:  s.status,
		Score:   s.Score(),
		Total:   len(s.answers),
		Correct: make([]bool, len(s.answers)),
	}
	for i, answer := range s.answers {
		if answer == unanswered {
			continue
		}
		result.Answered++
		if question, ok := s.quiz.Question(i); ok {
			result.Correct[i] = question.Correct == answer
		}
	}
	return result
}

func (s State) clone() State {
	s.answers = append([]int(nil), s.answers...)
	return s
}

// Result is a scored summary of a quiz run.
type Result struct {
	Status   Status `json:"status"`
	Score    int    `json:"score"`
	Total    int    `json:"total"`
	Answered int    `json:"answered"`
	Correct  []bool `json:"correct"`
}
