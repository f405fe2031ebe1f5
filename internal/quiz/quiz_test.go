package quiz

import (
	"errors"
	"testing"
)

func twoQuestions() []Question {
	return []Question{
		{Text: "First?", Options: []string{"a", "b", "c", "d"}, Correct: 0},
		{Text: "Second?", Options: []string{"a", "b", "c", "d"}, Correct: 2},
	}
}

func mustQuiz(t *testing.T, questions []Question) *Quiz {
	t.Helper()
	q, err := New(questions)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return q
}

func TestQuizScenario(t *testing.T) {
	state := mustQuiz(t, twoQuestions()).Start()
	if state.Status() != InProgress || state.Index() != 0 {
		t.Fatalf("unexpected initial state %v/%d", state.Status(), state.Index())
	}

	state, ok := state.Select(0)
	if !ok {
		t.Fatal("expected first selection to be accepted")
	}
	state, ok = state.Advance()
	if !ok || state.Index() != 1 {
		t.Fatalf("expected to move to question 2, got ok=%v index=%d", ok, state.Index())
	}
	state, ok = state.Select(1)
	if !ok {
		t.Fatal("expected second selection to be accepted")
	}
	state, ok = state.Advance()
	if !ok {
		t.Fatal("expected final advance to be accepted")
	}
	if !state.Completed() {
		t.Fatalf("expected completed state, got %v", state.Status())
	}
	if state.Score() != 1 {
		t.Fatalf("expected score 1, got %d", state.Score())
	}
}

func TestSelectTwiceIsNoOp(t *testing.T) {
	state := mustQuiz(t, twoQuestions()).Start()
	state, _ = state.Select(3)

	again, ok := state.Select(0)
	if ok {
		t.Fatal("expected second selection to be rejected")
	}
	if answer, _ := again.Answer(0); answer != 3 {
		t.Fatalf("expected first answer to stick, got %d", answer)
	}
}

func TestAdvanceBeforeAnswerIsRejected(t *testing.T) {
	state := mustQuiz(t, twoQuestions()).Start()
	next, ok := state.Advance()
	if ok {
		t.Fatal("expected advance to be rejected")
	}
	if next.Index() != 0 || next.Status() != InProgress || next.Answered() {
		t.Fatalf("expected unchanged state, got index=%d status=%v", next.Index(), next.Status())
	}
}

func TestCompletedIsTerminal(t *testing.T) {
	state := mustQuiz(t, twoQuestions()[:1]).Start()
	state, _ = state.Select(0)
	state, _ = state.Advance()
	if !state.Completed() {
		t.Fatal("expected completion after single question")
	}
	if _, ok := state.Select(1); ok {
		t.Fatal("expected select to be rejected after completion")
	}
	if _, ok := state.Advance(); ok {
		t.Fatal("expected advance to be rejected after completion")
	}
	if state.Score() != 1 {
		t.Fatalf("expected score to stay queryable, got %d", state.Score())
	}
}

func TestSelectOutOfRangeIsRejected(t *testing.T) {
	state := mustQuiz(t, twoQuestions()).Start()
	for _, option := range []int{-1, 4} {
		if _, ok := state.Select(option); ok {
			t.Fatalf("expected option %d to be rejected", option)
		}
	}
}

func TestTransitionsDoNotMutatePreviousState(t *testing.T) {
	start := mustQuiz(t, twoQuestions()).Start()
	answered, _ := start.Select(2)
	if start.Answered() {
		t.Fatal("expected original state to remain unanswered")
	}
	if !answered.Answered() {
		t.Fatal("expected new state to be answered")
	}
}

func TestScoreCountsOnlyAnswered(t *testing.T) {
	state := mustQuiz(t, twoQuestions()).Start()
	if state.Score() != 0 {
		t.Fatalf("expected zero score, got %d", state.Score())
	}
	state, _ = state.Select(0)
	if state.Score() != 1 {
		t.Fatalf("expected score 1 mid-quiz, got %d", state.Score())
	}
	result := state.Result()
	if result.Answered != 1 || result.Total != 2 || !result.Correct[0] || result.Correct[1] {
		t.Fatalf("unexpected result %#v", result)
	}
}

func TestNewRejectsMalformedDefinitions(t *testing.T) {
	cases := map[string][]Question{
		"empty list":     nil,
		"no options":     {{Text: "Q", Options: nil, Correct: 0}},
		"blank text":     {{Text: "  ", Options: []string{"a"}, Correct: 0}},
		"index too high": {{Text: "Q", Options: []string{"a", "b"}, Correct: 2}},
		"negative index": {{Text: "Q", Options: []string{"a", "b"}, Correct: -1}},
		"blank option":   {{Text: "Q", Options: []string{"a", ""}, Correct: 0}},
	}
	for name, questions := range cases {
		if _, err := New(questions); !errors.Is(err, ErrInvalidQuizDefinition) {
			t.Fatalf("%s: expected ErrInvalidQuizDefinition, got %v", name, err)
		}
	}
}

func TestNewCopiesQuestions(t *testing.T) {
	questions := twoQuestions()
	q := mustQuiz(t, questions)
	questions[0].Options[0] = "changed"
	if got, _ := q.Question(0); got.Options[0] != "a" {
		t.Fatalf("expected defensive copy, got %q", got.Options[0])
	}
}

func TestZeroStateRejectsActions(t *testing.T) {
	var state State
	if _, ok := state.Select(0); ok {
		t.Fatal("expected zero state select to be rejected")
	}
	if _, ok := state.Advance(); ok {
		t.Fatal("expected zero state advance to be rejected")
	}
	if state.Score() != 0 {
		t.Fatal("expected zero score")
	}
}
