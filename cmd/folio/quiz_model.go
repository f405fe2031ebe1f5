package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/goliatone/go-folio/internal/quiz"
)

// quizModel drives a quiz.Session from the keyboard. Up/down move the cursor,
// enter selects an option and then advances, q quits.
type quizModel struct {
	session          *quiz.Session
	cursor           int
	showExplanations bool
	quitting         bool
}

var _ tea.Model = quizModel{}

func newQuizModel(session *quiz.Session, showExplanations bool) quizModel {
	return quizModel{session: session, showExplanations: showExplanations}
}

func (m quizModel) Init() tea.Cmd { return nil }

func (m quizModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	state := m.session.State()
	switch key.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 && !state.Answered() {
			m.cursor--
		}
	case "down", "j":
		if question, ok := state.Current(); ok && !state.Answered() && m.cursor < len(question.Options)-1 {
			m.cursor++
		}
	case "enter", " ":
		switch {
		case state.Completed():
			return m, tea.Quit
		case !state.Answered():
			m.session.Select(m.cursor)
		default:
			if m.session.Advance() {
				m.cursor = 0
			}
		}
	}
	return m, nil
}

func (m quizModel) View() string {
	if m.quitting {
		return ""
	}
	state := m.session.State()
	var b strings.Builder

	if title := state.Quiz().Title(); title != "" {
		fmt.Fprintf(&b, "%s\n\n", title)
	}

	if state.Completed() {
		result := state.Result()
		fmt.Fprintf(&b, "Done! You scored %d out of %d.\n\n", result.Score, result.Total)
		for i, correct := range result.Correct {
			mark := "✗"
			if correct {
				mark = "✓"
			}
			question, _ := state.Quiz().Question(i)
			fmt.Fprintf(&b, "  %s %s\n", mark, question.Text)
		}
		b.WriteString("\npress enter to exit\n")
		return b.String()
	}

	question, _ := state.Current()
	fmt.Fprintf(&b, "Question %d of %d\n%s\n\n", state.Index()+1, state.Total(), question.Text)

	answer, answered := state.Answer(state.Index())
	for i, option := range question.Options {
		cursor := " "
		if !answered && i == m.cursor {
			cursor = ">"
		}
		marker := " "
		if answered {
			switch {
			case i == question.Correct:
				marker = "✓"
			case i == answer:
				marker = "✗"
			}
		}
		fmt.Fprintf(&b, "%s %s %s\n", cursor, marker, option)
	}

	if answered {
		if m.showExplanations && question.Explanation != "" {
			fmt.Fprintf(&b, "\n%s\n", question.Explanation)
		}
		b.WriteString("\nenter: next  q: quit\n")
	} else {
		b.WriteString("\n↑/↓: move  enter: answer  q: quit\n")
	}
	return b.String()
}
