package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizline/internal/quiz"
	"github.com/abhisek/quizline/internal/ui/theme"
)

// OptionChosenMsg is emitted when the player picks an option. Question is
// the index of the question the list was built for.
type OptionChosenMsg struct {
	Question int
	Index    int
}

// OptionList renders numbered answer controls and tracks the highlighted
// one. It locks as soon as any option is marked.
type OptionList struct {
	Question int
	Choices  []quiz.Choice
	Marks    []quiz.Mark
	Cursor   int
}

func NewOptionList(question int, choices []quiz.Choice) OptionList {
	return OptionList{
		Question: question,
		Choices:  choices,
		Marks:   make([]quiz.Mark, len(choices)),
	}
}

// SetMark records the outcome mark for option i.
func (l *OptionList) SetMark(i int, m quiz.Mark) {
	if i >= 0 && i < len(l.Marks) {
		l.Marks[i] = m
	}
}

// Locked reports whether the list has been marked and no longer takes input.
func (l OptionList) Locked() bool {
	for _, m := range l.Marks {
		if m != quiz.MarkNone {
			return true
		}
	}
	return false
}

// Update moves the highlight and emits OptionChosenMsg for digit keys or
// Enter.
func (l OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || l.Locked() || len(l.Choices) == 0 {
		return l, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if l.Cursor > 0 {
			l.Cursor--
		}
		return l, nil
	case "down", "j":
		if l.Cursor < len(l.Choices)-1 {
			l.Cursor++
		}
		return l, nil
	case "enter":
		return l, l.choose(l.Cursor)
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		i := int(key[0] - '1')
		if i < len(l.Choices) {
			l.Cursor = i
			return l, l.choose(i)
		}
	}
	return l, nil
}

func (l OptionList) choose(i int) tea.Cmd {
	question := l.Question
	return func() tea.Msg { return OptionChosenMsg{Question: question, Index: i} }
}

// View renders one line per option, centered as a block.
func (l OptionList) View(width int) string {
	var b strings.Builder
	locked := l.Locked()
	for i, c := range l.Choices {
		prefix := "  "
		if i == l.Cursor && !locked {
			prefix = "> "
		}
		line := prefix + c.Label

		var style lipgloss.Style
		switch {
		case l.Marks[i] == quiz.MarkCorrect:
			style = theme.Correct
			line += "  ✓"
		case l.Marks[i] == quiz.MarkIncorrect:
			style = theme.Incorrect
			line += "  ✗"
		case locked:
			style = theme.Dimmed
		case i == l.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}
