package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/abhisek/quizline/internal/quiz"
)

const progressCells = 10

// view is the quiz.Surface for one chat. It only records state; the bot
// turns it into Telegram messages after every controller call.
type view struct {
	prompt   string
	choices  []quiz.Choice
	marks    []quiz.Mark
	feedback string
	progress float64

	// fresh is set when a question is (re)presented and needs a new message.
	fresh bool
	// dirty is set when the current message needs an edit.
	dirty bool

	completed    bool
	score, total int
	err          error
}

var _ quiz.Surface = (*view)(nil)

func (v *view) SetPrompt(text string) {
	v.prompt = text
	v.dirty = true
}

func (v *view) SetOptions(choices []quiz.Choice) {
	v.choices = choices
	v.marks = make([]quiz.Mark, len(choices))
	v.fresh = true
}

func (v *view) SetFeedback(text string, _ quiz.Tone) {
	v.feedback = text
	v.dirty = true
}

func (v *view) MarkOption(index int, mark quiz.Mark) {
	if index >= 0 && index < len(v.marks) {
		v.marks[index] = mark
		v.dirty = true
	}
}

func (v *view) SetProgress(fraction float64) {
	v.progress = fraction
	v.dirty = true
}

func (v *view) ShowCompletion(score, total int) {
	v.completed = true
	v.score, v.total = score, total
}

func (v *view) ShowError(err error) { v.err = err }

// text renders the question message body.
func (v *view) text(index, total int) string {
	filled := int(v.progress * progressCells)
	filled = min(max(filled, 0), progressCells)

	var b strings.Builder
	fmt.Fprintf(&b, "Question %d of %d  %s%s\n\n",
		index+1, total,
		strings.Repeat("▓", filled), strings.Repeat("░", progressCells-filled))
	b.WriteString(v.prompt)
	if v.feedback != "" {
		b.WriteString("\n\n")
		b.WriteString(v.feedback)
	}
	return b.String()
}

// keyboard renders one button row per option with callback data
// "a:<gen>:<question>:<option>".
func (v *view) keyboard(gen, index int) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, len(v.choices))
	for i, c := range v.choices {
		label := c.Label
		switch v.marks[i] {
		case quiz.MarkCorrect:
			label = "✅ " + label
		case quiz.MarkIncorrect:
			label = "❌ " + label
		}
		rows[i] = tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, answerData(gen, index, c.Index)),
		)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func summaryText(score, total int) string {
	return fmt.Sprintf("Quiz Completed!\nYou scored %d out of %d", score, total)
}
