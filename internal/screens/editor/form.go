package editor

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kviz/internal/question"
	"github.com/abhisek/kviz/internal/ui/components"
)

// formSubmitMsg is emitted by the form's save button.
type formSubmitMsg struct{}

var (
	tfValues     = []string{"True", "False"}
	letterValues = []string{"A", "B", "C", "D"}
)

// questionForm edits one question. Focus moves over the text input, the
// option inputs (multiple choice only), the correct-answer selector and
// the save button, in that order.
type questionForm struct {
	kind    question.Kind
	index   int // bank index being edited, -1 for a new question
	text    components.TextInput
	options []components.TextInput
	correct components.Selector
	save    components.Button
	focus   int
}

func newForm(kind question.Kind, index int) *questionForm {
	f := &questionForm{
		kind:  kind,
		index: index,
		text:  components.NewTextInput("Question", "Type the question...", false, 0),
		save:  components.NewButton("Save question", submit),
	}
	if kind == question.KindMultipleChoice {
		for i := range question.OptionCount {
			opt := components.NewTextInput("Option "+letterValues[i], "", false, 0)
			opt.Blur()
			f.options = append(f.options, opt)
		}
		f.correct = components.NewSelector("Correct", letterValues, 0)
	} else {
		f.correct = components.NewSelector("Correct", tfValues, 0)
	}
	return f
}

// editForm prefills a form from an existing question.
func editForm(q question.Question, index int) *questionForm {
	f := newForm(q.Kind(), index)
	f.text.SetValue(q.Text())
	switch q := q.(type) {
	case question.TrueFalse:
		if !q.Correct() {
			f.correct.Selected = 1
		}
	case question.MultipleChoice:
		for i, o := range q.Options() {
			f.options[i].SetValue(o)
		}
		f.correct.Selected = q.CorrectIndex()
	}
	return f
}

func submit() tea.Cmd {
	return func() tea.Msg { return formSubmitMsg{} }
}

// fieldCount is the number of focusable fields.
func (f *questionForm) fieldCount() int {
	return 1 + len(f.options) + 2
}

func (f *questionForm) selectorField() int { return 1 + len(f.options) }
func (f *questionForm) buttonField() int   { return 2 + len(f.options) }

func (f *questionForm) setFocus(i int) tea.Cmd {
	n := f.fieldCount()
	f.focus = (i%n + n) % n

	f.text.Blur()
	for j := range f.options {
		f.options[j].Blur()
	}
	f.correct.Focused = f.focus == f.selectorField()
	f.save.Focused = f.focus == f.buttonField()

	switch {
	case f.focus == 0:
		return f.text.Focus()
	case f.focus <= len(f.options):
		return f.options[f.focus-1].Focus()
	}
	return nil
}

// Update routes a message to the focused field.
func (f *questionForm) Update(msg tea.Msg) tea.Cmd {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return f.setFocus(f.focus + 1)
		case "shift+tab", "up":
			return f.setFocus(f.focus - 1)
		case "enter":
			if f.focus != f.buttonField() {
				return f.setFocus(f.focus + 1)
			}
		case "ctrl+s":
			return submit()
		}
	}

	var cmd tea.Cmd
	switch {
	case f.focus == 0:
		f.text, cmd = f.text.Update(msg)
	case f.focus <= len(f.options):
		f.options[f.focus-1], cmd = f.options[f.focus-1].Update(msg)
	case f.focus == f.selectorField():
		f.correct = f.correct.Update(msg)
	default:
		f.save, cmd = f.save.Update(msg)
	}
	return cmd
}

// Build validates the form into a question. Validation errors are also
// attached to the offending input and focus moves there.
func (f *questionForm) Build() (question.Question, error) {
	var (
		q   question.Question
		err error
	)
	if f.kind == question.KindMultipleChoice {
		opts := make([]string, len(f.options))
		for i, o := range f.options {
			opts[i] = o.Value()
		}
		q, err = question.NewMultipleChoice(f.text.Value(), opts, f.correct.Selected)
	} else {
		q, err = question.NewTrueFalse(f.text.Value(), f.correct.Selected == 0)
	}
	if err != nil {
		f.attach(err)
		return nil, err
	}
	return q, nil
}

func (f *questionForm) attach(err error) {
	var verr *question.ValidationError
	if !errors.As(err, &verr) {
		return
	}
	if verr.Field == "text" {
		f.text.SetError(verr.Message)
		f.setFocus(0)
		return
	}
	for i := range f.options {
		if verr.Field == fmt.Sprintf("options[%d]", i) {
			f.options[i].SetError(verr.Message)
			f.setFocus(i + 1)
			return
		}
	}
}

// View renders all fields, one per line.
func (f *questionForm) View() string {
	lines := []string{f.text.View()}
	for _, o := range f.options {
		lines = append(lines, o.View())
	}
	lines = append(lines, "", f.correct.View(), "", f.save.View())
	return strings.Join(lines, "\n")
}

func (f *questionForm) title() string {
	verb := "New"
	if f.index >= 0 {
		verb = "Edit"
	}
	if f.kind == question.KindMultipleChoice {
		return verb + " multiple-choice question"
	}
	return verb + " true/false question"
}
