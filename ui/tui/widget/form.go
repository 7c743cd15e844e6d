package widget

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/drake/tally/ui/tui/style"
)

// Field describes one form input.
type Field struct {
	Label    string
	Password bool
}

// Form is a vertical list of text inputs with one focused at a time.
type Form struct {
	title  string
	submit string
	labels []string
	inputs []textinput.Model
	focus  int
	styles style.Styles
}

// NewForm creates a form with the given fields; the first is focused.
func NewForm(title, submit string, fields []Field, styles style.Styles) *Form {
	f := &Form{
		title:  title,
		submit: submit,
		labels: make([]string, len(fields)),
		inputs: make([]textinput.Model, len(fields)),
		styles: styles,
	}

	for i, field := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 64
		ti.Width = 24
		ti.Placeholder = strings.ToLower(field.Label)
		if field.Password {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		f.labels[i] = field.Label
		f.inputs[i] = ti
	}

	f.Reset()
	return f
}

// Reset clears all fields and focuses the first.
func (f *Form) Reset() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].Reset()
	}
	return f.setFocus(0)
}

// Next moves focus to the next field, wrapping around.
func (f *Form) Next() tea.Cmd {
	return f.setFocus((f.focus + 1) % len(f.inputs))
}

// Prev moves focus to the previous field, wrapping around.
func (f *Form) Prev() tea.Cmd {
	return f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs))
}

// Focused returns the index of the focused field.
func (f *Form) Focused() int { return f.focus }

// Values returns the field values in order.
func (f *Form) Values() []string {
	values := make([]string, len(f.inputs))
	for i := range f.inputs {
		values[i] = f.inputs[i].Value()
	}
	return values
}

// Update forwards msg to the focused input.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *Form) setFocus(i int) tea.Cmd {
	f.focus = i
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == i {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

// View renders the form.
func (f *Form) View() string {
	var b strings.Builder
	b.WriteString(f.styles.Title.Render(f.title))
	b.WriteString("\n\n")

	for i, label := range f.labels {
		ls := f.styles.FormLabel
		if i == f.focus {
			ls = f.styles.FormFocused
		}
		b.WriteString(ls.Render(label))
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(f.styles.FormButton.Render(f.submit))
	b.WriteString("\n\n")
	b.WriteString(f.styles.Footer.Render("tab next field · enter " + strings.ToLower(f.submit)))
	return b.String()
}
