package tui

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"site-admin/internal/domain"
)

type formField struct {
	field  domain.Field
	input  textinput.Model
	area   textarea.Model
	choice int
}

func (f formField) value() string {
	switch {
	case f.field.IsChoice():
		choices := f.field.Choices()
		if f.choice < 0 || f.choice >= len(choices) {
			return ""
		}
		return choices[f.choice]
	case f.field.Kind == domain.KindLongText:
		return f.area.Value()
	default:
		return f.input.Value()
	}
}

// schemaForm edits one record. Its inputs are derived from the resource
// schema, so every resource shares the same form.
type schemaForm struct {
	active   bool
	id       string
	original map[string]string
	fields   []formField
	focus    int
	errors   domain.FieldErrors
	saving   bool
}

func newSchemaForm(schema domain.Schema, values map[string]string, id string, width int) schemaForm {
	if width < 20 {
		width = 60
	}
	form := schemaForm{
		active:   true,
		id:       id,
		original: values,
		fields:   make([]formField, 0, len(schema.Fields)),
		errors:   domain.FieldErrors{},
	}

	for _, f := range schema.Fields {
		ff := formField{field: f}
		v := values[f.Name]

		switch {
		case f.IsChoice():
			for i, c := range f.Choices() {
				if c == v {
					ff.choice = i
					break
				}
			}
		case f.Kind == domain.KindLongText:
			ff.area = textarea.New()
			ff.area.Placeholder = f.Hint
			if f.MaxLen > 0 {
				ff.area.CharLimit = f.MaxLen
			} else {
				ff.area.CharLimit = 0
			}
			ff.area.SetWidth(width)
			ff.area.SetHeight(4)
			ff.area.SetValue(v)
		default:
			ff.input = textinput.New()
			ff.input.Placeholder = f.Hint
			if f.MaxLen > 0 {
				ff.input.CharLimit = f.MaxLen
			}
			ff.input.Width = width
			ff.input.SetValue(v)
		}
		form.fields = append(form.fields, ff)
	}

	form.setFocus(0)
	return form
}

func (f *schemaForm) isNew() bool {
	return f.id == ""
}

func (f *schemaForm) values() map[string]string {
	out := make(map[string]string, len(f.fields))
	for _, ff := range f.fields {
		out[ff.field.Name] = ff.value()
	}
	return out
}

func (f *schemaForm) setFocus(i int) {
	if len(f.fields) == 0 {
		return
	}
	i = (i%len(f.fields) + len(f.fields)) % len(f.fields)
	for idx := range f.fields {
		ff := &f.fields[idx]
		switch {
		case ff.field.IsChoice():
		case ff.field.Kind == domain.KindLongText:
			if idx == i {
				ff.area.Focus()
			} else {
				ff.area.Blur()
			}
		default:
			if idx == i {
				ff.input.Focus()
			} else {
				ff.input.Blur()
			}
		}
	}
	f.focus = i
}

func (f *schemaForm) focused() *formField {
	if f.focus < 0 || f.focus >= len(f.fields) {
		return nil
	}
	return &f.fields[f.focus]
}

// cycle moves a selector field through its choices.
func (f *schemaForm) cycle(delta int) bool {
	ff := f.focused()
	if ff == nil || !ff.field.IsChoice() {
		return false
	}
	n := len(ff.field.Choices())
	if n == 0 {
		return false
	}
	ff.choice = ((ff.choice+delta)%n + n) % n
	delete(f.errors, ff.field.Name)
	return true
}

// update feeds msg to the focused text input.
func (f *schemaForm) update(msg tea.Msg) tea.Cmd {
	ff := f.focused()
	if ff == nil || ff.field.IsChoice() {
		return nil
	}
	var cmd tea.Cmd
	if ff.field.Kind == domain.KindLongText {
		ff.area, cmd = ff.area.Update(msg)
	} else {
		ff.input, cmd = ff.input.Update(msg)
	}
	return cmd
}
