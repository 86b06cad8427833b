package field

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rezkam/choices/pkg/choices"
)

// BlankLabel is the label of the leading blank choice of optional form fields.
const BlankLabel = "---------"

// FormChoice is one option of a select input.
type FormChoice struct {
	Value string
	Label choices.Label
}

// FormField describes the select input for a field and cleans submitted data.
type FormField[V comparable] struct {
	Name     string
	Label    string
	Required bool
	Initial  string
	HelpText string
	Choices  []FormChoice

	field *Field[V]
}

// FormField builds the form representation of the field. An enumeration
// with an empty member offers it as the blank choice; otherwise a
// BlankLabel choice is prepended when the field is optional or has no
// default.
func (f *Field[V]) FormField() *FormField[V] {
	ff := &FormField[V]{
		Name:     f.name,
		Label:    capitalize(f.verboseName),
		Required: !f.blank,
		HelpText: f.helpText,
		field:    f,
	}
	if f.def != nil && !f.def.IsEmpty() {
		ff.Initial = f.def.String()
	}

	members := f.enum.Members()
	ff.Choices = make([]FormChoice, 0, len(members)+1)
	if f.enum.Empty() == nil && (f.blank || f.def == nil) {
		ff.Choices = append(ff.Choices, FormChoice{Label: choices.Plain(BlankLabel)})
	}
	for _, m := range members {
		ff.Choices = append(ff.Choices, FormChoice{Value: m.String(), Label: m.Label()})
	}
	return ff
}

// Clean converts submitted input to a member. Blank input yields nil on
// optional fields and a required error otherwise.
func (ff *FormField[V]) Clean(input string) (*choices.Member[V], error) {
	input = strings.TrimSpace(input)
	if input == "" {
		if ff.Required {
			return nil, &ValidationError{Field: ff.Name, Code: CodeRequired, Value: input}
		}
		return nil, nil
	}
	for _, m := range ff.field.enum.Members() {
		if !m.IsEmpty() && m.String() == input {
			return m, nil
		}
	}
	m, err := ff.field.ToValue(input)
	if err != nil {
		return nil, err
	}
	if m.IsEmpty() && ff.Required {
		return nil, &ValidationError{Field: ff.Name, Code: CodeRequired, Value: input}
	}
	return m, nil
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
