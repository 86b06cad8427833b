package choices

import ut "github.com/go-playground/universal-translator"

// Describer is implemented by every Enum. It lets code that does not know the
// value type (storage, tooling) inspect an enumeration.
type Describer interface {
	Describe() Descriptor
}

// Descriptor is a type-erased snapshot of an enumeration.
type Descriptor struct {
	Name    string
	Label   string
	Kind    Kind
	Members []MemberDescriptor
}

// MemberDescriptor describes one member. Value is nil for the empty member.
type MemberDescriptor struct {
	Name  string
	Value any
	Text  *string
	Label Label
	Empty bool
}

// Describe returns a snapshot of e.
func (e *Enum[V]) Describe() Descriptor {
	d := Descriptor{
		Name:    e.name,
		Label:   e.label,
		Kind:    e.kind,
		Members: make([]MemberDescriptor, len(e.members)),
	}
	for i, m := range e.members {
		md := MemberDescriptor{Name: m.name, Label: m.label, Empty: m.empty}
		if !m.empty {
			s := m.String()
			md.Value = m.value
			md.Text = &s
		}
		d.Members[i] = md
	}
	return d
}

// Labels renders every member label with trans.
func (d Descriptor) Labels(trans ut.Translator) []string {
	out := make([]string, len(d.Members))
	for i, m := range d.Members {
		out[i] = TranslateLabel(m.Label, trans)
	}
	return out
}
