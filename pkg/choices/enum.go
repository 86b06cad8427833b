// Package choices builds labeled enumerations: ordered, immutable sets of
// members that pair a value with a display label and a declaration name.
//
// Enumerations are usually declared once at package level:
//
//	var Vehicle = choices.MustInteger("Vehicle",
//		choices.Def("CAR", 1, "Carriage"),
//		choices.Def("TRUCK", 2),
//		choices.Def("JET_SKI", 3),
//		choices.Empty(i18n.Lazy("(Unknown)")),
//	)
//
// Integer enumerations generate missing values by counting up from the last
// one; text enumerations use the upper-cased member name. Labels default to
// the title-cased name. An optional empty member stands for "unset", has no
// value and is always listed first.
package choices

import (
	"fmt"
	"reflect"
	"slices"

	"golang.org/x/text/cases"
)

// Enum is a built enumeration. It is safe for concurrent use.
type Enum[V comparable] struct {
	name    string
	label   string
	kind    Kind
	members []*Member[V]
	empty   *Member[V]
	byName  map[string]*Member[V]
	byValue map[V]*Member[V]
	byFold  map[string]*Member[V]
}

// IntegerChoices is an enumeration of integer values.
type IntegerChoices = Enum[int]

// TextChoices is an enumeration of string values.
type TextChoices = Enum[string]

// New builds an enumeration named name from member declarations and options.
// Every error matches ErrDefinition; no enumeration is returned on failure.
func New[V comparable](name string, items ...Item) (*Enum[V], error) {
	t := reflect.TypeFor[V]()
	if err := checkBaseType(t); err != nil {
		return nil, err
	}

	var set settings
	for _, it := range items {
		it.apply(&set)
	}

	e := &Enum[V]{
		name:    name,
		label:   set.label,
		kind:    kindOf(t),
		byName:  make(map[string]*Member[V], len(set.decls)),
		byValue: make(map[V]*Member[V], len(set.decls)),
	}
	if e.label == "" {
		e.label = name
	}
	if e.kind == KindText {
		e.byFold = make(map[string]*Member[V], len(set.decls))
	}

	b := &builder[V]{enum: e, set: set}
	declared := make([]*Member[V], 0, len(set.decls))
	for _, d := range set.decls {
		m, err := b.member(d)
		if err != nil {
			return nil, err
		}
		if _, dup := e.byName[m.name]; dup {
			return nil, &DuplicateNameError{Enum: name, Name: m.name}
		}
		e.byName[m.name] = m

		if m.empty {
			e.empty = m
			continue
		}
		if existing, dup := e.byValue[m.value]; dup {
			return nil, &DuplicateValueError{Enum: name, Name: m.name, Existing: existing.name}
		}
		e.byValue[m.value] = m
		if e.byFold != nil {
			key := fold(any(m.value))
			if _, taken := e.byFold[key]; !taken {
				e.byFold[key] = m
			}
		}
		declared = append(declared, m)
	}

	if e.empty != nil {
		e.members = append(e.members, e.empty)
	}
	e.members = append(e.members, declared...)
	for i, m := range e.members {
		m.index = i
	}
	return e, nil
}

// FromNames builds an enumeration from a whitespace or comma separated list
// of member names, generating values and labels for each.
func FromNames[V comparable](name, names string, opts ...Option) (*Enum[V], error) {
	items := make([]Item, 0, len(opts)+8)
	for _, o := range opts {
		items = append(items, o)
	}
	for _, n := range splitNames(names) {
		items = append(items, Def(n))
	}
	return New[V](name, items...)
}

// Integer builds an IntegerChoices.
func Integer(name string, items ...Item) (*IntegerChoices, error) {
	return New[int](name, items...)
}

// Text builds a TextChoices.
func Text(name string, items ...Item) (*TextChoices, error) {
	return New[string](name, items...)
}

// IntegerFromNames is FromNames for IntegerChoices.
func IntegerFromNames(name, names string, opts ...Option) (*IntegerChoices, error) {
	return FromNames[int](name, names, opts...)
}

// TextFromNames is FromNames for TextChoices.
func TextFromNames(name, names string, opts ...Option) (*TextChoices, error) {
	return FromNames[string](name, names, opts...)
}

// Must panics if err is non-nil. It is intended for package-level declarations.
func Must[V comparable](e *Enum[V], err error) *Enum[V] {
	if err != nil {
		panic(err)
	}
	return e
}

// MustInteger is like Integer but panics on error.
func MustInteger(name string, items ...Item) *IntegerChoices {
	return Must(Integer(name, items...))
}

// MustText is like Text but panics on error.
func MustText(name string, items ...Item) *TextChoices {
	return Must(Text(name, items...))
}

// Name returns the enumeration name.
func (e *Enum[V]) Name() string { return e.name }

// Label returns the display label, which defaults to the name.
func (e *Enum[V]) Label() string { return e.label }

// Kind returns the value family of the enumeration.
func (e *Enum[V]) Kind() Kind { return e.kind }

// Len returns the number of members, including the empty member.
func (e *Enum[V]) Len() int { return len(e.members) }

// Members returns the members in order.
func (e *Enum[V]) Members() []*Member[V] { return slices.Clone(e.members) }

// Empty returns the empty member, or nil when none is declared.
func (e *Enum[V]) Empty() *Member[V] { return e.empty }

// ByName returns the member declared as name.
func (e *Enum[V]) ByName(name string) (*Member[V], bool) {
	m, ok := e.byName[name]
	return m, ok
}

// Get returns the member whose value is exactly value.
func (e *Enum[V]) Get(value V) (*Member[V], error) {
	if m, ok := e.byValue[value]; ok {
		return m, nil
	}
	return nil, &NotMemberError{Enum: e.name, Label: e.label, Value: value, Strict: true}
}

// MustGet is like Get but panics when value is not a member.
func (e *Enum[V]) MustGet(value V) *Member[V] {
	m, err := e.Get(value)
	if err != nil {
		panic(err)
	}
	return m
}

// Of resolves candidate to a member. Candidate may be a member of e, a value
// (other integer widths are converted), or nil for the empty member. Text
// enumerations fall back to a case-insensitive match. Of returns nil when
// nothing matches.
func (e *Enum[V]) Of(candidate any) *Member[V] {
	switch c := candidate.(type) {
	case nil:
		return e.empty
	case *Member[V]:
		if c != nil && c.enum == e {
			return c
		}
		return nil
	}

	v, ok := convert[V](candidate)
	if !ok {
		return nil
	}
	if m, ok := e.byValue[v]; ok {
		return m
	}
	if e.byFold != nil {
		return e.byFold[fold(any(v))]
	}
	return nil
}

// Resolve is Of that reports a miss as a *NotMemberError naming the
// candidate and the enumeration label.
func (e *Enum[V]) Resolve(candidate any) (*Member[V], error) {
	if m := e.Of(candidate); m != nil {
		return m, nil
	}
	return nil, &NotMemberError{Enum: e.name, Label: e.label, Value: candidate}
}

// Contains reports whether candidate equals a member value or is a member
// of e. Matching is exact.
func (e *Enum[V]) Contains(candidate any) bool {
	switch c := candidate.(type) {
	case *Member[V]:
		return c != nil && c.enum == e
	case nil:
		return false
	}
	v, ok := convert[V](candidate)
	if !ok {
		return false
	}
	_, ok = e.byValue[v]
	return ok
}

// Choice is one (value, label) pair. Value is nil for the empty member.
type Choice[V comparable] struct {
	Value *V
	Label Label
}

// Choices returns the (value, label) pairs in member order.
func (e *Enum[V]) Choices() []Choice[V] {
	out := make([]Choice[V], len(e.members))
	for i, m := range e.members {
		out[i] = Choice[V]{Value: m.ValuePtr(), Label: m.label}
	}
	return out
}

// Labels returns the member labels in order.
func (e *Enum[V]) Labels() []Label {
	out := make([]Label, len(e.members))
	for i, m := range e.members {
		out[i] = m.label
	}
	return out
}

// Values returns the member values in order; the empty member's is nil.
func (e *Enum[V]) Values() []*V {
	out := make([]*V, len(e.members))
	for i, m := range e.members {
		out[i] = m.ValuePtr()
	}
	return out
}

// Names returns the member names in order.
func (e *Enum[V]) Names() []string {
	out := make([]string, len(e.members))
	for i, m := range e.members {
		out[i] = m.name
	}
	return out
}

// GoString renders the enumeration as <enum 'Name'>.
func (e *Enum[V]) GoString() string {
	return fmt.Sprintf("<enum '%s'>", e.name)
}

func fold(v any) string {
	return cases.Fold().String(reflect.ValueOf(v).String())
}
