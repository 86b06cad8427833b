package choices

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// EmptyName is the reserved declaration name of the empty member.
const EmptyName = "__empty__"

// Member is one (name, value, label) entry of an Enum. Members are created
// by the Enum that owns them and never change afterwards; compare them with ==.
type Member[V comparable] struct {
	enum  *Enum[V]
	name  string
	value V
	label Label
	empty bool
	index int
}

// Name returns the declaration name.
func (m *Member[V]) Name() string { return m.name }

// Value returns the member value. The empty member returns the zero V; use
// IsEmpty or ValuePtr to tell it apart from a declared zero value.
func (m *Member[V]) Value() V { return m.value }

// ValuePtr returns a pointer to a copy of the value, or nil for the empty member.
func (m *Member[V]) ValuePtr() *V {
	if m.empty {
		return nil
	}
	v := m.value
	return &v
}

// Label returns the display label.
func (m *Member[V]) Label() Label { return m.label }

// IsEmpty reports whether m is the empty member.
func (m *Member[V]) IsEmpty() bool { return m.empty }

// Enum returns the enumeration m belongs to.
func (m *Member[V]) Enum() *Enum[V] { return m.enum }

// Index returns the position of m in Members.
func (m *Member[V]) Index() int { return m.index }

// Equal reports whether v is m itself or equals its value.
// Text members compare exactly here; Enum.Of is the case-insensitive lookup.
func (m *Member[V]) Equal(v any) bool {
	if other, ok := v.(*Member[V]); ok {
		return other == m
	}
	if m.empty {
		return v == nil
	}
	cv, ok := convert[V](v)
	return ok && cv == m.value
}

// String returns the value as text; the empty member renders as "".
func (m *Member[V]) String() string {
	if m.empty {
		return ""
	}
	if s, ok := any(m.value).(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(m.value)
}

// GoString renders the member as <Enum.NAME: value>.
func (m *Member[V]) GoString() string {
	if m.empty {
		return fmt.Sprintf("<%s.%s: nil>", m.enum.name, m.name)
	}
	return fmt.Sprintf("<%s.%s: %s>", m.enum.name, m.name, formatValue(any(m.value)))
}

var (
	_ encoding.TextMarshaler = (*Member[int])(nil)
	_ json.Marshaler         = (*Member[int])(nil)
)

// MarshalText encodes the value using String.
func (m *Member[V]) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// MarshalJSON encodes the value itself, or null for the empty member.
func (m *Member[V]) MarshalJSON() ([]byte, error) {
	if m.empty {
		return []byte("null"), nil
	}
	return json.Marshal(m.value)
}
