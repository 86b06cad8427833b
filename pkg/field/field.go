// Package field persists choices enumerations to relational columns.
//
// A Field sits at the model boundary: it turns raw input, database values
// and members into members (ToValue, FromDB), members into driver values
// (Prep), and describes the column for migrations and forms.
package field

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/iancoleman/strcase"

	"github.com/rezkam/choices/pkg/choices"
)

// Field binds an enumeration to a model attribute.
type Field[V comparable] struct {
	enum        *choices.Enum[V]
	name        string
	verboseName string
	helpText    string
	def         *choices.Member[V]
	null        bool
	blank       bool
	maxLength   int
}

// Option configures a Field.
type Option func(*options)

type options struct {
	name        string
	verboseName string
	helpText    string
	def         any
	hasDefault  bool
	null        bool
	blank       bool
	maxLength   int
}

// WithName sets the attribute and column name. It defaults to the
// enumeration name in snake case.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithVerboseName sets the human readable field name.
func WithVerboseName(name string) Option {
	return func(o *options) { o.verboseName = name }
}

// WithHelpText sets the help text shown with form fields.
func WithHelpText(text string) Option {
	return func(o *options) { o.helpText = text }
}

// WithDefault sets the default, as a member or anything ToValue accepts.
func WithDefault(v any) Option {
	return func(o *options) {
		o.def = v
		o.hasDefault = true
	}
}

// Null allows NULL in the column.
func Null() Option {
	return func(o *options) { o.null = true }
}

// Blank allows forms to leave the field empty.
func Blank() Option {
	return func(o *options) { o.blank = true }
}

// WithMaxLength overrides the column width of text fields.
func WithMaxLength(n int) Option {
	return func(o *options) { o.maxLength = n }
}

// New creates a field for enum.
func New[V comparable](enum *choices.Enum[V], opts ...Option) (*Field[V], error) {
	if enum == nil {
		return nil, fmt.Errorf("field: nil enumeration")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	f := &Field[V]{
		enum:        enum,
		name:        o.name,
		verboseName: o.verboseName,
		helpText:    o.helpText,
		null:        o.null,
		blank:       o.blank,
		maxLength:   o.maxLength,
	}
	if f.name == "" {
		f.name = strcase.ToSnake(enum.Name())
	}
	if f.verboseName == "" {
		f.verboseName = strings.ReplaceAll(f.name, "_", " ")
	}
	if f.maxLength == 0 && enum.Kind() == choices.KindText {
		for _, m := range enum.Members() {
			if n := utf8.RuneCountInString(m.String()); n > f.maxLength {
				f.maxLength = n
			}
		}
	}

	if o.hasDefault {
		def, err := f.ToValue(o.def)
		if err != nil {
			return nil, fmt.Errorf("field %s: invalid default: %w", f.name, err)
		}
		f.def = def
	}
	return f, nil
}

// NewIntegerField creates a field storing an IntegerChoices as an integer column.
func NewIntegerField(enum *choices.IntegerChoices, opts ...Option) (*Field[int], error) {
	return New(enum, opts...)
}

// NewTextField creates a field storing a TextChoices as a character column.
func NewTextField(enum *choices.TextChoices, opts ...Option) (*Field[string], error) {
	return New(enum, opts...)
}

// Must panics if err is non-nil.
func Must[V comparable](f *Field[V], err error) *Field[V] {
	if err != nil {
		panic(err)
	}
	return f
}

// Enum returns the field's enumeration.
func (f *Field[V]) Enum() *choices.Enum[V] { return f.enum }

// Name returns the attribute name.
func (f *Field[V]) Name() string { return f.name }

// VerboseName returns the human readable name.
func (f *Field[V]) VerboseName() string { return f.verboseName }

// Default returns the default member, or nil.
func (f *Field[V]) Default() *choices.Member[V] { return f.def }

// IsNull reports whether the column accepts NULL.
func (f *Field[V]) IsNull() bool { return f.null }

// IsBlank reports whether forms may leave the field empty.
func (f *Field[V]) IsBlank() bool { return f.blank }

// MaxLength returns the column width of text fields, 0 otherwise.
func (f *Field[V]) MaxLength() int { return f.maxLength }

// ToValue converts raw input to a member. nil yields nil. Members of the
// field's enumeration pass through; integer fields also accept numeric
// strings, text fields match case-insensitively, and custom types accept
// text when they implement encoding.TextUnmarshaler.
func (f *Field[V]) ToValue(raw any) (*choices.Member[V], error) {
	if raw == nil {
		return nil, nil
	}
	if m := f.enum.Of(raw); m != nil {
		return m, nil
	}
	if coerced, ok := f.coerce(raw); ok {
		if m := f.enum.Of(coerced); m != nil {
			return m, nil
		}
	}
	_, err := f.enum.Resolve(raw)
	return nil, &ValidationError{Field: f.name, Code: CodeInvalidChoice, Value: raw, Err: err}
}

// FromDB converts a value read from the database. NULL yields nil.
func (f *Field[V]) FromDB(src any) (*choices.Member[V], error) {
	return f.ToValue(src)
}

// Prep converts a member or raw value to the value stored in the column.
// nil and the empty member are stored as NULL.
func (f *Field[V]) Prep(value any) (driver.Value, error) {
	m, err := f.ToValue(value)
	if err != nil {
		return nil, err
	}
	if m == nil || m.IsEmpty() {
		return nil, nil
	}
	return storageValue(m.Value())
}

// Validate runs ToValue and rejects absent values on non-null fields.
func (f *Field[V]) Validate(value any) (*choices.Member[V], error) {
	m, err := f.ToValue(value)
	if err != nil {
		return nil, err
	}
	if (m == nil || m.IsEmpty()) && !f.null {
		return nil, &ValidationError{Field: f.name, Code: CodeNull, Value: value}
	}
	return m, nil
}

// Scanner returns a sql.Scanner that stores the scanned member in dst.
func (f *Field[V]) Scanner(dst **choices.Member[V]) sql.Scanner {
	return scanner[V]{field: f, dst: dst}
}

// Valuer returns a driver.Valuer for m.
func (f *Field[V]) Valuer(m *choices.Member[V]) driver.Valuer {
	return valuer[V]{field: f, member: m}
}

type scanner[V comparable] struct {
	field *Field[V]
	dst   **choices.Member[V]
}

func (s scanner[V]) Scan(src any) error {
	m, err := s.field.FromDB(src)
	if err != nil {
		return err
	}
	*s.dst = m
	return nil
}

type valuer[V comparable] struct {
	field  *Field[V]
	member *choices.Member[V]
}

func (v valuer[V]) Value() (driver.Value, error) {
	if v.member == nil {
		return nil, nil
	}
	return v.field.Prep(v.member)
}

// coerce converts driver and form representations into something the
// enumeration can look up.
func (f *Field[V]) coerce(raw any) (any, bool) {
	if b, ok := raw.([]byte); ok {
		raw = string(b)
	}

	switch f.enum.Kind() {
	case choices.KindInteger:
		switch v := raw.(type) {
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			return n, err == nil
		case float64:
			if v == float64(int64(v)) {
				return int64(v), true
			}
		case float32:
			if v == float32(int64(v)) {
				return int64(v), true
			}
		}
	case choices.KindText:
		if s, ok := raw.(string); ok {
			return s, true
		}
	default:
		s, ok := raw.(string)
		if !ok {
			return nil, false
		}
		var v V
		if u, ok := any(&v).(encoding.TextUnmarshaler); ok {
			if err := u.UnmarshalText([]byte(s)); err == nil {
				return v, true
			}
		}
	}
	return nil, false
}

// storageValue converts a member value to one of the driver.Value types.
func storageValue(v any) (driver.Value, error) {
	if valuer, ok := v.(driver.Valuer); ok {
		return valuer.Value()
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.CanInt():
		return rv.Int(), nil
	case rv.CanUint():
		u := rv.Uint()
		if u > 1<<63-1 {
			return nil, fmt.Errorf("field: value %d overflows int64", u)
		}
		return int64(u), nil
	case rv.CanFloat():
		return rv.Float(), nil
	case rv.Kind() == reflect.String:
		return rv.String(), nil
	}
	if m, ok := v.(encoding.TextMarshaler); ok {
		b, err := m.MarshalText()
		if err != nil {
			return nil, err
		}
		return string(b), nil
	}
	if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
		arr := reflect.New(rv.Type()).Elem()
		arr.Set(rv)
		b := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(b), arr)
		return b, nil
	}
	return nil, fmt.Errorf("field: cannot store %T in a column", v)
}
