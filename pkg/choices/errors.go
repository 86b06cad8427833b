package choices

import (
	"errors"
	"fmt"
	"reflect"

	ut "github.com/go-playground/universal-translator"
)

var (
	// ErrDefinition matches every error returned while building an enumeration.
	ErrDefinition = errors.New("invalid choices definition")

	// ErrNotMember matches lookup failures.
	ErrNotMember = errors.New("not a valid member")
)

// DuplicateValueError is returned when two members resolve to the same value.
type DuplicateValueError struct {
	Enum     string
	Name     string
	Existing string
}

func (e *DuplicateValueError) Error() string {
	return fmt.Sprintf("duplicate values found in <enum '%s'>: %s -> %s", e.Enum, e.Name, e.Existing)
}

func (e *DuplicateValueError) Is(target error) bool {
	return target == ErrDefinition
}

// DuplicateNameError is returned when a member name is declared twice.
type DuplicateNameError struct {
	Enum string
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("attempted to reuse key %q in <enum '%s'>", e.Name, e.Enum)
}

func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDefinition
}

// TypeConstructionError is returned when a member's arguments cannot build a
// value of the enumeration's base type.
type TypeConstructionError struct {
	Enum   string
	Member string
	Err    error
}

func (e *TypeConstructionError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Enum, e.Member, e.Err)
}

func (e *TypeConstructionError) Unwrap() error {
	return e.Err
}

func (e *TypeConstructionError) Is(target error) bool {
	return target == ErrDefinition
}

// UnsupportedBaseTypeError is returned when the value type cannot back an
// enumeration.
type UnsupportedBaseTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedBaseTypeError) Error() string {
	return fmt.Sprintf("type '%s' is not an acceptable base type", typeName(e.Type))
}

func (e *UnsupportedBaseTypeError) Is(target error) bool {
	return target == ErrDefinition
}

// NotMemberError is returned by lookups that find no member.
//
// Strict errors come from Get and use the fixed wording of a failed
// construction; the others come from Resolve and can be localized with
// Translate.
type NotMemberError struct {
	Enum   string
	Label  string
	Value  any
	Strict bool
}

func (e *NotMemberError) Error() string {
	if e.Strict {
		return fmt.Sprintf("%s is not a valid %s", formatValue(e.Value), e.Enum)
	}
	return fmt.Sprintf("%v is not a valid value of '%s'", e.Value, e.Label)
}

func (e *NotMemberError) Is(target error) bool {
	return target == ErrNotMember
}

// Translate renders the error with trans, falling back to Error when the
// catalog has no entry for it.
func (e *NotMemberError) Translate(trans ut.Translator) string {
	if e.Strict || trans == nil {
		return e.Error()
	}
	msg, err := trans.T(MsgNotMember, fmt.Sprintf("%v", e.Value), e.Label)
	if err != nil {
		return e.Error()
	}
	return msg
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "interface {}"
	}
	return t.String()
}
