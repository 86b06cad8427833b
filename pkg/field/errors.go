package field

import (
	"errors"
	"fmt"

	ut "github.com/go-playground/universal-translator"
)

var (
	// ErrInvalidChoice matches every ValidationError with code invalid_choice.
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrRequired matches ValidationErrors with code required.
	ErrRequired = errors.New("value required")
)

// Validation error codes.
const (
	CodeInvalidChoice = "invalid_choice"
	CodeRequired      = "required"
	CodeNull          = "null"
)

// Catalog keys of the validation messages.
const (
	MsgInvalidChoice = "field.invalid_choice"
	MsgRequired      = "field.required"
	MsgNull          = "field.null"
)

// ValidationError reports a value rejected at the model boundary.
type ValidationError struct {
	Field string
	Code  string
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	switch e.Code {
	case CodeRequired:
		return fmt.Sprintf("%s: this field is required", e.Field)
	case CodeNull:
		return fmt.Sprintf("%s: this field cannot be null", e.Field)
	default:
		return fmt.Sprintf("%s: value %s is not a valid choice", e.Field, repr(e.Value))
	}
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrInvalidChoice:
		return e.Code == CodeInvalidChoice
	case ErrRequired:
		return e.Code == CodeRequired || e.Code == CodeNull
	}
	return false
}

// Translate renders the message with trans, falling back to Error.
func (e *ValidationError) Translate(trans ut.Translator) string {
	if trans == nil {
		return e.Error()
	}
	var (
		msg string
		err error
	)
	switch e.Code {
	case CodeRequired:
		msg, err = trans.T(MsgRequired, e.Field)
	case CodeNull:
		msg, err = trans.T(MsgNull, e.Field)
	default:
		msg, err = trans.T(MsgInvalidChoice, e.Field, repr(e.Value))
	}
	if err != nil {
		return e.Error()
	}
	return msg
}

func repr(v any) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case string:
		return fmt.Sprintf("%q", v)
	case []byte:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
