package field

import (
	"fmt"
	"reflect"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/rezkam/choices/pkg/choices"
)

var validatorCatalogs = map[string]string{
	"en":      "{0} must be one of [{1}]",
	"zh":      "{0}必须是[{1}]中的一个",
	"zh_Hant": "{0}必須是[{1}]中的一個",
}

// RegisterValidation registers tag on v. Tagged fields are valid when their
// value is contained in enum. Nil pointers are left to omitempty/required.
func RegisterValidation[V comparable](v *validator.Validate, tag string, enum *choices.Enum[V]) error {
	if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		field := fl.Field()
		switch field.Kind() {
		case reflect.Invalid:
			return true
		case reflect.Pointer, reflect.Interface:
			if field.IsNil() {
				return true
			}
		}
		if !field.CanInterface() {
			return false
		}
		return enum.Contains(field.Interface())
	}); err != nil {
		return fmt.Errorf("register validation %q: %w", tag, err)
	}
	return nil
}

// RegisterTranslation registers the message for tag with trans, listing the
// accepted values of enum.
func RegisterTranslation[V comparable](v *validator.Validate, trans ut.Translator, tag string, enum *choices.Enum[V]) error {
	text, ok := forLocale(validatorCatalogs, trans.Locale())
	if !ok {
		text = validatorCatalogs["en"]
	}
	values := acceptedValues(enum)

	return v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error {
			return t.Add(tag, text, true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(tag, fe.Field(), values)
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

func acceptedValues[V comparable](enum *choices.Enum[V]) string {
	var vals []string
	for _, m := range enum.Members() {
		if !m.IsEmpty() {
			vals = append(vals, m.String())
		}
	}
	return strings.Join(vals, " ")
}
