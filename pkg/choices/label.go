package choices

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Label is the display text of a member.
//
// Implementations may defer resolution until String or Translate is called,
// so a label built before a locale is activated still renders in that locale.
type Label interface {
	String() string
	Translate(trans ut.Translator) string
}

// Plain is a literal label that is never translated.
type Plain string

func (t Plain) String() string { return string(t) }

// Translate returns the text unchanged.
func (t Plain) Translate(ut.Translator) string { return string(t) }

// TranslateLabel renders l with trans. A nil translator renders the default text.
func TranslateLabel(l Label, trans ut.Translator) string {
	if l == nil {
		return ""
	}
	if trans == nil {
		return l.String()
	}
	return l.Translate(trans)
}

// InferLabel derives a label from a member name: JET_SKI becomes "Jet Ski".
func InferLabel(name string) string {
	// Casers keep state between calls and cannot be shared.
	return cases.Title(language.Und).String(strings.ReplaceAll(name, "_", " "))
}

func asLabel(v any) (Label, bool) {
	switch v := v.(type) {
	case Label:
		return v, true
	case string:
		return Plain(v), true
	default:
		return nil, false
	}
}
