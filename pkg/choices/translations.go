package choices

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
)

// MsgNotMember is the catalog key of the Resolve lookup failure.
// Parameters: {0} the rejected value, {1} the enumeration label.
const MsgNotMember = "choices.not_member"

var catalogs = map[string]map[string]string{
	"en": {
		MsgNotMember: "{0} is not a valid value of '{1}'",
	},
	"zh": {
		MsgNotMember: "{0} 不是 '{1}' 的有效值",
	},
	"zh_Hant": {
		MsgNotMember: "{0} 不是 '{1}' 的有效值",
	},
}

// RegisterTranslations adds this package's messages to trans. Locales without
// their own catalog get the English messages.
func RegisterTranslations(trans ut.Translator) error {
	msgs, ok := catalogs[trans.Locale()]
	if !ok {
		msgs, ok = catalogs[baseLocale(trans.Locale())]
	}
	if !ok {
		msgs = catalogs["en"]
	}
	for key, text := range msgs {
		if err := trans.Add(key, text, false); err != nil {
			return fmt.Errorf("register %s for %s: %w", key, trans.Locale(), err)
		}
	}
	return nil
}

func baseLocale(locale string) string {
	if i := strings.IndexAny(locale, "_-"); i > 0 {
		return locale[:i]
	}
	return locale
}
