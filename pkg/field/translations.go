package field

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
)

var catalogs = map[string]map[string]string{
	"en": {
		MsgInvalidChoice: "{0}: value {1} is not a valid choice",
		MsgRequired:      "{0}: this field is required",
		MsgNull:          "{0}: this field cannot be null",
	},
	"zh": {
		MsgInvalidChoice: "{0}：值 {1} 不是有效的选项",
		MsgRequired:      "{0}：此字段为必填项",
		MsgNull:          "{0}：此字段不能为空",
	},
	"zh_Hant": {
		MsgInvalidChoice: "{0}：值 {1} 不是有效的選項",
		MsgRequired:      "{0}：此欄位為必填項",
		MsgNull:          "{0}：此欄位不能為空",
	},
}

// RegisterTranslations adds the validation messages to trans. Locales without
// their own catalog get the English messages.
func RegisterTranslations(trans ut.Translator) error {
	msgs, ok := forLocale(catalogs, trans.Locale())
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

// forLocale looks locale up in m, then its base language (zh for zh_CN).
func forLocale[T any](m map[string]T, locale string) (T, bool) {
	if v, ok := m[locale]; ok {
		return v, true
	}
	v, ok := m[baseLocale(locale)]
	return v, ok
}

func baseLocale(locale string) string {
	if i := strings.IndexAny(locale, "_-"); i > 0 {
		return locale[:i]
	}
	return locale
}
