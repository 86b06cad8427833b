package choices_test

import (
	"testing"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/choices/pkg/choices"
)

func translator(t *testing.T, locale string) ut.Translator {
	t.Helper()
	uni := ut.New(en.New(), en.New(), zh.New())
	trans, found := uni.GetTranslator(locale)
	require.True(t, found)
	require.NoError(t, choices.RegisterTranslations(trans))
	return trans
}

func TestNotMemberError_Translate(t *testing.T) {
	zhTrans := translator(t, "zh")
	enTrans := translator(t, "en")

	tests := []struct {
		candidate any
		zh        string
		en        string
	}{
		{candidate: "off", zh: "off 不是 '上下线状态' 的有效值", en: "off is not a valid value of '上下线状态'"},
		{candidate: 1, zh: "1 不是 '上下线状态' 的有效值", en: "1 is not a valid value of '上下线状态'"},
	}

	for _, tt := range tests {
		_, err := status.Resolve(tt.candidate)
		var notMember *choices.NotMemberError
		require.ErrorAs(t, err, &notMember)

		assert.Equal(t, tt.zh, notMember.Translate(zhTrans))
		assert.Equal(t, tt.en, notMember.Translate(enTrans))
		assert.Equal(t, tt.en, notMember.Error())
	}
}

func TestNotMemberError_TranslateStrictUsesFixedWording(t *testing.T) {
	_, err := yearInSchool.Get("fr")
	var notMember *choices.NotMemberError
	require.ErrorAs(t, err, &notMember)

	assert.Equal(t, `"fr" is not a valid YearInSchool`, notMember.Translate(translator(t, "zh")))
}

func TestTranslateLabel(t *testing.T) {
	assert.Equal(t, "Diamond", choices.TranslateLabel(choices.Plain("Diamond"), translator(t, "zh")))
	assert.Equal(t, "Diamond", choices.TranslateLabel(choices.Plain("Diamond"), nil))
	assert.Equal(t, "", choices.TranslateLabel(nil, nil))
}
