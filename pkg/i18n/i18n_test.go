package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/choices/pkg/choices"
	"github.com/rezkam/choices/pkg/field"
	"github.com/rezkam/choices/pkg/i18n"
)

func newBundle(t *testing.T) *i18n.Bundle {
	t.Helper()
	b, err := i18n.NewBundle()
	require.NoError(t, err)
	require.NoError(t, b.AddAll("en", map[string]string{
		"status.online":  "Online",
		"status.offline": "Offline",
	}))
	require.NoError(t, b.AddAll("zh", map[string]string{
		"status.online":  "上线",
		"status.offline": "下线",
	}))
	return b
}

func TestLazyLabelsFollowActiveLocale(t *testing.T) {
	b := newBundle(t)
	status := choices.MustInteger("Status",
		choices.Def("ONLINE", 1, b.Lazy("status.online")),
		choices.Def("OFFLINE", 0, b.Lazy("status.offline")),
	)

	labels := func() []string {
		var out []string
		for _, l := range status.Labels() {
			out = append(out, l.String())
		}
		return out
	}

	assert.Equal(t, []string{"Online", "Offline"}, labels())

	require.NoError(t, b.Activate("zh"))
	assert.Equal(t, []string{"上线", "下线"}, labels())

	b.Deactivate()
	assert.Equal(t, []string{"Online", "Offline"}, labels())
}

func TestLazyText(t *testing.T) {
	b := newBundle(t)
	online := b.Lazy("status.online")

	assert.Equal(t, "status.online", online.Key())

	zhTrans, err := b.Translator("zh")
	require.NoError(t, err)
	assert.Equal(t, "上线", online.Translate(zhTrans))
	assert.Equal(t, "上线", choices.TranslateLabel(online, zhTrans))
	assert.Equal(t, "status.online", online.Translate(nil))

	missing := b.Lazy("status.unknown")
	assert.Equal(t, "status.unknown", missing.String())
	assert.Equal(t, "status.unknown", missing.Translate(zhTrans))
}

func TestBundle_UnknownLocale(t *testing.T) {
	b := newBundle(t)

	assert.ErrorIs(t, b.Activate("fr"), i18n.ErrUnknownLocale)
	assert.ErrorIs(t, b.Add("fr", "k", "v"), i18n.ErrUnknownLocale)
	_, err := b.Translator("fr")
	assert.ErrorIs(t, err, i18n.ErrUnknownLocale)
	assert.Equal(t, "en", b.Active().Locale())
}

func TestBundle_AddReplaces(t *testing.T) {
	b := newBundle(t)
	require.NoError(t, b.Add("en", "status.online", "Live"))
	assert.Equal(t, "Live", b.Lazy("status.online").String())
}

func TestBundle_TranslatesErrors(t *testing.T) {
	b := newBundle(t)
	require.NoError(t, b.Activate("zh"))

	status := choices.MustInteger("Status",
		choices.Def("ONLINE", 1),
		choices.WithLabel(b.Lazy("status.online").String()),
	)
	_, err := status.Resolve(5)
	var notMember *choices.NotMemberError
	require.ErrorAs(t, err, &notMember)
	assert.Equal(t, "5 不是 '上线' 的有效值", notMember.Translate(b.Active()))

	f := field.Must(field.NewIntegerField(status, field.WithName("status")))
	_, err = f.ToValue(5)
	var verr *field.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status：值 5 不是有效的选项", verr.Translate(b.Active()))

	hant, err := b.Translator("zh_Hant")
	require.NoError(t, err)
	assert.Equal(t, "status：值 5 不是有效的選項", verr.Translate(hant))
}

func TestDescriptorLabels(t *testing.T) {
	b := newBundle(t)
	status := choices.MustInteger("Status",
		choices.Def("ONLINE", 1, b.Lazy("status.online")),
		choices.Empty("(Unknown)"),
	)
	zhTrans, err := b.Translator("zh")
	require.NoError(t, err)

	assert.Equal(t, []string{"(Unknown)", "上线"}, status.Describe().Labels(zhTrans))
}

func TestDefaultBundle(t *testing.T) {
	assert.Same(t, i18n.Default(), i18n.Default())
	require.NoError(t, i18n.Add("zh", "greeting", "你好"))

	greeting := i18n.Lazy("greeting")
	assert.Equal(t, "greeting", greeting.String())

	require.NoError(t, i18n.Activate("zh"))
	t.Cleanup(i18n.Default().Deactivate)
	assert.Equal(t, "你好", greeting.String())
}
