// Package i18n holds message catalogs for labels and validation messages.
//
// Labels built with Lazy are resolved each time they are rendered, so an
// enumeration declared at package init follows whatever locale is active
// when it is displayed.
package i18n

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	"github.com/go-playground/locales/zh_Hant"
	ut "github.com/go-playground/universal-translator"

	"github.com/rezkam/choices/pkg/choices"
	"github.com/rezkam/choices/pkg/field"
)

// ErrUnknownLocale is returned for locales the bundle was not built with.
var ErrUnknownLocale = errors.New("unknown locale")

// Bundle is a set of translators plus the currently active locale.
type Bundle struct {
	uni      *ut.UniversalTranslator
	fallback string

	mu     sync.RWMutex
	active ut.Translator
}

// NewBundle creates a bundle for the given locales, or en, zh and zh_Hant
// when none are given. The first locale is the fallback and starts active.
// Messages of the choices and field packages are registered for each locale.
func NewBundle(supported ...locales.Translator) (*Bundle, error) {
	if len(supported) == 0 {
		supported = []locales.Translator{en.New(), zh.New(), zh_Hant.New()}
	}
	uni := ut.New(supported[0], supported...)

	b := &Bundle{uni: uni, fallback: supported[0].Locale()}
	for _, l := range supported {
		trans, _ := uni.GetTranslator(l.Locale())
		if err := choices.RegisterTranslations(trans); err != nil {
			return nil, err
		}
		if err := field.RegisterTranslations(trans); err != nil {
			return nil, err
		}
	}
	b.active = uni.GetFallback()
	return b, nil
}

// Translator returns the translator for locale.
func (b *Bundle) Translator(locale string) (ut.Translator, error) {
	trans, found := b.uni.GetTranslator(locale)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLocale, locale)
	}
	return trans, nil
}

// Activate makes locale the active locale.
func (b *Bundle) Activate(locale string) error {
	trans, err := b.Translator(locale)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.active = trans
	b.mu.Unlock()
	return nil
}

// Deactivate restores the fallback locale.
func (b *Bundle) Deactivate() {
	b.mu.Lock()
	b.active = b.uni.GetFallback()
	b.mu.Unlock()
}

// Active returns the translator of the active locale.
func (b *Bundle) Active() ut.Translator {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.active
}

// Add registers text for key in locale, replacing any previous entry.
func (b *Bundle) Add(locale, key, text string) error {
	trans, err := b.Translator(locale)
	if err != nil {
		return err
	}
	if err := trans.Add(key, text, true); err != nil {
		return fmt.Errorf("add %q to %s: %w", key, locale, err)
	}
	return nil
}

// AddAll registers a catalog of key to text for locale.
func (b *Bundle) AddAll(locale string, catalog map[string]string) error {
	for key, text := range catalog {
		if err := b.Add(locale, key, text); err != nil {
			return err
		}
	}
	return nil
}

// Lazy returns a label that renders key through this bundle.
func (b *Bundle) Lazy(key string) *LazyText {
	return &LazyText{key: key, bundle: b}
}

// LazyText is a label translated on every use. Keys without a translation
// render as themselves.
type LazyText struct {
	key    string
	bundle *Bundle
}

var _ choices.Label = (*LazyText)(nil)

// Key returns the catalog key.
func (l *LazyText) Key() string { return l.key }

// String renders the label in the bundle's active locale.
func (l *LazyText) String() string {
	return l.Translate(l.bundle.Active())
}

// Translate renders the label with trans.
func (l *LazyText) Translate(trans ut.Translator) string {
	if trans == nil {
		return l.key
	}
	text, err := trans.T(l.key)
	if err != nil || text == "" {
		return l.key
	}
	return text
}

var (
	defaultOnce   sync.Once
	defaultBundle *Bundle
)

// Default returns the process-wide bundle (en, zh, zh_Hant; en active).
func Default() *Bundle {
	defaultOnce.Do(func() {
		b, err := NewBundle()
		if err != nil {
			panic(fmt.Sprintf("i18n: default bundle: %v", err))
		}
		defaultBundle = b
	})
	return defaultBundle
}

// Lazy returns a label rendered through the default bundle.
func Lazy(key string) *LazyText { return Default().Lazy(key) }

// Activate sets the active locale of the default bundle.
func Activate(locale string) error { return Default().Activate(locale) }

// Add registers a translation in the default bundle.
func Add(locale, key, text string) error { return Default().Add(locale, key, text) }
