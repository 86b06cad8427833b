// Package catalog declares the enumerations and models choicesctl works on.
package catalog

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/rezkam/choices/internal/config"
	sqlstorage "github.com/rezkam/choices/internal/storage/sql"
	"github.com/rezkam/choices/pkg/choices"
	"github.com/rezkam/choices/pkg/field"
	"github.com/rezkam/choices/pkg/i18n"
)

var (
	Suit = choices.MustInteger("Suit",
		choices.Def("DIAMOND", 1, i18n.Lazy("suit.diamond")),
		choices.Def("SPADE", 2, i18n.Lazy("suit.spade")),
		choices.Def("HEART", 3, i18n.Lazy("suit.heart")),
		choices.Def("CLUB", 4, i18n.Lazy("suit.club")),
	)

	YearInSchool = choices.MustText("YearInSchool",
		choices.Def("FRESHMAN", "FR"),
		choices.Def("SOPHOMORE", "SO"),
		choices.Def("JUNIOR", "JR"),
		choices.Def("SENIOR", "SR"),
		choices.Def("GRADUATE", "GR"),
	)

	Vehicle = choices.MustInteger("Vehicle",
		choices.Def("CAR", 1, "Carriage"),
		choices.Def("TRUCK", 2),
		choices.Def("JET_SKI", 3),
		choices.Empty(i18n.Lazy("vehicle.unknown")),
	)

	Status = choices.MustText("Status",
		choices.WithLabel("上下线状态"),
		choices.Def("ONLINE", choices.Auto, i18n.Lazy("status.online")),
		choices.Def("OFFLINE", choices.Auto, i18n.Lazy("status.offline")),
	)

	Frequency = choices.Must(choices.New[time.Duration]("Frequency",
		choices.Def("HOURLY", time.Hour),
		choices.Def("DAILY", 24*time.Hour),
		choices.Def("WEEKLY", 7*24*time.Hour),
	))
)

// Translations are the catalog labels per locale.
var Translations = map[string]map[string]string{
	"en": {
		"suit.diamond":    "Diamond",
		"suit.spade":      "Spade",
		"suit.heart":      "Heart",
		"suit.club":       "Club",
		"vehicle.unknown": "(Unknown)",
		"status.online":   "Online",
		"status.offline":  "Offline",
	},
	"zh": {
		"suit.diamond":    "方块",
		"suit.spade":      "黑桃",
		"suit.heart":      "红桃",
		"suit.club":       "梅花",
		"vehicle.unknown": "（未知）",
		"status.online":   "上线",
		"status.offline":  "下线",
	},
	"zh_Hant": {
		"suit.diamond":    "方塊",
		"suit.spade":      "黑桃",
		"suit.heart":      "紅桃",
		"suit.club":       "梅花",
		"vehicle.unknown": "（未知）",
		"status.online":   "上線",
		"status.offline":  "下線",
	},
}

// Install adds Translations to b. Locales b was not built with are skipped.
func Install(b *i18n.Bundle) error {
	for _, locale := range slices.Sorted(maps.Keys(Translations)) {
		if _, err := b.Translator(locale); errors.Is(err, i18n.ErrUnknownLocale) {
			continue
		}
		if err := b.AddAll(locale, Translations[locale]); err != nil {
			return fmt.Errorf("install %s catalog: %w", locale, err)
		}
	}
	return nil
}

// Enums returns every catalog enumeration, including the ones backing the
// configuration, in a stable order.
func Enums() []choices.Describer {
	return []choices.Describer{
		Suit, YearInSchool, Vehicle, Status, Frequency,
		config.Drivers, config.LogLevels, config.LogFormats,
	}
}

// Lookup returns the enumerations with the given names, or all of them when
// no name is given.
func Lookup(names ...string) ([]choices.Describer, error) {
	all := Enums()
	if len(names) == 0 {
		return all, nil
	}
	out := make([]choices.Describer, 0, len(names))
	for _, name := range names {
		i := slices.IndexFunc(all, func(d choices.Describer) bool { return d.Describe().Name == name })
		if i < 0 {
			return nil, fmt.Errorf("unknown enumeration %q", name)
		}
		out = append(out, all[i])
	}
	return out, nil
}

// Model is a table whose columns are choice fields.
type Model struct {
	Table   string
	Columns []sqlstorage.Column
}

// Models returns the catalog models.
func Models() []Model {
	return []Model{
		{
			Table: "card",
			Columns: []sqlstorage.Column{
				field.Must(field.NewIntegerField(Suit, field.WithDefault(1))),
			},
		},
		{
			Table: "student",
			Columns: []sqlstorage.Column{
				field.Must(field.NewTextField(YearInSchool, field.WithDefault("FR"))),
				field.Must(field.NewIntegerField(Vehicle, field.Null(), field.Blank())),
				field.Must(field.NewTextField(Status, field.WithName("status"), field.WithDefault("ONLINE"))),
			},
		},
		{
			Table: "report_schedule",
			Columns: []sqlstorage.Column{
				field.Must(field.New(Frequency, field.WithDefault(24*time.Hour))),
			},
		},
	}
}
