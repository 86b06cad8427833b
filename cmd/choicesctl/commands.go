package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	ut "github.com/go-playground/universal-translator"
	"gopkg.in/yaml.v3"

	"github.com/rezkam/choices/internal/catalog"
	"github.com/rezkam/choices/internal/config"
	sqlstorage "github.com/rezkam/choices/internal/storage/sql"
	"github.com/rezkam/choices/pkg/choices"
	"github.com/rezkam/choices/pkg/field"
	"github.com/rezkam/choices/pkg/i18n"
)

var errUsage = errors.New("usage")

var (
	outputFormats = choices.MustText("OutputFormat",
		choices.Def("TEXT", "text"),
		choices.Def("JSON", "json"),
		choices.Def("YAML", "yaml"),
	)
	dialects = choices.MustText("Dialect",
		choices.Def("SQLITE", field.DialectSQLite, "SQLite"),
		choices.Def("POSTGRES", field.DialectPostgres, "PostgreSQL"),
	)
)

type app struct {
	cfg    *config.CLIConfig
	bundle *i18n.Bundle
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return errUsage
	}
	switch args[0] {
	case "list":
		return a.list(args[1:])
	case "ddl":
		return a.ddl(args[1:])
	case "sync":
		return a.sync(ctx, args[1:])
	case "help", "-h", "--help":
		a.usage()
		return nil
	}
	fmt.Fprintf(a.stderr, "unknown command %q\n", args[0])
	a.usage()
	return errUsage
}

func (a *app) usage() {
	fmt.Fprint(a.stderr, `Usage: choicesctl <command> [flags]

Commands:
  list [-format text|json|yaml] [-locale LOCALE] [enum...]   print enumerations
  ddl  [-dialect sqlite|postgres]                             print CREATE TABLE statements
  sync [-locale LOCALE] [enum...]                             store enumerations in the database
`)
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// choiceFlag registers a flag whose value must be a member of enum.
func choiceFlag(fs *flag.FlagSet, name string, enum *choices.TextChoices, def, usage string) **choices.Member[string] {
	m := enum.MustGet(def)
	fs.Func(name, fmt.Sprintf("%s (default %q)", usage, def), func(s string) error {
		resolved, err := enum.Resolve(s)
		if err != nil {
			return err
		}
		m = resolved
		return nil
	})
	return &m
}

func (a *app) translator(locale string) (ut.Translator, error) {
	if locale == "" {
		locale = a.cfg.Locale
	}
	return a.bundle.Translator(locale)
}

type enumView struct {
	Name    string       `json:"name" yaml:"name"`
	Label   string       `json:"label" yaml:"label"`
	Kind    string       `json:"kind" yaml:"kind"`
	Members []memberView `json:"members" yaml:"members"`
}

type memberView struct {
	Name  string  `json:"name" yaml:"name"`
	Value *string `json:"value" yaml:"value"`
	Label string  `json:"label" yaml:"label"`
	Empty bool    `json:"empty,omitempty" yaml:"empty,omitempty"`
}

func newEnumView(d choices.Descriptor, trans ut.Translator) enumView {
	v := enumView{Name: d.Name, Label: d.Label, Kind: d.Kind.String()}
	labels := d.Labels(trans)
	for i, m := range d.Members {
		v.Members = append(v.Members, memberView{
			Name:  m.Name,
			Value: m.Text,
			Label: labels[i],
			Empty: m.Empty,
		})
	}
	return v
}

func (a *app) list(args []string) error {
	fs := a.flagSet("list")
	format := choiceFlag(fs, "format", outputFormats, "text", "output format")
	locale := fs.String("locale", "", "label locale (default $CHOICES_LOCALE)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	trans, err := a.translator(*locale)
	if err != nil {
		return err
	}
	enums, err := catalog.Lookup(fs.Args()...)
	if err != nil {
		return err
	}

	views := make([]enumView, len(enums))
	for i, e := range enums {
		views[i] = newEnumView(e.Describe(), trans)
	}

	switch (*format).Name() {
	case "JSON":
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	case "YAML":
		enc := yaml.NewEncoder(a.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return err
		}
		return enc.Close()
	}
	return writeText(a.stdout, views)
}

func writeText(w io.Writer, views []enumView) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, v := range views {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s (%s, %s)\n", v.Name, v.Label, v.Kind)
		for _, m := range v.Members {
			value := "<null>"
			if m.Value != nil {
				value = *m.Value
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", m.Name, value, m.Label)
		}
	}
	return tw.Flush()
}

func (a *app) ddl(args []string) error {
	fs := a.flagSet("ddl")
	dialect := choiceFlag(fs, "dialect", dialects, field.DialectSQLite, "SQL dialect")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	for i, m := range catalog.Models() {
		stmt, err := sqlstorage.CreateTableDDL((*dialect).Value(), m.Table, m.Columns...)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(a.stdout)
		}
		fmt.Fprintln(a.stdout, stmt)
	}
	return nil
}

func (a *app) sync(ctx context.Context, args []string) error {
	fs := a.flagSet("sync")
	locale := fs.String("locale", "", "locale labels are stored in (default $CHOICES_LOCALE)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	trans, err := a.translator(*locale)
	if err != nil {
		return err
	}
	enums, err := catalog.Lookup(fs.Args()...)
	if err != nil {
		return err
	}

	db := a.cfg.Database
	store, err := sqlstorage.Open(ctx, sqlstorage.DBConfig{
		Driver:          db.DriverName(),
		DSN:             db.DSN,
		MaxOpenConns:    db.MaxOpenConns,
		MaxIdleConns:    db.MaxIdleConns,
		ConnMaxLifetime: db.ConnMaxLifetime,
		ConnMaxIdleTime: db.ConnMaxIdleTime,
		AutoMigrate:     db.AutoMigrate,
		Logger:          a.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			a.logger.Warn("failed to close store", slog.Any("error", err))
		}
	}()

	for _, e := range enums {
		res, err := store.SyncEnum(ctx, e, trans)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "%s: %d inserted, %d updated, %d deleted\n", res.Enum, res.Inserted, res.Updated, res.Deleted)
	}
	return nil
}
