package field

import (
	"fmt"
	"reflect"

	"github.com/rezkam/choices/pkg/choices"
)

// SQL dialects understood by DBType.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Deconstruction describes a field well enough to recreate its column.
type Deconstruction struct {
	Name string
	// Path names the field constructor, e.g. "field.TextField".
	Path string
	Args map[string]any
}

// Deconstruct describes the field for migrations. Args always carries
// "enum", "null", "blank" and "choices" (the stored values, in order);
// "verbose_name", "help_text", "default" and "max_length" appear when set.
func (f *Field[V]) Deconstruct() Deconstruction {
	path := "field.Field"
	switch f.enum.Kind() {
	case choices.KindInteger:
		path = "field.IntegerField"
	case choices.KindText:
		path = "field.TextField"
	}

	args := map[string]any{
		"enum":  f.enum.Name(),
		"null":  f.null,
		"blank": f.blank,
	}
	if f.verboseName != "" {
		args["verbose_name"] = f.verboseName
	}
	if f.helpText != "" {
		args["help_text"] = f.helpText
	}
	if f.maxLength > 0 {
		args["max_length"] = f.maxLength
	}
	if f.def != nil && !f.def.IsEmpty() {
		if v, err := storageValue(f.def.Value()); err == nil {
			args["default"] = v
		}
	}

	stored := make([]any, 0, f.enum.Len())
	for _, m := range f.enum.Members() {
		if m.IsEmpty() {
			continue
		}
		if v, err := storageValue(m.Value()); err == nil {
			stored = append(stored, v)
		}
	}
	args["choices"] = stored

	return Deconstruction{Name: f.name, Path: path, Args: args}
}

// DBType returns the column type for dialect.
func (f *Field[V]) DBType(dialect string) (string, error) {
	t := reflect.TypeFor[V]()
	switch dialect {
	case DialectPostgres:
		switch f.enum.Kind() {
		case choices.KindInteger:
			if t.Size() > 4 {
				return "BIGINT", nil
			}
			return "INTEGER", nil
		case choices.KindText:
			return fmt.Sprintf("VARCHAR(%d)", max(f.maxLength, 1)), nil
		}
		switch {
		case isFloat(t):
			return "DOUBLE PRECISION", nil
		case isBytes(t):
			return "BYTEA", nil
		}
		return "TEXT", nil
	case DialectSQLite:
		switch f.enum.Kind() {
		case choices.KindInteger:
			return "INTEGER", nil
		case choices.KindText:
			return "TEXT", nil
		}
		switch {
		case isFloat(t):
			return "REAL", nil
		case isBytes(t):
			return "BLOB", nil
		}
		return "TEXT", nil
	}
	return "", fmt.Errorf("field: unknown dialect %q", dialect)
}

func isFloat(t reflect.Type) bool {
	return t.Kind() == reflect.Float32 || t.Kind() == reflect.Float64
}

func isBytes(t reflect.Type) bool {
	return t.Kind() == reflect.Array && t.Elem().Kind() == reflect.Uint8
}
