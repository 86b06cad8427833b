package sql

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/rezkam/choices/pkg/field"
)

// Column is a model field that can describe its own column.
// *field.Field[V] implements it for every V.
type Column interface {
	Deconstruct() field.Deconstruction
	DBType(dialect string) (string, error)
}

// ColumnDDL renders a column definition:
//
//	name TYPE [NOT NULL] [DEFAULT x] CHECK (name IN (...))
func ColumnDDL(dialect string, col Column) (string, error) {
	d := col.Deconstruct()
	typ, err := col.DBType(dialect)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(quoteIdent(d.Name))
	b.WriteByte(' ')
	b.WriteString(typ)

	if null, _ := d.Args["null"].(bool); !null {
		b.WriteString(" NOT NULL")
	}
	if def, ok := d.Args["default"]; ok {
		lit, err := literal(dialect, def)
		if err != nil {
			return "", fmt.Errorf("column %s: %w", d.Name, err)
		}
		b.WriteString(" DEFAULT ")
		b.WriteString(lit)
	}

	if values, _ := d.Args["choices"].([]any); len(values) > 0 {
		lits := make([]string, len(values))
		for i, v := range values {
			lit, err := literal(dialect, v)
			if err != nil {
				return "", fmt.Errorf("column %s: %w", d.Name, err)
			}
			lits[i] = lit
		}
		fmt.Fprintf(&b, " CHECK (%s IN (%s))", quoteIdent(d.Name), strings.Join(lits, ", "))
	}
	return b.String(), nil
}

// CreateTableDDL renders a CREATE TABLE statement with a surrogate key
// followed by the given columns.
func CreateTableDDL(dialect, table string, cols ...Column) (string, error) {
	var id string
	switch dialect {
	case field.DialectPostgres:
		id = "id BIGSERIAL PRIMARY KEY"
	case field.DialectSQLite:
		id = "id INTEGER PRIMARY KEY"
	default:
		return "", fmt.Errorf("unknown dialect %q", dialect)
	}

	lines := []string{id}
	for _, col := range cols {
		line, err := ColumnDDL(dialect, col)
		if err != nil {
			return "", fmt.Errorf("table %s: %w", table, err)
		}
		lines = append(lines, line)
	}
	return fmt.Sprintf("CREATE TABLE %s (\n    %s\n);", quoteIdent(table), strings.Join(lines, ",\n    ")), nil
}

func literal(dialect string, v any) (string, error) {
	switch v := v.(type) {
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case bool:
		if v {
			return "TRUE", nil
		}
		return "FALSE", nil
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'", nil
	case []byte:
		if dialect == field.DialectPostgres {
			return `'\x` + hex.EncodeToString(v) + `'::bytea`, nil
		}
		return "X'" + hex.EncodeToString(v) + "'", nil
	}
	return "", fmt.Errorf("no SQL literal for %T", v)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
