package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/rezkam/choices/pkg/choices"
	"github.com/rezkam/choices/pkg/field"
)

// SQL dialects.
const (
	DialectPostgres = field.DialectPostgres
	DialectSQLite   = field.DialectSQLite
)

const instrumentationName = "github.com/rezkam/choices/internal/storage/sql/repository"

var tracer = otel.Tracer(instrumentationName)

// Option is a stored enumeration member.
type Option struct {
	ID        uuid.UUID
	EnumName  string
	Name      string
	Kind      string
	Value     *string // nil for the empty member
	Label     string
	Position  int
	Empty     bool
	UpdatedAt time.Time
}

// SyncResult counts the changes made by SyncEnum.
type SyncResult struct {
	Enum     string
	Inserted int
	Updated  int
	Deleted  int
}

// Store persists enumeration members in the choice_option table.
type Store struct {
	db      *sql.DB
	dialect string
	logger  *slog.Logger
	now     func() time.Time
	changes metric.Int64Counter
}

// NewStore creates a store over db. Queries are written with ? placeholders
// and rebound for dialect.
func NewStore(db *sql.DB, dialect string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	changes, err := otel.Meter(instrumentationName).Int64Counter("choices.sync.changes",
		metric.WithDescription("Stored options inserted, updated or deleted by SyncEnum"),
		metric.WithUnit("{option}"),
	)
	if err != nil {
		logger.Warn("failed to create sync counter", slog.Any("error", err))
	}
	return &Store{
		db:      db,
		dialect: dialect,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
		changes: changes,
	}
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect returns the SQL dialect of the store.
func (s *Store) Dialect() string {
	return s.dialect
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

const upsertOption = `
INSERT INTO choice_option (id, enum_name, name, kind, value, label, position, is_empty, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (enum_name, name) DO UPDATE SET
    kind = excluded.kind,
    value = excluded.value,
    label = excluded.label,
    position = excluded.position,
    is_empty = excluded.is_empty,
    updated_at = excluded.updated_at`

// SyncEnum makes the stored options of an enumeration match its declaration:
// declared members are inserted or updated, members no longer declared are
// deleted. Labels are stored as rendered by trans, or by their default text
// when trans is nil. Everything happens in one transaction.
func (s *Store) SyncEnum(ctx context.Context, e choices.Describer, trans ut.Translator) (result SyncResult, err error) {
	d := e.Describe()
	if d.Name == "" {
		return SyncResult{}, ErrInvalidDescriptor
	}
	result.Enum = d.Name

	ctx, span := tracer.Start(ctx, "SyncEnum", trace.WithAttributes(
		attribute.String("choices.enum", d.Name),
		attribute.Int("choices.members", len(d.Members)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := s.storedNames(ctx, tx, d.Name)
	if err != nil {
		return result, err
	}

	now := s.now()
	declared := make(map[string]bool, len(d.Members))
	for pos, m := range d.Members {
		declared[m.Name] = true

		id, err := uuid.NewV7()
		if err != nil {
			return result, fmt.Errorf("failed to generate id: %w", err)
		}
		label := choices.TranslateLabel(m.Label, trans)

		if _, err := tx.ExecContext(ctx, s.rebind(upsertOption),
			id, d.Name, m.Name, d.Kind.String(), m.Text, label, pos, m.Empty, now,
		); err != nil {
			return result, fmt.Errorf("failed to upsert %s.%s: %w", d.Name, m.Name, err)
		}
		if existing[m.Name] {
			result.Updated++
		} else {
			result.Inserted++
		}
	}

	for name := range existing {
		if declared[name] {
			continue
		}
		if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM choice_option WHERE enum_name = ? AND name = ?`),
			d.Name, name,
		); err != nil {
			return result, fmt.Errorf("failed to delete %s.%s: %w", d.Name, name, err)
		}
		result.Deleted++
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.record(ctx, d.Name, "insert", result.Inserted)
	s.record(ctx, d.Name, "update", result.Updated)
	s.record(ctx, d.Name, "delete", result.Deleted)

	s.logger.InfoContext(ctx, "enumeration synced",
		slog.String("enum", d.Name),
		slog.Int("inserted", result.Inserted),
		slog.Int("updated", result.Updated),
		slog.Int("deleted", result.Deleted),
	)
	return result, nil
}

func (s *Store) record(ctx context.Context, enum, op string, n int) {
	if s.changes == nil || n == 0 {
		return
	}
	s.changes.Add(ctx, int64(n), metric.WithAttributes(
		attribute.String("choices.enum", enum),
		attribute.String("choices.op", op),
	))
}

func (s *Store) storedNames(ctx context.Context, tx *sql.Tx, enumName string) (map[string]bool, error) {
	rows, err := tx.QueryContext(ctx, s.rebind(`SELECT name FROM choice_option WHERE enum_name = ?`), enumName)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	names := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		names[name] = true
	}
	return names, rows.Err()
}

// ListOptions returns the stored options of an enumeration in declaration
// order. It returns ErrEnumNotFound when nothing is stored.
func (s *Store) ListOptions(ctx context.Context, enumName string) ([]Option, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
SELECT id, enum_name, name, kind, value, label, position, is_empty, updated_at
FROM choice_option
WHERE enum_name = ?
ORDER BY position`), enumName)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	var opts []Option
	for rows.Next() {
		var (
			o     Option
			value sql.NullString
		)
		if err := rows.Scan(&o.ID, &o.EnumName, &o.Name, &o.Kind, &value, &o.Label, &o.Position, &o.Empty, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		if value.Valid {
			o.Value = &value.String
		}
		opts = append(opts, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate options: %w", err)
	}
	if len(opts) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEnumNotFound, enumName)
	}
	return opts, nil
}

// ListEnums returns the names of all stored enumerations, sorted.
func (s *Store) ListEnums(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT enum_name FROM choice_option ORDER BY enum_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query enumerations: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan enumeration: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// rebind rewrites ? placeholders as $1, $2, ... for PostgreSQL.
func (s *Store) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	return sqlx.Rebind(sqlx.DOLLAR, query)
}
