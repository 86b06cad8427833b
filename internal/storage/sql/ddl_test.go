package sql_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sqlstorage "github.com/rezkam/choices/internal/storage/sql"
	"github.com/rezkam/choices/pkg/choices"
	"github.com/rezkam/choices/pkg/field"
)

var (
	demoType = choices.MustInteger("DemoType",
		choices.Def("NORMAL", 1, "正常"),
		choices.Def("MEDIUM", 2, "中等"),
	)
	demoStatus = choices.MustText("DemoStatus",
		choices.Def("NORMAL", "normal", "正常"),
		choices.Def("GOOD", "good", "好"),
		choices.Def("QUOTED", "it's", "Quoted"),
	)

	typeField   = field.Must(field.NewIntegerField(demoType, field.WithName("type"), field.WithDefault(1)))
	statusField = field.Must(field.NewTextField(demoStatus, field.WithName("status"), field.Null()))
)

func TestColumnDDL(t *testing.T) {
	tests := []struct {
		name    string
		dialect string
		col     sqlstorage.Column
		want    string
	}{
		{
			name:    "integer sqlite",
			dialect: field.DialectSQLite,
			col:     typeField,
			want:    `"type" INTEGER NOT NULL DEFAULT 1 CHECK ("type" IN (1, 2))`,
		},
		{
			name:    "text postgres",
			dialect: field.DialectPostgres,
			col:     statusField,
			want:    `"status" VARCHAR(6) CHECK ("status" IN ('normal', 'good', 'it''s'))`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sqlstorage.ColumnDDL(tt.dialect, tt.col)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := sqlstorage.ColumnDDL("oracle", typeField)
	assert.Error(t, err)
}

func TestCreateTableDDL_EnforcedBySQLite(t *testing.T) {
	ddl, err := sqlstorage.CreateTableDDL(field.DialectSQLite, "demo", typeField, statusField)
	require.NoError(t, err)
	assert.Equal(t, `CREATE TABLE "demo" (
    id INTEGER PRIMARY KEY,
    "type" INTEGER NOT NULL DEFAULT 1 CHECK ("type" IN (1, 2)),
    "status" TEXT CHECK ("status" IN ('normal', 'good', 'it''s'))
);`, ddl)

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(ddl)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO demo (status) VALUES (?)`, statusField.Valuer(demoStatus.MustGet("it's")))
	require.NoError(t, err)

	var got *choices.Member[int]
	require.NoError(t, db.QueryRow(`SELECT type FROM demo`).Scan(typeField.Scanner(&got)))
	assert.Equal(t, "NORMAL", got.Name())

	_, err = db.Exec(`INSERT INTO demo (type, status) VALUES (3, 'good')`)
	assert.Error(t, err, "CHECK constraint rejects undeclared values")
}

func TestCreateTableDDL_UnknownDialect(t *testing.T) {
	_, err := sqlstorage.CreateTableDDL("oracle", "demo", typeField)
	assert.Error(t, err)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := sqlstorage.Open(context.Background(), sqlstorage.DBConfig{Driver: "mysql", DSN: "x"})
	assert.Error(t, err)

	dialect, err := sqlstorage.Dialect(sqlstorage.DriverPgx)
	require.NoError(t, err)
	assert.Equal(t, field.DialectPostgres, dialect)
}

func TestOpen_SQLiteWithoutMigrations(t *testing.T) {
	store, err := sqlstorage.Open(context.Background(), sqlstorage.DBConfig{
		Driver:       sqlstorage.DriverSQLite,
		DSN:          ":memory:",
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	assert.Equal(t, field.DialectSQLite, store.Dialect())
	_, err = store.ListEnums(context.Background())
	assert.Error(t, err, "choice_option does not exist until migrated")
}
