package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/choices/internal/storage/sql/repository"
	sqlstorage "github.com/rezkam/choices/internal/storage/sql"
	"github.com/rezkam/choices/pkg/choices"
	"github.com/rezkam/choices/pkg/i18n"
)

func newStore(t *testing.T) *repository.Store {
	t.Helper()
	store, err := sqlstorage.Open(context.Background(), sqlstorage.DBConfig{
		Driver:       sqlstorage.DriverSQLite,
		DSN:          ":memory:",
		MaxOpenConns: 1,
		AutoMigrate:  true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func optionNames(opts []repository.Option) []string {
	names := make([]string, len(opts))
	for i, o := range opts {
		names[i] = o.Name
	}
	return names
}

func TestStore_SyncEnum(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	vehicle := choices.MustInteger("Vehicle",
		choices.Def("CAR", 1, "Carriage"),
		choices.Def("TRUCK", 2),
		choices.Empty("(Unknown)"),
	)

	res, err := store.SyncEnum(ctx, vehicle, nil)
	require.NoError(t, err)
	assert.Equal(t, repository.SyncResult{Enum: "Vehicle", Inserted: 3}, res)

	opts, err := store.ListOptions(ctx, "Vehicle")
	require.NoError(t, err)
	require.Len(t, opts, 3)
	assert.Equal(t, []string{choices.EmptyName, "CAR", "TRUCK"}, optionNames(opts))

	empty := opts[0]
	assert.True(t, empty.Empty)
	assert.Nil(t, empty.Value)
	assert.Equal(t, "(Unknown)", empty.Label)

	car := opts[1]
	assert.False(t, car.Empty)
	require.NotNil(t, car.Value)
	assert.Equal(t, "1", *car.Value)
	assert.Equal(t, "Carriage", car.Label)
	assert.Equal(t, "integer", car.Kind)
	assert.Equal(t, 1, car.Position)
	assert.EqualValues(t, 7, car.ID.Version())
	assert.False(t, car.UpdatedAt.IsZero())

	redeclared := choices.MustInteger("Vehicle",
		choices.Def("CAR", 1, "Automobile"),
		choices.Def("BOAT", 3),
		choices.Empty("(Unknown)"),
	)
	res, err = store.SyncEnum(ctx, redeclared, nil)
	require.NoError(t, err)
	assert.Equal(t, repository.SyncResult{Enum: "Vehicle", Inserted: 1, Updated: 2, Deleted: 1}, res)

	opts, err = store.ListOptions(ctx, "Vehicle")
	require.NoError(t, err)
	assert.Equal(t, []string{choices.EmptyName, "CAR", "BOAT"}, optionNames(opts))
	assert.Equal(t, "Automobile", opts[1].Label)
	assert.Equal(t, car.ID, opts[1].ID, "updates keep the row id")
}

func TestStore_SyncEnumTranslatesLabels(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	bundle, err := i18n.NewBundle()
	require.NoError(t, err)
	require.NoError(t, bundle.Add("zh", "status.online", "上线"))
	trans, err := bundle.Translator("zh")
	require.NoError(t, err)

	status := choices.MustText("Status",
		choices.Def("ONLINE", "online", bundle.Lazy("status.online")),
	)
	_, err = store.SyncEnum(ctx, status, trans)
	require.NoError(t, err)

	opts, err := store.ListOptions(ctx, "Status")
	require.NoError(t, err)
	require.Len(t, opts, 1)
	assert.Equal(t, "上线", opts[0].Label)
	assert.Equal(t, "text", opts[0].Kind)
}

func TestStore_ListEnums(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	names, err := store.ListEnums(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = store.SyncEnum(ctx, choices.MustText("Suit", choices.Def("HEARTS", "H")), nil)
	require.NoError(t, err)
	_, err = store.SyncEnum(ctx, choices.MustInteger("Rank", choices.Def("ACE", 1)), nil)
	require.NoError(t, err)

	names, err = store.ListEnums(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rank", "Suit"}, names)
}

func TestStore_ListOptionsNotFound(t *testing.T) {
	_, err := newStore(t).ListOptions(context.Background(), "Missing")
	assert.ErrorIs(t, err, repository.ErrEnumNotFound)
}

type describerFunc func() choices.Descriptor

func (f describerFunc) Describe() choices.Descriptor { return f() }

func TestStore_SyncEnumRejectsUnnamed(t *testing.T) {
	_, err := newStore(t).SyncEnum(context.Background(), describerFunc(func() choices.Descriptor {
		return choices.Descriptor{}
	}), nil)
	assert.ErrorIs(t, err, repository.ErrInvalidDescriptor)
}
