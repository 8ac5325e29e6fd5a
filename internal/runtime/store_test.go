package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dathuynh1108/rule-table-render/pkg/domain"
)

func TestNewFieldStore(t *testing.T) {
	t.Run("seeds values from defaults", func(t *testing.T) {
		store, err := NewFieldStore([]domain.Field{
			{ID: "loan_amount", Source: domain.SourceUser, Default: 2_000_000_000},
			{ID: "rate", Source: domain.SourceUser, Default: 0.08},
			{ID: "note", Source: domain.SourceUser},
		})
		require.NoError(t, err)

		v, ok := store.Get("loan_amount")
		require.True(t, ok)
		assert.Equal(t, 2_000_000_000, v)

		// Declared but defaultless fields resolve to nil, not missing.
		v, ok = store.Get("note")
		require.True(t, ok)
		assert.Nil(t, v)
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		_, err := NewFieldStore([]domain.Field{
			{ID: "rate", Source: domain.SourceUser},
			{ID: "rate", Source: domain.SourceCalc, Formula: "1"},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDuplicateFieldID)
	})

	t.Run("rejects empty ids", func(t *testing.T) {
		_, err := NewFieldStore([]domain.Field{{ID: ""}})
		require.Error(t, err)
	})
}

func TestFieldStoreOverrides(t *testing.T) {
	store, err := NewFieldStore([]domain.Field{
		{ID: "rate", Source: domain.SourceUser, Default: 0.08},
		{ID: "total", Source: domain.SourceCalc, Formula: "rate * 2"},
	})
	require.NoError(t, err)

	t.Run("override replaces default", func(t *testing.T) {
		require.NoError(t, store.ApplyOverride("rate", 0.1))
		v, _ := store.Get("rate")
		assert.Equal(t, 0.1, v)
	})

	t.Run("overrides may target calc fields", func(t *testing.T) {
		require.NoError(t, store.ApplyOverride("total", 42))
		v, _ := store.Get("total")
		assert.Equal(t, 42, v)
	})

	t.Run("unknown target is reported", func(t *testing.T) {
		err := store.ApplyOverride("no_such_field", 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnknownOverrideTarget)
	})
}

func TestFieldStoreSnapshotIsolation(t *testing.T) {
	store, err := NewFieldStore([]domain.Field{
		{ID: "a", Source: domain.SourceUser, Default: 1},
	})
	require.NoError(t, err)

	snap := store.Snapshot()
	snap["a"] = 99

	v, _ := store.Get("a")
	assert.Equal(t, 1, v, "mutating a snapshot must not touch the store")
}

func TestFieldStoreCalcFieldsOrder(t *testing.T) {
	store, err := NewFieldStore([]domain.Field{
		{ID: "z_calc", Source: domain.SourceCalc, Formula: "1"},
		{ID: "user", Source: domain.SourceUser},
		{ID: "a_calc", Source: domain.SourceCalc, Formula: "2"},
	})
	require.NoError(t, err)

	calc := store.CalcFields()
	require.Len(t, calc, 2)
	assert.Equal(t, "z_calc", calc[0].ID, "calc fields keep declaration order")
	assert.Equal(t, "a_calc", calc[1].ID)
}
