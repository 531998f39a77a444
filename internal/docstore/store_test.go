package docstore

import (
	"context"
	"testing"
	"time"

	apperrors "gearguard/pkg/errors"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T, clock clockwork.Clock) *SQLiteStore {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, MigrateSQLite(context.Background(), db, zap.NewNop()))
	store := NewSQLiteStore(db, Options{Clock: clock})
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_CRUD(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC))
	store := newTestStore(t, clock)

	created, err := store.Create(ctx, "equipment", Fields{
		"name":         "Pump A",
		"serialNumber": "SN-1",
		"status":       "active",
		"purchaseDate": ServerTimestamp,
		"id":           "ignored",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.NotEqual(t, "ignored", created.ID)
	assert.Equal(t, "Pump A", created.Data["name"])
	assert.Equal(t, "2025-03-01T09:30:00.000000Z", created.Data["purchaseDate"])
	assert.NotContains(t, created.Data, "id")
	assert.True(t, created.CreateTime.Equal(clock.Now()))

	t.Run("get", func(t *testing.T) {
		found, err := store.Get(ctx, "equipment", created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Data, found.Data)
	})

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		clock.Advance(time.Hour)
		updated, err := store.Update(ctx, "equipment", created.ID, Fields{"status": "maintenance"})
		require.NoError(t, err)
		assert.Equal(t, "maintenance", updated.Data["status"])
		assert.Equal(t, "SN-1", updated.Data["serialNumber"])
		assert.Equal(t, "Pump A", updated.Data["name"])
		assert.True(t, updated.UpdateTime.After(updated.CreateTime))
	})

	t.Run("delete sentinel removes a field", func(t *testing.T) {
		updated, err := store.Update(ctx, "equipment", created.ID, Fields{"serialNumber": Delete})
		require.NoError(t, err)
		assert.NotContains(t, updated.Data, "serialNumber")
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "equipment", created.ID))

		_, err := store.Get(ctx, "equipment", created.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		assert.ErrorIs(t, store.Delete(ctx, "equipment", created.ID), apperrors.ErrNotFound)
		_, err = store.Update(ctx, "equipment", created.ID, Fields{"name": "x"})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestSQLiteStore_Query(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	store := newTestStore(t, clock)

	seed := []Fields{
		{"name": "Boiler", "status": "active", "hours": 120, "tags": []string{"heat", "critical"}},
		{"name": "Compressor", "status": "maintenance", "hours": 40, "tags": []string{"air"}},
		{"name": "Drill", "status": "maintenance", "hours": 300, "retired": false},
		{"name": "Anvil", "status": "scrapped", "hours": 10},
	}
	for _, f := range seed {
		clock.Advance(time.Second)
		_, err := store.Create(ctx, "equipment", f)
		require.NoError(t, err)
	}
	_, err := store.Create(ctx, "teams", Fields{"name": "Mechanics", "status": "maintenance"})
	require.NoError(t, err)

	names := func(docs []Document) []string {
		out := make([]string, 0, len(docs))
		for _, d := range docs {
			out = append(out, d.Data["name"].(string))
		}
		return out
	}

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{"no filter keeps creation order", Query{}, []string{"Boiler", "Compressor", "Drill", "Anvil"}},
		{"equality", Where("status", OpEqual, "maintenance"), []string{"Compressor", "Drill"}},
		{"not equal", Where("status", OpNotEqual, "maintenance"), []string{"Boiler", "Anvil"}},
		{"range", Where("hours", OpGreaterEqual, 100), []string{"Boiler", "Drill"}},
		{"in", Where("status", OpIn, []any{"active", "scrapped"}), []string{"Boiler", "Anvil"}},
		{"empty in", Where("status", OpIn, []any{}), []string{}},
		{"array contains", Where("tags", OpArrayContains, "air"), []string{"Compressor"}},
		{"bool", Where("retired", OpEqual, false), []string{"Drill"}},
		{"order desc", Query{}.OrderBy("name", true), []string{"Drill", "Compressor", "Boiler", "Anvil"}},
		{"limit offset", Query{}.OrderBy("name", false).WithLimit(2).WithOffset(1), []string{"Boiler", "Compressor"}},
		{"offset only", Query{}.WithOffset(3), []string{"Anvil"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docs, err := store.Query(ctx, "equipment", tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(docs))
		})
	}

	t.Run("count ignores limit", func(t *testing.T) {
		total, err := store.Count(ctx, "equipment", Where("status", OpEqual, "maintenance").WithLimit(1))
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
	})

	t.Run("invalid field is rejected", func(t *testing.T) {
		_, err := store.Query(ctx, "equipment", Where("name'); DROP TABLE documents; --", OpEqual, "x"))
		assert.ErrorIs(t, err, ErrInvalidQuery)
	})
}

func TestUnconfigured(t *testing.T) {
	ctx := context.Background()
	var store Store = Unconfigured{}

	_, err := store.Query(ctx, "equipment", Query{})
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)
	_, err = store.Create(ctx, "equipment", Fields{"name": "x"})
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)
	assert.ErrorIs(t, store.Delete(ctx, "equipment", "1"), apperrors.ErrNotConfigured)
}

func TestPostgresDialect_SQL(t *testing.T) {
	q := Where("status", OpEqual, "maintenance").
		Where("tags", OpArrayContains, "air").
		Where("purchaseDate", OpLess, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)).
		OrderBy("name", false).
		WithLimit(10)

	builder, err := selectDocuments(postgresDialect{}, "equipment", q)
	require.NoError(t, err)
	sqlQuery, args, err := builder.ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, data, create_time, update_time FROM documents WHERE collection = $1 AND data->'status' = $2::jsonb AND data->'tags' @> $3::jsonb AND data->'purchaseDate' < $4::jsonb ORDER BY data->'name' ASC NULLS LAST, create_time ASC, id ASC LIMIT 10",
		sqlQuery,
	)
	assert.Equal(t, []interface{}{"equipment", `"maintenance"`, `["air"]`, `"2024-01-02T03:04:05.000000Z"`}, args)
}
