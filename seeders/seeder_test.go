package seeders

import (
	"context"
	"testing"
	"time"

	"gearguard/internal/docstore"
	"gearguard/internal/routes"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/types"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSeedDeps(t *testing.T) (Dependencies, *routes.Services) {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()

	db, err := docstore.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, docstore.MigrateSQLite(ctx, db, logger))
	store := docstore.NewSQLiteStore(db, docstore.Options{})
	t.Cleanup(func() { _ = store.Close() })

	bus := eventbus.New(logger)
	t.Cleanup(bus.Wait)

	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	svc := routes.BuildServices(routes.Dependencies{
		Store:     store,
		Bus:       bus,
		Clock:     clock,
		Validator: validator.New(),
	}, routes.NewLoggers(logger))

	return Dependencies{
		Categories:  svc.Categories,
		WorkCenters: svc.WorkCenters,
		Teams:       svc.Teams,
		Equipment:   svc.Equipment,
		Requests:    svc.Requests,
		Auth:        svc.Auth,
		Now:         clock.Now,
	}, svc
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	deps, _ := newSeedDeps(t)
	logger := zap.NewNop()

	for i := 0; i < 2; i++ {
		require.NoError(t, SeedDictionaries(ctx, deps, logger), "проход %d", i+1)
		require.NoError(t, SeedEquipment(ctx, deps, logger), "проход %d", i+1)
	}

	_, categories, err := deps.Categories.GetCategories(ctx, types.Filter{Limit: 1, WithPagination: true})
	require.NoError(t, err)
	assert.Equal(t, uint64(len(categoriesData)), categories)

	_, teams, err := deps.Teams.GetTeams(ctx, types.Filter{Limit: 1, WithPagination: true})
	require.NoError(t, err)
	assert.Equal(t, uint64(len(teamsData)), teams)

	equipment, _, err := deps.Equipment.GetEquipments(ctx, types.Filter{})
	require.NoError(t, err)
	assert.Len(t, equipment, len(equipmentData))
	for _, e := range equipment {
		assert.NotEmpty(t, e.CategoryID, e.Name)
	}

	requests, _, err := deps.Requests.GetMaintenanceRequests(ctx, types.Filter{})
	require.NoError(t, err)
	assert.Len(t, requests, len(requestsData))
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	deps, _ := newSeedDeps(t)
	admin := AdminCredentials{Email: "admin@gearguard.local", Password: "admin123", DisplayName: "Администратор"}

	require.NoError(t, SeedAdmin(ctx, deps.Auth, admin, zap.NewNop()))
	require.NoError(t, SeedAdmin(ctx, deps.Auth, admin, zap.NewNop()))
}
