package services

import (
	"context"
	"testing"
	"time"

	"gearguard/internal/docstore"
	"gearguard/internal/repositories"
	"gearguard/pkg/config"
	"gearguard/pkg/customvalidator"
	"gearguard/pkg/eventbus"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	clock *clockwork.FakeClock
	bus   *eventbus.Bus
	store docstore.Store

	equipment   EquipmentServiceInterface
	requests    MaintenanceRequestServiceInterface
	teams       TeamServiceInterface
	categories  CategoryServiceInterface
	workCenters WorkCenterServiceInterface
	importer    *EquipmentImportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC))

	db, err := docstore.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, docstore.MigrateSQLite(ctx, db, logger))
	base := docstore.NewSQLiteStore(db, docstore.Options{Clock: clock})
	t.Cleanup(func() { _ = base.Close() })

	return newEnvWithStore(t, base, clock)
}

func newUnconfiguredEnv(t *testing.T) *testEnv {
	t.Helper()
	return newEnvWithStore(t, docstore.Unconfigured{}, clockwork.NewFakeClock())
}

func newEnvWithStore(t *testing.T, base docstore.Store, clock *clockwork.FakeClock) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	broker := docstore.NewBroker(logger)
	store := docstore.NewNotifyingStore(base, broker, nil, logger)
	subs := docstore.NewSubscriptions(store, broker, logger)
	bus := eventbus.New(logger)
	t.Cleanup(bus.Wait)

	equipmentRepo := repositories.NewEquipmentRepository(store, subs, logger)
	requestRepo := repositories.NewMaintenanceRequestRepository(store, subs, logger)

	v := validator.New()
	require.NoError(t, customvalidator.RegisterCustomValidations(v))

	env := &testEnv{
		clock:       clock,
		bus:         bus,
		store:       store,
		equipment:   NewEquipmentService(equipmentRepo, requestRepo, logger),
		requests:    NewMaintenanceRequestService(requestRepo, equipmentRepo, bus, clock, logger),
		teams:       NewTeamService(repositories.NewTeamRepository(store, subs, logger), logger),
		categories:  NewCategoryService(repositories.NewCategoryRepository(store, subs, logger), logger),
		workCenters: NewWorkCenterService(repositories.NewWorkCenterRepository(store, subs, logger), logger),
	}
	env.importer = NewEquipmentImportService(env.equipment, v, logger)
	return env
}

func testAuthConfig() *config.AuthConfig {
	cfg := config.Default().Auth
	cfg.MaxLoginAttempts = 3
	return &cfg
}
