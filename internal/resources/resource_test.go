package resources_test

import (
	"context"
	"errors"
	"testing"

	"gearguard/internal/docstore"
	"gearguard/internal/repositories"
	"gearguard/internal/resources"
	"gearguard/internal/services"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func assertNotConfigured[T any](t *testing.T, name string, r *resources.Resource[T]) {
	t.Helper()
	var state resources.State[T]
	require.NotPanics(t, func() { state = r.Load(context.Background()) }, name)
	assert.False(t, state.Loading, name)
	assert.ErrorIs(t, state.Err, apperrors.ErrNotConfigured, name)
	assert.Equal(t, state, r.State(), name)
}

func TestResources_UnconfiguredStore(t *testing.T) {
	logger := zap.NewNop()
	store := docstore.Unconfigured{}

	equipmentRepo := repositories.NewEquipmentRepository(store, nil, logger)
	requestRepo := repositories.NewMaintenanceRequestRepository(store, nil, logger)
	equipment := services.NewEquipmentService(equipmentRepo, requestRepo, logger)
	requests := services.NewMaintenanceRequestService(requestRepo, equipmentRepo, nil, nil, logger)
	teams := services.NewTeamService(repositories.NewTeamRepository(store, nil, logger), logger)
	categories := services.NewCategoryService(repositories.NewCategoryRepository(store, nil, logger), logger)
	workCenters := services.NewWorkCenterService(repositories.NewWorkCenterRepository(store, nil, logger), logger)

	all := types.Filter{}
	assertNotConfigured(t, "equipment", resources.Equipment(equipment, all))
	assertNotConfigured(t, "equipment item", resources.EquipmentItem(equipment, "some-id"))
	assertNotConfigured(t, "teams", resources.Teams(teams, all))
	assertNotConfigured(t, "requests", resources.MaintenanceRequests(requests, all))
	assertNotConfigured(t, "categories", resources.Categories(categories, all))
	assertNotConfigured(t, "work centers", resources.WorkCenters(workCenters, all))
}

func TestResource_LoadAndRefetch(t *testing.T) {
	calls := 0
	r := resources.New(func(ctx context.Context) ([]string, error) {
		calls++
		if calls == 2 {
			return nil, errors.New("backend down")
		}
		return []string{"pump"}, nil
	})
	assert.True(t, r.State().Loading)

	state := r.Load(context.Background())
	require.NoError(t, state.Err)
	assert.Equal(t, []string{"pump"}, state.Data)

	state = r.Refetch(context.Background())
	assert.EqualError(t, state.Err, "backend down")
	assert.Nil(t, state.Data)
	assert.False(t, state.Loading)

	state = r.Refetch(context.Background())
	require.NoError(t, state.Err)
	assert.Equal(t, 3, calls)
}

func TestResource_PanicBecomesError(t *testing.T) {
	r := resources.New(func(ctx context.Context) (int, error) {
		panic("boom")
	})

	var state resources.State[int]
	require.NotPanics(t, func() { state = r.Load(context.Background()) })
	assert.Error(t, state.Err)
	assert.Contains(t, state.Err.Error(), "boom")
}
