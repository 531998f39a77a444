package services

import (
	"context"
	"testing"
	"time"

	"gearguard/internal/dto"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDashboard(env *testEnv) DashboardServiceInterface {
	return NewDashboardService(env.equipment, env.teams, env.requests, env.categories, env.workCenters, env.clock, zap.NewNop())
}

func TestDashboardService_Counts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	pump := createEquipment(t, env, "SN-1")
	lathe := createEquipment(t, env, "SN-2")
	_, err := env.teams.CreateTeam(ctx, dto.CreateTeamDTO{Name: "Mechanics"})
	require.NoError(t, err)

	for _, r := range []dto.CreateMaintenanceRequestDTO{
		{Subject: "late", EquipmentID: pump.ID, Priority: constants.PriorityCritical, ScheduledDate: utils.ToPtr(env.clock.Now().Add(-time.Hour))},
		{Subject: "also critical", EquipmentID: pump.ID, Priority: constants.PriorityCritical},
		{Subject: "routine", EquipmentID: lathe.ID},
		{Subject: "closed", EquipmentID: lathe.ID, Priority: constants.PriorityCritical, Status: constants.RequestStatusRepaired},
	} {
		_, err := env.requests.CreateMaintenanceRequest(ctx, r)
		require.NoError(t, err)
	}

	dashboard, err := newDashboard(env).GetDashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, dashboard.Equipment.Count)
	assert.Equal(t, 1, dashboard.Teams.Count)
	assert.Equal(t, 4, dashboard.Requests.Count)
	assert.Equal(t, 0, dashboard.Categories.Count)
	assert.Empty(t, dashboard.Equipment.Error)

	assert.Equal(t, 2, dashboard.ByStatus[constants.EquipmentStatusActive])
	assert.Equal(t, 0, dashboard.ByStatus[constants.EquipmentStatusScrapped])
	assert.Len(t, dashboard.ByStatus, len(constants.EquipmentStatuses))

	assert.Equal(t, 3, dashboard.OpenRequests)
	assert.Equal(t, 1, dashboard.OverdueRequests)
	assert.Equal(t, 1, dashboard.CriticalEquipment)
}

func TestDashboardService_Unconfigured(t *testing.T) {
	env := newUnconfiguredEnv(t)

	_, err := newDashboard(env).GetDashboard(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNotConfigured)
}
