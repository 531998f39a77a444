package services

import (
	"context"
	"testing"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createEquipment(t *testing.T, env *testEnv, serial string) *entities.Equipment {
	t.Helper()
	payload := pumpA()
	payload.SerialNumber = serial
	payload.TeamID = "team-1"
	payload.TechnicianID = "tech-1"
	e, err := env.equipment.CreateEquipment(context.Background(), payload)
	require.NoError(t, err)
	return e
}

func TestMaintenanceRequestService_CreateDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	equipment := createEquipment(t, env, "SN-1")

	request, err := env.requests.CreateMaintenanceRequest(ctx, dto.CreateMaintenanceRequestDTO{
		Subject:     "Leaking seal",
		EquipmentID: equipment.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.RequestStatusNew, request.Status)
	assert.Equal(t, constants.PriorityMedium, request.Priority)
	assert.Equal(t, constants.RequestTypeCorrective, request.RequestType)
	assert.Equal(t, "team-1", request.TeamID)
	assert.Equal(t, "tech-1", request.TechnicianID)
	assert.Nil(t, request.CompletedAt)
}

func TestMaintenanceRequestService_UnknownEquipment(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.requests.CreateMaintenanceRequest(context.Background(), dto.CreateMaintenanceRequestDTO{
		Subject:     "Leaking seal",
		EquipmentID: "missing",
	})
	var invalid *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalid)
}

func TestMaintenanceRequestService_ChangeStage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	equipment := createEquipment(t, env, "SN-1")

	request, err := env.requests.CreateMaintenanceRequest(ctx, dto.CreateMaintenanceRequestDTO{Subject: "Noise", EquipmentID: equipment.ID})
	require.NoError(t, err)

	env.clock.Advance(time.Hour)
	repaired, err := env.requests.ChangeStage(ctx, request.ID, constants.RequestStatusRepaired)
	require.NoError(t, err)
	require.NotNil(t, repaired.CompletedAt)
	assert.True(t, repaired.CompletedAt.Equal(env.clock.Now()))

	reopened, err := env.requests.ChangeStage(ctx, request.ID, constants.RequestStatusInProgress)
	require.NoError(t, err)
	assert.Nil(t, reopened.CompletedAt)

	open, err := env.equipment.GetEquipmentRequests(ctx, equipment.ID)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, request.ID, open[0].ID)
}

func TestMaintenanceRequestService_Overdue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	equipment := createEquipment(t, env, "SN-1")
	now := env.clock.Now()

	create := func(subject string, scheduled time.Time, status string) *entities.MaintenanceRequest {
		r, err := env.requests.CreateMaintenanceRequest(ctx, dto.CreateMaintenanceRequestDTO{
			Subject:       subject,
			EquipmentID:   equipment.ID,
			Status:        status,
			ScheduledDate: utils.ToPtr(scheduled),
		})
		require.NoError(t, err)
		return r
	}

	late := create("late", now.Add(-48*time.Hour), constants.RequestStatusNew)
	create("future", now.Add(48*time.Hour), constants.RequestStatusNew)
	create("done", now.Add(-48*time.Hour), constants.RequestStatusRepaired)

	overdue, err := env.requests.GetOverdueRequests(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, late.ID, overdue[0].ID)

	filtered, total, err := env.requests.GetMaintenanceRequests(ctx, types.Filter{
		Filter: map[string]interface{}{"overdue": "true"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, filtered, 1)
	assert.Equal(t, late.ID, filtered[0].ID)

	env.clock.Advance(72 * time.Hour)
	overdue, err = env.requests.GetOverdueRequests(ctx)
	require.NoError(t, err)
	assert.Len(t, overdue, 2)
}
