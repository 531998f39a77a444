package listeners_test

import (
	"context"
	"testing"

	"gearguard/internal/docstore"
	"gearguard/internal/dto"
	"gearguard/internal/listeners"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/pkg/constants"
	"gearguard/pkg/eventbus"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEquipmentListener_ScrapMarksEquipment(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	db, err := docstore.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, docstore.MigrateSQLite(ctx, db, logger))
	store := docstore.NewSQLiteStore(db, docstore.Options{})
	defer store.Close()

	equipmentRepo := repositories.NewEquipmentRepository(store, nil, logger)
	requestRepo := repositories.NewMaintenanceRequestRepository(store, nil, logger)
	bus := eventbus.New(logger)

	equipmentSvc := services.NewEquipmentService(equipmentRepo, requestRepo, logger)
	requestSvc := services.NewMaintenanceRequestService(requestRepo, equipmentRepo, bus, clockwork.NewFakeClock(), logger)
	listeners.NewEquipmentListener(equipmentSvc, logger).Register(bus)

	equipment, err := equipmentSvc.CreateEquipment(ctx, dto.CreateEquipmentDTO{
		Name:         "Pump A",
		SerialNumber: "SN-1",
		Status:       constants.EquipmentStatusActive,
	})
	require.NoError(t, err)

	request, err := requestSvc.CreateMaintenanceRequest(ctx, dto.CreateMaintenanceRequestDTO{Subject: "Cracked housing", EquipmentID: equipment.ID})
	require.NoError(t, err)

	t.Run("ремонт не списывает оборудование", func(t *testing.T) {
		_, err := requestSvc.ChangeStage(ctx, request.ID, constants.RequestStatusRepaired)
		require.NoError(t, err)
		bus.Wait()

		found, err := equipmentSvc.FindEquipment(ctx, equipment.ID)
		require.NoError(t, err)
		assert.Equal(t, constants.EquipmentStatusActive, found.Status)
	})

	t.Run("списание заявки списывает оборудование", func(t *testing.T) {
		_, err := requestSvc.ChangeStage(ctx, request.ID, constants.RequestStatusScrap)
		require.NoError(t, err)
		bus.Wait()

		found, err := equipmentSvc.FindEquipment(ctx, equipment.ID)
		require.NoError(t, err)
		assert.Equal(t, constants.EquipmentStatusScrapped, found.Status)

		open, err := equipmentSvc.GetEquipmentRequests(ctx, equipment.ID)
		require.NoError(t, err)
		assert.Empty(t, open)
	})
}
