package listeners

import (
	"context"
	"fmt"

	"gearguard/internal/events"
	"gearguard/internal/services"
	"gearguard/pkg/constants"
	"gearguard/pkg/eventbus"

	"go.uber.org/zap"
)

// EquipmentListener списывает оборудование, когда по нему списана заявка.
type EquipmentListener struct {
	equipmentService services.EquipmentServiceInterface
	logger           *zap.Logger
}

func NewEquipmentListener(equipmentService services.EquipmentServiceInterface, logger *zap.Logger) *EquipmentListener {
	return &EquipmentListener{equipmentService: equipmentService, logger: logger}
}

func (l *EquipmentListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(constants.EventRequestScrapped, l.handleRequestScrapped)
	l.logger.Info("EquipmentListener подписан на событие", zap.String("event", constants.EventRequestScrapped))
}

func (l *EquipmentListener) handleRequestScrapped(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.RequestScrappedEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события %T", event)
	}
	if e.EquipmentID == "" {
		return nil
	}
	if err := l.equipmentService.MarkScrapped(ctx, e.EquipmentID); err != nil {
		return fmt.Errorf("не удалось списать оборудование %s по заявке %s: %w", e.EquipmentID, e.RequestID, err)
	}
	return nil
}
