package seeders

import (
	"context"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"

	"go.uber.org/zap"
)

func seedEquipment(ctx context.Context, deps Dependencies, logger *zap.Logger) error {
	categories, err := indexByName(ctx, deps.Categories.GetCategories, func(c entities.EquipmentCategory) (string, string) { return c.Name, c.ID })
	if err != nil {
		return err
	}
	teams, err := indexByName(ctx, deps.Teams.GetTeams, func(t entities.Team) (string, string) { return t.Name, t.ID })
	if err != nil {
		return err
	}
	workCenters, err := indexByName(ctx, deps.WorkCenters.GetWorkCenters, func(w entities.WorkCenter) (string, string) { return w.Name, w.ID })
	if err != nil {
		return err
	}

	for _, e := range equipmentData {
		_, err := deps.Equipment.CreateEquipment(ctx, dto.CreateEquipmentDTO{
			Name:         e.Name,
			SerialNumber: e.SerialNumber,
			CategoryID:   categories[e.Category],
			TeamID:       teams[e.Team],
			WorkCenterID: workCenters[e.WorkCenter],
			Department:   e.Department,
			Location:     e.Location,
			Status:       e.Status,
		})
		if skipped(err) {
			logger.Debug("    - Оборудование уже существует. Пропускаем.", zap.String("serial", e.SerialNumber))
			continue
		}
		if err != nil {
			return err
		}
		logger.Info("  - Оборудование создано", zap.String("name", e.Name))
	}
	return nil
}

// seedRequests добавляет заявки только в пустую коллекцию: у заявок нет
// естественного ключа для проверки дублей.
func seedRequests(ctx context.Context, deps Dependencies, logger *zap.Logger) error {
	_, total, err := deps.Requests.GetMaintenanceRequests(ctx, types.Filter{Limit: 1, WithPagination: true})
	if err != nil {
		return err
	}
	if total > 0 {
		logger.Info("    - Заявки уже есть. Пропускаем.")
		return nil
	}

	equipment, err := indexByName(ctx, deps.Equipment.GetEquipments, func(e entities.Equipment) (string, string) { return e.SerialNumber, e.ID })
	if err != nil {
		return err
	}

	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	for _, r := range requestsData {
		equipmentID, ok := equipment[r.Equipment]
		if !ok {
			continue
		}
		scheduled := now().AddDate(0, 0, r.InDays)
		if _, err := deps.Requests.CreateMaintenanceRequest(ctx, dto.CreateMaintenanceRequestDTO{
			Subject:       r.Subject,
			Status:        r.Status,
			Priority:      r.Priority,
			RequestType:   r.RequestType,
			EquipmentID:   equipmentID,
			ScheduledDate: &scheduled,
			DurationHours: utils.ToPtr(r.Hours),
		}); err != nil {
			return err
		}
		logger.Info("  - Заявка создана", zap.String("subject", r.Subject))
	}
	return nil
}
