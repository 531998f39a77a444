package seeders

import (
	"context"
	"errors"

	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/services"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"

	"go.uber.org/zap"
)

func skipped(err error) bool {
	return errors.Is(err, apperrors.ErrConflict)
}

func seedCategories(ctx context.Context, svc services.CategoryServiceInterface, logger *zap.Logger) error {
	existing, err := indexByName(ctx, svc.GetCategories, func(c entities.EquipmentCategory) (string, string) { return c.Name, c.ID })
	if err != nil {
		return err
	}
	for _, c := range categoriesData {
		if _, ok := existing[c.Name]; ok {
			continue
		}
		if _, err := svc.CreateCategory(ctx, dto.CreateCategoryDTO{
			Name:        c.Name,
			Description: c.Description,
			Responsible: c.Responsible,
		}); err != nil {
			return err
		}
		logger.Info("  - Категория создана", zap.String("name", c.Name))
	}
	return nil
}

func seedWorkCenters(ctx context.Context, svc services.WorkCenterServiceInterface, logger *zap.Logger) error {
	existing, err := indexByName(ctx, svc.GetWorkCenters, func(w entities.WorkCenter) (string, string) { return w.Name, w.ID })
	if err != nil {
		return err
	}
	for _, w := range workCentersData {
		if _, ok := existing[w.Name]; ok {
			continue
		}
		_, err := svc.CreateWorkCenter(ctx, dto.CreateWorkCenterDTO{
			Name:        w.Name,
			Tag:         w.Tag,
			CostPerHour: utils.ToPtr(w.CostPerHour),
			Capacity:    utils.ToPtr(w.Capacity),
			OEETarget:   utils.ToPtr(w.OEETarget),
		})
		if skipped(err) {
			continue
		}
		if err != nil {
			return err
		}
		logger.Info("  - Рабочий центр создан", zap.String("name", w.Name))
	}
	return nil
}

func seedTeams(ctx context.Context, svc services.TeamServiceInterface, logger *zap.Logger) error {
	existing, err := indexByName(ctx, svc.GetTeams, func(t entities.Team) (string, string) { return t.Name, t.ID })
	if err != nil {
		return err
	}
	for _, t := range teamsData {
		if _, ok := existing[t.Name]; ok {
			continue
		}
		if _, err := svc.CreateTeam(ctx, dto.CreateTeamDTO{
			Name:        t.Name,
			Description: t.Description,
			Members:     t.Members,
		}); err != nil {
			return err
		}
		logger.Info("  - Бригада создана", zap.String("name", t.Name))
	}
	return nil
}
