// Package seeders наполняет хранилище демонстрационными данными. Сидеры
// работают через сервисы, поэтому повторный запуск ничего не дублирует.
package seeders

import (
	"context"
	"fmt"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	"gearguard/pkg/types"

	"go.uber.org/zap"
)

type Dependencies struct {
	Categories  services.CategoryServiceInterface
	WorkCenters services.WorkCenterServiceInterface
	Teams       services.TeamServiceInterface
	Equipment   services.EquipmentServiceInterface
	Requests    services.MaintenanceRequestServiceInterface
	Auth        services.AuthServiceInterface
	Now         func() time.Time
}

// AdminCredentials - учётная запись администратора для первого входа.
type AdminCredentials struct {
	Email       string
	Password    string
	DisplayName string
}

// SeedDictionaries создаёт категории, рабочие центры и бригады.
func SeedDictionaries(ctx context.Context, deps Dependencies, logger *zap.Logger) error {
	logger.Info("▶️  Запуск наполнения справочников...")

	if err := seedCategories(ctx, deps.Categories, logger); err != nil {
		return fmt.Errorf("ошибка наполнения категорий: %w", err)
	}
	if err := seedWorkCenters(ctx, deps.WorkCenters, logger); err != nil {
		return fmt.Errorf("ошибка наполнения рабочих центров: %w", err)
	}
	if err := seedTeams(ctx, deps.Teams, logger); err != nil {
		return fmt.Errorf("ошибка наполнения бригад: %w", err)
	}

	logger.Info("✅ Наполнение справочников завершено!")
	return nil
}

// SeedEquipment создаёт оборудование и заявки. Справочники должны быть
// наполнены заранее: связи ищутся по названию.
func SeedEquipment(ctx context.Context, deps Dependencies, logger *zap.Logger) error {
	logger.Info("▶️  Запуск наполнения оборудования и заявок...")

	if err := seedEquipment(ctx, deps, logger); err != nil {
		return fmt.Errorf("ошибка наполнения оборудования: %w", err)
	}
	if err := seedRequests(ctx, deps, logger); err != nil {
		return fmt.Errorf("ошибка наполнения заявок: %w", err)
	}

	logger.Info("✅ Наполнение оборудования завершено!")
	return nil
}

func SeedAdmin(ctx context.Context, auth services.AuthServiceInterface, admin AdminCredentials, logger *zap.Logger) error {
	logger.Info("  - Создание администратора", zap.String("email", admin.Email))

	_, err := auth.SignUp(ctx, dto.SignUpDTO{
		Email:       admin.Email,
		Password:    admin.Password,
		DisplayName: admin.DisplayName,
	})
	if skipped(err) {
		logger.Info("    - Администратор уже существует. Пропускаем.")
		return nil
	}
	return err
}

// indexByName загружает справочник целиком и индексирует его по названию.
func indexByName[T any](ctx context.Context, list func(context.Context, types.Filter) ([]T, uint64, error), key func(T) (string, string)) (map[string]string, error) {
	items, _, err := list(ctx, types.Filter{})
	if err != nil {
		return nil, err
	}
	index := make(map[string]string, len(items))
	for _, item := range items {
		name, id := key(item)
		index[name] = id
	}
	return index, nil
}
