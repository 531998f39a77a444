package main

import (
	"fmt"
	"os"
	"time"

	"gearguard/internal/routes"
	"gearguard/seeders"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	seedDictionaries  bool
	seedEquipmentData bool
	seedAdminUser     bool
	seedAll           bool

	adminEmail    string
	adminPassword string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Применить миграции хранилища",
	RunE: func(cmd *cobra.Command, args []string) error {
		infra := openInfrastructure(cmd.Context(), cfg, logger)
		defer infra.Close()
		if err := infra.requireStore(); err != nil {
			return err
		}
		logger.Info("✅ Миграции применены", zap.String("driver", cfg.Store.Driver))
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Наполнить хранилище демонстрационными данными",
	Example: `  gearguard seed --dictionaries
  gearguard seed --all --admin-password secret123`,
	RunE: runSeed,
}

var importCmd = &cobra.Command{
	Use:   "import-equipment [file.xlsx]",
	Short: "Импортировать оборудование из Excel",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export-equipment [file.xlsx]",
	Short: "Выгрузить оборудование в Excel",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

// cliServices открывает хранилище и собирает сервисы без HTTP-сервера.
func cliServices(cmd *cobra.Command) (*routes.Services, func(), error) {
	infra := openInfrastructure(cmd.Context(), cfg, logger)
	if err := infra.requireStore(); err != nil {
		infra.Close()
		return nil, nil, err
	}
	deps, err := newDependencies(infra, cfg, logger)
	if err != nil {
		infra.Close()
		return nil, nil, err
	}
	svc := routes.BuildServices(deps, routes.NewLoggers(logger))
	return svc, func() {
		deps.Bus.Wait()
		infra.Close()
	}, nil
}

func runSeed(cmd *cobra.Command, _ []string) error {
	if !seedDictionaries && !seedEquipmentData && !seedAdminUser && !seedAll {
		return cmd.Help()
	}

	svc, closeFn, err := cliServices(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx := cmd.Context()
	deps := seeders.Dependencies{
		Categories:  svc.Categories,
		WorkCenters: svc.WorkCenters,
		Teams:       svc.Teams,
		Equipment:   svc.Equipment,
		Requests:    svc.Requests,
		Auth:        svc.Auth,
		Now:         time.Now,
	}

	if seedAll || seedDictionaries {
		if err := seeders.SeedDictionaries(ctx, deps, logger); err != nil {
			return err
		}
	}
	if seedAll || seedEquipmentData {
		if err := seeders.SeedEquipment(ctx, deps, logger); err != nil {
			return err
		}
	}
	if seedAll || seedAdminUser {
		password := adminPassword
		if password == "" {
			password = os.Getenv("ADMIN_PASSWORD")
		}
		if password == "" {
			return fmt.Errorf("не задан пароль администратора: --admin-password или ADMIN_PASSWORD")
		}
		if err := seeders.SeedAdmin(ctx, svc.Auth, seeders.AdminCredentials{
			Email:       adminEmail,
			Password:    password,
			DisplayName: "Администратор",
		}, logger); err != nil {
			return err
		}
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := cliServices(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("не удалось открыть файл: %w", err)
	}
	defer f.Close()

	result, err := svc.Import.Import(cmd.Context(), f)
	if err != nil {
		return err
	}
	logger.Info("✅ Импорт завершён",
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)),
	)
	for _, rowErr := range result.Errors {
		logger.Warn("Строка не импортирована", zap.Int("row", rowErr.Row), zap.String("reason", rowErr.Message))
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	svc, closeFn, err := cliServices(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("не удалось создать файл: %w", err)
	}
	defer f.Close()

	count, err := svc.Import.Export(cmd.Context(), f)
	if err != nil {
		return err
	}
	logger.Info("✅ Выгрузка завершена", zap.Int("rows", count), zap.String("file", args[0]))
	return nil
}
