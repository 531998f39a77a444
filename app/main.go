package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gearguard/pkg/config"
	applogger "gearguard/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg    *config.Config
	logger *zap.Logger

	configPath string
)

var rootCmd = &cobra.Command{
	Use:           "gearguard",
	Short:         "GearGuard - учёт оборудования и заявок на обслуживание",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			if err := os.Setenv("GEARGUARD_CONFIG", configPath); err != nil {
				return err
			}
		}
		cfg = config.New()
		logger = applogger.NewLogger(cfg.Log.Level, cfg.Log.File)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "путь к YAML-файлу конфигурации")

	seedCmd.Flags().BoolVar(&seedDictionaries, "dictionaries", false, "категории, рабочие центры и бригады")
	seedCmd.Flags().BoolVar(&seedEquipmentData, "equipment", false, "оборудование и заявки")
	seedCmd.Flags().BoolVar(&seedAdminUser, "admin", false, "учётная запись администратора")
	seedCmd.Flags().BoolVar(&seedAll, "all", false, "все сидеры")
	seedCmd.Flags().StringVar(&adminEmail, "admin-email", "admin@gearguard.local", "email администратора")
	seedCmd.Flags().StringVar(&adminPassword, "admin-password", "", "пароль администратора (по умолчанию ADMIN_PASSWORD)")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, importCmd, exportCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(1)
	}
}
