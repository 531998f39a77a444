package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gearguard/internal/routes"
	"gearguard/pkg/config"
	"gearguard/pkg/customvalidator"
	"gearguard/pkg/eventbus"
	apperrors "gearguard/pkg/errors"
	appmiddleware "gearguard/pkg/middleware"
	"gearguard/pkg/service"
	"gearguard/pkg/utils"
	appwebsocket "gearguard/pkg/websocket"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить HTTP API и WebSocket-подписки",
	RunE:  runServe,
}

func newValidator() (*validator.Validate, error) {
	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		return nil, err
	}
	return v, nil
}

// newDependencies собирает общие зависимости маршрутов и команд CLI.
func newDependencies(infra *infrastructure, cfg *config.Config, logger *zap.Logger) (routes.Dependencies, error) {
	v, err := newValidator()
	if err != nil {
		return routes.Dependencies{}, err
	}
	return routes.Dependencies{
		Store:         infra.store,
		Subscriptions: infra.subscriptions,
		Cache:         infra.cache(),
		Bus:           eventbus.New(logger),
		JWT:           service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, logger),
		Clock:         clockwork.NewRealClock(),
		Validator:     v,
		Config:        cfg,
		SetupErr:      infra.setupErr,
	}, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	infra := openInfrastructure(ctx, cfg, logger)
	defer infra.Close()

	if infra.relay != nil {
		go func() {
			if err := infra.broker.RunRelay(ctx, infra.relay); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Ретранслятор изменений остановлен", zap.Error(err))
			}
		}()
	}

	deps, err := newDependencies(infra, cfg, logger)
	if err != nil {
		return err
	}
	deps.Hub = appwebsocket.NewHub(logger)
	go deps.Hub.Run(ctx)

	e := newEcho(cfg, deps, logger)
	routes.InitRouter(e, deps, routes.NewLoggers(logger))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Остановка сервера...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка при остановке сервера", zap.Error(err))
		return err
	}
	deps.Bus.Wait()
	return nil
}

func newEcho(cfg *config.Config, deps routes.Dependencies, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewValidator(deps.Validator)

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil)
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	allowed := make(map[string]struct{}, len(cfg.Server.AllowedOrigins))
	for _, origin := range cfg.Server.AllowedOrigins {
		allowed[origin] = struct{}{}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOriginFunc: func(origin string) (bool, error) {
			_, ok := allowed[origin]
			return ok, nil
		},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
	}))

	e.Use(appmiddleware.InjectLogger(logger))
	return e
}
