package controllers

import (
	"net/http"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type DashboardController struct {
	service services.DashboardServiceInterface
	logger  *zap.Logger
}

func NewDashboardController(service services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{service: service, logger: logger}
}

func (c *DashboardController) GetDashboard(ctx echo.Context) error {
	res, err := c.service.GetDashboard(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось загрузить панель", nil), c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Панель успешно загружена", http.StatusOK)
}

// SetupController сообщает фронтенду, настроено ли хранилище.
type SetupController struct {
	driver   string
	setupErr error
}

func NewSetupController(driver string, setupErr error) *SetupController {
	return &SetupController{driver: driver, setupErr: setupErr}
}

func (c *SetupController) GetSetupStatus(ctx echo.Context) error {
	status := dto.SetupStatusDTO{Configured: c.setupErr == nil, Driver: c.driver}
	if c.setupErr != nil {
		status.Driver = ""
		status.Message = utils.SetupMessage + " (" + c.setupErr.Error() + ")"
	}
	return utils.SuccessResponse(ctx, status, "Состояние настройки получено", http.StatusOK)
}
