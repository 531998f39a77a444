package controllers

import (
	"net/http"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type MaintenanceRequestController struct {
	requestService services.MaintenanceRequestServiceInterface
	logger         *zap.Logger
}

func NewMaintenanceRequestController(service services.MaintenanceRequestServiceInterface, logger *zap.Logger) *MaintenanceRequestController {
	return &MaintenanceRequestController{requestService: service, logger: logger}
}

func (c *MaintenanceRequestController) GetMaintenanceRequests(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.requestService.GetMaintenanceRequests(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetMaintenanceRequests: ошибка при получении списка", zap.Error(err))
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось получить список заявок", nil), c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Список заявок успешно получен", http.StatusOK, total)
}

func (c *MaintenanceRequestController) FindMaintenanceRequest(ctx echo.Context) error {
	id := ctx.Param("id")
	res, err := c.requestService.FindMaintenanceRequest(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось найти заявку", map[string]interface{}{"id": id}), c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Заявка найдена", http.StatusOK)
}

func (c *MaintenanceRequestController) CreateMaintenanceRequest(ctx echo.Context) error {
	var payload dto.CreateMaintenanceRequestDTO
	if err := bindPayload(ctx, &payload); err != nil {
		c.logger.Error("CreateMaintenanceRequest: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.requestService.CreateMaintenanceRequest(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось создать заявку", nil), c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Заявка успешно создана", http.StatusCreated)
}

func (c *MaintenanceRequestController) UpdateMaintenanceRequest(ctx echo.Context) error {
	id := ctx.Param("id")

	var payload dto.UpdateMaintenanceRequestDTO
	rawBody, err := bindWithRawBody(ctx, &payload)
	if err != nil {
		c.logger.Error("UpdateMaintenanceRequest: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.requestService.UpdateMaintenanceRequest(ctx.Request().Context(), id, payload, rawBody)
	if err != nil {
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось обновить заявку", map[string]interface{}{"id": id}), c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Заявка успешно обновлена", http.StatusOK)
}

func (c *MaintenanceRequestController) DeleteMaintenanceRequest(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := c.requestService.DeleteMaintenanceRequest(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось удалить заявку", map[string]interface{}{"id": id}), c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Заявка успешно удалена", http.StatusOK)
}

// ChangeStage - перевод заявки на другой этап (перетаскивание на канбан-доске).
func (c *MaintenanceRequestController) ChangeStage(ctx echo.Context) error {
	id := ctx.Param("id")

	var payload dto.ChangeStageDTO
	if err := bindPayload(ctx, &payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.requestService.ChangeStage(ctx.Request().Context(), id, payload.Status)
	if err != nil {
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось изменить этап заявки", map[string]interface{}{"id": id, "status": payload.Status}), c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Этап заявки изменён", http.StatusOK)
}

func (c *MaintenanceRequestController) GetOverdueRequests(ctx echo.Context) error {
	res, err := c.requestService.GetOverdueRequests(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось получить просроченные заявки", nil), c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Просроченные заявки получены", http.StatusOK, uint64(len(res)))
}
