package controllers

import (
	"net/http"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type WorkCenterController struct {
	workCenterService services.WorkCenterServiceInterface
	logger            *zap.Logger
}

func NewWorkCenterController(service services.WorkCenterServiceInterface, logger *zap.Logger) *WorkCenterController {
	return &WorkCenterController{workCenterService: service, logger: logger}
}

func (c *WorkCenterController) GetWorkCenters(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.workCenterService.GetWorkCenters(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetWorkCenters: ошибка при получении списка", zap.Error(err))
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось получить список рабочих центров", nil), c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Список рабочих центров успешно получен", http.StatusOK, total)
}

func (c *WorkCenterController) FindWorkCenter(ctx echo.Context) error {
	id := ctx.Param("id")
	res, err := c.workCenterService.FindWorkCenter(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось найти рабочий центр", map[string]interface{}{"id": id}), c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Рабочий центр найден", http.StatusOK)
}

func (c *WorkCenterController) CreateWorkCenter(ctx echo.Context) error {
	var payload dto.CreateWorkCenterDTO
	if err := bindPayload(ctx, &payload); err != nil {
		c.logger.Error("CreateWorkCenter: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.workCenterService.CreateWorkCenter(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось создать рабочий центр", nil), c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Рабочий центр успешно создан", http.StatusCreated)
}

func (c *WorkCenterController) UpdateWorkCenter(ctx echo.Context) error {
	id := ctx.Param("id")

	var payload dto.UpdateWorkCenterDTO
	rawBody, err := bindWithRawBody(ctx, &payload)
	if err != nil {
		c.logger.Error("UpdateWorkCenter: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.workCenterService.UpdateWorkCenter(ctx.Request().Context(), id, payload, rawBody)
	if err != nil {
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось обновить рабочий центр", map[string]interface{}{"id": id}), c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Рабочий центр успешно обновлён", http.StatusOK)
}

func (c *WorkCenterController) DeleteWorkCenter(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := c.workCenterService.DeleteWorkCenter(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось удалить рабочий центр", map[string]interface{}{"id": id}), c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Рабочий центр успешно удалён", http.StatusOK)
}
