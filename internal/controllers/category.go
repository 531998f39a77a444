package controllers

import (
	"net/http"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CategoryController struct {
	categoryService services.CategoryServiceInterface
	logger          *zap.Logger
}

func NewCategoryController(service services.CategoryServiceInterface, logger *zap.Logger) *CategoryController {
	return &CategoryController{categoryService: service, logger: logger}
}

func (c *CategoryController) GetCategories(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.categoryService.GetCategories(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetCategories: ошибка при получении списка", zap.Error(err))
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось получить список категорий", nil), c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Список категорий успешно получен", http.StatusOK, total)
}

func (c *CategoryController) FindCategory(ctx echo.Context) error {
	id := ctx.Param("id")
	res, err := c.categoryService.FindCategory(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось найти категорию", map[string]interface{}{"id": id}), c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Категория найдена", http.StatusOK)
}

func (c *CategoryController) CreateCategory(ctx echo.Context) error {
	var payload dto.CreateCategoryDTO
	if err := bindPayload(ctx, &payload); err != nil {
		c.logger.Error("CreateCategory: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.categoryService.CreateCategory(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось создать категорию", nil), c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Категория успешно создана", http.StatusCreated)
}

func (c *CategoryController) UpdateCategory(ctx echo.Context) error {
	id := ctx.Param("id")

	var payload dto.UpdateCategoryDTO
	rawBody, err := bindWithRawBody(ctx, &payload)
	if err != nil {
		c.logger.Error("UpdateCategory: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.categoryService.UpdateCategory(ctx.Request().Context(), id, payload, rawBody)
	if err != nil {
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось обновить категорию", map[string]interface{}{"id": id}), c.logger)
	}
	return utils.SuccessResponse(ctx, res, "Категория успешно обновлена", http.StatusOK)
}

func (c *CategoryController) DeleteCategory(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := c.categoryService.DeleteCategory(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось удалить категорию", map[string]interface{}{"id": id}), c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Категория успешно удалена", http.StatusOK)
}
