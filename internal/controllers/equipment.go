package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"gearguard/internal/dto"
	"gearguard/internal/services"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type EquipmentController struct {
	equipmentService services.EquipmentServiceInterface
	importService    *services.EquipmentImportService
	logger           *zap.Logger
}

func NewEquipmentController(
	service services.EquipmentServiceInterface,
	importService *services.EquipmentImportService,
	logger *zap.Logger,
) *EquipmentController {
	return &EquipmentController{
		equipmentService: service,
		importService:    importService,
		logger:           logger,
	}
}

func (c *EquipmentController) GetEquipments(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.equipmentService.GetEquipments(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("GetEquipments: ошибка при получении списка оборудования", zap.Error(err))
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось получить список оборудования", nil), c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Список оборудования успешно получен", http.StatusOK, total)
}

func (c *EquipmentController) FindEquipment(ctx echo.Context) error {
	id := ctx.Param("id")
	res, err := c.equipmentService.FindEquipment(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось найти оборудование", map[string]interface{}{"id": id}), c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Оборудование успешно найдено", http.StatusOK)
}

func (c *EquipmentController) CreateEquipment(ctx echo.Context) error {
	var payload dto.CreateEquipmentDTO
	if err := bindPayload(ctx, &payload); err != nil {
		c.logger.Error("CreateEquipment: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := ctx.Validate(&payload); err != nil {
		c.logger.Warn("CreateEquipment: ошибка валидации данных", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.CreateEquipment(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось создать оборудование", nil), c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Оборудование успешно создано", http.StatusCreated)
}

func (c *EquipmentController) UpdateEquipment(ctx echo.Context) error {
	id := ctx.Param("id")

	var payload dto.UpdateEquipmentDTO
	rawBody, err := bindWithRawBody(ctx, &payload)
	if err != nil {
		c.logger.Error("UpdateEquipment: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := ctx.Validate(&payload); err != nil {
		c.logger.Warn("UpdateEquipment: ошибка валидации данных", zap.Error(err))
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.equipmentService.UpdateEquipment(ctx.Request().Context(), id, payload, rawBody)
	if err != nil {
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось обновить оборудование", map[string]interface{}{"id": id}), c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Оборудование успешно обновлено", http.StatusOK)
}

func (c *EquipmentController) DeleteEquipment(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := c.equipmentService.DeleteEquipment(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось удалить оборудование", map[string]interface{}{"id": id}), c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "Оборудование успешно удалено", http.StatusOK)
}

// GetEquipmentRequests - открытые заявки по оборудованию.
func (c *EquipmentController) GetEquipmentRequests(ctx echo.Context) error {
	id := ctx.Param("id")
	res, err := c.equipmentService.GetEquipmentRequests(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось получить заявки по оборудованию", map[string]interface{}{"id": id}), c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Заявки по оборудованию успешно получены", http.StatusOK, uint64(len(res)))
}

func (c *EquipmentController) ImportEquipment(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "Файл не передан: ожидается поле формы file", err, nil), c.logger)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось открыть файл", nil), c.logger)
	}
	defer file.Close()

	if err := utils.ValidateFile(fileHeader, file, "equipment_import"); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.importService.Import(ctx.Request().Context(), file)
	if err != nil {
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось импортировать оборудование", nil), c.logger)
	}

	return utils.SuccessResponse(ctx, res, "Импорт оборудования завершён", http.StatusOK)
}

func (c *EquipmentController) ExportEquipment(ctx echo.Context) error {
	fileName := fmt.Sprintf("equipment_%s.xlsx", time.Now().Format("20060102_150405"))
	ctx.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))

	// Пишем во временный буфер, чтобы при ошибке ещё можно было вернуть JSON.
	var buf bytes.Buffer
	if _, err := c.importService.Export(ctx.Request().Context(), &buf); err != nil {
		ctx.Response().Header().Del(echo.HeaderContentDisposition)
		return utils.ErrorResponse(ctx, utils.WrapError(err, "Не удалось выгрузить оборудование", nil), c.logger)
	}
	return ctx.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
