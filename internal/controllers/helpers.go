package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	apperrors "gearguard/pkg/errors"

	"github.com/labstack/echo/v4"
)

// bindWithRawBody читает тело целиком, чтобы сервис мог отличить
// отсутствующее поле от явного null при частичном обновлении.
func bindWithRawBody(ctx echo.Context, dst interface{}) ([]byte, error) {
	rawBody, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "Не удалось прочитать тело запроса", err, nil)
	}
	ctx.Request().Body = io.NopCloser(bytes.NewReader(rawBody))

	if len(bytes.TrimSpace(rawBody)) == 0 {
		rawBody = []byte("{}")
	}
	if err := json.Unmarshal(rawBody, dst); err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil)
	}
	return rawBody, nil
}

func bindPayload(ctx echo.Context, dst interface{}) error {
	if err := ctx.Bind(dst); err != nil {
		return apperrors.NewHttpError(http.StatusBadRequest, "Неверный формат данных в теле запроса", err, nil)
	}
	return nil
}
