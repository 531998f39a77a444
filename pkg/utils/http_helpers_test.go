package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"gearguard/internal/docstore"
	apperrors "gearguard/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("открытие: %w", apperrors.ErrNotConfigured), http.StatusServiceUnavailable},
		{apperrors.ErrNotFound, http.StatusNotFound},
		{apperrors.ErrUserNotFound, http.StatusNotFound},
		{apperrors.NewInvalidInputError("оборудование %s не найдено", "x"), http.StatusBadRequest},
		{docstore.ErrInvalidQuery, http.StatusBadRequest},
		{apperrors.ErrAccountLocked, http.StatusTooManyRequests},
		{apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{apperrors.ErrConflict, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, StatusFromError(tc.err), tc.err.Error())
	}
}

func TestWrapError(t *testing.T) {
	t.Run("хранилище не настроено", func(t *testing.T) {
		httpErr := WrapError(apperrors.ErrNotConfigured, "Не удалось получить список", nil)
		assert.Equal(t, http.StatusServiceUnavailable, httpErr.Code)
		assert.Equal(t, SetupMessage, httpErr.Message)
		assert.ErrorIs(t, httpErr, apperrors.ErrNotConfigured)
	})

	t.Run("сообщение невалидного ввода", func(t *testing.T) {
		httpErr := WrapError(apperrors.NewInvalidInputError("неизвестная команда"), "fallback", nil)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		assert.Equal(t, "неизвестная команда", httpErr.Message)
	})

	t.Run("внутренняя ошибка скрыта", func(t *testing.T) {
		httpErr := WrapError(errors.New("pq: connection refused"), "Не удалось сохранить", nil)
		assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
		assert.Equal(t, "Не удалось сохранить", httpErr.Message)
	})

	t.Run("готовая HttpError не оборачивается", func(t *testing.T) {
		original := apperrors.NewHttpError(http.StatusTeapot, "чайник", nil, nil)
		assert.Same(t, original, WrapError(fmt.Errorf("ctx: %w", original), "fallback", nil))
	})
}

func TestParseFilterFromQuery(t *testing.T) {
	t.Run("значения по умолчанию", func(t *testing.T) {
		f := ParseFilterFromQuery(url.Values{})
		assert.Equal(t, DefaultLimit, f.Limit)
		assert.Equal(t, 1, f.Page)
		assert.Equal(t, 0, f.Offset)
		assert.True(t, f.WithPagination)
	})

	t.Run("фильтры, сортировка и страница", func(t *testing.T) {
		values := url.Values{
			"filter[status]": {"active"},
			"sort[name]":     {"DESC"},
			"sort[bad]":      {"sideways"},
			"search":         {"pump"},
			"limit":          {"10"},
			"page":           {"3"},
			"withPagination": {"false"},
		}
		f := ParseFilterFromQuery(values)
		assert.Equal(t, "active", f.Filter["status"])
		assert.Equal(t, map[string]string{"name": "desc"}, f.Sort)
		assert.Equal(t, "pump", f.Search)
		assert.Equal(t, 10, f.Limit)
		assert.Equal(t, 20, f.Offset)
		assert.False(t, f.WithPagination)
	})

	t.Run("лимит ограничен сверху", func(t *testing.T) {
		f := ParseFilterFromQuery(url.Values{"limit": {"100000"}})
		assert.Equal(t, MaxLimit, f.Limit)
	})
}

type patchDTO struct {
	Name     null.String `json:"name"`
	Location null.String `json:"location"`
	Notes    null.String `json:"notes"`
	Ignored  string      `json:"-"`
}

func TestBuildPatch(t *testing.T) {
	body := []byte(`{"name":"Pump B","location":null}`)
	var dto patchDTO
	dto.Name = null.StringFrom("Pump B")

	patch, err := BuildPatch(&dto, body)
	require.NoError(t, err)

	assert.Equal(t, "Pump B", patch["name"])
	assert.Equal(t, docstore.Delete, patch["location"])
	assert.NotContains(t, patch, "notes")
	assert.Len(t, patch, 2)

	_, err = BuildPatch(&dto, []byte(`not json`))
	assert.Error(t, err)
}

func TestGenerateCodeFromName(t *testing.T) {
	assert.Equal(t, "LINIYA_SBORKI_2", GenerateCodeFromName("Линия сборки №2"))
	assert.Equal(t, "CNC_LATHE", GenerateCodeFromName("  CNC lathe "))
}
