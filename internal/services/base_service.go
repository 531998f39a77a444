package services

import (
	"gearguard/internal/docstore"
	"gearguard/internal/filters"
	db "gearguard/internal/infrastructure/bd"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

// listQuery строит запрос к хранилищу из параметров списка. Текстовый поиск
// и вычисляемые фильтры хранилище не умеет, поэтому при clientSide страница
// вырезается уже после клиентской фильтрации, а запрос идёт без лимита.
func listQuery(filter types.Filter, allowed db.AllowedFields, clientSide bool) (docstore.Query, bool, error) {
	if !clientSide {
		q, err := db.ApplyListParams(docstore.Query{}, filter, allowed)
		return q, false, err
	}
	unpaged := filter
	unpaged.WithPagination = false
	q, err := db.ApplyListParams(docstore.Query{}, unpaged, allowed)
	return q, filter.WithPagination, err
}

func pageLocally[T any](items []T, filter types.Filter, local bool) ([]T, uint64) {
	total := uint64(len(items))
	if !local {
		return items, total
	}
	return filters.Page(items, filter.Offset, filter.Limit), total
}

// rejectCleared не даёт очистить обязательные поля частичным обновлением.
func rejectCleared(patch docstore.Fields, required ...string) error {
	for _, field := range required {
		value, ok := patch[field]
		if !ok {
			continue
		}
		if value == docstore.Delete || value == "" {
			return apperrors.NewInvalidInputError("поле '%s' обязательно и не может быть пустым", field)
		}
	}
	return nil
}

// setIfNotEmpty добавляет необязательное строковое поле только если оно задано.
func setIfNotEmpty(data docstore.Fields, key, value string) {
	if value != "" {
		data[key] = value
	}
}
